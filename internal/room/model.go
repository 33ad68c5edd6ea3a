package room

import (
	"net/http"

	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/apperror"
)

const (
	// MinImages and MaxImages bound how many photos a room carries.
	MinImages = 1
	MaxImages = 5
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "Habitación no encontrada")
	ErrNoneFound   = apperror.New(http.StatusNotFound, "No se encontraron habitaciones")
	ErrNameTaken   = apperror.New(http.StatusConflict, "Ya existe una habitación con ese nombre")
	ErrTypeInvalid = apperror.New(http.StatusUnprocessableEntity, "El tipo de habitación no existe")

	// ErrHasActiveReservations guards room deletion: a room with a pending
	// reservation cannot be removed.
	ErrHasActiveReservations = apperror.New(http.StatusBadRequest, "No se puede eliminar la habitación porque tiene reservaciones activas")
)

// Room is a bookable hotel room with its category and photos.
type Room struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	TypeID      int64
	TypeName    string
	Images      []Image
}

// Image is a stored room photo. PublicID is the object name in the image
// store; URL is its public address.
type Image struct {
	ID       int64
	RoomID   int64
	URL      string
	PublicID string
}
