package roomtype

import (
	"net/http"

	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound  = apperror.New(http.StatusNotFound, "Tipo de habitación no encontrado")
	ErrNoneFound = apperror.New(http.StatusNotFound, "No se encontraron tipos de habitación")
)

// RoomType is a room category (e.g. Estándar, Suite, Familiar).
type RoomType struct {
	ID   int64
	Name string
}
