package reservation

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "Reservación no encontrada")
	ErrNoneFound       = apperror.New(http.StatusNotFound, "No se encontraron reservaciones")
	ErrRoomNotFound    = apperror.New(http.StatusNotFound, "Habitación no encontrada")
	ErrRoomUnavailable = apperror.New(http.StatusBadRequest, "La habitación ya está reservada en ese rango de fechas")
	ErrNotPending      = apperror.New(http.StatusBadRequest, "Solo se pueden cancelar reservaciones en estado 'Pendiente'")
	ErrCancelForbidden = apperror.New(http.StatusForbidden, "No tienes permiso para cancelar esta reservación")
	ErrViewForbidden   = apperror.New(http.StatusForbidden, "No tienes permiso para ver esta reservación")

	ErrInvalidDateRange = apperror.New(http.StatusUnprocessableEntity, "La fecha de fin debe ser mayor a la fecha de inicio")
	ErrMinOneNight      = apperror.New(http.StatusUnprocessableEntity, "La reservación debe ser de al menos 1 día")
	ErrStartInPast      = apperror.New(http.StatusUnprocessableEntity, "La fecha de inicio no puede ser inferior a la fecha actual")
)

// Status is the reservation lifecycle state. The numeric values are persisted
// as status_id and must match the seeded status_reservations rows.
type Status int

const (
	StatusPending   Status = 1
	StatusConfirmed Status = 2
	StatusCancelled Status = 3
)

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

// Name returns the user-facing status name.
func (s Status) Name() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusConfirmed:
		return "Confirmada"
	case StatusCancelled:
		return "Cancelada"
	}
	return "Desconocido"
}

// Reservation is a booked stay on a room. DateStart and DateEnd are calendar
// dates (UTC midnight); the occupied range is the half-open [DateStart, DateEnd).
type Reservation struct {
	ID         int64
	UserID     int64
	RoomID     int64
	DateStart  time.Time
	DateEnd    time.Time
	PriceTotal float64
	Status     Status
}

// RoomImage is a stored photo of the reserved room, for detail views.
type RoomImage struct {
	ID       int64
	RoomID   int64
	URL      string
	PublicID string
}

// Detail is a reservation assembled with its user and room relations.
type Detail struct {
	Reservation
	UserName        string
	UserEmail       string
	RoomName        string
	RoomDescription string
	RoomPrice       float64
	RoomTypeName    string
	RoomImages      []RoomImage
}

// ParseDate parses a YYYY-MM-DD calendar date, tolerating a trailing
// time component the way the API has always accepted it.
func ParseDate(value string) (time.Time, error) {
	datePart, _, _ := strings.Cut(value, "T")
	t, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", value, err)
	}
	return t.UTC(), nil
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of whole nights in the half-open range [start, end).
func Nights(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
