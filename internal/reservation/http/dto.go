package http

import (
	"time"

	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/response"
	"github.com/JeanDev-10/hotel-booking-backend/internal/reservation"
)

const dateLayout = "2006-01-02"

// CreateReservationBody is the POST /reservation request payload.
// Dates are calendar dates in YYYY-MM-DD form.
type CreateReservationBody struct {
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
	RoomID    int64  `json:"room_id"`
}

// Validate checks field presence and shape, returning the parsed dates and
// the per-field messages for the 422 response.
func (b *CreateReservationBody) Validate() (start, end time.Time, errs []response.FieldError) {
	switch {
	case b.DateStart == "":
		errs = append(errs, response.FieldError{Field: "date_start", Message: "La fecha de inicio es obligatoria"})
	default:
		var err error
		start, err = reservation.ParseDate(b.DateStart)
		if err != nil {
			errs = append(errs, response.FieldError{Field: "date_start", Message: "La fecha de inicio debe tener un formato válido (YYYY-MM-DD)"})
		}
	}

	switch {
	case b.DateEnd == "":
		errs = append(errs, response.FieldError{Field: "date_end", Message: "La fecha de fin es obligatoria"})
	default:
		var err error
		end, err = reservation.ParseDate(b.DateEnd)
		if err != nil {
			errs = append(errs, response.FieldError{Field: "date_end", Message: "La fecha de fin debe tener un formato válido (YYYY-MM-DD)"})
		}
	}

	if b.RoomID <= 0 {
		errs = append(errs, response.FieldError{Field: "room_id", Message: "El ID de la habitación es obligatorio"})
	}

	if len(errs) > 0 {
		return start, end, errs
	}

	today := reservation.DateOnly(time.Now())
	if start.Before(today) {
		errs = append(errs, response.FieldError{Field: "date_start", Message: "La fecha de inicio no puede ser inferior a la fecha actual"})
	}
	if !end.After(start) {
		errs = append(errs, response.FieldError{Field: "date_end", Message: "La fecha de fin debe ser mayor a la fecha de inicio"})
	} else if reservation.Nights(start, end) < 1 {
		errs = append(errs, response.FieldError{Field: "date_end", Message: "La reservación debe ser de al menos 1 día"})
	}

	return start, end, errs
}

type StatusTag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ReservationResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	RoomID     int64     `json:"room_id"`
	DateStart  string    `json:"date_start"`
	DateEnd    string    `json:"date_end"`
	PriceTotal float64   `json:"price_total"`
	Status     StatusTag `json:"status"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		RoomID:     r.RoomID,
		DateStart:  r.DateStart.Format(dateLayout),
		DateEnd:    r.DateEnd.Format(dateLayout),
		PriceTotal: r.PriceTotal,
		Status:     StatusTag{ID: int(r.Status), Name: r.Status.Name()},
	}
}

type UserTag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ImageTag struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type RoomTag struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Type        string     `json:"type"`
	Images      []ImageTag `json:"images"`
}

// DetailResponse is a reservation with its user and room relations.
type DetailResponse struct {
	ID         int64     `json:"id"`
	DateStart  string    `json:"date_start"`
	DateEnd    string    `json:"date_end"`
	PriceTotal float64   `json:"price_total"`
	Status     StatusTag `json:"status"`
	User       UserTag   `json:"user"`
	Room       RoomTag   `json:"room"`
}

func NewDetailResponse(d *reservation.Detail) DetailResponse {
	images := make([]ImageTag, 0, len(d.RoomImages))
	for _, img := range d.RoomImages {
		images = append(images, ImageTag{ID: img.ID, URL: img.URL})
	}

	return DetailResponse{
		ID:         d.ID,
		DateStart:  d.DateStart.Format(dateLayout),
		DateEnd:    d.DateEnd.Format(dateLayout),
		PriceTotal: d.PriceTotal,
		Status:     StatusTag{ID: int(d.Status), Name: d.Status.Name()},
		User:       UserTag{ID: d.UserID, Name: d.UserName, Email: d.UserEmail},
		Room: RoomTag{
			ID:          d.RoomID,
			Name:        d.RoomName,
			Description: d.RoomDescription,
			Price:       d.RoomPrice,
			Type:        d.RoomTypeName,
			Images:      images,
		},
	}
}

func NewDetailResponses(details []*reservation.Detail) []DetailResponse {
	items := make([]DetailResponse, len(details))
	for i, d := range details {
		items[i] = NewDetailResponse(d)
	}
	return items
}
