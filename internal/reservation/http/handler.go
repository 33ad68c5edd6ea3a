package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/request"
	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/response"
	"github.com/JeanDev-10/hotel-booking-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, []response.FieldError{
			{Field: "body", Message: "Cuerpo de la petición inválido"},
		})
		return
	}

	start, end, errs := body.Validate()
	if len(errs) > 0 {
		response.ValidationError(c, errs)
		return
	}

	actor, _ := auth.GetIdentity(c)

	res, err := h.service.Create(c.Request.Context(), reservation.CreateRequest{
		UserID:    actor.UserID,
		RoomID:    body.RoomID,
		DateStart: start,
		DateEnd:   end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Reservación creada correctamente",
		"reservation": NewReservationResponse(res),
	})
}

func (h *Handler) ListAll(c *gin.Context) {
	details, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todas las reservaciones",
		"data":    NewDetailResponses(details),
	})
}

func (h *Handler) ListMine(c *gin.Context) {
	actor, _ := auth.GetIdentity(c)

	details, err := h.service.ListByUser(c.Request.Context(), actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Mis reservaciones",
		"data":    NewDetailResponses(details),
	})
}

func (h *Handler) Get(c *gin.Context) {
	var p request.ByIDRequest
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, reservation.ErrNotFound)
		return
	}

	actor, _ := auth.GetIdentity(c)

	d, err := h.service.GetByID(c.Request.Context(), p.ID, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reservación encontrada",
		"data":    NewDetailResponse(d),
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	var p request.ByIDRequest
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, reservation.ErrNotFound)
		return
	}

	actor, _ := auth.GetIdentity(c)

	d, err := h.service.Cancel(c.Request.Context(), p.ID, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reservación cancelada correctamente",
		"data":    NewDetailResponse(d),
	})
}
