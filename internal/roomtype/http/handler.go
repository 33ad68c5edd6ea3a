package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/response"
	"github.com/JeanDev-10/hotel-booking-backend/internal/roomtype"
)

type Handler struct {
	service roomtype.Service
}

func NewHandler(service roomtype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	types, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tipos de habitaciones",
		"data":    NewRoomTypeResponses(types),
	})
}
