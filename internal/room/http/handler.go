package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/request"
	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/response"
	"github.com/JeanDev-10/hotel-booking-backend/internal/room"
)

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	rooms, err := h.service.List(c.Request.Context(), c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habitaciones obtenidas correctamente",
		"data":    NewRoomResponses(rooms),
	})
}

func (h *Handler) Get(c *gin.Context) {
	var p request.ByIDRequest
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, room.ErrNotFound)
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), p.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habitación obtenida correctamente",
		"data":    NewRoomResponse(r),
	})
}

func (h *Handler) Create(c *gin.Context) {
	form, errs := BindRoomForm(c, true)
	if len(errs) > 0 {
		response.ValidationError(c, errs)
		return
	}

	uploads, err := openUploads(form)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeUploads(uploads)

	r, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		TypeID:      form.TypeID,
		Images:      uploads.asImageUploads(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Habitación creada correctamente",
		"data":    NewRoomResponse(r),
	})
}

func (h *Handler) Update(c *gin.Context) {
	var p request.ByIDRequest
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, room.ErrNotFound)
		return
	}

	form, errs := BindRoomForm(c, false)
	if len(errs) > 0 {
		response.ValidationError(c, errs)
		return
	}

	uploads, err := openUploads(form)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeUploads(uploads)

	r, err := h.service.Update(c.Request.Context(), p.ID, room.UpdateRequest{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		TypeID:      form.TypeID,
		Images:      uploads.asImageUploads(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Habitación actualizada correctamente",
		"data":    NewRoomResponse(r),
	})
}

func (h *Handler) Delete(c *gin.Context) {
	var p request.ByIDRequest
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, room.ErrNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), p.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Habitación eliminada correctamente")
}
