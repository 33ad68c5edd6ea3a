package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/request"
	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/response"
	"github.com/JeanDev-10/hotel-booking-backend/internal/user"
)

type Handler struct {
	service    user.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service user.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		service:    service,
		jwtManager: jwtManager,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var body RegisterBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, []response.FieldError{
			{Field: "body", Message: "Cuerpo de la petición inválido"},
		})
		return
	}
	if errs := body.Validate(); len(errs) > 0 {
		response.ValidationError(c, errs)
		return
	}

	u, err := h.service.Register(c.Request.Context(), user.RegisterRequest{
		Name:     body.Name,
		Lastname: body.Lastname,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.Identity())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuario registrado correctamente",
		"user":    NewUserResponse(u),
		"token":   token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var body LoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, []response.FieldError{
			{Field: "body", Message: "Cuerpo de la petición inválido"},
		})
		return
	}

	u, err := h.service.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.Identity())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sesión iniciada correctamente",
		"user":    NewUserResponse(u),
		"token":   token,
	})
}

func (h *Handler) Me(c *gin.Context) {
	actor, _ := auth.GetIdentity(c)

	u, err := h.service.GetByID(c.Request.Context(), actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": NewUserResponse(u)})
}

func (h *Handler) Get(c *gin.Context) {
	var p request.ByIDRequest
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, user.ErrNotFound)
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), p.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": NewUserResponse(u)})
}

// Logout exists for client symmetry. Tokens are stateless, so there is
// nothing to revoke server-side; clients discard the token.
func (h *Handler) Logout(c *gin.Context) {
	response.Message(c, http.StatusOK, "Sesión cerrada correctamente")
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var body ChangePasswordBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, []response.FieldError{
			{Field: "body", Message: "Cuerpo de la petición inválido"},
		})
		return
	}
	if errs := body.Validate(); len(errs) > 0 {
		response.ValidationError(c, errs)
		return
	}

	actor, _ := auth.GetIdentity(c)

	if err := h.service.ChangePassword(c.Request.Context(), actor.UserID, body.CurrentPassword, body.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Contraseña actualizada correctamente")
}
