package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/apperror"
)

// MessageResponse is the JSON body used for plain message replies and errors.
type MessageResponse struct {
	Message string `json:"message"`
}

// FieldError describes a single failed input validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// ValidationResponse is the 422 body carrying per-field messages.
type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}

// Error writes a JSON error reply. AppError values determine the status code;
// anything else becomes a 500 with a generic message and the detail logged.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
		}
		c.JSON(appErr.Code, MessageResponse{Message: appErr.Message})
		return
	}

	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Error interno del servidor"})
}

// ValidationError writes a 422 reply with per-field messages.
func ValidationError(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusUnprocessableEntity, ValidationResponse{Errors: errs})
}

// Message writes a plain message reply with the given status code.
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, MessageResponse{Message: message})
}
