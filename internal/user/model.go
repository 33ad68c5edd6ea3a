package user

import (
	"net/http"

	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "Usuario no encontrado")
	ErrEmailTaken         = apperror.New(http.StatusConflict, "El correo ya está registrado")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "Credenciales inválidas")
)

// User is an account holder. Role is the capability tag used for dispatch;
// no numeric role ids exist outside the database.
type User struct {
	ID           int64
	Name         string
	Lastname     string
	Email        string
	PasswordHash string
	Role         auth.Role
	Active       bool
}

// Identity returns the auth identity of this user.
func (u *User) Identity() auth.Identity {
	return auth.Identity{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	}
}
