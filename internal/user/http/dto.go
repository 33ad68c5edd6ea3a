package http

import (
	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/response"
	"github.com/JeanDev-10/hotel-booking-backend/internal/user"
)

type RegisterBody struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (b *RegisterBody) Validate() []response.FieldError {
	var errs []response.FieldError
	if b.Name == "" {
		errs = append(errs, response.FieldError{Field: "name", Message: "El nombre es obligatorio"})
	}
	if b.Lastname == "" {
		errs = append(errs, response.FieldError{Field: "lastname", Message: "El apellido es obligatorio"})
	}
	if b.Email == "" {
		errs = append(errs, response.FieldError{Field: "email", Message: "El correo es obligatorio"})
	}
	if b.Password == "" {
		errs = append(errs, response.FieldError{Field: "password", Message: "La contraseña es obligatoria"})
	}
	return errs
}

type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordBody struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (b *ChangePasswordBody) Validate() []response.FieldError {
	var errs []response.FieldError
	if b.CurrentPassword == "" {
		errs = append(errs, response.FieldError{Field: "current_password", Message: "La contraseña actual es obligatoria"})
	}
	if b.NewPassword == "" {
		errs = append(errs, response.FieldError{Field: "new_password", Message: "La nueva contraseña es obligatoria"})
	}
	return errs
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Lastname: u.Lastname,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}
