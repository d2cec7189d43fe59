package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by every flow that ends in a signed-in user.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type GoogleLoginURLResponse struct {
	URL string `json:"url"`
}

// GoogleCallbackRequest carries the provider redirect parameters.
type GoogleCallbackRequest struct {
	Code  string `json:"code" query:"code"`
	State string `json:"state" query:"state"`
}
