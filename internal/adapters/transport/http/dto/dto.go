package dto

import "time"

type LoginDTO struct {
	Username string `json:"username" validate:"required,max=256"`
	Password string `json:"password" validate:"required,max=256"`
}

type LoginResponse struct {
	Username string    `json:"username"`
	Token    string    `json:"token"`
	Expiry   time.Time `json:"expiry"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
