package auth

import "errors"

type RegisterDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

var (
	errUserNotFound  = errors.New("user not found")
	errWrongPassword = errors.New("wrong password")
	errEmailTaken    = errors.New("email already registered")
)
