package service

import "errors"

// Доменные ошибки. Слои ниже HTTP-границы их не гасят: хендлеры
// переводят их в статус-коды через errors.Is.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrImageNotFound      = errors.New("image not found")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")
	ErrValidation         = errors.New("invalid request")
)
