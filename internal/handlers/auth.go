package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"SampleBlog/internal/service"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// AuthHandler обрабатывает регистрацию и вход.
type AuthHandler struct {
	Auth   *service.AuthService
	Logger *zap.SugaredLogger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=256"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Username string `json:"username" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register создаёт пользователя. Занятый e-mail — 409.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	resp, err := h.Auth.Register(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Login проверяет учётные данные. Неверные — 401 без уточнения причины.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	resp, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeAndValidate разбирает JSON-тело и прогоняет validator-теги.
func decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", service.ErrValidation)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", service.ErrValidation, err.Error())
	}
	return nil
}
