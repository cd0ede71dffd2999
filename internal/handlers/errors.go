package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"SampleBlog/internal/service"

	"go.uber.org/zap"
)

// ErrorResponse — единый формат тела ошибки.
type ErrorResponse struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	Details    string    `json:"details"`
	Path       string    `json:"path"`
	Method     string    `json:"method"`
	Timestamp  time.Time `json:"timestamp"`
}

// writeError — единственная точка перевода доменных ошибок в статус-коды.
// Всё, что не распознано, уходит как 500 с общим текстом без внутренних
// подробностей.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, err error) {
	var status int
	var message string
	details := err.Error()

	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrImageNotFound),
		errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
		message = "Resource not found"
	case errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
		message = "Conflict"
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Authentication failed"
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "Unauthorized access"
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		message = "Forbidden"
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
		message = "Invalid request parameters"
	default:
		logger.Errorw("unhandled error", "path", r.URL.Path, "method", r.Method, "error", err)
		status = http.StatusInternalServerError
		message = "An error occurred while processing your request"
		details = "Please try again later"
	}

	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Message:    message,
		Details:    details,
		Path:       r.URL.Path,
		Method:     r.Method,
		Timestamp:  time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
