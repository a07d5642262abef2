package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/Logistica-bff/internal/domain"
)

// APIError toda respuesta no-2xx del backend normalizada a {message, statusCode, error}.
// StatusCode 0 indica que no hubo respuesta (error de red o timeout).
type APIError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	ErrorName  string `json:"error"`
	Method     string `json:"-"`
	Path       string `json:"-"`
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	return e.Message
}

// Unwrap traduce el status a un error de dominio para errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	default:
		return domain.ErrUpstream
	}
}

// errorBody cuerpo de error del backend. message puede venir como string o como
// lista de mensajes de validación.
type errorBody struct {
	Message    json.RawMessage `json:"message"`
	Error      string          `json:"error"`
	StatusCode int             `json:"statusCode"`
}

func normalizeError(method, path string, status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Method: method, Path: path}

	var b errorBody
	if err := json.Unmarshal(body, &b); err == nil {
		e.Message = messageText(b.Message)
		e.ErrorName = b.Error
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	if e.Message == "" || strings.HasPrefix(e.Message, "<") {
		e.Message = http.StatusText(status)
	}
	if e.ErrorName == "" {
		e.ErrorName = http.StatusText(status)
	}
	return e
}

func networkError(method, path string, err error) *APIError {
	return &APIError{Message: err.Error(), ErrorName: "Network Error", Method: method, Path: path}
}

func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}
