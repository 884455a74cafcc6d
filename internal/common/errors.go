package common

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrMissingToken        = errors.New("authorization token not provided")
	ErrMalformedToken      = errors.New("malformed authorization header")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrForbidden           = errors.New("forbidden access")
	ErrConstraintViolation = errors.New("database constraint violated")
	ErrInternalServer      = errors.New("internal server error")
)

// ValidationError carries the client-facing messages of a rejected request.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type errorMapping struct {
	err     error
	status  int
	message string
}

// errorTable is checked in order; anything not listed is treated as ErrInternalServer.
var errorTable = []errorMapping{
	{ErrValidation, http.StatusBadRequest, "La solicitud no es válida"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Credenciales incorrectas"},
	{ErrMissingToken, http.StatusUnauthorized, "No se ha proporcionado el token"},
	{ErrMalformedToken, http.StatusUnauthorized, "El formato del token es incorrecto"},
	{ErrInvalidToken, http.StatusUnauthorized, "Token inválido o expirado"},
	{ErrForbidden, http.StatusForbidden, "No tienes permisos para acceder a este recurso"},
	{ErrConstraintViolation, http.StatusConflict, "El registro viola una restricción de la base de datos"},
	{ErrInternalServer, http.StatusInternalServerError, internalMessage},
}

const internalMessage = "Error interno del servidor"

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// PublicMessage returns what the client may see for err: the validation messages,
// the fixed text of a known error, or a generic message.
func PublicMessage(err error) any {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Messages
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return internalMessage
}
