package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel errors for the failure classes the API distinguishes. Handlers wrap
// these with context via fmt.Errorf("...: %w", Err...) and the boundary maps
// them to an HTTP status.
var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrPaymentInitiation  = errors.New("payment initiation failed")
	ErrConfiguration      = errors.New("configuration missing")
)

// StatusCode maps an error to the HTTP status returned to the client.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrPaymentInitiation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConfiguration):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
