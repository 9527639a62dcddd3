package api

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/bookreview/internal/common"
)

// errorBody is the error envelope the backend returns on failure.
type errorBody struct {
	Detail string `json:"detail"`
}

// mapStatus converts a non-2xx response into one of the common sentinel
// errors, keeping the server's detail message when it sent one.
func mapStatus(code int, detail string) error {
	var sentinel error
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		sentinel = common.ErrUnauthorized
	case code == http.StatusNotFound:
		sentinel = common.ErrNotFound
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		sentinel = common.ErrValidation
	default:
		sentinel = common.ErrUnavailable
	}
	if detail == "" {
		return fmt.Errorf("%w: http status %d", sentinel, code)
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}
