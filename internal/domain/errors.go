package domain

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks transport failures and unreadable responses from the
// projections API.
var ErrUnavailable = errors.New("projections api unavailable")

// APIError is a non-2xx response. Message is the server's error text and may
// be empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("projections api %d", e.Status)
	}
	return fmt.Sprintf("projections api %d: %s", e.Status, e.Message)
}
