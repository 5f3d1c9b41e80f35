package page

import (
	"errors"
	"strings"

	"github.com/csg33k/salesproj/internal/domain"
)

var (
	// ErrValidation is returned when the form fails the local presence and
	// number checks. No request is made.
	ErrValidation = errors.New("invalid projection form")

	// ErrSubmitInProgress is returned for a submit issued while another one
	// is still waiting on the API.
	ErrSubmitInProgress = errors.New("submission already in progress")

	// ErrSuperseded is returned by HistoryViewer.Show when a newer call ran
	// before this one's response arrived. The response was dropped.
	ErrSuperseded = errors.New("history request superseded")
)

// ErrorText picks the text to show for err: the server's own message for
// an API error, fallback for an API error without one, and the connectivity
// message for everything else.
func ErrorText(err error, fallback string) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
		return fallback
	}
	return MsgNetworkError
}
