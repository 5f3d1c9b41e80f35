package ports

import (
	"context"
	"time"

	"github.com/csg33k/salesproj/internal/domain"
)

// Directory supplies the representatives shown in the selector.
type Directory interface {
	LoadRepresentatives(ctx context.Context) ([]domain.Representative, error)
}

// ProjectionAPI is the remote projections service.
type ProjectionAPI interface {
	// ListProjections returns the entries for one representative in server order.
	ListProjections(ctx context.Context, representativeID string) ([]domain.ProjectionEntry, error)

	// SubmitProjection stores a new entry and returns the server's success message.
	SubmitProjection(ctx context.Context, p domain.ProjectionPayload) (string, error)
}

// View is the rendering surface the page components write to. Implementations
// must be safe for concurrent use and must not call back into the caller.
type View interface {
	RenderRepresentatives(reps []domain.Representative, selectedID string)
	// SetActive marks id as selected and shows name as the active label.
	SetActive(id, name string)

	RenderLoading()
	RenderHistory(rows []domain.HistoryRow)
	RenderEmpty(text string)
	RenderError(text string)

	ShowMessage(n domain.Notification)
	ClearMessage()

	// SetForm replaces the form field values.
	SetForm(f domain.FormValues)
}

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed callbacks and reports the current time.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
