package page

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/csg33k/salesproj/internal/domain"
	"github.com/csg33k/salesproj/internal/ports"
)

// BuildPayload turns raw form values into the API payload. It checks only
// presence and that both amounts are numbers; the API does the real
// validation. Every failing field is named in the returned error.
func BuildPayload(f domain.FormValues) (domain.ProjectionPayload, error) {
	var bad []string

	id := strings.TrimSpace(f.SalespersonID)
	if id == "" {
		bad = append(bad, "salespersonId")
	}
	date := strings.TrimSpace(f.EntryDate)
	if date == "" {
		bad = append(bad, "entryDate")
	}
	projected, err := parseAmount(f.ProjectedAmount)
	if err != nil {
		bad = append(bad, "projectedAmount")
	}
	actual, err := parseAmount(f.ActualAmount)
	if err != nil {
		bad = append(bad, "actualAmount")
	}
	status := strings.TrimSpace(f.CommitmentStatus)
	if status == "" {
		bad = append(bad, "commitmentStatus")
	}
	if len(bad) > 0 {
		return domain.ProjectionPayload{}, fmt.Errorf("%w: %s", ErrValidation, strings.Join(bad, ", "))
	}

	var comments *string
	if strings.TrimSpace(f.Comments) != "" {
		c := f.Comments
		comments = &c
	}

	return domain.ProjectionPayload{
		SalespersonID:      id,
		EntryDate:          date,
		ProjectedAmount:    projected,
		ActualAmount:       actual,
		CommitmentStatus:   domain.CommitmentStatus(status),
		Comments:           comments,
		ProductsOrServices: SplitProducts(f.ProductService),
	}, nil
}

// SplitProducts splits comma separated text into trimmed, non-empty pieces.
// The result is never nil.
func SplitProducts(s string) []string {
	out := []string{}
	for _, piece := range strings.Split(s, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

// ClearedForm is the form after a successful submit: representative and date
// stay, amounts, comments and products blank, status back to the default.
func ClearedForm(f domain.FormValues) domain.FormValues {
	return domain.FormValues{
		SalespersonID:    f.SalespersonID,
		EntryDate:        f.EntryDate,
		CommitmentStatus: string(domain.DefaultCommitmentStatus),
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// SubmissionHandler sends the projection form to the API.
type SubmissionHandler struct {
	api       ports.ProjectionAPI
	view      ports.View
	notify    *Notifier
	selection *Selection
	log       *slog.Logger

	inFlight atomic.Bool
}

func NewSubmissionHandler(api ports.ProjectionAPI, view ports.View, notify *Notifier, selection *Selection, log *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{api: api, view: view, notify: notify, selection: selection, log: log}
}

// Submit validates f, posts it, and on success clears the form and refreshes
// the history of the active representative. The refresh starts only after
// the API has acknowledged the submission.
func (s *SubmissionHandler) Submit(ctx context.Context, f domain.FormValues) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.notify.Notify(MsgSubmitInProgress, domain.NotifyError)
		return ErrSubmitInProgress
	}
	msg, err := s.send(ctx, f)
	s.inFlight.Store(false)
	if err != nil {
		return err
	}

	if strings.TrimSpace(msg) == "" {
		msg = MsgSubmitted
	}
	s.notify.Notify(msg, domain.NotifySuccess)
	s.view.SetForm(ClearedForm(f))
	return s.selection.Refresh(ctx)
}

func (s *SubmissionHandler) send(ctx context.Context, f domain.FormValues) (string, error) {
	s.notify.Clear()
	s.view.SetForm(f)

	p, err := BuildPayload(f)
	if err != nil {
		s.log.Debug("projection form rejected", "err", err)
		s.notify.Notify(MsgValidation, domain.NotifyError)
		return "", err
	}

	msg, err := s.api.SubmitProjection(context.WithoutCancel(ctx), p)
	if err != nil {
		s.log.Warn("submit projection failed", "representative_id", p.SalespersonID, "err", err)
		s.notify.Notify(ErrorText(err, MsgSubmitFailed), domain.NotifyError)
		return "", err
	}
	return msg, nil
}
