package page

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/csg33k/salesproj/internal/domain"
	"github.com/csg33k/salesproj/internal/locale"
	"github.com/csg33k/salesproj/internal/ports"
)

// HistoryViewer fetches and renders the projections of one representative.
type HistoryViewer struct {
	api    ports.ProjectionAPI
	view   ports.View
	notify *Notifier
	format *locale.Formatter
	log    *slog.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func NewHistoryViewer(api ports.ProjectionAPI, view ports.View, notify *Notifier, format *locale.Formatter, log *slog.Logger) *HistoryViewer {
	return &HistoryViewer{api: api, view: view, notify: notify, format: format, log: log}
}

// Show replaces the display area with the history of representativeID.
//
// Each call supersedes the previous one: an in-flight request is cancelled
// and, should its response still arrive, it is dropped with ErrSuperseded.
// The fetch is detached from ctx's cancellation so the page settles even when
// the browser request that triggered it goes away.
func (h *HistoryViewer) Show(ctx context.Context, representativeID string) error {
	return h.complete(h.begin(ctx, representativeID))
}

// historyRequest is one fetch started by begin.
type historyRequest struct {
	id     string
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// begin supersedes any earlier request and renders the loading or empty
// state. Callers that pair an id change with a fetch call begin while still
// holding their own lock, so generations follow the order of the changes.
func (h *HistoryViewer) begin(ctx context.Context, representativeID string) historyRequest {
	id := strings.TrimSpace(representativeID)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.gen++
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	req := historyRequest{id: id, gen: h.gen}
	if id == "" {
		h.view.RenderEmpty(MsgNoProjections)
		return req
	}
	req.ctx, req.cancel = context.WithCancel(context.WithoutCancel(ctx))
	h.cancel = req.cancel
	h.view.RenderLoading()
	return req
}

// complete waits for the request started by begin and renders its result
// unless a newer request has begun since.
func (h *HistoryViewer) complete(req historyRequest) error {
	if req.id == "" {
		return nil
	}
	defer req.cancel()

	entries, err := h.api.ListProjections(req.ctx, req.id)

	h.mu.Lock()
	defer h.mu.Unlock()
	if req.gen != h.gen {
		h.log.Debug("dropping superseded history response", "representative_id", req.id)
		return ErrSuperseded
	}
	h.cancel = nil

	if err != nil {
		h.log.Warn("load projections failed", "representative_id", req.id, "err", err)
		h.notify.Notify(MsgLoadErrorPrefix+ErrorText(err, MsgFetchFailed), domain.NotifyError)
		h.view.RenderError(MsgHistoryError)
		return err
	}
	if len(entries) == 0 {
		h.view.RenderEmpty(MsgNoProjections)
		return nil
	}
	h.view.RenderHistory(h.format.Rows(entries))
	return nil
}
