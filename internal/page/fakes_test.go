package page_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/csg33k/salesproj/internal/domain"
	"github.com/csg33k/salesproj/internal/locale"
	"github.com/csg33k/salesproj/internal/page"
	"github.com/csg33k/salesproj/internal/ports"
)

// ── View ─────────────────────────────────────────────────────────────────────

const (
	displayLoading = "loading"
	displayTable   = "table"
	displayEmpty   = "empty"
	displayError   = "error"
)

type fakeView struct {
	mu          sync.Mutex
	reps        []domain.Representative
	selectedID  string
	activeName  string
	display     string
	displayText string
	rows        []domain.HistoryRow
	message     *domain.Notification
	form        domain.FormValues
}

func (v *fakeView) RenderRepresentatives(reps []domain.Representative, selectedID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reps = reps
	v.selectedID = selectedID
}

func (v *fakeView) SetActive(id, name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selectedID = id
	v.activeName = name
}

func (v *fakeView) RenderLoading() { v.setDisplay(displayLoading, "", nil) }

func (v *fakeView) RenderHistory(rows []domain.HistoryRow) { v.setDisplay(displayTable, "", rows) }

func (v *fakeView) RenderEmpty(text string) { v.setDisplay(displayEmpty, text, nil) }

func (v *fakeView) RenderError(text string) { v.setDisplay(displayError, text, nil) }

func (v *fakeView) setDisplay(kind, text string, rows []domain.HistoryRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.display = kind
	v.displayText = text
	v.rows = rows
}

func (v *fakeView) ShowMessage(n domain.Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.message = &n
}

func (v *fakeView) ClearMessage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.message = nil
}

func (v *fakeView) SetForm(f domain.FormValues) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form = f
}

func (v *fakeView) Message() *domain.Notification {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.message
}

func (v *fakeView) Display() (string, string, []domain.HistoryRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.display, v.displayText, v.rows
}

func (v *fakeView) Form() domain.FormValues {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

// ── Clock ────────────────────────────────────────────────────────────────────

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	// leaky makes Stop report failure and leave the timer armed, as when a
	// real timer has already fired and its callback is waiting on a lock.
	leaky bool
}

type fakeTimer struct {
	c       *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.c.leaky || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs every timer that became due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []func()
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t.f)
		}
	}
	c.mu.Unlock()
	for _, f := range due {
		f()
	}
}

// ── API ──────────────────────────────────────────────────────────────────────

var errConnRefused = errors.New("dial tcp 127.0.0.1:5000: connect: connection refused")

type fakeAPI struct {
	mu        sync.Mutex
	entries   map[string][]domain.ProjectionEntry
	listErr   error
	listCalls []string
	// listGate blocks ListProjections for an id until the channel is closed
	// or the request context is cancelled.
	listGate    map[string]chan struct{}
	listStarted chan string

	submitMsg     string
	submitErr     error
	submitted     []domain.ProjectionPayload
	submitGate    chan struct{}
	submitStarted chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		entries:  map[string][]domain.ProjectionEntry{},
		listGate: map[string]chan struct{}{},
	}
}

func (f *fakeAPI) ListProjections(ctx context.Context, id string) ([]domain.ProjectionEntry, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, id)
	gate := f.listGate[id]
	started := f.listStarted
	f.mu.Unlock()

	if started != nil {
		started <- id
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.ProjectionEntry(nil), f.entries[id]...), nil
}

func (f *fakeAPI) SubmitProjection(ctx context.Context, p domain.ProjectionPayload) (string, error) {
	f.mu.Lock()
	f.submitted = append(f.submitted, p)
	gate, started := f.submitGate, f.submitStarted
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	date, _ := time.Parse("2006-01-02", p.EntryDate)
	f.entries[p.SalespersonID] = append(f.entries[p.SalespersonID], domain.ProjectionEntry{
		Date:               date,
		ProjectedAmount:    p.ProjectedAmount,
		ActualAmount:       p.ActualAmount,
		CommitmentStatus:   p.CommitmentStatus,
		Comments:           p.Comments,
		ProductsOrServices: p.ProductsOrServices,
		SubmittedAt:        time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC),
	})
	return f.submitMsg, nil
}

func (f *fakeAPI) ListCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.listCalls...)
}

func (f *fakeAPI) Submitted() []domain.ProjectionPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ProjectionPayload(nil), f.submitted...)
}

// ── Directory ────────────────────────────────────────────────────────────────

type fakeDirectory struct {
	reps []domain.Representative
	err  error
}

func (d fakeDirectory) LoadRepresentatives(context.Context) ([]domain.Representative, error) {
	return d.reps, d.err
}

var testReps = []domain.Representative{
	{ID: "A", Name: "Alice Johnson"},
	{ID: "B", Name: "Bob Smith"},
}

// ── Harness ──────────────────────────────────────────────────────────────────

type harness struct {
	view  *fakeView
	clock *fakeClock
	api   *fakeAPI
	ctl   *page.Controller
}

func newHarness(t *testing.T, dir ports.Directory) *harness {
	t.Helper()
	h := &harness{view: &fakeView{}, clock: newFakeClock(), api: newFakeAPI()}
	if dir == nil {
		dir = fakeDirectory{reps: testReps}
	}
	h.ctl = page.New(page.Deps{
		Directory:         dir,
		API:               h.api,
		View:              h.view,
		Clock:             h.clock,
		Formatter:         locale.New("en-US", time.UTC),
		NotificationDelay: 5 * time.Second,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return h
}
