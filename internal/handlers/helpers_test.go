package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/csg33k/salesproj/internal/adapters/api"
	"github.com/csg33k/salesproj/internal/adapters/directory"
	"github.com/csg33k/salesproj/internal/domain"
	"github.com/csg33k/salesproj/internal/handlers"
	"github.com/csg33k/salesproj/internal/locale"
	"github.com/csg33k/salesproj/internal/ports"
)

// ── Clock ────────────────────────────────────────────────────────────────────

type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Time
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs the timers that came due.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []func()
	kept := c.timers[:0]
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case !t.at.After(c.now):
			t.stopped = true
			due = append(due, t.f)
		default:
			kept = append(kept, t)
		}
	}
	c.timers = kept
	c.mu.Unlock()

	for _, f := range due {
		f()
	}
}

// ── Backend ──────────────────────────────────────────────────────────────────

// backend is an in-memory projections API.
type backend struct {
	mu      sync.Mutex
	entries map[string][]map[string]any
	lists   []string
	posts   []map[string]any
}

func newBackend(t *testing.T) (*backend, *api.Client) {
	t.Helper()
	b := &backend{entries: map[string][]map[string]any{
		alice: {{
			"date": "2024-01-02", "projectedamount": 500, "actualamount": "450.5",
			"commitmentstatus": "Partially Met", "comments": nil,
			"timestampsubmitted": "2024-01-02T17:30:00Z",
		}},
	}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/projections/{id}", b.list)
	mux.HandleFunc("POST /api/v1/projections", b.create)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return b, api.New(srv.URL+"/api/v1", api.WithLocation(time.UTC))
}

func (b *backend) list(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lists = append(b.lists, id)
	if id == "missing" {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"User not found"}`)
		return
	}
	out := b.entries[id]
	if out == nil {
		out = []map[string]any{}
	}
	json.NewEncoder(w).Encode(out)
}

func (b *backend) create(w http.ResponseWriter, r *http.Request) {
	var p map[string]any
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"bad json"}`)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.posts = append(b.posts, p)
	id, _ := p["salespersonId"].(string)
	b.entries[id] = append(b.entries[id], map[string]any{
		"date": p["entryDate"], "projectedamount": p["projectedAmount"], "actualamount": p["actualAmount"],
		"commitmentstatus": p["commitmentStatus"], "comments": p["comments"], "productservice": p["productService"],
		"timestampsubmitted": "2024-03-04T09:30:00Z",
	})
	w.WriteHeader(http.StatusCreated)
	io.WriteString(w, `{"message":"Daily projection submitted successfully!"}`)
}

func (b *backend) add(id string, entry map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[id] = append(b.entries[id], entry)
}

func (b *backend) listCalls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lists...)
}

func (b *backend) postCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.posts)
}

// ── Harness ──────────────────────────────────────────────────────────────────

const (
	alice = "a-1"
	bob   = "b-2"
)

type harness struct {
	t       *testing.T
	routes  http.Handler
	handler *handlers.Handler
	backend *backend
	clock   *manualClock
	cookie  *http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	b, client := newBackend(t)
	clock := &manualClock{now: time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)}
	h := handlers.New(handlers.Deps{
		Directory: directory.NewStatic([]domain.Representative{
			{ID: alice, Name: "Alice Smith"},
			{ID: bob, Name: "Bob Johnson"},
		}),
		API:               client,
		Formatter:         locale.New("en-US", time.UTC),
		Clock:             clock,
		NotificationDelay: 5 * time.Second,
		SessionTTL:        time.Hour,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return &harness{t: t, routes: h.Routes(), handler: h, backend: b, clock: clock}
}

// do sends a request carrying the harness's session cookie, picking up a new
// one if the server sets it.
func (h *harness) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	h.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rec := httptest.NewRecorder()
	h.routes.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == handlers.SessionCookie {
			h.cookie = c
		}
	}
	return rec
}

func validForm(id string) url.Values {
	return url.Values{
		"salespersonId":    {id},
		"entryDate":        {"2024-03-04"},
		"projectedAmount":  {"700"},
		"actualAmount":     {"650.25"},
		"commitmentStatus": {"Met"},
		"comments":         {""},
		"productService":   {"Widgets, Support"},
	}
}
