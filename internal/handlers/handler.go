package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/csrf"

	"github.com/csg33k/salesproj/internal/adapters/pdf"
	"github.com/csg33k/salesproj/internal/domain"
	"github.com/csg33k/salesproj/internal/locale"
	"github.com/csg33k/salesproj/internal/page"
	"github.com/csg33k/salesproj/internal/ports"
	"github.com/csg33k/salesproj/internal/templates"
)

// pollSlack keeps the browser's notification poll just behind the server
// timer so the poll sees the cleared state.
const pollSlack = 250 * time.Millisecond

// Deps are shared by every page session.
type Deps struct {
	Directory         ports.Directory
	API               ports.ProjectionAPI
	Formatter         *locale.Formatter
	Clock             ports.Clock
	NotificationDelay time.Duration
	SessionTTL        time.Duration
	SecureCookies     bool
	Logger            *slog.Logger
}

type Handler struct {
	sessions *SessionStore
	dir      ports.Directory
	api      ports.ProjectionAPI
	format   *locale.Formatter
	clock    ports.Clock
	delay    time.Duration
	secure   bool
	log      *slog.Logger
}

func New(d Deps) *Handler {
	if d.Clock == nil {
		d.Clock = page.SystemClock{}
	}
	if d.Formatter == nil {
		d.Formatter = locale.New(locale.DefaultLocale, time.Local)
	}
	if d.NotificationDelay <= 0 {
		d.NotificationDelay = page.DefaultNotificationDelay
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	build := func(view ports.View) *page.Controller {
		return page.New(page.Deps{
			Directory:         d.Directory,
			API:               d.API,
			View:              view,
			Clock:             d.Clock,
			Formatter:         d.Formatter,
			NotificationDelay: d.NotificationDelay,
			Logger:            d.Logger,
		})
	}
	return &Handler{
		sessions: NewSessionStore(d.SessionTTL, d.Clock, build),
		dir:      d.Directory,
		api:      d.API,
		format:   d.Formatter,
		clock:    d.Clock,
		delay:    d.NotificationDelay,
		secure:   d.SecureCookies,
		log:      d.Logger.With("component", "handlers"),
	}
}

// Sessions exposes the session store.
func (h *Handler) Sessions() *SessionStore { return h.sessions }

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /selection", h.selectRepresentative)
	mux.HandleFunc("POST /projections", h.submitProjection)
	mux.HandleFunc("GET /notification", h.notification)
	mux.HandleFunc("GET /history/{id}/pdf", h.historyPDF)
	mux.HandleFunc("GET /healthz", h.healthz)
	return mux
}

// index renders the full page. Every visit dispatches load, so a reload
// resets the form and refetches the directory and history.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		sess = h.sessions.Create()
		h.setCookie(w, sess.ID)
	}
	h.dispatch(r.Context(), sess, page.Event{Kind: page.EventLoad})
	render(w, r, templates.Page(sess.View.Snapshot(), h.options(r)))
}

// selectRepresentative handles the selector's change event and re-renders #app.
func (h *Handler) selectRepresentative(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		w.Header().Set("HX-Redirect", "/")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	h.dispatch(r.Context(), sess, page.Event{
		Kind:             page.EventSelect,
		RepresentativeID: r.FormValue("salespersonId"),
	})
	render(w, r, templates.App(sess.View.Snapshot(), h.options(r)))
}

// submitProjection handles the form post and re-renders #app. Validation
// and API failures are shown on the page, so the status stays 200.
func (h *Handler) submitProjection(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		w.Header().Set("HX-Redirect", "/")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	h.dispatch(r.Context(), sess, page.Event{Kind: page.EventSubmit, Form: parseProjectionForm(r)})
	render(w, r, templates.App(sess.View.Snapshot(), h.options(r)))
}

func parseProjectionForm(r *http.Request) domain.FormValues {
	return domain.FormValues{
		SalespersonID:    r.FormValue("salespersonId"),
		EntryDate:        r.FormValue("entryDate"),
		ProjectedAmount:  r.FormValue("projectedAmount"),
		ActualAmount:     r.FormValue("actualAmount"),
		CommitmentStatus: r.FormValue("commitmentStatus"),
		Comments:         r.FormValue("comments"),
		ProductService:   r.FormValue("productService"),
	}
}

// notification renders the current message; the browser polls it once the
// delay has passed.
func (h *Handler) notification(w http.ResponseWriter, r *http.Request) {
	var msg *domain.Notification
	if sess, ok := h.session(r); ok {
		msg = sess.View.Snapshot().Message
	}
	render(w, r, templates.Notification(msg, h.options(r)))
}

func (h *Handler) historyPDF(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		http.Error(w, "invalid id", 400)
		return
	}
	entries, err := h.api.ListProjections(r.Context(), id)
	if err != nil {
		h.log.Warn("pdf export failed", "representative_id", id, "err", err)
		http.Error(w, page.MsgLoadErrorPrefix+page.ErrorText(err, page.MsgFetchFailed), http.StatusBadGateway)
		return
	}
	now := h.clock.Now()
	var buf bytes.Buffer
	report := pdf.Report{
		Representative: h.representative(r.Context(), id),
		Rows:           h.format.Rows(entries),
		GeneratedAt:    h.format.Timestamp(now),
	}
	if err := pdf.HistoryReport(report, &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	filename := fmt.Sprintf("projections_%s_%s.pdf", safeFilename(id), now.In(h.format.Location()).Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(buf.Bytes())
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// representative looks id up in the directory, falling back to the bare id.
func (h *Handler) representative(ctx context.Context, id string) domain.Representative {
	rep := domain.Representative{ID: id, Name: id}
	if h.dir == nil {
		return rep
	}
	reps, err := h.dir.LoadRepresentatives(ctx)
	if err != nil {
		h.log.Debug("directory lookup failed", "err", err)
		return rep
	}
	for _, r := range reps {
		if r.ID == id {
			return r
		}
	}
	return rep
}

// dispatch runs ev. Failures are already on the page and logged by the
// component that hit them.
func (h *Handler) dispatch(ctx context.Context, sess *Session, ev page.Event) {
	if err := sess.Dispatcher.Dispatch(ctx, ev); err != nil {
		h.log.Debug("page event failed", "event", string(ev.Kind), "session", sess.ID, "err", err)
	}
}

func (h *Handler) session(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}
	return h.sessions.Get(c.Value)
}

func (h *Handler) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) options(r *http.Request) templates.Options {
	return templates.Options{
		CSRFField: csrf.TemplateField(r),
		CSRFToken: csrf.Token(r),
		PollAfter: h.delay + pollSlack,
	}
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

// safeFilename keeps letters, digits and dashes.
func safeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "history"
	}
	return b.String()
}
