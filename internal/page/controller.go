// Package page is the sales projection page controller: the representative
// selector, the history table, the projection form and the notification
// surface, all rendered through ports.View.
package page

import (
	"context"
	"log/slog"
	"time"

	"github.com/csg33k/salesproj/internal/domain"
	"github.com/csg33k/salesproj/internal/locale"
	"github.com/csg33k/salesproj/internal/ports"
)

// Deps are the collaborators of one page.
type Deps struct {
	Directory         ports.Directory
	API               ports.ProjectionAPI
	View              ports.View
	Clock             ports.Clock       // defaults to SystemClock
	Formatter         *locale.Formatter // defaults to en-US in time.Local
	NotificationDelay time.Duration     // defaults to DefaultNotificationDelay
	Logger            *slog.Logger      // defaults to slog.Default()
}

// Controller composes the page components.
type Controller struct {
	Directory  *DirectoryLoader
	History    *HistoryViewer
	Submission *SubmissionHandler
	Notifier   *Notifier
	Selection  *Selection

	view   ports.View
	clock  ports.Clock
	format *locale.Formatter
}

func New(d Deps) *Controller {
	if d.Clock == nil {
		d.Clock = SystemClock{}
	}
	if d.Formatter == nil {
		d.Formatter = locale.New(locale.DefaultLocale, time.Local)
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	log := d.Logger.With("component", "page")

	notifier := NewNotifier(d.View, d.Clock, d.NotificationDelay)
	history := NewHistoryViewer(d.API, d.View, notifier, d.Formatter, log)
	selection := NewSelection(d.View, history)
	return &Controller{
		Directory:  NewDirectoryLoader(d.Directory, d.View, notifier, selection, log),
		History:    history,
		Submission: NewSubmissionHandler(d.API, d.View, notifier, selection, log),
		Notifier:   notifier,
		Selection:  selection,
		view:       d.View,
		clock:      d.Clock,
		format:     d.Formatter,
	}
}

// Load initialises the page: no message, a blank form dated today, then the
// directory and the first representative's history. It runs on every page
// load, so a reload starts over from fresh data.
func (c *Controller) Load(ctx context.Context) error {
	c.Notifier.Clear()
	c.view.SetForm(domain.FormValues{
		EntryDate:        c.clock.Now().In(c.format.Location()).Format("2006-01-02"),
		CommitmentStatus: string(domain.DefaultCommitmentStatus),
	})
	_, err := c.Directory.Load(ctx)
	return err
}

func (c *Controller) Select(ctx context.Context, id string) error {
	return c.Selection.SetActive(ctx, id)
}

func (c *Controller) Submit(ctx context.Context, f domain.FormValues) error {
	return c.Submission.Submit(ctx, f)
}

// Bind registers the controller's handlers on d.
func (c *Controller) Bind(d *Dispatcher) {
	d.Handle(EventLoad, func(ctx context.Context, _ Event) error { return c.Load(ctx) })
	d.Handle(EventSelect, func(ctx context.Context, ev Event) error { return c.Select(ctx, ev.RepresentativeID) })
	d.Handle(EventSubmit, func(ctx context.Context, ev Event) error { return c.Submit(ctx, ev.Form) })
}
