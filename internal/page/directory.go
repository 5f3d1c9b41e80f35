package page

import (
	"context"
	"log/slog"

	"github.com/csg33k/salesproj/internal/domain"
	"github.com/csg33k/salesproj/internal/ports"
)

// DirectoryLoader fills the representative selector and seeds the selection.
type DirectoryLoader struct {
	dir       ports.Directory
	view      ports.View
	notify    *Notifier
	selection *Selection
	log       *slog.Logger
}

func NewDirectoryLoader(dir ports.Directory, view ports.View, notify *Notifier, selection *Selection, log *slog.Logger) *DirectoryLoader {
	return &DirectoryLoader{dir: dir, view: view, notify: notify, selection: selection, log: log}
}

// Load renders the selector in directory order and activates the first
// representative. A failed lookup leaves an empty, usable selector.
func (d *DirectoryLoader) Load(ctx context.Context) ([]domain.Representative, error) {
	reps, err := d.dir.LoadRepresentatives(ctx)
	if err != nil {
		d.log.Warn("load representatives failed", "err", err)
		d.notify.Notify(MsgDirectoryFailed, domain.NotifyError)
		d.selection.SetDirectory(nil)
		d.view.RenderRepresentatives(nil, "")
		d.selection.SetActive(ctx, "")
		return nil, err
	}

	d.selection.SetDirectory(reps)
	if len(reps) == 0 {
		d.view.RenderRepresentatives(reps, "")
		return reps, d.selection.SetActive(ctx, "")
	}
	d.view.RenderRepresentatives(reps, reps[0].ID)
	return reps, d.selection.SetActive(ctx, reps[0].ID)
}
