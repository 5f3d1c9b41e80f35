// Package htmlview keeps the rendered state of one browser page. The page
// controller writes to it through ports.View and the HTTP handlers read a
// Snapshot of it to produce HTML.
package htmlview

import (
	"slices"
	"sync"

	"github.com/csg33k/salesproj/internal/domain"
)

// Display is what the history area currently shows.
type Display int

const (
	DisplayEmpty Display = iota
	DisplayLoading
	DisplayTable
	DisplayError
)

func (d Display) String() string {
	switch d {
	case DisplayLoading:
		return "loading"
	case DisplayTable:
		return "table"
	case DisplayError:
		return "error"
	default:
		return "empty"
	}
}

// Snapshot is a point-in-time copy of the page state.
type Snapshot struct {
	Representatives []domain.Representative
	SelectedID      string
	ActiveName      string

	Display     Display
	DisplayText string
	Rows        []domain.HistoryRow

	Message *domain.Notification
	// MessageSeq increases every time a message is shown or cleared.
	MessageSeq uint64

	Form domain.FormValues
}

// Page implements ports.View.
type Page struct {
	mu sync.RWMutex
	s  Snapshot
}

func New() *Page {
	return &Page{}
}

func (p *Page) RenderRepresentatives(reps []domain.Representative, selectedID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s.Representatives = slices.Clone(reps)
	p.s.SelectedID = selectedID
}

func (p *Page) SetActive(id, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s.SelectedID = id
	p.s.ActiveName = name
}

func (p *Page) RenderLoading() {
	p.setDisplay(DisplayLoading, "", nil)
}

func (p *Page) RenderHistory(rows []domain.HistoryRow) {
	p.setDisplay(DisplayTable, "", slices.Clone(rows))
}

func (p *Page) RenderEmpty(text string) {
	p.setDisplay(DisplayEmpty, text, nil)
}

func (p *Page) RenderError(text string) {
	p.setDisplay(DisplayError, text, nil)
}

func (p *Page) setDisplay(d Display, text string, rows []domain.HistoryRow) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s.Display = d
	p.s.DisplayText = text
	p.s.Rows = rows
}

func (p *Page) ShowMessage(n domain.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s.Message = &n
	p.s.MessageSeq++
}

func (p *Page) ClearMessage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.s.Message == nil {
		return
	}
	p.s.Message = nil
	p.s.MessageSeq++
}

func (p *Page) SetForm(f domain.FormValues) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s.Form = f
}

// Snapshot returns a copy that is safe to read while the page keeps changing.
func (p *Page) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := p.s
	s.Representatives = slices.Clone(p.s.Representatives)
	s.Rows = slices.Clone(p.s.Rows)
	if p.s.Message != nil {
		m := *p.s.Message
		s.Message = &m
	}
	return s
}
