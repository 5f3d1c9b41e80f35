package page

import (
	"context"
	"strings"
	"sync"

	"github.com/csg33k/salesproj/internal/domain"
	"github.com/csg33k/salesproj/internal/ports"
)

// Selection owns the active representative id.
type Selection struct {
	view    ports.View
	history *HistoryViewer

	mu     sync.RWMutex
	active string
	names  map[string]string
}

func NewSelection(view ports.View, history *HistoryViewer) *Selection {
	return &Selection{view: view, history: history, names: map[string]string{}}
}

// SetDirectory records the representatives the ids are resolved against.
func (s *Selection) SetDirectory(reps []domain.Representative) {
	names := make(map[string]string, len(reps))
	for _, r := range reps {
		names[r.ID] = r.Name
	}
	s.mu.Lock()
	s.names = names
	s.mu.Unlock()
}

// Active returns the active representative id, empty before the first load.
func (s *Selection) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActive switches the active representative, updates the label and shows
// that representative's history. Ids missing from the directory are labelled
// with the id itself.
func (s *Selection) SetActive(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	s.active = id
	name, ok := s.names[id]
	if !ok {
		name = id
	}
	s.view.SetActive(id, name)
	req := s.history.begin(ctx, id)
	s.mu.Unlock()

	return s.history.complete(req)
}

// Refresh refetches the history of the active representative.
func (s *Selection) Refresh(ctx context.Context) error {
	s.mu.Lock()
	req := s.history.begin(ctx, s.active)
	s.mu.Unlock()

	return s.history.complete(req)
}
