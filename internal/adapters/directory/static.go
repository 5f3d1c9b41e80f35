// Package directory holds the compiled-in representative list.
package directory

import (
	"context"

	"github.com/csg33k/salesproj/internal/domain"
)

// DefaultRepresentatives are the sample staff seeded in the projections
// database. Ids must match UserIDs on the API side.
var DefaultRepresentatives = []domain.Representative{
	{ID: "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11", Name: "Alice Johnson"},
	{ID: "b1fccb91-1c1a-4f51-a1b1-1bb8ad271b22", Name: "Bob Smith"},
	{ID: "c2gddc88-2d2b-4e42-c2c2-2cc7bc162c33", Name: "Charlie Brown"},
}

// Static serves a fixed list in declaration order.
type Static struct {
	reps []domain.Representative
}

// NewStatic copies reps; a nil slice yields DefaultRepresentatives.
func NewStatic(reps []domain.Representative) *Static {
	if reps == nil {
		reps = DefaultRepresentatives
	}
	return &Static{reps: append([]domain.Representative(nil), reps...)}
}

func (s *Static) LoadRepresentatives(ctx context.Context) ([]domain.Representative, error) {
	return append([]domain.Representative(nil), s.reps...), nil
}
