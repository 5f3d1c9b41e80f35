package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/csg33k/salesproj/internal/domain"
)

const dateOnly = "2006-01-02"

// wireEntry is one element of GET /projections/{id}. Keys are lower-case
// column names. Amounts arrive as numbers or numeric strings.
type wireEntry struct {
	Date               string          `json:"date"`
	ProjectedAmount    decimal.Decimal `json:"projectedamount"`
	ActualAmount       decimal.Decimal `json:"actualamount"`
	CommitmentStatus   string          `json:"commitmentstatus"`
	Comments           *string         `json:"comments"`
	ProductService     []string        `json:"productservice"`
	TimestampSubmitted string          `json:"timestampsubmitted"`
}

func (w wireEntry) toDomain(loc *time.Location) (domain.ProjectionEntry, error) {
	date, err := parseCalendarDate(w.Date, loc)
	if err != nil {
		return domain.ProjectionEntry{}, fmt.Errorf("date: %w", err)
	}
	submitted, err := parseInstant(w.TimestampSubmitted, loc)
	if err != nil {
		return domain.ProjectionEntry{}, fmt.Errorf("timestampsubmitted: %w", err)
	}
	return domain.ProjectionEntry{
		Date:               date,
		ProjectedAmount:    w.ProjectedAmount,
		ActualAmount:       w.ActualAmount,
		CommitmentStatus:   domain.CommitmentStatus(w.CommitmentStatus),
		Comments:           w.Comments,
		ProductsOrServices: w.ProductService,
		SubmittedAt:        submitted,
	}, nil
}

// parseCalendarDate accepts YYYY-MM-DD or a full RFC 3339 instant. Instants
// are resolved to the calendar date they fall on in loc. The result is
// midnight UTC of that date.
func parseCalendarDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q", s)
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// parseInstant accepts RFC 3339, or a zone-less timestamp read in loc.
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// submitRequest is the POST /projections body. Amounts go out as JSON numbers.
type submitRequest struct {
	SalespersonID    string      `json:"salespersonId"`
	EntryDate        string      `json:"entryDate"`
	ProjectedAmount  json.Number `json:"projectedAmount"`
	ActualAmount     json.Number `json:"actualAmount"`
	CommitmentStatus string      `json:"commitmentStatus"`
	Comments         *string     `json:"comments"`
	ProductService   []string    `json:"productService"`
}

func newSubmitRequest(p domain.ProjectionPayload) submitRequest {
	products := p.ProductsOrServices
	if products == nil {
		products = []string{}
	}
	return submitRequest{
		SalespersonID:    p.SalespersonID,
		EntryDate:        p.EntryDate,
		ProjectedAmount:  json.Number(p.ProjectedAmount.String()),
		ActualAmount:     json.Number(p.ActualAmount.String()),
		CommitmentStatus: string(p.CommitmentStatus),
		Comments:         p.Comments,
		ProductService:   products,
	}
}

type messageBody struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error string `json:"error"`
}
