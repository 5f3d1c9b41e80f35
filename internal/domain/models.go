package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommitmentStatus is the outcome label recorded for a projection.
// Values returned by the API that are not listed here are kept verbatim.
type CommitmentStatus string

const (
	StatusMet          CommitmentStatus = "Met"
	StatusMissed       CommitmentStatus = "Missed"
	StatusPartiallyMet CommitmentStatus = "Partially Met"
)

// DefaultCommitmentStatus is what the form resets to after a successful submit.
const DefaultCommitmentStatus = StatusMet

// CommitmentStatuses lists the selectable statuses in display order.
func CommitmentStatuses() []CommitmentStatus {
	return []CommitmentStatus{StatusMet, StatusMissed, StatusPartiallyMet}
}

// Representative is a sales staff member whose projections are tracked.
type Representative struct {
	ID   string
	Name string
}

// ProjectionEntry is one submitted projection as returned by the API.
type ProjectionEntry struct {
	Date               time.Time
	ProjectedAmount    decimal.Decimal
	ActualAmount       decimal.Decimal
	CommitmentStatus   CommitmentStatus
	Comments           *string // nil when the submitter left it blank
	ProductsOrServices []string
	SubmittedAt        time.Time
}

// FormValues holds the raw form fields exactly as typed.
type FormValues struct {
	SalespersonID    string
	EntryDate        string // YYYY-MM-DD from the date input
	ProjectedAmount  string
	ActualAmount     string
	CommitmentStatus string
	Comments         string
	ProductService   string // comma separated free text
}

// ProjectionPayload is built from FormValues at submit time and discarded once
// the request resolves.
type ProjectionPayload struct {
	SalespersonID      string
	EntryDate          string
	ProjectedAmount    decimal.Decimal
	ActualAmount       decimal.Decimal
	CommitmentStatus   CommitmentStatus
	Comments           *string
	ProductsOrServices []string
}

// HistoryRow is a ProjectionEntry formatted for the history table.
type HistoryRow struct {
	Date        string
	Projected   string
	Actual      string
	Status      string
	Comments    string
	SubmittedAt string
}

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is the message currently shown on the notification surface.
type Notification struct {
	Kind NotificationKind
	Text string
}
