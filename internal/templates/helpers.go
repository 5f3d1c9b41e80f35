package templates

import (
	"fmt"
	"net/url"
	"time"

	"github.com/csg33k/salesproj/internal/domain"
)

// htmxDelay renders d in the unit htmx trigger modifiers understand.
func htmxDelay(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// pdfPath is the export link for one representative's history.
func pdfPath(id string) string {
	return "/history/" + url.PathEscape(id) + "/pdf"
}

func statusValues() []string {
	statuses := domain.CommitmentStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func notice(n *domain.Notification, o Options) notificationData {
	return notificationData{Message: n, Opts: o}
}
