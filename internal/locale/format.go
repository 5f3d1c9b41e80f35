// Package locale formats history values for display: grouped two-decimal
// currency amounts through golang.org/x/text and per-locale date layouts.
package locale

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/csg33k/salesproj/internal/domain"
)

// DefaultLocale is used when the configured locale cannot be parsed.
const DefaultLocale = "en-US"

// currencySymbol is prefixed to every amount; the API does not carry a currency.
const currencySymbol = "$"

type layouts struct {
	date      string
	timestamp string
}

var supported = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.German,
	language.BrazilianPortuguese,
}

var layoutsByTag = map[language.Tag]layouts{
	language.AmericanEnglish:     {date: "1/2/2006", timestamp: "1/2/2006, 3:04:05 PM"},
	language.BritishEnglish:      {date: "02/01/2006", timestamp: "02/01/2006, 15:04:05"},
	language.German:              {date: "02.01.2006", timestamp: "02.01.2006, 15:04:05"},
	language.BrazilianPortuguese: {date: "02/01/2006", timestamp: "02/01/2006, 15:04:05"},
}

var matcher = language.NewMatcher(supported)

// Formatter renders dates, timestamps and amounts for one locale and zone.
type Formatter struct {
	tag     language.Tag
	loc     *time.Location
	layouts layouts

	// Digit separators of the locale, read once from its printer.
	group   string
	decimal string
}

// New returns a Formatter for the closest supported match of locale.
// A nil loc means time.Local.
func New(locale string, loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.AmericanEnglish
	}
	_, idx, _ := matcher.Match(tag)
	matched := supported[idx]
	group, dec := separators(message.NewPrinter(matched))
	return &Formatter{
		tag:     matched,
		loc:     loc,
		layouts: layoutsByTag[matched],
		group:   group,
		decimal: dec,
	}
}

// separators asks p how it writes a thousand and a half.
func separators(p *message.Printer) (group, dec string) {
	group = strings.TrimSuffix(strings.TrimPrefix(p.Sprintf("%d", 1000), "1"), "000")
	dec = strings.TrimSuffix(strings.TrimPrefix(p.Sprintf("%.1f", 0.5), "0"), "5")
	if dec == "" {
		dec = "."
	}
	return group, dec
}

// Tag reports the matched locale.
func (f *Formatter) Tag() language.Tag { return f.tag }

// Location reports the zone timestamps are shown in.
func (f *Formatter) Location() *time.Location { return f.loc }

// Date formats a calendar date. The value is not shifted into the display zone.
func (f *Formatter) Date(t time.Time) string {
	return t.Format(f.layouts.date)
}

// Timestamp formats an instant as date and time in the display zone.
func (f *Formatter) Timestamp(t time.Time) string {
	return t.In(f.loc).Format(f.layouts.timestamp)
}

// Money formats an amount with two decimals and locale digit grouping. The
// digits come from the decimal itself, so no precision is lost.
func (f *Formatter) Money(d decimal.Decimal) string {
	digits := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	whole, frac, _ := strings.Cut(digits, ".")
	return sign + currencySymbol + groupDigits(whole, f.group) + f.decimal + frac
}

func groupDigits(whole, sep string) string {
	if sep == "" || len(whole) <= 3 {
		return whole
	}
	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(whole[i : i+3])
	}
	return b.String()
}

// Row formats one history entry.
func (f *Formatter) Row(e domain.ProjectionEntry) domain.HistoryRow {
	comments := "-"
	if e.Comments != nil && strings.TrimSpace(*e.Comments) != "" {
		comments = *e.Comments
	}
	return domain.HistoryRow{
		Date:        f.Date(e.Date),
		Projected:   f.Money(e.ProjectedAmount),
		Actual:      f.Money(e.ActualAmount),
		Status:      string(e.CommitmentStatus),
		Comments:    comments,
		SubmittedAt: f.Timestamp(e.SubmittedAt),
	}
}

// Rows formats entries, keeping their order.
func (f *Formatter) Rows(entries []domain.ProjectionEntry) []domain.HistoryRow {
	rows := make([]domain.HistoryRow, len(entries))
	for i, e := range entries {
		rows[i] = f.Row(e)
	}
	return rows
}
