// Package pdf renders a representative's projection history as a printable
// report. Rows arrive already formatted for the configured locale; the
// report lays them out in a ledger table, paging as needed.
package pdf

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/salesproj/internal/domain"
)

// Report is the content of one history export.
type Report struct {
	Representative domain.Representative
	Rows           []domain.HistoryRow
	// GeneratedAt is printed in the footer, already formatted.
	GeneratedAt string
}

type column struct {
	title string
	width float64 // share of the content width
	align string
	value func(domain.HistoryRow) string
}

var columns = []column{
	{"Date", 0.12, "L", func(r domain.HistoryRow) string { return r.Date }},
	{"Projected", 0.15, "R", func(r domain.HistoryRow) string { return r.Projected }},
	{"Actual", 0.15, "R", func(r domain.HistoryRow) string { return r.Actual }},
	{"Status", 0.14, "L", func(r domain.HistoryRow) string { return r.Status }},
	{"Comments", 0.22, "L", func(r domain.HistoryRow) string { return r.Comments }},
	{"Submitted", 0.22, "L", func(r domain.HistoryRow) string { return r.SubmittedAt }},
}

// HistoryReport writes a PDF of rep.Rows to w.
func HistoryReport(rep Report, w io.Writer) error {
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(false, 18)
	pdf.AliasNbPages("{nb}")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	y := drawHeader(pdf, rep, tr)

	_, pageH := pdf.GetPageSize()
	_, _, _, marginB := pdf.GetMargins()
	rowH := 6.5
	limit := pageH - marginB - 10

	if len(rep.Rows) == 0 {
		marginL, _, _, _ := pdf.GetMargins()
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetXY(marginL, y)
		pdf.CellFormat(0, rowH, "No projections submitted yet for this user.", "", 1, "L", false, 0, "")
	}

	for i, r := range rep.Rows {
		if y+rowH > limit {
			drawFooter(pdf, rep, tr)
			pdf.AddPage()
			y = drawHeader(pdf, rep, tr)
		}
		drawRow(pdf, y, i, r, tr)
		y += rowH
	}
	drawFooter(pdf, rep, tr)

	return pdf.Output(w)
}

// drawHeader draws the title bar, the representative block and the table
// header, returning the y where the first row goes.
func drawHeader(pdf *fpdf.Fpdf, rep Report, tr func(string) string) float64 {
	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-30, 7, "DAILY SALES PROJECTIONS", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(26, 7, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 13

	// ── Representative ───────────────────────────────────────────────────────
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 5.5, "SALES REPRESENTATIVE", "LRT", 1, "L", true, 0, "")
	y += 5.5

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW/2, 6.5, tr(rep.Representative.Name), "LB", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW/2, 6.5, "ID: "+rep.Representative.ID, "RB", 1, "R", false, 0, "")
	y += 6.5 + 5

	// ── Table header ─────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetXY(marginL, y)
	for i, c := range columns {
		ln := 0
		if i == len(columns)-1 {
			ln = 1
		}
		pdf.CellFormat(contentW*c.width, 7, c.title, "1", ln, "C", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	return y + 7
}

func drawRow(pdf *fpdf.Fpdf, y float64, i int, r domain.HistoryRow, tr func(string) string) {
	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// Alternating row background
	if i%2 == 0 {
		pdf.SetFillColor(250, 250, 250)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	pdf.SetFont("Helvetica", "", 8.5)
	pdf.SetXY(marginL, y)
	for j, c := range columns {
		ln := 0
		if j == len(columns)-1 {
			ln = 1
		}
		w := contentW * c.width
		pdf.CellFormat(w, 6.5, fit(pdf, tr(c.value(r)), w-2), "1", ln, c.align, true, 0, "")
	}
}

func drawFooter(pdf *fpdf.Fpdf, rep Report, tr func(string) string) {
	pageW, pageH := pdf.GetPageSize()
	marginL, _, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	pdf.SetXY(marginL, pageH-marginB-6)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated by Sales Projections", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, tr(rep.Representative.Name)+" | "+rep.GeneratedAt, "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// fit truncates s with an ellipsis so it fits in width w at the current font.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
