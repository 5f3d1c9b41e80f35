// Package templates renders the sales projection page and its htmx
// fragments. Components are templ.Component values backed by html/template.
package templates

import (
	"context"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/csg33k/salesproj/internal/adapters/htmlview"
	"github.com/csg33k/salesproj/internal/domain"
)

// Options carry request-scoped values the templates need.
type Options struct {
	// CSRFField is the hidden token input; empty when CSRF is off.
	CSRFField template.HTML
	// CSRFToken is sent as the X-CSRF-Token header on htmx requests.
	CSRFToken string
	// PollAfter is when the browser asks again for the notification.
	PollAfter time.Duration
}

type pageData struct {
	S        htmlview.Snapshot
	Opts     Options
	Statuses []string
}

type notificationData struct {
	Message *domain.Notification
	Opts    Options
}

// Page is the full document.
func Page(s htmlview.Snapshot, o Options) templ.Component {
	return component("page", pageData{S: s, Opts: o, Statuses: statusValues()})
}

// App is the #app fragment swapped by the selector and the form.
func App(s htmlview.Snapshot, o Options) templ.Component {
	return component("app", pageData{S: s, Opts: o, Statuses: statusValues()})
}

// Notification is the #notification fragment polled after each message.
func Notification(n *domain.Notification, o Options) templ.Component {
	return component("notification", notificationData{Message: n, Opts: o})
}

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return pageTmpl.ExecuteTemplate(w, name, data)
	})
}

var pageTmpl = template.Must(template.New("salesproj").Funcs(template.FuncMap{
	"delay":   htmxDelay,
	"pdfPath": pdfPath,
	"notice":  notice,
}).Parse(`{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Daily Sales Projections</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<style>
  :root {
    --ink: #0d1117;
    --paper: #f5f0e8;
    --ledger: #e8e0cc;
    --accent: #c0392b;
    --accent2: #2c6e49;
    --muted: #6b5e4e;
    --rule: #b8a898;
  }
  * { box-sizing: border-box; }
  body {
    background: var(--paper);
    color: var(--ink);
    font-family: 'IBM Plex Sans', sans-serif;
    margin: 0 auto;
    max-width: 960px;
    padding: 24px;
  }
  .mono { font-family: 'IBM Plex Mono', monospace; }
  .card {
    background: rgba(255,255,255,0.7);
    border: 1px solid var(--ledger);
    border-left: 4px solid var(--ink);
    padding: 16px;
    margin-bottom: 20px;
  }
  .field-label {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.6rem;
    font-weight: 600;
    letter-spacing: 0.1em;
    text-transform: uppercase;
    color: var(--muted);
    display: block;
    margin-bottom: 2px;
  }
  input, select, textarea {
    background: white;
    border: 1px solid var(--rule);
    border-bottom: 2px solid var(--ink);
    padding: 6px 8px;
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.85rem;
    width: 100%;
    outline: none;
  }
  input:focus, select:focus, textarea:focus { border-bottom-color: var(--accent); }
  .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 12px 16px; }
  .btn {
    font-family: 'IBM Plex Mono', monospace;
    font-weight: 600;
    font-size: 0.8rem;
    letter-spacing: 0.08em;
    padding: 8px 18px;
    border: 2px solid var(--ink);
    background: var(--ink);
    color: white;
    cursor: pointer;
    text-transform: uppercase;
  }
  .btn:hover { background: var(--accent); border-color: var(--accent); }
  .btn[disabled] { opacity: 0.5; cursor: wait; }
  .section-header {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.7rem;
    font-weight: 600;
    letter-spacing: 0.18em;
    text-transform: uppercase;
    color: var(--muted);
    border-bottom: 1px solid var(--rule);
    padding-bottom: 4px;
    margin-bottom: 16px;
  }
  table { width: 100%; border-collapse: collapse; font-size: 0.85rem; }
  th { text-align: left; background: var(--ink); color: white; padding: 6px; font-family: 'IBM Plex Mono', monospace; font-size: 0.7rem; }
  td { padding: 6px; border-bottom: 1px solid var(--ledger); }
  td.amount { text-align: right; font-family: 'IBM Plex Mono', monospace; }
  .notification { padding: 10px 14px; margin-bottom: 16px; font-weight: 500; }
  .notification.success { background: #dff0e4; border-left: 4px solid var(--accent2); color: var(--accent2); }
  .notification.error { background: #f8e1de; border-left: 4px solid var(--accent); color: var(--accent); }
  .hidden { display: none; }
  .muted { color: var(--muted); }
  .error-text { color: var(--accent); }
</style>
</head>
<body hx-headers='{"X-CSRF-Token": "{{.Opts.CSRFToken}}"}'>
<header class="section-header">Daily Sales Projections</header>
{{template "app" .}}
</body>
</html>{{end}}

{{define "app"}}<main id="app">
{{template "notification" (notice .S.Message .Opts)}}
<section class="card">
  <label class="field-label" for="salespersonSelect">Sales Representative</label>
  <select id="salespersonSelect" name="salespersonId"
          hx-post="/selection" hx-trigger="change" hx-target="#app" hx-swap="outerHTML">
    {{range .S.Representatives}}<option value="{{.ID}}"{{if eq .ID $.S.SelectedID}} selected{{end}}>{{.Name}}</option>
    {{end}}
  </select>
</section>

<section class="card">
  <div class="section-header">New Projection</div>
  <form id="projectionForm" hx-post="/projections" hx-target="#app" hx-swap="outerHTML" hx-disabled-elt="find button">
    {{.Opts.CSRFField}}
    <input type="hidden" name="salespersonId" value="{{.S.SelectedID}}">
    <div class="grid">
      <div>
        <label class="field-label" for="entryDate">Date</label>
        <input type="date" id="entryDate" name="entryDate" value="{{.S.Form.EntryDate}}" required>
      </div>
      <div>
        <label class="field-label" for="commitmentStatus">Commitment Status</label>
        <select id="commitmentStatus" name="commitmentStatus">
          {{range .Statuses}}<option value="{{.}}"{{if eq . $.S.Form.CommitmentStatus}} selected{{end}}>{{.}}</option>
          {{end}}
        </select>
      </div>
      <div>
        <label class="field-label" for="projectedAmount">Projected Amount</label>
        <input type="text" inputmode="decimal" id="projectedAmount" name="projectedAmount" value="{{.S.Form.ProjectedAmount}}" required>
      </div>
      <div>
        <label class="field-label" for="actualAmount">Actual Amount</label>
        <input type="text" inputmode="decimal" id="actualAmount" name="actualAmount" value="{{.S.Form.ActualAmount}}" required>
      </div>
    </div>
    <div style="margin-top:12px">
      <label class="field-label" for="productService">Products / Services (comma separated)</label>
      <input type="text" id="productService" name="productService" value="{{.S.Form.ProductService}}">
    </div>
    <div style="margin-top:12px">
      <label class="field-label" for="comments">Comments</label>
      <textarea id="comments" name="comments" rows="3">{{.S.Form.Comments}}</textarea>
    </div>
    <div style="margin-top:16px"><button type="submit" class="btn">Submit Projection</button></div>
  </form>
</section>

<section class="card" id="history">
  <div class="section-header">Projection History</div>
  {{if .S.ActiveName}}<h2 id="activeName" class="mono">{{.S.ActiveName}}</h2>{{end}}
  {{if eq .S.Display.String "loading"}}<p class="muted" id="historyStatus">Loading projections...</p>
  {{else if eq .S.Display.String "error"}}<p class="error-text" id="historyStatus">{{.S.DisplayText}}</p>
  {{else if eq .S.Display.String "table"}}
  <table id="projectionsTable">
    <thead><tr><th>Date</th><th>Projected</th><th>Actual</th><th>Status</th><th>Comments</th><th>Submitted</th></tr></thead>
    <tbody>
    {{range .S.Rows}}<tr>
      <td>{{.Date}}</td><td class="amount">{{.Projected}}</td><td class="amount">{{.Actual}}</td>
      <td>{{.Status}}</td><td>{{.Comments}}</td><td>{{.SubmittedAt}}</td>
    </tr>{{end}}
    </tbody>
  </table>
  {{if .S.SelectedID}}<p><a class="mono" href="{{pdfPath .S.SelectedID}}">Download PDF</a></p>{{end}}
  {{else}}<p class="muted" id="historyStatus">{{.S.DisplayText}}</p>
  {{end}}
</section>
</main>{{end}}

{{define "notification"}}{{with .Message}}<div id="notification" class="notification {{.Kind}}" role="status"
     hx-get="/notification" hx-trigger="load delay:{{delay $.Opts.PollAfter}}" hx-swap="outerHTML">{{.Text}}</div>{{else}}<div id="notification" class="notification hidden" role="status"></div>{{end}}{{end}}
`))
