package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/salesproj/internal/page"
)

func TestIndex_FirstVisitLoadsPage(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, h.cookie, "session cookie is set")
	assert.True(t, h.cookie.HttpOnly)

	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `<option value="a-1" selected>Alice Smith</option>`)
	assert.Contains(t, body, `<h2 id="activeName" class="mono">Alice Smith</h2>`)
	assert.Contains(t, body, "$450.50")
	assert.Contains(t, body, "Partially Met")
	assert.Contains(t, body, `value="2024-03-04"`, "entry date is prefilled with today")
	assert.Equal(t, []string{alice}, h.backend.listCalls())
}

func TestIndex_ReloadResetsPage(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/", nil)
	first := h.cookie.Value

	form := validForm(alice)
	form.Set("projectedAmount", "abc")
	form.Set("entryDate", "2024-02-01")
	h.do(http.MethodPost, "/projections", form)
	h.backend.add(alice, map[string]any{
		"date": "2024-03-01", "projectedamount": 800, "actualamount": 777,
		"commitmentstatus": "Met", "comments": "late entry",
		"timestampsubmitted": "2024-03-01T12:00:00Z",
	})

	rec := h.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, first, h.cookie.Value, "session is reused")
	assert.Equal(t, 1, h.handler.Sessions().Len())
	assert.Equal(t, []string{alice, alice}, h.backend.listCalls())

	body := rec.Body.String()
	assert.Contains(t, body, "$777.00", "entry added since the first load is shown")
	assert.Contains(t, body, "late entry")
	assert.NotContains(t, body, `value="abc"`)
	assert.NotContains(t, body, page.MsgValidation)
	assert.NotContains(t, body, `value="2024-02-01"`)
	assert.Contains(t, body, `value="2024-03-04"`, "entry date is today again")
}

func TestIndex_UnknownPathIsNotFound(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSelection_SwitchesRepresentative(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/", nil)

	rec := h.do(http.MethodPost, "/selection", url.Values{"salespersonId": {bob}})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, "<!DOCTYPE html>", "fragment only")
	assert.Contains(t, body, `<main id="app">`)
	assert.Contains(t, body, `<option value="b-2" selected>Bob Johnson</option>`)
	assert.Contains(t, body, "Bob Johnson</h2>")
	assert.Contains(t, body, page.MsgNoProjections)
	assert.NotContains(t, body, "$450.50")
	assert.Equal(t, []string{alice, bob}, h.backend.listCalls())
}

func TestSelection_APIErrorShowsServerText(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/", nil)

	body := h.do(http.MethodPost, "/selection", url.Values{"salespersonId": {"missing"}}).Body.String()
	assert.Contains(t, body, "Error loading projections: User not found")
	assert.Contains(t, body, page.MsgHistoryError)
}

func TestMutatingRoutes_WithoutSessionRedirect(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/selection", "/projections"} {
		rec := h.do(http.MethodPost, path, url.Values{})
		assert.Equal(t, "/", rec.Header().Get("HX-Redirect"), path)
	}
	assert.Empty(t, h.backend.listCalls())
}

func TestSubmit_InvalidFormMakesNoCall(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/", nil)

	form := validForm(alice)
	form.Set("projectedAmount", "lots")
	rec := h.do(http.MethodPost, "/projections", form)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, page.MsgValidation)
	assert.Contains(t, body, `value="lots"`, "typed values are kept")
	assert.Zero(t, h.backend.postCount())
}

func TestSubmit_SuccessClearsFormAndRefreshes(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/", nil)

	rec := h.do(http.MethodPost, "/projections", validForm(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, h.backend.postCount())

	body := rec.Body.String()
	assert.Contains(t, body, "Daily projection submitted successfully!")
	assert.Contains(t, body, "$450.50", "earlier entry is still listed")
	assert.Contains(t, body, "$650.25", "submitted entry is listed")
	assert.Contains(t, body, `id="projectedAmount" name="projectedAmount" value=""`)
	assert.Contains(t, body, `value="2024-03-04"`, "date stays")
	assert.Equal(t, []string{alice, alice}, h.backend.listCalls())

	post := h.backend.posts[0]
	assert.Nil(t, post["comments"])
	assert.Equal(t, []any{"Widgets", "Support"}, post["productService"])
}

func TestNotification_AutoClears(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodGet, "/", nil)
	h.do(http.MethodPost, "/projections", validForm(alice))

	body := h.do(http.MethodGet, "/notification", nil).Body.String()
	assert.Contains(t, body, "Daily projection submitted successfully!")
	assert.Contains(t, body, `hx-trigger="load delay:5250ms"`)

	h.clock.Advance(5 * time.Second)

	body = h.do(http.MethodGet, "/notification", nil).Body.String()
	assert.Contains(t, body, `class="notification hidden"`)
	assert.NotContains(t, body, "submitted successfully")
}

func TestNotification_WithoutSession(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/notification", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="notification hidden"`)
}

func TestHistoryPDF(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/history/"+alice+"/pdf", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="projections_a-1_20240304.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestHistoryPDF_APIError(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/history/missing/pdf", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Nil(t, h.cookie, "health checks do not start sessions")
	assert.Equal(t, 0, h.handler.Sessions().Len())
}
