// Package api is the typed client for the remote projections REST service.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/csg33k/salesproj/internal/domain"
)

const tracerName = "github.com/csg33k/salesproj/internal/adapters/api"

// ErrUnavailable wraps transport failures and success responses that could
// not be decoded.
var ErrUnavailable = domain.ErrUnavailable

// Error is returned when the API responds with a non-2xx status.
type Error = domain.APIError

// Client talks to the projections API rooted at BaseURL (which already
// includes the /api/v1 prefix).
type Client struct {
	baseURL string
	http    *http.Client
	loc     *time.Location
	tracer  trace.Tracer
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLocation sets the zone used to resolve RFC 3339 entry dates into
// calendar dates.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// New creates a Client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		loc:     time.Local,
		tracer:  otel.Tracer(tracerName),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ListProjections calls GET /projections/{id}.
func (c *Client) ListProjections(ctx context.Context, representativeID string) ([]domain.ProjectionEntry, error) {
	ctx, span := c.tracer.Start(ctx, "api.ListProjections",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("salesproj.representative_id", representativeID)))
	defer span.End()

	var out []wireEntry
	if err := c.do(ctx, http.MethodGet, "/projections/"+url.PathEscape(representativeID), nil, &out); err != nil {
		recordError(span, err)
		return nil, err
	}
	entries := make([]domain.ProjectionEntry, 0, len(out))
	for i, w := range out {
		e, err := w.toDomain(c.loc)
		if err != nil {
			err = fmt.Errorf("%w: decode projection %d: %v", ErrUnavailable, i, err)
			recordError(span, err)
			return nil, err
		}
		entries = append(entries, e)
	}
	span.SetAttributes(attribute.Int("salesproj.entries", len(entries)))
	return entries, nil
}

// SubmitProjection calls POST /projections and returns the server's message.
func (c *Client) SubmitProjection(ctx context.Context, p domain.ProjectionPayload) (string, error) {
	ctx, span := c.tracer.Start(ctx, "api.SubmitProjection",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("salesproj.representative_id", p.SalespersonID)))
	defer span.End()

	var out messageBody
	if err := c.do(ctx, http.MethodPost, "/projections", newSubmitRequest(p), &out); err != nil {
		recordError(span, err)
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			apiErr.Message = strings.TrimSpace(eb.Error)
		}
		return apiErr
	}

	// An empty success body (204, or 201 without content) leaves out untouched.
	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
		}
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
