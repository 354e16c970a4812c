// Package probe runs every operation of a parsed document once against a
// live server and compares the returned status with the one the generated
// tests would assert.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhaage/swagger-test-generator/internal/emitter"
	"github.com/jhaage/swagger-test-generator/internal/spec"
	"github.com/jhaage/swagger-test-generator/internal/version"
)

const (
	DefaultTimeout = 10 * time.Second
	pathValue      = "1"
	queryValue     = "test_value"
)

type Options struct {
	// BaseURL overrides the host of the document's base URL. Empty keeps it.
	BaseURL string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Check is the outcome of one operation.
type Check struct {
	Method   spec.HTTPMethod
	Path     string
	URL      string
	Expected int
	Actual   int // zero when no response was received
	Err      error
}

// OK reports whether the operation returned the expected status.
func (c Check) OK() bool { return c.Err == nil && c.Actual == c.Expected }

type Report struct {
	BaseURL string
	Checks  []Check
}

// Failed counts checks that errored or returned an unexpected status.
func (r *Report) Failed() int {
	n := 0
	for _, c := range r.Checks {
		if !c.OK() {
			n++
		}
	}
	return n
}

// Run probes s in document order. Transport failures are recorded on the
// affected check; only cancellation of ctx stops the run early.
func Run(ctx context.Context, s *spec.SwaggerSpec, opts Options) (*Report, error) {
	if s == nil {
		return nil, errors.New("probe: nil spec")
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	base := emitter.ResolveBaseURL(opts.BaseURL, s.BaseURL)
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", version.UserAgent())

	report := &Report{BaseURL: base}
	for _, p := range emitter.Plan(s) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		c := probeOperation(ctx, client, base, p)
		log.Debug("probe", "method", c.Method, "url", c.URL, "expected", c.Expected, "actual", c.Actual, "error", c.Err)
		report.Checks = append(report.Checks, c)
	}
	return report, nil
}

func probeOperation(ctx context.Context, client *resty.Client, base string, p emitter.OperationPlan) Check {
	op := p.Op
	c := Check{Method: op.Method, Path: p.Path, Expected: p.Expected}

	id := pathValue
	if p.Fixture {
		created, err := createFixture(ctx, client, base, p)
		if err != nil {
			c.URL = base + p.Path
			c.Err = fmt.Errorf("create fixture: %w", err)
			return c
		}
		id = created
	}
	c.URL = base + emitter.SubstitutePath(p.Path, op.PathParams, func(name string) string {
		if name == emitter.FixtureParam {
			return url.PathEscape(id)
		}
		return pathValue
	})

	req := client.R().SetContext(ctx)
	for _, q := range op.QueryParams {
		req.SetQueryParam(q.Name, queryValue)
	}
	if p.HasBody() {
		req.SetHeader("Content-Type", "application/json").SetBody(payloadBody(emitter.SamplePayload(op.Method)))
	}
	resp, err := req.Execute(string(op.Method), c.URL)
	if err != nil {
		c.Err = err
		return c
	}
	c.Actual = resp.StatusCode()
	return c
}

// createFixture posts the fixture payload to the collection path and
// returns the id of the created resource.
func createFixture(ctx context.Context, client *resty.Client, base string, p emitter.OperationPlan) (string, error) {
	collection := emitter.SubstitutePath(p.Collection, p.Op.PathParams, func(string) string { return pathValue })
	var created map[string]any
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payloadBody(emitter.FixturePayload(p.Op.Method))).
		SetResult(&created).
		Post(base + collection)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 201 {
		return "", fmt.Errorf("POST %s: expected status 201, got %d", collection, resp.StatusCode())
	}
	switch v := created["id"].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case string:
		if v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("POST %s: response has no id", collection)
}

func payloadBody(p emitter.Payload) map[string]string {
	return map[string]string{"name": p.Name, "email": p.Email}
}

// Summary is a one-line result such as "4/5 operations passed".
func (r *Report) Summary() string {
	return fmt.Sprintf("%d/%d operations passed", len(r.Checks)-r.Failed(), len(r.Checks))
}
