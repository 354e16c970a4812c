package spec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhaage/swagger-test-generator/internal/version"
)

// Settings configures loader behavior.
type Settings struct {
	// HTTPTimeout bounds each HTTP request when the input is a URL.
	HTTPTimeout time.Duration
	// MaxRetries is the number of attempts for transient HTTP failures
	// (>=500, 429, or network errors). One means no retry.
	MaxRetries int
	// BackoffBase is the base delay between retries.
	BackoffBase time.Duration
	// Logger receives debug diagnostics. Nil discards them.
	Logger *slog.Logger
	// Location is reported in errors when parsing raw bytes.
	Location string
}

// DefaultSettings returns recommended defaults.
func DefaultSettings() Settings {
	return Settings{
		HTTPTimeout: 10 * time.Second,
		MaxRetries:  1,
		BackoffBase: 200 * time.Millisecond,
	}
}

// Option mutates Settings.
type Option func(*Settings)

func WithHTTPTimeout(d time.Duration) Option { return func(s *Settings) { s.HTTPTimeout = d } }
func WithMaxRetries(n int) Option { return func(s *Settings) { s.MaxRetries = n } }
func WithBackoffBase(d time.Duration) Option { return func(s *Settings) { s.BackoffBase = d } }
func WithLogger(l *slog.Logger) Option { return func(s *Settings) { s.Logger = l } }
func WithLocation(location string) Option { return func(s *Settings) { s.Location = location } }

func (s Settings) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Load reads the document named by input and parses it. input may be a
// filesystem path or an http/https URL.
func Load(ctx context.Context, input string, opts ...Option) (*SwaggerSpec, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &SpecError{Code: IOError, Message: "spec: input is empty"}
	}
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	u, uerr := url.Parse(input)
	if uerr == nil && u.Scheme != "" && u.Host != "" {
		scheme := strings.ToLower(u.Scheme)
		if scheme != "http" && scheme != "https" {
			return nil, &SpecError{Code: IOError, Message: fmt.Sprintf("spec: unsupported URL scheme %q (only http/https allowed)", scheme), Location: input}
		}
		raw, err := fetch(ctx, input, settings)
		if err != nil {
			return nil, &SpecError{Code: IOError, Message: fmt.Sprintf("fetch %s: %v", input, err), Location: input, Cause: err}
		}
		settings.Location = input
		return parse(raw, settings)
	}

	return parseFile(input, settings)
}

// ParseFile reads a JSON document from disk and parses it.
func ParseFile(path string, opts ...Option) (*SwaggerSpec, error) {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}
	return parseFile(path, settings)
}

// Parse normalizes an in-memory JSON document.
func Parse(data []byte, opts ...Option) (*SwaggerSpec, error) {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}
	return parse(data, settings)
}

func parseFile(path string, settings Settings) (*SwaggerSpec, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &SpecError{Code: IOError, Message: fmt.Sprintf("resolve path: %v", err), Location: path, Cause: err}
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, &SpecError{Code: IOError, Message: fmt.Sprintf("read file %s: %v", abs, err), Location: abs, Cause: err}
	}
	settings.Location = abs
	return parse(raw, settings)
}

func parse(data []byte, settings Settings) (*SwaggerSpec, error) {
	log := settings.logger()
	loc := settings.Location

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, &SpecError{Code: JSONError, Message: fmt.Sprintf("decode json: %v", err), Location: loc, Cause: err}
	}
	raw, _ := decoded.(map[string]any)
	version, err := detectSpecVersion(raw)
	if err != nil {
		return nil, &SpecError{Code: UnsupportedVersion, Message: err.Error(), Location: loc}
	}

	// Ordered view of the same document, keeping key order for paths and
	// responses.
	root, err := decodeOrdered(data)
	if err != nil {
		return nil, &SpecError{Code: JSONError, Message: fmt.Sprintf("decode document tree: %v", err), Location: loc, Cause: err}
	}

	s := &SwaggerSpec{Raw: raw, Version: version}
	var d dialect
	if version == "2.0" {
		h := decodeV2Header(data, raw, log)
		s.BaseURL = v2BaseURL(h)
		s.Title = nonEmpty(h.Info.Title)
		d = v2Dialect{}
	} else {
		h := decodeV3Header(data, raw, log)
		s.BaseURL = v3BaseURL(h)
		if h.Info != nil {
			s.Title = nonEmpty(h.Info.Title)
		}
		d = v3Dialect{}
	}

	pathsNode := lookup(root, "paths")
	if pathsNode == nil {
		return nil, &SpecError{Code: InvalidSpec, Message: "spec: no paths defined", Location: loc}
	}
	s.Paths = normalizePaths(pathsNode, d)

	log.Debug("parsed document",
		"location", loc,
		"version", s.Version,
		"base_url", s.BaseURL,
		"paths", len(s.Paths),
		"operations", s.OperationCount(),
	)
	return s, nil
}

// detectSpecVersion returns "2.0" for Swagger v2 or the openapi string for v3.
func detectSpecVersion(root map[string]any) (string, error) {
	if s, ok := root["swagger"].(string); ok && s == "2.0" {
		return s, nil
	}
	if s, ok := root["openapi"].(string); ok && strings.HasPrefix(s, "3.") {
		return s, nil
	}
	return "", fmt.Errorf("spec: unsupported or missing version (expected 'swagger: \"2.0\"' or 'openapi: 3.x')")
}

func fetch(ctx context.Context, rawURL string, settings Settings) ([]byte, error) {
	attempts := settings.MaxRetries
	if attempts <= 0 {
		attempts = 1
	}
	backoff := settings.BackoffBase
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	client := resty.New().
		SetTimeout(settings.HTTPTimeout).
		SetHeader("User-Agent", version.UserAgent()).
		SetRetryCount(attempts-1).
		SetRetryWaitTime(backoff).
		SetRetryMaxWaitTime(backoff * time.Duration(1<<attempts)).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() >= http.StatusInternalServerError || r.StatusCode() == http.StatusTooManyRequests
		})

	resp, err := client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() >= 300 {
		body := resp.Body()
		if len(body) > 1024 {
			body = body[:1024]
		}
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), strings.TrimSpace(string(body)))
	}
	return resp.Body(), nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
