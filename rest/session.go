package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/matgraph/sdk/apierr"
	"github.com/matgraph/sdk/jobs"
)

// tokenRefreshMargin is how long before expiry a token is considered
// stale. Refreshing early avoids racing the server's clock.
const tokenRefreshMargin = 30 * time.Second

const defaultRequestTimeout = 60 * time.Second

// Session is an authenticated connection to the platform. It exchanges
// the configured API key for a short-lived bearer token, refreshes the
// token before expiry, and maps non-2xx responses onto the structured
// apierr taxonomy. A Session is safe for concurrent use.
//
// The Session performs no internal retries: errors carry a Retryable
// flag and retry policy is left to the caller.
type Session struct {
	host       string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
	userAgent  string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithHTTPClient sets the underlying HTTP client. Useful for tests and
// for callers with their own transport configuration.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) {
		s.httpClient = c
	}
}

// WithLogger sets a custom logger. If not provided, logging is
// discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for request spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Session) {
		s.tracer = tracer
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(s *Session) {
		s.userAgent = ua
	}
}

// NewSession creates a session for the given configuration.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	s := &Session{
		host:      strings.TrimRight(cfg.Host, "/"),
		apiKey:    cfg.APIKey,
		userAgent: "matgraph-sdk-go",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: timeout}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.tracer == nil {
		s.tracer = noop.NewTracerProvider().Tracer("matgraph-sdk")
	}
	return s, nil
}

// PutBatch writes one batch of serialized objects and returns the
// platform's built objects in submission order.
func (s *Session) PutBatch(ctx context.Context, path string, objs []map[string]any, params url.Values) ([]map[string]any, error) {
	var resp struct {
		Objects []map[string]any `json:"objects"`
	}
	body := map[string]any{"objects": objs}
	if err := s.Do(ctx, http.MethodPut, path, params, body, &resp); err != nil {
		return nil, err
	}
	return resp.Objects, nil
}

// PostDelete starts an asynchronous server-side deletion job and
// returns its job id.
func (s *Session) PostDelete(ctx context.Context, path string, body any) (string, error) {
	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := s.Do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return "", err
	}
	return resp.JobID, nil
}

// GetJob fetches a snapshot of an asynchronous job.
func (s *Session) GetJob(ctx context.Context, path, jobID string) (jobs.Job, error) {
	var job jobs.Job
	if err := s.Do(ctx, http.MethodGet, path+"/"+url.PathEscape(jobID), nil, nil, &job); err != nil {
		return jobs.Job{}, err
	}
	return job, nil
}

// GetJSON performs a GET and decodes the JSON response into out.
func (s *Session) GetJSON(ctx context.Context, path string, params url.Values, out any) error {
	return s.Do(ctx, http.MethodGet, path, params, nil, out)
}

// Do performs one authenticated request. A non-nil body is sent as
// JSON; a non-nil out receives the decoded JSON response. Non-2xx
// responses come back as *apierr.Error. A single transparent token
// refresh is attempted when the platform reports the bearer token
// expired mid-flight.
func (s *Session) Do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	op := fmt.Sprintf("%s %s", method, path)
	ctx, span := s.tracer.Start(ctx, "rest.request", trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	))
	defer span.End()

	status, raw, err := s.roundTrip(ctx, method, path, params, body, false)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		s.logger.DebugContext(ctx, "token rejected, refreshing", "path", path)
		status, raw, err = s.roundTrip(ctx, method, path, params, body, true)
		if err != nil {
			return err
		}
	}
	if status < 200 || status > 299 {
		apiError := apierr.FromStatus(op, status, string(raw))
		s.logger.DebugContext(ctx, "request failed",
			"path", path, "status", status, "code", apiError.Code)
		return apiError
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return apierr.Wrap(op, fmt.Errorf("decoding response: %w", err))
		}
	}
	return nil
}

func (s *Session) roundTrip(ctx context.Context, method, path string, params url.Values, body any, forceRefresh bool) (int, []byte, error) {
	op := fmt.Sprintf("%s %s", method, path)
	token, err := s.accessToken(ctx, forceRefresh)
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, apierr.Wrap(op, fmt.Errorf("encoding request: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	target := s.host + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, apierr.Wrap(op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, nil, apierr.Wrap(op, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, apierr.Wrap(op, err)
	}
	return resp.StatusCode, raw, nil
}

// accessToken returns a valid bearer token, exchanging the API key for
// a fresh one when the cached token is missing, stale, or a forced
// refresh is requested.
func (s *Session) accessToken(ctx context.Context, force bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !force && s.token != "" && time.Now().Add(tokenRefreshMargin).Before(s.tokenExpiry) {
		return s.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.host+"/tokens", nil)
	if err != nil {
		return "", apierr.Wrap("refresh token", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", apierr.Wrap("refresh token", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierr.Wrap("refresh token", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apierr.FromStatus("refresh token", resp.StatusCode, string(raw))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", apierr.Wrap("refresh token", fmt.Errorf("decoding token response: %w", err))
	}
	if payload.AccessToken == "" {
		return "", apierr.New("refresh token", apierr.CodeUnauthorized, "platform returned an empty token")
	}
	s.token = payload.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	s.logger.DebugContext(ctx, "access token refreshed", "expires_in", payload.ExpiresIn)
	return s.token, nil
}
