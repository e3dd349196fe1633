package sdk

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Option configures the Client.
type Option func(*clientConfig)

// clientConfig holds configuration for a Client instance.
type clientConfig struct {
	host       string
	apiKey     string
	configFile string
	timeout    time.Duration
	logger     *slog.Logger
	tracer     trace.Tracer
	httpClient *http.Client
}

// WithHost sets the platform base URL.
func WithHost(host string) Option {
	return func(c *clientConfig) {
		c.host = host
	}
}

// WithAPIKey sets the API key exchanged for access tokens.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithConfigFile reads connection settings from a YAML config file.
// Explicit WithHost/WithAPIKey options take precedence over the file.
func WithConfigFile(path string) Option {
	return func(c *clientConfig) {
		c.configFile = path
	}
}

// WithTimeout bounds each individual HTTP request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithLogger sets a custom logger for the client and every handle it
// creates. If not provided, a default JSON logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for distributed tracing of
// platform calls.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *clientConfig) {
		c.tracer = tracer
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}
