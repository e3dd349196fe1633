package sdk

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/matgraph/sdk/dataset"
	"github.com/matgraph/sdk/rest"
)

// Client is the entry point to the platform. It owns the authenticated
// session and hands out resource handles scoped to it.
type Client struct {
	session *rest.Session
	logger  *slog.Logger
	cfg     clientConfig
}

// NewClient creates a platform client. Connection settings come from
// explicit options, a YAML config file (WithConfigFile), or the
// MATGRAPH_HOST and MATGRAPH_API_KEY environment variables, in that
// order of precedence.
//
// Example:
//
//	client, err := sdk.NewClient(
//	    sdk.WithHost("https://api.matgraph.io"),
//	    sdk.WithAPIKey("my-key"),
//	    sdk.WithLogger(logger),
//	)
func NewClient(opts ...Option) (*Client, error) {
	var cfg clientConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	conf := rest.Config{Timeout: cfg.timeout}
	if cfg.configFile != "" {
		loaded, err := rest.LoadConfig(cfg.configFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
		}
		conf.Host = loaded.Host
		conf.APIKey = loaded.APIKey
		if conf.Timeout == 0 {
			conf.Timeout = loaded.Timeout
		}
	} else {
		conf.Host = os.Getenv(rest.EnvHost)
		conf.APIKey = os.Getenv(rest.EnvAPIKey)
	}
	if cfg.host != "" {
		conf.Host = cfg.host
	}
	if cfg.apiKey != "" {
		conf.APIKey = cfg.apiKey
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	sessionOpts := []rest.Option{rest.WithLogger(logger)}
	if cfg.tracer != nil {
		sessionOpts = append(sessionOpts, rest.WithTracer(cfg.tracer))
	}
	if cfg.httpClient != nil {
		sessionOpts = append(sessionOpts, rest.WithHTTPClient(cfg.httpClient))
	}

	session, err := rest.NewSession(conf, sessionOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}

	return &Client{session: session, logger: logger, cfg: cfg}, nil
}

// Dataset returns a handle on the dataset with the given id.
func (c *Client) Dataset(id string) *dataset.Dataset {
	opts := []dataset.Option{dataset.WithLogger(c.logger)}
	if c.cfg.tracer != nil {
		opts = append(opts, dataset.WithTracer(c.cfg.tracer))
	}
	return dataset.New(id, c.session, opts...)
}

// Session exposes the underlying authenticated session for callers
// that need endpoints the typed surface does not cover.
func (c *Client) Session() *rest.Session {
	return c.session
}
