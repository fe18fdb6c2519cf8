package cambai

import (
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the default CambAI API base URL.
	DefaultBaseURL = "https://client.camb.ai/apis"

	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 60 * time.Second
)

// Client is the CambAI API client.
//
// A Client holds only immutable configuration. It is safe to run any number
// of job lifecycles on one Client concurrently.
type Client struct {
	// Speech provides text-to-speech jobs.
	Speech *SpeechService

	// Sound provides text-to-sound jobs.
	Sound *SoundService

	// Voice provides text-to-voice jobs and the voice catalog.
	Voice *VoiceService

	// Dubbing provides end-to-end dubbing jobs and the language catalogs.
	Dubbing *DubbingService

	config *clientConfig
	http   *httpClient
}

// clientConfig holds the client configuration.
type clientConfig struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the timeout of a single HTTP request. It does not bound
// the polling phase; see RunOptions.Timeout for that.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for lifecycle debug records.
// If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// NewClient creates a new CambAI API client.
//
// Example:
//
//	client := cambai.NewClient("your-api-key")
//	client := cambai.NewClient("your-api-key", cambai.WithTimeout(90*time.Second))
func NewClient(apiKey string, opts ...Option) *Client {
	cfg := &clientConfig{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{
			Timeout: cfg.timeout,
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	c := &Client{
		config: cfg,
		http:   newHTTPClient(cfg),
	}

	c.Speech = &SpeechService{client: c}
	c.Sound = &SoundService{client: c}
	c.Voice = &VoiceService{client: c}
	c.Dubbing = &DubbingService{client: c}

	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.baseURL
}

func (c *Client) logger() *slog.Logger {
	return c.config.logger
}
