package x402

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

type config struct {
	facilitatorID  string
	facilitatorURL string
	apiKey         string
	signingKey     []byte
	httpClient     *http.Client
	logger         *slog.Logger
	userAgent      string
	clock          func() time.Time
}

// Option customizes the client behavior.
type Option func(*config)

// WithFacilitator overrides the default x402 facilitator identity and URL
// forwarded in the protocol context of every created intent.
func WithFacilitator(id, url string) Option {
	return func(cfg *config) {
		if id != "" {
			cfg.facilitatorID = id
		}
		if url != "" {
			cfg.facilitatorURL = url
		}
	}
}

// WithAPIKey attaches a bearer Authorization header to every request.
func WithAPIKey(key string) Option {
	return func(cfg *config) {
		cfg.apiKey = key
	}
}

// WithSigningKey enables HMAC request signing. Signed requests carry
// Signature and Timestamp headers over the canonical JSON body.
func WithSigningKey(key []byte) Option {
	return func(cfg *config) {
		cfg.signingKey = key
	}
}

// WithHTTPClient replaces the default http.Client, e.g. to set timeouts or
// a custom transport.
func WithHTTPClient(client *http.Client) Option {
	if client == nil {
		panic("x402: http client must not be nil")
	}
	return func(cfg *config) {
		cfg.httpClient = client
	}
}

// WithDebug enables verbose request and verification logging to stdout.
func WithDebug() Option {
	return func(cfg *config) {
		cfg.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
}

// WithLogger routes debug logging through an existing slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(cfg *config) {
		if ua != "" {
			cfg.userAgent = ua
		}
	}
}

// withClock provides deterministic signing timestamps in tests.
func withClock(fn func() time.Time) Option {
	return func(cfg *config) {
		cfg.clock = fn
	}
}
