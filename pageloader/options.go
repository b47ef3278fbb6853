package pageloader

import (
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultMaxSize limits the size of a fragment.
	DefaultMaxSize = 4 << 20
	// DefaultTimeout is the timeout of the default http client.
	DefaultTimeout = 30 * time.Second
)

type options struct {
	client  *http.Client
	logger  *slog.Logger
	maxSize int64
}

// Option configures a Loader.
type Option func(*options)

// WithHTTPClient sets the client used for requests.
// If nil is passed, a client with DefaultTimeout is used.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c == nil {
			c = &http.Client{Timeout: DefaultTimeout}
		}
		o.client = c
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = discardLogger()
		}
		o.logger = l
	}
}

// WithMaxSize sets the maximum fragment size in bytes.
// Non-positive values mean DefaultMaxSize.
func WithMaxSize(n int64) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultMaxSize
		}
		o.maxSize = n
	}
}

func defaultOptions() options {
	return options{
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  discardLogger(),
		maxSize: DefaultMaxSize,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
