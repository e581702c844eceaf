package middleware

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/erraggy/oasguard/logger"
	"github.com/erraggy/oasguard/oaserrors"
)

// DefaultRequestIDHeader is the header carrying the request ID.
const DefaultRequestIDHeader = "X-Request-Id"

// Option is a functional option for configuring a Middleware.
type Option func(*config) error

type config struct {
	logger          logger.Logger
	registerer      prometheus.Registerer
	maxBodySize     int64
	requestIDHeader string
}

func defaultConfig() *config {
	return &config{
		logger:          logger.NopLogger{},
		requestIDHeader: DefaultRequestIDHeader,
	}
}

// WithLogger sets the logger rejections and errors are reported to.
func WithLogger(l logger.Logger) Option {
	return func(c *config) error {
		c.logger = logger.OrNop(l)
		return nil
	}
}

// WithRegisterer registers the middleware metrics with reg. Without it the
// metrics are collected but not exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) error {
		c.registerer = reg
		return nil
	}
}

// WithMaxBodySize sets the largest request body read for validation.
// Default: requestvalidator.DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(c *config) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "maxBodySize", Value: n, Message: "must be positive"}
		}
		c.maxBodySize = n
		return nil
	}
}

// WithRequestIDHeader changes the request ID header name.
func WithRequestIDHeader(name string) Option {
	return func(c *config) error {
		if name == "" {
			return &oaserrors.ConfigError{Option: "requestIDHeader", Message: "header name cannot be empty"}
		}
		c.requestIDHeader = name
		return nil
	}
}
