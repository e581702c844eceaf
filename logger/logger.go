// Package logger defines the structured logging interface used across
// oasguard, with adapters for log/slog and go-kit/log.
package logger

import (
	"log/slog"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is the interface that oasguard uses for structured logging.
//
// The interface is minimal yet compatible with popular logging libraries.
// It uses variadic key-value pairs for structured attributes, following the
// same convention as log/slog:
//
//	logger.Debug("matched server", "server", "https://api.example.com", "path", "/users")
//
// Keys should be strings, and values can be any type that the underlying
// logger can serialize.
//
// # Usage with log/slog
//
//	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
//	v, err := requestvalidator.New(
//	    requestvalidator.WithFilePath("openapi.json"),
//	    requestvalidator.WithLogger(logger.NewSlogAdapter(slog.New(handler))),
//	)
//
// # Usage with go-kit/log
//
//	kl := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
//	mw, err := middleware.New(v, middleware.WithLogger(logger.NewKitAdapter(kl)))
type Logger interface {
	// Debug logs at debug level. Use for detailed diagnostic information.
	Debug(msg string, attrs ...any)

	// Info logs at info level. Use for general operational information.
	Info(msg string, attrs ...any)

	// Warn logs at warn level. Use for potentially harmful situations.
	Warn(msg string, attrs ...any)

	// Error logs at error level. Use for error conditions.
	Error(msg string, attrs ...any)

	// With returns a new Logger with the given attributes prepended to every log.
	With(attrs ...any) Logger
}

// NopLogger is a no-op logger that discards all output.
// It is the default logger used when no logger is configured.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(_ string, _ ...any) {}

// Info implements Logger.
func (NopLogger) Info(_ string, _ ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(_ string, _ ...any) {}

// Error implements Logger.
func (NopLogger) Error(_ string, _ ...any) {}

// With implements Logger.
func (n NopLogger) With(_ ...any) Logger { return n }

// Ensure NopLogger implements Logger at compile time.
var _ Logger = NopLogger{}

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}

// SlogAdapter wraps a *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter from a *slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements Logger.
func (s *SlogAdapter) Debug(msg string, attrs ...any) {
	s.logger.Debug(msg, attrs...)
}

// Info implements Logger.
func (s *SlogAdapter) Info(msg string, attrs ...any) {
	s.logger.Info(msg, attrs...)
}

// Warn implements Logger.
func (s *SlogAdapter) Warn(msg string, attrs ...any) {
	s.logger.Warn(msg, attrs...)
}

// Error implements Logger.
func (s *SlogAdapter) Error(msg string, attrs ...any) {
	s.logger.Error(msg, attrs...)
}

// With implements Logger.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

// Ensure SlogAdapter implements Logger at compile time.
var _ Logger = (*SlogAdapter)(nil)

// KitAdapter wraps a go-kit log.Logger to implement the Logger interface.
// Messages are emitted under the "msg" key and levels through the go-kit
// level package, so level.NewFilter applies as usual.
type KitAdapter struct {
	logger kitlog.Logger
}

// NewKitAdapter creates a new KitAdapter. If logger is nil, a no-op go-kit
// logger is used.
func NewKitAdapter(logger kitlog.Logger) *KitAdapter {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &KitAdapter{logger: logger}
}

func (k *KitAdapter) log(lvl func(kitlog.Logger) kitlog.Logger, msg string, attrs []any) {
	kv := make([]any, 0, len(attrs)+2)
	kv = append(kv, "msg", msg)
	kv = append(kv, attrs...)
	_ = lvl(k.logger).Log(kv...)
}

// Debug implements Logger.
func (k *KitAdapter) Debug(msg string, attrs ...any) { k.log(level.Debug, msg, attrs) }

// Info implements Logger.
func (k *KitAdapter) Info(msg string, attrs ...any) { k.log(level.Info, msg, attrs) }

// Warn implements Logger.
func (k *KitAdapter) Warn(msg string, attrs ...any) { k.log(level.Warn, msg, attrs) }

// Error implements Logger.
func (k *KitAdapter) Error(msg string, attrs ...any) { k.log(level.Error, msg, attrs) }

// With implements Logger.
func (k *KitAdapter) With(attrs ...any) Logger {
	return &KitAdapter{logger: kitlog.With(k.logger, attrs...)}
}

// Ensure KitAdapter implements Logger at compile time.
var _ Logger = (*KitAdapter)(nil)
