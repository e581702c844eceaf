package requestvalidator

import (
	"github.com/spf13/afero"

	"github.com/erraggy/oasguard/formats"
	"github.com/erraggy/oasguard/logger"
	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/openapi"
)

// Option is a functional option for configuring a Validator.
type Option func(*config) error

// config holds the configuration for building a Validator.
type config struct {
	// Document source (exactly one of these must be set)
	filePath string
	content  string
	doc      *openapi.Document

	fs          afero.Fs
	maxFileSize int64
	formats     *formats.Registry
	logger      logger.Logger
}

func defaultConfig() *config {
	return &config{
		logger: logger.NopLogger{},
	}
}

// WithFilePath loads the document from a JSON or YAML file.
func WithFilePath(path string) Option {
	return func(c *config) error {
		c.filePath = path
		return nil
	}
}

// WithContent loads the document from literal JSON or YAML text.
func WithContent(content string) Option {
	return func(c *config) error {
		c.content = content
		return nil
	}
}

// WithDocument uses an already loaded document. This is more efficient when
// several validators share one document.
func WithDocument(doc *openapi.Document) Option {
	return func(c *config) error {
		if doc == nil {
			return &oaserrors.ConfigError{Option: "document", Message: "document cannot be nil"}
		}
		c.doc = doc
		return nil
	}
}

// WithFS sets the filesystem WithFilePath reads from. Default: the OS
// filesystem.
func WithFS(fs afero.Fs) Option {
	return func(c *config) error {
		if fs == nil {
			return &oaserrors.ConfigError{Option: "fs", Message: "filesystem cannot be nil"}
		}
		c.fs = fs
		return nil
	}
}

// WithMaxFileSize sets the maximum document file size in bytes.
// Default: openapi.DefaultMaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(c *config) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "maxFileSize", Value: n, Message: "must be positive"}
		}
		c.maxFileSize = n
		return nil
	}
}

// WithFormats sets the string format registry. Default: formats.NewDefault().
func WithFormats(r *formats.Registry) Option {
	return func(c *config) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "formats", Message: "registry cannot be nil"}
		}
		c.formats = r
		return nil
	}
}

// WithLogger sets the logger for validation diagnostics. Decisions are
// logged at debug level.
func WithLogger(l logger.Logger) Option {
	return func(c *config) error {
		c.logger = logger.OrNop(l)
		return nil
	}
}

// loadDocument resolves the configured source into a document.
func (c *config) loadDocument() (*openapi.Document, error) {
	if c.doc != nil {
		if c.filePath != "" || c.content != "" {
			return nil, &oaserrors.ConfigError{
				Option:  "source",
				Message: "exactly one of file path, content or document must be provided",
			}
		}
		return c.doc, nil
	}

	opts := []openapi.Option{
		openapi.WithFilePath(c.filePath),
		openapi.WithContent(c.content),
		openapi.WithLogger(c.logger),
	}
	if c.fs != nil {
		opts = append(opts, openapi.WithFS(c.fs))
	}
	if c.maxFileSize > 0 {
		opts = append(opts, openapi.WithMaxFileSize(c.maxFileSize))
	}
	return openapi.Load(opts...)
}
