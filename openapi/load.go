package openapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasguard/logger"
	"github.com/erraggy/oasguard/oaserrors"
)

// DefaultMaxFileSize is the largest schema file Load reads unless
// WithMaxFileSize says otherwise.
const DefaultMaxFileSize int64 = 10 << 20

// ErrNoSource is matched (through errors.Is) by the error Load returns when
// neither a file path nor content was supplied.
var ErrNoSource = errors.New("no schema provided")

// Option is a functional option for configuring Load.
type Option func(*config) error

// config holds the configuration for loading a document.
type config struct {
	// Document source (exactly one of these must be set)
	filePath string
	content  string

	fs          afero.Fs
	maxFileSize int64
	logger      logger.Logger
}

func defaultConfig() *config {
	return &config{
		fs:          afero.NewOsFs(),
		maxFileSize: DefaultMaxFileSize,
		logger:      logger.NopLogger{},
	}
}

// WithFilePath reads the document from a file. An empty path means no file.
func WithFilePath(path string) Option {
	return func(c *config) error {
		c.filePath = path
		return nil
	}
}

// WithContent reads the document from literal JSON or YAML text. Empty text
// means no content.
func WithContent(content string) Option {
	return func(c *config) error {
		c.content = content
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

// WithMaxFileSize sets the maximum schema file size in bytes.
// Default: 10 MiB.
func WithMaxFileSize(n int64) Option {
	return func(c *config) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "maxFileSize", Value: n, Message: "must be positive"}
		}
		c.maxFileSize = n
		return nil
	}
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(c *config) error {
		c.logger = logger.OrNop(l)
		return nil
	}
}

// Load reads a document from exactly one source.
func Load(opts ...Option) (*Document, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	switch {
	case cfg.filePath != "" && cfg.content != "":
		return nil, &oaserrors.ConfigError{
			Option:  "source",
			Message: "exactly one of file path or content must be provided",
		}
	case cfg.filePath != "":
		return loadFile(cfg)
	case cfg.content != "":
		doc, err := Parse([]byte(cfg.content))
		if err != nil {
			var parseErr *oaserrors.ParseError
			if errors.As(err, &parseErr) {
				parseErr.Source = "inline content"
			}
			return nil, err
		}
		cfg.logger.Debug("loaded OpenAPI document", "source", "content", "paths", len(doc.Paths), "servers", len(doc.Servers))
		return doc, nil
	default:
		return nil, &oaserrors.ConfigError{
			Option: "source",
			Cause:  ErrNoSource,
		}
	}
}

func loadFile(cfg *config) (*Document, error) {
	info, err := cfg.fs.Stat(cfg.filePath)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "filePath", Value: cfg.filePath, Cause: err}
	}
	if info.IsDir() {
		return nil, &oaserrors.ConfigError{Option: "filePath", Value: cfg.filePath, Message: "is a directory"}
	}
	if info.Size() > cfg.maxFileSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        cfg.maxFileSize,
			Actual:       info.Size(),
			Message:      cfg.filePath,
		}
	}

	data, err := afero.ReadFile(cfg.fs, cfg.filePath)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "filePath", Value: cfg.filePath, Cause: err}
	}

	doc, err := Parse(data)
	if err != nil {
		var parseErr *oaserrors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Source = cfg.filePath
		}
		return nil, err
	}
	cfg.logger.Debug("loaded OpenAPI document", "source", cfg.filePath, "paths", len(doc.Paths), "servers", len(doc.Servers))
	return doc, nil
}

// Parse decodes a JSON or YAML document.
func Parse(data []byte) (*Document, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, &oaserrors.ParseError{Message: "document is empty"}
	}

	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, &oaserrors.ParseError{Message: "decoding document", Cause: err}
	}
	doc.compile()
	return doc, nil
}

// MustParse is like Parse but panics on error. It simplifies tests and
// package-level documents.
func MustParse(data []byte) *Document {
	doc, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("openapi: %v", err))
	}
	return doc
}
