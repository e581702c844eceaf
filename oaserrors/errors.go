package oaserrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Sentinels matched through errors.Is by the typed errors below.
var (
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("parse error")

	// ErrResourceLimit matches every *ResourceLimitError.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig matches every *ConfigError.
	ErrConfig = errors.New("configuration error")
)

// ParseError reports an OpenAPI document that could not be decoded.
type ParseError struct {
	// Source names the document: a file path, a URL, or "inline content".
	Source string
	// Message describes what could not be decoded.
	Message string
	// Cause is the decoder error, if any.
	Cause error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error")
	if e.Source != "" {
		b.WriteString(" in ")
		b.WriteString(e.Source)
	}
	writeDetail(&b, e.Message, e.Cause)
	return b.String()
}

// Unwrap returns the decoder error.
func (e *ParseError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ResourceLimitError reports input larger than a configured limit, such as a
// schema file or a request body.
type ResourceLimitError struct {
	// ResourceType names the limit: "file_size", "body_size", "document_size".
	ResourceType string
	// Limit is the configured maximum in bytes.
	Limit int64
	// Actual is the observed size in bytes, or 0 when unknown.
	Actual int64
	// Message adds context such as the offending file name.
	Message string
}

// Error renders sizes in IEC units ("10 MiB").
func (e *ResourceLimitError) Error() string {
	var b strings.Builder
	b.WriteString("resource limit exceeded")
	if e.ResourceType != "" {
		b.WriteString(": ")
		b.WriteString(e.ResourceType)
	}
	if e.Limit > 0 {
		fmt.Fprintf(&b, " (limit: %s", humanize.IBytes(uint64(e.Limit)))
		if e.Actual > 0 {
			fmt.Fprintf(&b, ", actual: %s", humanize.IBytes(uint64(e.Actual)))
		}
		b.WriteByte(')')
	}
	writeDetail(&b, e.Message, nil)
	return b.String()
}

// Unwrap returns nil; a size limit has no underlying cause.
func (e *ResourceLimitError) Unwrap() error { return nil }

// Is reports whether target is ErrResourceLimit.
func (e *ResourceLimitError) Is(target error) bool { return target == ErrResourceLimit }

// ConfigError reports a deployment defect: a missing or conflicting schema
// source, a bad option value, or a format or pattern in the schema that the
// validator cannot evaluate.
type ConfigError struct {
	// Option names the offending option or schema keyword.
	Option string
	// Value is the rejected value, if any.
	Value any
	// Message describes the problem.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Option != "" {
		b.WriteString(" for ")
		b.WriteString(e.Option)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
	}
	writeDetail(&b, e.Message, e.Cause)
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Cause }

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// writeDetail appends ": msg" and ": cause" when present.
func writeDetail(b *strings.Builder, msg string, cause error) {
	if msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
}
