// Package commands provides CLI command handlers for oasguard.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasguard/validation"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrValidationFailed is returned when a command ran to completion but the
// request it checked was rejected. Callers exit non-zero without printing it.
var ErrValidationFailed = errors.New("validation failed")

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// FormatSpecPath returns a display name for a document path.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// ResultOutput is the structured form of a validation result.
type ResultOutput struct {
	Status  string   `json:"status" yaml:"status"`
	Outcome string   `json:"outcome" yaml:"outcome"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty" yaml:"invalid,omitempty"`
}

// NewResultOutput flattens result into a ResultOutput.
func NewResultOutput(result validation.Result) ResultOutput {
	out := ResultOutput{
		Status:  string(result.Status()),
		Outcome: validation.Kind(result),
	}
	switch r := result.(type) {
	case validation.InvalidRequestBody:
		out.Missing = r.Missing
		out.Invalid = r.Invalid
	default:
		if msg, ok := r.Data().(string); ok {
			out.Message = msg
		}
	}
	return out
}

// writeResultText prints result in human-readable form.
func writeResultText(w io.Writer, out ResultOutput) {
	if out.Status == string(validation.StatusSuccess) {
		Writef(w, "✓ Request is valid\n")
		return
	}
	Writef(w, "✗ Request rejected (%s)\n", out.Outcome)
	if out.Message != "" {
		Writef(w, "  %s\n", out.Message)
	}
	if len(out.Missing) > 0 {
		Writef(w, "\nMissing (%d):\n", len(out.Missing))
		for _, name := range out.Missing {
			Writef(w, "  - %s\n", name)
		}
	}
	if len(out.Invalid) > 0 {
		Writef(w, "\nInvalid (%d):\n", len(out.Invalid))
		for _, name := range out.Invalid {
			Writef(w, "  - %s\n", name)
		}
	}
}
