package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasguard/formats"
	"github.com/erraggy/oasguard/validation"
)

// FormatsFlags contains flags for the formats command
type FormatsFlags struct {
	Format string
}

// SetupFormatsFlags creates and configures a FlagSet for the formats command.
func SetupFormatsFlags() (*flag.FlagSet, *FormatsFlags) {
	fs := flag.NewFlagSet("formats", flag.ContinueOnError)
	flags := &FormatsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasguard formats [flags] [<name> <value>]\n\n")
		Writef(fs.Output(), "List the built-in string formats, or check a value against one of them.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasguard formats\n")
		Writef(fs.Output(), "  oasguard formats email ada@example.com\n")
		Writef(fs.Output(), "  oasguard formats --format json date-time 2024-02-30T10:00:00Z\n")
	}

	return fs, flags
}

type formatCheckOutput struct {
	Format  string `json:"format" yaml:"format"`
	Valid   bool   `json:"valid" yaml:"valid"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

type formatListOutput struct {
	Formats []string `json:"formats" yaml:"formats"`
}

// HandleFormats executes the formats command
func HandleFormats(args []string) error {
	return runFormats(args, formats.NewDefault(), os.Stdout)
}

func runFormats(args []string, registry *formats.Registry, stdout io.Writer) error {
	fs, flags := SetupFormatsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	switch fs.NArg() {
	case 0:
		names := registry.Names()
		if flags.Format != FormatText {
			return OutputStructured(stdout, formatListOutput{Formats: names}, flags.Format)
		}
		Writef(stdout, "Formats (%d):\n", len(names))
		for _, name := range names {
			Writef(stdout, "  %s\n", name)
		}
		return nil
	case 2:
	default:
		fs.Usage()
		return fmt.Errorf("formats command takes no arguments or a format name and a value")
	}

	name, value := fs.Arg(0), fs.Arg(1)
	result, err := registry.Validate(name, value)
	if err != nil {
		return err
	}

	out := formatCheckOutput{Format: name, Valid: validation.IsSuccess(result)}
	if msg, ok := result.Data().(string); ok {
		out.Message = msg
	}
	if flags.Format != FormatText {
		if err := OutputStructured(stdout, out, flags.Format); err != nil {
			return err
		}
	} else if out.Valid {
		Writef(stdout, "✓ %q is a valid %s\n", value, name)
	} else {
		Writef(stdout, "✗ %q is not a valid %s: %s\n", value, name, out.Message)
	}

	if !out.Valid {
		return ErrValidationFailed
	}
	return nil
}
