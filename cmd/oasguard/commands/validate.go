package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasguard/requestvalidator"
	"github.com/erraggy/oasguard/validation"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Method   string
	URL      string
	Body     string
	BodyFile string
	Format   string
	Quiet    bool
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Method, "X", "GET", "HTTP method of the request")
	fs.StringVar(&flags.Method, "method", "GET", "HTTP method of the request")
	fs.StringVar(&flags.URL, "u", "", "absolute request URL (required)")
	fs.StringVar(&flags.URL, "url", "", "absolute request URL (required)")
	fs.StringVar(&flags.Body, "d", "", "JSON request body")
	fs.StringVar(&flags.Body, "body", "", "JSON request body")
	fs.StringVar(&flags.BodyFile, "body-file", "", "read the JSON request body from a file ('-' for stdin)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only set the exit code")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only set the exit code")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasguard validate [flags] <spec-file|->\n\n")
		Writef(fs.Output(), "Check a single HTTP request against an OpenAPI document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable text output\n")
		Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasguard validate -u https://api.example.com/v1/users openapi.yaml\n")
		Writef(fs.Output(), "  oasguard validate -X POST -u https://api.example.com/v1/users -d '{\"name\":\"ada\"}' openapi.yaml\n")
		Writef(fs.Output(), "  oasguard validate -X POST -u https://api.example.com/v1/users --body-file user.json openapi.json\n")
		Writef(fs.Output(), "  cat openapi.yaml | oasguard validate -u https://api.example.com/v1/users -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Request is valid\n")
		Writef(fs.Output(), "  1    Request was rejected or the command failed\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	return runValidate(args, os.Stdin, os.Stdout)
}

func runValidate(args []string, stdin io.Reader, stdout io.Writer) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one spec file path or '-' for stdin")
	}
	if flags.URL == "" {
		fs.Usage()
		return fmt.Errorf("request URL is required (use -u or --url)")
	}
	if flags.Body != "" && flags.BodyFile != "" {
		return fmt.Errorf("--body and --body-file are mutually exclusive")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	specPath := fs.Arg(0)
	if specPath == StdinFilePath && flags.BodyFile == StdinFilePath {
		return fmt.Errorf("spec and body cannot both be read from stdin")
	}

	var source requestvalidator.Option
	if specPath == StdinFilePath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		source = requestvalidator.WithContent(string(data))
	} else {
		source = requestvalidator.WithFilePath(specPath)
	}

	v, err := requestvalidator.New(source)
	if err != nil {
		return fmt.Errorf("loading %s: %w", FormatSpecPath(specPath), err)
	}

	body := []byte(flags.Body)
	switch flags.BodyFile {
	case "":
	case StdinFilePath:
		if body, err = io.ReadAll(stdin); err != nil {
			return fmt.Errorf("reading body from stdin: %w", err)
		}
	default:
		if body, err = os.ReadFile(flags.BodyFile); err != nil {
			return fmt.Errorf("reading body file: %w", err)
		}
	}

	result, err := v.Validate(requestvalidator.RawRequest{
		BaseURL: flags.URL,
		Verb:    flags.Method,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("validating request: %w", err)
	}

	if !flags.Quiet {
		out := NewResultOutput(result)
		if flags.Format == FormatText {
			writeResultText(stdout, out)
		} else if err := OutputStructured(stdout, out, flags.Format); err != nil {
			return err
		}
	}

	if !validation.IsSuccess(result) {
		return ErrValidationFailed
	}
	return nil
}
