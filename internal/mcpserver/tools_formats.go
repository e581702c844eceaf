package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasguard/validation"
)

type checkFormatInput struct {
	Format string `json:"format" jsonschema:"Format name, e.g. email"`
	Value  string `json:"value"  jsonschema:"The string to check"`
}

type checkFormatOutput struct {
	Format  string `json:"format"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func handleCheckFormat(_ context.Context, _ *mcp.CallToolRequest, input checkFormatInput) (*mcp.CallToolResult, checkFormatOutput, error) {
	result, err := formatRegistry.Validate(input.Format, input.Value)
	if err != nil {
		return errResult(err), checkFormatOutput{}, nil
	}

	output := checkFormatOutput{
		Format: input.Format,
		Valid:  validation.IsSuccess(result),
	}
	if msg, ok := result.Data().(string); ok {
		output.Message = msg
	}
	return nil, output, nil
}

type listFormatsInput struct{}

type listFormatsOutput struct {
	Formats []string `json:"formats"`
}

func handleListFormats(_ context.Context, _ *mcp.CallToolRequest, _ listFormatsInput) (*mcp.CallToolResult, listFormatsOutput, error) {
	return nil, listFormatsOutput{Formats: formatRegistry.Names()}, nil
}
