package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasguard/requestvalidator"
	"github.com/erraggy/oasguard/validation"
)

type validateRequestInput struct {
	Spec   specInput `json:"spec"           jsonschema:"The OpenAPI document to validate against"`
	Method string    `json:"method"         jsonschema:"HTTP method, in any case"`
	URL    string    `json:"url"            jsonschema:"Request URL including scheme and host, e.g. https://api.example.com/users"`
	Body   string    `json:"body,omitempty" jsonschema:"Request body as JSON text; omit for requests without a body"`
}

type validateRequestOutput struct {
	Status  string   `json:"status"`
	Outcome string   `json:"outcome"`
	Message string   `json:"message,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
}

func handleValidateRequest(ctx context.Context, _ *mcp.CallToolRequest, input validateRequestInput) (*mcp.CallToolResult, validateRequestOutput, error) {
	if input.Method == "" || input.URL == "" {
		return errResult(fmt.Errorf("method and url are required")), validateRequestOutput{}, nil
	}
	if int64(len(input.Body)) > cfg.MaxBodySize {
		return errResult(fmt.Errorf("body size %d bytes exceeds maximum %d bytes; set OASGUARD_MAX_BODY_SIZE to increase",
			len(input.Body), cfg.MaxBodySize)), validateRequestOutput{}, nil
	}

	v, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), validateRequestOutput{}, nil
	}

	result, err := v.Validate(requestvalidator.RawRequest{
		BaseURL: input.URL,
		Verb:    input.Method,
		Body:    []byte(input.Body),
	})
	if err != nil {
		return errResult(err), validateRequestOutput{}, nil
	}

	return nil, resultOutput(result), nil
}

// resultOutput flattens a Result into the tool's output shape.
func resultOutput(result validation.Result) validateRequestOutput {
	output := validateRequestOutput{
		Status:  string(result.Status()),
		Outcome: validation.Kind(result),
	}
	switch r := result.(type) {
	case validation.InvalidRequestBody:
		output.Missing = r.Missing
		output.Invalid = r.Invalid
	default:
		if msg, ok := r.Data().(string); ok {
			output.Message = msg
		}
	}
	return output
}
