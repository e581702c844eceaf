package mcpserver

import (
	"context"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listOperationsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI document to inspect"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N operations (for pagination)"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of operations to return (default 100)"`
}

type operationSummary struct {
	Method       string `json:"method"`
	Path         string `json:"path"`
	OperationID  string `json:"operation_id,omitempty"`
	HasBody      bool   `json:"has_body"`
	BodyRequired bool   `json:"body_required,omitempty"`
}

type listOperationsOutput struct {
	Servers    []string           `json:"servers"`
	Total      int                `json:"total"`
	Returned   int                `json:"returned"`
	Operations []operationSummary `json:"operations,omitempty"`
}

func handleListOperations(ctx context.Context, _ *mcp.CallToolRequest, input listOperationsInput) (*mcp.CallToolResult, listOperationsOutput, error) {
	v, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), listOperationsOutput{}, nil
	}
	doc := v.Document()

	var ops []operationSummary
	for path, item := range doc.Paths {
		if item == nil {
			continue
		}
		for method, op := range item.Operations {
			summary := operationSummary{
				Method: strings.ToUpper(method),
				Path:   path,
			}
			if op != nil {
				summary.OperationID = op.OperationID
				if op.RequestBody != nil {
					summary.HasBody = true
					summary.BodyRequired = op.RequestBody.Required
				}
			}
			ops = append(ops, summary)
		}
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		return ops[i].Method < ops[j].Method
	})

	page := paginate(ops, input.Offset, input.Limit)
	return nil, listOperationsOutput{
		Servers:    doc.ServerURLs(),
		Total:      len(ops),
		Returned:   len(page),
		Operations: page,
	}, nil
}
