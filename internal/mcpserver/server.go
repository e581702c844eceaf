// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasguard request validation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasguard"
	"github.com/erraggy/oasguard/formats"
)

const serverInstructions = `oasguard MCP server: checks HTTP requests against OpenAPI documents and string values against named formats.

Configuration: All defaults are configurable via OASGUARD_* environment variables set in your MCP client config.

Key settings:
- OASGUARD_CACHE_FILE_TTL (default: 15m): cache TTL for local file documents
- OASGUARD_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched documents
- OASGUARD_CACHE_ENABLED (default: true): disable document caching entirely
- OASGUARD_LIST_LIMIT (default: 100): default result limit for list_operations
- OASGUARD_MAX_INLINE_SIZE (default: 10MiB): largest inline document accepted
- OASGUARD_MAX_BODY_SIZE (default: 1MiB): largest request body accepted by validate_request
- OASGUARD_ALLOW_PRIVATE_IPS (default: false): allow URL documents on private networks

Caching: Validators are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// formatRegistry backs check_format, list_formats and every validator the
// server builds.
var formatRegistry = formats.NewDefault()

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		validatorCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasguard", Version: oasguard.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_request",
		Description: "Validate an HTTP request against an OpenAPI document. Provide the full request URL (scheme, host and path), the HTTP method and, for operations with a request body, the body as JSON text. Returns status success or error; errors carry a message (no matching server, or no matching path/method) or the lists of missing and invalid body properties. Nested properties are dotted (address.city) and array elements indexed (tags[1]).",
	}, handleValidateRequest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_format",
		Description: "Check a string against a named format such as email, date, date-time, uuid, uri, hostname or ipv4. Use list_formats for the full set. Unknown format names are reported as errors.",
	}, handleCheckFormat)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_formats",
		Description: "List the string format names check_format and validate_request understand.",
	}, handleListFormats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_operations",
		Description: "List the servers and the operations (method and path template) an OpenAPI document describes, with whether each expects a request body. Use this to find valid targets before calling validate_request. Use offset/limit to paginate; the default limit is configurable via OASGUARD_LIST_LIMIT.",
	}, handleListOperations)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
