package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasguard"
	"github.com/erraggy/oasguard/cmd/oasguard/commands"
	"github.com/erraggy/oasguard/internal/mcpserver"
)

// knownCommands lists the commands offered as typo suggestions.
var knownCommands = []string{"validate", "serve", "formats", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Println(oasguard.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		exitOnError(commands.HandleValidate(os.Args[2:]))
	case "serve":
		exitOnError(commands.HandleServe(os.Args[2:]))
	case "formats":
		exitOnError(commands.HandleFormats(os.Args[2:]))
	case "mcp":
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		err := mcpserver.Run(ctx)
		cancel()
		exitOnError(err)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, commands.ErrValidationFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, cmd := range knownCommands {
		if d := levenshtein(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oasguard - OpenAPI Request Validation

Usage:
  oasguard <command> [options]

Commands:
  validate    Check a single request against an OpenAPI document
  serve       Run a validating HTTP server or reverse proxy
  formats     List string formats or check a value against one
  mcp         Start the MCP server on stdin/stdout
  version     Show version information
  help        Show this help message

Examples:
  oasguard validate -X POST -u https://api.example.com/v1/users -d '{"name":"ada"}' openapi.yaml
  oasguard serve --upstream http://localhost:9000 --public-url https://api.example.com openapi.yaml
  oasguard formats email ada@example.com

Run 'oasguard <command> --help' for more information on a command.`)
}
