package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// usersDocument serves /users with GET and a POST requiring an email.
const usersDocument = `{
  "openapi": "3.0.3",
  "info": {"title": "Users", "version": "1.0.0"},
  "servers": [{"url": "https://api.example.com/v1"}],
  "paths": {
    "/users": {
      "get": {"operationId": "listUsers"},
      "post": {
        "operationId": "createUser",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email"],
                "properties": {
                  "email": {"type": "string", "format": "email"}
                }
              }
            }
          }
        }
      }
    }
  }
}`

// writeSpec writes usersDocument to a temp file and returns its path.
func writeSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.json")
	require.NoError(t, os.WriteFile(path, []byte(usersDocument), 0o600))
	return path
}
