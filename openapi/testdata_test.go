package openapi

const usersJSON = `{
  "openapi": "3.0.3",
  "info": {"title": "Users", "version": "1.0.0"},
  "servers": [
    {"url": "https://api.example.com"},
    {"url": "https://api.example.com/v2"}
  ],
  "paths": {
    "/users": {
      "summary": "Users collection",
      "parameters": [{"name": "trace", "in": "header"}],
      "get": {"operationId": "listUsers"},
      "POST": {
        "operationId": "createUser",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email"],
                "properties": {
                  "email": {"type": "string", "format": "email"},
                  "tags": {"type": "array", "items": {"type": "string"}},
                  "extra": {"type": "object", "additionalProperties": false},
                  "meta": {"type": "object", "additionalProperties": {"type": "integer"}}
                }
              }
            }
          }
        }
      }
    },
    "/users/{userId}": {
      "put": {
        "operationId": "replaceUser",
        "requestBody": {
          "required": ["name"],
          "properties": {"name": {"type": ["string", "null"]}}
        }
      }
    },
    "/users/me": {
      "get": {"operationId": "me"}
    }
  }
}`
