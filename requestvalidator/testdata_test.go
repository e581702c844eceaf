package requestvalidator

// usersDocument is the example API used across tests: one server, /users
// accepting POST with a required email address.
const usersDocument = `{
  "openapi": "3.0.3",
  "info": {"title": "Users", "version": "1.0.0"},
  "servers": [{"url": "https://api.example.com"}],
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
    },
    "/users/{userId}/tags": {
      "put": {
        "requestBody": {
          "type": "array",
          "items": {"type": "string"}
        }
      }
    }
  }
}`

// profileSchemaYAML exercises every supported keyword.
const profileSchemaYAML = `
servers:
  - url: https://api.example.com/v1
paths:
  /profiles:
    post:
      requestBody:
        required: true
        content:
          application/vnd.profile+json:
            schema:
              type: object
              required: [name, address]
              additionalProperties: false
              properties:
                name:
                  type: string
                  minLength: 2
                  maxLength: 10
                nickname:
                  type: string
                  nullable: true
                  pattern: '^[a-z]+$'
                age:
                  type: integer
                  minimum: 0
                  maximum: 150
                score:
                  type: number
                  exclusiveMinimum: true
                  minimum: 0
                  multipleOf: 0.1
                level:
                  type: integer
                  exclusiveMaximum: 10
                role:
                  type: string
                  enum: [admin, member]
                priority:
                  enum: [1, 2, 3]
                active:
                  type: boolean
                born:
                  type: string
                  format: date
                tags:
                  type: array
                  minItems: 1
                  maxItems: 3
                  uniqueItems: true
                  items:
                    type: string
                groups:
                  type: array
                  uniqueItems: true
                  items:
                    type: array
                address:
                  type: object
                  required: [city]
                  properties:
                    city:
                      type: string
                    zip:
                      type: [string, "null"]
                labels:
                  type: object
                  maxProperties: 2
                  additionalProperties:
                    type: integer
                link:
                  $ref: '#/components/schemas/Link'
`

// inlineBodyDocument uses the bare-schema requestBody form.
const inlineBodyDocument = `
servers:
  - url: https://api.example.com
paths:
  /users:
    post:
      requestBody:
        type: object
        required: [email]
        properties:
          email:
            type: string
            format: email
  /notes:
    post:
      requestBody:
        type: object
        properties:
          text:
            type: string
`
