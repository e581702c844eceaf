// Package oasguard validates HTTP requests against OpenAPI documents.
//
// A request passes when a server URL declared by the document prefixes the
// request URL, the remaining path and the method name an operation, and the
// JSON body satisfies the operation's requestBody schema. Every other request
// gets a typed result naming the stage that failed.
//
// # Packages
//
//   - validation: the Validator[T] interface and the Result variants
//     (Success, InvalidRequestPath, InvalidRequestMethod, InvalidRequestBody,
//     InvalidValue)
//   - openapi: loading documents from files or text, server matching and
//     path/method lookup
//   - formats: the registry of string format validators (email, date,
//     date-time, uuid, ...)
//   - requestvalidator: the request Validator tying the above together
//   - middleware: a net/http middleware rejecting invalid requests, with
//     Prometheus metrics
//   - oaserrors: the typed configuration, parse and resource-limit errors
//   - logger: the logging interface with log/slog and go-kit/log adapters
//
// # Quick Start
//
//	v, err := requestvalidator.New(requestvalidator.WithFilePath("openapi.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := v.Validate(requestvalidator.RawRequest{
//		BaseURL: "https://api.example.com/users",
//		Verb:    "POST",
//		Body:    []byte(`{"email": "a@b.com"}`),
//	})
//	if err != nil {
//		log.Fatal(err) // the document uses an unsupported format
//	}
//	fmt.Println(result.Status()) // success
//
// # Command Line
//
// The oasguard command validates single requests (oasguard validate), runs a
// validating gateway in front of an upstream service (oasguard serve), lists
// the known formats (oasguard formats) and serves the validator to MCP
// clients (oasguard mcp).
package oasguard
