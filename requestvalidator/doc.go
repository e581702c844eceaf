// Package requestvalidator checks HTTP requests against an OpenAPI document.
//
// A Validator is built once from exactly one document source and then
// answers, for each request, one of four outcomes evaluated strictly in
// order:
//
//  1. No server URL of the document prefixes the request URL:
//     validation.InvalidRequestPath.
//  2. The remaining path, or the method under it, is not described:
//     validation.InvalidRequestMethod.
//  3. The JSON body misses required properties or carries properties that do
//     not conform: validation.InvalidRequestBody listing both.
//  4. Otherwise validation.Success.
//
// # Basic Usage
//
//	v, err := requestvalidator.New(requestvalidator.WithFilePath("openapi.json"))
//	if err != nil {
//	    log.Fatal(err) // no source, unreadable file, malformed document
//	}
//
//	result, err := v.Validate(requestvalidator.NewHTTPRequest(r, 0))
//	if err != nil {
//	    // The document references something this validator cannot check,
//	    // such as an unregistered string format.
//	}
//	if !validation.IsSuccess(result) {
//	    body, _ := validation.Marshal(result)
//	    w.WriteHeader(http.StatusBadRequest)
//	    w.Write(body)
//	}
//
// # Requests
//
// Validate accepts anything implementing Request. NewHTTPRequest adapts a
// *http.Request, reading the body at most once and restoring it so the next
// handler can read it again. RawRequest carries static values and is handy in
// tests and tools.
//
// # Body Validation
//
// The body schema is the application/json media type of the operation's
// requestBody (then any +json type, then a wildcard type). A requestBody
// written as a bare schema is accepted too. Property names are reported as
// paths: nested properties are dotted (address.city), array elements are
// indexed (tags[1]) and the body itself is "$".
//
// Supported keywords are type (including OAS 3.1 type lists and nullable),
// format, enum, required, properties, additionalProperties, minProperties,
// maxProperties, items, minItems, maxItems, uniqueItems, minLength,
// maxLength, pattern, minimum, maximum, exclusiveMinimum, exclusiveMaximum
// and multipleOf. Schemas using $ref accept any value.
//
// # Concurrency
//
// A Validator is safe for concurrent use. The document and format registry
// are only read after construction.
package requestvalidator
