// Package openapi loads the subset of an OpenAPI document that request
// validation consumes and answers the two lookups it needs: which server a
// request URL was sent to, and which operation a path and method select.
//
// Documents are loaded from exactly one source, a file or inline text, in
// either JSON or YAML:
//
//	doc, err := openapi.Load(openapi.WithFilePath("openapi.json"))
//	doc, err := openapi.Load(openapi.WithContent(`{"openapi": "3.0.3", ...}`))
//
// Supplying no source, or two, is a configuration error reported by Load.
// Beyond decoding into the typed model no structural validation happens.
//
// A loaded Document is never modified and is safe for concurrent use.
//
// The consumed subset is:
//
//   - servers[].url, with {variable} placeholders replaced by their defaults
//   - paths.<template>.<method>.requestBody
//   - requestBody.content.<media type>.schema
//   - schema keywords: type, format, nullable, enum, required, properties,
//     additionalProperties, items, minLength, maxLength, pattern, minimum,
//     maximum, exclusiveMinimum, exclusiveMaximum, multipleOf, minItems,
//     maxItems, uniqueItems, minProperties, maxProperties
//
// $ref is recorded but never resolved.
package openapi
