// Package validation defines the validator contract shared by every
// oasguard validator and the tagged result those validators produce.
//
// A Validator[T] checks a value of type T and reports the outcome as a
// Result. Invalid input is never reported through the error return: the
// error is reserved for configuration problems (a schema referencing a
// format nothing can validate, for example) that a caller cannot fix by
// sending a different value.
//
// Result is a closed set of variants:
//
//   - Success: the value is valid; Data() is nil
//   - InvalidRequestPath: no configured server matches the request URL
//   - InvalidRequestMethod: the path or method is not described by the document
//   - InvalidRequestBody: required properties are missing or present ones are invalid
//   - InvalidValue: a plain value (such as a formatted string) is invalid
//
// Switch on the concrete type to handle each outcome:
//
//	switch r := result.(type) {
//	case validation.Success:
//	    // continue
//	case validation.InvalidRequestBody:
//	    log.Printf("missing=%v invalid=%v", r.Missing, r.Invalid)
//	default:
//	    log.Printf("%s: %v", r.Status(), r.Data())
//	}
package validation
