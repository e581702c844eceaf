// Package oaserrors defines the error types oasguard returns for problems
// with its own setup, as opposed to problems with the requests it checks.
//
// A request that fails validation is not an error: it is described by one of
// the validation.Result variants, returned with a nil error. An error from
// this package means the validator itself cannot do its job, and is usually
// fatal at start-up.
//
// # Categories
//
//   - ParseError: an OpenAPI document that is not valid JSON or YAML
//   - ResourceLimitError: a schema file, fetched document or request body
//     larger than its limit
//   - ConfigError: a missing or conflicting option, or a format or pattern
//     in the schema that cannot be evaluated
//
// Each type matches its sentinel (ErrParse, ErrResourceLimit, ErrConfig)
// through errors.Is, so callers can branch on the category without a type
// assertion:
//
//	v, err := requestvalidator.New(requestvalidator.WithFilePath("openapi.json"))
//	if errors.Is(err, oaserrors.ErrConfig) {
//	    // fix the deployment
//	}
//
// errors.As recovers the details:
//
//	var parseErr *oaserrors.ParseError
//	if errors.As(err, &parseErr) {
//	    log.Printf("cannot decode %s: %v", parseErr.Source, parseErr.Cause)
//	}
//
// ParseError and ConfigError unwrap to their Cause, so the underlying error
// stays reachable:
//
//	if errors.Is(err, os.ErrNotExist) {
//	    // the schema file is missing
//	}
package oaserrors
