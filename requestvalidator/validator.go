package requestvalidator

import (
	"sync"
	"sync/atomic"

	"github.com/erraggy/oasguard/formats"
	"github.com/erraggy/oasguard/logger"
	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/openapi"
	"github.com/erraggy/oasguard/validation"
)

// Validator validates requests against one OpenAPI document.
//
// Create a Validator using the New function:
//
//	v, err := requestvalidator.New(requestvalidator.WithFilePath("openapi.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := v.Validate(requestvalidator.NewHTTPRequest(r, 0))
type Validator struct {
	doc     *openapi.Document
	formats *formats.Registry
	logger  logger.Logger

	// patternCache caches compiled regex patterns (sync.Map[string, *regexp.Regexp])
	patternCache sync.Map

	// patternCount tracks the approximate number of cached patterns for size capping
	patternCount atomic.Int32
}

// Ensure Validator implements validation.Validator at compile time.
var _ validation.Validator[Request] = (*Validator)(nil)

// New builds a Validator. Exactly one of WithFilePath, WithContent or
// WithDocument must be given; the document is loaded here so that a missing
// or malformed source fails before the first request.
func New(opts ...Option) (*Validator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	doc, err := cfg.loadDocument()
	if err != nil {
		return nil, err
	}

	registry := cfg.formats
	if registry == nil {
		registry = formats.NewDefault()
	}

	return &Validator{
		doc:     doc,
		formats: registry,
		logger:  cfg.logger,
	}, nil
}

// Document returns the document the validator checks against.
func (v *Validator) Document() *openapi.Document {
	return v.doc
}

// Formats returns the string format registry in use.
func (v *Validator) Formats() *formats.Registry {
	return v.formats
}

// Validate checks req and reports the first failing stage as a Result.
//
// The error is non-nil only for configuration problems: a nil request, or a
// document referencing a string format or pattern that cannot be checked.
// Invalid requests never produce an error.
func (v *Validator) Validate(req Request) (validation.Result, error) {
	if req == nil {
		return nil, &oaserrors.ConfigError{Option: "request", Message: "request cannot be nil"}
	}

	rootURL := req.RootURL()
	match, ok := v.doc.MatchServer(rootURL)
	if !ok {
		v.logger.Debug("no server matches request URL", "url", rootURL)
		return validation.InvalidRequestPath{}, nil
	}

	method := req.Method()
	op, template, ok := v.doc.FindOperation(match.Path, method)
	if !ok {
		v.logger.Debug("no operation for request",
			"server", match.ServerURL, "path", match.Path, "method", method)
		return validation.InvalidRequestMethod{}, nil
	}
	log := v.logger.With("server", match.ServerURL, "path", template, "method", method)

	outcome, err := v.validateRequestBody(req, op.RequestBody, log)
	if err != nil {
		return nil, err
	}
	if !outcome.Valid() {
		log.Debug("request body rejected", "missing", outcome.Missing, "invalid", outcome.Invalid)
		return validation.InvalidRequestBody{Missing: outcome.Missing, Invalid: outcome.Invalid}, nil
	}

	log.Debug("request accepted")
	return validation.Success{}, nil
}

// validateRequestBody reads the body only when the operation declares one.
func (v *Validator) validateRequestBody(req Request, rb *openapi.RequestBody, log logger.Logger) (BodyOutcome, error) {
	if rb == nil {
		return BodyOutcome{}, nil
	}

	body, err := req.JSON()
	if err != nil {
		log.Debug("request body unreadable", "error", err)
		return BodyOutcome{Invalid: []string{rootName}}, nil
	}
	return v.ValidateBody(body, rb)
}
