package validation

import (
	jsoniter "github.com/json-iterator/go"
)

// Status is the coarse outcome carried by every Result.
type Status string

// Status values.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Default messages for the message-carrying error variants.
const (
	DefaultInvalidPathMessage   = "Invalid request path"
	DefaultInvalidMethodMessage = "Invalid request method"
	DefaultInvalidValueMessage  = "Invalid value"
)

// Result is the outcome of a validation. The set of implementations is
// closed: Success, InvalidRequestPath, InvalidRequestMethod,
// InvalidRequestBody and InvalidValue.
type Result interface {
	// Status reports whether the validation succeeded.
	Status() Status
	// Data returns the payload: nil for Success, a message string for the
	// message variants, and a map with "missing" and "invalid" keys for
	// InvalidRequestBody.
	Data() any

	sealed()
}

// Success is the result of a validation that found no problems.
type Success struct{}

// InvalidRequestPath reports that no server URL prefixes the request URL.
type InvalidRequestPath struct {
	Message string
}

// InvalidRequestMethod reports that the logical path, or the method under
// it, is not described by the document.
type InvalidRequestMethod struct {
	Message string
}

// InvalidRequestBody reports the body properties that are required but
// absent (Missing) and present but not conforming (Invalid).
type InvalidRequestBody struct {
	Missing []string
	Invalid []string
}

// InvalidValue reports that a plain value failed validation.
type InvalidValue struct {
	Message string
}

// Status implements Result.
func (Success) Status() Status { return StatusSuccess }

// Data implements Result.
func (Success) Data() any { return nil }

func (Success) sealed() {}

// Status implements Result.
func (InvalidRequestPath) Status() Status { return StatusError }

// Data implements Result.
func (r InvalidRequestPath) Data() any { return messageOr(r.Message, DefaultInvalidPathMessage) }

func (InvalidRequestPath) sealed() {}

// Status implements Result.
func (InvalidRequestMethod) Status() Status { return StatusError }

// Data implements Result.
func (r InvalidRequestMethod) Data() any { return messageOr(r.Message, DefaultInvalidMethodMessage) }

func (InvalidRequestMethod) sealed() {}

// Status implements Result.
func (InvalidRequestBody) Status() Status { return StatusError }

// Data implements Result. Nil slices are reported as empty ones so the
// JSON form always carries two arrays.
func (r InvalidRequestBody) Data() any {
	return map[string][]string{
		"missing": nonNil(r.Missing),
		"invalid": nonNil(r.Invalid),
	}
}

func (InvalidRequestBody) sealed() {}

// Status implements Result.
func (InvalidValue) Status() Status { return StatusError }

// Data implements Result.
func (r InvalidValue) Data() any { return messageOr(r.Message, DefaultInvalidValueMessage) }

func (InvalidValue) sealed() {}

// IsSuccess reports whether r is a successful result.
func IsSuccess(r Result) bool {
	return r != nil && r.Status() == StatusSuccess
}

// Kind returns a short stable name for the variant of r, suitable for
// metric labels and log fields.
func Kind(r Result) string {
	switch r.(type) {
	case Success:
		return "success"
	case InvalidRequestPath:
		return "invalid_path"
	case InvalidRequestMethod:
		return "invalid_method"
	case InvalidRequestBody:
		return "invalid_body"
	case InvalidValue:
		return "invalid_value"
	default:
		return "unknown"
	}
}

// envelope is the wire form of every Result.
type envelope struct {
	Status Status `json:"status"`
	Data   any    `json:"data"`
}

// Marshal encodes r as {"status": ..., "data": ...}.
func Marshal(r Result) ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(envelope{Status: r.Status(), Data: r.Data()})
}

// MarshalJSON implements json.Marshaler.
func (r Success) MarshalJSON() ([]byte, error) { return Marshal(r) }

// MarshalJSON implements json.Marshaler.
func (r InvalidRequestPath) MarshalJSON() ([]byte, error) { return Marshal(r) }

// MarshalJSON implements json.Marshaler.
func (r InvalidRequestMethod) MarshalJSON() ([]byte, error) { return Marshal(r) }

// MarshalJSON implements json.Marshaler.
func (r InvalidRequestBody) MarshalJSON() ([]byte, error) { return Marshal(r) }

// MarshalJSON implements json.Marshaler.
func (r InvalidValue) MarshalJSON() ([]byte, error) { return Marshal(r) }

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
