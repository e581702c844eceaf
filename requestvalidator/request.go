package requestvalidator

import (
	"bytes"
	"io"
	"net/http"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/erraggy/oasguard/oaserrors"
)

// DefaultMaxBodySize is the body size limit NewHTTPRequest applies when
// given a non-positive limit.
const DefaultMaxBodySize int64 = 10 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Request is the view of an HTTP request the Validator needs.
type Request interface {
	// RootURL returns the URL matched against the document's servers:
	// scheme, host and path, without query string.
	RootURL() string
	// Method returns the HTTP method in any case.
	Method() string
	// JSON returns the decoded body, or nil when there is no body.
	JSON() (any, error)
}

// RawRequest is a Request built from plain values.
type RawRequest struct {
	BaseURL string
	Verb    string
	Body    []byte
}

// RootURL implements Request.
func (r RawRequest) RootURL() string { return r.BaseURL }

// Method implements Request.
func (r RawRequest) Method() string { return r.Verb }

// JSON implements Request. A blank body decodes to nil.
func (r RawRequest) JSON() (any, error) {
	return decodeJSON(r.Body)
}

// HTTPRequest adapts a *http.Request. The body is read and decoded on the
// first call to JSON; later calls return the same outcome.
type HTTPRequest struct {
	req         *http.Request
	maxBodySize int64

	once sync.Once
	body any
	err  error
}

// NewHTTPRequest wraps r. Bodies larger than maxBodySize bytes are rejected
// with a *oaserrors.ResourceLimitError; a non-positive limit means
// DefaultMaxBodySize.
func NewHTTPRequest(r *http.Request, maxBodySize int64) *HTTPRequest {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	return &HTTPRequest{req: r, maxBodySize: maxBodySize}
}

// RootURL implements Request.
func (h *HTTPRequest) RootURL() string {
	scheme := h.req.URL.Scheme
	if scheme == "" {
		scheme = "http"
		if h.req.TLS != nil {
			scheme = "https"
		}
	}
	host := h.req.Host
	if host == "" {
		host = h.req.URL.Host
	}
	return scheme + "://" + host + h.req.URL.EscapedPath()
}

// Method implements Request.
func (h *HTTPRequest) Method() string { return h.req.Method }

// JSON implements Request. The body is put back on the wrapped request so
// that later handlers can read it again.
func (h *HTTPRequest) JSON() (any, error) {
	h.once.Do(func() {
		h.body, h.err = h.readBody()
	})
	return h.body, h.err
}

func (h *HTTPRequest) readBody() (any, error) {
	if h.req.Body == nil || h.req.Body == http.NoBody {
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(h.req.Body, h.maxBodySize+1))
	_ = h.req.Body.Close()
	h.req.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > h.maxBodySize {
		// Reading stopped one byte past the limit; Content-Length, when
		// declared, tells the real size.
		actual := max(int64(len(data)), h.req.ContentLength)
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "body_size",
			Limit:        h.maxBodySize,
			Actual:       actual,
		}
	}
	return decodeJSON(data)
}

// decodeJSON decodes data into plain Go values: map[string]any, []any,
// string, float64, bool and nil.
func decodeJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
