package requestvalidator

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasguard/formats"
	"github.com/erraggy/oasguard/logger"
	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/openapi"
	"github.com/erraggy/oasguard/validation"
)

func newUsersValidator(t *testing.T, opts ...Option) *Validator {
	t.Helper()
	v, err := New(append([]Option{WithContent(usersDocument)}, opts...)...)
	require.NoError(t, err)
	return v
}

func TestValidate(t *testing.T) {
	v := newUsersValidator(t)

	tests := []struct {
		name string
		req  RawRequest
		want validation.Result
	}{
		{
			name: "invalid email",
			req:  RawRequest{BaseURL: "https://api.example.com/users", Verb: "POST", Body: []byte(`{"email": "not-an-email"}`)},
			want: validation.InvalidRequestBody{Invalid: []string{"email"}},
		},
		{
			name: "valid email",
			req:  RawRequest{BaseURL: "https://api.example.com/users", Verb: "POST", Body: []byte(`{"email": "a@b.com"}`)},
			want: validation.Success{},
		},
		{
			name: "undefined path",
			req:  RawRequest{BaseURL: "https://api.example.com/orders", Verb: "POST"},
			want: validation.InvalidRequestMethod{},
		},
		{
			name: "other host",
			req:  RawRequest{BaseURL: "https://other.com/users", Verb: "POST"},
			want: validation.InvalidRequestPath{},
		},
		{
			name: "undefined method",
			req:  RawRequest{BaseURL: "https://api.example.com/users", Verb: "DELETE"},
			want: validation.InvalidRequestMethod{},
		},
		{
			name: "method is case-insensitive",
			req:  RawRequest{BaseURL: "https://api.example.com/users", Verb: "get"},
			want: validation.Success{},
		},
		{
			name: "missing required property",
			req:  RawRequest{BaseURL: "https://api.example.com/users", Verb: "POST", Body: []byte(`{"name": "Ada"}`)},
			want: validation.InvalidRequestBody{Missing: []string{"email"}},
		},
		{
			name: "missing required body",
			req:  RawRequest{BaseURL: "https://api.example.com/users", Verb: "POST"},
			want: validation.InvalidRequestBody{Missing: []string{"$"}},
		},
		{
			name: "malformed body",
			req:  RawRequest{BaseURL: "https://api.example.com/users", Verb: "POST", Body: []byte(`{"email":`)},
			want: validation.InvalidRequestBody{Invalid: []string{"$"}},
		},
		{
			name: "body ignored without requestBody",
			req:  RawRequest{BaseURL: "https://api.example.com/users", Verb: "GET", Body: []byte(`not json`)},
			want: validation.Success{},
		},
		{
			name: "path checked before method",
			req:  RawRequest{BaseURL: "https://other.com/orders", Verb: "BREW"},
			want: validation.InvalidRequestPath{},
		},
		{
			name: "templated path",
			req:  RawRequest{BaseURL: "https://api.example.com/users/42/tags", Verb: "PUT", Body: []byte(`["a", "b"]`)},
			want: validation.Success{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateResultJSON(t *testing.T) {
	v := newUsersValidator(t)

	got, err := v.Validate(RawRequest{
		BaseURL: "https://api.example.com/users",
		Verb:    "POST",
		Body:    []byte(`{"email": "not-an-email"}`),
	})
	require.NoError(t, err)

	data, err := validation.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","data":{"missing":[],"invalid":["email"]}}`, string(data))

	got, err = v.Validate(RawRequest{BaseURL: "https://api.example.com/users", Verb: "GET"})
	require.NoError(t, err)
	data, err = validation.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","data":null}`, string(data))
}

func TestNew(t *testing.T) {
	t.Run("no source", func(t *testing.T) {
		_, err := New()
		require.Error(t, err)
		assert.True(t, errors.Is(err, openapi.ErrNoSource))
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})

	t.Run("file and content", func(t *testing.T) {
		_, err := New(WithFilePath("openapi.json"), WithContent(usersDocument))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})

	t.Run("document and content", func(t *testing.T) {
		_, err := New(WithDocument(openapi.MustParse([]byte(usersDocument))), WithContent(usersDocument))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})

	t.Run("malformed content", func(t *testing.T) {
		_, err := New(WithContent(`{"paths": [`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrParse))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New(WithFilePath("/nope/openapi.json"), WithFS(afero.NewMemMapFs()))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})

	t.Run("file too large", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/openapi.json", []byte(usersDocument), 0o644))
		_, err := New(WithFilePath("/openapi.json"), WithFS(fs), WithMaxFileSize(16))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))
	})

	invalidOptions := map[string]Option{
		"nil document": WithDocument(nil),
		"nil fs":       WithFS(nil),
		"nil formats":  WithFormats(nil),
		"zero size":    WithMaxFileSize(0),
	}
	for name, opt := range invalidOptions {
		t.Run(name, func(t *testing.T) {
			_, err := New(WithContent(usersDocument), opt)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))
		})
	}

	t.Run("defaults", func(t *testing.T) {
		v := newUsersValidator(t, WithLogger(nil))
		assert.NotNil(t, v.Document())
		assert.True(t, v.Formats().Has("email"))
	})
}

func TestFileAndContentAgree(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/specs/users.json", []byte(usersDocument), 0o644))

	fromFile, err := New(WithFilePath("/specs/users.json"), WithFS(fs))
	require.NoError(t, err)
	fromContent := newUsersValidator(t)

	requests := []RawRequest{
		{BaseURL: "https://api.example.com/users", Verb: "POST", Body: []byte(`{"email": "not-an-email"}`)},
		{BaseURL: "https://api.example.com/users", Verb: "POST", Body: []byte(`{"email": "a@b.com"}`)},
		{BaseURL: "https://api.example.com/users", Verb: "POST", Body: []byte(`{}`)},
		{BaseURL: "https://api.example.com/orders", Verb: "GET"},
		{BaseURL: "https://other.com/users", Verb: "GET"},
	}
	for _, req := range requests {
		want, err := fromContent.Validate(req)
		require.NoError(t, err)
		got, err := fromFile.Validate(req)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%s %s", req.Verb, req.BaseURL)
	}
}

func TestValidateUnknownFormat(t *testing.T) {
	v := newUsersValidator(t, WithFormats(formats.NewRegistry()))

	_, err := v.Validate(RawRequest{
		BaseURL: "https://api.example.com/users",
		Verb:    "POST",
		Body:    []byte(`{"email": "a@b.com"}`),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, formats.ErrUnknownFormat))

	// Requests that never reach the format still validate.
	got, err := v.Validate(RawRequest{BaseURL: "https://api.example.com/users", Verb: "GET"})
	require.NoError(t, err)
	assert.Equal(t, validation.Success{}, got)
}

func TestValidateCustomFormat(t *testing.T) {
	registry := formats.NewRegistry()
	require.NoError(t, registry.Register("email", func(value string) validation.Result {
		if value == "root@localhost" {
			return validation.Success{}
		}
		return validation.InvalidValue{}
	}))
	v := newUsersValidator(t, WithFormats(registry))

	got, err := v.Validate(RawRequest{
		BaseURL: "https://api.example.com/users",
		Verb:    "POST",
		Body:    []byte(`{"email": "root@localhost"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, validation.Success{}, got)
}

func TestValidateNilRequest(t *testing.T) {
	v := newUsersValidator(t)
	_, err := v.Validate(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestValidateLogs(t *testing.T) {
	rec := &recordingLogger{}
	v := newUsersValidator(t, WithLogger(rec))
	assert.Equal(t, []string{"loaded OpenAPI document"}, rec.messages())
	rec.reset()

	_, err := v.Validate(RawRequest{BaseURL: "https://other.com/users", Verb: "GET"})
	require.NoError(t, err)
	_, err = v.Validate(RawRequest{BaseURL: "https://api.example.com/users", Verb: "GET"})
	require.NoError(t, err)

	assert.Equal(t, []string{"no server matches request URL", "request accepted"}, rec.messages())
}

func TestValidateConcurrent(t *testing.T) {
	v := newUsersValidator(t)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body := fmt.Sprintf(`{"email": "user%d@example.com"}`, i)
			want := validation.Result(validation.Success{})
			if i%2 == 1 {
				body = `{"email": "nope"}`
				want = validation.InvalidRequestBody{Invalid: []string{"email"}}
			}
			got, err := v.Validate(RawRequest{BaseURL: "https://api.example.com/users", Verb: "POST", Body: []byte(body)})
			if err != nil {
				errs <- err
				return
			}
			if !assert.ObjectsAreEqual(want, got) {
				errs <- fmt.Errorf("request %d: got %v, want %v", i, got, want)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// recordingLogger keeps the messages logged at any level.
type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingLogger) record(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingLogger) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func (r *recordingLogger) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = nil
}

func (r *recordingLogger) Debug(msg string, _ ...any)  { r.record(msg) }
func (r *recordingLogger) Info(msg string, _ ...any)   { r.record(msg) }
func (r *recordingLogger) Warn(msg string, _ ...any)   { r.record(msg) }
func (r *recordingLogger) Error(msg string, _ ...any)  { r.record(msg) }
func (r *recordingLogger) With(_ ...any) logger.Logger { return r }
