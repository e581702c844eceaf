package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBodyStandardForm(t *testing.T) {
	doc := MustParse([]byte(usersJSON))

	op, _, ok := doc.FindOperation("/users", "POST")
	require.True(t, ok)
	require.NotNil(t, op.RequestBody)

	body := op.RequestBody
	assert.True(t, body.Required)
	assert.Nil(t, body.Inline)
	require.Contains(t, body.Content, "application/json")

	schema := body.Content["application/json"].Schema
	require.NotNil(t, schema)
	assert.Equal(t, []string{"object"}, schema.Types())
	assert.Equal(t, []string{"email"}, schema.Required)
	assert.Equal(t, "email", schema.Properties["email"].Format)
	assert.Equal(t, []string{"string"}, schema.Properties["tags"].Items.Types())

	extra := schema.Properties["extra"].AdditionalProperties
	require.NotNil(t, extra)
	assert.False(t, extra.Allowed)
	assert.Nil(t, extra.Schema)

	meta := schema.Properties["meta"].AdditionalProperties
	require.NotNil(t, meta)
	assert.True(t, meta.Allowed)
	require.NotNil(t, meta.Schema)
	assert.Equal(t, []string{"integer"}, meta.Schema.Types())
}

func TestRequestBodyInlineForm(t *testing.T) {
	doc := MustParse([]byte(usersJSON))

	op, _, ok := doc.FindOperation("/users/1", "PUT")
	require.True(t, ok)
	require.NotNil(t, op.RequestBody)
	require.NotNil(t, op.RequestBody.Inline)

	inline := op.RequestBody.Inline
	assert.Equal(t, []string{"name"}, inline.Required)
	name := inline.Properties["name"]
	assert.Equal(t, []string{"string", "null"}, name.Types())
	assert.True(t, name.AllowsNull())
}

func TestRequestBodyRef(t *testing.T) {
	doc := MustParse([]byte(`
paths:
  /pets:
    post:
      requestBody:
        $ref: '#/components/requestBodies/Pet'
`))
	op, _, ok := doc.FindOperation("/pets", "post")
	require.True(t, ok)
	assert.Equal(t, "#/components/requestBodies/Pet", op.RequestBody.Ref)
	assert.Nil(t, op.RequestBody.Content)
	assert.Nil(t, op.RequestBody.Inline)
}

func TestSchemaTypes(t *testing.T) {
	tests := []struct {
		name string
		typ  any
		want []string
	}{
		{name: "absent", typ: nil, want: nil},
		{name: "single", typ: "string", want: []string{"string"}},
		{name: "string slice", typ: []string{"integer", "null"}, want: []string{"integer", "null"}},
		{name: "any slice", typ: []any{"number", 7, "null"}, want: []string{"number", "null"}},
		{name: "unsupported", typ: 42, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Schema{Type: tt.typ}
			assert.Equal(t, tt.want, s.Types())
		})
	}

	assert.True(t, (&Schema{Type: "string", Nullable: true}).AllowsNull())
	assert.False(t, (&Schema{Type: "string"}).AllowsNull())
}

func TestServerResolvedURL(t *testing.T) {
	s := Server{
		URL: "https://{env}.example.com/{missing}",
		Variables: map[string]ServerVariable{
			"env": {Default: "staging"},
		},
	}
	assert.Equal(t, "https://staging.example.com/{missing}", s.ResolvedURL())
	assert.Equal(t, "https://plain.example.com", Server{URL: "https://plain.example.com"}.ResolvedURL())
}

func TestRequestBodyWithoutContent(t *testing.T) {
	doc := MustParse([]byte(`
paths:
  /ping:
    post:
      requestBody:
        required: true
        description: anything goes
`))
	op, _, ok := doc.FindOperation("/ping", "POST")
	require.True(t, ok)
	assert.True(t, op.RequestBody.Required)
	assert.Equal(t, "anything goes", op.RequestBody.Description)
	assert.Nil(t, op.RequestBody.Content)
	assert.Nil(t, op.RequestBody.Inline)
}

func TestPathItemMethodCaseCollision(t *testing.T) {
	const doc = `
paths:
  /users:
    GET:
      operationId: upper
    get:
      operationId: lower
    Get:
      operationId: title
  /orders:
    POST:
      operationId: upperPost
    Post:
      operationId: titlePost
`
	// Map iteration order varies between runs; the winner must not.
	for range 20 {
		d := MustParse([]byte(doc))

		op, _, ok := d.FindOperation("/users", "GET")
		require.True(t, ok)
		assert.Equal(t, "lower", op.OperationID)

		op, _, ok = d.FindOperation("/orders", "post")
		require.True(t, ok)
		assert.Equal(t, "upperPost", op.OperationID, "first key in sorted order wins without a lowercase key")
	}
}
