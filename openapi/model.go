package openapi

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.yaml.in/yaml/v4"
	"golang.org/x/text/cases"
)

// Document is the consumed subset of an OpenAPI document.
type Document struct {
	OpenAPI string               `yaml:"openapi,omitempty"`
	Info    Info                 `yaml:"info,omitempty"`
	Servers []Server             `yaml:"servers,omitempty"`
	Paths   map[string]*PathItem `yaml:"paths,omitempty"`

	compileOnce sync.Once
	serverURLs  []string
	routes      *pathMatcherSet
}

// Info holds the document title and version.
type Info struct {
	Title   string `yaml:"title,omitempty"`
	Version string `yaml:"version,omitempty"`
}

// Server is an entry of the top-level servers list.
type Server struct {
	URL         string                    `yaml:"url"`
	Description string                    `yaml:"description,omitempty"`
	Variables   map[string]ServerVariable `yaml:"variables,omitempty"`
}

// ServerVariable is a substitution value for a server URL template.
type ServerVariable struct {
	Default     string   `yaml:"default"`
	Enum        []string `yaml:"enum,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// ResolvedURL returns the server URL with every {name} placeholder replaced
// by the default of the matching variable. Placeholders without a variable
// are left untouched.
func (s Server) ResolvedURL() string {
	if len(s.Variables) == 0 || !strings.Contains(s.URL, "{") {
		return s.URL
	}
	pairs := make([]string, 0, len(s.Variables)*2)
	for name, v := range s.Variables {
		pairs = append(pairs, "{"+name+"}", v.Default)
	}
	return strings.NewReplacer(pairs...).Replace(s.URL)
}

// httpMethods are the operation keys of a path item, case-folded.
var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
	"query":   true, // OAS 3.2
}

// foldMethod returns the lookup key for an HTTP method. A fresh Caser is
// used per call because Casers are not safe for concurrent use.
func foldMethod(method string) string {
	return cases.Fold().String(method)
}

// PathItem holds the operations of one path template, keyed by the
// case-folded HTTP method. Non-operation keys (summary, parameters, ...) are
// ignored.
type PathItem struct {
	Operations map[string]*Operation
}

// UnmarshalYAML implements custom unmarshaling so that method keys are
// case-folded and non-operation fields do not have to fit the Operation type.
func (p *PathItem) UnmarshalYAML(unmarshal func(any) error) error {
	var raw map[string]any
	if err := unmarshal(&raw); err != nil {
		return err
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	// Keys differing only in case fold to one method: the lowercase key wins,
	// otherwise the first in sorted order.
	p.Operations = make(map[string]*Operation)
	for _, key := range keys {
		method := foldMethod(key)
		if !httpMethods[method] {
			continue
		}
		if _, dup := p.Operations[method]; dup && key != method {
			continue
		}
		var op Operation
		if err := remarshal(raw[key], &op); err != nil {
			return fmt.Errorf("failed to unmarshal %s operation: %w", key, err)
		}
		p.Operations[method] = &op
	}
	return nil
}

// Operation is a single API operation on a path.
type Operation struct {
	OperationID string       `yaml:"operationId,omitempty"`
	Summary     string       `yaml:"summary,omitempty"`
	RequestBody *RequestBody `yaml:"requestBody,omitempty"`
}

// RequestBody describes the payload an operation accepts.
//
// Besides the standard form (required flag plus content map), a requestBody
// with neither a content key nor a boolean required flag is read as a schema
// written inline, in which case Inline is set and Content is nil.
type RequestBody struct {
	Ref         string
	Description string
	Required    bool
	Content     map[string]*MediaType
	Inline      *Schema
}

// requestBodyFields is the standard OpenAPI form of RequestBody.
type requestBodyFields struct {
	Ref         string                `yaml:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty"`
	Required    bool                  `yaml:"required,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty"`
}

// UnmarshalYAML implements custom unmarshaling to accept both the standard
// and the inline-schema form.
func (r *RequestBody) UnmarshalYAML(unmarshal func(any) error) error {
	var raw map[string]any
	if err := unmarshal(&raw); err != nil {
		return err
	}

	_, hasContent := raw["content"]
	_, hasRef := raw["$ref"]
	_, requiredFlag := raw["required"].(bool)
	if hasContent || hasRef || requiredFlag {
		var fields requestBodyFields
		if err := unmarshal(&fields); err != nil {
			return err
		}
		*r = RequestBody{
			Ref:         fields.Ref,
			Description: fields.Description,
			Required:    fields.Required,
			Content:     fields.Content,
		}
		return nil
	}

	var inline Schema
	if err := unmarshal(&inline); err != nil {
		return fmt.Errorf("failed to unmarshal inline request body schema: %w", err)
	}
	*r = RequestBody{Inline: &inline}
	return nil
}

// MediaType pairs a content type with its schema.
type MediaType struct {
	Schema *Schema `yaml:"schema,omitempty"`
}

// Schema is the subset of a Schema Object used for body validation.
type Schema struct {
	Ref string `yaml:"$ref,omitempty"`

	// Type is a string, or a list of strings in OAS 3.1.
	Type     any    `yaml:"type,omitempty"`
	Format   string `yaml:"format,omitempty"`
	Nullable bool   `yaml:"nullable,omitempty"`
	Enum     []any  `yaml:"enum,omitempty"`

	Required             []string              `yaml:"required,omitempty"`
	Properties           map[string]*Schema    `yaml:"properties,omitempty"`
	AdditionalProperties *AdditionalProperties `yaml:"additionalProperties,omitempty"`
	MinProperties        *int                  `yaml:"minProperties,omitempty"`
	MaxProperties        *int                  `yaml:"maxProperties,omitempty"`

	Items       *Schema `yaml:"items,omitempty"`
	MinItems    *int    `yaml:"minItems,omitempty"`
	MaxItems    *int    `yaml:"maxItems,omitempty"`
	UniqueItems bool    `yaml:"uniqueItems,omitempty"`

	MinLength *int   `yaml:"minLength,omitempty"`
	MaxLength *int   `yaml:"maxLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty"`

	Minimum *float64 `yaml:"minimum,omitempty"`
	Maximum *float64 `yaml:"maximum,omitempty"`
	// ExclusiveMinimum and ExclusiveMaximum are booleans in OAS 3.0 and
	// numeric bounds in OAS 3.1.
	ExclusiveMinimum any      `yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum any      `yaml:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `yaml:"multipleOf,omitempty"`
}

// Types returns the declared type names. An empty result means any type.
func (s *Schema) Types() []string {
	switch t := s.Type.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		types := make([]string, 0, len(t))
		for _, v := range t {
			if name, ok := v.(string); ok {
				types = append(types, name)
			}
		}
		return types
	}
	return nil
}

// AllowsNull reports whether null is an accepted value, through either the
// OAS 3.0 nullable flag or a "null" entry in an OAS 3.1 type list.
func (s *Schema) AllowsNull() bool {
	if s.Nullable {
		return true
	}
	for _, t := range s.Types() {
		if t == "null" {
			return true
		}
	}
	return false
}

// AdditionalProperties is either a boolean or a schema.
type AdditionalProperties struct {
	Allowed bool
	Schema  *Schema
}

// UnmarshalYAML implements custom unmarshaling for the bool-or-schema form.
func (a *AdditionalProperties) UnmarshalYAML(unmarshal func(any) error) error {
	var allowed bool
	if err := unmarshal(&allowed); err == nil {
		*a = AdditionalProperties{Allowed: allowed}
		return nil
	}
	var schema Schema
	if err := unmarshal(&schema); err != nil {
		return err
	}
	*a = AdditionalProperties{Allowed: true, Schema: &schema}
	return nil
}

// remarshal decodes an already-decoded YAML value into out.
func remarshal(value any, out any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
