package requestvalidator

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/openapi"
	"github.com/erraggy/oasguard/validation"
)

// rootName names the body as a whole in BodyOutcome.
const rootName = "$"

// BodyOutcome lists the body properties that are required but absent and
// present but not conforming. Both empty means the body is valid.
type BodyOutcome struct {
	Missing []string
	Invalid []string
}

// Valid reports whether no property was missing or invalid.
func (o BodyOutcome) Valid() bool {
	return len(o.Missing) == 0 && len(o.Invalid) == 0
}

// ValidateBody validates a decoded JSON body against a requestBody. A nil
// body stands for an absent one.
//
// The error is non-nil only when the schema references a string format with
// no registered validator, or a pattern that does not compile.
func (v *Validator) ValidateBody(body any, rb *openapi.RequestBody) (BodyOutcome, error) {
	if rb == nil {
		return BodyOutcome{}, nil
	}
	if body == nil {
		if rb.Inline != nil && len(rb.Inline.Required) > 0 {
			// The inline form has no required flag of its own; an absent body
			// is an empty object, so the schema's required names are missing.
			body = map[string]any{}
		} else if rb.Required {
			return BodyOutcome{Missing: []string{rootName}}, nil
		} else {
			return BodyOutcome{}, nil
		}
	}

	schema := requestBodySchema(rb)
	if schema == nil {
		return BodyOutcome{}, nil
	}

	w := &bodyWalker{v: v, seen: make(map[string]bool)}
	if err := w.walk(body, schema, ""); err != nil {
		return BodyOutcome{}, err
	}
	return w.outcome, nil
}

// requestBodySchema picks the JSON schema of a requestBody: the inline form,
// then application/json, then any +json media type, then wildcards.
func requestBodySchema(rb *openapi.RequestBody) *openapi.Schema {
	if rb.Inline != nil {
		return rb.Inline
	}
	if len(rb.Content) == 0 {
		return nil
	}

	mediaTypes := make([]string, 0, len(rb.Content))
	for mt := range rb.Content {
		mediaTypes = append(mediaTypes, mt)
	}
	sort.Strings(mediaTypes)

	for _, accept := range []func(string) bool{
		func(mt string) bool { return mt == "application/json" },
		func(mt string) bool { return strings.HasSuffix(mt, "+json") },
		func(mt string) bool { return mt == "application/*" || mt == "*/*" },
	} {
		for _, key := range mediaTypes {
			if accept(baseMediaType(key)) {
				if content := rb.Content[key]; content != nil {
					return content.Schema
				}
			}
		}
	}
	return nil
}

// baseMediaType strips parameters and folds case: "Application/JSON;
// charset=utf-8" becomes "application/json".
func baseMediaType(mt string) string {
	mt, _, _ = strings.Cut(mt, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// bodyWalker accumulates a BodyOutcome while descending a value and its
// schema. Each name is reported at most once.
type bodyWalker struct {
	v       *Validator
	outcome BodyOutcome
	seen    map[string]bool
}

func (w *bodyWalker) missing(name string) {
	if key := "m:" + name; !w.seen[key] {
		w.seen[key] = true
		w.outcome.Missing = append(w.outcome.Missing, name)
	}
}

func (w *bodyWalker) invalid(path string) {
	name := displayName(path)
	if key := "i:" + name; !w.seen[key] {
		w.seen[key] = true
		w.outcome.Invalid = append(w.outcome.Invalid, name)
	}
}

// walk validates data against schema at path ("" for the body itself).
func (w *bodyWalker) walk(data any, schema *openapi.Schema, path string) error {
	if schema == nil || schema.Ref != "" {
		return nil
	}

	types := schema.Types()
	if data == nil {
		if len(types) > 0 && !schema.AllowsNull() {
			w.invalid(path)
		}
		return nil
	}

	if !typeAllowed(data, types) {
		w.invalid(path)
		return nil
	}

	ok := true
	switch d := data.(type) {
	case string:
		valid, err := w.checkString(d, schema)
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(path), err)
		}
		ok = valid
	case float64:
		ok = checkNumber(d, schema)
	case []any:
		ok = checkArray(d, schema)
		if items := schema.Items; items != nil {
			for i, item := range d {
				if err := w.walk(item, items, indexPath(path, i)); err != nil {
					return err
				}
			}
		}
	case map[string]any:
		ok = checkObjectSize(d, schema)
		if err := w.walkObject(d, schema, path); err != nil {
			return err
		}
	}

	if len(schema.Enum) > 0 && !enumContains(schema.Enum, data) {
		ok = false
	}
	if !ok {
		w.invalid(path)
	}
	return nil
}

// walkObject reports required properties in declaration order, then
// validates present properties sorted by name.
func (w *bodyWalker) walkObject(obj map[string]any, schema *openapi.Schema, path string) error {
	for _, name := range schema.Required {
		if _, exists := obj[name]; !exists {
			w.missing(propertyPath(path, name))
		}
	}

	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	slices.Sort(names)

	extra := schema.AdditionalProperties
	for _, name := range names {
		value := obj[name]
		if propSchema, ok := schema.Properties[name]; ok {
			if err := w.walk(value, propSchema, propertyPath(path, name)); err != nil {
				return err
			}
			continue
		}
		switch {
		case extra == nil:
		case !extra.Allowed:
			w.invalid(propertyPath(path, name))
		case extra.Schema != nil:
			if err := w.walk(value, extra.Schema, propertyPath(path, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkString applies length, pattern and format constraints.
func (w *bodyWalker) checkString(s string, schema *openapi.Schema) (bool, error) {
	ok := true
	length := utf8.RuneCountInString(s)
	if schema.MinLength != nil && length < *schema.MinLength {
		ok = false
	}
	if schema.MaxLength != nil && length > *schema.MaxLength {
		ok = false
	}

	if schema.Pattern != "" {
		matched, err := w.v.matchPattern(schema.Pattern, s)
		if err != nil {
			return false, err
		}
		if !matched {
			ok = false
		}
	}

	if schema.Format != "" {
		fn, err := w.v.formats.Lookup(schema.Format)
		if err != nil {
			return false, err
		}
		if !validation.IsSuccess(fn(s)) {
			ok = false
		}
	}
	return ok, nil
}

// checkNumber applies range and multipleOf constraints.
func checkNumber(n float64, schema *openapi.Schema) bool {
	if schema.Minimum != nil {
		if isExclusiveFlag(schema.ExclusiveMinimum) {
			if n <= *schema.Minimum {
				return false
			}
		} else if n < *schema.Minimum {
			return false
		}
	}
	if schema.Maximum != nil {
		if isExclusiveFlag(schema.ExclusiveMaximum) {
			if n >= *schema.Maximum {
				return false
			}
		} else if n > *schema.Maximum {
			return false
		}
	}

	// OAS 3.1 numeric bounds
	if bound, ok := toFloat64(schema.ExclusiveMinimum); ok && n <= bound {
		return false
	}
	if bound, ok := toFloat64(schema.ExclusiveMaximum); ok && n >= bound {
		return false
	}

	if schema.MultipleOf != nil && *schema.MultipleOf != 0 {
		q := n / *schema.MultipleOf
		if math.Abs(q-math.Round(q)) > 1e-9 {
			return false
		}
	}
	return true
}

// checkArray applies item count and uniqueness constraints.
func checkArray(arr []any, schema *openapi.Schema) bool {
	if schema.MinItems != nil && len(arr) < *schema.MinItems {
		return false
	}
	if schema.MaxItems != nil && len(arr) > *schema.MaxItems {
		return false
	}
	if schema.UniqueItems && hasDuplicates(arr) {
		return false
	}
	return true
}

// checkObjectSize applies property count constraints.
func checkObjectSize(obj map[string]any, schema *openapi.Schema) bool {
	if schema.MinProperties != nil && len(obj) < *schema.MinProperties {
		return false
	}
	if schema.MaxProperties != nil && len(obj) > *schema.MaxProperties {
		return false
	}
	return true
}

// maxPatternCacheSize is the upper bound on cached compiled regex patterns.
// When exceeded, the cache is cleared to prevent unbounded memory growth
// from documents with many unique patterns.
const maxPatternCacheSize = 1000

// matchPattern compiles and matches a regex pattern.
func (v *Validator) matchPattern(pattern, s string) (bool, error) {
	if cached, ok := v.patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp).MatchString(s), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, &oaserrors.ConfigError{Option: "pattern", Value: pattern, Cause: err}
	}

	// The count check and clear are not atomic; concurrent clears only cost
	// recompilation.
	if v.patternCount.Add(1) > maxPatternCacheSize {
		v.patternCache.Range(func(key, _ any) bool {
			v.patternCache.Delete(key)
			return true
		})
		v.patternCount.Store(1)
	}
	v.patternCache.Store(pattern, re)
	return re.MatchString(s), nil
}

// Helper functions

// typeAllowed reports whether data is an instance of one of types. No types
// means any type.
func typeAllowed(data any, types []string) bool {
	if len(types) == 0 {
		return true
	}
	dataType := dataTypeOf(data)
	for _, t := range types {
		switch {
		case t == dataType:
			return true
		case t == "number" && dataType == "integer":
			return true
		case t == "integer" && dataType == "number":
			if f, ok := data.(float64); ok && !math.IsInf(f, 0) && f == math.Trunc(f) {
				return true
			}
		}
	}
	return false
}

// dataTypeOf returns the JSON Schema type of a decoded JSON value.
func dataTypeOf(data any) string {
	switch data.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return "unknown"
}

// isExclusiveFlag reports an OAS 3.0 boolean exclusive bound.
func isExclusiveFlag(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// toFloat64 converts the numeric types a YAML or JSON decoder produces.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// enumContains compares data with each allowed value. Numbers compare by
// value because document enums decode as int while bodies decode as float64.
func enumContains(allowed []any, data any) bool {
	want := normalize(data)
	for _, a := range allowed {
		if reflect.DeepEqual(normalize(a), want) {
			return true
		}
	}
	return false
}

func normalize(v any) any {
	if f, ok := toFloat64(v); ok {
		return f
	}
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = normalize(item)
		}
		return out
	}
	return v
}

// hasDuplicates reports whether two items of arr are equal JSON values.
func hasDuplicates(arr []any) bool {
	items := make([]any, len(arr))
	for i, item := range arr {
		items[i] = normalize(item)
	}
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if reflect.DeepEqual(items[i], items[j]) {
				return true
			}
		}
	}
	return false
}

// propertyPath joins a property name onto a parent path.
func propertyPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// indexPath appends an array index to a parent path.
func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", displayName(parent), i)
}

// displayName renders the body root as "$".
func displayName(path string) string {
	if path == "" {
		return rootName
	}
	return path
}
