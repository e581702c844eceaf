package formats

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/validation"
)

// ErrUnknownFormat is matched (through errors.Is) by the error Lookup returns
// for names that have no registered validator.
var ErrUnknownFormat = errors.New("unknown string format")

// Func validates a string against one named format.
type Func func(value string) validation.Result

// Validate implements validation.Validator[string]. The error is always nil.
func (f Func) Validate(value string) (validation.Result, error) {
	return f(value), nil
}

// Ensure Func implements validation.Validator at compile time.
var _ validation.Validator[string] = Func(nil)

// Registry maps format names to validators. It is safe for concurrent use;
// lookups vastly outnumber registrations, so reads take a shared lock.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// NewDefault returns a registry holding the built-in formats.
func NewDefault() *Registry {
	r := NewRegistry()
	r.funcs["email"] = Email
	r.funcs["date"] = Date
	r.funcs["date-time"] = DateTime
	for _, name := range strfmtNames {
		if fn, ok := strfmtFunc(name); ok {
			r.funcs[name] = fn
		}
	}
	return r
}

// Register adds or replaces the validator for name.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return &oaserrors.ConfigError{Option: "format", Message: "format name cannot be empty"}
	}
	if fn == nil {
		return &oaserrors.ConfigError{Option: "format", Value: name, Message: "validator cannot be nil"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
	return nil
}

// Lookup returns the validator registered for name. Unknown names yield a
// *oaserrors.ConfigError wrapping ErrUnknownFormat.
func (r *Registry) Lookup(name string) (Func, error) {
	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &oaserrors.ConfigError{
			Option:  "format",
			Value:   name,
			Message: "no validator registered",
			Cause:   ErrUnknownFormat,
		}
	}
	return fn, nil
}

// Has reports whether a validator is registered for name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.funcs[name]
	return ok
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Validate looks up format and applies it to value.
func (r *Registry) Validate(format, value string) (validation.Result, error) {
	fn, err := r.Lookup(format)
	if err != nil {
		return nil, fmt.Errorf("validating %q: %w", format, err)
	}
	return fn(value), nil
}
