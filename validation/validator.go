package validation

// Validator validates values of type T.
//
// Implementations report invalid values through the returned Result and
// reserve the error for configuration failures.
type Validator[T any] interface {
	Validate(value T) (Result, error)
}

// Func adapts an ordinary function to the Validator interface.
type Func[T any] func(value T) (Result, error)

// Validate calls f(value).
func (f Func[T]) Validate(value T) (Result, error) {
	return f(value)
}

// Ensure Func implements Validator at compile time.
var _ Validator[string] = Func[string](nil)
