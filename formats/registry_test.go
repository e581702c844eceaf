package formats

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasguard/oaserrors"
	"github.com/erraggy/oasguard/validation"
)

func TestNewDefaultBuiltins(t *testing.T) {
	r := NewDefault()

	for _, name := range []string{"email", "date", "date-time", "uuid", "ipv4"} {
		assert.True(t, r.Has(name), "expected %q to be registered", name)
	}

	names := r.Names()
	assert.True(t, len(names) >= 5)
	assert.IsNonDecreasing(t, names)
}

func TestStrfmtBackedFormats(t *testing.T) {
	r := NewDefault()

	res, err := r.Validate("uuid", "a2f4e0c0-8d34-4b3e-9a55-6a7c1d9b0f12")
	require.NoError(t, err)
	assert.True(t, validation.IsSuccess(res))

	res, err = r.Validate("uuid", "not-a-uuid")
	require.NoError(t, err)
	assert.Equal(t, validation.InvalidValue{Message: "value is not a valid uuid"}, res)

	res, err = r.Validate("ipv4", "192.168.0.1")
	require.NoError(t, err)
	assert.True(t, validation.IsSuccess(res))

	res, err = r.Validate("ipv4", "300.1.1.1")
	require.NoError(t, err)
	assert.False(t, validation.IsSuccess(res))
}

func TestLookupUnknownFormat(t *testing.T) {
	r := NewDefault()

	fn, err := r.Lookup("phone")
	assert.Nil(t, fn)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	var cfgErr *oaserrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "phone", cfgErr.Value)

	_, err = r.Validate("phone", "555-0100")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Names())

	upper := Func(func(v string) validation.Result {
		if strings.ToUpper(v) != v {
			return validation.InvalidValue{Message: "value must be upper case"}
		}
		return validation.Success{}
	})
	require.NoError(t, r.Register("upper", upper))
	assert.Equal(t, []string{"upper"}, r.Names())

	res, err := r.Validate("upper", "ABC")
	require.NoError(t, err)
	assert.True(t, validation.IsSuccess(res))

	res, err = r.Validate("upper", "abc")
	require.NoError(t, err)
	assert.Equal(t, "value must be upper case", res.Data())

	assert.ErrorIs(t, r.Register("", upper), oaserrors.ErrConfig)
	assert.ErrorIs(t, r.Register("lower", nil), oaserrors.ErrConfig)
}

func TestFuncAsValidator(t *testing.T) {
	var v validation.Validator[string] = Func(Email)

	res, err := v.Validate("a@b.com")
	require.NoError(t, err)
	assert.Equal(t, validation.Success{}, res)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewDefault()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = r.Validate("email", "a@b.com")
		}()
		go func() {
			defer wg.Done()
			_ = r.Register("custom", Email)
		}()
	}
	wg.Wait()
	assert.True(t, r.Has("custom"))
}
