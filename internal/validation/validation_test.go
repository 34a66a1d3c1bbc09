package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flagerrors "github.com/reeflective/optparse/internal/errors"
)

func TestVar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tag     string
		val     any
		wantErr string
	}{
		{name: "valid min", tag: "min=1", val: 3},
		{name: "invalid min", tag: "min=1", val: 0, wantErr: "`0` does not satisfy min=1"},
		{name: "valid ip", tag: "ip", val: "10.0.0.1"},
		{name: "invalid ip", tag: "ip", val: "10.0.0", wantErr: "`10.0.0` does not satisfy ip"},
		{name: "valid alternative", tag: "hostname|ip", val: "example.com"},
		{name: "invalid oneof", tag: "oneof=a b", val: "c", wantErr: "`c` does not satisfy oneof=a b"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := Var(nil, test.tag)(test.val)
			if test.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.EqualError(t, err, test.wantErr)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs, "the validator error is kept")
		})
	}
}

func TestVar_CustomValidator(t *testing.T) {
	t.Parallel()

	custom := validator.New()
	require.NoError(t, custom.RegisterValidation("even", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	}))

	check := Var(custom, "even")
	require.NoError(t, check(4))
	require.EqualError(t, check(3), "`3` does not satisfy even")
}

func TestVar_InvalidTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tag  string
	}{
		{name: "unknown rule", tag: "mni=1"},
		{name: "missing parameter", tag: "min"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var err error

			require.NotPanics(t, func() { err = Var(nil, test.tag)(1) })
			require.ErrorIs(t, err, errInvalidTag)
			assert.Contains(t, err.Error(), `invalid validation tag "`+test.tag+`"`)
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	assert.Same(t, Default(), Default())
}

func TestChoice(t *testing.T) {
	t.Parallel()

	require.NoError(t, Choice("anything", nil))
	require.NoError(t, Choice("b", []string{"a", "b"}))

	err := Choice("c", []string{"a", "b"})
	require.ErrorIs(t, err, flagerrors.ErrInvalidChoice)
	assert.EqualError(t, err, "invalid choice: `c` (valid: a, b)")
}
