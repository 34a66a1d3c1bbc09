// Package validation provides the builtin validators of option values:
// choices, and go-playground/validator tags.
package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	flagerrors "github.com/reeflective/optparse/internal/errors"
)

var (
	defaultValidator *validator.Validate
	defaultOnce      sync.Once
)

// Default returns the shared validator instance, created on first use.
func Default() *validator.Validate {
	defaultOnce.Do(func() {
		defaultValidator = validator.New()
	})

	return defaultValidator
}

// Var returns a function validating a value against a validator tag,
// like "min=1,max=65535" or "ip". A nil validator uses Default().
// Invalid tags make the function fail on any value.
func Var(validate *validator.Validate, tag string) func(val any) error {
	if validate == nil {
		validate = Default()
	}

	return func(val any) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w %q: %v", errInvalidTag, tag, r)
			}
		}()

		if err := validate.Var(val, tag); err != nil {
			return &invalidVarError{
				tag:          tag,
				value:        fmt.Sprintf("%v", val),
				validatorErr: err,
			}
		}

		return nil
	}
}

// Choice checks the given raw value is among valid choices.
func Choice(val string, choices []string) error {
	if len(choices) == 0 {
		return nil
	}

	for _, choice := range choices {
		if choice == val {
			return nil
		}
	}

	return fmt.Errorf("%w: `%s` (valid: %s)", flagerrors.ErrInvalidChoice, val, strings.Join(choices, ", "))
}
