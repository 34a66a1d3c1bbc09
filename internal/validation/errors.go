package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// errInvalidTag is returned instead of the validator panics on tags
// it cannot parse, like unknown rules or missing parameters.
var errInvalidTag = errors.New("invalid validation tag")

// invalidVarError is a value rejected by a validator tag. Its message
// names the rule that failed, with its parameter.
type invalidVarError struct {
	tag          string
	value        string // This is the string representation of the value
	validatorErr error
}

func (err *invalidVarError) Error() string {
	var fields validator.ValidationErrors
	if !errors.As(err.validatorErr, &fields) || len(fields) == 0 {
		return fmt.Sprintf("`%s` does not satisfy %s: %s", err.value, err.tag, err.validatorErr)
	}

	rule := fields[0].Tag()
	if param := fields[0].Param(); param != "" {
		rule += "=" + param
	}

	return fmt.Sprintf("`%s` does not satisfy %s", err.value, rule)
}

func (err *invalidVarError) Unwrap() error {
	return err.validatorErr
}
