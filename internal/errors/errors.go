package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Definition-set errors, raised before any token is read.
var (
	// ErrEmptyDefinitionSet indicates that no option definitions were given.
	ErrEmptyDefinitionSet = errors.New("empty definition set")

	// ErrDuplicateIdentity indicates that two definitions share an identity.
	ErrDuplicateIdentity = errors.New("duplicate identity")

	// ErrNoAliasProvided indicates a definition without short nor long alias.
	ErrNoAliasProvided = errors.New("no alias provided")

	// ErrDuplicateAlias indicates that a short or long alias is used by two definitions.
	ErrDuplicateAlias = errors.New("duplicate alias")

	// ErrInvalidAlias indicates an alias that could never be typed on a command line.
	ErrInvalidAlias = errors.New("invalid alias")
)

// Tokenization errors.
var (
	// ErrMissingLongArgument indicates a `--` indicator without a name.
	ErrMissingLongArgument = errors.New("missing long argument")

	// ErrMissingShortArgument indicates a `-` indicator without a name.
	ErrMissingShortArgument = errors.New("missing short argument")

	// ErrUnknownArgument indicates an alias that no definition declares.
	ErrUnknownArgument = errors.New("unknown argument")

	// ErrUnrecognizedToken indicates a token that is neither an option nor blank.
	ErrUnrecognizedToken = errors.New("unrecognized token")

	// ErrBundledValueWithMultipleFlags indicates `-abc=value`.
	ErrBundledValueWithMultipleFlags = errors.New("bundled value with multiple flags")

	// ErrUnexpectedValue indicates a value given to an option that takes none.
	ErrUnexpectedValue = errors.New("unexpected value")
)

// Value-resolution and post-parse errors.
var (
	// ErrMissingMandatoryValue indicates that the tokens ran out before a required value.
	ErrMissingMandatoryValue = errors.New("missing mandatory value")

	// ErrConversionFailed wraps the failure of an option converter.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrValidationFailed indicates that a converted value was rejected.
	ErrValidationFailed = errors.New("validation failed")

	// ErrMissingMandatoryOption indicates a mandatory option absent after parsing.
	ErrMissingMandatoryOption = errors.New("missing mandatory option")
)

// ErrBoilerplateNotSet is returned when help is requested before the
// program boilerplate was configured.
var ErrBoilerplateNotSet = errors.New("boilerplate not set")

// ErrInvalidChoice indicates that a raw value is not among the allowed choices.
var ErrInvalidChoice = errors.New("invalid choice")

// Error represents a parser error. All errors returned from a parse or
// render call are of this type. Type is always one of the sentinel errors
// of this package, so that errors.Is can be used on the returned value.
type Error struct {
	// Type is the sentinel error describing the failure class.
	Type error

	// Option is the identity of the offending option, if known.
	Option any

	// Name is the alias or raw token involved, if any.
	Name string

	// Description is the option description, for validation and
	// missing option errors.
	Description string

	// Suggestion is the closest known alias to an unknown one.
	Suggestion string

	// Cause is the underlying error (converter, validator...).
	Cause error
}

// Error returns the error's message.
func (e *Error) Error() string {
	var msg strings.Builder

	msg.WriteString(e.Type.Error())

	if e.Name != "" {
		fmt.Fprintf(&msg, ": %s", e.Name)
	}

	if e.Option != nil && e.Name == "" {
		fmt.Fprintf(&msg, ": option %v", e.Option)
	}

	if e.Description != "" {
		fmt.Fprintf(&msg, " (%s)", e.Description)
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&msg, ", did you mean %s?", e.Suggestion)
	}

	if e.Cause != nil {
		fmt.Fprintf(&msg, ": %s", e.Cause.Error())
	}

	return msg.String()
}

// Unwrap exposes both the error class and its cause.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Type}
	}

	return []error{e.Type, e.Cause}
}

// New returns a new error of the given class, involving an alias or token.
func New(kind error, name string) *Error {
	return &Error{Type: kind, Name: name}
}

// ForOption returns a new error of the given class, for an option identity.
func ForOption(kind error, id any, description string) *Error {
	return &Error{Type: kind, Option: id, Description: description}
}

// Wrap returns a new error of the given class for an option, wrapping cause.
func Wrap(kind error, id any, cause error) *Error {
	return &Error{Type: kind, Option: id, Cause: cause}
}
