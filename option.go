package optparse

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	flagerrors "github.com/reeflective/optparse/internal/errors"
	"github.com/reeflective/optparse/internal/option"
	"github.com/reeflective/optparse/internal/validation"
)

// Option is the definition of one command-line option whose value is of type T,
// identified by K. Options are built with New, Value or Marker, then refined
// with chained setters. Once passed to a parser they must not be modified.
type Option[K comparable, T any] struct {
	id         K
	flag       option.Flag
	convert    func(string) (T, error)
	validators []func(T) error
	defaultVal T
	hasDefault bool
}

// New returns an option identified by id, taking a value converted with convert.
// It has no alias yet: use Short and Long to declare them.
func New[K comparable, T any](id K, convert func(string) (T, error)) *Option[K, T] {
	return &Option[K, T]{
		id:      id,
		convert: convert,
		flag:    option.Flag{HasValue: true},
	}
}

// Value is a shorthand for New(id, convert) with aliases.
// Single-character names are short aliases, others are long ones.
func Value[K comparable, T any](id K, convert func(string) (T, error), names ...string) *Option[K, T] {
	return New(id, convert).Names(names...)
}

// Marker returns an option that never takes a value: it is either present or not.
func Marker[K comparable](id K, names ...string) *Option[K, bool] {
	opt := &Option[K, bool]{id: id}

	return opt.Names(names...)
}

// Names declares aliases: single-character names are short aliases,
// others are long ones. Names may be given with their `-` or `--` prefix.
func (o *Option[K, T]) Names(names ...string) *Option[K, T] {
	for _, name := range names {
		switch {
		case len(name) > 2 && name[:2] == "--":
			o.flag.Longs = append(o.flag.Longs, name[2:])
		case len([]rune(name)) == 2 && name[0] == '-':
			o.flag.Shorts = append(o.flag.Shorts, []rune(name)[1])
		case len([]rune(name)) == 1:
			o.flag.Shorts = append(o.flag.Shorts, []rune(name)[0])
		default:
			o.flag.Longs = append(o.flag.Longs, name)
		}
	}

	return o
}

// Short adds short aliases.
func (o *Option[K, T]) Short(aliases ...rune) *Option[K, T] {
	o.flag.Shorts = append(o.flag.Shorts, aliases...)

	return o
}

// Long adds long aliases.
func (o *Option[K, T]) Long(aliases ...string) *Option[K, T] {
	o.flag.Longs = append(o.flag.Longs, aliases...)

	return o
}

// Usage sets the description shown in help.
func (o *Option[K, T]) Usage(description string) *Option[K, T] {
	o.flag.Usage = description

	return o
}

// Placeholder sets the name of the value shown in help.
func (o *Option[K, T]) Placeholder(name string) *Option[K, T] {
	o.flag.Placeholder = name

	return o
}

// OptionalValue makes the value optional: it is then only accepted inline
// (--name=value), never taken from the next token.
func (o *Option[K, T]) OptionalValue() *Option[K, T] {
	if o.flag.HasValue {
		o.flag.OptionalValue = true
	}

	return o
}

// Mandatory makes parsing fail when the option is absent, unless a
// short-circuit option is supplied.
func (o *Option[K, T]) Mandatory() *Option[K, T] {
	o.flag.Required = true

	return o
}

// ShortCircuit makes the option suppress all mandatory checks when supplied,
// and discard the results of all non short-circuit options.
func (o *Option[K, T]) ShortCircuit() *Option[K, T] {
	o.flag.ShortCircuit = true

	return o
}

// Hidden removes the option from help.
func (o *Option[K, T]) Hidden() *Option[K, T] {
	o.flag.Hidden = true

	return o
}

// Default sets the value used when the option is not supplied.
// Default values are trusted: they are not validated.
func (o *Option[K, T]) Default(val T) *Option[K, T] {
	o.defaultVal = val
	o.hasDefault = true

	return o
}

// Env declares environment variables consulted when the option is absent
// from the command line, if the parser is given FromEnv or WithLookup.
func (o *Option[K, T]) Env(names ...string) *Option[K, T] {
	o.flag.EnvNames = append(o.flag.EnvNames, names...)

	return o
}

// Choices restricts the raw values accepted for this option.
// They are also used for shell completion.
func (o *Option[K, T]) Choices(choices ...string) *Option[K, T] {
	o.flag.Choices = append(o.flag.Choices, choices...)

	return o
}

// CompleteFiles hints shell completion to propose files.
func (o *Option[K, T]) CompleteFiles() *Option[K, T] {
	o.flag.Completion = option.CompleteFiles

	return o
}

// CompleteDirs hints shell completion to propose directories.
func (o *Option[K, T]) CompleteDirs() *Option[K, T] {
	o.flag.Completion = option.CompleteDirs

	return o
}

// Validate adds a predicate the converted value must satisfy.
func (o *Option[K, T]) Validate(valid func(T) bool) *Option[K, T] {
	o.validators = append(o.validators, func(val T) error {
		if !valid(val) {
			return o.invalid(nil)
		}

		return nil
	})

	return o
}

// ValidateTag adds a go-playground/validator tag the converted value must
// satisfy, like "min=1,max=65535" or "hostname|ip".
func (o *Option[K, T]) ValidateTag(tag string) *Option[K, T] {
	return o.ValidateWith(nil, tag)
}

// ValidateWith is like ValidateTag, with a custom validator instance
// (for instance with custom validations registered).
func (o *Option[K, T]) ValidateWith(validate *validator.Validate, tag string) *Option[K, T] {
	check := validation.Var(validate, tag)

	o.validators = append(o.validators, func(val T) error {
		if err := check(val); err != nil {
			return o.invalid(err)
		}

		return nil
	})

	return o
}

// ID returns the option identity.
func (o *Option[K, T]) ID() K { return o.id }

// Flag returns the option metadata.
func (o *Option[K, T]) Flag() *Flag { return &o.flag }

// Bind converts and validates a raw value.
func (o *Option[K, T]) Bind(raw string) (any, error) {
	if err := validation.Choice(raw, o.flag.Choices); err != nil {
		return nil, o.invalid(err)
	}

	val, err := o.converted(raw)
	if err != nil {
		return nil, flagerrors.Wrap(flagerrors.ErrConversionFailed, o.id, err)
	}

	for _, validate := range o.validators {
		if err := validate(val); err != nil {
			return nil, err
		}
	}

	return val, nil
}

// invalid returns a validation error naming the option by its alias.
func (o *Option[K, T]) invalid(cause error) *flagerrors.Error {
	invalid := flagerrors.Wrap(flagerrors.ErrValidationFailed, o.id, cause)
	invalid.Name = o.flag.Alias()
	invalid.Description = o.flag.Usage

	return invalid
}

func (o *Option[K, T]) converted(raw string) (T, error) {
	if o.convert != nil {
		return o.convert(raw)
	}

	if val, ok := any(raw).(T); ok {
		return val, nil
	}

	var zero T

	return zero, fmt.Errorf("no converter for %T values", zero)
}

// DefaultValue returns the default value, if any.
func (o *Option[K, T]) DefaultValue() (any, bool) {
	if !o.hasDefault {
		return nil, false
	}

	return o.defaultVal, true
}

// From returns the typed value of this option in results.
// The boolean is false when the option is absent, or present without value.
func (o *Option[K, T]) From(results Results[K]) (T, bool) {
	return Get[T](results, o.id)
}

// IsSet returns true if the option is present in results, with or without value.
func (o *Option[K, T]) IsSet(results Results[K]) bool {
	_, found := results[o.id]

	return found
}
