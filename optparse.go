// Package optparse parses command-line arguments against a declarative set
// of option definitions, and renders their usage text.
//
// Options are declared with typed builders: the type of the value, its
// converter and validators are checked at compile time, while the parser
// works on a heterogeneous set of definitions sharing an identity type K:
//
//	help := optparse.Marker("help", "h", "help").ShortCircuit()
//	port := optparse.Value("port", convert.Int[int](), "p", "port").Mandatory()
//
//	results, err := optparse.Parse(optparse.Set[string](help, port), os.Args[1:])
//	if err != nil {
//		...
//	}
//
//	if help.IsSet(results) {
//		...
//	}
//	p, _ := port.From(results)
//
// Long options are written `--name` or `--name=value`, short ones `-n`,
// `-n=value`, or bundled `-abc`. When an option is supplied more than
// once, the last occurrence wins.
//
// For ready-made converters, see the subpackage at
// "github.com/reeflective/optparse/convert". To load option values from
// configuration files, see "github.com/reeflective/optparse/config".
package optparse

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	flagerrors "github.com/reeflective/optparse/internal/errors"
	"github.com/reeflective/optparse/internal/help"
	"github.com/reeflective/optparse/internal/option"
	"github.com/reeflective/optparse/internal/parser"
)

// === Definitions and results ===

// Flag holds the metadata of an option definition.
type Flag = option.Flag

// Definition is any option definition with an identity of type K.
// *Option[K, T] implements it for all T.
type Definition[K comparable] interface {
	option.Definition[K]
}

// Set gathers definitions of different value types in a single slice.
func Set[K comparable](defs ...Definition[K]) []Definition[K] {
	return defs
}

// Source tells where the value of a resolved option comes from.
type Source = option.Source

// Sources of resolved values.
const (
	CommandLine = option.CommandLine
	Environment = option.Environment
	Config      = option.Config
	Default     = option.Default
)

// Result is a resolved option.
type Result[K comparable] = option.Result[K]

// Results maps option identities to their resolved option.
type Results[K comparable] = option.Results[K]

// Get returns the value of an option in results, if it is present,
// has a value and this value is of type T.
func Get[T any, K comparable](results Results[K], id K) (T, bool) {
	var zero T

	res, found := results[id]
	if !found || res.Value == nil {
		return zero, false
	}

	val, ok := res.Value.(T)

	return val, ok
}

// === Parsing ===

// ParseOption is a functional option for configuring a parse call.
type ParseOption func(o *parser.Opts)

func toInternalOpts(opts []ParseOption) *parser.Opts {
	internalOpts := make([]parser.OptFunc, len(opts))
	for i, opt := range opts {
		internalOpts[i] = parser.OptFunc(opt)
	}

	return parser.DefOpts().Apply(internalOpts...)
}

// Lenient makes the parser silently skip unknown aliases.
// All other errors are still reported.
func Lenient() ParseOption {
	return ParseOption(parser.Lenient())
}

// FromEnv makes options declaring environment variables fall back
// to the process environment when absent from the command line.
func FromEnv() ParseOption {
	return ParseOption(parser.FromEnv())
}

// WithLookup is like FromEnv, with a custom lookup function.
func WithLookup(lookup func(name string) (string, bool)) ParseOption {
	return ParseOption(parser.WithLookup(lookup))
}

// WithEnvPrefix sets a prefix for all environment variable names.
func WithEnvPrefix(prefix string) ParseOption {
	return ParseOption(parser.EnvPrefix(prefix))
}

// WithSource adds a configuration source, consulted by long alias for
// options absent from the command line and the environment.
// Sources are consulted in the order they are given.
func WithSource(source interface{ Lookup(name string) (string, bool) }) ParseOption {
	return ParseOption(parser.WithSource(source.Lookup))
}

// WithLogger sets a logger receiving debug traces of parsing.
func WithLogger(logger *slog.Logger) ParseOption {
	return ParseOption(parser.WithLogger(logger))
}

// Parse parses args against defs and returns the resolved options.
// Any error aborts the parse: no results are returned along with it.
func Parse[K comparable](defs []Definition[K], args []string, opts ...ParseOption) (Results[K], error) {
	return parser.Parse(toInternal(defs), args, toInternalOpts(opts))
}

func toInternal[K comparable](defs []Definition[K]) []option.Definition[K] {
	internal := make([]option.Definition[K], len(defs))
	for i, def := range defs {
		internal[i] = def
	}

	return internal
}

// === Parser ===

// Parser binds a definition set with the program boilerplate needed
// to render help. It can be used concurrently for parsing, since
// results are never stored in it.
type Parser[K comparable] struct {
	defs []Definition[K]
	opts []ParseOption

	mutex       sync.RWMutex
	boilerplate *help.Boilerplate
}

// NewParser returns a parser for the given definitions. The options are
// applied to all parse calls, before those given to Parse.
func NewParser[K comparable](defs []Definition[K], opts ...ParseOption) *Parser[K] {
	return &Parser[K]{defs: defs, opts: opts}
}

// Definitions returns the definitions of the parser.
func (p *Parser[K]) Definitions() []Definition[K] {
	return p.defs
}

// Parse parses args and returns the resolved options.
func (p *Parser[K]) Parse(args []string, opts ...ParseOption) (Results[K], error) {
	all := append(append([]ParseOption{}, p.opts...), opts...)

	return Parse(p.defs, args, all...)
}

// === Help ===

// Boilerplate is the program description rendered around the options in help.
type Boilerplate = help.Boilerplate

// HelpOption is a functional option for rendering help.
type HelpOption func(o *help.Opts)

// Colored renders help section headers in bold.
func Colored() HelpOption {
	return func(o *help.Opts) { o.Colored = true }
}

// SetBoilerplate configures the program description used in help.
func (p *Parser[K]) SetBoilerplate(boilerplate Boilerplate) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.boilerplate = &boilerplate
}

// WriteHelp writes the help message to writer. It fails with
// ErrBoilerplateNotSet if SetBoilerplate has not been called.
func (p *Parser[K]) WriteHelp(writer io.Writer, opts ...HelpOption) error {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	var hopts help.Opts
	for _, opt := range opts {
		opt(&hopts)
	}

	return help.Write(writer, p.boilerplate, toInternal(p.defs), hopts)
}

// Help returns the help message as a string.
func (p *Parser[K]) Help(opts ...HelpOption) (string, error) {
	var buf strings.Builder

	if err := p.WriteHelp(&buf, opts...); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// === Public Errors ===

// Error is the type of all errors returned by parsing and rendering.
// Use errors.Is with the sentinel errors below to check for a class of
// error, and errors.As to access the details.
type Error = flagerrors.Error

var (
	ErrEmptyDefinitionSet            = flagerrors.ErrEmptyDefinitionSet
	ErrDuplicateIdentity             = flagerrors.ErrDuplicateIdentity
	ErrNoAliasProvided               = flagerrors.ErrNoAliasProvided
	ErrDuplicateAlias                = flagerrors.ErrDuplicateAlias
	ErrInvalidAlias                  = flagerrors.ErrInvalidAlias
	ErrMissingLongArgument           = flagerrors.ErrMissingLongArgument
	ErrMissingShortArgument          = flagerrors.ErrMissingShortArgument
	ErrUnknownArgument               = flagerrors.ErrUnknownArgument
	ErrUnrecognizedToken             = flagerrors.ErrUnrecognizedToken
	ErrBundledValueWithMultipleFlags = flagerrors.ErrBundledValueWithMultipleFlags
	ErrUnexpectedValue               = flagerrors.ErrUnexpectedValue
	ErrMissingMandatoryValue         = flagerrors.ErrMissingMandatoryValue
	ErrConversionFailed              = flagerrors.ErrConversionFailed
	ErrValidationFailed              = flagerrors.ErrValidationFailed
	ErrMissingMandatoryOption        = flagerrors.ErrMissingMandatoryOption
	ErrBoilerplateNotSet             = flagerrors.ErrBoilerplateNotSet
	ErrInvalidChoice                 = flagerrors.ErrInvalidChoice
)
