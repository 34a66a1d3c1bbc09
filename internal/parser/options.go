package parser

import (
	"log/slog"
	"os"
)

// Lookup finds the value of an external variable (environment, config...).
type Lookup func(name string) (string, bool)

// OptFunc sets values in Opts structure.
type OptFunc func(opt *Opts)

// Opts specifies different parsing options.
type Opts struct {
	// Lenient ignores unknown aliases instead of failing.
	Lenient bool

	// Env looks up environment variables for options declaring some.
	// Nil disables environment fallbacks.
	Env Lookup

	// EnvPrefix is prepended to all environment variable names.
	EnvPrefix string

	// Sources are consulted in order, by long alias, for absent options.
	Sources []Lookup

	// Logger receives debug traces of the parsing process.
	Logger *slog.Logger
}

// DefOpts returns the default parsing options.
func DefOpts() *Opts {
	return &Opts{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Apply applies the given options to the current options.
func (o *Opts) Apply(optFuncs ...OptFunc) *Opts {
	for _, f := range optFuncs {
		(f)(o)
	}

	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	return o
}

// Lenient makes the parser skip unknown aliases.
func Lenient() OptFunc { return func(opt *Opts) { opt.Lenient = true } }

// FromEnv enables environment fallbacks using the process environment.
func FromEnv() OptFunc { return func(opt *Opts) { opt.Env = os.LookupEnv } }

// WithLookup enables environment fallbacks using a custom lookup.
func WithLookup(val Lookup) OptFunc { return func(opt *Opts) { opt.Env = val } }

// EnvPrefix sets a prefix for all environment variable names.
func EnvPrefix(val string) OptFunc { return func(opt *Opts) { opt.EnvPrefix = val } }

// WithSource adds a configuration source consulted for absent options.
func WithSource(val Lookup) OptFunc {
	return func(opt *Opts) { opt.Sources = append(opt.Sources, val) }
}

// WithLogger sets the logger used for debug traces.
func WithLogger(val *slog.Logger) OptFunc { return func(opt *Opts) { opt.Logger = val } }
