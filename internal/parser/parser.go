// Package parser consumes raw argument tokens against a definition set
// and resolves the final set of options.
package parser

import (
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	flagerrors "github.com/reeflective/optparse/internal/errors"
	"github.com/reeflective/optparse/internal/index"
	"github.com/reeflective/optparse/internal/option"
)

const (
	shortIndicator = "-"
	longIndicator  = "--"
	valueDelimiter = "="
)

// Parse validates the definition set, consumes all tokens and resolves
// absent options. Any error aborts the call: no results are returned.
func Parse[K comparable](defs []option.Definition[K], args []string, opts *Opts) (option.Results[K], error) {
	if opts == nil {
		opts = DefOpts()
	}

	idx, err := index.Build(defs)
	if err != nil {
		return nil, err
	}

	scan := &scanner[K]{
		index:   idx,
		opts:    opts,
		args:    args,
		results: make(option.Results[K]),
	}

	if err := scan.consume(); err != nil {
		return nil, err
	}

	return resolve(defs, scan.results, opts)
}

// scanner holds the state of a single parse call.
type scanner[K comparable] struct {
	index   *index.Index[K]
	opts    *Opts
	args    []string
	pos     int
	results option.Results[K]
}

func (s *scanner[K]) consume() error {
	for s.pos < len(s.args) {
		token := s.args[s.pos]
		s.pos++

		var err error

		switch {
		case strings.HasPrefix(token, longIndicator):
			err = s.parseLong(token)
		case strings.HasPrefix(token, shortIndicator):
			err = s.parseShort(token)
		case strings.TrimSpace(token) == "":
			s.opts.Logger.Debug("Skipping blank token.", "position", s.pos-1)
		default:
			err = flagerrors.New(flagerrors.ErrUnrecognizedToken, token)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// parseLong handles `--name` and `--name=value` tokens.
func (s *scanner[K]) parseLong(token string) error {
	name, value, inline := strings.Cut(strings.TrimPrefix(token, longIndicator), valueDelimiter)
	if strings.TrimSpace(name) == "" {
		return flagerrors.New(flagerrors.ErrMissingLongArgument, token)
	}

	def, found := s.index.Long(name)
	if !found {
		return s.unknown(longIndicator+name, s.index.SuggestLong(name))
	}

	flag := def.Flag()

	switch {
	case !flag.HasValue:
		if inline {
			return flagerrors.New(flagerrors.ErrUnexpectedValue, token)
		}

		s.store(def, nil)

	case flag.OptionalValue:
		if !inline {
			s.store(def, nil)

			return nil
		}

		return s.bind(def, value)

	default:
		if !inline {
			next, ok := s.next()
			if !ok {
				return flagerrors.New(flagerrors.ErrMissingMandatoryValue, longIndicator+name)
			}

			value = next
		}

		return s.bind(def, value)
	}

	return nil
}

// parseShort handles `-x`, `-x=value` and bundled `-xyz` tokens.
func (s *scanner[K]) parseShort(token string) error {
	body := strings.TrimPrefix(token, shortIndicator)
	if strings.TrimSpace(body) == "" {
		return flagerrors.New(flagerrors.ErrMissingShortArgument, token)
	}

	if key, value, inline := strings.Cut(body, valueDelimiter); inline {
		return s.parseShortInline(token, key, value)
	}

	// All options of a bundle requiring a value share the next token.
	var shared *string

	for _, alias := range body {
		def, found := s.index.Short(alias)
		if !found {
			if err := s.unknown(shortIndicator+string(alias), ""); err != nil {
				return err
			}

			continue
		}

		flag := def.Flag()

		if !flag.HasValue || flag.OptionalValue {
			s.store(def, nil)

			continue
		}

		if shared == nil {
			next, ok := s.next()
			if !ok {
				return flagerrors.New(flagerrors.ErrMissingMandatoryValue, shortIndicator+string(alias))
			}

			shared = &next
		}

		if err := s.bind(def, *shared); err != nil {
			return err
		}
	}

	return nil
}

func (s *scanner[K]) parseShortInline(token, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return flagerrors.New(flagerrors.ErrMissingShortArgument, token)
	}

	if utf8.RuneCountInString(key) != 1 {
		return flagerrors.New(flagerrors.ErrBundledValueWithMultipleFlags, token)
	}

	alias, _ := utf8.DecodeRuneInString(key)

	def, found := s.index.Short(alias)
	if !found {
		return s.unknown(shortIndicator+key, "")
	}

	if !def.Flag().HasValue {
		return flagerrors.New(flagerrors.ErrUnexpectedValue, token)
	}

	return s.bind(def, value)
}

// next consumes the lookahead token, if any.
func (s *scanner[K]) next() (string, bool) {
	if s.pos >= len(s.args) {
		return "", false
	}

	token := s.args[s.pos]
	s.pos++

	return token, true
}

// unknown fails on an unknown alias, unless the parser is lenient.
func (s *scanner[K]) unknown(alias, suggestion string) error {
	if s.opts.Lenient {
		s.opts.Logger.Debug("Ignoring unknown argument.", "alias", alias)

		return nil
	}

	err := flagerrors.New(flagerrors.ErrUnknownArgument, alias)
	err.Suggestion = suggestion

	return err
}

func (s *scanner[K]) bind(def option.Definition[K], raw string) error {
	val, err := bind(def, raw)
	if err != nil {
		return err
	}

	s.store(def, val)

	return nil
}

// store overwrites any previous result for the option identity.
func (s *scanner[K]) store(def option.Definition[K], val any) {
	if _, found := s.results[def.ID()]; found {
		s.opts.Logger.Debug("Overriding option.", "option", def.ID())
	}

	s.opts.Logger.Debug("Bound option.", "option", def.ID(), slog.Any("value", val))

	s.results[def.ID()] = &option.Result[K]{
		Definition: def,
		Value:      val,
		Source:     option.CommandLine,
	}
}

// bind converts and validates a raw value, making sure that any
// failure is reported with the option identity.
func bind[K comparable](def option.Definition[K], raw string) (any, error) {
	val, err := def.Bind(raw)
	if err == nil {
		return val, nil
	}

	var perr *flagerrors.Error
	if errors.As(err, &perr) {
		return nil, perr
	}

	return nil, flagerrors.Wrap(flagerrors.ErrConversionFailed, def.ID(), err)
}
