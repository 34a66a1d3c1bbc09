// Package index builds and validates the alias lookup tables of a
// definition set.
package index

import (
	"strings"
	"unicode"

	"github.com/reeflective/optparse/internal/errors"
	"github.com/reeflective/optparse/internal/option"
)

// Index maps short and long aliases to their definition.
// It is read-only once built.
type Index[K comparable] struct {
	shorts map[rune]option.Definition[K]
	longs  map[string]option.Definition[K]
}

// Build validates a definition set and returns its lookup tables.
// Identities are checked across the whole set before aliases, so
// that a duplicate identity is always reported as such.
func Build[K comparable](defs []option.Definition[K]) (*Index[K], error) {
	if len(defs) == 0 {
		return nil, errors.New(errors.ErrEmptyDefinitionSet, "")
	}

	ids := make(map[K]struct{}, len(defs))

	for _, def := range defs {
		if _, found := ids[def.ID()]; found {
			return nil, errors.ForOption(errors.ErrDuplicateIdentity, def.ID(), "")
		}

		ids[def.ID()] = struct{}{}
	}

	idx := &Index[K]{
		shorts: make(map[rune]option.Definition[K]),
		longs:  make(map[string]option.Definition[K]),
	}

	for _, def := range defs {
		if err := idx.add(def); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *Index[K]) add(def option.Definition[K]) error {
	flag := def.Flag()

	if len(flag.Shorts) == 0 && len(flag.Longs) == 0 {
		return errors.ForOption(errors.ErrNoAliasProvided, def.ID(), "")
	}

	for _, short := range flag.Shorts {
		if !validShort(short) {
			return errors.New(errors.ErrInvalidAlias, "-"+string(short))
		}

		if _, found := idx.shorts[short]; found {
			return errors.New(errors.ErrDuplicateAlias, "-"+string(short))
		}

		idx.shorts[short] = def
	}

	for _, long := range flag.Longs {
		if !validLong(long) {
			return errors.New(errors.ErrInvalidAlias, "--"+long)
		}

		if _, found := idx.longs[long]; found {
			return errors.New(errors.ErrDuplicateAlias, "--"+long)
		}

		idx.longs[long] = def
	}

	return nil
}

// Short returns the definition declaring a short alias.
func (idx *Index[K]) Short(alias rune) (option.Definition[K], bool) {
	def, found := idx.shorts[alias]

	return def, found
}

// Long returns the definition declaring a long alias.
func (idx *Index[K]) Long(alias string) (option.Definition[K], bool) {
	def, found := idx.longs[alias]

	return def, found
}

// SuggestLong returns the closest known long alias, prefixed, or
// an empty string when nothing is close enough.
func (idx *Index[K]) SuggestLong(alias string) string {
	names := make([]string, 0, len(idx.longs))
	for name := range idx.longs {
		names = append(names, name)
	}

	closest, dist := closestChoice(alias, names)
	if closest == "" || dist > maxSuggestDistance(alias) {
		return ""
	}

	return "--" + closest
}

func validShort(short rune) bool {
	return short != '-' && short != '=' && unicode.IsPrint(short) && !unicode.IsSpace(short)
}

func validLong(long string) bool {
	if strings.TrimSpace(long) == "" || strings.HasPrefix(long, "-") {
		return false
	}

	return !strings.ContainsAny(long, "= \t\n")
}

func maxSuggestDistance(alias string) int {
	if len(alias) < 4 {
		return 1
	}

	return 2
}
