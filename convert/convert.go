// Package convert provides ready-made converters from raw command-line
// strings to typed option values.
package convert

import (
	"encoding"
	"fmt"
	"net"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
)

// Func converts a raw string into a value of type T.
type Func[T any] func(raw string) (T, error)

// String returns the raw string itself.
func String(raw string) (string, error) { return raw, nil }

// Bool parses booleans as strconv.ParseBool does.
func Bool(raw string) (bool, error) { return strconv.ParseBool(raw) }

// Int returns a converter for any signed integer type, with base prefixes
// (0x, 0o, 0b) accepted.
func Int[T constraints.Signed]() Func[T] {
	return func(raw string) (T, error) {
		n, err := strconv.ParseInt(raw, 0, bitSize(T(0)))
		if err != nil {
			return 0, err
		}

		return T(n), nil
	}
}

// Uint returns a converter for any unsigned integer type.
func Uint[T constraints.Unsigned]() Func[T] {
	return func(raw string) (T, error) {
		n, err := strconv.ParseUint(raw, 0, bitSize(T(0)))
		if err != nil {
			return 0, err
		}

		return T(n), nil
	}
}

// Float returns a converter for any floating-point type.
func Float[T constraints.Float]() Func[T] {
	return func(raw string) (T, error) {
		n, err := strconv.ParseFloat(raw, bitSize(T(0)))
		if err != nil {
			return 0, err
		}

		return T(n), nil
	}
}

// Duration parses durations like "1h30m".
func Duration(raw string) (time.Duration, error) { return time.ParseDuration(raw) }

// IP parses an IPv4 or IPv6 address.
func IP(raw string) (net.IP, error) {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return nil, fmt.Errorf("invalid IP address: %q", raw)
	}

	return ip, nil
}

// Regexp compiles the raw string as a regular expression.
func Regexp(raw string) (*regexp.Regexp, error) { return regexp.Compile(raw) }

// Slice returns a converter splitting the raw string on sep and converting
// each item with elem. An empty string yields an empty slice.
func Slice[T any](sep string, elem Func[T]) Func[[]T] {
	return func(raw string) ([]T, error) {
		if raw == "" {
			return []T{}, nil
		}

		items := strings.Split(raw, sep)
		vals := make([]T, 0, len(items))

		for _, item := range items {
			val, err := elem(item)
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", item, err)
			}

			vals = append(vals, val)
		}

		return vals, nil
	}
}

// Map returns a converter parsing "k1:v1,k2:v2" strings into maps.
func Map[K comparable, V any](key Func[K], val Func[V]) Func[map[K]V] {
	return func(raw string) (map[K]V, error) {
		vals := make(map[K]V)
		if raw == "" {
			return vals, nil
		}

		for _, item := range strings.Split(raw, ",") {
			rawKey, rawVal, found := strings.Cut(item, ":")
			if !found {
				return nil, fmt.Errorf("map value must be in 'key:value' format, got %q", item)
			}

			k, err := key(rawKey)
			if err != nil {
				return nil, err
			}

			v, err := val(rawVal)
			if err != nil {
				return nil, err
			}

			vals[k] = v
		}

		return vals, nil
	}
}

// Text returns a converter for types whose pointer implements
// encoding.TextUnmarshaler.
func Text[T any, P interface {
	*T
	encoding.TextUnmarshaler
}]() Func[T] {
	return func(raw string) (T, error) {
		var val T
		if err := P(&val).UnmarshalText([]byte(raw)); err != nil {
			return val, fmt.Errorf("failed to unmarshal %s: %w", reflect.TypeOf(val), err)
		}

		return val, nil
	}
}

func bitSize(zero any) int {
	return reflect.TypeOf(zero).Bits()
}
