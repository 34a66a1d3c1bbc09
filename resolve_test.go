package optparse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/optparse/config"
	"github.com/reeflective/optparse/convert"
	"github.com/reeflective/optparse/internal/option"
)

// lookup returns a lookup function over a fixed environment.
func lookup(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		val, found := env[name]

		return val, found
	}
}

// values returns the raw values of results, with their sources.
func values[K comparable](results Results[K]) map[K]string {
	all := make(map[K]string, len(results))

	for id, res := range results {
		all[id] = res.Source.String() + ":" + option.FormatValue(res.Value)
	}

	return all
}

func TestResolve_Precedence(t *testing.T) {
	t.Parallel()

	newDefs := func() []Definition[string] {
		return Set[string](
			Value("host", convert.String, "H", "host").Env("HOST").Default("localhost"),
			Value("port", convert.Int[int](), "p", "port").Env("PORT").Default(22),
			Value("user", convert.String, "u", "user").Env("USER"),
			Value("tags", convert.Slice(",", convert.String), "tags"),
			Marker("debug", "d", "debug").Env("DEBUG"),
		)
	}

	file, err := config.LoadTOML(strings.NewReader(`
host = "config.example.com"
port = 2222
user = "root"
tags = ["a", "b"]
debug = true
`))
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
		env  map[string]string
		want map[string]string
	}{
		{
			name: "defaults only",
			want: map[string]string{
				"host": "default:localhost",
				"port": "default:22",
			},
		},
		{
			name: "environment over default",
			env:  map[string]string{"APP_HOST": "env.example.com", "APP_DEBUG": "1", "APP_USER": ""},
			want: map[string]string{
				"host":  "environment:env.example.com",
				"port":  "default:22",
				"user":  "environment:",
				"debug": "environment:",
			},
		},
		{
			name: "command line over environment",
			args: []string{"--host", "cli.example.com", "-d"},
			env:  map[string]string{"APP_HOST": "env.example.com", "APP_DEBUG": "false"},
			want: map[string]string{
				"host":  "command-line:cli.example.com",
				"port":  "default:22",
				"debug": "command-line:",
			},
		},
		{
			name: "falsy marker is absent",
			env:  map[string]string{"APP_DEBUG": "no"},
			want: map[string]string{
				"host": "default:localhost",
				"port": "default:22",
			},
		},
		{
			name: "unprefixed variables are ignored",
			env:  map[string]string{"HOST": "env.example.com"},
			want: map[string]string{
				"host": "default:localhost",
				"port": "default:22",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			results, err := Parse(newDefs(), test.args,
				WithLookup(lookup(test.env)),
				WithEnvPrefix("APP_"),
			)
			require.NoError(t, err)

			if diff := cmp.Diff(test.want, values(results)); diff != "" {
				t.Errorf("unexpected results (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("config source", func(t *testing.T) {
		t.Parallel()

		results, err := Parse(newDefs(), []string{"-u", "admin"},
			WithLookup(lookup(map[string]string{"PORT": "8022"})),
			WithSource(file),
		)
		require.NoError(t, err)

		want := map[string]string{
			"host":  "config:config.example.com",
			"port":  "environment:8022",
			"user":  "command-line:admin",
			"tags":  "config:a,b",
			"debug": "config:",
		}

		if diff := cmp.Diff(want, values(results)); diff != "" {
			t.Errorf("unexpected results (-want +got):\n%s", diff)
		}
	})
}

func TestResolve_ExternalErrors(t *testing.T) {
	t.Parallel()

	port := Value("port", convert.Int[int](), "p").Env("PORT").ValidateTag("min=1")

	_, err := Parse(Set[string](port), nil, WithLookup(lookup(map[string]string{"PORT": "http"})))
	requireErrorType(t, err, ErrConversionFailed)

	_, err = Parse(Set[string](port), nil, WithLookup(lookup(map[string]string{"PORT": "0"})))
	requireErrorType(t, err, ErrValidationFailed)
}

func TestResolve_MandatoryFromEnvironment(t *testing.T) {
	t.Parallel()

	session := Value("session", uuid.Parse, "s", "session").Env("SESSION").Mandatory()
	id := uuid.New()

	_, err := Parse(Set[string](session), nil)
	requireErrorType(t, err, ErrMissingMandatoryOption)

	results, err := Parse(Set[string](session), nil, WithLookup(lookup(map[string]string{
		"SESSION": id.String(),
	})))
	require.NoError(t, err)

	val, found := session.From(results)
	require.True(t, found)
	assert.Equal(t, id, val)
	assert.Equal(t, Environment, results["session"].Source)

	_, err = Parse(Set[string](session), []string{"--session", "not-a-uuid"})
	requireErrorType(t, err, ErrConversionFailed)
}

func TestResolve_OptionalFromEnvironment(t *testing.T) {
	t.Parallel()

	level := Value("level", convert.Int[int](), "level").OptionalValue().Env("LEVEL").Default(1)

	results, err := Parse(Set[string](level), nil, WithLookup(lookup(map[string]string{"LEVEL": ""})))
	require.NoError(t, err)
	require.Contains(t, results, "level")
	assert.Nil(t, results["level"].Value, "an empty optional value is present without value")

	results, err = Parse(Set[string](level), nil, WithLookup(lookup(map[string]string{"LEVEL": "3"})))
	require.NoError(t, err)

	val, _ := level.From(results)
	assert.Equal(t, 3, val)
}

func TestResolve_ComparableIdentities(t *testing.T) {
	t.Parallel()

	hostID, portID := uuid.New(), uuid.New()

	host := Value(hostID, convert.String, "host").Env("HOST")
	port := Value(portID, convert.Int[int](), "port").Default(22)

	results, err := Parse(Set[uuid.UUID](host, port), nil, WithLookup(lookup(map[string]string{"HOST": "example.com"})))
	require.NoError(t, err)

	want := map[uuid.UUID]string{
		hostID: "environment:example.com",
		portID: "default:22",
	}

	if diff := cmp.Diff(want, values(results)); diff != "" {
		t.Errorf("unexpected results (-want +got):\n%s", diff)
	}

	_, err = Parse(Set[uuid.UUID](host, Value(hostID, convert.String, "other")), nil)
	perr := requireErrorType(t, err, ErrDuplicateIdentity)
	assert.Equal(t, hostID, perr.Option)
}
