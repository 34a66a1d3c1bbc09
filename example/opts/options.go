// Package opts declares the options of the example program.
package opts

import (
	"fmt"
	"strings"

	"github.com/rsteube/carapace"
	"github.com/rsteube/carapace-bin/pkg/actions/net/ssh"
	"github.com/rsteube/carapace-bin/pkg/actions/os"

	"github.com/reeflective/optparse"
	"github.com/reeflective/optparse/convert"
)

// ID identifies the options of the example program.
type ID int

const (
	Help ID = iota
	Version
	Identity
	Target
	Port
	Level
	Verbose
	Tags
)

func (id ID) String() string {
	return [...]string{"help", "version", "identity", "target", "port", "level", "verbose", "tags"}[id]
}

// Options holds the typed definitions, so that their values can be
// read back from results without type assertions.
type Options struct {
	Help     *optparse.Option[ID, bool]
	Version  *optparse.Option[ID, bool]
	Identity *optparse.Option[ID, string]
	Target   *optparse.Option[ID, Machine]
	Port     *optparse.Option[ID, uint16]
	Level    *optparse.Option[ID, string]
	Verbose  *optparse.Option[ID, bool]
	Tags     *optparse.Option[ID, []string]
}

// New declares all options of the example program.
func New() *Options {
	return &Options{
		Help: optparse.Marker(Help, "h", "help").
			ShortCircuit().
			Usage("Show this help and exit"),
		Version: optparse.Marker(Version, "V", "version").
			ShortCircuit().
			Usage("Show the program version and exit"),
		Identity: optparse.Value(Identity, convert.String, "i", "identity").
			Placeholder("file").
			CompleteFiles().
			Usage("The private key used to authenticate"),
		Target: optparse.Value(Target, ParseMachine, "t", "target").
			Placeholder("user@host").
			Mandatory().
			Env("TARGET").
			Usage("The machine to connect to"),
		Port: optparse.Value(Port, convert.Uint[uint16](), "p", "port").
			Default(22).
			ValidateTag("min=1").
			Env("PORT").
			Usage("The port to connect to"),
		Level: optparse.Value(Level, convert.String, "l", "level").
			OptionalValue().
			Default("info").
			Choices("debug", "info", "warn", "error").
			Usage("Log level; --level alone keeps the default"),
		Verbose: optparse.Marker(Verbose, "v", "verbose").
			Usage("Shorthand for --level=debug"),
		Tags: optparse.Value(Tags, convert.Slice(",", convert.String), "tags").
			Placeholder("tag,...").
			Hidden(),
	}
}

// Definitions returns all options as a definition set.
func (o *Options) Definitions() []optparse.Definition[ID] {
	return optparse.Set[ID](o.Help, o.Version, o.Identity, o.Target, o.Port, o.Level, o.Verbose, o.Tags)
}

// Completions returns the completions that cannot be inferred from definitions.
func (o *Options) Completions() map[ID]carapace.Action {
	var machine Machine

	return map[ID]carapace.Action{
		Target: machine.Complete(),
	}
}

// Machine is a user@host target.
type Machine struct {
	User string
	Host string
}

// ParseMachine parses "[user@]host" strings.
func ParseMachine(raw string) (Machine, error) {
	user, host, found := strings.Cut(raw, "@")
	if !found {
		user, host = "", raw
	}

	if host == "" {
		return Machine{}, fmt.Errorf("missing host in %q", raw)
	}

	return Machine{User: user, Host: host}, nil
}

func (m Machine) String() string {
	if m.User == "" {
		return m.Host
	}

	return m.User + "@" + m.Host
}

// Complete provides user@host completions.
func (m Machine) Complete() carapace.Action {
	return carapace.ActionMultiParts("@", func(c carapace.Context) carapace.Action {
		switch len(c.Parts) {
		case 0:
			return os.ActionUsers().Invoke(c).Suffix("@").ToA().NoSpace('@')
		case 1:
			return ssh.ActionHosts()
		default:
			return carapace.ActionValues()
		}
	})
}
