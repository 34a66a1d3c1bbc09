// Package help renders the usage text of a definition set.
package help

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	flagerrors "github.com/reeflective/optparse/internal/errors"
	"github.com/reeflective/optparse/internal/option"
)

const (
	bodyIndent        = "    "
	descriptionIndent = "        "
)

// Section headers, in rendering order.
const (
	HeaderName      = "NAME:"
	HeaderCommand   = "COMMAND:"
	HeaderSynopsis  = "SYNOPSIS:"
	HeaderMandatory = "MANDATORY OPTIONS:"
	HeaderOptions   = "OPTIONS:"
	HeaderAuthor    = "AUTHOR:"
	HeaderBugs      = "REPORTING BUGS:"
)

// Boilerplate is the program description surrounding the options.
type Boilerplate struct {
	Name     string // program name
	Usage    string // usage syntax
	Synopsis string // what the program does
	Author   string // program author(s)
	Bugs     string // where to report bugs
}

// Opts specifies rendering options.
type Opts struct {
	// Colored renders section headers in bold.
	Colored bool
}

// Write renders the help text to writer. It fails with ErrBoilerplateNotSet
// when the boilerplate is nil.
func Write[K comparable](writer io.Writer, boilerplate *Boilerplate, defs []option.Definition[K], opts Opts) error {
	if boilerplate == nil {
		return flagerrors.New(flagerrors.ErrBoilerplateNotSet, "")
	}

	header := fmt.Sprint
	if opts.Colored {
		bold := color.New(color.Bold)
		bold.EnableColor()
		header = bold.Sprint
	}

	var mandatory, regular []option.Definition[K]

	for _, def := range defs {
		switch flag := def.Flag(); {
		case flag.Hidden:
		case flag.Required:
			mandatory = append(mandatory, def)
		default:
			regular = append(regular, def)
		}
	}

	buf := bufio.NewWriter(writer)

	writeSection(buf, header(HeaderName), boilerplate.Name)
	writeSection(buf, header(HeaderCommand), boilerplate.Usage)
	writeSection(buf, header(HeaderSynopsis), boilerplate.Synopsis)

	if len(mandatory) > 0 {
		writeOptions(buf, header(HeaderMandatory), mandatory)
	}

	writeOptions(buf, header(HeaderOptions), regular)
	writeSection(buf, header(HeaderAuthor), boilerplate.Author)
	writeSection(buf, header(HeaderBugs), boilerplate.Bugs)

	return buf.Flush()
}

func writeSection(buf io.Writer, header, body string) {
	fmt.Fprintln(buf, header)

	for _, line := range strings.Split(body, "\n") {
		fmt.Fprintln(buf, indent(bodyIndent, line))
	}

	fmt.Fprintln(buf)
}

func writeOptions[K comparable](buf io.Writer, header string, defs []option.Definition[K]) {
	fmt.Fprintln(buf, header)

	for _, def := range defs {
		fmt.Fprintln(buf, bodyIndent+OptionLine(def))

		if usage := def.Flag().Usage; usage != "" {
			for _, line := range strings.Split(usage, "\n") {
				fmt.Fprintln(buf, indent(descriptionIndent, line))
			}
		}
	}

	fmt.Fprintln(buf)
}

// OptionLine returns the aliases of an option, followed by its value
// annotation and default value, as shown in help.
func OptionLine[K comparable](def option.Definition[K]) string {
	flag := def.Flag()
	line := strings.Join(flag.Names(), ", ")

	if !flag.HasValue {
		return line
	}

	if flag.OptionalValue {
		line += "(=<" + flag.ValueName() + ">)"
	} else {
		line += "=<" + flag.ValueName() + ">"
	}

	if val, found := def.DefaultValue(); found {
		line += fmt.Sprintf(" (default: %s)", option.FormatValue(val))
	}

	return line
}

func indent(prefix, line string) string {
	if line == "" {
		return ""
	}

	return prefix + line
}
