// Package model holds the command model a completion script is generated from:
// the options, short aliases, required fields, positional arguments and
// subcommands of a command, collected from tagged structs, cobra commands
// or command descriptors.
package model

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/reeflective/autocomplete/internal/errors"
	"github.com/reeflective/autocomplete/internal/parser"
)

// Completion is a static completion directive for an option argument or a positional.
type Completion = parser.Completion

// Completion kinds.
const (
	CompleteNone  = parser.CompleteNone
	CompleteFiles = parser.CompleteFiles
	CompleteDirs  = parser.CompleteDirs
)

// Field is a bound slot of a command: the struct field (or its
// equivalent in non-reflective sources) set by an option or argument.
type Field struct {
	Name  string       // Go field name, or flag/descriptor name
	Owner string       // Type (or command) declaring the field
	Level int          // Depth in the type hierarchy, 0 being the most-derived type.
	Index []int        // Index path from the root struct, nil for non-reflective sources.
	Type  reflect.Type // Field type, nil for non-reflective sources.
}

// String returns the qualified name of the field.
func (f *Field) String() string {
	if f.Owner == "" {
		return f.Name
	}

	return f.Owner + "." + f.Name
}

// Option is a named option of a command.
type Option struct {
	Name       string // Long name, with leading dashes.
	Short      string // Single-character alias, without dash.
	Usage      string
	Required   bool
	Hidden     bool
	Bool       bool // Boolean options take no argument.
	Choices    []string
	Completion Completion
	Field      *Field
}

// TakesArgument returns true if the option consumes the next command-line word.
func (o *Option) TakesArgument() bool {
	return !o.Bool
}

// ShortName returns the short alias with its leading dash, or an empty string.
func (o *Option) ShortName() string {
	if o.Short == "" {
		return ""
	}

	return "-" + o.Short
}

// Positional is a positional argument slot of a command.
type Positional struct {
	Name       string
	Usage      string
	Index      int  // Position among the command's positionals.
	Repeatable bool // Consumes all remaining words.
	Required   bool
	Choices    []string
	Completion Completion
	Field      *Field
}

// Command is the aggregated model of a command and its subcommands.
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	Hidden  bool

	Required    []*Field            // Mandatory fields, in hierarchy-walk order.
	Options     *Bindings[*Option]  // Long option names (with dashes) to options.
	Shorts      *Bindings[*Option]  // Single-character aliases to options.
	Positionals []*Positional       // Positional slots, in hierarchy-walk order.
	Commands    *Bindings[*Command] // Subcommand registry, by name.
}

// NewCommand returns an empty command model.
func NewCommand(name string) *Command {
	return &Command{
		Name:     name,
		Options:  NewBindings[*Option](),
		Shorts:   NewBindings[*Option](),
		Commands: NewBindings[*Command](),
	}
}

// AddOption binds an option by its long name and its short alias.
// Names already bound are left untouched: they are returned so that
// the caller can report the shadowed declaration.
// Required options are always appended to the required fields.
func (c *Command) AddOption(opt *Option) (shadowed []string, err error) {
	if !strings.HasPrefix(opt.Name, "-") {
		opt.Name = "--" + opt.Name
	}

	if err := checkName(opt.Name); err != nil {
		return nil, err
	}

	if opt.Short != "" {
		if err := checkName(opt.Short); err != nil {
			return nil, err
		}
	}

	c.init()

	if !c.Options.Add(opt.Name, opt) {
		shadowed = append(shadowed, opt.Name)
	}

	if opt.Short != "" && !c.Shorts.Add(opt.Short, opt) {
		shadowed = append(shadowed, opt.ShortName())
	}

	if opt.Field == nil {
		opt.Field = &Field{Name: opt.Name, Owner: c.Name}
	}

	if opt.Required {
		c.Required = append(c.Required, opt.Field)
	}

	return shadowed, nil
}

// AddPositional appends a positional slot, setting its index.
func (c *Command) AddPositional(pos *Positional) error {
	if err := checkName(pos.Name); err != nil {
		return err
	}

	if pos.Field == nil {
		pos.Field = &Field{Name: pos.Name, Owner: c.Name}
	}

	c.init()

	pos.Index = len(c.Positionals)
	c.Positionals = append(c.Positionals, pos)

	if pos.Required {
		c.Required = append(c.Required, pos.Field)
	}

	return nil
}

// AddCommand registers a subcommand, returning false
// if a subcommand with the same name is already registered.
func (c *Command) AddCommand(sub *Command) (bool, error) {
	if err := checkName(sub.Name); err != nil {
		return false, err
	}

	for _, alias := range sub.Aliases {
		if err := checkName(alias); err != nil {
			return false, err
		}
	}

	c.init()

	return c.Commands.Add(sub.Name, sub), nil
}

// init creates the bindings of a command declared as a struct literal.
func (c *Command) init() {
	if c.Options == nil {
		c.Options = NewBindings[*Option]()
	}

	if c.Shorts == nil {
		c.Shorts = NewBindings[*Option]()
	}

	if c.Commands == nil {
		c.Commands = NewBindings[*Command]()
	}
}

// Lookup returns the subcommand registered under name, or having name as alias.
func (c *Command) Lookup(name string) (*Command, bool) {
	if sub, found := c.Commands.Get(name); found {
		return sub, true
	}

	for _, sub := range c.Commands.Values() {
		for _, alias := range sub.Aliases {
			if alias == name {
				return sub, true
			}
		}
	}

	return nil, false
}

// VisibleCommands returns the subcommands that are not hidden, in registry order.
func (c *Command) VisibleCommands() []*Command {
	var visible []*Command

	for _, sub := range c.Commands.Values() {
		if !sub.Hidden {
			visible = append(visible, sub)
		}
	}

	return visible
}

// VisibleOptions returns the options that are not hidden, in binding order.
func (c *Command) VisibleOptions() []*Option {
	var visible []*Option

	for _, opt := range c.Options.Values() {
		if !opt.Hidden {
			visible = append(visible, opt)
		}
	}

	return visible
}

// Walk calls fn for the command and all its subcommands, depth-first,
// in registry order. The path holds the names from the root command.
func (c *Command) Walk(fn func(path []string, cmd *Command)) {
	c.walk(nil, fn)
}

func (c *Command) walk(parent []string, fn func(path []string, cmd *Command)) {
	path := append(append([]string{}, parent...), c.Name)
	fn(path, c)

	for _, sub := range c.Commands.Values() {
		sub.walk(path, fn)
	}
}

// checkName verifies a name can be used as a single shell word.
func checkName(name string) error {
	if name == "" || strings.Trim(name, "-") == "" {
		return fmt.Errorf("%w: %q is empty", errors.ErrInvalidName, name)
	}

	for _, r := range name {
		if unicode.IsSpace(r) || r == 0 || !unicode.IsPrint(r) {
			return fmt.Errorf("%w: %q contains whitespace or control characters",
				errors.ErrInvalidName, name)
		}
	}

	return nil
}
