package model

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/reeflective/autocomplete/internal/errors"
	"github.com/reeflective/autocomplete/internal/parser"
)

// Collect builds the command model of a tagged struct, which must be a non-nil
// pointer to a struct. The root command is named after the program name option.
//
// The type hierarchy of a struct is its embedding tree: the struct's own
// declared fields come first, then the declared fields of its embedded structs,
// then theirs, level by level. Options and short aliases are bound by the first
// declaration found, so a name declared by an embedding struct shadows the same
// name declared by an embedded one, like Go field promotion does.
func Collect(data any, optFuncs ...parser.OptFunc) (*Command, error) {
	if data == nil {
		return nil, errors.ErrNilObject
	}

	ptrval := reflect.ValueOf(data)
	if ptrval.Kind() != reflect.Ptr || ptrval.Type().Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %T", errors.ErrNotPointerToStruct, data)
	}

	if ptrval.IsNil() {
		return nil, errors.ErrNilObject
	}

	opts := parser.DefOpts().Apply(optFuncs...)

	coll := &collector{log: opts.Logger}

	cmd, err := coll.command(opts.Program, ptrval.Type().Elem(), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrParse, err)
	}

	return cmd, nil
}

// collector walks command types. It is used for a single collection.
type collector struct {
	log    zerolog.Logger
	stack  []reflect.Type // Command types being collected, root first.
	groups []reflect.Type // Group types being scanned, outermost first.
}

// level is one type of a command's type hierarchy.
type level struct {
	typ   reflect.Type
	index []int
	depth int
	opts  *parser.Opts
}

func (c *collector) command(name string, typ reflect.Type, opts *parser.Opts) (*Command, error) {
	for _, seen := range c.stack {
		if seen == typ {
			return nil, fmt.Errorf("%w: %s is its own subcommand", errors.ErrRecursiveCommand, typ)
		}
	}

	c.stack = append(c.stack, typ)
	groups := c.groups
	c.groups = nil

	defer func() {
		c.stack = c.stack[:len(c.stack)-1]
		c.groups = groups
	}()

	cmd := NewCommand(name)

	// Types embedded more than once, or embedding themselves
	// through pointers, are only scanned at their shallowest level.
	type scanKey struct {
		typ    reflect.Type
		prefix string
	}

	scanned := make(map[scanKey]bool)

	queue := []level{{typ: typ, opts: opts}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		key := scanKey{current.typ, current.opts.Prefix}
		if scanned[key] {
			continue
		}

		scanned[key] = true

		ancestors, err := c.scan(cmd, current)
		if err != nil {
			return nil, err
		}

		queue = append(queue, ancestors...)
	}

	c.log.Debug().
		Str("command", name).
		Int("options", cmd.Options.Len()).
		Int("shorts", cmd.Shorts.Len()).
		Int("positionals", len(cmd.Positionals)).
		Int("commands", cmd.Commands.Len()).
		Msg("collected command")

	return cmd, nil
}

// scan binds all the fields declared by a single type of the hierarchy,
// and returns the embedded types to scan at the next level.
func (c *collector) scan(cmd *Command, lvl level) ([]level, error) {
	var ancestors []level

	for i := range lvl.typ.NumField() {
		fld := lvl.typ.Field(i)

		tag, untagged, err := parser.GetFieldTag(fld)
		if err != nil {
			return nil, err
		}

		kind, err := parser.Classify(fld, tag, untagged, lvl.opts)
		if err != nil {
			return nil, err
		}

		field := &Field{
			Name:  fld.Name,
			Owner: typeName(lvl.typ),
			Level: lvl.depth,
			Index: append(append([]int{}, lvl.index...), i),
			Type:  fld.Type,
		}

		switch kind {
		case parser.KindNone:
		case parser.KindEmbedded:
			ancestors = append(ancestors, level{
				typ:   parser.Indirect(fld.Type),
				index: field.Index,
				depth: lvl.depth + 1,
				opts:  lvl.opts,
			})
		case parser.KindOption:
			err = c.option(cmd, field, fld, tag, lvl.opts)
		case parser.KindPositional:
			err = c.positional(cmd, field, fld, tag, false, lvl.opts)
		case parser.KindPositionals:
			err = c.positionals(cmd, field, fld, tag, lvl.opts)
		case parser.KindCommand:
			err = c.subcommand(cmd, fld, tag, lvl.opts)
		case parser.KindOptions, parser.KindCommands:
			var groupAncestors []level
			groupAncestors, err = c.group(cmd, field, fld, tag, lvl)
			ancestors = append(ancestors, groupAncestors...)
		}

		if err != nil {
			return nil, err
		}
	}

	return ancestors, nil
}

// group scans a group of options or commands. Groups belong to
// the type declaring them: their fields are scanned at its level.
func (c *collector) group(cmd *Command, field *Field, fld reflect.StructField, tag *parser.Tag, lvl level) ([]level, error) {
	typ := parser.Indirect(fld.Type)

	for _, seen := range c.groups {
		if seen == typ {
			return nil, fmt.Errorf("%w: group field %s contains itself", errors.ErrInvalidTag, field)
		}
	}

	c.groups = append(c.groups, typ)
	defer func() { c.groups = c.groups[:len(c.groups)-1] }()

	return c.scan(cmd, level{
		typ:   typ,
		index: field.Index,
		depth: lvl.depth,
		opts:  parser.GroupOpts(fld, tag, lvl.opts),
	})
}

func (c *collector) option(cmd *Command, field *Field, fld reflect.StructField, tag *parser.Tag, opts *parser.Opts) error {
	flag, err := parser.ParseFlag(fld, tag, opts)
	if err != nil {
		return err
	}

	opt := &Option{
		Name:       flag.Name,
		Short:      flag.Short,
		Usage:      flag.Usage,
		Required:   flag.Required,
		Hidden:     flag.Hidden,
		Bool:       flag.Bool,
		Choices:    flag.Choices,
		Completion: flag.Completion,
		Field:      field,
	}

	shadowed, err := cmd.AddOption(opt)
	if err != nil {
		return fmt.Errorf("option field %s: %w", field, err)
	}

	for _, name := range shadowed {
		c.log.Debug().
			Str("command", cmd.Name).
			Str("option", name).
			Str("field", field.String()).
			Int("level", field.Level).
			Msg("option already declared by a more derived type, ignoring")
	}

	return nil
}

func (c *collector) positional(cmd *Command, field *Field, fld reflect.StructField, tag *parser.Tag, all bool, opts *parser.Opts) error {
	parsed := parser.ParsePositional(fld, tag, all, opts)

	pos := &Positional{
		Name:       parsed.Name,
		Usage:      parsed.Usage,
		Repeatable: parsed.Repeatable,
		Required:   parsed.Required,
		Choices:    parsed.Choices,
		Completion: parsed.Completion,
		Field:      field,
	}

	if err := cmd.AddPositional(pos); err != nil {
		return fmt.Errorf("positional field %s: %w", field, err)
	}

	return nil
}

// positionals binds all exported fields of a `positional-args` struct, in order.
func (c *collector) positionals(cmd *Command, parent *Field, fld reflect.StructField, stag *parser.Tag, opts *parser.Opts) error {
	stype := parser.Indirect(fld.Type)
	reqAll := parser.IsRequiredGroup(stag)

	for i := range stype.NumField() {
		argField := stype.Field(i)
		if !argField.IsExported() {
			continue
		}

		tag, _, err := parser.GetFieldTag(argField)
		if err != nil {
			return err
		}

		field := &Field{
			Name:  argField.Name,
			Owner: typeName(stype),
			Level: parent.Level,
			Index: append(append([]int{}, parent.Index...), i),
			Type:  argField.Type,
		}

		if err := c.positional(cmd, field, argField, tag, reqAll, opts); err != nil {
			return err
		}
	}

	return nil
}

func (c *collector) subcommand(cmd *Command, fld reflect.StructField, tag *parser.Tag, opts *parser.Opts) error {
	parsed := parser.ParseCommand(tag)

	sub, err := c.command(parsed.Name, parser.Indirect(fld.Type), opts)
	if err != nil {
		return fmt.Errorf("failed to scan subcommand %s: %w", parsed.Name, err)
	}

	sub.Aliases = parsed.Aliases
	sub.Usage = parsed.Usage
	sub.Hidden = parsed.Hidden

	added, err := cmd.AddCommand(sub)
	if err != nil {
		return err
	}

	if !added {
		c.log.Debug().
			Str("command", cmd.Name).
			Str("subcommand", parsed.Name).
			Str("owner", fld.Name).
			Msg("subcommand already declared by a more derived type, ignoring")
	}

	return nil
}

func typeName(typ reflect.Type) string {
	if typ.Name() != "" {
		return typ.Name()
	}

	return typ.String()
}
