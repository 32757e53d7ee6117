package descriptor

import (
	"fmt"

	"github.com/reeflective/autocomplete/internal/errors"
	"github.com/reeflective/autocomplete/internal/model"
	"github.com/reeflective/autocomplete/internal/parser"
)

// Model builds the command model of the descriptor. The root command is
// named after program, or after the descriptor name if program is empty.
//
// The descriptor is the most-derived level of the hierarchy, its base the
// next one, and so on: options declared by a descriptor shadow the options
// of the same name declared by its bases.
func (c *Command) Model(program string) (*model.Command, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	name := program
	if name == "" {
		name = c.Name
	}

	if name == "" {
		return nil, fmt.Errorf("%w: the root command has no name", errors.ErrInvalidDescriptor)
	}

	cmd, err := c.build(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrParse, err)
	}

	return cmd, nil
}

func (c *Command) build(name string) (*model.Command, error) {
	cmd := model.NewCommand(name)
	cmd.Aliases = c.Aliases
	cmd.Usage = c.Description
	cmd.Hidden = c.Hidden

	owner := name
	depth := 0

	for level := c; level != nil; level = level.Base {
		if err := level.bind(cmd, owner, depth); err != nil {
			return nil, err
		}

		owner += ".base"
		depth++
	}

	return cmd, nil
}

// bind adds the options, positionals and subcommands declared by a single level.
func (c *Command) bind(cmd *model.Command, owner string, depth int) error {
	for _, opt := range c.Options {
		option := &model.Option{
			Name:       normalizeLong(opt.Long),
			Short:      opt.Short,
			Usage:      opt.Description,
			Required:   opt.Required,
			Hidden:     opt.Hidden,
			Bool:       opt.Bool,
			Choices:    opt.Choices,
			Completion: completion(opt.Complete),
			Field:      &model.Field{Name: opt.Long, Owner: owner, Level: depth},
		}

		if _, err := cmd.AddOption(option); err != nil {
			return err
		}
	}

	for _, pos := range c.Positionals {
		positional := &model.Positional{
			Name:       pos.Name,
			Usage:      pos.Description,
			Required:   pos.Required,
			Repeatable: pos.Repeatable,
			Choices:    pos.Choices,
			Completion: completion(pos.Complete),
			Field:      &model.Field{Name: pos.Name, Owner: owner, Level: depth},
		}

		if err := cmd.AddPositional(positional); err != nil {
			return err
		}
	}

	for _, sub := range c.Commands {
		subcmd, err := sub.build(sub.Name)
		if err != nil {
			return fmt.Errorf("subcommand %s: %w", sub.Name, err)
		}

		if _, err := cmd.AddCommand(subcmd); err != nil {
			return err
		}
	}

	return nil
}

// completion parses a directive with the syntax of `complete` struct tags.
func completion(directive string) model.Completion {
	if directive == "" {
		return model.Completion{}
	}

	return parser.ParseCompletion(&parser.Tag{"complete": {directive}})
}
