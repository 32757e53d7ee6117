package model

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/reeflective/autocomplete/internal/errors"
	"github.com/reeflective/autocomplete/internal/parser"
)

// FromCobra builds the command model of an existing cobra command tree.
//
// The hierarchy of a cobra command is made of its local flags, followed by
// the persistent flags it inherits from its parents. Subcommands are taken
// in the order cobra lists them, deprecated ones excluded.
// The root command is named after the program name option, if set, or
// after the command itself.
func FromCobra(root *cobra.Command, optFuncs ...parser.OptFunc) (*Command, error) {
	if root == nil {
		return nil, errors.ErrNilObject
	}

	opts := parser.DefOpts()
	opts.Program = ""
	opts.Apply(optFuncs...)

	cmd, err := fromCobra(root, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrParse, err)
	}

	if opts.Program != "" {
		cmd.Name = opts.Program
	}

	return cmd, nil
}

func fromCobra(cc *cobra.Command, opts *parser.Opts) (*Command, error) {
	cmd := NewCommand(cc.Name())
	cmd.Aliases = cc.Aliases
	cmd.Usage = cc.Short
	cmd.Hidden = cc.Hidden

	sets := []*pflag.FlagSet{cc.LocalFlags(), cc.InheritedFlags()}

	for depth, set := range sets {
		var err error

		set.VisitAll(func(flag *pflag.Flag) {
			if err != nil {
				return
			}

			err = addCobraFlag(cmd, cc, flag, depth, opts)
		})

		if err != nil {
			return nil, err
		}
	}

	if len(cc.ValidArgs) > 0 {
		args := &Positional{
			Name:       "args",
			Repeatable: true,
			Choices:    cc.ValidArgs,
			Field:      &Field{Name: "ValidArgs", Owner: cc.CommandPath()},
		}

		if err := cmd.AddPositional(args); err != nil {
			return nil, err
		}
	}

	for _, sub := range cc.Commands() {
		if sub.Deprecated != "" {
			continue
		}

		subcmd, err := fromCobra(sub, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subcommand %s: %w", sub.Name(), err)
		}

		if _, err := cmd.AddCommand(subcmd); err != nil {
			return nil, err
		}
	}

	return cmd, nil
}

func addCobraFlag(cmd *Command, cc *cobra.Command, flag *pflag.Flag, depth int, opts *parser.Opts) error {
	opt := &Option{
		Name:       "--" + flag.Name,
		Short:      flag.Shorthand,
		Usage:      flag.Usage,
		Hidden:     flag.Hidden || flag.Deprecated != "",
		Bool:       flag.NoOptDefVal != "",
		Required:   annotated(flag, cobra.BashCompOneRequiredFlag),
		Completion: flagCompletion(flag),
		Field: &Field{
			Name:  flag.Name,
			Owner: flagOwner(cc, flag, depth),
			Level: depth,
		},
	}

	shadowed, err := cmd.AddOption(opt)
	if err != nil {
		return fmt.Errorf("flag %s: %w", flag.Name, err)
	}

	for _, name := range shadowed {
		opts.Logger.Debug().
			Str("command", cc.CommandPath()).
			Str("option", name).
			Msg("flag already declared closer to the command, ignoring")
	}

	return nil
}

// flagOwner returns the path of the command declaring a flag:
// inherited flags are declared by the closest parent owning them.
func flagOwner(cc *cobra.Command, flag *pflag.Flag, depth int) string {
	if depth == 0 {
		return cc.CommandPath()
	}

	for parent := cc.Parent(); parent != nil; parent = parent.Parent() {
		if parent.PersistentFlags().Lookup(flag.Name) == flag {
			return parent.CommandPath()
		}
	}

	return cc.CommandPath()
}

func annotated(flag *pflag.Flag, key string) bool {
	values, found := flag.Annotations[key]

	return found && len(values) > 0 && values[0] == "true"
}

// flagCompletion translates the bash completion annotations
// set by cobra's MarkFlagFilename and MarkFlagDirname.
func flagCompletion(flag *pflag.Flag) Completion {
	if exts, found := flag.Annotations[cobra.BashCompFilenameExt]; found {
		comp := Completion{Kind: parser.CompleteFiles}
		for _, ext := range exts {
			comp.Patterns = append(comp.Patterns, "*."+ext)
		}

		return comp
	}

	if _, found := flag.Annotations[cobra.BashCompSubdirsInDir]; found {
		return Completion{Kind: parser.CompleteDirs}
	}

	return Completion{}
}
