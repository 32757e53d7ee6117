// Package autocomplete generates static bash completion scripts for
// command-line applications, from the declarative structure of their
// commands: subcommands, named options with their short aliases, and
// positional arguments.
//
// The structure can be declared in three ways:
//   - with a Go struct, whose fields are tagged like with reeflective/flags,
//     jessevdk/go-flags, octago/sflags or alecthomas/kong;
//   - with an existing *cobra.Command tree;
//   - with a YAML command descriptor (see LoadDescriptor).
//
// The generated script completes subcommands, options, option arguments
// (choices, files and directories) and positional arguments, without ever
// calling the program itself.
package autocomplete

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reeflective/autocomplete/internal/bash"
	"github.com/reeflective/autocomplete/internal/descriptor"
	"github.com/reeflective/autocomplete/internal/errors"
	"github.com/reeflective/autocomplete/internal/model"
	"github.com/reeflective/autocomplete/internal/parser"
	"github.com/reeflective/autocomplete/internal/validation"
)

// === Primary Entry Points ===

// Bash returns the bash completion script of a struct, which must be a
// pointer to a struct. Struct fields tagged with `command:"..."` become
// subcommands, fields tagged with `arg:"..."` (or in a struct tagged with
// `positional-args:"yes"`) positional arguments, and other tagged fields options.
//
// Embedded structs are part of the command: their fields are shadowed
// by the fields of the same name declared by the embedding struct.
//
// Unless WithProgramName is used, the script completes the running program.
func Bash(data any, opts ...Option) (string, error) {
	cmd, popts, err := collect(data, opts)
	if err != nil {
		return "", err
	}

	return bash.Render(cmd, popts.Program), nil
}

// BashCobra returns the bash completion script of a cobra command tree.
// Unless WithProgramName is used, the script completes the root command name.
func BashCobra(root *cobra.Command, opts ...Option) (string, error) {
	if root == nil {
		return "", errors.ErrNilObject
	}

	popts, err := resolve(root.Name(), opts)
	if err != nil {
		return "", err
	}

	cmd, err := model.FromCobra(root, toInternalOpts(opts)...)
	if err != nil {
		return "", fmt.Errorf("failed to collect command: %w", err)
	}

	return bash.Render(cmd, popts.Program), nil
}

// BashDescriptor returns the bash completion script of a command descriptor.
// Unless WithProgramName is used, the script completes the descriptor name.
func BashDescriptor(desc *Descriptor, opts ...Option) (string, error) {
	if desc == nil {
		return "", errors.ErrNilObject
	}

	popts, err := resolve(desc.Name, opts)
	if err != nil {
		return "", err
	}

	cmd, err := desc.Model(popts.Program)
	if err != nil {
		return "", fmt.Errorf("failed to collect command: %w", err)
	}

	return bash.Render(cmd, popts.Program), nil
}

// WriteBash writes the bash completion script of a struct to w.
func WriteBash(w io.Writer, data any, opts ...Option) error {
	cmd, popts, err := collect(data, opts)
	if err != nil {
		return err
	}

	return bash.Write(w, cmd, popts.Program)
}

// Collect returns the command model of a struct, as used to generate scripts.
func Collect(data any, opts ...Option) (*Model, error) {
	cmd, _, err := collect(data, opts)

	return cmd, err
}

// Render returns the bash completion script of a command model.
func Render(cmd *Model, program string) (string, error) {
	if cmd == nil {
		return "", errors.ErrNilObject
	}

	if err := validation.ProgramName(program); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrInvalidOption, err)
	}

	return bash.Render(cmd, program), nil
}

func collect(data any, opts []Option) (*Model, *parser.Opts, error) {
	popts, err := resolve(parser.DefOpts().Program, opts)
	if err != nil {
		return nil, nil, err
	}

	cmd, err := model.Collect(data, parser.CopyOpts(popts))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect command: %w", err)
	}

	return cmd, popts, nil
}

// resolve applies the options over the defaults, and validates them.
func resolve(program string, opts []Option) (*parser.Opts, error) {
	popts := parser.DefOpts()
	popts.Program = program
	popts.Apply(toInternalOpts(opts)...)

	if err := validation.ProgramName(popts.Program); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidOption, err)
	}

	return popts, nil
}

// === Models ===

// Model is the command model a completion script is generated from.
type Model = model.Command

// ModelOption is a named option of a command model.
type ModelOption = model.Option

// Positional is a positional argument of a command model.
type Positional = model.Positional

// Descriptor is a YAML command descriptor. Its base, if any, is the
// parent of the command in its type hierarchy: the options it declares
// are shadowed by the options of the same name declared by the command.
type Descriptor = descriptor.Command

// LoadDescriptor reads and validates a command descriptor file.
func LoadDescriptor(path string) (*Descriptor, error) {
	return descriptor.Load(path)
}

// DecodeDescriptor reads and validates a command descriptor.
func DecodeDescriptor(r io.Reader) (*Descriptor, error) {
	return descriptor.Decode(r)
}

// === Configuration (Functional Options) ===

// Option is a functional option for configuring script generation.
type Option func(o *parser.Opts)

func toInternalOpts(opts []Option) []parser.OptFunc {
	internalOpts := make([]parser.OptFunc, len(opts))
	for i, opt := range opts {
		internalOpts[i] = parser.OptFunc(opt)
	}

	return internalOpts
}

// WithProgramName sets the name of the program completed by the script.
// The name must be usable as a bash function name suffix.
func WithProgramName(name string) Option {
	return Option(parser.Program(name))
}

// WithPrefix sets a prefix that will be applied to all long option names.
func WithPrefix(prefix string) Option {
	return Option(parser.Prefix(prefix))
}

// WithFlagDivider sets the character used to separate words in long option names.
func WithFlagDivider(divider string) Option {
	return Option(parser.FlagDivider(divider))
}

// WithFlagTag sets the name of the sflags-style tag, "flag" by default.
func WithFlagTag(tag string) Option {
	return Option(parser.FlagTag(tag))
}

// WithParseAll makes all exported fields of a struct options,
// even when they are not tagged.
func WithParseAll() Option {
	return Option(parser.ParseAll())
}

// WithLogger sets the logger used to report shadowed declarations and
// other details of the collection, at debug level.
func WithLogger(log zerolog.Logger) Option {
	return Option(parser.Logger(log))
}
