// Package descriptor loads command descriptors: YAML documents declaring
// the options, positionals and subcommands of a program, for programs
// whose command structure cannot be collected from Go types.
//
// A descriptor may name a base descriptor, whose options and positionals
// form the next level of the command's hierarchy:
//
//	name: deploy
//	base:
//	  options:
//	    - long: --verbose
//	      short: v
//	      bool: true
//	options:
//	  - long: --target
//	    required: true
//	    choices: [staging, production]
//	commands:
//	  - name: rollback
package descriptor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reeflective/autocomplete/internal/errors"
	"github.com/reeflective/autocomplete/internal/validation"
)

// Command declares a command.
type Command struct {
	Name        string       `yaml:"name"        validate:"omitempty,word"`
	Aliases     []string     `yaml:"aliases"     validate:"dive,word"`
	Description string       `yaml:"description"`
	Hidden      bool         `yaml:"hidden"`
	Base        *Command     `yaml:"base"`
	Options     []Option     `yaml:"options"     validate:"dive"`
	Positionals []Positional `yaml:"positionals" validate:"dive"`
	Commands    []*Command   `yaml:"commands"    validate:"dive"`
}

// Option declares a named option.
type Option struct {
	Long        string   `yaml:"long"        validate:"required,word"`
	Short       string   `yaml:"short"       validate:"omitempty,len=1"`
	Description string   `yaml:"description"`
	Required    bool     `yaml:"required"`
	Hidden      bool     `yaml:"hidden"`
	Bool        bool     `yaml:"bool"`
	Choices     []string `yaml:"choices"     validate:"dive,word"`
	Complete    string   `yaml:"complete"`
}

// Positional declares a positional argument.
type Positional struct {
	Name        string   `yaml:"name"        validate:"required,word"`
	Description string   `yaml:"description"`
	Required    bool     `yaml:"required"`
	Repeatable  bool     `yaml:"repeatable"`
	Choices     []string `yaml:"choices"     validate:"dive,word"`
	Complete    string   `yaml:"complete"`
}

// Load reads and validates a descriptor file.
func Load(path string) (*Command, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open descriptor: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads and validates a descriptor document.
func Decode(r io.Reader) (*Command, error) {
	var cmd Command

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&cmd); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidDescriptor, err)
	}

	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return &cmd, nil
}

// Validate checks the descriptor and all its bases and subcommands.
// Only subcommands must be named: the root command can be named after
// the program, and bases are never named.
func (c *Command) Validate() error {
	if c == nil {
		return errors.ErrNilObject
	}

	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidDescriptor, err)
	}

	return c.checkNames(c.Name)
}

func (c *Command) checkNames(path string) error {
	for level := c; level != nil; level = level.Base {
		for i, sub := range level.Commands {
			if sub == nil || sub.Name == "" {
				return fmt.Errorf("%w: %s: commands[%d].name is required",
					errors.ErrInvalidDescriptor, path, i)
			}

			if err := sub.checkNames(strings.TrimSpace(path + " " + sub.Name)); err != nil {
				return err
			}
		}
	}

	return nil
}

// normalizeLong returns a long option name with two leading dashes.
func normalizeLong(name string) string {
	return "--" + strings.TrimLeft(name, "-")
}
