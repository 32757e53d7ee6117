package parser

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// OptFunc sets values in Opts structure.
type OptFunc func(opt *Opts)

// Opts specifies different parsing and generation options.
type Opts struct {
	// FlagTag is the struct tag name for sflags-style flags.
	FlagTag string

	// Delimiter for flags.
	FlagDivider string

	// Prefix for all flags.
	Prefix string

	// ParseAll specifies either to parse all fields or only tagged ones.
	ParseAll bool

	// Program is the name of the program the completion script is for.
	Program string

	// Logger receives debug information about the model collection.
	Logger zerolog.Logger
}

// DefOpts returns the default parsing options.
func DefOpts() *Opts {
	return &Opts{
		FlagTag:     "flag",
		FlagDivider: "-",
		Program:     filepath.Base(os.Args[0]),
		Logger:      zerolog.Nop(),
	}
}

// Apply applies the given options to the current options.
func (o *Opts) Apply(optFuncs ...OptFunc) *Opts {
	for _, f := range optFuncs {
		(f)(o)
	}

	return o
}

// Copy returns a shallow copy of the options, used when
// descending into namespaced option groups.
func (o *Opts) Copy() *Opts {
	cp := *o

	return &cp
}

// FlagTag sets custom flag tag. It is "flag" be default.
func FlagTag(val string) OptFunc { return func(opt *Opts) { opt.FlagTag = val } }

// Prefix sets prefix that will be applied for all flags (if they are not marked as ~).
func Prefix(val string) OptFunc { return func(opt *Opts) { opt.Prefix = val } }

// FlagDivider sets custom divider for flags. It is dash by default. e.g. "flag-name".
func FlagDivider(val string) OptFunc { return func(opt *Opts) { opt.FlagDivider = val } }

// ParseAll orders the parser to generate a flag for all struct fields.
func ParseAll() OptFunc { return func(opt *Opts) { opt.ParseAll = true } }

// Program sets the program name used by the generated script.
func Program(name string) OptFunc { return func(opt *Opts) { opt.Program = name } }

// Logger sets the logger used while collecting the command model.
func Logger(log zerolog.Logger) OptFunc { return func(opt *Opts) { opt.Logger = log } }

// CopyOpts replaces all options with the given ones.
func CopyOpts(val *Opts) OptFunc { return func(opt *Opts) { *opt = *val } }
