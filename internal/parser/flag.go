package parser

// Flag describes an option found on a struct field.
type Flag struct {
	Name       string     // long name, without dashes
	Short      string     // optional single-character name, without dash
	Usage      string     // help message
	Required   bool       // If true, the option _must_ be specified on the command line.
	Hidden     bool       // Flag hidden from descriptions/completions
	Bool       bool       // Boolean flags take no argument.
	Choices    []string   // If non empty, only a certain set of values is allowed for an option.
	Completion Completion // Static completion directive for the option argument.
}

// Positional describes a positional argument found on a struct field.
type Positional struct {
	Name       string
	Usage      string
	Repeatable bool // Slices and maps consume all remaining words.
	Required   bool
	Choices    []string
	Completion Completion
}

// Command describes a subcommand found on a struct field.
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	Hidden  bool
}
