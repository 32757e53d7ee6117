// Package app provides the application context and the commands of the
// autocomplete CLI, which generates bash completion scripts from YAML
// command descriptors.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// App represents the autocomplete application with all its dependencies.
type App struct {
	flags  GlobalFlags
	config *Config
	logger zerolog.Logger

	stdout io.Writer
	stderr io.Writer
}

// GlobalFlags holds the values of the persistent flags of the root command.
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	NoColor    bool
	LogLevel   string
}

// Option configures the application.
type Option func(*App)

// WithOutput sets the writers used for command output and for logs/messages.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// New creates a new App instance. Its configuration is
// loaded once the command-line flags have been parsed.
func New(opts ...Option) *App {
	app := &App{
		config: &Config{},
		logger: zerolog.Nop(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Execute runs the command line.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.Command()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	return root.ExecuteContext(ctx)
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return &a.logger
}

// setup loads the configuration and builds the logger,
// once the flags of the command line are known.
func (a *App) setup(_ *cobra.Command, _ []string) error {
	config, err := LoadConfig(a.flags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	config.UpdateFromFlags(&a.flags)

	a.config = config
	a.logger = NewLogger(config, a.stderr)

	if config.NoColor {
		color.NoColor = true
	}

	a.logger.Debug().Str("config_file", config.ConfigFile).Msg("Configuration loaded")

	return nil
}

// ExitOnError prints the error and exits with a non-zero status.
func ExitOnError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
	os.Exit(1)
}
