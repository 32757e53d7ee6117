package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag (explicit always wins)
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. AUTOCOMPLETE_LOG_LEVEL environment variable, or log-level in the config file
//  5. Default (info)
func NewLogger(config *Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(determineLogLevel(config, out))
	if err != nil {
		level = zerolog.InfoLevel
	}

	writer := out
	if useConsole(config.LogFormat, out) {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    config.NoColor,
		}
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// determineLogLevel determines the log level using clear precedence rules.
func determineLogLevel(config *Config, out io.Writer) string {
	if config.LogLevel != "" {
		return validateLogLevel(config.LogLevel, out)
	}

	if config.Verbose && config.Quiet {
		fmt.Fprintf(out, "Warning: both --verbose and --quiet specified, using --quiet\n")

		return "warn"
	}

	if config.Verbose {
		return "debug"
	}

	if config.Quiet {
		return "warn"
	}

	if config.EnvLogLevel != "" {
		return validateLogLevel(config.EnvLogLevel, out)
	}

	return "info"
}

// validateLogLevel validates a log level string and returns a valid level.
// If the input is invalid, returns "info" as a safe default.
func validateLogLevel(level string, out io.Writer) string {
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "error":
		return strings.ToLower(level)
	}

	fmt.Fprintf(out, "Warning: invalid log level %q, using %q\n", level, "info")

	return "info"
}

// useConsole returns true if logs should be human-readable,
// either explicitly or because they are written to a terminal.
func useConsole(format string, out io.Writer) bool {
	switch strings.ToLower(format) {
	case "console", "pretty":
		return true
	case "json":
		return false
	}

	file, ok := out.(*os.File)

	return ok && (isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd()))
}
