package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix prefixes all environment variables read by the CLI.
const envPrefix = "AUTOCOMPLETE"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Generation
	Program string // Program name used by default for generated scripts.

	// Logging configuration
	LogLevel    string // Set with --log-level only.
	EnvLogLevel string // Set in the environment or config file.
	LogFormat   string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (see Config.UpdateFromFlags)
//  2. Environment variables, prefixed with AUTOCOMPLETE_
//  3. .env files
//  4. Config file (the given one, or ~/.autocomplete.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-format", "auto")

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}

		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".autocomplete")

		// The default config file is optional.
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose:     v.GetBool("verbose"),
		Quiet:       v.GetBool("quiet"),
		NoColor:     v.GetBool("no-color"),
		ConfigFile:  v.ConfigFileUsed(),
		Program:     v.GetString("program"),
		EnvLogLevel: v.GetString("log-level"),
		LogFormat:   v.GetString("log-format"),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(flags *GlobalFlags) {
	if flags.Verbose {
		c.Verbose = true
	}

	if flags.Quiet {
		c.Quiet = true
	}

	if flags.NoColor {
		c.NoColor = true
	}

	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
}

// loadEnvFiles loads environment variables from .env files,
// without overriding the variables already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
