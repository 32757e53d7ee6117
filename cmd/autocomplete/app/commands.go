package app

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/reeflective/autocomplete"
)

// scriptPermissions is the file mode of generated scripts.
const scriptPermissions = 0o644

// Command returns the root command of the application.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:               "autocomplete",
		Short:             "Generate bash completion scripts from command descriptors",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.flags.ConfigFile, "config", "", "config file (default is $HOME/.autocomplete.yaml)")
	flags.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (debug logs)")
	flags.BoolVarP(&a.flags.Quiet, "quiet", "q", false, "quiet output (warnings and errors only)")
	flags.BoolVar(&a.flags.NoColor, "no-color", false, "disable colored output")
	flags.StringVar(&a.flags.LogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	_ = root.MarkPersistentFlagFilename("config", "yaml", "yml")

	root.AddCommand(
		a.generateCommand(),
		a.inspectCommand(),
		a.completionCommand(),
	)

	return root
}

func (a *App) generateCommand() *cobra.Command {
	var output, program string

	cmd := &cobra.Command{
		Use:     "generate <descriptor.yaml>",
		Aliases: []string{"gen"},
		Short:   "Generate the bash completion script of a command descriptor",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			desc, err := autocomplete.LoadDescriptor(args[0])
			if err != nil {
				return err
			}

			script, err := autocomplete.BashDescriptor(desc, a.scriptOptions(program)...)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = io.WriteString(a.stdout, script)

				return err
			}

			if err := os.WriteFile(output, []byte(script), scriptPermissions); err != nil {
				return fmt.Errorf("failed to write script: %w", err)
			}

			a.logger.Debug().Str("path", output).Int("bytes", len(script)).Msg("Completion script written")

			fmt.Fprintf(a.stderr, "%s Wrote %s (%s)\n",
				color.GreenString("✓"), output, humanize.Bytes(uint64(len(script))))

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the script to a file instead of stdout")
	cmd.Flags().StringVarP(&program, "program", "p", "", "program name (default is the descriptor name)")

	_ = cmd.MarkFlagFilename("output", "bash", "sh")

	return cmd
}

func (a *App) inspectCommand() *cobra.Command {
	var program string

	cmd := &cobra.Command{
		Use:   "inspect <descriptor.yaml>",
		Short: "Show the commands, options and arguments of a command descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			desc, err := autocomplete.LoadDescriptor(args[0])
			if err != nil {
				return err
			}

			model, err := desc.Model(a.programName(program))
			if err != nil {
				return err
			}

			return writeModel(a.stdout, model)
		},
	}

	cmd.Flags().StringVarP(&program, "program", "p", "", "program name (default is the descriptor name)")

	return cmd
}

func (a *App) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion",
		Short: "Generate the bash completion script of this program",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			script, err := autocomplete.BashCobra(cmd.Root(), autocomplete.WithLogger(a.logger))
			if err != nil {
				return err
			}

			_, err = io.WriteString(a.stdout, script)

			return err
		},
	}
}

// programName returns the program name given on the command
// line, or the one of the configuration, if any.
func (a *App) programName(flag string) string {
	if flag != "" {
		return flag
	}

	return a.config.Program
}

func (a *App) scriptOptions(program string) []autocomplete.Option {
	opts := []autocomplete.Option{autocomplete.WithLogger(a.logger)}

	if name := a.programName(program); name != "" {
		opts = append(opts, autocomplete.WithProgramName(name))
	}

	return opts
}
