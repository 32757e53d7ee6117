package model

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/autocomplete/internal/errors"
	"github.com/reeflective/autocomplete/internal/parser"
)

func newCobraTool(t *testing.T) *cobra.Command {
	t.Helper()

	root := &cobra.Command{Use: "tool", Short: "A tool"}
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	root.PersistentFlags().String("config", "", "config file")
	require.NoError(t, root.MarkPersistentFlagFilename("config", "json"))

	build := &cobra.Command{
		Use:       "build",
		Aliases:   []string{"b"},
		Short:     "Build the project",
		ValidArgs: []string{"all", "one"},
		Run:       func(*cobra.Command, []string) {},
	}
	build.Flags().StringP("output", "o", "", "output directory")
	build.Flags().String("target", "", "build target")
	require.NoError(t, build.MarkFlagDirname("output"))
	require.NoError(t, build.MarkFlagRequired("target"))

	run := &cobra.Command{Use: "run", Run: func(*cobra.Command, []string) {}}
	run.Flags().String("config", "", "run config")

	old := &cobra.Command{Use: "old", Deprecated: "use build", Run: func(*cobra.Command, []string) {}}
	secret := &cobra.Command{Use: "secret", Hidden: true, Run: func(*cobra.Command, []string) {}}

	remote := &cobra.Command{Use: "remote"}
	remote.PersistentFlags().String("url", "", "remote url")
	remote.AddCommand(&cobra.Command{Use: "add", Run: func(*cobra.Command, []string) {}})

	root.AddCommand(build, run, old, secret, remote)

	return root
}

func TestFromCobra(t *testing.T) {
	t.Parallel()

	cmd, err := FromCobra(newCobraTool(t))
	require.NoError(t, err)

	assert.Equal(t, "tool", cmd.Name)
	assert.Equal(t, "A tool", cmd.Usage)
	assert.Equal(t, []string{"--config", "--verbose"}, cmd.Options.Keys())
	assert.Equal(t, []string{"v"}, cmd.Shorts.Keys())
	assert.Equal(t, []string{"build", "remote", "run", "secret"}, cmd.Commands.Keys())

	verbose, found := cmd.Options.Get("--verbose")
	require.True(t, found)
	assert.True(t, verbose.Bool)
	assert.False(t, verbose.TakesArgument())

	config, found := cmd.Options.Get("--config")
	require.True(t, found)
	assert.Equal(t, CompleteFiles, config.Completion.Kind)
	assert.Equal(t, []string{"*.json"}, config.Completion.Patterns)

	secret, found := cmd.Commands.Get("secret")
	require.True(t, found)
	assert.True(t, secret.Hidden)
}

func TestFromCobraSubcommand(t *testing.T) {
	t.Parallel()

	cmd, err := FromCobra(newCobraTool(t))
	require.NoError(t, err)

	build, found := cmd.Lookup("b")
	require.True(t, found)

	assert.Equal(t, "build", build.Name)
	assert.Equal(t, []string{"--output", "--target", "--config", "--verbose"}, build.Options.Keys())
	assert.Equal(t, []string{"o", "v"}, build.Shorts.Keys())

	output, _ := build.Options.Get("--output")
	assert.Equal(t, CompleteDirs, output.Completion.Kind)
	assert.Equal(t, 0, output.Field.Level)

	// Persistent flags are inherited one level up.
	inherited, _ := build.Options.Get("--verbose")
	assert.Equal(t, 1, inherited.Field.Level)
	assert.Equal(t, "tool", inherited.Field.Owner)

	require.Len(t, build.Required, 1)
	assert.Equal(t, "tool build.target", build.Required[0].String())

	require.Len(t, build.Positionals, 1)
	assert.Equal(t, "args", build.Positionals[0].Name)
	assert.True(t, build.Positionals[0].Repeatable)
	assert.Equal(t, []string{"all", "one"}, build.Positionals[0].Choices)
}

func TestFromCobraLocalFlagsShadowInherited(t *testing.T) {
	t.Parallel()

	cmd, err := FromCobra(newCobraTool(t))
	require.NoError(t, err)

	run, found := cmd.Commands.Get("run")
	require.True(t, found)

	assert.Equal(t, []string{"--config", "--verbose"}, run.Options.Keys())

	config, _ := run.Options.Get("--config")
	assert.Equal(t, "run config", config.Usage)
	assert.Equal(t, CompleteNone, config.Completion.Kind)
	assert.Equal(t, 0, config.Field.Level)
}

func TestFromCobraInheritedFlagOwner(t *testing.T) {
	t.Parallel()

	cmd, err := FromCobra(newCobraTool(t))
	require.NoError(t, err)

	remote, found := cmd.Commands.Get("remote")
	require.True(t, found)

	add, found := remote.Commands.Get("add")
	require.True(t, found)

	assert.Equal(t, []string{"--config", "--url", "--verbose"}, add.Options.Keys())

	url, _ := add.Options.Get("--url")
	assert.Equal(t, "tool remote", url.Field.Owner)
	assert.Equal(t, 1, url.Field.Level)

	verbose, _ := add.Options.Get("--verbose")
	assert.Equal(t, "tool", verbose.Field.Owner)

	local, _ := remote.Options.Get("--url")
	assert.Equal(t, "tool remote", local.Field.Owner)
	assert.Equal(t, 0, local.Field.Level)
}

func TestFromCobraProgramName(t *testing.T) {
	t.Parallel()

	cmd, err := FromCobra(newCobraTool(t), parser.Program("app"))
	require.NoError(t, err)

	assert.Equal(t, "app", cmd.Name)
}

func TestFromCobraNil(t *testing.T) {
	t.Parallel()

	cmd, err := FromCobra(nil)
	require.ErrorIs(t, err, errors.ErrNilObject)
	assert.Nil(t, cmd)
}
