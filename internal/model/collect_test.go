package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/autocomplete/internal/errors"
	"github.com/reeflective/autocomplete/internal/parser"
)

//
// Command structs -------------------------------------------------------------------- //
//

// base is embedded by other commands, and is thus their ancestor type.
type base struct {
	Verbose bool   `long:"verbose" short:"v" description:"base verbose"`
	Config  string `long:"config"  short:"c" required:"true"`
	Input   string `arg:"input"`
}

type derived struct {
	base

	Verbose bool   `long:"verbose" description:"derived verbose"`
	Output  string `long:"output"  short:"o" required:"yes"`
	Target  string `arg:"target"`
}

// grandChild has a three-level hierarchy.
type grandChild struct {
	derived

	Verbose bool `flag:"verbose V" desc:"grand child verbose"`
}

type redeclared struct {
	base

	Config string `long:"config" required:"1"`
}

type empty struct{}

type node struct {
	*node

	Name string `long:"name"`
}

type loop struct {
	Sub *loop `command:"sub"`
}

type loopGroup struct {
	Group *loopGroup `group:"self"`
}

type app struct {
	Global struct {
		Debug bool `long:"debug"`
	} `group:"global options"`

	Net struct {
		Port int `long:"port"`
	} `group:"net" namespace:"net"`

	Commands struct {
		Start startCmd `command:"start" alias:"s" description:"start services"`
		Stop  *stopCmd `command:"stop" hidden:"true"`
	} `commands:"core"`

	Status struct{} `command:"status"`
}

type startCmd struct {
	Force bool     `short:"f"`
	Files []string `arg:"files" complete:"Files"`
}

type stopCmd struct {
	Args struct {
		Name string
		Rest []string
	} `positional-args:"yes" required:"yes"`
}

type plain struct {
	Name   string
	Count  int
	Nested struct {
		Level string
	}
}

//
// Tests ------------------------------------------------------------------------------ //
//

func TestCollectMostDerivedWins(t *testing.T) {
	t.Parallel()

	cmd, err := Collect(&derived{}, parser.Program("tool"))
	require.NoError(t, err)

	assert.Equal(t, "tool", cmd.Name)
	assert.Equal(t, []string{"--verbose", "--output", "--config"}, cmd.Options.Keys())
	assert.Equal(t, []string{"o", "v", "c"}, cmd.Shorts.Keys())

	verbose, found := cmd.Options.Get("--verbose")
	require.True(t, found)
	assert.Equal(t, "derived verbose", verbose.Usage)
	assert.Equal(t, "derived", verbose.Field.Owner)
	assert.Equal(t, 0, verbose.Field.Level)
	assert.Equal(t, []int{1}, verbose.Field.Index)

	// The short alias is only declared by the ancestor.
	short, found := cmd.Shorts.Get("v")
	require.True(t, found)
	assert.Equal(t, "base verbose", short.Usage)
	assert.Equal(t, "base", short.Field.Owner)
	assert.Equal(t, 1, short.Field.Level)

	config, found := cmd.Options.Get("--config")
	require.True(t, found)
	assert.Equal(t, []int{0, 1}, config.Field.Index)
	assert.Equal(t, "c", config.Short)
}

func TestCollectHierarchyOrder(t *testing.T) {
	t.Parallel()

	cmd, err := Collect(&grandChild{})
	require.NoError(t, err)

	assert.Equal(t, []string{"--verbose", "--output", "--config"}, cmd.Options.Keys())
	assert.Equal(t, []string{"V", "o", "v", "c"}, cmd.Shorts.Keys())

	verbose, _ := cmd.Options.Get("--verbose")
	assert.Equal(t, "grand child verbose", verbose.Usage)

	assert.Equal(t, []string{"target", "input"}, positionalNames(cmd))
	assert.Equal(t, 0, cmd.Positionals[0].Index)
	assert.Equal(t, 1, cmd.Positionals[1].Index)
	assert.Equal(t, 1, cmd.Positionals[0].Field.Level)
	assert.Equal(t, 2, cmd.Positionals[1].Field.Level)

	assert.Equal(t, []string{"derived.Output", "base.Config"}, fieldNames(cmd.Required))
}

func TestCollectRequiredDuplicates(t *testing.T) {
	t.Parallel()

	cmd, err := Collect(&redeclared{})
	require.NoError(t, err)

	assert.Equal(t, []string{"--config", "--verbose"}, cmd.Options.Keys())
	assert.Equal(t, []string{"redeclared.Config", "base.Config"}, fieldNames(cmd.Required))
}

func TestCollectEmpty(t *testing.T) {
	t.Parallel()

	cmd, err := Collect(&empty{})
	require.NoError(t, err)

	assert.Zero(t, cmd.Options.Len())
	assert.Zero(t, cmd.Shorts.Len())
	assert.Zero(t, cmd.Commands.Len())
	assert.Empty(t, cmd.Positionals)
	assert.Empty(t, cmd.Required)
}

func TestCollectSelfEmbedding(t *testing.T) {
	t.Parallel()

	cmd, err := Collect(&node{})
	require.NoError(t, err)

	assert.Equal(t, []string{"--name"}, cmd.Options.Keys())
}

func TestCollectCommands(t *testing.T) {
	t.Parallel()

	cmd, err := Collect(&app{}, parser.Prefix("app-"))
	require.NoError(t, err)

	assert.Equal(t, []string{"--app-debug", "--app-net-port"}, cmd.Options.Keys())
	assert.Equal(t, []string{"start", "stop", "status"}, cmd.Commands.Keys())

	start, found := cmd.Lookup("s")
	require.True(t, found)
	assert.Equal(t, "start", start.Name)
	assert.Equal(t, []string{"s"}, start.Aliases)
	assert.Equal(t, "start services", start.Usage)
	assert.Equal(t, []string{"--app-force"}, start.Options.Keys())
	assert.Equal(t, []string{"f"}, start.Shorts.Keys())

	require.Len(t, start.Positionals, 1)
	assert.True(t, start.Positionals[0].Repeatable)
	assert.Equal(t, CompleteFiles, start.Positionals[0].Completion.Kind)

	stop, found := cmd.Commands.Get("stop")
	require.True(t, found)
	assert.True(t, stop.Hidden)
	assert.Equal(t, []string{"Name", "Rest"}, positionalNames(stop))
	assert.Len(t, stop.Required, 2)

	assert.Equal(t, []*Command{start, cmd.Commands.Values()[2]}, cmd.VisibleCommands())

	var paths []string

	cmd.Walk(func(path []string, _ *Command) {
		paths = append(paths, strings.Join(path, " "))
	})

	assert.Equal(t, []string{"*", "* start", "* stop", "* status"}, replaceRoot(paths, cmd.Name))
}

func TestCollectParseAll(t *testing.T) {
	t.Parallel()

	cmd, err := Collect(&plain{})
	require.NoError(t, err)
	assert.Zero(t, cmd.Options.Len())

	cmd, err = Collect(&plain{}, parser.ParseAll())
	require.NoError(t, err)
	assert.Equal(t, []string{"--name", "--count", "--nested-level"}, cmd.Options.Keys())
}

func TestCollectLogsShadowedOptions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	_, err := Collect(&derived{}, parser.Logger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"option":"--verbose"`)
	assert.Contains(t, buf.String(), "option already declared by a more derived type")
	assert.Contains(t, buf.String(), `"field":"base.Verbose"`)
}

func TestCollectIsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := Collect(&app{})
	require.NoError(t, err)

	second, err := Collect(&app{})
	require.NoError(t, err)

	assert.Equal(t, first.Options.Keys(), second.Options.Keys())
	assert.Equal(t, first.Commands.Keys(), second.Commands.Keys())
}

func TestCollectErrors(t *testing.T) {
	t.Parallel()

	name := "tool"

	tests := []struct {
		name string
		data any
		err  error
	}{
		{name: "Nil", data: nil, err: errors.ErrNilObject},
		{name: "Typed nil", data: (*derived)(nil), err: errors.ErrNilObject},
		{name: "Struct value", data: derived{}, err: errors.ErrNotPointerToStruct},
		{name: "Pointer to string", data: &name, err: errors.ErrNotPointerToStruct},
		{name: "Recursive command", data: &loop{}, err: errors.ErrRecursiveCommand},
		{name: "Recursive group", data: &loopGroup{}, err: errors.ErrInvalidTag},
		{name: "Short name too long", data: &struct {
			V bool `short:"vv"`
		}{}, err: errors.ErrInvalidTag},
		{name: "Name with spaces", data: &struct {
			V bool `long:"has space"`
		}{}, err: errors.ErrInvalidName},
		{name: "Unexported option", data: &struct {
			v bool `long:"v"`
		}{}, err: errors.ErrUnexportedField},
		{name: "Invalid tag", data: &struct {
			V bool `long:"v`
		}{}, err: errors.ErrInvalidTag},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			cmd, err := Collect(test.data)
			require.ErrorIs(t, err, test.err)
			assert.Nil(t, cmd)
		})
	}
}

//
// Helpers ---------------------------------------------------------------------------- //
//

func positionalNames(cmd *Command) []string {
	names := make([]string, 0, len(cmd.Positionals))
	for _, pos := range cmd.Positionals {
		names = append(names, pos.Name)
	}

	return names
}

func fieldNames(fields []*Field) []string {
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.String())
	}

	return names
}

func replaceRoot(paths []string, root string) []string {
	replaced := make([]string, len(paths))
	for i, path := range paths {
		replaced[i] = "*" + path[len(root):]
	}

	return replaced
}
