package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deployDescriptor = `name: deploy
base:
  options:
    - long: --verbose
      short: v
      bool: true
options:
  - long: --target
    short: t
    required: true
    choices: [staging, production]
  - long: --manifest
    complete: FilterExt,yaml,yml
positionals:
  - name: services
    repeatable: true
commands:
  - name: rollback
    aliases: [rb]
    options:
      - long: --revision
`

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	err := New(WithOutput(&stdout, &stderr)).Execute(context.Background(), args)

	return stdout.String(), stderr.String(), err
}

func TestGenerateToStdout(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "generate", writeDescriptor(t, deployDescriptor))
	require.NoError(t, err)

	assert.Contains(t, stdout, "shopt -s progcomp\n_deploy() {\n")
	assert.Contains(t, stdout, "    GLOBAL_COMMANDS=\"\\\n        rollback\"\n")
	assert.Contains(t, stdout, "    GLOBAL_OPTIONS=\"\\\n        --target\\\n        --manifest\\\n        --verbose\"\n")
	assert.Contains(t, stdout, "complete -F _deploy deploy\n")
}

func TestGenerateProgramName(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "gen", "--program", "ship", writeDescriptor(t, deployDescriptor))
	require.NoError(t, err)

	assert.Contains(t, stdout, "_ship() {\n")
	assert.NotContains(t, stdout, "_deploy")

	_, _, err = execute(t, "generate", "-p", "bad name", writeDescriptor(t, deployDescriptor))
	require.Error(t, err)
}

func TestGenerateToFile(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "deploy.bash")

	stdout, stderr, err := execute(t, "generate", "-o", output, writeDescriptor(t, deployDescriptor))
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Wrote "+output)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(scriptPermissions), info.Mode().Perm())

	script, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(script), "_deploy() {\n")
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "Missing descriptor", args: []string{"generate", filepath.Join(t.TempDir(), "missing.yaml")}},
		{name: "No descriptor", args: []string{"generate"}},
		{name: "Unknown field", args: []string{"generate", writeDescriptor(t, "name: x\nunknown: true\n")}},
		{name: "Invalid short", args: []string{"generate", writeDescriptor(t, "name: x\noptions:\n  - long: --ab\n    short: ab\n")}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, test.args...)
			require.Error(t, err)
			assert.Empty(t, stdout)
		})
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "inspect", writeDescriptor(t, deployDescriptor))
	require.NoError(t, err)

	for _, expected := range []string{
		"deploy rollback", "--revision", "aliases: rb",
		"--target", "required; choices: staging production",
		"files: *.yaml *.yml", "services", "repeatable", "no argument",
	} {
		assert.Contains(t, stdout, expected)
	}
}

func TestCompletion(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "completion")
	require.NoError(t, err)

	assert.Contains(t, stdout, "_autocomplete() {\n")
	assert.Contains(t, stdout, "        generate\\\n")
	assert.Contains(t, stdout, "        inspect\"\n")
	assert.Contains(t, stdout, "GLOBAL:gen) cmd=CMD_GENERATE")
	assert.Contains(t, stdout, `$(compgen -f -X '!*.yaml' -- "${cur}")`)
	assert.Contains(t, stdout, "complete -F _autocomplete autocomplete\n")
}
