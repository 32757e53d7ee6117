package validation

import (
	stderrors "errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramName(t *testing.T) {
	t.Parallel()

	valid := []string{"tool", "my-tool", "tool.sh", "_tool", "git-lfs", "a+b", "ns:tool", "7z"}
	for _, name := range valid {
		assert.NoError(t, ProgramName(name), name)
	}

	tests := []struct {
		name    string
		program string
		message string
	}{
		{name: "Empty", program: "", message: "program is required"},
		{name: "Spaces", program: "my tool", message: "not a valid program name"},
		{name: "Leading dash", program: "-tool", message: "not a valid program name"},
		{name: "Path", program: "bin/tool", message: "not a valid program name"},
		{name: "Quote", program: `to"ol`, message: "not a valid program name"},
		{name: "Dollar", program: "$tool", message: "not a valid program name"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := ProgramName(test.program)
			require.ErrorContains(t, err, test.message)
		})
	}
}

type document struct {
	Name    string   `yaml:"name"    validate:"required,word"`
	Aliases []string `yaml:"aliases" validate:"dive,word"`
	Short   string   `yaml:"short"   validate:"omitempty,len=1"`
	Count   int      `validate:"min=1"`
}

func TestStruct(t *testing.T) {
	t.Parallel()

	require.NoError(t, Struct(&document{Name: "tool", Aliases: []string{"t"}, Short: "t", Count: 1}))

	err := Struct(&document{Name: "my\ttool", Aliases: []string{"ok", ""}, Short: "tt"})
	require.Error(t, err)

	assert.ErrorContains(t, err, "document.name: `my\ttool` is not a valid shell word")
	assert.ErrorContains(t, err, "document.aliases[1]: `` is not a valid shell word")
	assert.ErrorContains(t, err, "document.short: `tt` must be a single character")
	assert.ErrorContains(t, err, "document.Count: `0` is not a valid min")

	var fieldErr validator.FieldError
	require.True(t, stderrors.As(err, &fieldErr))
	assert.Equal(t, "word", fieldErr.Tag())
}

func TestStructRequired(t *testing.T) {
	t.Parallel()

	err := Struct(&document{Count: 1})
	require.ErrorContains(t, err, "document.name is required")
}

func TestStructNotAStruct(t *testing.T) {
	t.Parallel()

	err := Struct("tool")

	var invalid *validator.InvalidValidationError
	require.ErrorAs(t, err, &invalid)
}
