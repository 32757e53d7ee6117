package autocomplete

import (
	"github.com/reeflective/autocomplete/internal/errors"
)

var (
	// ErrParse wraps all errors encountered while collecting a command model.
	ErrParse = errors.ErrParse

	// ErrNilObject indicates that the command to generate a script for is nil.
	ErrNilObject = errors.ErrNilObject

	// ErrNotPointerToStruct indicates that a provided data container is not
	// a pointer to a struct. Only pointers to structs are valid data containers
	// for commands.
	ErrNotPointerToStruct = errors.ErrNotPointerToStruct

	// ErrInvalidTag indicates an invalid tag or invalid use of an existing tag.
	ErrInvalidTag = errors.ErrInvalidTag

	// ErrInvalidName indicates a name that cannot be used as a shell word.
	ErrInvalidName = errors.ErrInvalidName

	// ErrUnexportedField indicates an unexported field tagged as an option,
	// an argument or a command.
	ErrUnexportedField = errors.ErrUnexportedField

	// ErrRecursiveCommand indicates a command type being its own subcommand.
	ErrRecursiveCommand = errors.ErrRecursiveCommand

	// ErrInvalidDescriptor indicates an invalid command descriptor.
	ErrInvalidDescriptor = errors.ErrInvalidDescriptor

	// ErrInvalidOption indicates an invalid generation option, like a program
	// name that cannot be used in a bash function name.
	ErrInvalidOption = errors.ErrInvalidOption
)
