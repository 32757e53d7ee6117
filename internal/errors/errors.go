package errors

import "errors"

var (
	// ErrParse is a general error used to wrap more specific parsing errors.
	ErrParse = errors.New("parse error")

	// ErrNilObject indicates that an object is nil although it should not.
	ErrNilObject = errors.New("object cannot be nil")

	// ErrNotPointerToStruct indicates that a provided data container is not
	// a pointer to a struct.
	ErrNotPointerToStruct = errors.New("object must be a pointer to struct or interface")

	// ErrInvalidTag indicates an invalid tag or invalid use of an existing tag.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInvalidName indicates a command, option or positional name that
	// cannot be embedded as a single word in a completion script.
	ErrInvalidName = errors.New("invalid name")

	// ErrUnexportedField indicates that an unexported struct field carries
	// tags that would otherwise make it an option, argument or command.
	ErrUnexportedField = errors.New("unexported field")

	// ErrRecursiveCommand indicates that a command type declares itself
	// (directly or not) as one of its own subcommands.
	ErrRecursiveCommand = errors.New("recursive command")

	// ErrInvalidDescriptor indicates a command descriptor that failed validation.
	ErrInvalidDescriptor = errors.New("invalid command descriptor")

	// ErrInvalidOption indicates a generation option that failed validation.
	ErrInvalidOption = errors.New("invalid generation option")
)
