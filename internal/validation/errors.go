package validation

import (
	"fmt"
)

// invalidVarError wraps an error raised by validator on a struct field,
// replacing the validator message with one more adapted to CLI.
type invalidVarError struct {
	fieldName    string
	fieldValue   any
	tag          string
	validatorErr error
}

// Error implements the error interface.
func (err *invalidVarError) Error() string {
	switch err.tag {
	case "required":
		return fmt.Sprintf("%s is required", err.fieldName)
	case "word":
		return fmt.Sprintf("%s: `%v` is not a valid shell word", err.fieldName, err.fieldValue)
	case "progname":
		return fmt.Sprintf("%s: `%v` is not a valid program name", err.fieldName, err.fieldValue)
	case "len":
		return fmt.Sprintf("%s: `%v` must be a single character", err.fieldName, err.fieldValue)
	default:
		return fmt.Sprintf("%s: `%v` is not a valid %s", err.fieldName, err.fieldValue, err.tag)
	}
}

// Unwrap returns the underlying validator error.
func (err *invalidVarError) Unwrap() error {
	return err.validatorErr
}
