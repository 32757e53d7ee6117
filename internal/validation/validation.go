// Package validation checks command descriptors and generation options
// with go-playground/validator, using a few rules specific to shell words.
package validation

import (
	stderrors "errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var programName = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.:+-]*$`)

// validate is safe for concurrent use, and caches struct metadata.
var validate = New()

// New returns a validator knowing the following rules, in addition to the builtin ones:
//
//	word      a non-empty string usable as a single shell word (no spaces, no control characters).
//	progname  a program name usable as the suffix of a bash function name.
//
// Field names in errors are the yaml names of the fields, when they have one.
func New() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	// Registration only fails on empty tags or nil functions.
	_ = v.RegisterValidation("word", isWord)
	_ = v.RegisterValidation("progname", isProgramName)

	return v
}

// Struct validates a struct and its nested structs and slices (with `dive`).
func Struct(data any) error {
	return convert(validate.Struct(data), "")
}

// ProgramName validates the name of a program a completion script is generated for.
func ProgramName(name string) error {
	return convert(validate.Var(name, "required,progname"), "program")
}

func isWord(fl validator.FieldLevel) bool {
	word := fl.Field().String()
	if word == "" {
		return false
	}

	for _, r := range word {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}

	return true
}

func isProgramName(fl validator.FieldLevel) bool {
	return programName.MatchString(fl.Field().String())
}

// convert turns validator errors into errors with CLI-friendly messages.
func convert(err error, name string) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))

	for _, fieldErr := range fieldErrs {
		fieldName := fieldErr.Namespace()
		if name != "" {
			fieldName = name
		}

		errs = append(errs, &invalidVarError{
			fieldName:    fieldName,
			fieldValue:   fieldErr.Value(),
			tag:          fieldErr.Tag(),
			validatorErr: fieldErr,
		})
	}

	return stderrors.Join(errs...)
}
