package parser

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/reeflective/autocomplete/internal/errors"
)

// Tag holds all the key/value pairs of a struct field tag.
// A key may appear several times (e.g. `choice:"a" choice:"b"`).
type Tag map[string][]string

// GetFieldTag returns the struct tags for a given field,
// and true if the field has no tags at all.
func GetFieldTag(field reflect.StructField) (*Tag, bool, error) {
	tag := Tag{}
	if err := tag.parse(string(field.Tag)); err != nil {
		return nil, true, fmt.Errorf("%w: field %s", err, field.Name)
	}

	return &tag, len(tag) == 0, nil
}

// Get returns the first value of a tag.
func (t *Tag) Get(key string) (string, bool) {
	if val, ok := (*t)[key]; ok {
		return val[0], true
	}

	return "", false
}

// GetMany returns all the values of a tag.
func (t *Tag) GetMany(key string) []string {
	return (*t)[key]
}

// IsSet returns true if the key is present as a standalone
// tag, or as an attribute of an sflags-style flag tag,
// e.g. `flag:"name n,hidden,required"`.
func (t *Tag) IsSet(key, flagTag string) bool {
	if _, ok := t.Get(key); ok {
		return true
	}

	flag, ok := t.Get(flagTag)
	if !ok {
		return false
	}

	parts := strings.Split(flag, ",")
	for _, attr := range parts[1:] {
		if strings.TrimSpace(attr) == key {
			return true
		}
	}

	return false
}

func (t *Tag) parse(tag string) error {
	for tag != "" {
		// Skip leading space.
		tag = strings.TrimLeft(tag, " ")
		if tag == "" {
			break
		}

		// Scan to colon. A space, a quote or a control character is a syntax error.
		pos := 0
		for pos < len(tag) && tag[pos] > ' ' && tag[pos] != ':' && tag[pos] != '"' && tag[pos] != 0x7f {
			pos++
		}
		if pos == 0 || pos+1 >= len(tag) || tag[pos] != ':' || tag[pos+1] != '"' {
			return fmt.Errorf("%w: invalid syntax", errors.ErrInvalidTag)
		}
		name := tag[:pos]
		tag = tag[pos+1:]

		// Scan quoted string to find value.
		pos = 1
		for pos < len(tag) && tag[pos] != '"' {
			if tag[pos] == '\\' {
				pos++
			}
			pos++
		}
		if pos >= len(tag) {
			return fmt.Errorf("%w: unterminated value for %q", errors.ErrInvalidTag, name)
		}
		qvalue := tag[:pos+1]
		tag = tag[pos+1:]

		value, ok := reflect.StructTag(name + ":" + qvalue).Lookup(name)
		if !ok {
			return fmt.Errorf("%w: tag value not found", errors.ErrInvalidTag)
		}
		(*t)[name] = append((*t)[name], value)
	}

	return nil
}

// IsStringFalsy returns true if a string is considered "falsy" (empty, "false", "no", or "0").
func IsStringFalsy(s string) bool {
	return s == "" || s == "false" || s == "no" || s == "0"
}
