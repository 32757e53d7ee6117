package parser

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/reeflective/autocomplete/internal/errors"
)

// Kind is the role a declared struct field plays in a command.
type Kind int

const (
	// KindNone fields are not bound to anything on the command line.
	KindNone Kind = iota
	// KindEmbedded fields are anonymous structs: their own declared
	// fields form the next level of the command's type hierarchy.
	KindEmbedded
	// KindOption fields are bound to a named option.
	KindOption
	// KindOptions fields are structs grouping options.
	KindOptions
	// KindPositional fields are bound to a positional argument.
	KindPositional
	// KindPositionals fields are structs whose fields are all positional arguments.
	KindPositionals
	// KindCommand fields are subcommands.
	KindCommand
	// KindCommands fields are structs grouping subcommands.
	KindCommands
)

var disallowedTags = []string{
	"flag", "short", "long", "command", "cmd",
	"group", "options", "arg", "positional-args",
}

// Classify determines the role of a struct field from its type and tags.
// Unexported fields are ignored, unless they carry binding tags, which is
// an error. Anonymous fields are the exception: promoted fields of an
// unexported embedded struct are still reachable.
func Classify(fld reflect.StructField, tag *Tag, untagged bool, opts *Opts) (Kind, error) {
	if !fld.IsExported() && (!fld.Anonymous || !isStruct(fld.Type)) {
		return KindNone, checkForDisallowedTags(fld, tag)
	}

	if isIgnored(tag, opts) {
		return KindNone, nil
	}

	if pargs, _ := tag.Get("positional-args"); pargs != "" {
		return KindPositionals, nil
	}
	if _, isArg := tag.Get("arg"); isArg {
		return KindPositional, nil
	}

	if name := commandName(tag); name != "" {
		if !isStruct(fld.Type) {
			return KindNone, fmt.Errorf("%w: command %s must be a struct or a pointer to one",
				errors.ErrInvalidTag, name)
		}

		return KindCommand, nil
	}

	if _, isSet := tag.Get("commands"); isSet && isStruct(fld.Type) {
		return KindCommands, nil
	}

	_, isGroup := tag.Get("group")
	_, isOptions := tag.Get("options")

	if (isGroup || isOptions) && isStruct(fld.Type) {
		return KindOptions, nil
	}

	if fld.Anonymous && isStruct(fld.Type) && !isValueType(fld.Type) {
		return KindEmbedded, nil
	}

	return classifyOption(fld, tag, untagged, opts), nil
}

func classifyOption(fld reflect.StructField, tag *Tag, untagged bool, opts *Opts) Kind {
	switch fld.Type.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Interface:
		return KindNone
	}

	named := hasExplicitName(tag, opts)

	// Untagged struct fields, when all fields are parsed, are groups.
	if isStruct(fld.Type) && !isValueType(fld.Type) && !named {
		if untagged && opts.ParseAll {
			return KindOptions
		}
	}

	if untagged && !opts.ParseAll {
		return KindNone
	}

	return KindOption
}

// ParseFlag builds an option descriptor from a struct field.
func ParseFlag(fld reflect.StructField, tag *Tag, opts *Opts) (*Flag, error) {
	long, short := flagNames(fld, tag, opts)

	if short != "" && utf8.RuneCountInString(short) != 1 {
		return nil, fmt.Errorf("%w: short name %q of field %s must be a single character",
			errors.ErrInvalidTag, short, fld.Name)
	}

	flag := &Flag{
		Name:       long,
		Short:      short,
		Usage:      description(tag),
		Required:   isRequired(tag, opts),
		Hidden:     tag.IsSet("hidden", opts.FlagTag),
		Bool:       isBool(fld.Type),
		Choices:    flagChoices(tag),
		Completion: ParseCompletion(tag),
	}

	return flag, nil
}

// ParsePositional builds a positional argument descriptor from a struct field.
// Fields of a struct marked required are all required.
func ParsePositional(fld reflect.StructField, tag *Tag, requireAll bool, opts *Opts) *Positional {
	name, _ := tag.Get("arg")
	if name == "" {
		name, _ = tag.Get("positional-arg-name")
	}
	if name == "" {
		name = fld.Name
	}

	kind := fld.Type.Kind()

	return &Positional{
		Name:       name,
		Usage:      description(tag),
		Repeatable: kind == reflect.Slice || kind == reflect.Map,
		Required:   requireAll || isRequired(tag, opts),
		Choices:    flagChoices(tag),
		Completion: ParseCompletion(tag),
	}
}

// ParseCommand reads the name, aliases and description of a subcommand field.
func ParseCommand(tag *Tag) *Command {
	cmd := &Command{
		Name:  commandName(tag),
		Usage: description(tag),
	}

	for _, alias := range append(tag.GetMany("alias"), tag.GetMany("aliases")...) {
		for _, name := range strings.Split(alias, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cmd.Aliases = append(cmd.Aliases, name)
			}
		}
	}

	_, cmd.Hidden = tag.Get("hidden")

	return cmd
}

// GroupOpts returns the options to use when scanning an option group:
// groups can namespace the long names of all their options.
func GroupOpts(fld reflect.StructField, tag *Tag, opts *Opts) *Opts {
	gopts := opts.Copy()

	delim, ok := tag.Get("namespace-delimiter")
	if !ok || delim == "" {
		delim = opts.FlagDivider
	}

	if namespace, ok := tag.Get("namespace"); ok && namespace != "" {
		gopts.Prefix = opts.Prefix + namespace + delim
	} else if prefix, ok := tag.Get("prefix"); ok && prefix != "" {
		gopts.Prefix = opts.Prefix + prefix + delim
	} else if !fld.Anonymous && opts.ParseAll {
		if _, tagged := tag.Get("group"); !tagged {
			gopts.Prefix = opts.Prefix + CamelToFlag(fld.Name, opts.FlagDivider) + opts.FlagDivider
		}
	}

	return gopts
}

// IsRequiredGroup returns true if a struct of positionals
// is marked as having all its fields required.
func IsRequiredGroup(tag *Tag) bool {
	req, isSet := tag.Get("required")

	return isSet && !IsStringFalsy(req)
}

// Indirect returns the struct type behind a struct or pointer type.
func Indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}

func commandName(tag *Tag) string {
	name, _ := tag.Get("command")
	if name == "" {
		name, _ = tag.Get("cmd")
	}

	return name
}

func isIgnored(tag *Tag, opts *Opts) bool {
	if val, isSet := tag.Get("kong"); isSet && val == "-" {
		return true
	}
	if val, isSet := tag.Get(opts.FlagTag); isSet && val == "-" {
		return true
	}
	_, noFlag := tag.Get("no-flag")

	return noFlag
}

func hasExplicitName(tag *Tag, opts *Opts) bool {
	for _, key := range []string{"long", "short", "name", opts.FlagTag} {
		if _, ok := tag.Get(key); ok {
			return true
		}
	}

	return false
}

func flagNames(fld reflect.StructField, tag *Tag, opts *Opts) (string, string) {
	long, short, ignorePrefix := parseSFlag(tag, opts)

	if name, isSet := tag.Get("name"); isSet {
		long = name
	}
	if l, ok := tag.Get("long"); ok {
		long = l
	}
	if s, ok := tag.Get("short"); ok {
		short = s
	}

	if long == "" {
		long = CamelToFlag(fld.Name, opts.FlagDivider)
	}

	if !ignorePrefix {
		long = opts.Prefix + long
	}

	return long, short
}

// parseSFlag handles the sflags-style `flag:"~name n,attr"` tags,
// where the tilde prevents group prefixes from being applied.
func parseSFlag(tag *Tag, opts *Opts) (long, short string, ignorePrefix bool) {
	names, isSet := tag.Get(opts.FlagTag)
	if !isSet {
		return
	}

	if strings.HasPrefix(names, "~") {
		ignorePrefix = true
		names = names[1:]
	}

	values := strings.Split(names, ",")
	parts := strings.Fields(values[0])

	switch len(parts) {
	case 0:
	case 1:
		long = parts[0]
	default:
		long, short = parts[0], parts[1]
	}

	return
}

func isRequired(tag *Tag, opts *Opts) bool {
	if val, ok := tag.Get("required"); ok {
		return !IsStringFalsy(val)
	}

	return tag.IsSet("required", opts.FlagTag)
}

func description(tag *Tag) string {
	for _, key := range []string{"description", "desc", "help"} {
		if usage, isSet := tag.Get(key); isSet {
			return usage
		}
	}

	return ""
}

func flagChoices(tag *Tag) []string {
	var choices []string

	for _, choice := range tag.GetMany("choice") {
		choices = append(choices, strings.Fields(choice)...)
	}

	// Kong alias
	for _, enum := range tag.GetMany("enum") {
		for _, value := range strings.Split(enum, ",") {
			if value = strings.TrimSpace(value); value != "" {
				choices = append(choices, value)
			}
		}
	}

	return choices
}

func checkForDisallowedTags(field reflect.StructField, tag *Tag) error {
	var found []string

	for _, name := range disallowedTags {
		if _, ok := tag.Get(name); ok {
			found = append(found, name)
		}
	}

	if len(found) > 0 {
		return fmt.Errorf("%w: field '%s' is not exported but has tags: %s",
			errors.ErrUnexportedField, field.Name, strings.Join(found, ", "))
	}

	return nil
}

func isStruct(t reflect.Type) bool {
	return Indirect(t).Kind() == reflect.Struct
}

func isBool(t reflect.Type) bool {
	return Indirect(t).Kind() == reflect.Bool
}

var (
	pflagValue      = reflect.TypeOf((*pflag.Value)(nil)).Elem()
	textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// isValueType returns true if a struct type is parsed from a single
// command-line word, rather than being a group of options.
func isValueType(t reflect.Type) bool {
	base := Indirect(t)
	ptr := reflect.PointerTo(base)

	return base.Implements(pflagValue) || ptr.Implements(pflagValue) ||
		ptr.Implements(textUnmarshaler)
}
