package parser

import (
	"strings"
)

const (
	completeTagName     = "complete"
	completeTagMaxParts = 2
)

// CompletionKind is the type of static completion
// a completion script can provide for a word.
type CompletionKind int

const (
	// CompleteNone means no completion other than choices, if any.
	CompleteNone CompletionKind = iota
	// CompleteFiles completes file paths, optionally filtered by patterns.
	CompleteFiles
	// CompleteDirs completes directory paths.
	CompleteDirs
)

// Completion is a static completion directive, as
// specified with `complete:"Directive[,values]"` tags.
type Completion struct {
	Kind     CompletionKind
	Patterns []string // Glob patterns files must match.
}

// ParseCompletion reads the completion directives of a field.
// Accepted directives (case-insensitive) are:
//
//	Files           all files
//	Files,*.go      files matching glob patterns
//	FilterExt,json  files with the given extensions
//	Dirs            directories (also FilterDirs)
//	NoFiles         no completion (also Default, NoSpace)
//
// When several file directives are used, their patterns are merged.
func ParseCompletion(tag *Tag) Completion {
	var comp Completion

	for _, tagVal := range tag.GetMany(completeTagName) {
		tagVal = strings.TrimPrefix(strings.TrimSpace(tagVal), "+")
		if tagVal == "" {
			continue
		}

		items := strings.SplitN(tagVal, ",", completeTagMaxParts)
		name, value := strings.ToLower(items[0]), ""

		if len(items) > 1 {
			value = items[1]
		}

		switch name {
		case "files":
			comp.Kind = CompleteFiles
			comp.Patterns = append(comp.Patterns, splitValues(value, "")...)
		case "filterext":
			comp.Kind = CompleteFiles
			comp.Patterns = append(comp.Patterns, splitValues(value, "*.")...)
		case "dirs", "filterdirs":
			if comp.Kind == CompleteNone {
				comp.Kind = CompleteDirs
			}
		}
	}

	return comp
}

func splitValues(value, prefix string) []string {
	var values []string

	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if prefix != "" {
			item = strings.TrimPrefix(item, ".")
		}
		if item != "" {
			values = append(values, prefix+item)
		}
	}

	return values
}
