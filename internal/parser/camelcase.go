package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type runeClass int

const (
	classNone runeClass = iota
	classLower
	classUpper
	classDigit
	classOther
)

// CamelToFlag transforms s from CamelCase to flag-case.
func CamelToFlag(s, flagDivider string) string {
	return strings.ToLower(strings.Join(splitCamel(s), flagDivider))
}

func classOf(r rune) runeClass {
	switch {
	case unicode.IsLower(r):
		return classLower
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsDigit(r):
		return classDigit
	default:
		return classOther
	}
}

// splitCamel splits a Go identifier into its words, keeping
// acronyms together: "HTTPServerAddr" gives [HTTP Server Addr].
func splitCamel(src string) []string {
	if !utf8.ValidString(src) {
		return []string{src}
	}

	var words [][]rune

	last := classNone
	for _, r := range src {
		class := classOf(r)
		if last != classNone && (class == last || class == classDigit) {
			words[len(words)-1] = append(words[len(words)-1], r)
		} else {
			words = append(words, []rune{r})
		}
		last = class
	}

	// An upper-case run followed by a lower-case run gives
	// its last rune to the next word: "HTTPServer".
	for i := 0; i < len(words)-1; i++ {
		if unicode.IsUpper(words[i][0]) && unicode.IsLower(words[i+1][0]) {
			tail := words[i][len(words[i])-1]
			words[i+1] = append([]rune{tail}, words[i+1]...)
			words[i] = words[i][:len(words[i])-1]
		}
	}

	entries := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > 0 {
			entries = append(entries, string(w))
		}
	}

	return entries
}
