package bash

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// escaper escapes the characters still special within double quotes.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"`", "\\`",
)

// escape returns a word that can be embedded between double quotes.
func escape(word string) string {
	return escaper.Replace(word)
}

// quote returns a word as a single shell word, quoted only when needed.
func quote(word string) string {
	quoted, err := syntax.Quote(word, syntax.LangBash)
	if err == nil {
		return quoted
	}

	// Only null bytes cannot be quoted, and bash strings cannot hold them anyway.
	return "'" + strings.ReplaceAll(strings.ReplaceAll(word, "\x00", ""), "'", `'\''`) + "'"
}
