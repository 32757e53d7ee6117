// Package bash renders static bash completion scripts from command models.
//
// The script declares, for the root command and each of its subcommands,
// the list of subcommand names and the list of option names, then defines
// a completion function walking the words typed so far to find the active
// command, before completing option arguments, positionals, options or
// subcommands with compgen.
package bash

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/reeflective/autocomplete/internal/model"
)

// rootID is the table prefix of the root command.
const rootID = "GLOBAL"

// table is the set of declarations and dispatch data for one command.
type table struct {
	id       string
	path     []string
	cmd      *model.Command
	children []*table
}

// script accumulates the tables of a command tree while rendering it.
type script struct {
	program string
	tables  []*table
	ids     map[string]bool
}

// Render returns the bash completion script of a command for a program name.
// The output only depends on its inputs: rendering the same model twice
// produces byte-identical scripts.
func Render(cmd *model.Command, program string) string {
	if cmd == nil {
		cmd = model.NewCommand(program)
	}

	gen := newScript(cmd, program)

	var buf strings.Builder

	buf.WriteString(fmt.Sprintf(header, program))

	for _, tbl := range gen.tables {
		buf.WriteString(declaration(tbl.id+"_COMMANDS", commandNames(tbl.cmd)))
		buf.WriteString(declaration(tbl.id+"_OPTIONS", optionNames(tbl.cmd)))
	}

	gen.writeDispatch(&buf)

	fmt.Fprintf(&buf, "}\n\ncomplete -F %s %s\n", quote("_"+program), quote(program))

	return buf.String()
}

// Write renders the completion script of a command to the writer.
func Write(w io.Writer, cmd *model.Command, program string) error {
	_, err := io.WriteString(w, Render(cmd, program))

	return err
}

func newScript(root *model.Command, program string) *script {
	gen := &script{
		program: program,
		ids:     make(map[string]bool),
	}

	byPath := make(map[string]*table)

	root.Walk(func(path []string, cmd *model.Command) {
		tbl := &table{path: path, cmd: cmd}

		if len(path) == 1 {
			tbl.id = rootID
		} else {
			tbl.id = gen.identifier(path[1:])

			parent := byPath[pathKey(path[:len(path)-1])]
			parent.children = append(parent.children, tbl)
		}

		byPath[pathKey(path)] = tbl
		gen.tables = append(gen.tables, tbl)
	})

	return gen
}

func pathKey(path []string) string {
	return strings.Join(path, "\x00")
}

// identifier returns a unique variable prefix for a subcommand path.
func (s *script) identifier(path []string) string {
	base := "CMD_" + sanitize(strings.Join(path, "_"))
	id := base

	for i := 2; s.ids[id]; i++ {
		id = fmt.Sprintf("%s_%d", base, i)
	}

	s.ids[id] = true

	return id
}

// declaration renders a variable holding a list of words, one per line.
// The last line has its trailing backslash replaced by the closing quote.
func declaration(name string, words []string) string {
	if len(words) == 0 {
		return fmt.Sprintf("    %s=\"\"\n", name)
	}

	var decl strings.Builder

	fmt.Fprintf(&decl, "    %s=\"\\\n", name)

	for i, word := range words {
		decl.WriteString("        ")
		decl.WriteString(escape(word))

		if i == len(words)-1 {
			decl.WriteString("\"\n")
		} else {
			decl.WriteString("\\\n")
		}
	}

	return decl.String()
}

func commandNames(cmd *model.Command) []string {
	return lo.Map(cmd.VisibleCommands(), func(sub *model.Command, _ int) string {
		return sub.Name
	})
}

func optionNames(cmd *model.Command) []string {
	return lo.Map(cmd.VisibleOptions(), func(opt *model.Option, _ int) string {
		return opt.Name
	})
}

// sanitize upper-cases a name and replaces all
// characters invalid in a variable name with underscores.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
