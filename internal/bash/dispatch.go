package bash

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/reeflective/autocomplete/internal/model"
)

const (
	indent = "    "
	reply  = `COMPREPLY=( %s )`
)

// dispatchHead finds the active command by walking the words
// before the cursor, skipping the arguments of options and
// counting the positional words of the active command.
const dispatchHead = `
    local cur prev cmd word i argc skip
    local complete_words complete_options required_options
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    cmd=GLOBAL
    argc=0
    skip=0
    for (( i=1; i < COMP_CWORD; i++ )); do
        word="${COMP_WORDS[i]}"
        if (( skip )); then
            skip=0
            continue
        fi
`

const dispatchLoopTail = `        if [[ "${word}" != -* ]]; then
            argc=$((argc + 1))
        fi
    done
`

// dispatchTail completes options when the current word starts with
// a dash, and subcommands otherwise. Without subcommands, the required
// options not yet on the command line are proposed instead.
const dispatchTail = `
    if [[ -z "${complete_words}" ]]; then
        for word in ${required_options}; do
            if [[ " ${COMP_WORDS[*]} " != *" ${word} "* ]]; then
                complete_words="${complete_words} ${word}"
            fi
        done
    fi

    COMPREPLY=( $(compgen -W "${complete_words}" -- "${cur}") )
    return 0
`

const optionsBranch = `
    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${complete_options}" -- "${cur}") )
        return 0
    fi
`

// argOption is an option taking an argument, with all
// the command-line words that can be used to set it.
type argOption struct {
	patterns []string
	opt      *model.Option
}

// writeDispatch writes the body of the completion function.
func (s *script) writeDispatch(buf *strings.Builder) {
	buf.WriteString(dispatchHead)

	var transitions, skips []string

	for _, tbl := range s.tables {
		for _, child := range tbl.children {
			names := append([]string{child.cmd.Name}, child.cmd.Aliases...)
			patterns := lo.Map(names, func(name string, _ int) string {
				return quote(tbl.id + ":" + name)
			})

			transitions = append(transitions, fmt.Sprintf("%s) cmd=%s; argc=0; continue ;;",
				strings.Join(patterns, "|"), child.id))
		}

		for _, arg := range argOptions(tbl) {
			skips = append(skips, arg.patterns...)
		}
	}

	if len(transitions) > 0 || len(skips) > 0 {
		buf.WriteString(indent + indent + "case \"${cmd}:${word}\" in\n")

		for _, line := range transitions {
			buf.WriteString(indent + indent + indent + line + "\n")
		}

		if len(skips) > 0 {
			fmt.Fprintf(buf, "%s%s%s%s) skip=1; continue ;;\n",
				indent, indent, indent, strings.Join(skips, "|"))
		}

		buf.WriteString(indent + indent + "esac\n")
	}

	buf.WriteString(dispatchLoopTail)

	s.writeOptionArguments(buf)
	s.writeCandidates(buf)
	buf.WriteString(optionsBranch)
	s.writePositionals(buf)
	buf.WriteString(dispatchTail)
}

// writeOptionArguments completes the argument of the option preceding the cursor.
func (s *script) writeOptionArguments(buf *strings.Builder) {
	var cases strings.Builder

	for _, tbl := range s.tables {
		for _, arg := range argOptions(tbl) {
			fmt.Fprintf(&cases, "%s%s%s)\n", indent, indent, strings.Join(arg.patterns, "|"))

			if acts := actions(arg.opt.Choices, arg.opt.Completion); len(acts) > 0 {
				fmt.Fprintf(&cases, "%s%s%s"+reply+"\n", indent, indent, indent, strings.Join(acts, " "))
			}

			fmt.Fprintf(&cases, "%s%s%sreturn 0\n", indent, indent, indent)
			fmt.Fprintf(&cases, "%s%s%s;;\n", indent, indent, indent)
		}
	}

	if cases.Len() == 0 {
		return
	}

	buf.WriteString("\n" + indent + "case \"${cmd}:${prev}\" in\n")
	buf.WriteString(cases.String())
	buf.WriteString(indent + "esac\n")
}

// writeCandidates selects the subcommands, options
// and required options of the active command.
func (s *script) writeCandidates(buf *strings.Builder) {
	buf.WriteString("\n" + indent + "case \"${cmd}\" in\n")

	for _, tbl := range s.tables {
		required := lo.FilterMap(tbl.cmd.Options.Values(), func(opt *model.Option, _ int) (string, bool) {
			return opt.Name, opt.Required
		})

		fmt.Fprintf(buf, "%s%s%s)\n", indent, indent, tbl.id)
		fmt.Fprintf(buf, "%s%s%scomplete_words=\"${%s_COMMANDS}\"\n", indent, indent, indent, tbl.id)
		fmt.Fprintf(buf, "%s%s%scomplete_options=\"${%s_OPTIONS}\"\n", indent, indent, indent, tbl.id)
		fmt.Fprintf(buf, "%s%s%srequired_options=%s\n", indent, indent, indent,
			quote(strings.Join(lo.Uniq(required), " ")))
		fmt.Fprintf(buf, "%s%s%s;;\n", indent, indent, indent)
	}

	buf.WriteString(indent + "esac\n")
}

// writePositionals completes the positional argument at the
// current position, along with the subcommands of the command.
func (s *script) writePositionals(buf *strings.Builder) {
	var cases strings.Builder

	for _, tbl := range s.tables {
		var branches strings.Builder

		for _, pos := range tbl.cmd.Positionals {
			acts := actions(pos.Choices, pos.Completion)

			if len(acts) > 0 {
				if len(tbl.cmd.VisibleCommands()) > 0 {
					acts = append([]string{`$(compgen -W "${complete_words}" -- "${cur}")`}, acts...)
				}

				cond := fmt.Sprintf("argc == %d", pos.Index)
				if pos.Repeatable {
					cond = fmt.Sprintf("argc >= %d", pos.Index)
				}

				fmt.Fprintf(&branches, "%s%s%sif (( %s )); then\n", indent, indent, indent, cond)
				fmt.Fprintf(&branches, "%s%s%s%s"+reply+"\n", indent, indent, indent, indent, strings.Join(acts, " "))
				fmt.Fprintf(&branches, "%s%s%s%sreturn 0\n", indent, indent, indent, indent)
				fmt.Fprintf(&branches, "%s%s%sfi\n", indent, indent, indent)
			}

			// Nothing after a repeatable positional can be reached.
			if pos.Repeatable {
				break
			}
		}

		if branches.Len() == 0 {
			continue
		}

		fmt.Fprintf(&cases, "%s%s%s)\n", indent, indent, tbl.id)
		cases.WriteString(branches.String())
		fmt.Fprintf(&cases, "%s%s%s;;\n", indent, indent, indent)
	}

	if cases.Len() == 0 {
		return
	}

	buf.WriteString("\n" + indent + "case \"${cmd}\" in\n")
	buf.WriteString(cases.String())
	buf.WriteString(indent + "esac\n")
}

// argOptions returns the options of a command taking an argument,
// each with the case patterns matching its long name and short alias
// when the active command is the one of the table.
func argOptions(tbl *table) []*argOption {
	var (
		args  []*argOption
		byOpt = make(map[*model.Option]*argOption)
	)

	add := func(word string, opt *model.Option) {
		if !opt.TakesArgument() {
			return
		}

		arg, found := byOpt[opt]
		if !found {
			arg = &argOption{opt: opt}
			byOpt[opt] = arg
			args = append(args, arg)
		}

		arg.patterns = append(arg.patterns, quote(tbl.id+":"+word))
	}

	for _, name := range tbl.cmd.Options.Keys() {
		opt, _ := tbl.cmd.Options.Get(name)
		add(name, opt)
	}

	for _, short := range tbl.cmd.Shorts.Keys() {
		opt, _ := tbl.cmd.Shorts.Get(short)
		add("-"+short, opt)
	}

	return args
}

// actions returns the compgen substitutions completing a word
// with a list of choices and a static completion directive.
func actions(choices []string, comp model.Completion) []string {
	var acts []string

	if len(choices) > 0 {
		acts = append(acts, fmt.Sprintf(`$(compgen -W %s -- "${cur}")`, quote(strings.Join(choices, " "))))
	}

	switch comp.Kind {
	case model.CompleteFiles:
		if len(comp.Patterns) == 0 {
			acts = append(acts, `$(compgen -f -- "${cur}")`)

			break
		}

		for _, pattern := range comp.Patterns {
			acts = append(acts, fmt.Sprintf(`$(compgen -f -X %s -- "${cur}")`, quote("!"+pattern)))
		}

		acts = append(acts, `$(compgen -d -- "${cur}")`)
	case model.CompleteDirs:
		acts = append(acts, `$(compgen -d -- "${cur}")`)
	case model.CompleteNone:
	}

	return acts
}
