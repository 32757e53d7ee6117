package app

import (
	"errors"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/reeflective/autocomplete"
	"github.com/reeflective/autocomplete/internal/model"
)

// writeModel writes a table of all commands of a model,
// with their options and positional arguments.
func writeModel(w io.Writer, root *autocomplete.Model) error {
	table := tablewriter.NewTable(w)
	table.Header("Command", "Kind", "Name", "Short", "Details")

	var errs []error

	root.Walk(func(path []string, cmd *autocomplete.Model) {
		name := strings.Join(path, " ")

		errs = append(errs, table.Append(name, "command", cmd.Name, "", commandDetails(cmd)))

		for _, opt := range cmd.Options.Values() {
			errs = append(errs, table.Append(name, "option", opt.Name, opt.ShortName(), optionDetails(opt)))
		}

		for _, pos := range cmd.Positionals {
			errs = append(errs, table.Append(name, "argument", pos.Name, "", positionalDetails(pos)))
		}
	})

	if err := errors.Join(errs...); err != nil {
		return err
	}

	return table.Render()
}

func commandDetails(cmd *autocomplete.Model) string {
	var details []string

	if len(cmd.Aliases) > 0 {
		details = append(details, "aliases: "+strings.Join(cmd.Aliases, ", "))
	}

	if cmd.Hidden {
		details = append(details, "hidden")
	}

	if len(cmd.Required) > 0 {
		details = append(details, "required: "+strings.Join(lo.Map(cmd.Required, func(f *model.Field, _ int) string {
			return f.Name
		}), ", "))
	}

	return strings.Join(details, "; ")
}

func optionDetails(opt *autocomplete.ModelOption) string {
	var details []string

	if opt.Required {
		details = append(details, "required")
	}

	if opt.Hidden {
		details = append(details, "hidden")
	}

	if !opt.TakesArgument() {
		details = append(details, "no argument")
	}

	return strings.Join(append(details, completionDetails(opt.Choices, opt.Completion)...), "; ")
}

func positionalDetails(pos *autocomplete.Positional) string {
	var details []string

	if pos.Required {
		details = append(details, "required")
	}

	if pos.Repeatable {
		details = append(details, "repeatable")
	}

	return strings.Join(append(details, completionDetails(pos.Choices, pos.Completion)...), "; ")
}

func completionDetails(choices []string, comp model.Completion) []string {
	var details []string

	if len(choices) > 0 {
		details = append(details, "choices: "+strings.Join(choices, " "))
	}

	switch comp.Kind {
	case model.CompleteFiles:
		if len(comp.Patterns) == 0 {
			details = append(details, "files")
		} else {
			details = append(details, "files: "+strings.Join(comp.Patterns, " "))
		}
	case model.CompleteDirs:
		details = append(details, "directories")
	case model.CompleteNone:
	}

	return details
}
