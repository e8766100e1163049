package clidoc

import (
	"fmt"
	"strings"
)

// Style selects how option lists are rendered.
type Style string

const (
	// StylePlain renders the framework's own help output in a code block.
	StylePlain Style = "plain"
	// StyleTable renders a Markdown table.
	StyleTable Style = "table"
)

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StylePlain, StyleTable:
		return Style(s), nil
	}
	return "", ConfigError(CodeInvalidStyle, "%s is not a valid option style, which must be either `plain` or `table`.", s)
}

// htmlPipe separates alternatives inside a table cell without ending the cell.
const htmlPipe = "&#x7C;"

const (
	noDescription = "N/A"
	noDefault     = "None"
	requiredValue = "_required"
)

func makeOptions(ctx *Context, style Style, showHidden bool) ([]string, error) {
	switch style {
	case StylePlain:
		return makePlainOptions(ctx, showHidden), nil
	case StyleTable:
		return makeTableOptions(ctx, showHidden), nil
	}
	_, err := ParseStyle(string(style))
	return nil, err
}

func makePlainOptions(ctx *Context, showHidden bool) []string {
	formatted := strings.TrimRight(ctx.Command.FormatOptions(ctx, showHidden), "\n")
	lines := strings.Split(formatted, "\n")[1:]
	if len(lines) == 0 {
		return nil
	}
	out := []string{"**Options:**", "", "```text"}
	out = append(out, lines...)
	return append(out, "```", "")
}

func makeTableOptions(ctx *Context, showHidden bool) []string {
	var rows []string
	for _, opt := range ctx.Command.Options() {
		if opt.Hidden && !showHidden {
			continue
		}
		rows = append(rows, formatTableRow(opt))
	}
	if len(rows) == 0 {
		return nil
	}
	out := []string{
		"**Options:**",
		"",
		"| Name | Type | Description | Default |",
		"| ---- | ---- | ----------- | ------- |",
	}
	out = append(out, rows...)
	return append(out, "")
}

func formatTableRow(opt Option) string {
	names := backtickJoin(opt.Opts, ", ")
	if len(opt.SecondaryOpts) > 0 {
		names += " / " + backtickJoin(opt.SecondaryOpts, ", ")
	}

	description := opt.Help
	if description == "" {
		description = noDescription
	}

	var def string
	switch {
	case opt.HasDefault:
		def = "`" + opt.Default + "`"
	case opt.Required:
		def = requiredValue
	default:
		def = noDefault
	}

	return fmt.Sprintf("| %s | %s | %s | %s |", names, formatOptionType(opt.Type), description, def)
}

func formatOptionType(t OptionType) string {
	switch t.Kind {
	case KindChoice:
		return fmt.Sprintf("%s (%s)", t.Name, backtickJoin(t.Choices, " "+htmlPipe+" "))
	case KindDateTime:
		return fmt.Sprintf("%s (%s)", t.Name, backtickJoin(t.Formats, " "+htmlPipe+" "))
	case KindRange:
		switch {
		case t.Min != "" && t.Max != "":
			return fmt.Sprintf("%s (between `%s` and `%s`)", t.Name, t.Min, t.Max)
		case t.Min != "":
			return fmt.Sprintf("%s (`%s` and above)", t.Name, t.Min)
		case t.Max != "":
			return fmt.Sprintf("%s (`%s` and below)", t.Name, t.Max)
		}
	}
	return t.Name
}

func backtickJoin(values []string, sep string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "`" + v + "`"
	}
	return strings.Join(quoted, sep)
}
