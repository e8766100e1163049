// Package clidoc renders a CLI command tree as Markdown reference
// documentation.
//
// Each command produces, in order: a heading, its description, a usage block
// and its options, followed by an optional list of subcommands and then the
// documentation of every visible subcommand, sorted by name.
package clidoc

import (
	"fmt"
	"strings"
)

// asciiArtMarker opens a help text region that is kept verbatim by help
// formatters. As the first line of a description it marks ASCII art.
const asciiArtMarker = "\b"

const noSubcommandDescription = "*No description was provided with this command.*"

// RenderOptions controls MakeCommandDocs.
type RenderOptions struct {
	// Depth is the heading level of the root command, 0 being "#".
	Depth int
	// Style is the option rendering style, StylePlain when empty.
	Style Style
	// RemoveASCIIArt drops a description's leading art block.
	RemoveASCIIArt bool
	// ShowHidden includes hidden commands and options.
	ShowHidden bool
	// ListSubcommands adds a bullet list of subcommands to every group.
	ListSubcommands bool
	// AttrList emits full-path headings with explicit anchors and short
	// table of contents labels, for renderers supporting attribute lists.
	AttrList bool
}

// MakeCommandDocs renders cmd and its subcommands under progName. Either the
// whole tree renders or an error is returned.
func MakeCommandDocs(progName string, cmd Command, opts RenderOptions) ([]string, error) {
	if opts.Style == "" {
		opts.Style = StylePlain
	}
	if _, err := ParseStyle(string(opts.Style)); err != nil {
		return nil, err
	}
	if opts.Depth < 0 {
		return nil, ConfigError(CodeInvalidOption, "depth %d is negative", opts.Depth)
	}
	r := &renderer{opts: opts}
	if err := r.render(progName, cmd, nil, opts.Depth); err != nil {
		return nil, err
	}
	lines := r.lines[:0]
	for _, line := range r.lines {
		if strings.TrimSpace(line) == asciiArtMarker {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

type renderer struct {
	opts  RenderOptions
	lines []string
}

func (r *renderer) emit(lines ...string) {
	r.lines = append(r.lines, lines...)
}

func (r *renderer) render(name string, cmd Command, parent *Context, depth int) error {
	ctx, err := NewContext(name, cmd, parent)
	if err != nil {
		return err
	}
	if cmd.Hidden() && !r.opts.ShowHidden {
		return nil
	}

	r.makeTitle(ctx, depth)
	r.makeDescription(ctx)
	r.makeUsage(ctx)
	options, err := makeOptions(ctx, r.opts.Style, r.opts.ShowHidden)
	if err != nil {
		return err
	}
	r.emit(options...)

	children, err := subcommands(ctx)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		return nil
	}
	if r.opts.ListSubcommands {
		if err := r.makeSubcommandLinks(ctx, children); err != nil {
			return err
		}
	}
	for _, child := range children {
		if err := r.render(child.name, child.cmd, ctx, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) makeTitle(ctx *Context, depth int) {
	marks := strings.Repeat("#", depth+1)
	if !r.opts.AttrList {
		r.emit(marks+" "+ctx.InfoName, "")
		return
	}
	// Headings and anchors carry the full path so they are unique across the
	// page; the toc label stays short because the toc nesting already shows
	// the hierarchy.
	path := ctx.CommandPath()
	r.emit(fmt.Sprintf(`%s %s { #%s data-toc-label="%s" }`, marks, path, Slugify(path), ctx.InfoName), "")
}

func (r *renderer) makeDescription(ctx *Context) {
	help := ctx.Command.Help()
	if help == "" {
		help = ctx.Command.ShortHelp()
	}
	if help == "" {
		return
	}
	lines := cleanDoc(help)
	if !r.opts.RemoveASCIIArt {
		r.emit(lines...)
		r.emit("")
		return
	}
	skipping := false
	for i, line := range lines {
		if skipping {
			if strings.TrimSpace(line) == "" {
				skipping = false
			}
			continue
		}
		if i == 0 && strings.TrimSpace(line) == asciiArtMarker {
			skipping = true
			continue
		}
		r.emit(line)
	}
	r.emit("")
}

func (r *renderer) makeUsage(ctx *Context) {
	usage := ctx.CommandPath()
	if pieces := ctx.Command.UsagePieces(ctx); len(pieces) > 0 {
		usage += " " + strings.Join(pieces, " ")
	}
	r.emit("**Usage:**", "", "```text", usage, "```", "")
}

func (r *renderer) makeSubcommandLinks(parent *Context, children []subcommand) error {
	r.emit("**Subcommands**", "")
	for _, child := range children {
		if child.cmd.Hidden() && !r.opts.ShowHidden {
			continue
		}
		ctx, err := NewContext(child.name, child.cmd, parent)
		if err != nil {
			return err
		}
		bullet := child.name
		if r.opts.AttrList {
			bullet = fmt.Sprintf("[%s](#%s)", child.name, Slugify(ctx.CommandPath()))
		}
		r.emit(fmt.Sprintf("- *%s*: %s", bullet, summary(child.cmd)))
	}
	r.emit("")
	return nil
}

func summary(cmd Command) string {
	help := cmd.ShortHelp()
	if help == "" {
		help = cmd.Help()
	}
	if lines := cleanDoc(help); len(lines) > 0 && lines[0] != "" {
		return lines[0]
	}
	return noSubcommandDescription
}
