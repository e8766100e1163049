// Package directive expands documentation directives embedded in Markdown.
//
// A directive block names a command to document:
//
//	::: clidocs
//	    :module: github.com/example/app
//	    :command: root
//	    :depth: 1
//
// The block is replaced by the Markdown reference of that command tree, as
// produced by the clidoc package.
package directive

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/agentflare-ai/go-clidocs/clidoc"
)

// DefaultTitle is the block title used when a Preprocessor has none.
const DefaultTitle = "clidocs"

// Preprocessor replaces directive blocks with command documentation.
type Preprocessor struct {
	// Title is the block title to match, DefaultTitle when empty.
	Title string
	// Loader resolves the module and command options, DefaultRegistry when
	// nil.
	Loader Loader
	// AttrList enables headings with explicit anchors and toc labels.
	AttrList bool
	// Defaults fill in options a block does not set.
	Defaults map[string]string
	// Log receives diagnostics, the standard logger when nil.
	Log log.FieldLogger
}

// Run expands every directive in lines.
func (p *Preprocessor) Run(ctx context.Context, lines []string) ([]string, error) {
	return ReplaceBlocks(lines, p.title(), p.replacer(ctx))
}

// Process expands every directive read from r, writing the result to w.
func (p *Preprocessor) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	return Scan(r, w, p.title(), p.replacer(ctx))
}

func (p *Preprocessor) replacer(ctx context.Context) ReplaceFunc {
	return func(options map[string]string) ([]string, error) {
		return p.RenderDirective(ctx, options)
	}
}

// RenderDirective renders the command a single directive names.
func (p *Preprocessor) RenderDirective(ctx context.Context, options map[string]string) ([]string, error) {
	merged := make(map[string]string, len(p.Defaults)+len(options))
	for k, v := range p.Defaults {
		merged[k] = v
	}
	for k, v := range options {
		merged[k] = v
	}

	settings, err := ParseSettings(merged)
	if err != nil {
		return nil, err
	}
	logger := p.logger().WithFields(log.Fields{"module": settings.Module, "symbol": settings.Command})
	for _, key := range settings.Unknown {
		logger.WithField("option", key).Warn("ignoring unknown directive option")
	}

	value, err := p.loader().Load(ctx, settings.Module, settings.Command)
	if err != nil {
		return nil, err
	}
	cmd, err := asCommand(value, settings.CommandClass, settings.Command)
	if err != nil {
		return nil, err
	}

	progName := settings.ProgName
	if progName == "" {
		progName = cmd.Name()
	}
	if progName == "" {
		progName = settings.Command
	}
	logger.WithField("prog", progName).Debug("rendering command docs")

	return clidoc.MakeCommandDocs(progName, cmd, clidoc.RenderOptions{
		Depth:           settings.Depth,
		Style:           settings.Style,
		RemoveASCIIArt:  settings.RemoveASCIIArt,
		ShowHidden:      settings.ShowHidden,
		ListSubcommands: settings.ListSubcommands,
		AttrList:        p.AttrList,
	})
}

func (p *Preprocessor) title() string {
	if p.Title == "" {
		return DefaultTitle
	}
	return p.Title
}

func (p *Preprocessor) loader() Loader {
	if p.Loader == nil {
		return DefaultRegistry
	}
	return p.Loader
}

func (p *Preprocessor) logger() log.FieldLogger {
	if p.Log == nil {
		return log.StandardLogger()
	}
	return p.Log
}
