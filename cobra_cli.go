package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"

	"github.com/agentflare-ai/go-clidocs/clidoc"
	"github.com/agentflare-ai/go-clidocs/directive"
	"github.com/agentflare-ai/go-clidocs/flagtypes"
)

// selfModule is the module name under which the tool's own command tree is
// registered, so documents can reference it with ":module:" and ":command: root".
const selfModule = "github.com/agentflare-ai/go-clidocs"

func init() {
	directive.Register(selfModule, "root", func() *cobra.Command {
		return newRootCmd(nil, io.Discard)
	})
}

var logLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}

const rootLongDesc = `
go-clidocs expands documentation directives in Markdown files into reference docs for
command-line tools built with Cobra. A directive names the command tree to document:

    ::: clidocs
        :module: github.com/example/app
        :command: root
        :style: table

The module is resolved, in order, from commands registered in-process, compiled Go plugins
(a path ending in .so) and Go main packages, which are compiled as plugins on demand.

Documents are read from stdin, from files, or from a directory tree. Output goes to stdout,
to the file or directory given with -o, or back into the sources with -inplace.
`

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	app := &cliApp{stdin: stdin, stdout: stdout}
	cmd := &cobra.Command{
		Use:           "go-clidocs [flags] [file|dir ...]",
		Short:         "Expand CLI documentation directives in Markdown",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&app.opts.outputPath, "output", "o", "", "write output to file or directory instead of stdout")
	flags.BoolVar(&app.opts.inplace, "inplace", false, "rewrite the source documents (overwrites existing files)")
	flags.StringVar(&app.opts.title, "title", directive.DefaultTitle, "directive block title to expand")
	flags.BoolVar(&app.opts.attrList, "attr-list", false, "emit full-path headings with explicit anchors and toc labels")
	flags.BoolVar(&app.opts.html, "html", false, "render the expanded documents to HTML (implies --attr-list)")
	flags.StringVar(&app.opts.configPath, "config", "", "read settings and directive defaults from a YAML file")
	flags.Var(flagtypes.NewChoice(&app.opts.logLevel, "warn", logLevels...), "log-level", "log level")
	app.flags = flags

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx, args)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	generators := map[string]func(io.Writer) error{
		"bash": root.GenBashCompletion,
		"zsh":  root.GenZshCompletion,
		"fish": func(w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
		"powershell": root.GenPowerShellCompletionWithDesc,
	}
	return &cobra.Command{
		Use:   "completion [" + strings.Join(completionShells, "|") + "]",
		Short: "Generate shell completion scripts",
		Long: strings.TrimSpace(`
Print a completion script for go-clidocs. Load it from your shell profile, e.g.

  source <(go-clidocs completion bash)
  go-clidocs completion fish | source
`),
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             completionShells,
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generators[args[0]](cmd.OutOrStdout())
		},
	}
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	var (
		perCommand bool
		style      string
		showHidden bool
	)
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write the Markdown reference of go-clidocs itself to go-clidocs.md in the directory,
rendered the same way directives are. With --per-command, write one file per command
using Cobra's generator instead.

Example:

  go-clidocs gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolVar(&perCommand, "per-command", false, "write one file per command with Cobra's generator")
	cmd.Flags().Var(flagtypes.NewChoice(&style, string(clidoc.StylePlain), string(clidoc.StylePlain), string(clidoc.StyleTable)), "style", "option style")
	cmd.Flags().BoolVar(&showHidden, "show-hidden", false, "include hidden commands and flags")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		if perCommand {
			return cobradoc.GenMarkdownTree(root, target)
		}
		s, err := clidoc.ParseStyle(style)
		if err != nil {
			return err
		}
		lines, err := clidoc.MakeCommandDocs(root.Name(), clidoc.FromCobra(root), clidoc.RenderOptions{
			Style:           s,
			ShowHidden:      showHidden,
			ListSubcommands: true,
		})
		if err != nil {
			return err
		}
		out := filepath.Join(target, root.Name()+".md")
		return os.WriteFile(out, []byte(strings.Join(lines, "\n")), 0o644)
	}
	return cmd
}
