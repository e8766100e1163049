// # go-clidocs
//
// `go-clidocs` expands documentation directives embedded in Markdown into
// reference docs for command-line tools built with Cobra. It walks the command
// tree a directive names and writes each command's description, usage and
// options, optionally recursing into subcommands.
//
// Key capabilities:
//
//   - expand `::: clidocs` blocks in any Markdown document, keeping every other
//     line untouched.
//   - document commands registered in-process, compiled Go plugins, or Go main
//     packages that are built as plugins on demand.
//   - render options as the command's own help output (`plain`) or as a
//     Markdown table with types, choices, ranges and defaults (`table`).
//   - emit full-path headings with explicit anchors and toc labels
//     (`-attr-list`), and render the result to HTML with goldmark (`-html`).
//   - process stdin, files, whole directory trees, or rewrite documents in place.
//   - ship a Cobra-powered CLI with `--help`, `--version`, shell completion, and
//     a `gen-docs` helper that documents go-clidocs itself.
//
// ## Directives
//
// A directive block starts with a line holding exactly `::: clidocs` and is
// followed by indented `:key: value` option lines:
//
//	::: clidocs
//	    :module: github.com/example/app
//	    :command: root
//	    :prog_name: app
//	    :depth: 1
//	    :style: table
//	    :list_subcommands: true
//
// Supported options:
//
//   - `:module:` (required): registered module name, path to a `.so` plugin,
//     or a Go main package pattern.
//   - `:command:` (required): the exported symbol holding the command.
//   - `:prog_name:`: name shown for the root command (defaults to its own name).
//   - `:depth:`: heading level offset of the root command.
//   - `:style:`: `plain` (default) or `table`.
//   - `:remove_ascii_art:`: drop a leading `\b`-marked block of the description.
//   - `:show_hidden:`: include hidden commands and options.
//   - `:list_subcommands:`: list each group's subcommands before documenting them.
//   - `:command_class:`: expected type, `clidoc.Command` (default),
//     `cobra.Command` or `clidoc.Group`.
//
// A boolean option given without a value is true. Unknown options are logged
// and ignored.
//
// ## Usage
//
//	go run . [flags] [file|dir ...]
//
// Examples:
//
//   - Expand a document from stdin:
//
//     go run . < docs/cli.md
//
//   - Mirror a documentation tree into a site folder as HTML:
//
//     go run . -html -o ./site ./docs
//
//   - Update documents in place:
//
//     go run . -inplace ./docs
//
// ## Supported Flags
//
//   - `-o PATH`: write output to `PATH` (stdout when omitted). A directory
//     target mirrors the source tree and writes an index when none exists.
//   - `-inplace`: rewrite the source documents.
//   - `-title NAME`: directive block title to expand (default `clidocs`).
//   - `-attr-list`: full-path headings with `{ #anchor data-toc-label="name" }`.
//   - `-html`: render expanded documents to HTML; implies `-attr-list`.
//   - `-config FILE`: YAML file with `title`, `attr_list`, `html`, `log_level`
//     and directive `defaults`. Flags win over the file.
//   - `-log-level LEVEL`: `debug`, `info`, `warn` (default) or `error`.
//
// Directive options are resolved from the config file defaults, then the
// document's front matter `clidocs:` map, then the block itself.
//
// ## Shell Completion
//
//	go run . completion bash        # bash
//	go run . completion zsh         # zsh
//	go run . completion fish | source
//	go run . completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
// `gen-docs` writes the reference of go-clidocs itself, rendered the same way
// directives are. `--per-command` switches to Cobra's one-file-per-command
// generator:
//
//	go run . gen-docs ./docs/cli
//
// The tool's own command tree is registered under the module
// `github.com/agentflare-ai/go-clidocs` with the symbol `root`, so a document
// can reference it directly.
package main
