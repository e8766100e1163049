package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agentflare-ai/go-clidocs/clidoc"
)

const selfDirective = `# Reference

::: clidocs
    :module: github.com/agentflare-ai/go-clidocs
    :command: root
    :depth: 1

After the reference.
`

func TestStdinDirective(t *testing.T) {
	var buf bytes.Buffer
	if err := runWithInput(nil, strings.NewReader(selfDirective), &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "# Reference\n\n## go-clidocs\n")
	assertContains(t, out, "go-clidocs expands documentation directives")
	assertContains(t, out, "**Usage:**\n\n```text\ngo-clidocs [flags] [file|dir ...] [command]\n```")
	assertContains(t, out, "--attr-list")
	assertContains(t, out, "### completion")
	assertContains(t, out, "### gen-docs")
	assertContains(t, out, "After the reference.\n")
	assertNotContains(t, out, "\n::: clidocs\n")
	assertNotContains(t, out, ":module: github.com/agentflare-ai/go-clidocs")
}

func TestDocumentWithoutDirectivesIsUnchanged(t *testing.T) {
	src := "# Title\n\nJust prose.\n"
	var buf bytes.Buffer
	if err := runWithInput(nil, strings.NewReader(src), &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.String() != src {
		t.Fatalf("expected document to pass through unchanged, got\n%s", buf.String())
	}
}

func TestOutputFlagWritesFile(t *testing.T) {
	tmp := t.TempDir()
	source := writeFile(t, filepath.Join(tmp, "cli.md"), selfDirective)
	target := filepath.Join(tmp, "out", "cli.md")
	if err := run([]string{"-o", target, source}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	assertContains(t, string(content), "## go-clidocs")
}

func TestDirectoryOutputWritesTree(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"-o", tmp, "./testdata/docs"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	cli := readFile(t, filepath.Join(tmp, "cli.md"))
	assertContains(t, cli, "# CLI reference")
	assertContains(t, cli, "## go-clidocs")
	assertContains(t, cli, "**Subcommands**\n\n- *completion*: Generate shell completion scripts\n- *gen-docs*: Generate Markdown reference docs for the CLI\n")
	assertContains(t, readFile(t, filepath.Join(tmp, "guide", "usage.md")), "# Usage guide")

	index := readFile(t, filepath.Join(tmp, "index.md"))
	assertContains(t, index, "# Documents")
	assertContains(t, index, "- [CLI reference](cli.md)\n- [Usage guide](guide/usage.md)\n")
}

func TestDirectoryOutputKeepsExistingIndex(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "index.md"), "# Home\n")
	writeFile(t, filepath.Join(src, "page.md"), "# Page\n")
	out := filepath.Join(t.TempDir(), "site")
	if err := run([]string{"-o", out, src}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := readFile(t, filepath.Join(out, "index.md")); got != "# Home\n" {
		t.Fatalf("expected the source index to be kept, got %q", got)
	}
}

func TestHTMLDirectoryOutput(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"-html", "-o", tmp, "./testdata/docs"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	page := readFile(t, filepath.Join(tmp, "cli.html"))
	assertContains(t, page, `<h1 id="cli-reference">CLI reference</h1>`)
	assertContains(t, page, `id="go-clidocs"`)
	assertContains(t, page, `data-toc-label="completion"`)
	assertContains(t, page, `<a href="#go-clidocs-gen-docs">gen-docs</a>`)
	assertContains(t, readFile(t, filepath.Join(tmp, "guide", "usage.html")), "Usage guide</h1>")
	assertContains(t, readFile(t, filepath.Join(tmp, "index.html")), `<a href="cli.html">CLI reference</a>`)
}

func TestAttrListHeadings(t *testing.T) {
	var buf bytes.Buffer
	if err := runWithInput([]string{"--attr-list"}, strings.NewReader(selfDirective), &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, `## go-clidocs { #go-clidocs data-toc-label="go-clidocs" }`)
	assertContains(t, out, `### go-clidocs completion { #go-clidocs-completion data-toc-label="completion" }`)
}

func TestInPlaceModeRewritesDocuments(t *testing.T) {
	tmp := t.TempDir()
	page := writeFile(t, filepath.Join(tmp, "cli.md"), selfDirective)
	plain := writeFile(t, filepath.Join(tmp, "notes", "plain.md"), "# Notes\n")
	hidden := writeFile(t, filepath.Join(tmp, ".cache", "skip.md"), selfDirective)
	crlf := writeFile(t, filepath.Join(tmp, "crlf.md"), "# Notes\r\n\r\nText.\r\n")
	noEOL := writeFile(t, filepath.Join(tmp, "noeol.md"), "# Notes")
	before := time.Now().Add(-time.Hour).Truncate(time.Second)
	for _, path := range []string{plain, crlf, noEOL} {
		if err := os.Chtimes(path, before, before); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	if err := run([]string{"-inplace", tmp}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, readFile(t, page), "## go-clidocs")
	if got := readFile(t, plain); got != "# Notes\n" {
		t.Fatalf("expected plain document to be untouched, got %q", got)
	}
	if got := readFile(t, hidden); got != selfDirective {
		t.Fatalf("expected dot directories to be skipped, got %q", got)
	}
	for path, want := range map[string]string{crlf: "# Notes\r\n\r\nText.\r\n", noEOL: "# Notes"} {
		if got := readFile(t, path); got != want {
			t.Fatalf("expected %s to keep its line endings, got %q", filepath.Base(path), got)
		}
	}
	for _, path := range []string{plain, crlf, noEOL} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if !info.ModTime().Equal(before) {
			t.Fatalf("expected %s not to be rewritten", filepath.Base(path))
		}
	}
}

func TestFrontMatterDefaults(t *testing.T) {
	src := "---\ntitle: Reference\nclidocs:\n  style: table\n---\n\n" + selfDirective
	var buf bytes.Buffer
	if err := runWithInput(nil, strings.NewReader(src), &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "---\ntitle: Reference\nclidocs:\n  style: table\n---\n") {
		t.Fatalf("expected front matter to be kept, got\n%s", out)
	}
	assertContains(t, out, "| Name | Type | Description | Default |")
	assertContains(t, out, "| `--title` | string | directive block title to expand | `clidocs` |")
}

func TestConfigFile(t *testing.T) {
	tmp := t.TempDir()
	cfg := writeFile(t, filepath.Join(tmp, "clidocs.yaml"), "title: reference\ndefaults:\n  depth: 2\n  list_subcommands: true\n")
	src := "::: reference\n    :module: github.com/agentflare-ai/go-clidocs\n    :command: root\n"

	var buf bytes.Buffer
	if err := runWithInput([]string{"--config", cfg}, strings.NewReader(src), &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "### go-clidocs\n")
	assertContains(t, out, "**Subcommands**")
	assertContains(t, out, "#### completion")

	// An explicit flag wins over the file.
	buf.Reset()
	if err := runWithInput([]string{"--config", cfg, "--title", "clidocs"}, strings.NewReader(src), &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.String() != src {
		t.Fatalf("expected the reference block to be left alone, got\n%s", buf.String())
	}
}

func TestConfigFileRejectsUnknownFields(t *testing.T) {
	cfg := writeFile(t, filepath.Join(t.TempDir(), "clidocs.yaml"), "titel: typo\n")
	err := runWithInput([]string{"--config", cfg}, strings.NewReader(""), io.Discard)
	if err == nil {
		t.Fatalf("expected an error for an unknown config field")
	}
	assertContains(t, err.Error(), "titel")
}

func TestDirectiveErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{
			name: "missing command",
			src:  "::: clidocs\n    :module: github.com/agentflare-ai/go-clidocs\n",
			code: clidoc.CodeMissingOption,
		},
		{
			name: "unknown symbol",
			src:  "::: clidocs\n    :module: github.com/agentflare-ai/go-clidocs\n    :command: nope\n",
			code: clidoc.CodeAttributeNotFound,
		},
		{
			name: "bad style",
			src:  "::: clidocs\n    :module: github.com/agentflare-ai/go-clidocs\n    :command: root\n    :style: fancy\n",
			code: clidoc.CodeInvalidOption,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := runWithInput(nil, strings.NewReader(tc.src), io.Discard)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !clidoc.HasCode(err, tc.code) {
				t.Fatalf("expected code %s, got %v", tc.code, err)
			}
			assertContains(t, err.Error(), "<stdin>: ")
		})
	}
}

func TestFlagConflicts(t *testing.T) {
	tmp := t.TempDir()
	page := writeFile(t, filepath.Join(tmp, "page.md"), "# Page\n")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "output with inplace", args: []string{"-inplace", "-o", "out.md", page}, want: "-o cannot be combined with -inplace"},
		{name: "html with inplace", args: []string{"-inplace", "-html", page}, want: "-html cannot be combined with -inplace"},
		{name: "inplace without sources", args: []string{"-inplace"}, want: "requires at least one file or directory"},
		{name: "directory to file", args: []string{"-o", filepath.Join(tmp, "out.md"), tmp}, want: "requires -o pointing to a directory"},
		{name: "bad log level", args: []string{"--log-level", "loud", page}, want: `"loud" is not one of trace, debug`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := run(tc.args, io.Discard)
			if err == nil {
				t.Fatalf("expected an error")
			}
			assertContains(t, err.Error(), tc.want)
		})
	}
}

func TestNormalizeLegacyArgs(t *testing.T) {
	got := normalizeLegacyArgs([]string{"-inplace", "-o", "x", "-title=ref", "-v", "--", "-html"})
	want := []string{"--inplace", "-o", "x", "--title=ref", "-v", "--", "-html"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("normalizeLegacyArgs = %q, want %q", got, want)
	}
}

func TestDocumentTitle(t *testing.T) {
	src := []byte("intro\n# go-clidocs { #go-clidocs data-toc-label=\"go-clidocs\" }\n")
	if got := documentTitle(src, "fallback"); got != "go-clidocs" {
		t.Fatalf("documentTitle = %q", got)
	}
	if got := documentTitle([]byte("no heading\n"), "fallback"); got != "fallback" {
		t.Fatalf("documentTitle = %q", got)
	}
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n\n%s", needle, haystack)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Fatalf("expected output not to contain %q\n\n%s", needle, haystack)
	}
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(content)
}

func TestHelpFlag(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--help"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "go-clidocs [flags] [file|dir ...]")
	assertContains(t, out, "--attr-list")
	assertContains(t, out, "completion  Generate shell completion scripts")
}

func TestCompletionCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"completion", "bash"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected completion output")
	}
	assertContains(t, buf.String(), "__start_go-clidocs")

	for _, shell := range []string{"zsh", "fish", "powershell"} {
		buf.Reset()
		if err := run([]string{"completion", shell}, &buf); err != nil {
			t.Fatalf("run %s: %v", shell, err)
		}
		assertContains(t, buf.String(), "go-clidocs")
	}

	err := run([]string{"completion", "tcsh"}, io.Discard)
	if err == nil {
		t.Fatalf("expected an error for an unsupported shell")
	}
	assertContains(t, err.Error(), `invalid argument "tcsh"`)
}

func TestGenDocsCommand(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"gen-docs", "--style", "table", tmp}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	content := readFile(t, filepath.Join(tmp, "go-clidocs.md"))
	assertContains(t, content, "# go-clidocs\n")
	assertContains(t, content, "| Name | Type | Description | Default |")
	assertContains(t, content, "| `--log-level` | choice (`trace` &#x7C; `debug` &#x7C; `info` &#x7C; `warn` &#x7C; `error` &#x7C; `fatal` &#x7C; `panic`) | log level | `warn` |")
	assertContains(t, content, "- *gen-docs*: Generate Markdown reference docs for the CLI")
	assertContains(t, content, "## completion")
}

func TestGenDocsPerCommand(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"gen-docs", "--per-command", tmp}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	files, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	var foundRoot, foundCompletion bool
	for _, f := range files {
		switch f.Name() {
		case "go-clidocs.md":
			foundRoot = true
		case "go-clidocs_completion.md":
			foundCompletion = true
		}
	}
	if !foundRoot || !foundCompletion {
		t.Fatalf("expected per-command docs in output, got %v", files)
	}
}
