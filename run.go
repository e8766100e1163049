package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/agentflare-ai/go-clidocs/directive"
)

type options struct {
	outputPath string
	inplace    bool
	title      string
	attrList   bool
	html       bool
	configPath string
	logLevel   string
}

type cliApp struct {
	stdin    io.Reader
	stdout   io.Writer
	opts     options
	flags    *pflag.FlagSet
	defaults map[string]string
	loader   directive.Loader
}

// documentMatter is the part of a document's front matter read by the tool.
type documentMatter struct {
	Clidocs map[string]any `yaml:"clidocs"`
}

func run(argv []string, stdout io.Writer) error {
	return runWithInput(argv, os.Stdin, stdout)
}

func runWithInput(argv []string, stdin io.Reader, stdout io.Writer) error {
	cmd := newRootCmd(stdin, stdout)
	args := normalizeLegacyArgs(argv)
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	cmd.SetArgs(args)
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context, positionals []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := app.configure(); err != nil {
		return err
	}
	opts := app.opts
	if opts.inplace && opts.outputPath != "" {
		return errors.New("-o cannot be combined with -inplace")
	}
	if opts.inplace {
		if opts.html {
			return errors.New("-html cannot be combined with -inplace")
		}
		if len(positionals) == 0 {
			return errors.New("in-place mode requires at least one file or directory")
		}
		for _, path := range positionals {
			if err := app.processInPlace(ctx, path); err != nil {
				return err
			}
		}
		return nil
	}
	if hasDirectory(positionals) || wantsDirectoryOutput(opts.outputPath) {
		if len(positionals) != 1 {
			return errors.New("directory output accepts exactly one source directory")
		}
		if opts.outputPath == "" || !wantsDirectoryOutput(opts.outputPath) {
			return errors.New("directory input requires -o pointing to a directory")
		}
		return app.processTree(ctx, positionals[0], opts.outputPath)
	}

	var out bytes.Buffer
	if len(positionals) == 0 {
		src, err := io.ReadAll(app.stdin)
		if err != nil {
			return err
		}
		rendered, err := app.processDocument(ctx, "<stdin>", src)
		if err != nil {
			return err
		}
		out.Write(rendered)
	}
	for _, path := range positionals {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rendered, err := app.processDocument(ctx, path, src)
		if err != nil {
			return err
		}
		out.Write(rendered)
	}
	return writeOutput(opts.outputPath, app.stdout, out.Bytes())
}

// configure applies the configuration file under the flags that were set
// explicitly, then sets up logging and the command loader.
func (app *cliApp) configure() error {
	if app.opts.configPath != "" {
		cfg, err := loadConfig(app.opts.configPath)
		if err != nil {
			return err
		}
		if cfg.Title != "" && !app.changed("title") {
			app.opts.title = cfg.Title
		}
		if cfg.AttrList != nil && !app.changed("attr-list") {
			app.opts.attrList = *cfg.AttrList
		}
		if cfg.HTML != nil && !app.changed("html") {
			app.opts.html = *cfg.HTML
		}
		if cfg.LogLevel != "" && !app.changed("log-level") {
			app.opts.logLevel = cfg.LogLevel
		}
		app.defaults = stringOptions(cfg.Defaults)
	}
	if app.opts.html {
		app.opts.attrList = true
	}

	level, err := log.ParseLevel(app.opts.logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if app.loader == nil {
		app.loader = directive.Chain{
			directive.DefaultRegistry,
			directive.PluginLoader{},
			&directive.PackageLoader{},
		}
	}
	return nil
}

func (app *cliApp) changed(name string) bool {
	return app.flags != nil && app.flags.Changed(name)
}

// processDocument expands the directives of one Markdown document. Front
// matter is kept in Markdown output and its clidocs map supplies directive
// defaults for the document.
func (app *cliApp) processDocument(ctx context.Context, name string, src []byte) ([]byte, error) {
	var matter documentMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &matter)
	if err != nil {
		return nil, fmt.Errorf("%s: front matter: %w", name, err)
	}
	header := src[:len(src)-len(body)]

	pre := &directive.Preprocessor{
		Title:    app.opts.title,
		Loader:   app.loader,
		AttrList: app.opts.attrList,
		Defaults: mergeOptions(app.defaults, stringOptions(matter.Clidocs)),
		Log:      log.WithField("file", name),
	}
	var buf bytes.Buffer
	if err := pre.Process(ctx, bytes.NewReader(body), &buf); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if app.opts.html {
		return renderHTML(buf.Bytes())
	}
	return append(append([]byte{}, header...), buf.Bytes()...), nil
}

func (app *cliApp) processInPlace(ctx context.Context, path string) error {
	return walkMarkdown(path, func(file, _ string) error {
		src, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		rendered, err := app.processDocument(ctx, file, src)
		if err != nil {
			return err
		}
		if bytes.Equal(src, rendered) {
			return nil
		}
		log.WithField("path", file).Debug("rewriting document")
		return os.WriteFile(file, rendered, 0o644)
	})
}

// processTree mirrors every Markdown document under root into outDir. When
// root has no index document, an index linking every document is written.
func (app *cliApp) processTree(ctx context.Context, root, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	var entries []tocEntry
	hasIndex := false
	err := walkMarkdown(root, func(file, rel string) error {
		src, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		rendered, err := app.processDocument(ctx, file, src)
		if err != nil {
			return err
		}
		titleSrc := rendered
		if app.opts.html {
			rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
			titleSrc = src
		}
		target := filepath.Join(outDir, rel)
		if err := writeOutput(target, nil, rendered); err != nil {
			return err
		}
		if isIndex(rel) {
			hasIndex = true
			return nil
		}
		entries = append(entries, tocEntry{
			title: documentTitle(titleSrc, filepath.Base(rel)),
			link:  filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return err
	}
	if len(entries) == 0 && !hasIndex {
		return fmt.Errorf("no Markdown documents found under %q", root)
	}
	if hasIndex {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].link < entries[j].link
	})
	toc := buildTOC(entries)
	name := "index.md"
	if app.opts.html {
		html, err := renderHTML(toc)
		if err != nil {
			return err
		}
		toc, name = html, "index.html"
	}
	return os.WriteFile(filepath.Join(outDir, name), toc, 0o644)
}

// walkMarkdown calls fn for every .md file under root, or for root itself
// when it is a file. rel is the path relative to root.
func walkMarkdown(root string, fn func(file, rel string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fn(root, filepath.Base(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return fn(path, rel)
	})
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var legacyLongFlagSet = map[string]struct{}{
	"inplace":   {},
	"output":    {},
	"title":     {},
	"attr-list": {},
	"html":      {},
	"config":    {},
	"log-level": {},
}

func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || len(arg) <= 2 {
			converted = append(converted, arg)
			continue
		}
		name, value, hasValue := strings.Cut(arg[1:], "=")
		if _, ok := legacyLongFlagSet[name]; ok {
			if hasValue {
				converted = append(converted, "--"+name+"="+value)
			} else {
				converted = append(converted, "--"+name)
			}
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified {
		return args
	}
	return converted
}

func hasDirectory(paths []string) bool {
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func wantsDirectoryOutput(path string) bool {
	if path == "" || path == "-" {
		return false
	}
	info, err := os.Stat(path)
	if err == nil {
		return info.IsDir()
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false
	}
	if strings.HasSuffix(path, string(os.PathSeparator)) {
		return true
	}
	return filepath.Ext(path) == ""
}

func isIndex(rel string) bool {
	switch filepath.ToSlash(rel) {
	case "index.md", "index.html", "README.md", "README.html":
		return true
	}
	return false
}

type tocEntry struct {
	title string
	link  string
}

func buildTOC(entries []tocEntry) []byte {
	if len(entries) == 0 {
		return nil
	}
	var buf bytes.Buffer
	buf.WriteString("# Documents\n\n")
	for _, entry := range entries {
		fmt.Fprintf(&buf, "- [%s](%s)\n", entry.title, entry.link)
	}
	return buf.Bytes()
}

// documentTitle returns the text of the first level-one heading of a
// Markdown document, without any attribute list.
func documentTitle(src []byte, fallback string) string {
	for _, line := range strings.Split(string(src), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if !strings.HasPrefix(line, "# ") {
			continue
		}
		title := strings.TrimSpace(line[2:])
		if i := strings.LastIndex(title, " {"); i > 0 && strings.HasSuffix(title, "}") {
			title = strings.TrimSpace(title[:i])
		}
		if title != "" {
			return title
		}
	}
	return fallback
}
