package directive

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/tools/go/packages"

	"github.com/agentflare-ai/go-clidocs/clidoc"
)

// PackageLoader loads symbols from Go source. The module is a package
// pattern, resolved from Dir, naming a main package that exports the symbol.
// The package is compiled as a plugin into CacheDir and opened from there.
type PackageLoader struct {
	// Dir is where package patterns are resolved; "" means the current
	// directory.
	Dir string
	// CacheDir holds the compiled plugins; "" means a go-clidocs directory
	// under the user cache directory.
	CacheDir string
}

func (l *PackageLoader) Load(ctx context.Context, module, symbol string) (any, error) {
	pkg, err := l.inspect(ctx, module, symbol)
	if err != nil {
		return nil, err
	}
	out, err := l.build(ctx, pkg)
	if err != nil {
		return nil, err
	}
	return PluginLoader{}.Load(ctx, out, symbol)
}

// inspect checks that the package loads, is a main package and exports the
// symbol, so that these failures are reported before anything is compiled.
func (l *PackageLoader) inspect(ctx context.Context, module, symbol string) (*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     l.Dir,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedTypes,
	}
	pkgs, err := packages.Load(cfg, module)
	if err != nil {
		return nil, clidoc.LoadError(err, clidoc.CodeModuleNotFound, "could not import %q", module)
	}
	if len(pkgs) != 1 {
		return nil, clidoc.LoadError(nil, clidoc.CodeModuleNotFound, "could not import %q: it matches %d packages", module, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.GoFiles) == 0 {
		return nil, clidoc.LoadError(nil, clidoc.CodeModuleNotFound, "could not import %q", module)
	}
	if len(pkg.Errors) > 0 {
		return nil, clidoc.LoadError(pkg.Errors[0], clidoc.CodeLoadFailed, "failed to import %q", module)
	}
	if pkg.Name != "main" {
		return nil, clidoc.ConfigError(clidoc.CodeLoadFailed, "cannot load %q: package %s is not a main package", module, pkg.Name)
	}
	obj := pkg.Types.Scope().Lookup(symbol)
	if obj == nil || !obj.Exported() {
		return nil, clidoc.ConfigError(clidoc.CodeAttributeNotFound, "module %q has no attribute %q", module, symbol)
	}
	return pkg, nil
}

func (l *PackageLoader) build(ctx context.Context, pkg *packages.Package) (string, error) {
	dir := l.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", clidoc.LoadError(err, clidoc.CodeLoadFailed, "cannot locate a cache directory")
		}
		dir = filepath.Join(base, "go-clidocs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", clidoc.LoadError(err, clidoc.CodeLoadFailed, "cannot create %s", dir)
	}
	out := filepath.Join(dir, strings.NewReplacer("/", "_", ".", "_").Replace(pkg.PkgPath)+".so")

	cmd := exec.CommandContext(ctx, "go", "build", "-buildmode=plugin", "-o", out, pkg.PkgPath)
	cmd.Dir = l.Dir
	log.WithFields(log.Fields{"module": pkg.PkgPath, "path": out}).Debug("building plugin")
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", clidoc.LoadError(err, clidoc.CodeLoadFailed, "failed to build %q: %s", pkg.PkgPath, strings.TrimSpace(string(output)))
	}
	return out, nil
}
