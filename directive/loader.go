package directive

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/agentflare-ai/go-clidocs/clidoc"
)

// Loader resolves a symbol exported by a module: an in-process registration,
// a compiled plugin or a Go package.
type Loader interface {
	Load(ctx context.Context, module, symbol string) (any, error)
}

// Factory builds a command when it is loaded. Registered and exported values
// may also be plain funcs returning a *cobra.Command or a clidoc.Command.
type Factory func() (any, error)

// Registry is a Loader over values registered in-process.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]map[string]any
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]map[string]any)}
}

// DefaultRegistry is the Registry used by Register.
var DefaultRegistry = NewRegistry()

// Register adds value to DefaultRegistry.
func Register(module, symbol string, value any) {
	DefaultRegistry.Register(module, symbol, value)
}

// Register makes value loadable as module/symbol, replacing any previous
// registration.
func (r *Registry) Register(module, symbol string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	symbols, ok := r.modules[module]
	if !ok {
		symbols = make(map[string]any)
		r.modules[module] = symbols
	}
	symbols[symbol] = value
}

func (r *Registry) Load(_ context.Context, module, symbol string) (any, error) {
	r.mu.RLock()
	symbols, ok := r.modules[module]
	value, found := symbols[symbol]
	r.mu.RUnlock()

	if !ok {
		return nil, clidoc.LoadError(nil, clidoc.CodeModuleNotFound, "could not import %q", module)
	}
	if !found {
		return nil, clidoc.ConfigError(clidoc.CodeAttributeNotFound, "module %q has no attribute %q", module, symbol)
	}
	log.WithFields(log.Fields{"module": module, "symbol": symbol}).Debug("loaded registered command")
	return materialize(module, symbol, value)
}

// Chain tries each loader in turn. A loader that does not know the module
// passes it on; any other failure stops the search.
type Chain []Loader

func (c Chain) Load(ctx context.Context, module, symbol string) (any, error) {
	for _, l := range c {
		value, err := l.Load(ctx, module, symbol)
		if clidoc.HasCode(err, clidoc.CodeModuleNotFound) {
			continue
		}
		return value, err
	}
	return nil, clidoc.LoadError(nil, clidoc.CodeModuleNotFound, "could not import %q", module)
}

// materialize calls factories. A factory that panics fails the load instead
// of the whole run.
func materialize(module, symbol string, value any) (result any, err error) {
	var build Factory
	switch f := value.(type) {
	case Factory:
		build = f
	case func() (any, error):
		build = f
	case func() *cobra.Command:
		build = func() (any, error) { return f(), nil }
	case func() clidoc.Command:
		build = func() (any, error) { return f(), nil }
	case *func() *cobra.Command:
		build = func() (any, error) { return (*f)(), nil }
	default:
		return value, nil
	}

	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = clidoc.LoadError(fmt.Errorf("%v", p), clidoc.CodeLoadFailed,
				"failed to load %q from %q: the module panicked", symbol, module)
		}
	}()
	result, err = build()
	if err != nil {
		return nil, clidoc.LoadError(err, clidoc.CodeLoadFailed, "failed to load %q from %q", symbol, module)
	}
	return result, nil
}
