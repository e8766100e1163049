//go:build (linux || darwin || freebsd) && cgo

package directive

import (
	"fmt"
	"plugin"

	"github.com/agentflare-ai/go-clidocs/clidoc"
)

func openPlugin(path, symbol string) (value any, err error) {
	// Package initialisers run inside Open.
	defer func() {
		if p := recover(); p != nil {
			value = nil
			err = clidoc.LoadError(fmt.Errorf("%v", p), clidoc.CodeLoadFailed,
				"failed to load %q from %q: the module panicked", symbol, path)
		}
	}()
	p, err := plugin.Open(path)
	if err != nil {
		return nil, clidoc.LoadError(err, clidoc.CodeLoadFailed, "failed to open plugin %q", path)
	}
	sym, err := p.Lookup(symbol)
	if err != nil {
		return nil, clidoc.ConfigError(clidoc.CodeAttributeNotFound, "module %q has no attribute %q", path, symbol)
	}
	return sym, nil
}
