package directive

import (
	"context"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/agentflare-ai/go-clidocs/clidoc"
)

// PluginLoader loads symbols from Go plugins. Modules are paths to shared
// objects built with -buildmode=plugin; anything not ending in ".so" is
// passed on as an unknown module.
type PluginLoader struct{}

func (PluginLoader) Load(_ context.Context, module, symbol string) (any, error) {
	if !strings.HasSuffix(module, ".so") {
		return nil, clidoc.LoadError(nil, clidoc.CodeModuleNotFound, "could not import %q", module)
	}
	if _, err := os.Stat(module); err != nil {
		return nil, clidoc.LoadError(err, clidoc.CodeModuleNotFound, "could not import %q", module)
	}
	log.WithFields(log.Fields{"module": module, "symbol": symbol}).Debug("opening plugin")
	value, err := openPlugin(module, symbol)
	if err != nil {
		return nil, err
	}
	return materialize(module, symbol, value)
}
