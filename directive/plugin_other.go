//go:build !((linux || darwin || freebsd) && cgo)

package directive

import "github.com/agentflare-ai/go-clidocs/clidoc"

func openPlugin(path, _ string) (any, error) {
	return nil, clidoc.ConfigError(clidoc.CodeLoadFailed, "cannot open %q: Go plugins are not supported on this platform", path)
}
