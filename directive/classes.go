package directive

import (
	"github.com/spf13/cobra"

	"github.com/agentflare-ai/go-clidocs/clidoc"
)

// Values of the command_class option.
const (
	// ClassCommand accepts a clidoc.Command or a *cobra.Command.
	ClassCommand = "clidoc.Command"
	// ClassCobra accepts only a *cobra.Command.
	ClassCobra = "cobra.Command"
	// ClassGroup accepts any command that has subcommands.
	ClassGroup = "clidoc.Group"
)

// asCommand checks a loaded value against a command class and adapts it.
func asCommand(value any, class, symbol string) (clidoc.Command, error) {
	switch class {
	case "", ClassCommand, ClassCobra, ClassGroup:
	default:
		return nil, clidoc.ConfigError(clidoc.CodeUnknownClass, "could not resolve the command class %q", class)
	}

	// Exported variables are looked up by address.
	switch v := value.(type) {
	case **cobra.Command:
		value = *v
	case *clidoc.Command:
		value = *v
	}

	var cmd clidoc.Command
	switch v := value.(type) {
	case *cobra.Command:
		if v != nil {
			cmd = clidoc.FromCobra(v)
		}
	case clidoc.Command:
		if _, isCobra := clidoc.CobraCommand(v); isCobra || class != ClassCobra {
			cmd = v
		}
	}
	if cmd == nil || (class == ClassGroup && !clidoc.IsGroup(cmd)) {
		if class == "" {
			class = ClassCommand
		}
		return nil, clidoc.ConfigError(clidoc.CodeWrongType, "%q must be a '%s' object, got %T", symbol, class, value)
	}
	return cmd, nil
}
