package clidoc

// Command is the read-only view of one node of a CLI's command tree.
//
// A Command that also implements Group or LazyGroup has children. Anything
// else is a leaf.
type Command interface {
	// Name is the command's declared name. It may be empty, in which case the
	// caller names the node from context.
	Name() string
	// Help is the long description, ShortHelp the one-line fallback.
	Help() string
	ShortHelp() string
	Hidden() bool
	// Options returns the command's own options in the order the framework
	// presents them.
	Options() []Option
	// UsagePieces returns the arguments part of the usage line, without the
	// command path.
	UsagePieces(ctx *Context) []string
	// FormatOptions renders the options with the framework's own help
	// formatter. The first line is a section label and is discarded.
	FormatOptions(ctx *Context, showHidden bool) string
}

// Group is a command with an eagerly populated set of children.
type Group interface {
	Command
	Commands() map[string]Command
}

// LazyGroup is a command that lists its children by name and resolves them
// on demand.
type LazyGroup interface {
	Command
	ListCommands(ctx *Context) []string
	LookupCommand(ctx *Context, name string) Command
}

// IsGroup reports whether cmd can have children.
func IsGroup(cmd Command) bool {
	switch cmd.(type) {
	case Group, LazyGroup:
		return true
	}
	return false
}

// OptionKind selects how an option's type is enriched in table output.
type OptionKind int

const (
	KindScalar OptionKind = iota
	KindChoice
	KindDateTime
	KindRange
)

// OptionType describes the value an option accepts.
type OptionType struct {
	Name    string
	Kind    OptionKind
	Choices []string
	Formats []string
	// Min and Max bound a KindRange type; "" means unbounded.
	Min, Max string
}

// Option describes one command-line option.
type Option struct {
	Opts          []string
	SecondaryOpts []string
	Type          OptionType
	Help          string
	Required      bool
	Default       string
	HasDefault    bool
	Hidden        bool
}
