package directive

import (
	"sort"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"

	"github.com/agentflare-ai/go-clidocs/clidoc"
)

// Directive option keys.
const (
	KeyModule          = "module"
	KeyCommand         = "command"
	KeyProgName        = "prog_name"
	KeyDepth           = "depth"
	KeyStyle           = "style"
	KeyRemoveASCIIArt  = "remove_ascii_art"
	KeyShowHidden      = "show_hidden"
	KeyListSubcommands = "list_subcommands"
	KeyCommandClass    = "command_class"
)

var knownKeys = map[string]bool{
	KeyModule:          true,
	KeyCommand:         true,
	KeyProgName:        true,
	KeyDepth:           true,
	KeyStyle:           true,
	KeyRemoveASCIIArt:  true,
	KeyShowHidden:      true,
	KeyListSubcommands: true,
	KeyCommandClass:    true,
}

// Settings are the resolved options of one directive block.
type Settings struct {
	Module          string
	Command         string
	ProgName        string
	Depth           int
	Style           clidoc.Style
	RemoveASCIIArt  bool
	ShowHidden      bool
	ListSubcommands bool
	CommandClass    string
	// Unknown lists the keys that were present but not recognised, sorted.
	Unknown []string
}

// ParseSettings validates a directive's options and applies defaults.
func ParseSettings(options map[string]string) (Settings, error) {
	if options == nil {
		options = map[string]string{}
	}

	if err := goerrors.ValidateWithOzzo(func() error {
		return validation.Validate(options, validation.Map(
			validation.Key(KeyModule, validation.Required),
			validation.Key(KeyCommand, validation.Required),
		).AllowExtraKeys())
	}, "missing required directive options"); err != nil {
		return Settings{}, err.WithTextCode(clidoc.CodeMissingOption)
	}

	boolean := validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := strconv.ParseBool(s); err != nil {
			return validation.NewError("validation_is_bool", "must be a boolean")
		}
		return nil
	})
	if err := goerrors.ValidateWithOzzo(func() error {
		return validation.Validate(options, validation.Map(
			validation.Key(KeyDepth, is.Digit).Optional(),
			validation.Key(KeyStyle, validation.In(string(clidoc.StylePlain), string(clidoc.StyleTable)).
				Error("must be either `plain` or `table`")).Optional(),
			validation.Key(KeyRemoveASCIIArt, boolean).Optional(),
			validation.Key(KeyShowHidden, boolean).Optional(),
			validation.Key(KeyListSubcommands, boolean).Optional(),
		).AllowExtraKeys())
	}, "invalid directive options"); err != nil {
		return Settings{}, err.WithTextCode(clidoc.CodeInvalidOption)
	}

	s := Settings{
		Module:          options[KeyModule],
		Command:         options[KeyCommand],
		ProgName:        options[KeyProgName],
		Style:           clidoc.StylePlain,
		RemoveASCIIArt:  flag(options, KeyRemoveASCIIArt),
		ShowHidden:      flag(options, KeyShowHidden),
		ListSubcommands: flag(options, KeyListSubcommands),
		CommandClass:    options[KeyCommandClass],
	}
	if depth := options[KeyDepth]; depth != "" {
		n, err := strconv.Atoi(depth)
		if err != nil {
			return Settings{}, clidoc.ConfigError(clidoc.CodeInvalidOption, "depth %q is out of range", depth)
		}
		s.Depth = n
	}
	if style := options[KeyStyle]; style != "" {
		s.Style = clidoc.Style(style)
	}
	if s.CommandClass == "" {
		s.CommandClass = ClassCommand
	}
	for key := range options {
		if !knownKeys[key] {
			s.Unknown = append(s.Unknown, key)
		}
	}
	sort.Strings(s.Unknown)
	return s, nil
}

// flag reads a boolean option. A key present without a value is true.
func flag(options map[string]string, key string) bool {
	value, ok := options[key]
	if !ok {
		return false
	}
	if value == "" {
		return true
	}
	b, _ := strconv.ParseBool(value)
	return b
}
