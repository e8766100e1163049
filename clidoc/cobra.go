package clidoc

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// SecondaryOptsAnnotation is the flag annotation listing the alternative
// spellings of a flag, such as the negated form of a boolean switch.
const SecondaryOptsAnnotation = "clidocs_secondary_opts"

// MarkSecondary records the secondary spellings of the flag called name.
func MarkSecondary(fs *pflag.FlagSet, name string, opts ...string) error {
	return fs.SetAnnotation(name, SecondaryOptsAnnotation, opts)
}

// Value interfaces a pflag.Value may implement to enrich its table entry.
// The flagtypes package provides implementations.
type (
	TypeNamer   interface{ TypeName() string }
	ChoiceValue interface{ Choices() []string }
	FormatValue interface{ Formats() []string }
	RangeValue  interface{ RangeBounds() (min, max string) }
)

type cobraCommand struct {
	cmd *cobra.Command
}

type cobraGroup struct {
	cobraCommand
}

// FromCobra adapts a cobra command tree. Commands with subcommands become a
// Group.
//
// The adapter reads the command's local flags, including the --help flag
// cobra adds on first execution, which is initialised here if needed.
func FromCobra(cmd *cobra.Command) Command {
	if cmd.HasSubCommands() {
		return cobraGroup{cobraCommand{cmd: cmd}}
	}
	return cobraCommand{cmd: cmd}
}

// CobraCommand returns the command wrapped by FromCobra.
func CobraCommand(cmd Command) (*cobra.Command, bool) {
	switch c := cmd.(type) {
	case cobraCommand:
		return c.cmd, true
	case cobraGroup:
		return c.cmd, true
	}
	return nil, false
}

func (c cobraCommand) Name() string      { return c.cmd.Name() }
func (c cobraCommand) Help() string      { return c.cmd.Long }
func (c cobraCommand) ShortHelp() string { return c.cmd.Short }

func (c cobraCommand) Hidden() bool {
	return c.cmd.Hidden || c.cmd.Deprecated != ""
}

func (c cobraCommand) Options() []Option {
	c.cmd.InitDefaultHelpFlag()
	var opts []Option
	c.cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		opts = append(opts, optionFromFlag(f))
	})
	return opts
}

func (c cobraCommand) UsagePieces(*Context) []string {
	c.cmd.InitDefaultHelpFlag()
	var pieces []string
	if fields := strings.Fields(c.cmd.Use); len(fields) > 1 {
		pieces = append(pieces, fields[1:]...)
	}
	if !c.cmd.DisableFlagsInUseLine && c.cmd.HasAvailableFlags() && !strings.Contains(c.cmd.Use, "[flags]") {
		pieces = append(pieces, "[flags]")
	}
	if c.cmd.HasAvailableSubCommands() {
		pieces = append(pieces, "[command]")
	}
	return pieces
}

// FormatOptions renders the local flags the way cobra's help does. Hidden
// flags are shown by formatting unhidden copies, never by touching the
// command's own flags.
func (c cobraCommand) FormatOptions(_ *Context, showHidden bool) string {
	c.cmd.InitDefaultHelpFlag()
	local := c.cmd.LocalFlags()
	fs := pflag.NewFlagSet(c.cmd.Name(), pflag.ContinueOnError)
	fs.SortFlags = local.SortFlags
	local.VisitAll(func(f *pflag.Flag) {
		dup := *f
		if showHidden {
			dup.Hidden = false
		}
		fs.AddFlag(&dup)
	})
	return "Flags:\n" + fs.FlagUsages()
}

func (g cobraGroup) Commands() map[string]Command {
	children := make(map[string]Command)
	for _, child := range g.cmd.Commands() {
		if isImplicitHelp(child) {
			continue
		}
		children[child.Name()] = FromCobra(child)
	}
	return children
}

// isImplicitHelp matches the help command cobra installs on its own: it is
// the only command cobra reports as unavailable while neither hidden nor
// deprecated and still runnable.
func isImplicitHelp(cmd *cobra.Command) bool {
	return cmd.Name() == "help" && cmd.Runnable() && !cmd.Hidden && cmd.Deprecated == "" && !cmd.IsAvailableCommand()
}

func optionFromFlag(f *pflag.Flag) Option {
	opt := Option{Hidden: f.Hidden}
	if f.Shorthand != "" && f.ShorthandDeprecated == "" {
		opt.Opts = append(opt.Opts, "-"+f.Shorthand)
	}
	opt.Opts = append(opt.Opts, "--"+f.Name)
	opt.SecondaryOpts = append(opt.SecondaryOpts, f.Annotations[SecondaryOptsAnnotation]...)
	_, opt.Help = pflag.UnquoteUsage(f)
	if req := f.Annotations[cobra.BashCompOneRequiredFlag]; len(req) > 0 && req[0] == "true" {
		opt.Required = true
	}
	if f.DefValue != "" && f.DefValue != "[]" {
		opt.Default, opt.HasDefault = f.DefValue, true
	}
	opt.Type = optionType(f.Value)
	return opt
}

func optionType(v pflag.Value) OptionType {
	t := OptionType{Name: v.Type(), Kind: KindScalar}
	if n, ok := v.(TypeNamer); ok {
		t.Name = n.TypeName()
	}
	switch tv := v.(type) {
	case ChoiceValue:
		t.Kind, t.Choices = KindChoice, tv.Choices()
	case FormatValue:
		t.Kind, t.Formats = KindDateTime, tv.Formats()
	case RangeValue:
		t.Kind = KindRange
		t.Min, t.Max = tv.RangeBounds()
	}
	return t
}
