package clidoc

import "strings"

// Context links a command to the name it is rendered under and to the
// context of its parent. Contexts are never modified after creation.
type Context struct {
	Command  Command
	InfoName string
	Parent   *Context
}

// NewContext creates the rendering context for cmd. An empty name is a
// configuration error: custom commands without a declared name must be
// named by the directive or by their parent's listing.
func NewContext(name string, cmd Command, parent *Context) (*Context, error) {
	if name == "" {
		if parent == nil {
			return nil, ConfigError(CodeMissingName, "a root command must have a name")
		}
		return nil, ConfigError(CodeMissingName, "a subcommand of %q has no name", parent.CommandPath())
	}
	return &Context{Command: cmd, InfoName: name, Parent: parent}, nil
}

// CommandPath returns the names from the root down to this command, joined
// by spaces.
func (c *Context) CommandPath() string {
	return strings.Join(c.Path(), " ")
}

// Path returns the names from the root down to this command.
func (c *Context) Path() []string {
	var names []string
	for cur := c; cur != nil; cur = cur.Parent {
		names = append(names, cur.InfoName)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

