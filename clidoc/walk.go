package clidoc

import (
	"reflect"
	"sort"
)

type subcommand struct {
	name string
	key  string
	cmd  Command
}

// subcommands lists the children of the command in ctx, sorted by name.
// Eagerly populated groups are read directly; lazy groups are listed and
// each listed name resolved.
func subcommands(ctx *Context) ([]subcommand, error) {
	var children []subcommand
	if g, ok := ctx.Command.(Group); ok {
		for key, child := range g.Commands() {
			children = append(children, subcommand{name: childName(key, child), key: key, cmd: child})
		}
	}
	if len(children) == 0 {
		if lg, ok := ctx.Command.(LazyGroup); ok {
			for _, key := range lg.ListCommands(ctx) {
				child := lg.LookupCommand(ctx, key)
				if unresolved(child) {
					return nil, ContractError("%q lists the subcommand %q but does not resolve it", ctx.CommandPath(), key)
				}
				children = append(children, subcommand{name: childName(key, child), key: key, cmd: child})
			}
		}
	}
	sort.Slice(children, func(i, j int) bool {
		if children[i].name != children[j].name {
			return children[i].name < children[j].name
		}
		return children[i].key < children[j].key
	})
	return children, nil
}

// childName prefers the name a command declares and falls back to the name
// its parent lists it under.
func childName(key string, cmd Command) string {
	if name := cmd.Name(); name != "" {
		return name
	}
	return key
}

// unresolved reports whether a lookup returned no command, including a nil
// pointer held in a non-nil interface.
func unresolved(cmd Command) bool {
	if cmd == nil {
		return true
	}
	v := reflect.ValueOf(cmd)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
