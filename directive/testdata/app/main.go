package main

import "github.com/spf13/cobra"

// Root is the command tree loaded by the package loader tests.
var Root = &cobra.Command{
	Use:   "app",
	Short: "Sample application.",
	Run:   func(*cobra.Command, []string) {},
}

// NotACommand is exported but is not a command.
var NotACommand = "not a command"

var root = Root

func main() {
	_ = root.Execute()
}
