package main

import (
	"fmt"
	"os"
)

// Version is reported by --version. Release builds set it with -ldflags.
var Version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "go-clidocs:", err)
		os.Exit(1)
	}
}
