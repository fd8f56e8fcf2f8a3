//go:build !android

// Command gamehost runs a Lua-scripted 2D game on the desktop.
package main

import (
	"fmt"
	"os"

	"gamehost/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
