// Package main provides the entry point for the popstack TUI.
//
// popstack stacks dialogs, drawers and popovers over a workspace and keeps a
// single dimming backdrop directly beneath the topmost one.
//
// Usage:
//
//	popstack [--config path] [--no-fade] [--no-mouse]
//	popstack config init|show
package main

import "github.com/riordanpawley/popstack/internal/cli"

var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
