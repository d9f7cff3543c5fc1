// main package for strlift command-line tool
// Package main is the entry point for the strlift CLI.
package main

import "strlift.dev/pkg/strlift/cmd"

func main() {
	cmd.Execute()
}
