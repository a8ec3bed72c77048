// Package main is the entry point for the BeppoFit CLI application.
package main

import (
	"beppofit/cli/cmd"
)

func main() {
	cmd.Execute()
}
