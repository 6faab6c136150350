// Package main is the entry point for the wikiterm CLI.
package main

import (
	"os"

	"github.com/wikitermbase/wikiterm/cmd/wikiterm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
