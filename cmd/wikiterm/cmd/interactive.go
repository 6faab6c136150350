package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wikitermbase/wikiterm/internal/lookup"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch the interactive terminal UI.

Features:
  - Results update as you type, after a short pause
  - Arabic queries show their lemma, root and part of speech
  - Citation popup with one-key copy to the clipboard

Controls:
  ↓/Enter   Move from the input to the results
  Enter     Toggle a group or open a citation
  y         Copy citation
  Esc       Close popup / back / menu`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(nil)
	},
}

var rawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Launch the TUI with a flat list of every occurrence",
	Long: `Launch the interactive terminal UI in raw mode.

Raw mode lists every dictionary occurrence returned for the query instead of
grouping them by term. Long descriptions start collapsed; press d to expand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := lookup.ModeRaw
		return runTUI(&mode)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(rawCmd)
}
