package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/wikitermbase/wikiterm/internal/citation"
	"github.com/wikitermbase/wikiterm/internal/clipboard"
	"github.com/wikitermbase/wikiterm/internal/wikiterm"
)

var citeCmd = &cobra.Command{
	Use:   "cite <QID>",
	Short: "Print the wiki citation for a dictionary",
	Long: `Print the citation template for a dictionary given its Wikidata
identifier, optionally with a page number.

Examples:
  wikiterm cite Q12345
  wikiterm cite Q12345 --page 42
  wikiterm cite Q12345 -p 42 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

var (
	citePage int
	citeCopy bool
)

var qidPattern = regexp.MustCompile(`^Q[1-9][0-9]*$`)

func init() {
	rootCmd.AddCommand(citeCmd)
	citeCmd.Flags().IntVarP(&citePage, "page", "p", 0, "page number (0 = none)")
	citeCmd.Flags().BoolVarP(&citeCopy, "copy", "c", false, "also copy the citation to the clipboard")
}

func runCite(cmd *cobra.Command, args []string) error {
	qid := args[0]
	if !qidPattern.MatchString(qid) {
		return fmt.Errorf("invalid Wikidata identifier %q (expected e.g. Q12345)", qid)
	}
	if citePage < 0 {
		return fmt.Errorf("invalid page %d", citePage)
	}

	text, _ := citation.Format(wikiterm.Occurrence{
		DictionaryQID: qid,
		Page:          wikiterm.PageNumber(citePage),
	})
	fmt.Fprintln(cmd.OutOrStdout(), text)

	if citeCopy {
		if err := clipboard.Write(text); err != nil {
			return fmt.Errorf("copying citation: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
	}
	return nil
}
