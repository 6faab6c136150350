package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wikitermbase/wikiterm/internal/aggregate"
	"github.com/wikitermbase/wikiterm/internal/citation"
	"github.com/wikitermbase/wikiterm/internal/lookup"
	"github.com/wikitermbase/wikiterm/internal/wikiterm"
	"golang.org/x/text/unicode/norm"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <term>",
	Short: "Search a term once and print the results",
	Long: `Search a term and print what the dictionaries say about it:
  - term groups with the number of dictionaries each appears in
    (or every occurrence with --raw)
  - dictionary name, page and Wikidata identifier per occurrence
  - the wiki citation for each occurrence
  - lemma, root and part of speech for Arabic terms

Example:
  wikiterm lookup telescope
  wikiterm lookup تلسكوب --raw`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

var (
	lookupRaw     bool
	lookupNoMorph bool
)

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().BoolVar(&lookupRaw, "raw", false, "print a flat list of occurrences")
	lookupCmd.Flags().BoolVar(&lookupNoMorph, "no-morph", false, "skip morphological analysis")
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closeLog, err := cliLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	mode, err := lookup.ParseMode(cfg.Search.Mode)
	if err != nil {
		return err
	}
	if lookupRaw {
		mode = lookup.ModeRaw
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	client := newClient(cfg, logger)
	query := norm.NFC.String(strings.TrimSpace(strings.Join(args, " ")))
	if query == "" {
		return fmt.Errorf("empty query")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Looking up: %s\n\n", query)

	if cfg.Search.Morphology && !lookupNoMorph && wikiterm.ContainsArabic(query) {
		analysis, err := client.Analyze(ctx, query)
		if err != nil {
			logger.Warn("morph analysis failed", "q", query, "error", err)
		} else {
			printMorphology(out, analysis)
		}
	}

	if mode == lookup.ModeRaw {
		results, err := client.Search(ctx, query)
		if err != nil {
			return fmt.Errorf("%s: %w", lookup.ErrSearchFailedRaw, err)
		}
		if len(results) == 0 {
			fmt.Fprintf(out, "لا توجد نتائج للبحث عن \"%s\"\n", query)
			return nil
		}
		printOccurrences(out, results, true)
		return nil
	}

	groups, err := client.SearchAggregated(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: %w", lookup.ErrSearchFailed, err)
	}
	if len(groups) == 0 {
		fmt.Fprintf(out, "لا توجد نتائج للبحث عن \"%s\"\n", query)
		return nil
	}
	printGroups(out, aggregate.Aggregate(groups))
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printMorphology(w io.Writer, m *wikiterm.MorphAnalysis) {
	if !m.Found() {
		return
	}
	fmt.Fprintf(w, "Lemma: %s\n", m.Lemma)
	if m.Root != "" {
		fmt.Fprintf(w, "  Root: %s\n", m.Root)
	}
	if m.POS != "" {
		fmt.Fprintf(w, "  POS:  %s\n", m.POS)
	}
	fmt.Fprintf(w, "  %s\n\n", m.LemmaURL())
}

func printGroups(w io.Writer, groups []aggregate.Group) {
	for _, g := range groups {
		marker := " "
		if g.TopResult {
			marker = "★"
		}
		fmt.Fprintf(w, "%s %s\n", marker, formatTerms(g.Arabic, g.English, g.French))
		fmt.Fprintf(w, "  %s\n", g.CountLabel())
		printOccurrences(w, g.Occurrences, false)
		fmt.Fprintln(w)
	}
}

func printOccurrences(w io.Writer, occs []wikiterm.Occurrence, withTerms bool) {
	for _, occ := range occs {
		if withTerms {
			fmt.Fprintf(w, "%s\n", formatTerms(occ.Arabic, occ.English, occ.French))
		}
		fmt.Fprintf(w, "    %s\n", occ.InfoLine())
		if desc, _ := occ.ShortDescription(); desc != "" {
			fmt.Fprintf(w, "      %s\n", desc)
		}
		if c, ok := citation.Format(occ); ok {
			fmt.Fprintf(w, "      %s\n", c)
		}
		if withTerms {
			fmt.Fprintln(w)
		}
	}
}

func formatTerms(arabic, english, french string) string {
	parts := []string{arabic}
	for _, f := range []string{english, french} {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " | ")
}
