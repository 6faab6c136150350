package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wikitermbase/wikiterm/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize wikiterm configuration",
	Long: `Write a config.yaml with the default settings to your config directory:
  - api.base_url       term base to query
  - api.timeout        HTTP timeout
  - search.mode        aggregated or raw
  - search.debounce    pause before a search is sent
  - search.morphology  analyze Arabic queries
  - log.level, log.file

Flags and WIKITERM_* environment variables override the file.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := getConfigPath()

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit the file to point at another term base or change the search mode")
	fmt.Fprintln(out, "  2. Run 'wikiterm lookup <term>' to test a search")
	fmt.Fprintln(out, "  3. Run 'wikiterm' to search interactively")

	return nil
}
