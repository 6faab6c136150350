// Package cmd contains all CLI commands for the wikiterm tool.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wikitermbase/wikiterm/internal/api"
	"github.com/wikitermbase/wikiterm/internal/clipboard"
	"github.com/wikitermbase/wikiterm/internal/config"
	"github.com/wikitermbase/wikiterm/internal/logging"
	"github.com/wikitermbase/wikiterm/internal/lookup"
	"github.com/wikitermbase/wikiterm/internal/tui"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wikiterm",
	Short: "Search Arabic scientific terms across dictionaries",
	Long: `wikiterm searches the WikiTermBase collection of Arabic technical
dictionaries as you type.

Results can be shown two ways:
  - aggregated: occurrences grouped by normalized term, with the number
    of dictionaries each term appears in
  - raw: every dictionary occurrence in a flat list

Arabic queries are also sent to a morphological analyzer, and every
occurrence with a Wikidata identifier can be copied as a wiki citation.

Running 'wikiterm' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(nil)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/wikiterm)")
	flags.String("base-url", "", "term base URL (default "+api.DefaultBaseURL+")")
	flags.String("mode", "", "search mode: aggregated or raw")
	flags.Bool("verbose", false, "verbose output")

	viper.BindPFlag("api.base_url", flags.Lookup("base-url"))
	viper.BindPFlag("search.mode", flags.Lookup("mode"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
}

// initConfig reads in ENV variables and resolves the config directory.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("WIKITERM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

func getConfigPath() string {
	return filepath.Join(getConfigDir(), config.FileName)
}

// loadSettings loads the config file and applies flag and environment
// overrides on top of it.
func loadSettings() (*config.Config, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, err
	}

	if v := viper.GetString("api.base_url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := viper.GetString("search.mode"); v != "" {
		cfg.Search.Mode = v
	}
	if viper.GetBool("verbose") {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// cliLogger returns the logger for one-shot commands. Verbose output goes to
// stderr unless a log file is configured.
func cliLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	if cfg.Log.File == "" && viper.GetBool("verbose") {
		return logging.New(os.Stderr, slog.LevelDebug), func() error { return nil }, nil
	}
	return logging.Open(cfg.Log.File, cfg.Log.Level)
}

func newClient(cfg *config.Config, logger *slog.Logger) *api.Client {
	return api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
}

// runTUI launches the TUI. A nil mode uses the configured one.
func runTUI(mode *lookup.Mode) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := lookup.ParseMode(cfg.Search.Mode)
	if err != nil {
		return err
	}
	if mode != nil {
		m = *mode
	}

	ctrl := lookup.New(newClient(cfg, logger), lookup.Options{
		Mode:       m,
		Debounce:   cfg.Search.Debounce,
		Morphology: cfg.Search.Morphology,
		Logger:     logger,
	})
	defer ctrl.Close()

	logger.Info("starting tui", slog.String("mode", m.String()), slog.String("base_url", cfg.API.BaseURL))

	p := tea.NewProgram(
		tui.NewApp(ctrl, clipboard.Default, cfg, getConfigPath()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
