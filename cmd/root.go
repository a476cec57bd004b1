package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/numcraft/internal/catalog"
	"github.com/abhisek/numcraft/internal/config"
	"github.com/abhisek/numcraft/internal/logging"
	"github.com/abhisek/numcraft/internal/store"
)

// tuiAnnotation marks commands that take over the terminal. They log to a
// file beside the database instead of stderr.
const tuiAnnotation = "tui"

var (
	cfg      config.Config
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:               "numcraft",
	Short:             "Subtraction battle game for the terminal",
	Long:              "Numcraft: answer subtraction problems against the clock to defeat monsters, collect loot, and craft gear.",
	SilenceUsage:      true,
	Annotations:       map[string]string{tuiAnnotation: "true"},
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides NUMCRAFT_DB)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed; 0 picks one (overrides NUMCRAFT_SEED)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error (overrides NUMCRAFT_LOG_LEVEL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the environment, applies flag overrides and installs the
// logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if p, _ := flags.GetString("db"); p != "" {
		cfg.DB = p
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if l, _ := flags.GetString("log-level"); l != "" {
		if _, err := logging.ParseLevel(l); err != nil {
			return err
		}
		cfg.LogLevel = l
	}

	logPath := cfg.LogFile
	if logPath == "" && cmd.Annotations[tuiAnnotation] == "true" {
		dbPath, err := resolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		logPath = logging.PathBeside(dbPath)
	}
	closeFn, err := logging.Setup(logPath, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	closeLog = closeFn
	return nil
}

// resolveDBPath returns the database path from --db or NUMCRAFT_DB, then
// the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the database at the resolved path.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadCatalog returns the embedded catalog or the NUMCRAFT_CATALOG override.
func loadCatalog() (*catalog.Catalog, error) {
	if cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.LoadFile(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}
