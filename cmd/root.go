package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/waddle/internal/catalog"
	"github.com/abhisek/waddle/internal/config"
	"github.com/abhisek/waddle/internal/game"
	"github.com/abhisek/waddle/internal/mirror"
	"github.com/abhisek/waddle/internal/records"
	"github.com/abhisek/waddle/internal/store"
	"github.com/abhisek/waddle/internal/threat"
)

var rootCmd = &cobra.Command{
	Use:   "waddle",
	Short: "Threat-modeling quiz for the terminal",
	Long:  "Waddle: follow the data through a system and pick the mitigation for each threat on its way.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WADDLE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config, if any.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (which WADDLE_DB overrides), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Storage.DBPath != "" {
		return cfg.Storage.DBPath, store.EnsureDir(cfg.Storage.DBPath)
	}
	return store.DefaultDBPath()
}

// loadCatalog returns the configured catalog, or the built-in one.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// env bundles the long-lived dependencies shared by the commands.
type env struct {
	cfg    *config.Config
	dbPath string
	store  *store.Store
	book   *records.Book
	mirror *mirror.Client
	logger *slog.Logger
}

// openEnv opens the store and builds the book. Callers must Close it.
func openEnv(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*env, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	e := &env{cfg: cfg, dbPath: dbPath, store: st, logger: logger}

	opts := []records.Option{
		records.WithLogger(logger),
		records.WithCap(cfg.Leaderboard.Cap),
	}
	if cfg.Mirror.URL != "" {
		e.mirror = mirror.New(cfg.Mirror.URL,
			mirror.WithTimeout(cfg.Mirror.Timeout),
			mirror.WithLogger(logger),
		)
		opts = append(opts, records.WithMirror(e.mirror))
	}
	e.book = records.NewBook(st.KV(), opts...)

	logger.Debug("store opened", "path", dbPath, "mirror", cfg.Mirror.URL != "")
	return e, nil
}

// engine builds the game engine over the configured catalog.
func (e *env) engine() (*game.Engine, error) {
	cat, err := loadCatalog(e.cfg)
	if err != nil {
		return nil, err
	}
	return game.NewEngine(cat, threat.NewAssigner(cat, nil), e.cfg.Rules()), nil
}

// Close lets in-flight mirror posts finish within their timeout, then
// closes the store.
func (e *env) Close() error {
	if e.mirror != nil {
		e.mirror.Wait()
		e.mirror.Close()
	}
	return e.store.Close()
}
