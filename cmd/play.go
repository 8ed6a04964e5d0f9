package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/waddle/internal/app"
	"github.com/abhisek/waddle/internal/logging"
	"github.com/abhisek/waddle/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	playCmd.Flags().String("export-dir", "", "Directory for exported session CSV files (default: current directory)")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, _ := cfg.Log.SlogLevel()

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	// The TUI owns stdout, so logs go to a file next to the database.
	logPath := cfg.Log.File
	if logPath == "" {
		logPath = filepath.Join(store.DataDir(dbPath), "waddle.log")
	}
	logger, closer, err := logging.OpenFile(logPath, level)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	e, err := openEnv(cmd, cfg, logger)
	if err != nil {
		return err
	}
	defer e.Close()

	engine, err := e.engine()
	if err != nil {
		return err
	}

	exportDir, _ := cmd.Flags().GetString("export-dir")
	if exportDir == "" {
		exportDir = "."
	}

	return app.Run(app.Options{
		Engine:    engine,
		Book:      e.book,
		Logger:    logger,
		ExportDir: exportDir,
		TopN:      cfg.Leaderboard.Top,
	})
}
