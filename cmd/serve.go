package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/waddle/internal/api"
	"github.com/abhisek/waddle/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the session collection endpoint",
	Long:  "Serve the HTTP endpoint that game clients mirror finished sessions to.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Server.Port = port
		}
		level, _ := cfg.Log.SlogLevel()
		logger := logging.New(os.Stdout, level)

		// The collector stores what it receives and never forwards it.
		cfg.Mirror.URL = ""

		e, err := openEnv(cmd, cfg, logger)
		if err != nil {
			return err
		}
		defer e.Close()

		server := api.NewServer(e.book, logger, cfg.Leaderboard.Cap)
		httpServer := &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      server.Router(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("HTTP server starting", "addr", httpServer.Addr, "db", e.dbPath)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-quit:
		}

		logger.Info("shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		}

		logger.Info("waddle server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "Port to listen on (default from config)")
}
