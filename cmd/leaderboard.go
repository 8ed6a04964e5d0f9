package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/waddle/internal/logging"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the best scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		top, _ := cmd.Flags().GetInt("top")
		if top <= 0 {
			top = cfg.Leaderboard.Top
		}

		e, err := openEnv(cmd, cfg, logging.Discard())
		if err != nil {
			return err
		}
		defer e.Close()

		entries, err := e.book.Top(cmd.Context(), top)
		if err != nil {
			return fmt.Errorf("read leaderboard: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No scores yet.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%4s  %-24s  %5s  %5s  %s\n", "#", "Name", "Score", "Lives", "Date")
		fmt.Fprintln(w, strings.Repeat("─", 64))
		for i, s := range entries {
			name := s.Name
			if len(name) > 24 {
				name = name[:21] + "..."
			}
			fmt.Fprintf(w, "%4d  %-24s  %5d  %5d  %s\n",
				i+1, name, s.Score, s.Lives, s.Date.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().Int("top", 0, "Number of entries to show (default from config)")
}
