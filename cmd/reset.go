package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/waddle/internal/logging"
	"github.com/abhisek/waddle/internal/records"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe stored sessions and scores",
	Long:  "Wipe the session log and leaderboard. With --all the player name is wiped too. This cannot be undone.",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		yes, _ := cmd.Flags().GetBool("yes")

		scope := records.ScopeSessionsAndScores
		what := "all sessions and scores"
		if all {
			scope = records.ScopeEverything
			what = "all sessions, scores and the player name"
		}

		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "This permanently deletes %s. Continue? [y/N] ", what)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		e, err := openEnv(cmd, cfg, logging.Discard())
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.book.Wipe(cmd.Context(), scope); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", what)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also wipe the player name")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
