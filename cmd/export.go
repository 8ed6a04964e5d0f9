package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/waddle/internal/logging"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session log as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		e, err := openEnv(cmd, cfg, logging.Discard())
		if err != nil {
			return err
		}
		defer e.Close()

		out, _ := cmd.Flags().GetString("output")
		var w io.Writer = cmd.OutOrStdout()
		if out != "" && out != "-" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			w = f
		}

		if err := e.book.WriteCSV(cmd.Context(), w); err != nil {
			return fmt.Errorf("export sessions: %w", err)
		}
		if out != "" && out != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported sessions to %s\n", out)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}
