package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/testlab/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent level attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		verbose, _ := cmd.Flags().GetBool("verbose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.EventRepo().QueryAttempts(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No attempts recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-19s  %-5s  %-14s  %-7s  %s\n", "Timestamp", "Level", "Outcome", "Score", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 64))
		for _, a := range attempts {
			fmt.Fprintf(out, "%-19s  %-5d  %-14s  %-7s  %d%%\n",
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				a.Level,
				truncate(a.Outcome, 14),
				fmt.Sprintf("%d/%d", a.Score, a.Total),
				a.Accuracy,
			)
			if verbose && a.Detail != "" {
				for _, line := range strings.Split(a.Detail, "\n") {
					fmt.Fprintln(out, "    "+line)
				}
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().BoolP("verbose", "v", false, "Show attempt details")
}
