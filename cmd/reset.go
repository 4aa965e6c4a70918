package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/testlab/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner progress",
	Long:  "Reset XP, level, streak and achievements. With --all the event history is deleted too.",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		yes, _ := cmd.Flags().GetBool("yes")

		what := "progress"
		if all {
			what = "progress and all recorded events"
		}
		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "This deletes %s. Continue? [y/N] ", what)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		if err := s.ProgressRepo().Delete(ctx, progress.StorageKey); err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		if all {
			if err := s.PurgeEvents(ctx); err != nil {
				return fmt.Errorf("purge events: %w", err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s.\n", what)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also delete XP, achievement, attempt and LLM events")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
