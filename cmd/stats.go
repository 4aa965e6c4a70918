package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/testlab/internal/catalog"
	"github.com/abhisek/testlab/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show XP, level, streak and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		snap := progress.NewKVStore(s.ProgressRepo(), nil).Load(ctx)
		times, err := s.EventRepo().AchievementUnlockTimes(ctx)
		if err != nil {
			return fmt.Errorf("query achievements: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "XP:      %d (%d/100 into level)\n", snap.XP, snap.XP%100)
		fmt.Fprintf(out, "Level:   %d\n", progress.LevelFor(snap.XP))
		fmt.Fprintf(out, "Streak:  %d\n", snap.Streak)

		unlocked := make(map[string]bool, len(snap.Achievements))
		for _, id := range snap.Achievements {
			unlocked[id] = true
		}
		all := catalog.Achievements()
		earned := 0
		for _, a := range all {
			if unlocked[a.ID] {
				earned++
			}
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Achievements (%d of %d)\n", earned, len(all))
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, a := range all {
			mark := "  "
			when := ""
			if unlocked[a.ID] {
				mark = "✓ "
				if t, ok := times[a.ID]; ok {
					when = t.Local().Format("  2006-01-02")
				}
			}
			fmt.Fprintf(out, "%s%s %-24s %s%s\n", mark, a.Icon, a.Title, a.Description, when)
		}
		return nil
	},
}
