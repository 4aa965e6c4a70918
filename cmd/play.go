package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the lab, optionally at a given level",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")
		if level < 0 || level > 3 {
			return fmt.Errorf("--level must be 1, 2 or 3 (got %d)", level)
		}
		return runApp(cmd, level)
	},
}

func init() {
	playCmd.Flags().IntP("level", "l", 0, "Jump straight to level 1, 2 or 3")
}
