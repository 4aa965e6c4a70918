package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/testlab/internal/catalog"
	"github.com/abhisek/testlab/internal/reference"
)

var hintCmd = &cobra.Command{
	Use:   "hint",
	Short: "Print the reference validator and run its test cases",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if code, _ := cmd.Flags().GetBool("code"); code {
			io.WriteString(out, reference.Source+"\n")
			fmt.Fprintln(out)
		}

		results := reference.Run(catalog.ReferenceCases())
		passed := 0
		for _, r := range results {
			fmt.Fprintln(out, r.Line())
			if r.Pass {
				passed++
			}
		}
		fmt.Fprintf(out, "\n%d/%d reference cases passed\n", passed, len(results))
	},
}

func init() {
	hintCmd.Flags().Bool("code", true, "Print the validator source before the run")
}
