package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/testlab/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify VALUE",
	Short: "Classify a value as valid, invalid, boundary or erroneous",
	Long: `Classify a value against a field rule. The default rule is the
jobs-per-month range 0-20. Use --min/--max for another range or --digits
for a fixed-length code.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rule, err := ruleFromFlags(cmd)
		if err != nil {
			return err
		}
		kind := rule.Classify(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%q is %s (%s)\n", args[0], kind.DisplayName(), rule.Describe())
		return nil
	},
}

func ruleFromFlags(cmd *cobra.Command) (classify.Rule, error) {
	digits, _ := cmd.Flags().GetInt("digits")
	rangeSet := cmd.Flags().Changed("min") || cmd.Flags().Changed("max")
	if cmd.Flags().Changed("digits") {
		if rangeSet {
			return nil, fmt.Errorf("--digits cannot be combined with --min/--max")
		}
		if digits < 1 {
			return nil, fmt.Errorf("--digits must be at least 1")
		}
		return classify.DigitsRule{Count: digits}, nil
	}
	if !rangeSet {
		return classify.JobsPerMonth, nil
	}
	lo, _ := cmd.Flags().GetInt("min")
	hi, _ := cmd.Flags().GetInt("max")
	if lo > hi {
		return nil, fmt.Errorf("--min %d is greater than --max %d", lo, hi)
	}
	return classify.RangeRule{Min: lo, Max: hi}, nil
}

func init() {
	classifyCmd.Flags().Int("min", classify.JobsPerMonth.Min, "Smallest accepted value")
	classifyCmd.Flags().Int("max", classify.JobsPerMonth.Max, "Largest accepted value")
	classifyCmd.Flags().Int("digits", 0, "Accept exactly this many digits instead of a range")
}
