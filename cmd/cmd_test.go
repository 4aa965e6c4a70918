package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/testlab/internal/catalog"
	"github.com/abhisek/testlab/internal/progress"
	"github.com/abhisek/testlab/internal/reference"
	"github.com/abhisek/testlab/internal/store"
)

// execute runs the root command with args and returns its output. Flags
// are reset first because the command tree is package-global.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func seedProgress(t *testing.T, dbPath string, snap progress.Snapshot) {
	t.Helper()
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()
	progress.NewKVStore(s.ProgressRepo(), nil).Save(context.Background(), snap)
}

func TestClassifyDefaultRule(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"10", "Valid"},
		{"0", "Boundary"},
		{"20", "Boundary"},
		{"21", "Invalid"},
		{"ten", "Erroneous"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			out, err := execute(t, "", "classify", tt.value)
			require.NoError(t, err)
			assert.Contains(t, out, "is "+tt.want)
			assert.Contains(t, out, "from 0 to 20")
		})
	}
}

func TestClassifyCustomRules(t *testing.T) {
	out, err := execute(t, "", "classify", "--digits", "4", "1234")
	require.NoError(t, err)
	assert.Contains(t, out, "is Valid (4 digit number)")

	out, err = execute(t, "", "classify", "--digits", "4", "12a4")
	require.NoError(t, err)
	assert.Contains(t, out, "is Erroneous")

	out, err = execute(t, "", "classify", "--min", "1", "--max", "5", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "is Invalid")
}

func TestClassifyRejectsConflictingFlags(t *testing.T) {
	_, err := execute(t, "", "classify", "--digits", "4", "--min", "1", "12")
	assert.Error(t, err)

	_, err = execute(t, "", "classify", "--min", "9", "--max", "1", "5")
	assert.Error(t, err)
}

func TestHintRunsReferenceCases(t *testing.T) {
	out, err := execute(t, "", "hint")
	require.NoError(t, err)
	assert.Contains(t, out, "func ValidateJobsPerMonth")
	assert.Contains(t, out, reference.Source, "source is printed verbatim")
	assert.Contains(t, out, "%d jobs scheduled")
	assert.Contains(t, out, "TC-JOBS-01 (boundary): ✅ PASS")
	assert.Contains(t, out, "6/6 reference cases passed")

	out, err = execute(t, "", "hint", "--code=false")
	require.NoError(t, err)
	assert.NotContains(t, out, "func ValidateJobsPerMonth")
}

func TestStatsAndReset(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lab.db")
	seedProgress(t, db, progress.Snapshot{XP: 130, Streak: 2, Achievements: []string{catalog.FirstCorrect, "retired_badge"}})

	out, err := execute(t, "", "--db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "XP:      130 (30/100 into level)")
	assert.Contains(t, out, "Level:   2")
	assert.Contains(t, out, "Streak:  2")
	assert.Contains(t, out, "Achievements (1 of 9)")
	assert.Contains(t, out, "✓ ")

	out, err = execute(t, "n\n", "--db", db, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = execute(t, "", "--db", db, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset progress.")

	out, err = execute(t, "", "--db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "XP:      0")
	assert.Contains(t, out, "Achievements (0 of 9)")
}

func TestHistoryListsAttempts(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lab.db")

	out, err := execute(t, "", "--db", db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No attempts recorded yet.")

	s, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendAttempt(context.Background(), store.AttemptEventData{
		SessionID: "s1", Level: 2, Outcome: "great", Score: 5, Total: 6, Accuracy: 83, Detail: "row 3: boundary",
	}))
	require.NoError(t, s.Close())

	out, err = execute(t, "", "--db", db, "history", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "great")
	assert.Contains(t, out, "5/6")
	assert.Contains(t, out, "83%")
	assert.Contains(t, out, "    row 3: boundary")
}

func TestMemoryModeHasNoStore(t *testing.T) {
	_, err := execute(t, "", "--db", "memory", "stats")
	assert.ErrorContains(t, err, "memory")
}

func TestPlayRejectsUnknownLevel(t *testing.T) {
	_, err := execute(t, "", "play", "--level", "4")
	assert.ErrorContains(t, err, "--level")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "testlab "))
}
