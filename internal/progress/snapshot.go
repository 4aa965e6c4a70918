package progress

import (
	"encoding/json"
	"math"
)

// StorageKey is the durable key the progress document is stored under.
const StorageKey = "testLabProgress"

// Snapshot is the persisted form of the learner's progress.
type Snapshot struct {
	XP           int      `json:"xp"`
	Level        int      `json:"level"`
	Streak       int      `json:"streak"`
	Achievements []string `json:"achievements"`
}

// DefaultSnapshot returns the state of a brand new learner.
func DefaultSnapshot() Snapshot {
	return Snapshot{Level: 1, Achievements: []string{}}
}

// LevelFor derives the level for an experience total.
func LevelFor(xp int) int {
	return xp/100 + 1
}

// DecodeSnapshot parses a stored progress document. Missing or malformed
// fields fall back to their defaults one at a time; a document that is not
// a JSON object yields the full default snapshot. Level is always derived
// from XP. Achievement ids are kept even when the catalog no longer knows
// them, so a renamed id is not lost; empty ids and duplicates are dropped.
func DecodeSnapshot(raw []byte) Snapshot {
	snap := DefaultSnapshot()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return snap
	}

	if v, ok := decodeCount(fields["xp"]); ok {
		snap.XP = v
	}
	if v, ok := decodeCount(fields["streak"]); ok {
		snap.Streak = v
	}
	snap.Level = LevelFor(snap.XP)

	var ids []json.RawMessage
	if err := json.Unmarshal(fields["achievements"], &ids); err == nil {
		seen := make(map[string]bool, len(ids))
		for _, r := range ids {
			var id string
			if json.Unmarshal(r, &id) != nil || id == "" || seen[id] {
				continue
			}
			seen[id] = true
			snap.Achievements = append(snap.Achievements, id)
		}
	}

	return snap
}

// decodeCount reads a non-negative whole number.
func decodeCount(raw json.RawMessage) (int, bool) {
	if raw == nil {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// Encode serialises the snapshot for storage.
func (s Snapshot) Encode() ([]byte, error) {
	if s.Achievements == nil {
		s.Achievements = []string{}
	}
	return json.Marshal(s)
}
