// Package onboarding defines the escalating reminder schedule per stage.
package onboarding

import "time"

// CompletionStage is the stage at which onboarding counts as complete.
const CompletionStage = 2

// ValidStage reports whether stage is within 0..CompletionStage.
func ValidStage(stage int) bool {
	return stage >= 0 && stage <= CompletionStage
}

// Schedule returns the reminder offsets from account creation for a stage,
// indexed by reminder level. ok is false for stages without reminders.
//
// Stage 2 lists 24h twice, so its levels 0 and 1 fall due in the same scan.
func Schedule(stage int) (offsets []time.Duration, ok bool) {
	switch stage {
	case 0:
		return hours(24, 72, 120), true
	case 1:
		return hours(12, 24), true
	case 2:
		return hours(24, 24, 72, 120), true
	}
	return nil, false
}

// DueLevels returns, in ascending order, the levels of stage whose offset
// has elapsed at now for an account created at createdAt.
func DueLevels(createdAt time.Time, stage int, now time.Time) []int {
	offsets, ok := Schedule(stage)
	if !ok {
		return nil
	}
	var due []int
	for level, off := range offsets {
		if !now.Before(createdAt.Add(off)) {
			due = append(due, level)
		}
	}
	return due
}

func hours(h ...int) []time.Duration {
	out := make([]time.Duration, len(h))
	for i, v := range h {
		out[i] = time.Duration(v) * time.Hour
	}
	return out
}
