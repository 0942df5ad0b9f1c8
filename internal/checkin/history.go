package checkin

import (
	"slices"
)

// LatestEvent returns the most recent history entry, or nil for an empty
// history. The input is not modified. Entries with equal timestamps are
// ordered by ID so the answer does not depend on input order.
func LatestEvent(history []HistoryCheckIn) *HistoryCheckIn {
	if len(history) == 0 {
		return nil
	}

	sorted := slices.Clone(history)
	slices.SortStableFunc(sorted, func(a, b HistoryCheckIn) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})

	latest := sorted[0]
	return &latest
}
