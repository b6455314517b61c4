package reservation

import (
	"sort"

	"github.com/seatwise/table-reserve/internal/timeutil"
)

// beforePenalty doubles the effective distance of slots earlier than the
// requested time, so a diner asking for 18:00 is steered toward 18:30 over
// 17:30.
const beforePenalty = 2

// Rank selects the count slots nearest to target and returns them in
// chronological order. Distances before the target are doubled; equal
// penalized distances prefer the earlier slot. Fewer than count slots returns
// all of them, zero slots returns an empty result.
func Rank(slots []SlotAvailability, target, count int) []SlotAvailability {
	if count <= 0 || len(slots) == 0 {
		return nil
	}

	ranked := make([]SlotAvailability, len(slots))
	copy(ranked, slots)

	sort.SliceStable(ranked, func(i, j int) bool {
		di := penalizedDistance(ranked[i].Time, target)
		dj := penalizedDistance(ranked[j].Time, target)
		if di != dj {
			return di < dj
		}
		return ranked[i].Time < ranked[j].Time
	})

	if len(ranked) > count {
		ranked = ranked[:count]
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Time < ranked[j].Time
	})

	return ranked
}

func penalizedDistance(slot, target int) int {
	d := timeutil.MinutesBetween(target, slot)
	if d < 0 {
		return -d * beforePenalty
	}
	return d
}
