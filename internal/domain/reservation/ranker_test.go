package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func slotsAt(times ...int) []SlotAvailability {
	out := make([]SlotAvailability, 0, len(times))
	for _, tm := range times {
		out = append(out, NewSlotAvailability(tm, 40, 10, 0, 0, 2))
	}
	return out
}

func rankedTimes(slots []SlotAvailability) []int {
	out := make([]int, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time)
	}
	return out
}

func TestRank(t *testing.T) {
	t.Run("closest around dinner time", func(t *testing.T) {
		// 16:30 17:30 18:00 18:30 20:00, target 18:00
		got := Rank(slotsAt(990, 1050, 1080, 1110, 1200), 1080, 3)

		// 17:30 counts double (60 before beats 120 after), output chronological
		assert.Equal(t, []int{1050, 1080, 1110}, rankedTimes(got))
	})

	t.Run("before penalty steers later", func(t *testing.T) {
		// 17:30 and 18:30 are both 30 minutes away from 18:00, but the
		// earlier one is penalized
		got := Rank(slotsAt(1050, 1110), 1080, 1)
		assert.Equal(t, []int{1110}, rankedTimes(got))
	})

	t.Run("equal penalized distance prefers earlier", func(t *testing.T) {
		// 17:30 is 30*2=60 before, 19:00 is 60 after
		got := Rank(slotsAt(1050, 1140), 1080, 1)
		assert.Equal(t, []int{1050}, rankedTimes(got))
	})

	t.Run("exact match always first pick", func(t *testing.T) {
		got := Rank(slotsAt(990, 1080, 1200), 1080, 1)
		assert.Equal(t, []int{1080}, rankedTimes(got))
	})

	t.Run("fewer slots than count", func(t *testing.T) {
		got := Rank(slotsAt(1050, 1110), 1080, 5)
		assert.Equal(t, []int{1050, 1110}, rankedTimes(got))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Rank(nil, 1080, 3))
		assert.Empty(t, Rank(slotsAt(), 1080, 3))
	})

	t.Run("non positive count", func(t *testing.T) {
		assert.Empty(t, Rank(slotsAt(1050, 1110), 1080, 0))
		assert.Empty(t, Rank(slotsAt(1050, 1110), 1080, -1))
	})

	t.Run("result is chronological regardless of distance order", func(t *testing.T) {
		got := Rank(slotsAt(600, 900, 1080, 1260, 1350), 1080, 4)

		times := rankedTimes(got)
		for i := 1; i < len(times); i++ {
			assert.Less(t, times[i-1], times[i])
		}
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		in := slotsAt(1200, 990, 1080)
		_ = Rank(in, 1080, 2)
		assert.Equal(t, []int{1200, 990, 1080}, rankedTimes(in))
	})
}
