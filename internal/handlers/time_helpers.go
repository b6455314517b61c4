package handlers

import (
	"time"

	"github.com/seatwise/table-reserve/internal/models"
	"github.com/seatwise/table-reserve/internal/timezone"
)

// Each branch carries its own timezone; every date in the API is interpreted
// in the branch's local day.

func locationFromBranch(branch *models.Branch) *time.Location {
	if branch != nil {
		return timezone.Location(branch.Timezone)
	}
	return timezone.Location("")
}

func parseDateInBranch(branch *models.Branch, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromBranch(branch),
	)
}
