package timeutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seatwise/table-reserve/internal/apperr"
)

// MinutesPerDay is the size of the minute-of-day domain [0, 1440).
const MinutesPerDay = 24 * 60

// ParseClock converts an "HH:mm" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, apperr.New(apperr.CodeInvalidTimeFormat)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, apperr.New(apperr.CodeInvalidTimeFormat)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, apperr.New(apperr.CodeInvalidTimeFormat)
	}

	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatDisplay renders minutes since midnight as "h:mm AM/PM".
func FormatDisplay(minutes int) string {
	hour := minutes / 60
	minute := minutes % 60

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}

	h := hour % 12
	if h == 0 {
		h = 12
	}

	return fmt.Sprintf("%d:%02d %s", h, minute, period)
}

// RoundDown floors to the nearest lower interval boundary relative to midnight.
func RoundDown(minutes, interval int) int {
	if interval <= 0 {
		return minutes
	}
	return minutes - minutes%interval
}

// RoundUp raises to the next interval boundary. Values already on a boundary
// are returned unchanged.
func RoundUp(minutes, interval int) int {
	if interval <= 0 {
		return minutes
	}
	if rem := minutes % interval; rem != 0 {
		return minutes + interval - rem
	}
	return minutes
}

// MinutesBetween returns the signed distance b-a in minutes.
func MinutesBetween(a, b int) int {
	return b - a
}
