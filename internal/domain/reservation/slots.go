package reservation

// GenerateSlots produces the ordered start times (minutes since midnight) for
// one day of service. A slot's full interval must fit before closing, so the
// last start is at most closeTime-intervalMinutes. When the open span is
// shorter than one interval the result is empty.
//
// Pure function of its inputs; "today" adjustments (raising the opening bound
// to the current time) belong to the availability service, not here.
func GenerateSlots(openTime, closeTime, intervalMinutes int) []int {
	if intervalMinutes <= 0 || openTime >= closeTime {
		return nil
	}

	var slots []int
	for cur := openTime; cur+intervalMinutes <= closeTime; cur += intervalMinutes {
		slots = append(slots, cur)
	}

	return slots
}
