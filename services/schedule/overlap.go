package schedule

import "time"

// erosion is trimmed from both ends of an existing interval before comparing,
// so a booking may start in the exact instant another one ends.
const erosion = time.Second

// Overlaps decides whether candidate collides with existing. Existing is eroded
// by one second on each side and compared with inclusive bounds. An existing
// interval shorter than two seconds never overlaps. Intervals owned by the same
// entity never conflict with each other.
func Overlaps(candidate, existing Interval) bool {
	if candidate.sameOwner(existing) {
		return false
	}

	eStart := existing.start.Add(erosion)
	eEnd := existing.end.Add(-erosion)
	if eStart.After(eEnd) {
		return false
	}

	cStart, cEnd := candidate.start, candidate.end
	return within(eStart, cStart, cEnd) ||
		within(eEnd, cStart, cEnd) ||
		within(cStart, eStart, eEnd) ||
		within(cEnd, eStart, eEnd)
}

// FirstOverlap returns the first interval in existing that collides with candidate.
func FirstOverlap(candidate Interval, existing []Interval) (Interval, bool) {
	for _, iv := range existing {
		if Overlaps(candidate, iv) {
			return iv, true
		}
	}
	return Interval{}, false
}

func within(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}
