package domain

// ResolvePosition returns the zero-based index of the first exact match of
// location in the ordered stop sequence. Matching is case-sensitive; callers
// normalize names before calling.
func ResolvePosition(stops []string, location string) (int, bool) {
	for i, s := range stops {
		if s == location {
			return i, true
		}
	}
	return 0, false
}
