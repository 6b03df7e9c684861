package myanmar

// Historical corrections to the computed calendar, kept apart from the
// era formulas so each entry can be audited against published calendars.

// watatFlips lists years whose computed watat decision is inverted.
var watatFlips = map[int]struct{}{
	1263: {},
	1264: {},
	1344: {},
	1345: {},
}

// fullMoonOffsets shifts the full moon of second Waso, in days.
var fullMoonOffsets = map[int]float64{
	1234: 1,
	1261: -1,
}

func watatFlipped(year int) bool {
	_, ok := watatFlips[year]
	return ok
}

func fullMoonOffset(year int) float64 {
	return fullMoonOffsets[year]
}

// OverrideYears returns every year carrying a historical correction, ascending.
func OverrideYears() []int {
	return []int{1234, 1261, 1263, 1264, 1344, 1345}
}
