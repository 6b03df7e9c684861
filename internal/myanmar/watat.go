// Package myanmar implements the Myanmar lunisolar calendar: watat (intercalation)
// resolution and the closed-form conversion between Julian Day Numbers and Myanmar dates.
//
// All functions are pure. The Converter type adds a concurrency-safe memo of per-year
// results; it never changes what the package-level functions return.
package myanmar

import "math"

// Astronomical constants of the Thandeikta reckoning.
const (
	// SolarYear is the length of a solar year in days.
	SolarYear = 1577917828.0 / 4320000.0
	// LunarMonth is the length of a synodic month in days.
	LunarMonth = 1577917828.0 / 53433336.0
	// Epoch is the Julian Day of the beginning of Myanmar Era 0.
	Epoch = 1954168.050623
)

// Era boundaries (Myanmar years).
const (
	// ThirdEraStart is the first year of the era after independence.
	ThirdEraStart = 1312
	// SecondEraStart is the first year of the era after the 1853 reform.
	// Earlier years decide watat by the 19-year cycle.
	SecondEraStart = 1217
)

// Accuracy window of the conversion.
const (
	MinYear        = 2
	MaxYear        = 1500
	MinWesternYear = 640
	MaxWesternYear = 2140
)

// YearType classifies a Myanmar year by its intercalation.
type YearType int

const (
	// Common years have 12 months and 354 days.
	Common YearType = iota
	// LittleWatat years insert a 30-day First Waso and have 384 days.
	LittleWatat
	// BigWatat years insert First Waso and an extra day in Nayon, 385 days.
	BigWatat
)

var yearTypeNames = [...]string{"common", "little watat", "big watat"}

func (t YearType) String() string {
	if t < Common || t > BigWatat {
		return "unknown"
	}
	return yearTypeNames[t]
}

// Length returns the number of days in a year of this type.
func (t YearType) Length() int {
	n := int(t)
	return 354 + (1-1/(n+1))*30 + n/2
}

// IsWatat reports whether the year has an intercalary month.
func (t YearType) IsWatat() bool {
	return t != Common
}

// WatatInfo is the raw per-year classification before the neighbouring years are consulted.
type WatatInfo struct {
	// Watat is true when the year inserts a month.
	Watat bool
	// FullMoon is the JDN of the full moon of second Waso.
	FullMoon int
}

// YearTypeInfo is the resolved classification of a Myanmar year.
type YearTypeInfo struct {
	YearType YearType
	// AnchorJDN is the full moon day of (second) Waso.
	AnchorJDN int
	// Tagu1 is the JDN of the first day of Tagu.
	Tagu1 int
	// RoundingError is set when the full-moon gap to the previous watat year was
	// neither 30 nor 31 days. The year then defaults to LittleWatat.
	RoundingError bool
}

// Length returns the number of days in the year.
func (i YearTypeInfo) Length() int {
	return i.YearType.Length()
}

// era groups the calibration constants of one historical era.
type era struct {
	watatOff  float64 // offset applied to the computed full moon
	monthsNum float64 // intercalary month number used by the excess-day threshold
	metonic   bool    // the 19-year cycle decides watat
}

// Years before ThirdEraStart share one set of constants. Late in the metonic
// era the cycle drifts from the full moons, and ResolveYear flags the years
// whose gap to the previous watat year is neither 30 nor 31 days.
func eraOf(year int) era {
	if year >= ThirdEraStart {
		return era{watatOff: -0.5, monthsNum: 8}
	}
	return era{watatOff: -1, monthsNum: 4, metonic: year < SecondEraStart}
}

// CheckWatat classifies a single Myanmar year without looking at its neighbours.
func CheckWatat(year int) WatatInfo {
	e := eraOf(year)
	// Evaluated in float64 at run time so rounding matches the reference tables.
	sy, lm := float64(SolarYear), float64(LunarMonth)
	wo := e.watatOff + fullMoonOffset(year)

	// Threshold to adjust the excess days.
	ta := (sy/12 - lm) * (12 - e.monthsNum)
	// Excess days of the solar year over whole lunar months.
	ed := math.Mod(sy*float64(year+3739), lm)
	if ed < ta {
		ed += lm
	}

	fm := int(math.Floor(sy*float64(year) + Epoch - ed + 4.5*lm + wo + 0.5))

	var watat bool
	if e.metonic {
		watat = mod(year*7+2, 19) >= 12
	} else {
		tw := lm - (sy/12-lm)*e.monthsNum
		watat = ed >= tw
	}

	if watatFlipped(year) {
		watat = !watat
	}

	return WatatInfo{Watat: watat, FullMoon: fm}
}

// ResolveYear determines the year type and the first day of Tagu of a Myanmar year.
func ResolveYear(year int) YearTypeInfo {
	cur := CheckWatat(year)

	// Walk back to the most recent watat year, at most three years.
	yd := 0
	var prev WatatInfo
	for {
		yd++
		prev = CheckWatat(year - yd)
		if prev.Watat || yd >= 3 {
			break
		}
	}

	info := YearTypeInfo{Tagu1: prev.FullMoon + 354*yd - 102}
	if !cur.Watat {
		info.YearType = Common
		info.AnchorJDN = prev.FullMoon + 354*yd
		return info
	}

	info.AnchorJDN = cur.FullMoon
	switch mod(cur.FullMoon-prev.FullMoon, 354) {
	case 30:
		info.YearType = LittleWatat
	case 31:
		info.YearType = BigWatat
	default:
		info.YearType = LittleWatat
		info.RoundingError = true
	}
	return info
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
