package myanmar

import (
	"math"
	"sync"
)

// YearResolver returns the resolved classification of a Myanmar year.
type YearResolver func(year int) YearTypeInfo

// FromJulian converts a Julian Day to a Myanmar date.
func FromJulian(jd float64) Date {
	return fromJulian(jd, ResolveYear)
}

// ToJulian returns the JDN of a Myanmar date. Month 0 in a common year is read as Waso.
func ToJulian(year, month, day int) float64 {
	return toJulian(year, month, day, ResolveYear)
}

// YearOfJulian returns the Myanmar year whose solar span contains jd.
func YearOfJulian(jd float64) int {
	jdn := math.Floor(jd + 0.5)
	return int(math.Floor((jdn - 0.5 - Epoch) / SolarYear))
}

func fromJulian(jd float64, resolve YearResolver) Date {
	jdn := int(math.Floor(jd + 0.5))
	year := YearOfJulian(jd)
	info := resolve(year)
	// Days before Tagu 1 belong to the late months of the previous year.
	if jdn < info.Tagu1 {
		year--
		info = resolve(year)
	}

	yt := int(info.YearType)
	yl := info.Length()
	dd := jdn - info.Tagu1 + 1
	late := (dd - 1) / yl
	dd -= late * yl

	b := yt / 2
	c := 1 - (yt+1)/2
	// Shift the day count for the missing intercalary days of common years.
	a := (dd + 423) / 512
	m := int(math.Floor((float64(dd-b*a+c*a*30) + 29.26) / 29.544))
	e := (m + 12) / 16
	f := (m + 11) / 16
	day := dd - int(math.Floor(29.544*float64(m)-29.26)) - b*e + c*f*30
	m += f*3 - e*4 + 12*late

	t := info.YearType
	ml := MonthLength(m, t)
	return Date{
		Year:            year,
		Month:           m,
		Day:             day,
		MonthType:       monthTypeOf(m, t),
		YearType:        t,
		YearLength:      yl,
		MonthLength:     ml,
		MoonPhase:       moonPhaseOf(day, ml),
		FortnightDay:    fortnightDayOf(day),
		Weekday:         mod(jdn+2, 7),
		JulianDayNumber: jdn,
	}
}

func toJulian(year, month, day int, resolve YearResolver) float64 {
	info := resolve(year)
	yt := int(info.YearType)

	late := month / 13
	m := month%13 + late
	if m <= 0 && month != 0 {
		m = Waso
	}

	b := yt / 2
	c := 1 - (yt+1)/2
	m2 := m + 4 - ((m+15)/16)*4 + (m+12)/16
	dd := day + int(math.Floor(29.544*float64(m2)-29.26)) - c*((m2+11)/16)*30 + b*((m2+12)/16)
	yl := 354 + (1-c)*30 + b
	dd += late * yl
	return float64(dd + info.Tagu1 - 1)
}

// Converter performs Myanmar conversions with a memo of resolved years.
// The zero value is ready to use and safe for concurrent use.
type Converter struct {
	years sync.Map // int -> YearTypeInfo
}

// NewConverter returns an empty Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Year returns the resolved classification of a Myanmar year.
func (c *Converter) Year(year int) YearTypeInfo {
	if v, ok := c.years.Load(year); ok {
		return v.(YearTypeInfo)
	}
	info := ResolveYear(year)
	c.years.Store(year, info)
	return info
}

// FromJulian converts a Julian Day to a Myanmar date.
func (c *Converter) FromJulian(jd float64) Date {
	return fromJulian(jd, c.Year)
}

// ToJulian returns the JDN of a Myanmar date.
func (c *Converter) ToJulian(year, month, day int) float64 {
	return toJulian(year, month, day, c.Year)
}
