package myanmar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDate is returned when a month or moon phase name cannot be resolved.
var ErrInvalidDate = errors.New("invalid myanmar date")

// Month numbers. Late Tagu and Late Kason follow Tabaung when the solar year
// runs past the lunar year.
const (
	FirstWaso  = 0
	Tagu       = 1
	Kason      = 2
	Nayon      = 3
	Waso       = 4
	Wagaung    = 5
	Tawthalin  = 6
	Thadingyut = 7
	Tazaungmon = 8
	Nadaw      = 9
	Pyatho     = 10
	Tabodwe    = 11
	Tabaung    = 12
	LateTagu   = 13
	LateKason  = 14
)

var monthNames = [...]string{
	"First Waso", "Tagu", "Kason", "Nayon", "Waso", "Wagaung", "Tawthalin",
	"Thadingyut", "Tazaungmon", "Nadaw", "Pyatho", "Tabodwe", "Tabaung",
	"Late Tagu", "Late Kason",
}

// MonthType distinguishes the intercalary month and the Waso that follows it.
type MonthType int

const (
	Regular MonthType = iota
	Intercalary
	SecondWaso
)

func (t MonthType) String() string {
	switch t {
	case Intercalary:
		return "intercalary"
	case SecondWaso:
		return "second waso"
	default:
		return "regular"
	}
}

// MoonPhase is the phase of the moon on a Myanmar day.
type MoonPhase int

const (
	Waxing MoonPhase = iota
	FullMoon
	Waning
	NewMoon
)

var moonPhaseNames = [...]string{"Waxing", "Full Moon", "Waning", "New Moon"}

func (p MoonPhase) String() string {
	if p < Waxing || p > NewMoon {
		return "Unknown"
	}
	return moonPhaseNames[p]
}

var weekdayNames = [...]string{"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// WeekdayName returns the English name of a weekday number, 0 for Saturday.
func WeekdayName(wd int) string {
	return weekdayNames[mod(wd, 7)]
}

// BuddhistEraOffset converts a Myanmar year to the Sasana year.
const BuddhistEraOffset = 1182

// Date is a day in the Myanmar calendar.
type Date struct {
	Year         int
	Month        int
	Day          int
	MonthType    MonthType
	YearType     YearType
	YearLength   int
	MonthLength  int
	MoonPhase    MoonPhase
	FortnightDay int
	// Weekday is 0 for Saturday through 6 for Friday.
	Weekday         int
	JulianDayNumber int
}

// IsLateMonth reports whether the date falls in Late Tagu or Late Kason.
func (d Date) IsLateMonth() bool {
	return d.Month > Tabaung
}

// SasanaYear returns the Buddhist Era year of the date. It turns over on the
// day after the full moon of Kason.
func (d Date) SasanaYear() int {
	sy := d.Year + BuddhistEraOffset
	switch {
	case d.Month == Tagu, d.Month == Kason && d.Day < 16:
		sy--
	case d.Month == LateKason && d.Day >= 16:
		sy++
	}
	return sy
}

// MonthName returns the English name of the date's month.
func (d Date) MonthName() string {
	return MonthName(d.Month, d.YearType)
}

// WeekdayName returns the English name of the date's weekday.
func (d Date) WeekdayName() string {
	return WeekdayName(d.Weekday)
}

// MonthName returns the English name of month m in a year of type t.
// In watat years Waso is reported as Second Waso.
func MonthName(m int, t YearType) string {
	if m < FirstWaso || m > LateKason {
		return ""
	}
	if m == Waso && t.IsWatat() {
		return "Second " + monthNames[Waso]
	}
	return monthNames[m]
}

// MonthLength returns the number of days in month m of a year of type t.
func MonthLength(m int, t YearType) int {
	n := 30 - m%2
	if m == Nayon {
		n += int(t) / 2
	}
	return n
}

// MonthNumber resolves an English month name, case-insensitively.
func MonthNumber(name string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "second waso" {
		return Waso, nil
	}
	for i, n := range monthNames {
		if strings.ToLower(n) == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown month %q", ErrInvalidDate, name)
}

// MoonPhaseNumber resolves an English moon phase name. "Dark Moon" is accepted for New Moon.
func MoonPhaseNumber(name string) (MoonPhase, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "waxing":
		return Waxing, nil
	case "full moon":
		return FullMoon, nil
	case "waning":
		return Waning, nil
	case "new moon", "dark moon":
		return NewMoon, nil
	}
	return 0, fmt.Errorf("%w: unknown moon phase %q", ErrInvalidDate, name)
}

// DayOfMonth returns the day of month for a moon phase and fortnight day.
func DayOfMonth(year, month int, phase MoonPhase, fortnightDay int) (int, error) {
	switch phase {
	case Waxing:
		return fortnightDay, nil
	case FullMoon:
		return 15, nil
	case Waning:
		return 15 + fortnightDay, nil
	case NewMoon:
		return MonthLength(month, ResolveYear(year).YearType), nil
	}
	return 0, fmt.Errorf("%w: moon phase %d", ErrInvalidDate, phase)
}

// JulianDayFromName returns the JDN of a date given by month name.
func JulianDayFromName(year int, monthName string, day int) (float64, error) {
	m, err := MonthNumber(monthName)
	if err != nil {
		return 0, err
	}
	return ToJulian(year, m, day), nil
}

func moonPhaseOf(day, monthLength int) MoonPhase {
	return MoonPhase((day+1)/16 + day/16 + day/monthLength)
}

func fortnightDayOf(day int) int {
	return day - 15*(day/16)
}

func monthTypeOf(month int, t YearType) MonthType {
	switch {
	case month == FirstWaso:
		return Intercalary
	case month == Waso && t.IsWatat():
		return SecondWaso
	default:
		return Regular
	}
}
