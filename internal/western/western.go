// Package western converts between Julian Day Numbers and the hybrid
// Julian/Gregorian calendar used in the English-speaking world.
package western

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned by ParseDate for text that is not a date of the
// calendar system.
var ErrInvalidDate = errors.New("invalid western date")

// Years accepted by ParseDate.
const (
	MinParseYear = 1
	MaxParseYear = 9999
)

// CalendarSystem selects which Western reckoning is applied to a date.
type CalendarSystem int

const (
	// Auto uses the Julian calendar before GregorianStart and the Gregorian calendar from it.
	Auto CalendarSystem = iota
	// Gregorian applies the proleptic Gregorian calendar to every date.
	Gregorian
	// Julian applies the proleptic Julian calendar to every date.
	Julian
)

// GregorianStart is the Julian Day Number of 1752-09-14, the first Gregorian day
// of the British cutover.
const GregorianStart = 2361222

// CutoverYear is the Western year in which the British cutover happened.
const CutoverYear = 1752

const secondsPerDay = 86400

var calendarSystemNames = [...]string{"auto", "gregorian", "julian"}

func (cs CalendarSystem) String() string {
	if cs < Auto || cs > Julian {
		return "unknown"
	}
	return calendarSystemNames[cs]
}

// ParseCalendarSystem maps a configuration value to a CalendarSystem.
// Unknown values report false.
func ParseCalendarSystem(s string) (CalendarSystem, bool) {
	for i, name := range calendarSystemNames {
		if name == s {
			return CalendarSystem(i), true
		}
	}
	return Auto, false
}

// Date is a Western calendar date with an optional time of day.
type Date struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// Time returns the date as a UTC time.Time. Dates before the cutover are
// expressed with Julian month/day labels, which time.Time treats as Gregorian.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second, 0, time.UTC)
}

// ToJulian returns the Julian Day Number of noon on the given date.
func ToJulian(year, month, day int, cs CalendarSystem) float64 {
	a := floorDiv(14-month, 12)
	y := year + 4800 - a
	m := month + 12*a - 3
	base := day + floorDiv(153*m+2, 5) + 365*y + floorDiv(y, 4)

	gregorian := base - floorDiv(y, 100) + floorDiv(y, 400) - 32045
	julian := base - 32083

	switch cs {
	case Gregorian:
		return float64(gregorian)
	case Julian:
		return float64(julian)
	default:
		if gregorian >= GregorianStart {
			return float64(gregorian)
		}
		// Dates dropped by the cutover (1752-09-03..13) collapse onto its first day.
		return float64(min(julian, GregorianStart))
	}
}

// ParseDate reads a YYYY-MM-DD date and checks that the day exists under cs.
// Under Auto, 1700-02-29 is a valid Julian leap day and 1752-09-05 fell in the
// cutover gap.
func ParseDate(s string, cs CalendarSystem) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || strings.Trim(p, "0123456789") != "" {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if d.Year < MinParseYear || d.Year > MaxParseYear || d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	// A day that does not exist converts to a different date on the way back.
	back := FromJulian(ToJulian(d.Year, d.Month, d.Day, cs), cs)
	if back.Year != d.Year || back.Month != d.Month || back.Day != d.Day {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ToJulianTime returns the Julian Day of the given date and time of day.
func ToJulianTime(year, month, day, hour, minute, second int, cs CalendarSystem) float64 {
	jd := ToJulian(year, month, day, cs)
	return jd + float64(hour-12)/24 + float64(minute)/1440 + float64(second)/secondsPerDay
}

// FromJulian converts a Julian Day back to a Western date and time, rounded
// to the nearest second.
func FromJulian(jd float64, cs CalendarSystem) Date {
	j := math.Floor(jd + 0.5)
	secs := int(math.Round((jd + 0.5 - j) * secondsPerDay))
	if secs >= secondsPerDay {
		j++
		secs -= secondsPerDay
	}

	useJulian := cs == Julian || (cs == Auto && jd < GregorianStart)

	var d Date
	if useJulian {
		b := j + 1524
		c := math.Floor((b - 122.1) / 365.25)
		f := math.Floor(365.25 * c)
		e := math.Floor((b - f) / 30.6001)
		if e > 13 {
			d.Month = int(e - 13)
		} else {
			d.Month = int(e - 1)
		}
		d.Day = int(b - f - math.Floor(30.6001*e))
		if d.Month < 3 {
			d.Year = int(c - 4715)
		} else {
			d.Year = int(c - 4716)
		}
	} else {
		n := int(j) - 1721119
		y := floorDiv(4*n-1, 146097)
		n = 4*n - 1 - 146097*y
		dd := floorDiv(n, 4)
		n = floorDiv(4*dd+3, 1461)
		dd = 4*dd + 3 - 1461*n
		dd = floorDiv(dd+4, 4)
		m := floorDiv(5*dd-3, 153)
		dd = 5*dd - 3 - 153*m
		dd = floorDiv(dd+5, 5)
		y = 100*y + n
		if m < 10 {
			m += 3
		} else {
			m -= 9
			y++
		}
		d.Year, d.Month, d.Day = y, m, dd
	}

	d.Hour = secs / 3600
	d.Minute = secs % 3600 / 60
	d.Second = secs % 60
	return d
}

// LengthOfMonth returns the number of days in the given month.
// Under Auto, September 1752 has 19 days.
func LengthOfMonth(year, month int, cs CalendarSystem) int {
	n := 30 + (month+month/8)%2
	if month == 2 {
		n += isLeap(year, cs) - 2
	}
	if cs == Auto && year == CutoverYear && month == 9 {
		n -= 11
	}
	return n
}

// isLeap returns 1 for a leap year and 0 otherwise.
func isLeap(year int, cs CalendarSystem) int {
	gregorian := cs == Gregorian || (cs == Auto && year > CutoverYear)
	leap := year%4 == 0
	if gregorian {
		leap = (year%4 == 0 && year%100 != 0) || year%400 == 0
	}
	if leap {
		return 1
	}
	return 0
}

// Weekday returns the day of week of an integer Julian Day, 0 for Saturday.
func Weekday(jdn int) int {
	return mod(jdn+2, 7)
}

// FromTime returns the Julian Day of t's calendar date and clock reading.
func FromTime(t time.Time, cs CalendarSystem) float64 {
	return ToJulianTime(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), cs)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
