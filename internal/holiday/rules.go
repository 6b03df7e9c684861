package holiday

import (
	"math"
	"slices"

	"github.com/tartampluch/go-mmcal/internal/myanmar"
	"github.com/tartampluch/go-mmcal/internal/western"
)

const (
	anyYear = math.MinInt
	noEnd   = math.MaxInt
)

// everyDay in the month field matches any date of the year range.
const everyDay = 0

// westernRule matches a fixed Western month and day within a year range.
type westernRule struct {
	from, to   int
	month, day int
	name       string
}

func (r westernRule) match(y, m, d int) bool {
	if y < r.from || y > r.to {
		return false
	}
	return r.month == everyDay || (m == r.month && d == r.day)
}

// The New Year's Day rule of the published tables is not limited to January 1
// between 2018 and 2021: it claims every day of those years and shadows the
// rules below it.
var westernHolidayRules = []westernRule{
	{2018, 2021, everyDay, everyDay, NewYearsDay},
	{2025, noEnd, 1, 1, NewYearsDay},
	{1948, noEnd, 1, 4, IndependenceDay},
	{1947, noEnd, 2, 12, UnionDay},
	{1958, noEnd, 3, 2, PeasantsDay},
	{1945, noEnd, 3, 27, ResistanceDay},
	{1923, noEnd, 5, 1, LabourDay},
	{1947, noEnd, 7, 19, MartyrsDay},
	{anyYear, noEnd, 12, 25, ChristmasDay},
	{2017, 2017, 12, 30, GenericHoliday},
	{2017, 2021, 12, 31, GenericHoliday},
}

var westernAnniversaryRules = []westernRule{
	{anyYear, 2017, 1, 1, NewYearDay},
	{1915, noEnd, 2, 13, AungSanBirthday},
	{1969, noEnd, 2, 14, ValentinesDay},
	{1970, noEnd, 4, 22, EarthDay},
	{1392, noEnd, 4, 1, AprilFoolsDay},
	{1948, noEnd, 5, 8, RedCrossDay},
	{1994, noEnd, 10, 5, TeachersDay},
	{1947, noEnd, 10, 24, UnitedNationsDay},
	{1753, noEnd, 10, 31, Halloween},
}

// myanmarRule matches a Myanmar month on a full moon or on listed days.
type myanmarRule struct {
	from, to int
	month    int
	fullMoon bool
	days     []int
	names    []string
	// alsoFrom adds extra names from this year on.
	alsoFrom int
	also     []string
}

func (r myanmarRule) match(y, m, d int, phase myanmar.MoonPhase) bool {
	if y < r.from || y > r.to || m != r.month {
		return false
	}
	if r.fullMoon {
		return phase == myanmar.FullMoon
	}
	return slices.Contains(r.days, d)
}

func (r myanmarRule) result(y int) []string {
	out := slices.Clone(r.names)
	if len(r.also) > 0 && y >= r.alsoFrom {
		out = append(out, r.also...)
	}
	return out
}

var myanmarHolidayRules = []myanmarRule{
	{from: anyYear, to: noEnd, month: myanmar.Kason, fullMoon: true, names: []string{BuddhaDay}},
	{from: anyYear, to: noEnd, month: myanmar.Waso, fullMoon: true, names: []string{StartOfLent}},
	{from: anyYear, to: noEnd, month: myanmar.Thadingyut, fullMoon: true, names: []string{EndOfLent}},
	{from: 1379, to: noEnd, month: myanmar.Thadingyut, days: []int{14, 16}, names: []string{GenericHoliday}},
	{from: anyYear, to: noEnd, month: myanmar.Tazaungmon, fullMoon: true, names: []string{Tazaungdaing}},
	{from: 1379, to: 1385, month: myanmar.Tazaungmon, days: []int{14}, names: []string{GenericHoliday}},
	{from: 1282, to: noEnd, month: myanmar.Tazaungmon, days: []int{25}, names: []string{NationalDay}},
	{from: anyYear, to: noEnd, month: myanmar.Pyatho, days: []int{1}, names: []string{KarenNewYearsDay}},
	{from: anyYear, to: noEnd, month: myanmar.Tabaung, fullMoon: true, names: []string{TabaungPwe}},
}

var myanmarAnniversaryRules = []myanmarRule{
	{from: 1309, to: noEnd, month: myanmar.Tabodwe, days: []int{16}, names: []string{MonNationalDay}},
	{
		from: anyYear, to: noEnd, month: myanmar.Nadaw, days: []int{1},
		names: []string{ShanNewYearsDay}, alsoFrom: 1306, also: []string{AuthorsDay},
	},
	{from: anyYear, to: noEnd, month: myanmar.Nayon, fullMoon: true, names: []string{MahathamayaDay}},
	{from: anyYear, to: noEnd, month: myanmar.Tawthalin, fullMoon: true, names: []string{GarudhammaDay}},
	{from: 1356, to: noEnd, month: myanmar.Pyatho, fullMoon: true, names: []string{MothersDay}},
	{from: 1370, to: noEnd, month: myanmar.Tabaung, fullMoon: true, names: []string{FathersDay}},
	{from: anyYear, to: noEnd, month: myanmar.Wagaung, fullMoon: true, names: []string{MettaDay}},
	{from: anyYear, to: noEnd, month: myanmar.Wagaung, days: []int{10}, names: []string{TaungpyonePwe}},
	{from: anyYear, to: noEnd, month: myanmar.Wagaung, days: []int{23}, names: []string{YadanaguPwe}},
}

func firstWestern(rules []westernRule, y, m, d int) []string {
	for _, r := range rules {
		if r.match(y, m, d) {
			return []string{r.name}
		}
	}
	return nil
}

func firstMyanmar(rules []myanmarRule, y, m, d int, phase myanmar.MoonPhase) []string {
	for _, r := range rules {
		if r.match(y, m, d, phase) {
			return r.result(y)
		}
	}
	return nil
}

// WesternHolidays returns the fixed-date public holiday of a Western date.
func WesternHolidays(year, month, day int) []string {
	return firstWestern(westernHolidayRules, year, month, day)
}

// MyanmarHolidays returns the public holiday fixed to a Myanmar date.
func MyanmarHolidays(year, month, day int, phase myanmar.MoonPhase) []string {
	return firstMyanmar(myanmarHolidayRules, year, month, day, phase)
}

// ThingyanHolidays returns the water-festival holidays of a day. late marks days
// in Late Tagu or Late Kason, which belong to the Thingyan of the following year.
func ThingyanHolidays(jdn, year int, late bool) []string {
	ty := year
	if late {
		ty++
	}
	th := myanmar.ThingyanFor(ty)
	akn, atn := th.AkyaDay, th.AtatDay

	var out []string
	if jdn == th.NewYearDay() {
		out = append(out, MyanmarNewYearsDay)
	}
	if ty < myanmar.ThingyanStart {
		return out
	}

	switch {
	case jdn == atn:
		out = append(out, ThingyanAtat)
	case jdn > akn && jdn < atn:
		out = append(out, ThingyanAkyat)
	case jdn == akn:
		out = append(out, ThingyanAkya)
	case jdn == akn-1:
		out = append(out, ThingyanAkyo)
	case ty >= 1369 && ty < 1379 && (jdn == akn-2 || (jdn >= atn+2 && jdn <= akn+7)):
		out = append(out, GenericHoliday)
	case ty >= 1384 && ty <= 1385 && jdn >= akn-5 && jdn <= akn-2:
		out = append(out, GenericHoliday)
	case ty >= 1386 && jdn >= atn+2 && jdn <= akn+7:
		out = append(out, GenericHoliday)
	}
	return out
}

// OtherHolidays returns the community holidays taken from published tables.
func OtherHolidays(jdn int) []string {
	var out []string
	if inTable(diwaliDays, jdn) {
		out = append(out, Diwali)
	}
	if inTable(eidDays, jdn) {
		out = append(out, Eid)
	}
	if jdn > chineseNewYearHolidayFrom && inTable(chineseNewYearDays, jdn) {
		out = append(out, ChineseNewYear)
	}
	return out
}

// SubstituteHolidays returns the government substitute day off, if any.
func SubstituteHolidays(jdn int) []string {
	if inTable(substituteDays, jdn) {
		return []string{GenericHoliday}
	}
	return nil
}

// WesternAnniversaries returns the Western observances of a day. w must be the
// Western date of jdn.
func WesternAnniversaries(jdn int, w western.Date) []string {
	out := firstWestern(westernAnniversaryRules, w.Year, w.Month, w.Day)

	easter := EasterDay(w.Year)
	switch {
	case w.Year >= 1876 && jdn == easter:
		out = append(out, Easter)
	case w.Year >= 1876 && jdn == easter-2:
		out = append(out, GoodFriday)
	case inTable(eidAnniversaryDays, jdn):
		out = append(out, Eid)
	}

	if inTable(chineseNewYearDays, jdn) {
		out = append(out, ChineseNewYear)
	}
	return out
}

// MyanmarAnniversaries returns the Myanmar observances of a day.
func MyanmarAnniversaries(year, month, day int, phase myanmar.MoonPhase) []string {
	return firstMyanmar(myanmarAnniversaryRules, year, month, day, phase)
}

// EasterDay returns the JDN of Western Easter Sunday of a year (Gregorian computus).
func EasterDay(year int) int {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	q := h + l - 7*m + 114
	return int(western.ToJulian(year, q/31, q%31+1, western.Gregorian))
}
