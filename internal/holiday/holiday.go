// Package holiday evaluates the public holidays and anniversaries of Myanmar.
//
// Each rule family returns canonical English names in a fixed order; translation
// happens outside this package. Within a family the first matching rule wins.
package holiday

import (
	"github.com/tartampluch/go-mmcal/internal/myanmar"
	"github.com/tartampluch/go-mmcal/internal/western"
)

// Canonical names produced by the rules.
const (
	NewYearsDay        = "New Year's Day"
	IndependenceDay    = "Independence Day"
	UnionDay           = "Union Day"
	PeasantsDay        = "Peasants' Day"
	ResistanceDay      = "Resistance Day"
	LabourDay          = "Labour Day"
	MartyrsDay         = "Martyrs' Day"
	ChristmasDay       = "Christmas Day"
	GenericHoliday     = "Holiday"
	BuddhaDay          = "Buddha Day"
	StartOfLent        = "Start of Buddhist Lent"
	EndOfLent          = "End of Buddhist Lent"
	Tazaungdaing       = "Tazaungdaing"
	NationalDay        = "National Day"
	KarenNewYearsDay   = "Karen New Year's Day"
	TabaungPwe         = "Tabaung Pwe"
	MyanmarNewYearsDay = "Myanmar New Year's Day"
	ThingyanAtat       = "Thingyan Atat"
	ThingyanAkyat      = "Thingyan Akyat"
	ThingyanAkya       = "Thingyan Akya"
	ThingyanAkyo       = "Thingyan Akyo"
	Diwali             = "Diwali"
	Eid                = "Eid"
	ChineseNewYear     = "Chinese New Year's"

	NewYearDay       = "New Year Day"
	AungSanBirthday  = "G. Aung San BD"
	ValentinesDay    = "Valentines Day"
	EarthDay         = "Earth Day"
	AprilFoolsDay    = "April Fools' Day"
	RedCrossDay      = "Red Cross Day"
	TeachersDay      = "World Teachers' Day"
	UnitedNationsDay = "United Nations Day"
	Halloween        = "Halloween"
	Easter           = "Easter"
	GoodFriday       = "Good Friday"
	MonNationalDay   = "'Mon' National Day"
	ShanNewYearsDay  = "Shan New Year's Day"
	AuthorsDay       = "Authors' Day"
	MahathamayaDay   = "Mahathamaya Day"
	GarudhammaDay    = "Garudhamma Day"
	MothersDay       = "Mothers' Day"
	FathersDay       = "Fathers' Day"
	MettaDay         = "Metta Day"
	TaungpyonePwe    = "Taungpyone Pwe"
	YadanaguPwe      = "Yadanagu Pwe"
)

// Holidays returns every public holiday on a Myanmar date. The Western date is
// derived with cs.
func Holidays(d myanmar.Date, cs western.CalendarSystem) []string {
	w := western.FromJulian(float64(d.JulianDayNumber), cs)

	var out []string
	out = append(out, WesternHolidays(w.Year, w.Month, w.Day)...)
	out = append(out, MyanmarHolidays(d.Year, d.Month, d.Day, d.MoonPhase)...)
	out = append(out, ThingyanHolidays(d.JulianDayNumber, d.Year, d.IsLateMonth())...)
	out = append(out, OtherHolidays(d.JulianDayNumber)...)
	if w.Year >= 2019 && w.Year <= 2021 {
		out = append(out, SubstituteHolidays(d.JulianDayNumber)...)
	}
	return out
}

// IsHoliday reports whether any public holiday falls on the date.
func IsHoliday(d myanmar.Date, cs western.CalendarSystem) bool {
	return len(Holidays(d, cs)) > 0
}

// Anniversaries returns the observances on a Myanmar date that are not days off.
func Anniversaries(d myanmar.Date, cs western.CalendarSystem) []string {
	w := western.FromJulian(float64(d.JulianDayNumber), cs)

	var out []string
	out = append(out, WesternAnniversaries(d.JulianDayNumber, w)...)
	out = append(out, MyanmarAnniversaries(d.Year, d.Month, d.Day, d.MoonPhase)...)
	return out
}
