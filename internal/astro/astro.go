// Package astro derives the traditional astrological attributes of a Myanmar day.
//
// Every rule is a table lookup or a small modular formula over the month, the day of
// month and the weekday (0 Saturday .. 6 Friday). Month 0 (First Waso) is read as Waso.
package astro

import "github.com/tartampluch/go-mmcal/internal/myanmar"

// SabbathKind classifies a day with respect to the Buddhist sabbath.
type SabbathKind int

const (
	NoSabbath SabbathKind = iota
	Sabbath
	SabbathEve
)

// PyathadaKind classifies an inauspicious Pyathada day.
type PyathadaKind int

const (
	NoPyathada PyathadaKind = iota
	Pyathada
	AfternoonPyathada
)

// Attributes is the full set of astrological markers of one day.
type Attributes struct {
	Sabbath       SabbathKind
	Yatyaza       bool
	Pyathada      PyathadaKind
	Thamanyo      bool
	Amyeittasote  bool
	Warameittugyi bool
	Warameittunge bool
	Yatpote       bool
	Thamaphyu     bool
	Nagapor       bool
	Yatyotema     bool
	Mahayatkyan   bool
	Shanyat       bool
	// Nagahle is the direction the dragon's head faces, 0 West .. 3 South.
	Nagahle int
	// Mahabote is the birth sign, 0 Binga .. 6 Puti.
	Mahabote int
	// Nakhat is 0 Ogre, 1 Elf, 2 Human.
	Nakhat int
	// YearName is the twelve-year cycle name, 0 Hpusha .. 11 Mrigasiras.
	YearName int
}

// Evaluate computes every attribute of a Myanmar date.
func Evaluate(d myanmar.Date) Attributes {
	return Attributes{
		Sabbath:       SabbathOf(d.Day, d.MonthLength),
		Yatyaza:       IsYatyaza(d.Month, d.Weekday),
		Pyathada:      PyathadaOf(d.Month, d.Weekday),
		Thamanyo:      IsThamanyo(d.Month, d.Weekday),
		Amyeittasote:  IsAmyeittasote(d.Day, d.Weekday),
		Warameittugyi: IsWarameittugyi(d.Day, d.Weekday),
		Warameittunge: IsWarameittunge(d.Day, d.Weekday),
		Yatpote:       IsYatpote(d.Day, d.Weekday),
		Thamaphyu:     IsThamaphyu(d.Day, d.Weekday),
		Nagapor:       IsNagapor(d.Day, d.Weekday),
		Yatyotema:     IsYatyotema(d.Month, d.Day),
		Mahayatkyan:   IsMahayatkyan(d.Month, d.Day),
		Shanyat:       IsShanyat(d.Month, d.Day),
		Nagahle:       Nagahle(d.Month),
		Mahabote:      Mahabote(d.Year, d.Weekday),
		Nakhat:        Nakhat(d.Year),
		YearName:      YearName(d.Year),
	}
}

// SabbathOf reports whether a day of a month of the given length is a sabbath or its eve.
func SabbathOf(day, monthLength int) SabbathKind {
	switch day {
	case 8, 15, 23, monthLength:
		return Sabbath
	case 7, 14, 22, monthLength - 1:
		return SabbathEve
	}
	return NoSabbath
}

// IsYatyaza reports an auspicious Yatyaza day.
func IsYatyaza(month, weekday int) bool {
	m1 := wasoMonth(month) % 4
	wd1 := m1/2 + 4
	wd2 := (1 - m1/2 + m1%2) * (1 + 2*(m1%2))
	return weekday == wd1 || weekday == wd2
}

// PyathadaOf reports an inauspicious Pyathada day.
func PyathadaOf(month, weekday int) PyathadaKind {
	wda := [7]int{1, 3, 3, 0, 2, 1, 2}
	m1 := wasoMonth(month) % 4
	switch {
	case m1 == wda[weekday7(weekday)]:
		return Pyathada
	case m1 == 0 && weekday == 4:
		return AfternoonPyathada
	}
	return NoPyathada
}

// IsThamanyo reports a Thamanyo day.
func IsThamanyo(month, weekday int) bool {
	m := foldedMonth(month)
	m1 := m - 1 - m/9
	wd1 := (m1*2 - m1/8) % 7
	wd2 := (weekday + 7 - wd1) % 7
	return wd2 <= 1
}

// IsAmyeittasote reports an Amyeittasote day.
func IsAmyeittasote(day, weekday int) bool {
	wda := [7]int{5, 8, 3, 7, 2, 4, 1}
	return fortnightDay(day) == wda[weekday7(weekday)]
}

// IsWarameittugyi reports a Warameittugyi day.
func IsWarameittugyi(day, weekday int) bool {
	wda := [7]int{7, 1, 4, 8, 9, 6, 3}
	return fortnightDay(day) == wda[weekday7(weekday)]
}

// IsWarameittunge reports a Warameittunge day.
func IsWarameittunge(day, weekday int) bool {
	wn := (weekday + 6) % 7
	return 12-fortnightDay(day) == wn
}

// IsYatpote reports a Yatpote day.
func IsYatpote(day, weekday int) bool {
	wda := [7]int{8, 1, 4, 6, 9, 8, 7}
	return fortnightDay(day) == wda[weekday7(weekday)]
}

// IsThamaphyu reports a Thamaphyu day.
func IsThamaphyu(day, weekday int) bool {
	wda := [7]int{1, 2, 6, 6, 5, 6, 7}
	wdb := [7]int{0, 1, 0, 0, 0, 3, 3}
	mf := fortnightDay(day)
	wd := weekday7(weekday)
	return mf == wda[wd] || mf == wdb[wd] || (mf == 4 && wd == 5)
}

// IsNagapor reports a Nagapor day.
func IsNagapor(day, weekday int) bool {
	wda := [7]int{26, 21, 2, 10, 18, 2, 21}
	wdb := [7]int{17, 19, 1, 0, 9, 0, 0}
	wd := weekday7(weekday)
	return day == wda[wd] || day == wdb[wd] ||
		(day == 2 && wd == 1) ||
		((day == 12 || day == 4 || day == 18) && wd == 2)
}

// IsYatyotema reports a Yatyotema day.
func IsYatyotema(month, day int) bool {
	m := foldedMonth(month)
	m1 := m
	if m%2 == 0 {
		m1 = (m + 9) % 12
	}
	return fortnightDay(day) == (m1+4)%12+1
}

// IsMahayatkyan reports a Mahayatkyan day.
func IsMahayatkyan(month, day int) bool {
	m := wasoMonth(month)
	m1 := ((m%12)/2+4)%6 + 1
	return fortnightDay(day) == m1
}

// IsShanyat reports a Shanyat day.
func IsShanyat(month, day int) bool {
	sya := [12]int{8, 8, 2, 2, 9, 3, 3, 5, 1, 4, 7, 4}
	m := foldedMonth(month)
	return fortnightDay(day) == sya[m-1]
}

// Nagahle returns the direction of the dragon's head for a month, 0 West .. 3 South.
func Nagahle(month int) int {
	return (wasoMonth(month) % 12) / 3
}

// Mahabote returns the birth sign of a year and weekday.
func Mahabote(year, weekday int) int {
	return mod(year-weekday, 7)
}

// Nakhat returns the year's nakhat, 0 Ogre, 1 Elf, 2 Human.
func Nakhat(year int) int {
	return mod(year, 3)
}

// YearName returns the index of the year in the twelve-year cycle.
func YearName(year int) int {
	return mod(year, 12)
}

// wasoMonth reads First Waso as Waso.
func wasoMonth(month int) int {
	if month <= 0 {
		return myanmar.Waso
	}
	return month
}

// foldedMonth maps Late Tagu and Late Kason back onto Tagu and Kason.
func foldedMonth(month int) int {
	late := month / 13
	return wasoMonth(month%13 + late)
}

func fortnightDay(day int) int {
	return day - 15*(day/16)
}

func weekday7(wd int) int {
	return mod(wd, 7)
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
