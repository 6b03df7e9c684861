package engine

import (
	"log/slog"

	"github.com/tartampluch/go-mmcal/internal/astro"
	"github.com/tartampluch/go-mmcal/internal/config"
	"github.com/tartampluch/go-mmcal/internal/holiday"
	"github.com/tartampluch/go-mmcal/internal/i18n"
	"github.com/tartampluch/go-mmcal/internal/myanmar"
	"github.com/tartampluch/go-mmcal/internal/western"
	"golang.org/x/text/language"
)

// Options is the immutable configuration of a Calendar.
type Options struct {
	CalendarSystem western.CalendarSystem
	Language       language.Tag
}

// Day is everything the calendar knows about one day. Names are translated
// into the calendar language.
type Day struct {
	JulianDay     int              `json:"julian_day"`
	Western       western.Date     `json:"western"`
	Myanmar       myanmar.Date     `json:"myanmar"`
	Text          string           `json:"text"`
	Astro         astro.Attributes `json:"astro"`
	Markers       []string         `json:"markers"`
	Holidays      []string         `json:"holidays"`
	Anniversaries []string         `json:"anniversaries"`
}

// IsHoliday reports whether the day is a public holiday.
func (d Day) IsHoliday() bool {
	return len(d.Holidays) > 0
}

// Calendar combines the converters, the rule engines and a translation catalog.
// It is safe for concurrent use.
type Calendar struct {
	opts    Options
	conv    *myanmar.Converter
	catalog *i18n.Catalog
	log     *slog.Logger
}

// New creates a Calendar. The zero Options select the Auto calendar system in English.
func New(opts Options) *Calendar {
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	return &Calendar{
		opts:    opts,
		conv:    myanmar.NewConverter(),
		catalog: i18n.MustCatalog(opts.Language),
		log:     slog.With(config.LogKeyComponent, config.CompCalendar),
	}
}

// Options returns the calendar configuration.
func (c *Calendar) Options() Options {
	return c.opts
}

// Catalog returns the translation catalog of the calendar language.
func (c *Calendar) Catalog() *i18n.Catalog {
	return c.catalog
}

// MyanmarDate converts a Julian Day to a Myanmar date.
func (c *Calendar) MyanmarDate(jd float64) myanmar.Date {
	d := c.conv.FromJulian(jd)
	if info := c.conv.Year(d.Year); info.RoundingError {
		c.log.Debug(config.MsgRoundingError, config.LogKeyYear, d.Year)
	}
	return d
}

// WesternDate converts a Julian Day with the configured calendar system.
func (c *Calendar) WesternDate(jd float64) western.Date {
	return western.FromJulian(jd, c.opts.CalendarSystem)
}

// Day describes the day containing jd.
func (c *Calendar) Day(jd float64) Day {
	md := c.MyanmarDate(jd)
	jdn := md.JulianDayNumber
	attrs := astro.Evaluate(md)

	return Day{
		JulianDay:     jdn,
		Western:       c.WesternDate(float64(jdn)),
		Myanmar:       md,
		Text:          c.FormatMyanmarDate(md),
		Astro:         attrs,
		Markers:       c.catalog.TranslateList(attrs.Markers()),
		Holidays:      c.Holidays(md),
		Anniversaries: c.Anniversaries(md),
	}
}

// DayOfWestern describes a Western date.
func (c *Calendar) DayOfWestern(year, month, day int) Day {
	return c.Day(western.ToJulian(year, month, day, c.opts.CalendarSystem))
}

// DayOfMyanmar describes a Myanmar date. Month 0 of a common year is read as Waso.
func (c *Calendar) DayOfMyanmar(year, month, day int) Day {
	return c.Day(c.conv.ToJulian(year, month, day))
}

// Month describes every day of a Western month.
func (c *Calendar) Month(year, month int) []Day {
	cs := c.opts.CalendarSystem
	first := int(western.ToJulian(year, month, 1, cs))
	nextYear, nextMonth := year, month+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}
	end := int(western.ToJulian(nextYear, nextMonth, 1, cs))

	days := make([]Day, 0, end-first)
	for jdn := first; jdn < end; jdn++ {
		days = append(days, c.Day(float64(jdn)))
	}
	return days
}

// Holidays returns the translated public holidays of a Myanmar date.
func (c *Calendar) Holidays(d myanmar.Date) []string {
	return c.catalog.TranslateList(holiday.Holidays(d, c.opts.CalendarSystem))
}

// Anniversaries returns the translated observances of a Myanmar date.
func (c *Calendar) Anniversaries(d myanmar.Date) []string {
	return c.catalog.TranslateList(holiday.Anniversaries(d, c.opts.CalendarSystem))
}

// IsHoliday reports whether a Myanmar date is a public holiday.
func (c *Calendar) IsHoliday(d myanmar.Date) bool {
	return holiday.IsHoliday(d, c.opts.CalendarSystem)
}

// ThingyanSchedule lists the Myanmar dates of the Thingyan that opens a year.
type ThingyanSchedule struct {
	Year       int            `json:"year"`
	AkyaTime   western.Date   `json:"akya_time"`
	AtatTime   western.Date   `json:"atat_time"`
	Akyo       myanmar.Date   `json:"akyo"`
	Akya       myanmar.Date   `json:"akya"`
	Akyat      []myanmar.Date `json:"akyat"`
	Atat       myanmar.Date   `json:"atat"`
	NewYearDay myanmar.Date   `json:"new_year_day"`
}

// ThingyanDates returns the Thingyan of a Myanmar year.
func (c *Calendar) ThingyanDates(year int) (ThingyanSchedule, error) {
	th, err := myanmar.NewThingyan(year)
	if err != nil {
		return ThingyanSchedule{}, err
	}

	s := ThingyanSchedule{
		Year:       year,
		AkyaTime:   c.WesternDate(th.AkyaTime),
		AtatTime:   c.WesternDate(th.AtatTime),
		Akyo:       c.MyanmarDate(float64(th.AkyoDay())),
		Akya:       c.MyanmarDate(float64(th.AkyaDay)),
		Atat:       c.MyanmarDate(float64(th.AtatDay)),
		NewYearDay: c.MyanmarDate(float64(th.NewYearDay())),
	}
	for _, jdn := range th.AkyatDays() {
		s.Akyat = append(s.Akyat, c.MyanmarDate(float64(jdn)))
	}
	return s, nil
}

// Months lists the translated month names of a Myanmar year.
func (c *Calendar) Months(year, month int) myanmar.MonthList {
	list := myanmar.Months(year, month)
	list.Names = c.catalog.TranslateList(list.Names)
	return list
}
