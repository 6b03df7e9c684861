package engine

import (
	"strconv"
	"strings"

	"github.com/tartampluch/go-mmcal/internal/config"
	"github.com/tartampluch/go-mmcal/internal/myanmar"
)

// Pattern letters understood by Format.
const (
	fmtSasanaLabel  = 'S'
	fmtSasanaYear   = 's'
	fmtMyanmarLabel = 'B'
	fmtMyanmarYear  = 'y'
	fmtKu           = 'k'
	fmtMonth        = 'M'
	fmtMoonPhase    = 'p'
	fmtFortnightDay = 'f'
	fmtYat          = 'r'
	fmtWeekday      = 'E'
	fmtNay          = 'n'
)

// FormatMyanmarDate writes a date with the default pattern, for example
// "Sasana Year 2567 Ku, Myanmar Year 1386 Ku, Tagu Waxing 9 Yat Wednesday Nay".
func (c *Calendar) FormatMyanmarDate(d myanmar.Date) string {
	return c.Format(d, config.DefaultMyanmarFormat)
}

// Format writes a date following pattern and translates the result. The
// fortnight day and its "Yat" suffix are left out on full and new moon days.
// Any other character is copied as is.
func (c *Calendar) Format(d myanmar.Date, pattern string) string {
	counted := d.MoonPhase == myanmar.Waxing || d.MoonPhase == myanmar.Waning

	var sb strings.Builder
	for _, r := range pattern {
		switch r {
		case fmtSasanaLabel:
			sb.WriteString(config.TermSasanaYear)
		case fmtSasanaYear:
			sb.WriteString(strconv.Itoa(d.SasanaYear()))
		case fmtMyanmarLabel:
			sb.WriteString(config.TermMyanmarYear)
		case fmtMyanmarYear:
			sb.WriteString(strconv.Itoa(d.Year))
		case fmtKu:
			sb.WriteString(config.TermKu)
		case fmtMonth:
			sb.WriteString(d.MonthName())
		case fmtMoonPhase:
			sb.WriteString(d.MoonPhase.String())
		case fmtFortnightDay:
			if counted {
				sb.WriteString(strconv.Itoa(d.FortnightDay))
			}
		case fmtYat:
			if counted {
				sb.WriteString(config.TermYat)
			}
		case fmtWeekday:
			sb.WriteString(d.WeekdayName())
		case fmtNay:
			sb.WriteString(config.TermNay)
		default:
			sb.WriteRune(r)
		}
	}

	out := strings.Join(strings.Fields(sb.String()), " ")
	return c.localize(out)
}

// Header describes the span from start to end, as shown above a month page:
// "Sasana Year 2567 Ku, Myanmar Year 1385 - 1386 Ku, Late Tagu - Tagu".
func (c *Calendar) Header(start, end myanmar.Date) string {
	span := func(a, b string) string {
		if a == b {
			return a
		}
		return a + " - " + b
	}

	parts := []string{
		config.TermSasanaYear + " " +
			span(strconv.Itoa(start.SasanaYear()), strconv.Itoa(end.SasanaYear())) + " " + config.TermKu,
	}
	if end.Year >= myanmar.MinYear {
		parts = append(parts,
			config.TermMyanmarYear+" "+span(strconv.Itoa(start.Year), strconv.Itoa(end.Year))+" "+config.TermKu,
			span(start.MonthName(), end.MonthName()),
		)
	}

	for i, p := range parts {
		parts[i] = c.localize(p)
	}
	return strings.Join(parts, c.catalog.Separator())
}

// MonthHeader is the Header of a Myanmar month.
func (c *Calendar) MonthHeader(year, month int) string {
	start := c.MyanmarDate(c.conv.ToJulian(year, month, 1))
	end := c.MyanmarDate(float64(start.JulianDayNumber + start.MonthLength - 1))
	return c.Header(start, end)
}

// localize translates composed English text, keeping the list separator of
// the language.
func (c *Calendar) localize(s string) string {
	out := c.catalog.TranslateSentence(s)
	if sep := c.catalog.Separator(); sep != ", " {
		out = strings.ReplaceAll(out, ", ", sep)
	}
	return out
}
