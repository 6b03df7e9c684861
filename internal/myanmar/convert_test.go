package myanmar_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-mmcal/internal/myanmar"
	"github.com/tartampluch/go-mmcal/internal/western"
)

func TestFromJulian_KnownDates(t *testing.T) {
	tests := []struct {
		name string
		jdn  float64
		want myanmar.Date
	}{
		{
			name: "2024-04-17 New Year's Day 1386",
			jdn:  2460418,
			want: myanmar.Date{
				Year: 1386, Month: myanmar.Tagu, Day: 9, MonthType: myanmar.Regular,
				YearType: myanmar.Common, YearLength: 354, MonthLength: 29,
				MoonPhase: myanmar.Waxing, FortnightDay: 9, Weekday: 4, JulianDayNumber: 2460418,
			},
		},
		{
			name: "2024-01-01 in a big watat year",
			jdn:  2460311,
			want: myanmar.Date{
				Year: 1385, Month: myanmar.Nadaw, Day: 20, MonthType: myanmar.Regular,
				YearType: myanmar.BigWatat, YearLength: 385, MonthLength: 29,
				MoonPhase: myanmar.Waning, FortnightDay: 5, Weekday: 2, JulianDayNumber: 2460311,
			},
		},
		{
			name: "2023-07-03 in First Waso",
			jdn:  2460129,
			want: myanmar.Date{
				Year: 1385, Month: myanmar.FirstWaso, Day: 16, MonthType: myanmar.Intercalary,
				YearType: myanmar.BigWatat, YearLength: 385, MonthLength: 30,
				MoonPhase: myanmar.Waning, FortnightDay: 1, Weekday: 2, JulianDayNumber: 2460129,
			},
		},
		{
			name: "2025-10-06 Thadingyut full moon",
			jdn:  2460955,
			want: myanmar.Date{
				Year: 1387, Month: myanmar.Thadingyut, Day: 15, MonthType: myanmar.Regular,
				YearType: myanmar.Common, YearLength: 354, MonthLength: 29,
				MoonPhase: myanmar.FullMoon, FortnightDay: 15, Weekday: 2, JulianDayNumber: 2460955,
			},
		},
		{
			name: "2000-01-01 little watat",
			jdn:  2451545,
			want: myanmar.Date{
				Year: 1361, Month: myanmar.Nadaw, Day: 25, MonthType: myanmar.Regular,
				YearType: myanmar.LittleWatat, YearLength: 384, MonthLength: 29,
				MoonPhase: myanmar.Waning, FortnightDay: 10, Weekday: 0, JulianDayNumber: 2451545,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, myanmar.FromJulian(tt.jdn))
		})
	}
}

func TestFromJulian_FractionalDay(t *testing.T) {
	// The day boundary is at noon: 2460417.5 is midnight starting 2024-04-17.
	assert.Equal(t, 2460418, myanmar.FromJulian(2460417.5).JulianDayNumber)
	assert.Equal(t, 2460417, myanmar.FromJulian(2460417.49).JulianDayNumber)
}

func TestToJulian_KnownDates(t *testing.T) {
	assert.Equal(t, 2460418.0, myanmar.ToJulian(1386, myanmar.Tagu, 9))
	assert.Equal(t, 2460129.0, myanmar.ToJulian(1385, myanmar.FirstWaso, 16))
	// Waso always has 30 days, also in a common year.
	assert.Equal(t, 2459788.0, myanmar.ToJulian(1384, myanmar.Waso, 30))
	// First Waso does not exist in 1384 and is read as Waso.
	assert.Equal(t, myanmar.ToJulian(1384, myanmar.Waso, 1), myanmar.ToJulian(1384, myanmar.FirstWaso, 1))
	assert.Equal(t, 2459759.0, myanmar.ToJulian(1384, myanmar.FirstWaso, 1))
}

func TestBigWatatYear_Structure(t *testing.T) {
	info := myanmar.ResolveYear(1385)
	require.Equal(t, myanmar.BigWatat, info.YearType)

	// Nayon gains the extra day of a big watat year.
	nayon30 := myanmar.FromJulian(myanmar.ToJulian(1385, myanmar.Nayon, 30))
	assert.Equal(t, myanmar.Nayon, nayon30.Month)
	assert.Equal(t, 30, nayon30.Day)
	assert.Equal(t, myanmar.NewMoon, nayon30.MoonPhase)

	waso30 := myanmar.FromJulian(myanmar.ToJulian(1385, myanmar.Waso, 30))
	assert.Equal(t, myanmar.Waso, waso30.Month)
	assert.Equal(t, 30, waso30.Day)
	assert.Equal(t, myanmar.SecondWaso, waso30.MonthType)

	// The year spans exactly 385 days from Tagu 1.
	next := myanmar.ResolveYear(1386)
	assert.Equal(t, 385, next.Tagu1-info.Tagu1)
}

func TestRoundTrip_Window(t *testing.T) {
	start := int(western.ToJulian(myanmar.MinWesternYear, 1, 1, western.Auto))
	end := int(western.ToJulian(myanmar.MaxWesternYear, 12, 31, western.Auto))
	c := myanmar.NewConverter()
	for jdn := start; jdn <= end; jdn++ {
		d := c.FromJulian(float64(jdn))
		if got := c.ToJulian(d.Year, d.Month, d.Day); got != float64(jdn) {
			t.Fatalf("jdn %d -> %d/%d/%d -> %v", jdn, d.Year, d.Month, d.Day, got)
		}
	}
}

func TestRoundTrip_PackageMatchesConverter(t *testing.T) {
	c := myanmar.NewConverter()
	for jdn := 2100000; jdn <= 2500000; jdn += 1013 {
		assert.Equal(t, myanmar.FromJulian(float64(jdn)), c.FromJulian(float64(jdn)))
	}
}

func TestMoonPhaseAndFortnight(t *testing.T) {
	tagu1 := myanmar.ResolveYear(1386).Tagu1
	for i := 0; i < 354; i++ {
		d := myanmar.FromJulian(float64(tagu1 + i))
		switch {
		case d.Day == 15:
			assert.Equal(t, myanmar.FullMoon, d.MoonPhase)
		case d.Day == d.MonthLength:
			assert.Equal(t, myanmar.NewMoon, d.MoonPhase)
		case d.Day < 15:
			assert.Equal(t, myanmar.Waxing, d.MoonPhase)
		default:
			assert.Equal(t, myanmar.Waning, d.MoonPhase)
		}
		assert.GreaterOrEqual(t, d.FortnightDay, 1)
		assert.LessOrEqual(t, d.FortnightDay, 15)
		assert.Equal(t, myanmar.FromJulian(float64(tagu1+i+7)).Weekday, d.Weekday)
	}
}

func TestLateMonths(t *testing.T) {
	// Thingyan 2024 falls after the 385 days of 1385.
	d := myanmar.FromJulian(2460414)
	assert.Equal(t, 1385, d.Year)
	assert.True(t, d.IsLateMonth())
	assert.Equal(t, myanmar.LateTagu, d.Month)
	assert.Equal(t, "Late Tagu", d.MonthName())
	assert.Equal(t, 2460414.0, myanmar.ToJulian(d.Year, d.Month, d.Day))
}

func TestConverter_Concurrent(t *testing.T) {
	c := myanmar.NewConverter()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for jdn := 2450000 + offset; jdn < 2451000; jdn += 8 {
				d := c.FromJulian(float64(jdn))
				assert.Equal(t, float64(jdn), c.ToJulian(d.Year, d.Month, d.Day))
			}
		}(w)
	}
	wg.Wait()
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Second Waso", myanmar.MonthName(myanmar.Waso, myanmar.LittleWatat))
	assert.Equal(t, "Waso", myanmar.MonthName(myanmar.Waso, myanmar.Common))
	assert.Equal(t, "Late Kason", myanmar.MonthName(myanmar.LateKason, myanmar.Common))
	assert.Empty(t, myanmar.MonthName(15, myanmar.Common))
	assert.Equal(t, "Saturday", myanmar.WeekdayName(0))
	assert.Equal(t, "Friday", myanmar.WeekdayName(6))
	assert.Equal(t, "Full Moon", myanmar.FullMoon.String())
}

func TestMonthNumber(t *testing.T) {
	m, err := myanmar.MonthNumber("Late Tagu")
	require.NoError(t, err)
	assert.Equal(t, myanmar.LateTagu, m)

	m, err = myanmar.MonthNumber("  tazaungmon ")
	require.NoError(t, err)
	assert.Equal(t, myanmar.Tazaungmon, m)

	_, err = myanmar.MonthNumber("Thingyan")
	assert.True(t, errors.Is(err, myanmar.ErrInvalidDate))
}

func TestMoonPhaseNumber(t *testing.T) {
	p, err := myanmar.MoonPhaseNumber("Dark Moon")
	require.NoError(t, err)
	assert.Equal(t, myanmar.NewMoon, p)

	_, err = myanmar.MoonPhaseNumber("gibbous")
	assert.ErrorIs(t, err, myanmar.ErrInvalidDate)
}

func TestDayOfMonth(t *testing.T) {
	tests := []struct {
		name      string
		month     int
		phase     myanmar.MoonPhase
		fortnight int
		want      int
	}{
		{"Waxing", myanmar.Tagu, myanmar.Waxing, 3, 3},
		{"Full moon", myanmar.Tagu, myanmar.FullMoon, 0, 15},
		{"Waning", myanmar.Kason, myanmar.Waning, 4, 19},
		{"New moon of Tagu", myanmar.Tagu, myanmar.NewMoon, 0, 29},
		{"New moon of big watat Nayon", myanmar.Nayon, myanmar.NewMoon, 0, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := myanmar.DayOfMonth(1385, tt.month, tt.phase, tt.fortnight)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := myanmar.DayOfMonth(1385, myanmar.Tagu, myanmar.MoonPhase(7), 1)
	assert.ErrorIs(t, err, myanmar.ErrInvalidDate)
}

func TestJulianDayFromName(t *testing.T) {
	jd, err := myanmar.JulianDayFromName(1386, "Tagu", 9)
	require.NoError(t, err)
	assert.Equal(t, 2460418.0, jd)

	_, err = myanmar.JulianDayFromName(1386, "Unknown", 9)
	assert.ErrorIs(t, err, myanmar.ErrInvalidDate)
}

func TestSasanaYear(t *testing.T) {
	assert.Equal(t, 2567, myanmar.FromJulian(2460418).SasanaYear())
	assert.Equal(t, 2567, myanmar.FromJulian(2460311).SasanaYear())
}
