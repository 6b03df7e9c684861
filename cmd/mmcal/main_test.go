package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-mmcal/internal/config"
	"github.com/tartampluch/go-mmcal/internal/engine"
	"github.com/zalando/go-keyring"
)

// execute runs the command tree with args and returns what it printed.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	a := &cli{stdin: strings.NewReader(stdin)}
	t.Cleanup(a.close)

	root := a.rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConvert(t *testing.T) {
	out, err := execute(t, "", "convert", "2024-04-17")
	require.NoError(t, err)

	assert.Contains(t, out, "2024-04-17")
	assert.Contains(t, out, "Myanmar Year 1386 Ku, Tagu Waxing 9 Yat Wednesday Nay")
	assert.Contains(t, out, "2460418")
	assert.Contains(t, out, "Myanmar New Year's Day")
	assert.Contains(t, out, "Common")
}

func TestConvert_Burmese(t *testing.T) {
	out, err := execute(t, "", "--lang", "my", "convert", "2024-04-17")
	require.NoError(t, err)
	assert.Contains(t, out, "မြန်မာနှစ် ၁၃၈၆ ခု")
}

func TestConvert_JSON(t *testing.T) {
	out, err := execute(t, "", "--json", "convert", "2024-01-04")
	require.NoError(t, err)

	var day engine.Day
	require.NoError(t, json.Unmarshal([]byte(out), &day))
	assert.Equal(t, []string{"Independence Day"}, day.Holidays)
}

func TestConvert_BadDate(t *testing.T) {
	_, err := execute(t, "", "convert", "04/17/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrDateParse)
}

func TestWestern(t *testing.T) {
	out, err := execute(t, "", "western", "1387", "7", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-10-06")
	assert.Contains(t, out, "Thadingyut Full Moon Monday Nay")

	_, err = execute(t, "", "western", "1387", "seven", "15")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrArgNumber)
}

func TestWestern_MonthNames(t *testing.T) {
	out, err := execute(t, "", "western", "1387", "Thadingyut", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-10-06")

	// Burmese month name and digits read back through the catalog.
	out, err = execute(t, "", "--lang", "my", "western", "၁၃၈၇", "သီတင်းကျွတ်", "၁၅")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-10-06")
}

func TestAstro(t *testing.T) {
	out, err := execute(t, "", "astro", "2025-10-06")
	require.NoError(t, err)
	assert.Contains(t, out, "Sabbath")
	assert.Contains(t, out, "Mahabote")
}

func TestHolidays(t *testing.T) {
	out, err := execute(t, "", "holidays", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-04  Independence Day")
	assert.Contains(t, out, "2024-04-17  Myanmar New Year's Day")
	assert.NotContains(t, out, "Easter")

	out, err = execute(t, "", "holidays", "--all", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-31  Easter")
}

func TestThingyan(t *testing.T) {
	out, err := execute(t, "", "--json", "thingyan", "1386")
	require.NoError(t, err)

	var s engine.ThingyanSchedule
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 2460418, s.NewYearDay.JulianDayNumber)

	_, err = execute(t, "", "thingyan", "1000")
	assert.Error(t, err)
}

func TestMonths(t *testing.T) {
	out, err := execute(t, "", "months", "1385")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 14)
	assert.Contains(t, out, "First Waso")
	assert.Contains(t, out, "Late Tagu")
}

func TestICS(t *testing.T) {
	out, err := execute(t, "", "ics", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Independence Day")

	path := filepath.Join(t.TempDir(), "feed.ics")
	_, err = execute(t, "", "ics", "--year", "2025", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DTSTART;VALUE=DATE:20240417")
}

func TestCredentialsSet(t *testing.T) {
	keyring.MockInit()

	out, err := execute(t, "s3cret\n", "credentials", "set", "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, config.MsgPassStored)

	got, err := keyring.Get(config.KeyringService, "alice")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	_, err = execute(t, "x\n", "credentials", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrUserRequired)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, config.AppName+" version "+config.Version))
}

func TestInvalidSettings(t *testing.T) {
	_, err := execute(t, "", "--calendar", "hebrew", "convert", "2024-04-17")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrCalendarSystem)
}
