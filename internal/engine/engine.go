package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-mmcal/internal/astro"
	"github.com/tartampluch/go-mmcal/internal/config"
	"github.com/tartampluch/go-mmcal/internal/western"
)

// ErrUnsupportedMode is returned for an unknown contacts source mode.
var ErrUnsupportedMode = errors.New(config.ErrModeUnsupport)

// SyncConfig contains all parameters required to build the calendar feed.
type SyncConfig struct {
	Mode            string // config.SourceModeNone, config.SourceModeLocal or config.SourceModeWeb
	LocalPath       string // Absolute path to the .vcf file
	WebURL          string // CardDAV or WebDAV URL
	WebUser         string // HTTP Basic Auth Username
	WebPass         string // HTTP Basic Auth Password
	ReminderTrigger string // ISO8601 duration string (e.g., "-P1D")

	Holidays      bool // Include public holidays
	Anniversaries bool // Include observances that are not days off
}

// Generator builds the iCalendar feed of holidays, anniversaries and birthdays.
type Generator struct {
	Clock    Clock        // Interface for time mocking.
	Fetcher  VCardFetcher // Interface for network abstraction.
	Calendar *Calendar    // Rules and translations; English Auto calendar when nil.

	// FormatSummary overrides the birthday summary of the catalog.
	FormatSummary func(name string, age int, yearKnown bool) string
}

type syncStats struct {
	processed, withBday, today, observances int
}

// RunSync builds the feed. It returns the ICS data, the contacts with a
// birthday, the count of birthdays today and any error.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) ([]byte, []BirthdayEntry, int, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	if g.Calendar == nil {
		g.Calendar = New(Options{})
	}

	var reader io.ReadCloser
	if cfg.Mode != config.SourceModeNone && cfg.Mode != "" {
		r, err := g.acquireStream(ctx, cfg)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, 0, ctx.Err()
			}
			return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}
		reader = r
		defer func() { _ = reader.Close() }()
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, 0, err
	}

	ics, contacts, count, err := g.generateCalendar(ctx, reader, cfg)
	if err == nil {
		log.Debug(config.MsgSyncFinished, config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return ics, contacts, count, err
}

// acquireStream opens the contacts source.
func (g *Generator) acquireStream(ctx context.Context, cfg SyncConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return g.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, cfg.Mode)
	}
}

// generateCalendar assembles the feed. r may be nil when no contacts are read.
func (g *Generator) generateCalendar(ctx context.Context, r io.Reader, cfg SyncConfig) ([]byte, []BirthdayEntry, int, error) {
	cat := g.Calendar.Catalog()
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, cat.Message(config.TKeyCalName, nil))
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986 refresh hint
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Dates follow the local calendar; only DTSTAMP is UTC.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	var stats syncStats

	if cfg.Holidays || cfg.Anniversaries {
		events, err := g.createObservanceEvents(ctx, now, cfg)
		if err != nil {
			return nil, nil, 0, err
		}
		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
		stats.observances = len(events)
	}

	var contacts []BirthdayEntry
	if r != nil {
		decoder := vcard.NewDecoder(r)
		for {
			if ctx.Err() != nil {
				return nil, nil, 0, ctx.Err()
			}

			card, err := decoder.Decode()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				// Keep going to recover as many cards as possible
				slog.Warn(config.MsgSkippedCard,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyError, err)
				continue
			}

			stats.processed++
			bday := card.Get(config.VCardBDAY)
			if bday == nil || bday.Value == "" {
				continue
			}

			birthDate, yearKnown, err := parseDate(bday.Value)
			if err != nil {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyValue, bday.Value)
				continue
			}
			stats.withBday++

			// Name Strategy: FN (Formatted) > N (Structured) > Fallback
			name := config.FallbackName
			if fn := card.Get(config.VCardFN); fn != nil {
				name = fn.Value
			} else if n := card.Get(config.VCardN); n != nil {
				name = n.Value
			}

			input := fmt.Sprintf(config.FormatHashInput, name, birthDate.Format(time.RFC3339), config.UIDSalt)
			hash := sha256.Sum256([]byte(input))
			uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

			nextOcc, ageNext := calculateNextOccurrence(now, birthDate, yearKnown)
			entry := BirthdayEntry{
				UID:            uidBase,
				Name:           name,
				DateOfBirth:    birthDate,
				YearKnown:      yearKnown,
				NextOccurrence: nextOcc,
				AgeNext:        ageNext,
			}
			description := ""
			if yearKnown {
				g.annotateBirth(&entry)
				description = cat.Message(config.TKeyEvtDescBirth, map[string]any{
					"Date":     entry.MyanmarText,
					"Weekday":  cat.TranslateWord(entry.Myanmar.WeekdayName()),
					"Mahabote": cat.TranslateWord(entry.Mahabote),
				})
			}
			contacts = append(contacts, entry)

			events, isToday := g.createEvents(name, birthDate, yearKnown, cfg.ReminderTrigger, description, now, uidBase)
			if isToday {
				stats.today++
				slog.Info(config.MsgBdayToday,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyName, name,
					config.LogKeyDOB, birthDate.Format(config.DateFormatFullDash))
			}

			for _, e := range events {
				e.Props.Set(dtStampProp)
				cal.Children = append(cal.Children, e.Component)
			}
		}
	}

	// An empty feed is still a valid VCALENDAR.
	if len(cal.Children) == 0 {
		var buf bytes.Buffer
		buf.WriteString(config.StubVCalendar)

		g.logSuccess(stats)
		return buf.Bytes(), contacts, 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(stats)
	return buf.Bytes(), contacts, stats.today, nil
}

// logSuccess logs the final statistics of the generation process.
func (g *Generator) logSuccess(stats syncStats) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
			slog.Int(config.LogKeyToday, stats.today),
			slog.Int(config.LogKeyEvents, stats.observances),
		),
	)
}

// observance is one feed entry of a day. A name listed twice under the same
// category on one day yields a single event.
type observance struct {
	name     string
	category string
}

// createObservanceEvents emits one all-day event per holiday or anniversary
// name in the previous, current and next Western year.
func (g *Generator) createObservanceEvents(ctx context.Context, now time.Time, cfg SyncConfig) ([]*ical.Event, error) {
	cs := g.Calendar.Options().CalendarSystem
	loc := now.Location()
	first := int(western.ToJulian(now.Year()-config.FeedYearsBefore, 1, 1, cs))
	end := int(western.ToJulian(now.Year()+config.FeedYearsAfter+1, 1, 1, cs))
	cat := g.Calendar.Catalog()

	var events []*ical.Event
	for jdn := first; jdn < end; jdn++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		md := g.Calendar.MyanmarDate(float64(jdn))
		var found []observance
		add := func(category string, names []string) {
			for _, n := range names {
				o := observance{name: n, category: category}
				if !slices.Contains(found, o) {
					found = append(found, o)
				}
			}
		}
		if cfg.Holidays {
			add(config.CategoryHoliday, g.Calendar.Holidays(md))
		}
		if cfg.Anniversaries {
			add(config.CategoryAnniversary, g.Calendar.Anniversaries(md))
		}
		if len(found) == 0 {
			continue
		}

		w := g.Calendar.WesternDate(float64(jdn))
		date := time.Date(w.Year, time.Month(w.Month), w.Day, 0, 0, 0, 0, loc)
		text := g.Calendar.FormatMyanmarDate(md)

		for _, o := range found {
			input := fmt.Sprintf(config.FormatObservanceHash, o.category, o.name, date.Format(config.DateFormatFullDash), config.UIDSalt)
			hash := sha256.Sum256([]byte(input))

			event := ical.NewEvent()
			event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), w.Year, config.ICalDomain))
			event.Props.SetText(config.PropSummary, o.name)
			event.Props.SetText(config.PropCategories, o.category)
			event.Props.SetText(config.PropTransp, config.ICalTransp)

			kind := config.TKeyEvtDescAnniversry
			if o.category == config.CategoryHoliday {
				kind = config.TKeyEvtDescHoliday
			}
			event.Props.SetText(config.PropDescription, cat.Message(kind, nil)+"\n"+text)

			dtStartProp := ical.NewProp(config.PropDTStart)
			dtStartProp.SetDate(date)
			event.Props.Set(dtStartProp)

			events = append(events, event)
		}
	}
	return events, nil
}

// annotateBirth fills the Myanmar fields of a contact born on a known date.
func (g *Generator) annotateBirth(e *BirthdayEntry) {
	cs := g.Calendar.Options().CalendarSystem
	d := e.DateOfBirth
	md := g.Calendar.MyanmarDate(western.ToJulian(d.Year(), int(d.Month()), d.Day(), cs))

	e.Myanmar = md
	e.MyanmarText = g.Calendar.FormatMyanmarDate(md)
	e.Mahabote = astro.Evaluate(md).MahaboteName()
}

// summary returns the birthday title: injected formatter, then catalog.
func (g *Generator) summary(name string, age int, yearKnown bool) string {
	if g.FormatSummary != nil {
		return g.FormatSummary(name, age, yearKnown)
	}
	if g.Calendar == nil {
		return fmt.Sprintf(config.FallbackSummary, name)
	}
	cat := g.Calendar.Catalog()
	switch {
	case yearKnown && age == 0:
		return cat.Message(config.TKeyEvtSummaryBirth, map[string]any{"Name": name})
	case yearKnown:
		return cat.Message(config.TKeyEvtSummaryAge, map[string]any{"Name": name, "Age": age})
	default:
		return cat.Message(config.TKeyEvtSummary, map[string]any{"Name": name})
	}
}

// calculateNextOccurrence determines the next birthday date relative to 'now'.
func calculateNextOccurrence(now time.Time, birthDate time.Time, yearKnown bool) (time.Time, int) {
	currentYear := now.Year()
	loc := now.Location()

	// time.Date normalizes Feb 29 to March 1st in common years.
	candidate := time.Date(currentYear, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(currentYear+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}

	ageNext := 0
	if yearKnown {
		ageNext = candidate.Year() - birthDate.Year()
	}

	return candidate, ageNext
}

// createEvents generates birthday events for CurrentYear-1, CurrentYear and CurrentYear+1,
// never before the person is born.
func (g *Generator) createEvents(name string, birthDate time.Time, yearKnown bool, reminderTrigger, description string, now time.Time, uidBase string) ([]*ical.Event, bool) {
	currentYear := now.Year()
	targetYears := []int{currentYear - config.FeedYearsBefore, currentYear, currentYear + config.FeedYearsAfter}
	loc := now.Location()

	var events []*ical.Event
	isToday := false

	todayYear, todayMonth, todayDay := now.Date()

	for _, y := range targetYears {
		if yearKnown && y < birthDate.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		age := 0
		if yearKnown {
			age = y - birthDate.Year()
		}

		summary := g.summary(name, age, yearKnown && age >= 0)
		event.Props.SetText(config.PropSummary, summary)
		event.Props.SetText(config.PropCategories, config.CategoryBirthday)
		if description != "" {
			event.Props.SetText(config.PropDescription, description)
		}

		eventDate := time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)

		if y == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events, isToday
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// parseDate handles various vCard date formats.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated vCard dates carry no year.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
