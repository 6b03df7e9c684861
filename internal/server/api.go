package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tartampluch/go-mmcal/internal/config"
	"github.com/tartampluch/go-mmcal/internal/engine"
	"github.com/tartampluch/go-mmcal/internal/i18n"
	"github.com/tartampluch/go-mmcal/internal/myanmar"
	"github.com/tartampluch/go-mmcal/internal/western"
)

// Bounds of the numeric path parameters. Years share the range of the
// YYYY-MM-DD dates.
const (
	maxMyanmarMonth = myanmar.LateKason
	maxMyanmarDay   = 30
	minYear         = western.MinParseYear
	maxYear         = western.MaxParseYear
)

// MonthResponse is the JSON body of a Western month.
type MonthResponse struct {
	Year   int          `json:"year"`
	Month  int          `json:"month"`
	Header string       `json:"header"`
	Days   []engine.Day `json:"days"`
}

// HealthResponse reports whether the feed has been generated.
type HealthResponse struct {
	Status    string `json:"status"`
	FeedReady bool   `json:"feed_ready"`
}

func (s *CalendarServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, HealthResponse{
		Status:    config.HTTPMsgHealthy,
		FeedReady: s.cache.Load() != nil,
	})
}

// handleDay answers /api/v1/days/{date} with a Western date.
func (s *CalendarServer) handleDay(w http.ResponseWriter, r *http.Request) {
	cal, ok := s.calendarFor(w, r)
	if !ok {
		return
	}
	d, err := western.ParseDate(chi.URLParam(r, config.ParamDate), cal.Options().CalendarSystem)
	if err != nil {
		WriteBadRequest(w, config.HTTPMsgBadDate)
		return
	}
	WriteSuccess(w, cal.DayOfWestern(d.Year, d.Month, d.Day))
}

// handleMyanmarDay answers /api/v1/myanmar/{year}/{month}/{day}.
func (s *CalendarServer) handleMyanmarDay(w http.ResponseWriter, r *http.Request) {
	cal, ok := s.calendarFor(w, r)
	if !ok {
		return
	}
	nums, ok := intParams(w, r, config.ParamYear, config.ParamMonth, config.ParamDay)
	if !ok {
		return
	}
	year, month, day := nums[0], nums[1], nums[2]
	if !yearInRange(year) || month < myanmar.FirstWaso || month > maxMyanmarMonth || day < 1 || day > maxMyanmarDay {
		WriteBadRequest(w, config.HTTPMsgOutOfRange)
		return
	}
	WriteSuccess(w, cal.DayOfMyanmar(year, month, day))
}

// handleThingyan answers /api/v1/thingyan/{year}.
func (s *CalendarServer) handleThingyan(w http.ResponseWriter, r *http.Request) {
	cal, ok := s.calendarFor(w, r)
	if !ok {
		return
	}
	nums, ok := intParams(w, r, config.ParamYear)
	if !ok {
		return
	}
	if !yearInRange(nums[0]) {
		WriteBadRequest(w, config.HTTPMsgOutOfRange)
		return
	}
	schedule, err := cal.ThingyanDates(nums[0])
	if errors.Is(err, myanmar.ErrBeforeThingyan) {
		WriteNotFound(w, err.Error())
		return
	}
	if err != nil {
		WriteInternalError(w, config.HTTPMsgInternalErr)
		return
	}
	WriteSuccess(w, schedule)
}

// handleMonth answers /api/v1/months/{year}/{month} with every day of a Western month.
func (s *CalendarServer) handleMonth(w http.ResponseWriter, r *http.Request) {
	cal, ok := s.calendarFor(w, r)
	if !ok {
		return
	}
	nums, ok := intParams(w, r, config.ParamYear, config.ParamMonth)
	if !ok {
		return
	}
	year, month := nums[0], nums[1]
	if !yearInRange(year) || month < 1 || month > 12 {
		WriteBadRequest(w, config.HTTPMsgOutOfRange)
		return
	}

	days := cal.Month(year, month)
	if len(days) == 0 {
		WriteInternalError(w, config.HTTPMsgInternalErr)
		return
	}
	WriteSuccess(w, MonthResponse{
		Year:   year,
		Month:  month,
		Header: cal.Header(days[0].Myanmar, days[len(days)-1].Myanmar),
		Days:   days,
	})
}

func yearInRange(y int) bool {
	return y >= minYear && y <= maxYear
}

// calendarFor picks the Calendar of the ?lang= query, or the default one.
func (s *CalendarServer) calendarFor(w http.ResponseWriter, r *http.Request) (*engine.Calendar, bool) {
	raw := r.URL.Query().Get(config.QueryLang)
	if raw == "" {
		return s.fallback, true
	}
	tag, err := i18n.ParseLanguage(raw)
	if err != nil {
		WriteBadRequest(w, config.HTTPMsgBadLanguage)
		return nil, false
	}
	if cal, ok := s.calendars[tag]; ok {
		return cal, true
	}
	return s.fallback, true
}

// intParams reads numeric path parameters in order.
func intParams(w http.ResponseWriter, r *http.Request, names ...string) ([]int, bool) {
	out := make([]int, len(names))
	for i, name := range names {
		n, err := strconv.Atoi(chi.URLParam(r, name))
		if err != nil {
			WriteBadRequest(w, config.HTTPMsgBadNumber)
			return nil, false
		}
		out[i] = n
	}
	return out, true
}
