package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-mmcal/internal/config"
	"github.com/tartampluch/go-mmcal/internal/engine"
	"github.com/tartampluch/go-mmcal/internal/holiday"
)

// apiResult mirrors Response with a concrete payload type.
type apiResult[T any] struct {
	Success bool       `json:"success"`
	Data    T          `json:"data"`
	Error   *ErrorInfo `json:"error"`
}

func get[T any](t *testing.T, h http.Handler, path string) (int, apiResult[T]) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out apiResult[T]
	if w.Header().Get(config.HeaderContentType) == config.MimeJSON {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func TestAPI_Day(t *testing.T) {
	h := NewCalendarServer("0", nil).Router()

	code, res := get[engine.Day](t, h, "/api/v1/days/2024-04-17")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, res.Success)
	assert.Equal(t, 2460418, res.Data.JulianDay)
	assert.Equal(t, 1386, res.Data.Myanmar.Year)
	assert.Equal(t, []string{holiday.MyanmarNewYearsDay}, res.Data.Holidays)
	assert.Equal(t, "Sasana Year 2567 Ku, Myanmar Year 1386 Ku, Tagu Waxing 9 Yat Wednesday Nay", res.Data.Text)
}

func TestAPI_Day_JulianLeapDay(t *testing.T) {
	h := NewCalendarServer("0", nil).Router()

	// 1700 is a leap year of the Julian calendar in force before the cutover.
	code, res := get[engine.Day](t, h, "/api/v1/days/1700-02-29")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2342042, res.Data.JulianDay)
	assert.Equal(t, 29, res.Data.Western.Day)
}

func TestAPI_Day_Burmese(t *testing.T) {
	h := NewCalendarServer("0", nil).Router()

	code, res := get[engine.Day](t, h, "/api/v1/days/2024-01-04?lang=my")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"လွတ်လပ်ရေးနေ့"}, res.Data.Holidays)
}

func TestAPI_BadRequests(t *testing.T) {
	h := NewCalendarServer("0", nil).Router()

	tests := []struct {
		name string
		path string
		code int
		msg  string
	}{
		{"bad date", "/api/v1/days/17-04-2024", http.StatusBadRequest, config.HTTPMsgBadDate},
		{"bad language", "/api/v1/days/2024-04-17?lang=fr", http.StatusBadRequest, config.HTTPMsgBadLanguage},
		{"bad number", "/api/v1/myanmar/abc/1/1", http.StatusBadRequest, config.HTTPMsgBadNumber},
		{"month out of range", "/api/v1/myanmar/1386/15/1", http.StatusBadRequest, config.HTTPMsgOutOfRange},
		{"day out of range", "/api/v1/myanmar/1386/1/31", http.StatusBadRequest, config.HTTPMsgOutOfRange},
		{"western month out of range", "/api/v1/months/2024/13", http.StatusBadRequest, config.HTTPMsgOutOfRange},
		{"western year too large", "/api/v1/months/25000000000000000/1", http.StatusBadRequest, config.HTTPMsgOutOfRange},
		{"western year zero", "/api/v1/months/0/1", http.StatusBadRequest, config.HTTPMsgOutOfRange},
		{"myanmar year too large", "/api/v1/myanmar/25000000000000000/1/1", http.StatusBadRequest, config.HTTPMsgOutOfRange},
		{"thingyan year too large", "/api/v1/thingyan/10000", http.StatusBadRequest, config.HTTPMsgOutOfRange},
		{"no gregorian leap day", "/api/v1/days/2023-02-29", http.StatusBadRequest, config.HTTPMsgBadDate},
		{"cutover gap", "/api/v1/days/1752-09-05", http.StatusBadRequest, config.HTTPMsgBadDate},
		{"thingyan before 1100", "/api/v1/thingyan/1000", http.StatusNotFound, ""},
		{"unknown route", "/api/v2/nothing", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, res := get[any](t, h, tt.path)
			assert.Equal(t, tt.code, code)
			assert.False(t, res.Success)
			require.NotNil(t, res.Error)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, res.Error.Message)
			}
		})
	}
}

func TestAPI_MyanmarDay(t *testing.T) {
	h := NewCalendarServer("0", nil).Router()

	// Thadingyut full moon of 1387.
	code, res := get[engine.Day](t, h, "/api/v1/myanmar/1387/7/15")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2460955, res.Data.JulianDay)
	assert.Equal(t, 2025, res.Data.Western.Year)
	assert.Equal(t, 10, res.Data.Western.Month)
	assert.Equal(t, 6, res.Data.Western.Day)
	assert.Equal(t, []string{holiday.EndOfLent}, res.Data.Holidays)
}

func TestAPI_Thingyan(t *testing.T) {
	h := NewCalendarServer("0", nil).Router()

	code, res := get[engine.ThingyanSchedule](t, h, "/api/v1/thingyan/1386")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1386, res.Data.Year)
	assert.Equal(t, 2460415, res.Data.Akya.JulianDayNumber)
	assert.Equal(t, 2460418, res.Data.NewYearDay.JulianDayNumber)
}

func TestAPI_Month(t *testing.T) {
	h := NewCalendarServer("0", nil).Router()

	code, res := get[MonthResponse](t, h, "/api/v1/months/1752/9")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, res.Data.Days, 19)
	assert.NotEmpty(t, res.Data.Header)
}

func TestAPI_Health(t *testing.T) {
	srv := NewCalendarServer("0", nil)
	h := srv.Router()

	_, res := get[HealthResponse](t, h, "/health")
	assert.Equal(t, config.HTTPMsgHealthy, res.Data.Status)
	assert.False(t, res.Data.FeedReady)

	srv.Update([]byte(config.StubVCalendar))
	_, res = get[HealthResponse](t, h, "/health")
	assert.True(t, res.Data.FeedReady)
}

func TestRouter_RequestID(t *testing.T) {
	h := NewCalendarServer("0", nil).Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get(config.HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(config.HeaderRequestID, "abc")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(config.HeaderRequestID))
}

func TestRouter_FeedRoute(t *testing.T) {
	srv := NewCalendarServer("0", nil)
	srv.Update([]byte(config.StubVCalendar))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.StubVCalendar, w.Body.String())
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), config.CodeInternal)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
