package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-mmcal/internal/config"
	"github.com/tartampluch/go-mmcal/internal/engine"
	"github.com/tartampluch/go-mmcal/internal/holiday"
)

// holidayFeed renders the public holiday feed as seen on January 1st of year.
func holidayFeed(t *testing.T, year int) []byte {
	t.Helper()
	gen := &engine.Generator{Clock: engine.YearClock(year)}
	data, _, _, err := gen.RunSync(context.Background(), engine.SyncConfig{
		Mode:     config.SourceModeNone,
		Holidays: true,
	})
	require.NoError(t, err)
	return data
}

func serve(h http.Handler, method, path string, header http.Header) *http.Response {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Result()
}

func TestFeed_ServesGeneratedHolidays(t *testing.T) {
	srv := NewCalendarServer("0", nil)
	h := srv.Router()

	resp := serve(h, http.MethodGet, config.RouteRoot, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, "no sync has finished yet")
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))

	feed := holidayFeed(t, 2024)
	srv.Update(feed)

	resp = serve(h, http.MethodGet, config.RouteRoot, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.NotEmpty(t, resp.Header.Get(config.HeaderLastModified))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, feed, body)

	cal, err := ical.NewDecoder(bytes.NewReader(body)).Decode()
	require.NoError(t, err)
	var summaries []string
	for _, ev := range cal.Events() {
		s, err := ev.Props.Text(config.PropSummary)
		require.NoError(t, err)
		summaries = append(summaries, s)
	}
	assert.Contains(t, summaries, holiday.MyanmarNewYearsDay)
	assert.Contains(t, summaries, holiday.ThingyanAkyo)
	assert.Contains(t, summaries, holiday.IndependenceDay)

	head := serve(h, http.MethodHead, config.RouteRoot, nil)
	assert.Equal(t, http.StatusOK, head.StatusCode)
	headBody, _ := io.ReadAll(head.Body)
	assert.Empty(t, headBody)
}

func TestFeed_ConditionalRequests(t *testing.T) {
	srv := NewCalendarServer("0", nil)
	h := srv.Router()
	srv.Update(holidayFeed(t, 2024))

	first := serve(h, http.MethodGet, config.RouteRoot, nil)
	etag := first.Header.Get(config.HeaderETag)
	lastMod := first.Header.Get(config.HeaderLastModified)
	require.NotEmpty(t, etag)

	byTag := serve(h, http.MethodGet, config.RouteRoot, http.Header{config.HeaderIfNoneMatch: {etag}})
	assert.Equal(t, http.StatusNotModified, byTag.StatusCode)
	body, _ := io.ReadAll(byTag.Body)
	assert.Empty(t, body)

	byDate := serve(h, http.MethodGet, config.RouteRoot, http.Header{config.HeaderIfModifiedSince: {lastMod}})
	assert.Equal(t, http.StatusNotModified, byDate.StatusCode)

	// A feed of another year carries other dates, hence another tag.
	srv.Update(holidayFeed(t, 2025))
	stale := serve(h, http.MethodGet, config.RouteRoot, http.Header{config.HeaderIfNoneMatch: {etag}})
	assert.Equal(t, http.StatusOK, stale.StatusCode)
	assert.NotEqual(t, etag, stale.Header.Get(config.HeaderETag))
}

func TestFeed_RejectsWrites(t *testing.T) {
	srv := NewCalendarServer("0", nil)
	srv.Update(holidayFeed(t, 2024))
	h := srv.Router()

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		resp := serve(h, method, config.RouteRoot, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, method)
		assert.Equal(t, config.AllowedMethods, resp.Header.Get(config.HeaderAllow), method)
	}
}

// TestFeed_ConcurrentUpdates swaps two feeds while readers fetch; every 200
// must carry one of them whole. Meaningful under -race.
func TestFeed_ConcurrentUpdates(t *testing.T) {
	feeds := [][]byte{holidayFeed(t, 2024), holidayFeed(t, 2025)}
	srv := NewCalendarServer("0", nil)
	h := srv.Router()

	var wg sync.WaitGroup
	end := time.Now().Add(300 * time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; time.Now().Before(end); i++ {
			srv.Update(feeds[i%2])
		}
	}()

	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req := httptest.NewRequest(http.MethodGet, config.RouteRoot, nil)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusServiceUnavailable:
				case http.StatusOK:
					if !bytes.Equal(w.Body.Bytes(), feeds[0]) && !bytes.Equal(w.Body.Bytes(), feeds[1]) {
						t.Errorf("served a body that matches neither feed (%d bytes)", w.Body.Len())
						return
					}
				default:
					t.Errorf("unexpected status %d", w.Code)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestServer_StartRequiresPort(t *testing.T) {
	err := NewCalendarServer("", nil).Start(context.Background())
	require.Error(t, err)
	assert.EqualError(t, err, config.ErrPortRequired)
}

func TestServer_Lifecycle(t *testing.T) {
	const port = "18099"
	base := "http://" + config.LocalhostBindAddr + config.AddrSeparator + port

	srv := NewCalendarServer(port, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	health := func() string {
		resp, err := http.Get(base + config.RouteHealth)
		if err != nil {
			return ""
		}
		defer func() { _ = resp.Body.Close() }()
		b, _ := io.ReadAll(resp.Body)
		return string(b)
	}
	require.Eventually(t, func() bool { return health() != "" }, 2*time.Second, 50*time.Millisecond)
	assert.Contains(t, health(), `"feed_ready":false`)

	srv.Update(holidayFeed(t, 2024))
	assert.Contains(t, health(), `"feed_ready":true`)

	resp, err := http.Get(base + config.RouteRoot)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), "BEGIN:VCALENDAR"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(config.ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
