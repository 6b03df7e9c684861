package engine_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-mmcal/internal/config"
	"github.com/tartampluch/go-mmcal/internal/engine"
)

const bornInThadingyut = "BEGIN:VCARD\nVERSION:3.0\nFN:Aye Aye\nBDAY:1990-10-04\nEND:VCARD\n"

func requireStep(t *testing.T, err error, step string) *engine.FetchError {
	t.Helper()
	var fe *engine.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, step, fe.Step)
	assert.Contains(t, err.Error(), step)
	return fe
}

func TestHTTPFetcher_SendsCredentialsAndAgent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "kyaw" || pass != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		_, _ = io.WriteString(w, bornInThadingyut)
	}))
	defer ts.Close()

	rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL+"/contacts.vcf", "kyaw", "s3cret")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, bornInThadingyut, string(body))

	// Without credentials the same server answers 401.
	_, err = engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL+"/contacts.vcf", "", "")
	fe := requireStep(t, err, config.ErrStatus)
	assert.Equal(t, http.StatusUnauthorized, fe.Status)
}

func TestHTTPFetcher_StatusStep(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusBadGateway, http.StatusNoContent} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
			}))
			defer ts.Close()

			rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL+"/book?token=abc", "", "")
			assert.Nil(t, rc)
			fe := requireStep(t, err, config.ErrStatus)
			assert.Equal(t, code, fe.Status)
			assert.NotContains(t, fe.URL, "token", "query strings must not leak")
			assert.NotContains(t, err.Error(), "token")
		})
	}
}

func TestHTTPFetcher_NetworkStep(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := engine.NewHTTPFetcher().Fetch(ctx, ts.URL, "", "")
	requireStep(t, err, config.ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPFetcher_RequestBuildStep(t *testing.T) {
	// A nil context makes the request builder fail.
	_, err := engine.NewHTTPFetcher().Fetch(nil, "https://example.com/book.vcf", "", "")
	requireStep(t, err, config.ErrRequestBuild)
}

func TestHTTPFetcher_RejectsBadTargets(t *testing.T) {
	f := engine.NewHTTPFetcher()

	_, err := f.Fetch(context.Background(), string([]byte{0x7f}), "", "")
	requireStep(t, err, config.ErrInvalidURL)

	_, err = f.Fetch(context.Background(), "ftp://user:pw@example.com/file.vcf", "", "")
	fe := requireStep(t, err, config.ErrProtocol)
	assert.Equal(t, "ftp://example.com/file.vcf", fe.URL)
}

func TestHTTPFetcher_SizeLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("x", 64))
	}))
	defer ts.Close()

	tests := []struct {
		name    string
		limit   int64
		wantErr bool
	}{
		{"under", 100, false},
		{"exact", 64, false},
		{"over", 63, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := engine.NewHTTPFetcher()
			f.MaxBytes = tt.limit

			rc, err := f.Fetch(context.Background(), ts.URL, "", "")
			require.NoError(t, err)
			defer func() { _ = rc.Close() }()

			body, err := io.ReadAll(rc)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Len(t, body, 64)
				return
			}
			requireStep(t, err, config.ErrBodyTooLarge)
			assert.Len(t, body, int(tt.limit))
		})
	}
}
