package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-mmcal/internal/config"
)

// VCardFetcher retrieves the contacts whose birthdays join the feed.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// FetchError tells which step of an address book download failed.
// Step is one of the config.Err* download messages.
type FetchError struct {
	Step   string
	URL    string // without query string or credentials
	Status int    // set when Step is config.ErrStatus
	Err    error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s: %d %s", e.Step, e.Status, http.StatusText(e.Status))
	case e.Err != nil:
		return e.Step + ": " + e.Err.Error()
	default:
		return e.Step
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPFetcher downloads an address book over HTTP(S), usually a CardDAV export.
type HTTPFetcher struct {
	Client *http.Client
	// MaxBytes bounds the body; zero means config.MaxHTTPResponseSize.
	MaxBytes int64
}

// NewHTTPFetcher returns a fetcher bounded by config.HTTPTimeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: config.HTTPTimeout}}
}

// Fetch opens the address book at rawURL. Reading past MaxBytes fails with a
// config.ErrBodyTooLarge step instead of silently truncating the contacts.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL, user, pass string) (io.ReadCloser, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{Step: config.ErrInvalidURL, Err: err}
	}
	safe := redact(target)
	if target.Scheme != config.SchemeHTTP && target.Scheme != config.SchemeHTTPS {
		return nil, &FetchError{Step: config.ErrProtocol, URL: safe, Err: errors.New(target.Scheme)}
	}

	log := slog.With(config.LogKeyComponent, config.CompFetcher, config.LogKeyURL, safe)
	log.Debug(config.MsgFetchStart)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Step: config.ErrRequestBuild, URL: safe, Err: err}
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, &FetchError{Step: config.ErrNetwork, URL: safe, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgFetchStatus, config.LogKeyStatus, resp.StatusCode)
		return nil, &FetchError{Step: config.ErrStatus, URL: safe, Status: resp.StatusCode}
	}

	log.Info(config.MsgFetchDownload, config.LogKeySizeBytes, resp.ContentLength)
	return &cappedBody{body: resp.Body, left: f.limit(), url: safe}, nil
}

func (f *HTTPFetcher) client() *http.Client {
	if f.Client == nil {
		return http.DefaultClient
	}
	return f.Client
}

func (f *HTTPFetcher) limit() int64 {
	if f.MaxBytes > 0 {
		return f.MaxBytes
	}
	return config.MaxHTTPResponseSize
}

func redact(u *url.URL) string {
	c := *u
	c.User = nil
	c.RawQuery = ""
	c.Fragment = ""
	return c.String()
}

// cappedBody errors once more than left bytes have been read.
type cappedBody struct {
	body io.ReadCloser
	left int64
	url  string
}

func (c *cappedBody) Read(p []byte) (int, error) {
	if c.left < 0 {
		return 0, &FetchError{Step: config.ErrBodyTooLarge, URL: c.url}
	}
	// One extra byte tells a body of exactly the limit from a longer one.
	if int64(len(p)) > c.left+1 {
		p = p[:c.left+1]
	}
	n, err := c.body.Read(p)
	c.left -= int64(n)
	if c.left < 0 {
		return n + int(c.left), &FetchError{Step: config.ErrBodyTooLarge, URL: c.url}
	}
	return n, err
}

func (c *cappedBody) Close() error { return c.body.Close() }
