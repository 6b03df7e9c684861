package server

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/tartampluch/go-mmcal/internal/config"
)

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// RequestIDMiddleware tags each request with an ID, keeping one sent by the client.
func RequestIDMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(config.HeaderRequestID)
			if id == "" {
				id = newRequestID()
				r.Header.Set(config.HeaderRequestID, id)
			}
			w.Header().Set(config.HeaderRequestID, id)
			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware logs every request at debug level, failures at warn.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			level := slog.LevelDebug
			if wrapped.statusCode >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, config.MsgHTTPRequest,
				slog.String(config.LogKeyMethod, r.Method),
				slog.String(config.LogKeyPath, r.URL.Path),
				slog.String(config.LogKeyRemote, r.RemoteAddr),
				slog.Int(config.LogKeyStatus, wrapped.statusCode),
				slog.Int64(config.LogKeyDuration, time.Since(start).Milliseconds()),
				slog.String(config.LogKeyRequestID, r.Header.Get(config.HeaderRequestID)),
			)
		})
	}
}

// responseWriter captures the status code written by a handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RecoveryMiddleware turns a panic into a 500 JSON answer.
func RecoveryMiddleware(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error(config.MsgPanic,
						slog.Any(config.LogKeyError, err),
						slog.String(config.LogKeyPath, r.URL.Path),
						slog.String(config.LogKeyRequestID, r.Header.Get(config.HeaderRequestID)),
					)
					WriteInternalError(w, config.HTTPMsgInternalErr)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func newRequestID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return time.Now().UTC().Format("20060102150405") + "-" + hex.EncodeToString(b[:])
}
