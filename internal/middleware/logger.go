package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Logger installs a copy of log on every request context, so handlers can
// use zerolog.Ctx / hlog.FromRequest.
func Logger(log zerolog.Logger) func(http.Handler) http.Handler {
	return hlog.NewHandler(log)
}

// AccessLog writes one entry per request once the response is done.
// Server errors log at error, client errors at warn.
func AccessLog() func(http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		log := hlog.FromRequest(r)

		var e *zerolog.Event
		switch {
		case status >= 500:
			e = log.Error()
		case status >= 400:
			e = log.Warn()
		default:
			e = log.Info()
		}

		e.Str("method", r.Method).
			Str("uri", r.URL.RequestURI()).
			Str("ip", r.RemoteAddr).
			Str("user_agent", r.UserAgent()).
			Int("status", status).
			Int("size", size).
			Dur("latency", duration).
			Msg("API")
	})
}
