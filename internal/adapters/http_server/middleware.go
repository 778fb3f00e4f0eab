package httpserver

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"hotel_site/internal/adapters/observability"
)

// Timeout puts a deadline on the request context. Handlers see ctx.Err() from their
// downstream calls and answer with their own error body.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ---- status-recording ResponseWriter ----

type srw struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *srw) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *srw) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *srw) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &srw{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		observability.ObserveHTTP(routePattern(r), r.Method, sw.Status(), time.Since(start))
	})
}

// ---- Structured logging middleware ----

func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &srw{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			l.Info().
				Str("route", routePattern(r)).
				Str("method", r.Method).
				Int("status", sw.Status()).
				Dur("duration", time.Since(start)).
				Str("remote", remoteIP(r)).
				Str("ua", r.UserAgent()).
				Msg("http_request")
		})
	}
}

// Picks first X-Forwarded-For IP, else X-Real-IP, else RemoteAddr host.
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// ---- Visitor identity ----

const visitorCookie = "hs_vid"

type ctxKey int

const (
	ctxKeyVisitor ctxKey = iota
	ctxKeyNewVisitor
)

// Visitor makes sure every request carries a visitor id; per-visitor state is keyed by it.
// A missing or malformed cookie gets a fresh ULID and the request is flagged as a new visitor.
func Visitor(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(visitorCookie); err == nil {
				if parsed, err := ulid.ParseStrict(c.Value); err == nil {
					id = parsed.String()
				}
			}
			fresh := id == ""
			if fresh {
				id = ulid.Make().String()
				http.SetCookie(w, &http.Cookie{
					Name:     visitorCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   400 * 24 * 60 * 60,
				})
			}
			ctx := context.WithValue(r.Context(), ctxKeyVisitor, id)
			ctx = context.WithValue(ctx, ctxKeyNewVisitor, fresh)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VisitorID returns the id Visitor attached, or "" outside that middleware.
func VisitorID(r *http.Request) string {
	if v, ok := r.Context().Value(ctxKeyVisitor).(string); ok {
		return v
	}
	return ""
}

// IsNewVisitor reports whether the request arrived without a usable visitor cookie.
// Nothing has been stored for such a visitor yet.
func IsNewVisitor(r *http.Request) bool {
	v, _ := r.Context().Value(ctxKeyNewVisitor).(bool)
	return v
}
