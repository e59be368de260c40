package httptransport

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"restaurant-seating/internal/logging"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
)

// APILogMiddleware writes one JSON access line per request into the same
// sink as the application log.
func APILogMiddleware() func(http.Handler) http.Handler {
	logger := slog.New(slog.NewJSONHandler(logging.Writer(), nil))
	return httplog.RequestLogger(logger, &httplog.Options{
		Level:              slog.LevelInfo,
		Schema:             httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
		LogRequestBody:     func(*http.Request) bool { return false },
		LogResponseBody:    func(*http.Request) bool { return false },
		LogRequestHeaders:  []string{},
		LogResponseHeaders: []string{},
		LogExtraAttrs:      accessAttrs,
	})
}

func accessAttrs(req *http.Request, _ string, _ int) []slog.Attr {
	route := req.URL.Path
	if rc := chi.RouteContext(req.Context()); rc != nil && rc.RoutePattern() != "" {
		route = rc.RoutePattern()
	}
	attrs := []slog.Attr{
		slog.String("request_id", chimw.GetReqID(req.Context())),
		slog.String("method", req.Method),
		slog.String("route", route),
	}
	if id := chi.URLParam(req, "party_id"); id != "" {
		attrs = append(attrs, slog.String("party_id", id))
	}
	if id := chi.URLParam(req, "table_id"); id != "" {
		attrs = append(attrs, slog.String("table_id", id))
	}
	return attrs
}

// BodyCaptureMiddleware attaches up to limit bytes of the request and response
// bodies to the access line. Event streams pass through untouched.
func BodyCaptureMiddleware(limit int) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = 4096
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSSERequest(r) {
				next.ServeHTTP(w, r)
				return
			}
			in := &boundedBuffer{limit: limit}
			if r.Body != nil {
				r.Body = struct {
					io.Reader
					io.Closer
				}{io.TeeReader(r.Body, in), r.Body}
			}
			out := &boundedBuffer{limit: limit}
			next.ServeHTTP(&teeResponseWriter{ResponseWriter: w, copy: out}, r)

			ctx := r.Context()
			httplog.SetAttrs(ctx, slog.Any("request_body", in.value()))
			httplog.SetAttrs(ctx, slog.Bool("request_body_truncated", in.truncated))
			httplog.SetAttrs(ctx, slog.Any("response_body", out.value()))
			httplog.SetAttrs(ctx, slog.Bool("response_body_truncated", out.truncated))
		})
	}
}

type boundedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if room := b.limit - b.buf.Len(); n > room {
		b.truncated = true
		p = p[:max(room, 0)]
	}
	b.buf.Write(p)
	return n, nil
}

// value decodes JSON bodies so they nest in the access line.
func (b *boundedBuffer) value() any {
	if b.buf.Len() == 0 {
		return ""
	}
	var v any
	if !b.truncated && json.Unmarshal(b.buf.Bytes(), &v) == nil {
		return v
	}
	return b.buf.String()
}

type teeResponseWriter struct {
	http.ResponseWriter
	copy *boundedBuffer
}

func (t *teeResponseWriter) Write(p []byte) (int, error) {
	_, _ = t.copy.Write(p)
	return t.ResponseWriter.Write(p)
}

func (t *teeResponseWriter) Flush() {
	if f, ok := t.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// AdminAuthMiddleware guards operator routes. An empty key leaves them open.
func AdminAuthMiddleware(adminKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey != "" && !CheckAdminAuth(r, adminKey) {
				WriteHTTPError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CheckAdminAuth accepts the key either as X-Admin-Key or as a bearer token.
func CheckAdminAuth(r *http.Request, adminKey string) bool {
	got := r.Header.Get("X-Admin-Key")
	if got == "" {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			return false
		}
		got = token
	}
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(adminKey)) == 1
}

func isSSERequest(r *http.Request) bool {
	return r.URL.Path == "/api/events" || strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}
