package logging

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		verbosity string
		count     int
		want      slog.Level
		wantErr   bool
	}{
		{"", 0, slog.LevelInfo, false},
		{"", 1, slog.LevelDebug, false},
		{"", 3, LevelTrace, false},
		{"warn", 2, slog.LevelWarn, false},
		{"TRACE", 0, LevelTrace, false},
		{"error", 0, slog.LevelError, false},
		{"loud", 0, slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.verbosity, tt.count)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q, %d) error = %v, wantErr %v", tt.verbosity, tt.count, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q, %d) = %v, want %v", tt.verbosity, tt.count, got, tt.want)
		}
	}
}

func TestCompactHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCompactHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.With("component", "store").WithGroup("doc").Info("document published", "traces", 12, "path", "a b.json")

	line := buf.String()
	for _, want := range []string{"[INFO]", "document published", "| component=store", "doc.traces=12", `doc.path="a b.json"`} {
		if !strings.Contains(line, want) {
			t.Errorf("output %q missing %q", line, want)
		}
	}
}

func TestCompactHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCompactHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	log.Debug("hidden")
	log.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(buf.String(), "[WARN]") {
		t.Errorf("expected WARN line, got %q", buf.String())
	}
}

func TestCompactHandlerTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCompactHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	log.Log(t.Context(), LevelTrace, "stage done")

	if !strings.HasPrefix(buf.String(), "[TRACE]") {
		t.Errorf("expected TRACE prefix, got %q", buf.String())
	}
}

func TestMiddlewareSetsRequestID(t *testing.T) {
	var observed int
	var seenID string
	handler := Middleware(func(r *http.Request, status int, d time.Duration) {
		observed = status
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		http.Error(w, "nope", http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if seenID == "" {
		t.Error("handler did not see a request ID")
	}
	if rec.Header().Get("X-Request-ID") != seenID {
		t.Errorf("response header %q != context id %q", rec.Header().Get("X-Request-ID"), seenID)
	}
	if observed != http.StatusTeapot {
		t.Errorf("observer saw status %d, want %d", observed, http.StatusTeapot)
	}
}

func TestMiddlewareKeepsIncomingRequestID(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc" {
		t.Errorf("X-Request-ID = %q, want abc", got)
	}
}
