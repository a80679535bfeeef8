package web

import (
	"bufio"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ritzau/network-navigator/pkg/figure"
	"github.com/ritzau/network-navigator/pkg/metrics"
	"github.com/ritzau/network-navigator/pkg/pipeline"
	"github.com/ritzau/network-navigator/pkg/pubsub"
	"github.com/ritzau/network-navigator/pkg/store"
	"github.com/ritzau/network-navigator/pkg/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `{
  "data": [
    {"mode": "lines", "x": [0, 1], "y": [0, 0], "z": [0, 0]},
    {"mode": "markers+text", "name": "Headache", "x": [0, 1], "y": [0, 0], "z": [0, 0],
     "text": ["com_ha_ty_migr", "com_ha_ty_tension"]}
  ],
  "layout": {"template": {"data": {}}, "scene": {"xaxis": {"visible": true}}}
}`

func newTestServer(t *testing.T, loaded bool) (*Server, *store.Store) {
	t.Helper()
	st := store.New()
	if loaded {
		doc, err := figure.Parse([]byte(testDocument))
		require.NoError(t, err)
		st.Publish(doc, "test.json")
	}
	s, err := NewServer(Options{Store: st, Metrics: metrics.NewRegistry()})
	require.NoError(t, err)
	return s, st
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestFigure(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := get(t, s, "/api/figure?zoom=1.5")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1", rec.Header().Get("X-Document-Version"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	doc, err := figure.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, doc.Data, 2)

	_, hasTemplate := doc.Layout[figure.KeyTemplate]
	assert.False(t, hasTemplate)

	text, _ := doc.Data[1].Text()
	assert.Equal(t, []any{"Migraine", "Tension-type Headache"}, text)

	eye := figure.Child(figure.Child(figure.Child(doc.Layout, "scene"), "camera"), "eye")
	x, _ := eye["x"].(json.Number).Float64()
	assert.InDelta(t, 1.0, x, 1e-9)
}

func TestFigureClampsZoomToSliderRange(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := get(t, s, "/api/figure?zoom=10")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc, err := figure.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	eye := figure.Child(figure.Child(figure.Child(doc.Layout, "scene"), "camera"), "eye")
	x, _ := eye["x"].(json.Number).Float64()
	assert.InDelta(t, 0.75, x, 1e-9, "zoom 10 should be held at the maximum of 2")
}

func TestFigureUnencodableTheme(t *testing.T) {
	st := store.New()
	doc, err := figure.Parse([]byte(testDocument))
	require.NoError(t, err)
	st.Publish(doc, "test.json")

	broken := theme.Default()
	broken.Name = "broken"
	broken.LegendX = math.NaN()
	themes := theme.All()
	themes[broken.Name] = broken

	s, err := NewServer(Options{Store: st, Themes: themes, Metrics: metrics.NewRegistry()})
	require.NoError(t, err)

	rec := get(t, s, "/api/figure?theme=broken")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to encode")
	assert.NotEqual(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestFigureDefaultZoom(t *testing.T) {
	s, _ := newTestServer(t, true)
	rec := get(t, s, "/api/figure")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestFigureErrors(t *testing.T) {
	tests := []struct {
		name   string
		loaded bool
		target string
		status int
		body   string
	}{
		{"zero zoom", true, "/api/figure?zoom=0", http.StatusBadRequest, "invalid zoom"},
		{"negative zoom", true, "/api/figure?zoom=-2", http.StatusBadRequest, "invalid zoom"},
		{"non-numeric zoom", true, "/api/figure?zoom=abc", http.StatusBadRequest, "invalid zoom"},
		{"infinite zoom", true, "/api/figure?zoom=Inf", http.StatusBadRequest, "invalid zoom"},
		{"unknown theme", true, "/api/figure?theme=neon", http.StatusBadRequest, "unknown theme"},
		{"no document", false, "/api/figure", http.StatusServiceUnavailable, "no document"},
		{"no document summary", false, "/api/summary", http.StatusServiceUnavailable, "no document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, tt.loaded)
			rec := get(t, s, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestFigureTheme(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := get(t, s, "/api/figure?theme=dark")
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := figure.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "#111418", figure.Child(doc.Layout, "scene")["bgcolor"])
}

func TestSummary(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := get(t, s, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.Version)
	assert.Equal(t, "test.json", resp.Source)
	assert.Equal(t, 2, resp.Summary.Nodes)
	assert.Equal(t, 1, resp.Summary.Edges)
	assert.Equal(t, [][]string{{"Migraine", "Tension-type Headache"}}, resp.Components)
}

func TestLabelsAndThemes(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := get(t, s, "/api/labels")
	require.Equal(t, http.StatusOK, rec.Code)
	var entries map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Equal(t, "Migraine", entries["com_ha_ty_migr"])

	rec = get(t, s, "/api/themes")
	require.Equal(t, http.StatusOK, rec.Code)
	var list ThemeList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, "light", list.Default)
	assert.Len(t, list.Themes, 3)
}

func TestConfig(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := get(t, s, "/api/config")
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg ViewerConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, 0.5, cfg.Zoom.Min)
	assert.Equal(t, 2.0, cfg.Zoom.Max)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, []string{"dark", "light", "transparent"}, cfg.Themes)
	assert.Equal(t, uint64(1), cfg.Version)
}

func TestCustomThemeIsSelectable(t *testing.T) {
	th := pipeline.Default().Theme()
	th.Name = "custom"
	p := pipeline.Default().WithTheme(th)

	s, err := NewServer(Options{Pipeline: p, Metrics: metrics.NewRegistry()})
	require.NoError(t, err)

	rec := get(t, s, "/api/config")
	var cfg ViewerConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, "custom", cfg.Theme)
	assert.Contains(t, cfg.Themes, "custom")
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, true)
	get(t, s, "/api/figure?zoom=0")
	get(t, s, "/api/figure")

	rec := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `navigator_http_requests_total{method="GET",route="/api/figure",status="400"} 1`)
	assert.Contains(t, body, `navigator_renders_total{status="ok",theme="light"} 1`)
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "plotly")
}

func TestSubscribeDocument(t *testing.T) {
	s, _ := newTestServer(t, true)
	require.NoError(t, s.PublishDocumentStatus(pubsub.StateReady, "loaded"))

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/subscribe/document", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var event pubsub.Event
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event))
		assert.Equal(t, pubsub.TopicDocument, event.Topic)

		status := event.Data
		assert.Equal(t, pubsub.StateReady, status.State)
		assert.Equal(t, uint64(1), status.Version)
		assert.Equal(t, 2, status.Traces)
		return
	}
	t.Fatalf("no event received: %v", scanner.Err())
}
