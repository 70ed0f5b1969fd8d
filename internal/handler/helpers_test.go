package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hitoshi/scholarpage/internal/content"
	"github.com/hitoshi/scholarpage/internal/model"
	"github.com/hitoshi/scholarpage/internal/theme"
	"github.com/hitoshi/scholarpage/internal/view"
)

// --- テスト用の依存 ---

func testContent() model.Content {
	return model.Content{
		Profile: model.Profile{
			Name:         "Hao Zeng",
			Title:        "Postdoctoral Researcher",
			Affiliations: []string{"National University of Singapore (NUS)"},
			Bio:          "Uncertainty is eternal.",
			Email:        "hao@example.com",
		},
		News: []model.NewsItem{
			{Date: "Jul 2025", Content: "Paper accepted to **ICML 2025**."},
			{Date: "Jan 2025", Content: "Started as a **postdoc**"},
		},
		Publications: []model.Publication{
			{ID: 1, Title: "Scaling Law", Authors: "Hao Zeng, K Liu", Venue: "ICML 2025", Type: model.PublicationTypeConference, Year: "2025"},
			{ID: 2, Title: "Transfer Learning", Authors: "W Zhong, Hao Zeng", Venue: "JBES", Type: model.PublicationTypeJournal, Year: "2024", PDF: "https://pdf.example.com"},
			{ID: 3, Title: "Conformal Survey", Authors: "Hao Zeng", Venue: "arXiv", Type: model.PublicationTypePreprint, Year: "2023"},
		},
		Services: []model.ServiceRecord{
			{Category: "Conference Reviewer", Items: []string{"ICML (2025)", "NeurIPS (2024)"}},
		},
	}
}

func newTestStore(t *testing.T) *content.Store {
	t.Helper()
	s, err := content.NewStore(testContent())
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	return s
}

func newTestRegistry(t *testing.T) *theme.Registry {
	t.Helper()
	r, err := theme.NewRegistry(theme.DefaultPresets())
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	return r
}

func newTestRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	r, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	return r
}

// failingRenderer は常に描画エラーを返すPageRenderer。
type failingRenderer struct{}

func (failingRenderer) Render(io.Writer, view.Page) error {
	return errors.New("template exploded")
}

// recordingMetrics はMetricsCollectorの呼び出しを記録するモック。
type recordingMetrics struct {
	mu           sync.Mutex
	renders      []string
	themeChanges []string
	citations    int
	statuses     []int
}

func (m *recordingMetrics) RecordPageRender(themeID, filter string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renders = append(m.renders, themeID+"/"+filter)
}

func (m *recordingMetrics) RecordThemeChange(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.themeChanges = append(m.themeChanges, mode)
}

func (m *recordingMetrics) RecordCitationRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.citations++
}

func (m *recordingMetrics) RecordNewsImport(string, int)          {}
func (m *recordingMetrics) RecordNewsImportLatency(time.Duration) {}

func (m *recordingMetrics) RecordHTTPStatus(code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, code)
}

// newTestRouter はテスト用の依存でNewRouterを組み立てる。
func newTestRouter(t *testing.T, collector *recordingMetrics) http.Handler {
	t.Helper()
	return NewRouter(&RouterDeps{
		Content:           newTestStore(t),
		Themes:            newTestRegistry(t),
		Renderer:          newTestRenderer(t),
		Metrics:           collector,
		CORSAllowedOrigin: "*",
	})
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
