// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// テーマ変更の操作種別。
const (
	ThemeChangeSelect  = "select"
	ThemeChangeAdvance = "advance"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラー、ミドルウェア、ニュースフィード取り込みから利用する。
type MetricsCollector interface {
	RecordPageRender(themeID, filter string)
	RecordThemeChange(mode string)
	RecordCitationRequest()
	RecordNewsImport(outcome string, items int)
	RecordNewsImportLatency(duration time.Duration)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	pageRenders       *prometheus.CounterVec
	themeChanges      *prometheus.CounterVec
	citations         prometheus.Counter
	newsImports       *prometheus.CounterVec
	newsImportItems   prometheus.Counter
	newsImportLatency prometheus.Histogram
	httpStatus        *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		pageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scholarpage_page_renders_total",
			Help: "テーマとフィルタ別のページ描画数",
		}, []string{"theme", "filter"}),
		themeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scholarpage_theme_changes_total",
			Help: "操作種別（select/advance）別のテーマ変更数",
		}, []string{"mode"}),
		citations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scholarpage_citation_requests_total",
			Help: "引用文字列の取得数",
		}),
		newsImports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scholarpage_news_imports_total",
			Help: "結果別のニュースフィード取り込み数",
		}, []string{"outcome"}),
		newsImportItems: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scholarpage_news_import_items_total",
			Help: "取り込んだニュース項目の合計数",
		}),
		newsImportLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scholarpage_news_import_latency_seconds",
			Help:    "ニュースフィード取り込みのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scholarpage_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.pageRenders,
		c.themeChanges,
		c.citations,
		c.newsImports,
		c.newsImportItems,
		c.newsImportLatency,
		c.httpStatus,
	)

	return c
}

// RecordPageRender はページ描画を記録する。
func (c *Collector) RecordPageRender(themeID, filter string) {
	c.pageRenders.WithLabelValues(themeID, filter).Inc()
}

// RecordThemeChange はテーマ変更を記録する。
func (c *Collector) RecordThemeChange(mode string) {
	c.themeChanges.WithLabelValues(mode).Inc()
}

// RecordCitationRequest は引用文字列の取得を記録する。
func (c *Collector) RecordCitationRequest() {
	c.citations.Inc()
}

// RecordNewsImport はニュースフィード取り込みの結果と件数を記録する。
func (c *Collector) RecordNewsImport(outcome string, items int) {
	c.newsImports.WithLabelValues(outcome).Inc()
	if items > 0 {
		c.newsImportItems.Add(float64(items))
	}
}

// RecordNewsImportLatency はニュースフィード取り込みのレイテンシを記録する。
func (c *Collector) RecordNewsImportLatency(duration time.Duration) {
	c.newsImportLatency.Observe(duration.Seconds())
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop は何も記録しないMetricsCollector。メトリクスを使わない構成とテストで使う。
type Nop struct{}

func (Nop) RecordPageRender(string, string)       {}
func (Nop) RecordThemeChange(string)              {}
func (Nop) RecordCitationRequest()                {}
func (Nop) RecordNewsImport(string, int)          {}
func (Nop) RecordNewsImportLatency(time.Duration) {}
func (Nop) RecordHTTPStatus(int)                  {}
