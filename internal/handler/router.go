package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hitoshi/scholarpage/internal/metrics"
	"github.com/hitoshi/scholarpage/internal/middleware"
	"github.com/hitoshi/scholarpage/internal/theme"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// コンテンツと表示
	Content  ContentReader
	Themes   *theme.Registry
	Renderer PageRenderer

	// 観測。Metricsがnilの場合は記録しない。MetricsHandlerがnilの場合は/metricsを公開しない。
	Logger         *slog.Logger
	Metrics        metrics.MetricsCollector
	MetricsHandler http.Handler

	// ミドルウェア依存
	CORSAllowedOrigin string
	CookieSecure      bool
	RateLimiter       *middleware.RateLimiter
}

// NewRouter はページ・APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RealIP → RequestID → Logging → Recovery → SecurityHeaders → RateLimit
//	  ページ: CSRF
//	  /api:   CORS
//
// /health と /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var collector metrics.MetricsCollector = metrics.Nop{}
	if deps.Metrics != nil {
		collector = deps.Metrics
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger, collector))
	r.Use(middleware.NewRecoveryMiddleware(logger))
	r.Use(middleware.NewSecurityHeadersMiddleware(deps.CookieSecure))

	pageHandler := NewPageHandler(deps.Content, deps.Themes, deps.Renderer, collector, PageHandlerConfig{
		CookieSecure: deps.CookieSecure,
	})
	apiHandler := NewAPIHandler(deps.Content, deps.Themes)

	r.Get("/health", Health)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		// --- HTMLページとフォーム ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewCSRFMiddleware(middleware.CSRFConfig{CookieSecure: deps.CookieSecure}))

			r.Get("/", pageHandler.Home)
			r.Post("/theme", pageHandler.SelectTheme)
			r.Post("/theme/next", pageHandler.NextTheme)
			r.Get("/publications/{id}/citation", pageHandler.Citation)
		})

		// --- JSON API（読み取り専用） ---
		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

			r.Get("/profile", apiHandler.Profile)
			r.Get("/news", apiHandler.News)
			r.Get("/services", apiHandler.Services)

			r.Route("/publications", func(r chi.Router) {
				r.Get("/", apiHandler.ListPublications)
				r.Get("/{id}", apiHandler.GetPublication)
			})

			r.Route("/themes", func(r chi.Router) {
				r.Get("/", apiHandler.ListThemes)
				r.Get("/{id}", apiHandler.GetTheme)
			})
		})
	})

	return r
}

// Health はプロセスの稼働状態を返す。
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
