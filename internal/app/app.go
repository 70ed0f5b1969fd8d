// Package app はサブコマンドの起動と依存関係のワイヤリングを行う。
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hitoshi/scholarpage/internal/config"
	"github.com/hitoshi/scholarpage/internal/content"
	"github.com/hitoshi/scholarpage/internal/database"
	"github.com/hitoshi/scholarpage/internal/handler"
	"github.com/hitoshi/scholarpage/internal/logger"
	"github.com/hitoshi/scholarpage/internal/metrics"
	"github.com/hitoshi/scholarpage/internal/middleware"
	"github.com/hitoshi/scholarpage/internal/model"
	"github.com/hitoshi/scholarpage/internal/newsfeed"
	"github.com/hitoshi/scholarpage/internal/repository"
	"github.com/hitoshi/scholarpage/internal/security"
	"github.com/hitoshi/scholarpage/internal/theme"
	"github.com/hitoshi/scholarpage/internal/view"
)

// newsTitleMaxRunes はフィード由来のニュース本文の最大文字数。
const newsTitleMaxRunes = 280

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、LOG_LEVELに従ってJSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, slog.LevelInfo)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. 設定されたレベルでロガーを再構成する
	logger.SetupDefault(w, logger.ParseLevel(cfg.LogLevel))

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd, known := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	if !known {
		slog.Warn("unknown command, falling back to serve", slog.String("arg", args[0]))
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
		slog.String("content_source", cfg.ContentSource),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandSeed:
		return runSeed(ctx, cfg)
	default:
		return runServe(ctx, cfg)
	}
}

// runServe はHTTPサーバーモードで起動する。
// コンテンツを読み込んで検証し、全依存関係をワイヤリングしてHTTPサーバーを起動する。
// ctxがキャンセルされる（SIGINT/SIGTERM）とグレースフルシャットダウンを行う。
func runServe(ctx context.Context, cfg *config.Config) error {
	// 1. メトリクス
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	// 2. コンテンツの読み込み
	source, closeSource, err := openContentSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	importer := newsfeed.NewImporter(
		security.NewSSRFGuard(),
		security.NewTextSanitizer(newsTitleMaxRunes),
		collector,
		slog.Default(),
		newsfeed.Config{
			Timeout:     cfg.NewsFeedTimeout,
			MaxBodySize: cfg.NewsFeedMaxSize,
			Limit:       cfg.NewsFeedLimit,
		},
	)

	store, err := loadStore(ctx, source, importer, cfg.NewsFeedURL)
	if err != nil {
		return err
	}

	slog.Info("content loaded",
		slog.Int("news", len(store.News())),
		slog.Int("publications", len(store.Publications())),
		slog.Int("services", len(store.Services())),
	)

	// 3. テーマと描画
	registry, err := theme.NewRegistry(theme.DefaultPresets())
	if err != nil {
		return fmt.Errorf("failed to build theme registry: %w", err)
	}
	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	// 4. ルーターの構築
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigPerMinute(cfg.RateLimitGeneral))
	defer rateLimiter.Stop()

	router := handler.NewRouter(&handler.RouterDeps{
		Content:           store,
		Themes:            registry,
		Renderer:          renderer,
		Logger:            slog.Default(),
		Metrics:           collector,
		MetricsHandler:    metrics.Handler(reg),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		CookieSecure:      cfg.CookieSecure,
		RateLimiter:       rateLimiter,
	})

	// 5. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server listen error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("HTTP server stopped gracefully")
	return nil
}

// newsImporter は外部フィードからニュース項目を取り込む。
type newsImporter interface {
	Import(ctx context.Context, feedURL string) ([]model.NewsItem, error)
}

// openContentSource はCONTENT_SOURCEに対応するコンテンツの読み込み元を返す。
// 戻り値の関数で読み込み元が保持する資源を解放する。
func openContentSource(ctx context.Context, cfg *config.Config) (content.Source, func(), error) {
	if cfg.ContentSource != config.ContentSourcePostgres {
		slog.Info("using file content source", slog.String("path", contentPathLabel(cfg.ContentPath)))
		return content.NewFileSource(cfg.ContentPath), func() {}, nil
	}

	db, err := database.OpenAndPing(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	slog.Info("database connection established")

	return repository.NewPostgresContentRepo(db), func() { db.Close() }, nil
}

// loadStore はコンテンツを読み込み、フィードのニュースを静的ニュースの後ろに追加してStoreを生成する。
// フィードの取り込みに失敗しても静的コンテンツだけで起動を続ける。
func loadStore(ctx context.Context, source content.Source, importer newsImporter, feedURL string) (*content.Store, error) {
	c, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	imported, err := importer.Import(ctx, feedURL)
	if err == nil {
		c.News = append(c.News, imported...)
	}

	store, err := content.NewStore(*c)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	if err := cfg.RequireDatabase(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	version, err := database.RunMigrations(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully", slog.Uint64("schema_version", uint64(version)))
	return nil
}

// contentWriter はコンテンツ全体を置き換えて保存する。
type contentWriter interface {
	Replace(ctx context.Context, c *model.Content) error
}

// runSeed はCONTENT_PATH（空の場合は埋め込みコンテンツ）をデータベースに書き込む。
func runSeed(ctx context.Context, cfg *config.Config) error {
	if err := cfg.RequireDatabase(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	db, err := database.OpenAndPing(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return seed(ctx, content.NewFileSource(cfg.ContentPath), repository.NewPostgresContentRepo(db))
}

// seed はsourceのコンテンツを検証してからwriterに書き込む。
// 検証に失敗した場合は書き込まない。
func seed(ctx context.Context, source content.Source, writer contentWriter) error {
	c, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	if err := content.Validate(*c); err != nil {
		return err
	}

	if err := writer.Replace(ctx, c); err != nil {
		return fmt.Errorf("failed to seed content: %w", err)
	}

	slog.Info("content seeded",
		slog.Int("news", len(c.News)),
		slog.Int("publications", len(c.Publications)),
		slog.Int("services", len(c.Services)),
	)
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

func contentPathLabel(path string) string {
	if path == "" {
		return "(embedded)"
	}
	return path
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
