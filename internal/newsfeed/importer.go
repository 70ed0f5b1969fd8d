// Package newsfeed は外部のRSS/Atomフィードからニュース項目を取り込む。
// 取り込みは起動時のコンテンツ読み込みで一度だけ行う。
package newsfeed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/hitoshi/scholarpage/internal/model"
)

// DateLayout はニュース項目の日付ラベルの書式（例: "Jul 2025"）。
const DateLayout = "Jan 2006"

// URLValidator はSSRF検証のインターフェース。
type URLValidator interface {
	ValidateURL(rawURL string) error
	NewSafeClient(timeout time.Duration) *http.Client
}

// TextCleaner はフィード由来の文字列をプレーンテキストに正規化する。
type TextCleaner interface {
	PlainText(raw string) string
}

// Recorder は取り込み結果の記録先。
type Recorder interface {
	RecordNewsImport(outcome string, items int)
	RecordNewsImportLatency(duration time.Duration)
}

// Config は取り込みの上限設定。
type Config struct {
	Timeout     time.Duration
	MaxBodySize int64
	Limit       int
}

// Importer はフィードをフェッチし、ニュース項目へ変換する。
type Importer struct {
	guard    URLValidator
	cleaner  TextCleaner
	recorder Recorder
	logger   *slog.Logger
	cfg      Config
}

// NewImporter はImporterを生成する。
func NewImporter(guard URLValidator, cleaner TextCleaner, recorder Recorder, logger *slog.Logger, cfg Config) *Importer {
	return &Importer{
		guard:    guard,
		cleaner:  cleaner,
		recorder: recorder,
		logger:   logger,
		cfg:      cfg,
	}
}

// Import はfeedURLのフィードから最大Limit件のニュース項目をフィードの記載順で返す。
// feedURLが空の場合は何もせずnilを返す。
func (i *Importer) Import(ctx context.Context, feedURL string) ([]model.NewsItem, error) {
	if feedURL == "" {
		i.recorder.RecordNewsImport(string(OutcomeDisabled), 0)
		return nil, nil
	}

	start := time.Now()
	items, outcome, err := i.fetch(ctx, feedURL)
	i.recorder.RecordNewsImportLatency(time.Since(start))
	i.recorder.RecordNewsImport(string(outcome), len(items))

	if err != nil {
		i.logger.Warn("ニュースフィードの取り込みに失敗しました",
			slog.String("feed_url", feedURL),
			slog.String("outcome", string(outcome)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	i.logger.Info("ニュースフィードを取り込みました",
		slog.String("feed_url", feedURL),
		slog.Int("items", len(items)),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)
	return items, nil
}

func (i *Importer) fetch(ctx context.Context, feedURL string) ([]model.NewsItem, Outcome, error) {
	body, contentType, outcome, err := i.get(ctx, feedURL)
	if err != nil {
		return nil, outcome, err
	}

	// ブログのトップページなどHTMLが返った場合はheadのalternateリンクを1段だけ辿る
	if isHTMLPage(contentType, body) {
		link, ok := selectFeedLink(feedLinksFromHTML(body, feedURL), feedURL)
		if !ok {
			return nil, OutcomeNotDetected, fmt.Errorf("no feed link found in %s", feedURL)
		}
		i.logger.Debug("フィードリンクを検出しました",
			slog.String("page_url", feedURL),
			slog.String("feed_url", link.URL),
		)
		if body, _, outcome, err = i.get(ctx, link.URL); err != nil {
			return nil, outcome, err
		}
	}

	parsed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, OutcomeParseError, fmt.Errorf("フィードのパースに失敗: %w", err)
	}

	items := i.convertItems(parsed.Items)
	if len(items) == 0 {
		return nil, OutcomeEmpty, nil
	}
	return items, OutcomeOK, nil
}

// get はSSRF検証を通したURLをフェッチし、ボディとContent-Typeを返す。
func (i *Importer) get(ctx context.Context, rawURL string) ([]byte, string, Outcome, error) {
	if err := i.guard.ValidateURL(rawURL); err != nil {
		return nil, "", OutcomeBlocked, fmt.Errorf("SSRF検証に失敗: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", OutcomeRequestError, fmt.Errorf("リクエスト作成に失敗: %w", err)
	}
	req.Header.Set("User-Agent", "scholarpage/1.0 news importer")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, text/html;q=0.5, */*;q=0.1")

	resp, err := i.guard.NewSafeClient(i.cfg.Timeout).Do(req)
	if err != nil {
		return nil, "", OutcomeRequestError, fmt.Errorf("HTTPリクエスト失敗: %w", err)
	}
	defer resp.Body.Close()

	if outcome := classifyStatus(resp.StatusCode); outcome != OutcomeOK {
		return nil, "", outcome, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	// 上限を1バイト超えて読み、超過を検出する
	readLimit := i.cfg.MaxBodySize
	if readLimit < math.MaxInt64 {
		readLimit++
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, readLimit))
	if err != nil {
		return nil, "", OutcomeRequestError, fmt.Errorf("レスポンス読み取り失敗: %w", err)
	}
	if int64(len(body)) > i.cfg.MaxBodySize {
		return nil, "", OutcomeTooLarge, fmt.Errorf("response body exceeds %d bytes", i.cfg.MaxBodySize)
	}

	return body, resp.Header.Get("Content-Type"), OutcomeOK, nil
}

// convertItems はgofeedの記事をニュース項目に変換する。タイトルが空の記事は読み飛ばす。
func (i *Importer) convertItems(feedItems []*gofeed.Item) []model.NewsItem {
	items := make([]model.NewsItem, 0, min(len(feedItems), max(i.cfg.Limit, 0)))
	for _, fi := range feedItems {
		if len(items) >= i.cfg.Limit {
			break
		}
		if fi == nil {
			continue
		}
		title := i.cleaner.PlainText(fi.Title)
		if title == "" {
			continue
		}
		items = append(items, model.NewsItem{
			Date:    dateLabel(fi),
			Content: title,
		})
	}
	return items
}

// dateLabel は公開日時（なければ更新日時）を"Jan 2006"形式で返す。どちらもない場合は空文字列。
func dateLabel(fi *gofeed.Item) string {
	switch {
	case fi.PublishedParsed != nil:
		return fi.PublishedParsed.UTC().Format(DateLayout)
	case fi.UpdatedParsed != nil:
		return fi.UpdatedParsed.UTC().Format(DateLayout)
	default:
		return ""
	}
}
