package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/scholarpage/internal/content"
	"github.com/hitoshi/scholarpage/internal/metrics"
	"github.com/hitoshi/scholarpage/internal/middleware"
	"github.com/hitoshi/scholarpage/internal/model"
	"github.com/hitoshi/scholarpage/internal/theme"
	"github.com/hitoshi/scholarpage/internal/view"
)

const (
	// ThemeCookieName はアクティブテーマIDを保持するCookie名。
	ThemeCookieName   = "theme"
	themeCookieMaxAge = 365 * 24 * 60 * 60
)

// PageHandlerConfig はPageHandlerの設定。
type PageHandlerConfig struct {
	CookieSecure bool
}

// PageHandler はHTMLページとテーマ切り替えフォームのHTTPハンドラー。
type PageHandler struct {
	content  ContentReader
	registry *theme.Registry
	renderer PageRenderer
	metrics  metrics.MetricsCollector
	config   PageHandlerConfig
	now      func() time.Time
}

// NewPageHandler はPageHandlerを生成する。
func NewPageHandler(content ContentReader, registry *theme.Registry, renderer PageRenderer, collector metrics.MetricsCollector, config PageHandlerConfig) *PageHandler {
	return &PageHandler{
		content:  content,
		registry: registry,
		renderer: renderer,
		metrics:  collector,
		config:   config,
		now:      time.Now,
	}
}

// Home はホームページを描画する。
// GET /?type=Conference&theme=night
//
// テーマはCookieから復元し、クエリのthemeが有効な場合はそれを優先する。
// 無効なtype・themeは無視して直前の状態を保つ。
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	sel := h.selectionFromCookie(r)
	q := r.URL.Query()
	if v := q.Get("theme"); v != "" {
		sel.SelectTheme(v)
	}
	if v := q.Get("type"); v != "" {
		sel.SelectFilter(v)
	}

	page := view.Build(h.content.Content(), sel, view.Options{
		Year:      h.now().Year(),
		CSRFToken: middleware.CSRFTokenFromContext(r.Context()),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, page); err != nil {
		slog.Error("failed to render page",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		middleware.WriteInternalServerError(w)
		return
	}

	h.metrics.RecordPageRender(sel.Theme.ActiveID(), string(sel.Filter))
}

// SelectTheme はフォームで指定されたテーマに切り替える。
// POST /theme (theme=<id>, type=<filter>)
//
// 未知のテーマIDの場合はCookieを更新せずにリダイレクトする。
func (h *PageHandler) SelectTheme(w http.ResponseWriter, r *http.Request) {
	sel := h.selectionFromCookie(r)

	id := r.PostFormValue("theme")
	if sel.SelectTheme(id) {
		h.setThemeCookie(w, sel.Theme.ActiveID())
		h.metrics.RecordThemeChange(metrics.ThemeChangeSelect)
	} else {
		slog.Debug("ignored unknown theme",
			slog.String("theme", id),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
	}

	http.Redirect(w, r, homeLocation(r.PostFormValue("type")), http.StatusSeeOther)
}

// NextTheme は宣言順で次のテーマに切り替える。
// POST /theme/next (type=<filter>)
func (h *PageHandler) NextTheme(w http.ResponseWriter, r *http.Request) {
	sel := h.selectionFromCookie(r)
	sel.AdvanceTheme()

	h.setThemeCookie(w, sel.Theme.ActiveID())
	h.metrics.RecordThemeChange(metrics.ThemeChangeAdvance)

	http.Redirect(w, r, homeLocation(r.PostFormValue("type")), http.StatusSeeOther)
}

// Citation は論文の引用テキストを返す。
// GET /publications/{id}/citation
func (h *PageHandler) Citation(w http.ResponseWriter, r *http.Request) {
	id, ok := publicationIDParam(w, r)
	if !ok {
		return
	}

	pub, err := h.content.Publication(id)
	if errors.Is(err, content.ErrPublicationNotFound) {
		middleware.WriteAPIError(w, model.NewPublicationNotFoundError(id))
		return
	}
	if err != nil {
		slog.Error("failed to look up publication",
			slog.Int("id", id),
			slog.String("error", err.Error()),
		)
		middleware.WriteInternalServerError(w)
		return
	}

	h.metrics.RecordCitationRequest()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(view.Citation(view.OwnerKey(h.content.Profile().Name), pub)))
}

// selectionFromCookie はthemeCookieのテーマIDを反映したSelectionを返す。
// Cookieが無いか値が無効な場合は既定テーマのままになる。
func (h *PageHandler) selectionFromCookie(r *http.Request) *view.Selection {
	sel := view.NewSelection(h.registry)
	if c, err := r.Cookie(ThemeCookieName); err == nil {
		sel.SelectTheme(c.Value)
	}
	return sel
}

func (h *PageHandler) setThemeCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   themeCookieMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// homeLocation はフォーム送信後のリダイレクト先を返す。
// フィルタバッジのリンクと同じURLに戻し、研究セクションのアンカーを保つ。
// 無効なフィルタはAllとして扱う。
func homeLocation(rawFilter string) string {
	f, ok := model.ParseFilter(rawFilter)
	if !ok {
		f = model.FilterAll
	}
	return view.FilterHref(f)
}
