package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/scholarpage/internal/content"
	"github.com/hitoshi/scholarpage/internal/middleware"
	"github.com/hitoshi/scholarpage/internal/model"
	"github.com/hitoshi/scholarpage/internal/theme"
	"github.com/hitoshi/scholarpage/internal/view"
)

// APIHandler は読み取り専用JSON APIのHTTPハンドラー。
type APIHandler struct {
	content  ContentReader
	registry *theme.Registry
}

// NewAPIHandler はAPIHandlerを生成する。
func NewAPIHandler(content ContentReader, registry *theme.Registry) *APIHandler {
	return &APIHandler{
		content:  content,
		registry: registry,
	}
}

// --- レスポンス型 ---

// spanResponse は強調記法を分解した表示単位。
type spanResponse struct {
	Text       string `json:"text"`
	Emphasized bool   `json:"emphasized"`
}

// newsResponse はニュース1件。生の本文と分解済みの表示単位を両方含む。
type newsResponse struct {
	Date    string         `json:"date"`
	Content string         `json:"content"`
	Spans   []spanResponse `json:"spans"`
}

// publicationResponse は論文1件と引用テキスト。
type publicationResponse struct {
	model.Publication
	Citation string `json:"citation"`
}

// publicationListResponse は論文一覧のレスポンス。
type publicationListResponse struct {
	Filter       string                `json:"filter"`
	Publications []publicationResponse `json:"publications"`
}

// themeResponse はテーマプリセット。
type themeResponse struct {
	ID     string                 `json:"id"`
	Name   string                 `json:"name"`
	Tokens map[theme.Token]string `json:"tokens"`
}

// Profile はプロフィールを返す。
// GET /api/profile
func (h *APIHandler) Profile(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.content.Profile())
}

// News は記述順のニュース一覧を返す。
// GET /api/news
func (h *APIHandler) News(w http.ResponseWriter, r *http.Request) {
	items := h.content.News()
	resp := make([]newsResponse, 0, len(items))
	for _, n := range items {
		spans := view.ParseEmphasis(n.Content)
		sr := make([]spanResponse, 0, len(spans))
		for _, s := range spans {
			sr = append(sr, spanResponse{Text: s.Text, Emphasized: s.Emphasized})
		}
		resp = append(resp, newsResponse{Date: n.Date, Content: n.Content, Spans: sr})
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

// Services は学術サービスの一覧を返す。
// GET /api/services
func (h *APIHandler) Services(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.content.Services())
}

// ListPublications はフィルタ済みの論文一覧を返す。
// GET /api/publications?type=Conference
//
// typeが省略された場合はAll。未知のtypeは400を返す。
func (h *APIHandler) ListPublications(w http.ResponseWriter, r *http.Request) {
	filter := model.FilterAll
	if raw := r.URL.Query().Get("type"); raw != "" {
		f, ok := model.ParseFilter(raw)
		if !ok {
			middleware.WriteAPIError(w, model.NewInvalidFilterError(raw))
			return
		}
		filter = f
	}

	ownerKey := view.OwnerKey(h.content.Profile().Name)
	pubs := view.FilterPublications(h.content.Publications(), filter)

	resp := publicationListResponse{
		Filter:       string(filter),
		Publications: make([]publicationResponse, 0, len(pubs)),
	}
	for _, p := range pubs {
		resp.Publications = append(resp.Publications, publicationResponse{
			Publication: p,
			Citation:    view.Citation(ownerKey, p),
		})
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

// GetPublication は論文1件を返す。
// GET /api/publications/{id}
func (h *APIHandler) GetPublication(w http.ResponseWriter, r *http.Request) {
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

	middleware.WriteJSON(w, http.StatusOK, publicationResponse{
		Publication: pub,
		Citation:    view.Citation(view.OwnerKey(h.content.Profile().Name), pub),
	})
}

// ListThemes は宣言順のテーマプリセット一覧を返す。
// GET /api/themes
func (h *APIHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	presets := h.registry.Presets()
	resp := make([]themeResponse, 0, len(presets))
	for _, p := range presets {
		resp = append(resp, toThemeResponse(p))
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}

// GetTheme はテーマプリセット1件を返す。
// GET /api/themes/{id}
func (h *APIHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.registry.Lookup(id)
	if !ok {
		middleware.WriteAPIError(w, model.NewThemeNotFoundError(id))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, toThemeResponse(p))
}

func toThemeResponse(p theme.Preset) themeResponse {
	tokens := make(map[theme.Token]string, len(p.Tokens))
	for k, v := range p.Tokens {
		tokens[k] = v
	}
	return themeResponse{ID: p.ID, Name: p.Name, Tokens: tokens}
}
