// Package handler はHTTPハンドラーとルーティングを提供する。
package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/scholarpage/internal/middleware"
	"github.com/hitoshi/scholarpage/internal/model"
	"github.com/hitoshi/scholarpage/internal/view"
)

// ContentReader はハンドラーが必要とする読み取り専用のコンテンツストア。
// content.Storeが実装する。
type ContentReader interface {
	Content() model.Content
	Profile() model.Profile
	News() []model.NewsItem
	Publications() []model.Publication
	Publication(id int) (model.Publication, error)
	Services() []model.ServiceRecord
}

// PageRenderer はPageをHTMLとして書き込む。view.Rendererが実装する。
type PageRenderer interface {
	Render(w io.Writer, page view.Page) error
}

// publicationIDParam はURLパラメータ{id}を論文IDとして解釈する。
// 整数でない場合は400レスポンスを書き込んでfalseを返す。
func publicationIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		middleware.WriteAPIError(w, model.NewInvalidIDError(raw))
		return 0, false
	}
	return id, true
}
