package view

import (
	"github.com/hitoshi/scholarpage/internal/model"
	"github.com/hitoshi/scholarpage/internal/theme"
)

// Selection はUI選択状態（論文フィルタとアクティブテーマ）を表す。
// リクエストごとに生成し、描画関数へ明示的に渡す。
type Selection struct {
	Filter model.PublicationFilter
	Theme  *theme.Selector
}

// NewSelection はフィルタAllと既定テーマを初期状態とするSelectionを生成する。
func NewSelection(registry *theme.Registry) *Selection {
	return &Selection{
		Filter: model.FilterAll,
		Theme:  theme.NewSelector(registry),
	}
}

// SelectFilter は有効なフィルタ値の場合だけフィルタを切り替える。
// 無効な値では直前の状態を保持しfalseを返す。
func (s *Selection) SelectFilter(raw string) bool {
	f, ok := model.ParseFilter(raw)
	if !ok {
		return false
	}
	s.Filter = f
	return true
}

// SelectTheme は有効なテーマIDの場合だけテーマを切り替える。
func (s *Selection) SelectTheme(id string) bool {
	return s.Theme.Select(id)
}

// AdvanceTheme は宣言順で次のテーマに切り替える。
func (s *Selection) AdvanceTheme() {
	s.Theme.Advance()
}
