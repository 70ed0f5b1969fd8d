// Package view はコンテンツとUI選択状態からページを組み立てる純粋関数群と、
// html/templateによる描画を提供する。
package view

import "github.com/hitoshi/scholarpage/internal/model"

// FilterPublications はフィルタに一致する論文だけを元の順序のまま返す。
// FilterAllの場合は入力と同じ並びを返す。一致がない場合は空スライスを返す。
func FilterPublications(pubs []model.Publication, filter model.PublicationFilter) []model.Publication {
	out := make([]model.Publication, 0, len(pubs))
	for _, p := range pubs {
		if filter.Matches(p.Type) {
			out = append(out, p)
		}
	}
	return out
}
