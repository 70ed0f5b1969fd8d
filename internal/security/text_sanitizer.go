package security

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer は外部フィード由来の文字列からマークアップを取り除き、
// 1行のプレーンテキストに正規化する。
type TextSanitizer struct {
	policy   *bluemonday.Policy
	maxRunes int
}

// NewTextSanitizer はTextSanitizerを生成する。maxRunesが0以下の場合は長さを制限しない。
func NewTextSanitizer(maxRunes int) *TextSanitizer {
	return &TextSanitizer{
		policy:   bluemonday.StrictPolicy(),
		maxRunes: maxRunes,
	}
}

// PlainText はタグをすべて除去し、エンティティを復元して空白を1つに畳む。
// 結果は描画時にテンプレートでエスケープされる前提の生テキスト。
func (s *TextSanitizer) PlainText(raw string) string {
	stripped := html.UnescapeString(s.policy.Sanitize(raw))
	text := strings.Join(strings.Fields(stripped), " ")

	if s.maxRunes > 0 && utf8.RuneCountInString(text) > s.maxRunes {
		runes := []rune(text)
		text = strings.TrimSpace(string(runes[:s.maxRunes])) + "…"
	}
	return text
}
