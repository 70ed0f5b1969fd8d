// Package theme はスタイルプリセットとテーマ選択の状態機械を提供する。
//
// プリセットはトークン名からスタイル値（CSSクラス文字列）への対応表であり、
// 描画側はテーマIDではなくトークンだけを参照する。
package theme

import (
	"fmt"
	"sort"
)

// Token はプリセットが定義するスタイルトークンの名前。
type Token string

const (
	TokenBg              Token = "bg"
	TokenText            Token = "text"
	TokenTextMuted       Token = "text_muted"
	TokenBodyText        Token = "body_text"
	TokenSecondaryText   Token = "secondary_text"
	TokenFont            Token = "font"
	TokenNavBg           Token = "nav_bg"
	TokenBorder          Token = "border"
	TokenAccent          Token = "accent"
	TokenAccentBg        Token = "accent_bg"
	TokenCardBg          Token = "card_bg"
	TokenHighlight       Token = "highlight"
	TokenLogoBadge       Token = "logo_badge"
	TokenPortraitBg      Token = "portrait_bg"
	TokenCTAButton       Token = "cta_button"
	TokenBadgeConference Token = "badge_conference"
	TokenBadgeJournal    Token = "badge_journal"
	TokenBadgePreprint   Token = "badge_preprint"
	TokenBadgeSoftware   Token = "badge_software"
)

// Tokens はすべてのプリセットが定義しなければならないトークンの一覧。
var Tokens = []Token{
	TokenBg, TokenText, TokenTextMuted, TokenBodyText, TokenSecondaryText,
	TokenFont, TokenNavBg, TokenBorder, TokenAccent,
	TokenAccentBg, TokenCardBg, TokenHighlight, TokenLogoBadge, TokenPortraitBg,
	TokenCTAButton, TokenBadgeConference, TokenBadgeJournal, TokenBadgePreprint,
	TokenBadgeSoftware,
}

// Preset は名前付きのスタイルトークン集合。
type Preset struct {
	ID     string
	Name   string
	Tokens map[Token]string
}

// Token はトークンの値を返す。
func (p Preset) Token(t Token) string {
	return p.Tokens[t]
}

// validate はプリセットがTokensのすべてを定義し、それ以外を含まないことを検証する。
func (p Preset) validate() error {
	if p.ID == "" {
		return fmt.Errorf("preset has empty id")
	}
	var missing []string
	for _, t := range Tokens {
		if _, ok := p.Tokens[t]; !ok {
			missing = append(missing, string(t))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("preset %q is missing tokens: %v", p.ID, missing)
	}
	if len(p.Tokens) != len(Tokens) {
		known := make(map[Token]bool, len(Tokens))
		for _, t := range Tokens {
			known[t] = true
		}
		var extra []string
		for t := range p.Tokens {
			if !known[t] {
				extra = append(extra, string(t))
			}
		}
		sort.Strings(extra)
		return fmt.Errorf("preset %q defines unknown tokens: %v", p.ID, extra)
	}
	return nil
}
