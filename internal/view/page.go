package view

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hitoshi/scholarpage/internal/model"
	"github.com/hitoshi/scholarpage/internal/theme"
)

// Style はアクティブなプリセットから読み出したトークン値。
// テンプレートはテーマIDではなくこの値だけを参照する。
type Style struct {
	Bg              string
	Text            string
	TextMuted       string
	BodyText        string
	SecondaryText   string
	Font            string
	NavBg           string
	Border          string
	Accent          string
	AccentBg        string
	CardBg          string
	Highlight       string
	LogoBadge       string
	PortraitBg      string
	CTAButton       string
	BadgeConference string
	BadgeJournal    string
	BadgePreprint   string
	BadgeSoftware   string
}

// Link は表示ラベルとURLの組。
type Link struct {
	Label string
	Href  string
}

// NavItem はヘッダーのページ内ナビゲーション項目。
type NavItem struct {
	Label  string
	Anchor string
}

// ThemeChoice はテーマ選択メニューの1項目。
type ThemeChoice struct {
	ID     string
	Name   string
	Active bool
}

// FilterBadge は論文フィルタボタン。
type FilterBadge struct {
	Label  string
	Href   string
	Active bool
}

// NewsView は描画用に強調記法を分解したニュース項目。
type NewsView struct {
	Date  string
	Spans []Span
}

// PublicationView は描画用の論文情報。
type PublicationView struct {
	ID          int
	Title       string
	Authors     []AuthorSpan
	Type        string
	BadgeClass  string
	Venue       string
	Year        string
	PDF         string
	Code        string
	Citation    string
	CitationURL string
}

// Page はコンテンツとUI選択状態から組み立てた描画ツリー。
type Page struct {
	Style Style

	OwnerName    string
	LocalName    string
	Initial      string
	Headline     string
	Location     string
	Bio          string
	Email        string
	ContactNote  string
	Nav          []NavItem
	ExternalNav  []Link
	Connect      []Link
	FooterLinks  []Link
	ThemeChoices []ThemeChoice
	News         []NewsView
	Filters      []FilterBadge
	Filter       string
	Publications []PublicationView
	Services     []model.ServiceRecord
	Year         int
	CSRFToken    string
}

// Options はページ組み立て時の付随情報。
type Options struct {
	// Year はフッターの著作権表記に使う年。
	Year int
	// CSRFToken はテーマ切り替えフォームに埋め込むトークン。
	CSRFToken string
}

// Build はコンテンツとUI選択状態からPageを組み立てる。副作用はない。
func Build(c model.Content, sel *Selection, opts Options) Page {
	preset := sel.Theme.Active()
	style := styleFrom(preset)
	profile := c.Profile
	ownerKey := OwnerKey(profile.Name)

	page := Page{
		Style:       style,
		OwnerName:   profile.Name,
		LocalName:   profile.LocalName,
		Initial:     initial(profile.Name),
		Headline:    headline(profile),
		Location:    profile.Location,
		Bio:         profile.Bio,
		Email:       profile.Email,
		ContactNote: profile.ContactNote,
		Nav:         navItems(),
		ExternalNav: nonEmptyLinks(Link{"CV", profile.CVURL}, Link{"Teaching", profile.TeachingURL}, Link{"Seminars", profile.SeminarsURL}),
		FooterLinks: nonEmptyLinks(Link{"Google Scholar", profile.Scholar}, Link{"GitHub", profile.GitHub}, Link{"OpenReview", profile.OpenReview}),
		Filter:      string(sel.Filter),
		Services:    c.Services,
		Year:        opts.Year,
		CSRFToken:   opts.CSRFToken,
	}
	page.Connect = page.FooterLinks
	if profile.Email != "" {
		page.Connect = append(append([]Link{}, page.FooterLinks...), Link{"Email", "mailto:" + profile.Email})
	}

	activeID := sel.Theme.ActiveID()
	for _, p := range sel.Theme.Presets() {
		page.ThemeChoices = append(page.ThemeChoices, ThemeChoice{ID: p.ID, Name: p.Name, Active: p.ID == activeID})
	}

	page.News = make([]NewsView, 0, len(c.News))
	for _, n := range c.News {
		page.News = append(page.News, NewsView{Date: n.Date, Spans: ParseEmphasis(n.Content)})
	}

	for _, f := range model.Filters() {
		page.Filters = append(page.Filters, FilterBadge{
			Label:  string(f),
			Href:   FilterHref(f),
			Active: f == sel.Filter,
		})
	}

	filtered := FilterPublications(c.Publications, sel.Filter)
	page.Publications = make([]PublicationView, 0, len(filtered))
	for _, p := range filtered {
		page.Publications = append(page.Publications, PublicationView{
			ID:          p.ID,
			Title:       p.Title,
			Authors:     HighlightAuthors(p.Authors, profile.Name),
			Type:        string(p.Type),
			BadgeClass:  badgeClass(style, p.Type),
			Venue:       p.Venue,
			Year:        p.Year,
			PDF:         p.PDF,
			Code:        p.Code,
			Citation:    Citation(ownerKey, p),
			CitationURL: "/publications/" + strconv.Itoa(p.ID) + "/citation",
		})
	}

	return page
}

// FilterHref はフィルタを適用したページのURLを返す。
func FilterHref(f model.PublicationFilter) string {
	if f == model.FilterAll {
		return "/#research"
	}
	return "/?" + url.Values{"type": {string(f)}}.Encode() + "#research"
}

func styleFrom(p theme.Preset) Style {
	return Style{
		Bg:              p.Token(theme.TokenBg),
		Text:            p.Token(theme.TokenText),
		TextMuted:       p.Token(theme.TokenTextMuted),
		BodyText:        p.Token(theme.TokenBodyText),
		SecondaryText:   p.Token(theme.TokenSecondaryText),
		Font:            p.Token(theme.TokenFont),
		NavBg:           p.Token(theme.TokenNavBg),
		Border:          p.Token(theme.TokenBorder),
		Accent:          p.Token(theme.TokenAccent),
		AccentBg:        p.Token(theme.TokenAccentBg),
		CardBg:          p.Token(theme.TokenCardBg),
		Highlight:       p.Token(theme.TokenHighlight),
		LogoBadge:       p.Token(theme.TokenLogoBadge),
		PortraitBg:      p.Token(theme.TokenPortraitBg),
		CTAButton:       p.Token(theme.TokenCTAButton),
		BadgeConference: p.Token(theme.TokenBadgeConference),
		BadgeJournal:    p.Token(theme.TokenBadgeJournal),
		BadgePreprint:   p.Token(theme.TokenBadgePreprint),
		BadgeSoftware:   p.Token(theme.TokenBadgeSoftware),
	}
}

func badgeClass(s Style, t model.PublicationType) string {
	switch t {
	case model.PublicationTypeConference:
		return s.BadgeConference
	case model.PublicationTypeJournal:
		return s.BadgeJournal
	case model.PublicationTypePreprint:
		return s.BadgePreprint
	case model.PublicationTypeSoftware:
		return s.BadgeSoftware
	default:
		return ""
	}
}

func navItems() []NavItem {
	labels := []string{"Home", "Research", "Service", "Contact"}
	items := make([]NavItem, len(labels))
	for i, l := range labels {
		items[i] = NavItem{Label: l, Anchor: "#" + strings.ToLower(l)}
	}
	return items
}

func nonEmptyLinks(links ...Link) []Link {
	out := make([]Link, 0, len(links))
	for _, l := range links {
		if l.Href != "" {
			out = append(out, l)
		}
	}
	return out
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return string(r)
}

// headline は「肩書 @ 所属略称 & 所属略称」形式の見出しを返す。
// 所属名の末尾に括弧書きの略称があればそれを使う。
func headline(p model.Profile) string {
	if len(p.Affiliations) == 0 {
		return p.Title
	}
	short := make([]string, 0, len(p.Affiliations))
	for _, a := range p.Affiliations {
		short = append(short, shortAffiliation(a))
	}
	if p.Title == "" {
		return strings.Join(short, " & ")
	}
	return p.Title + " @ " + strings.Join(short, " & ")
}

func shortAffiliation(a string) string {
	a = strings.TrimSpace(a)
	if strings.HasSuffix(a, ")") {
		if open := strings.LastIndex(a, "("); open >= 0 {
			if abbr := strings.TrimSpace(a[open+1 : len(a)-1]); abbr != "" {
				return abbr
			}
		}
	}
	return a
}
