package model

import "strings"

// PublicationType は論文の種別を表す。
type PublicationType string

const (
	// PublicationTypeConference は国際会議論文。
	PublicationTypeConference PublicationType = "Conference"
	// PublicationTypeJournal はジャーナル論文。
	PublicationTypeJournal PublicationType = "Journal"
	// PublicationTypePreprint はプレプリント。
	PublicationTypePreprint PublicationType = "Preprint"
	// PublicationTypeSoftware はソフトウェア成果物。
	PublicationTypeSoftware PublicationType = "Software"
)

// PublicationTypes は宣言順の論文種別一覧。フィルタボタンの表示順にも使う。
var PublicationTypes = []PublicationType{
	PublicationTypeConference,
	PublicationTypeJournal,
	PublicationTypePreprint,
	PublicationTypeSoftware,
}

// Valid は種別が定義済みの値かどうかを返す。
func (t PublicationType) Valid() bool {
	for _, v := range PublicationTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Publication は論文1件を表す。
// PDFとCodeは任意で、空文字列の場合は対応するリンクを表示しない。
type Publication struct {
	ID      int             `yaml:"id" json:"id"`
	Title   string          `yaml:"title" json:"title"`
	Authors string          `yaml:"authors" json:"authors"`
	Venue   string          `yaml:"venue" json:"venue"`
	Type    PublicationType `yaml:"type" json:"type"`
	Year    string          `yaml:"year" json:"year"`
	PDF     string          `yaml:"pdf,omitempty" json:"pdf,omitempty"`
	Code    string          `yaml:"code,omitempty" json:"code,omitempty"`
}

// PublicationFilter は論文一覧のフィルタを表す。
// FilterAll または PublicationType のいずれかの値をとる。
type PublicationFilter string

// FilterAll は全種別を表示するフィルタ。
const FilterAll PublicationFilter = "All"

// Filters は宣言順のフィルタ一覧（All + 全種別）。
func Filters() []PublicationFilter {
	filters := make([]PublicationFilter, 0, len(PublicationTypes)+1)
	filters = append(filters, FilterAll)
	for _, t := range PublicationTypes {
		filters = append(filters, PublicationFilter(t))
	}
	return filters
}

// ParseFilter は文字列をフィルタに変換する。大文字小文字は区別しない。
// 未定義の値の場合はfalseを返す。
func ParseFilter(s string) (PublicationFilter, bool) {
	s = strings.TrimSpace(s)
	for _, f := range Filters() {
		if strings.EqualFold(s, string(f)) {
			return f, true
		}
	}
	return "", false
}

// Matches はフィルタが論文種別に一致するかを返す。
func (f PublicationFilter) Matches(t PublicationType) bool {
	return f == FilterAll || PublicationType(f) == t
}
