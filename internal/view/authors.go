package view

import "strings"

const (
	authorDelimiter = ","
	authorSeparator = ", "
)

// AuthorSpan は著者リスト中の1名分の表示単位。
// Separatorは次の著者との区切りで、最後の著者では空になる。
type AuthorSpan struct {
	Name       string
	Emphasized bool
	Separator  string
}

// HighlightAuthors はカンマ区切りの著者文字列を分割し、
// ownerを部分文字列として含む著者を強調対象としてマークする。
func HighlightAuthors(authors, owner string) []AuthorSpan {
	parts := strings.Split(authors, authorDelimiter)
	spans := make([]AuthorSpan, 0, len(parts))
	for i, part := range parts {
		span := AuthorSpan{
			Name:       strings.TrimSpace(part),
			Emphasized: owner != "" && strings.Contains(part, owner),
		}
		if i < len(parts)-1 {
			span.Separator = authorSeparator
		}
		spans = append(spans, span)
	}
	return spans
}
