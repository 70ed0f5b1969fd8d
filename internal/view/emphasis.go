package view

import "strings"

const emphasisDelimiter = "**"

// Span はインライン強調記法を分解した表示単位。
type Span struct {
	Text       string
	Emphasized bool
}

// ParseEmphasis は **text** 形式の強調記法をSpanの列に分解する。
//
// 開始区切りから同じ行内で最も近い終了区切りまでを1つの強調とし、入れ子は扱わない。
// 対応の取れない区切りはそのまま文字として残す。中身が空の強調は出力しない。
func ParseEmphasis(s string) []Span {
	var (
		spans   []Span
		literal strings.Builder
	)
	flush := func() {
		if literal.Len() > 0 {
			spans = append(spans, Span{Text: literal.String()})
			literal.Reset()
		}
	}

	i := 0
	for i < len(s) {
		if strings.HasPrefix(s[i:], emphasisDelimiter) {
			if end, ok := closingDelimiter(s, i+len(emphasisDelimiter)); ok {
				inner := s[i+len(emphasisDelimiter) : end]
				if inner != "" {
					flush()
					spans = append(spans, Span{Text: inner, Emphasized: true})
				}
				i = end + len(emphasisDelimiter)
				continue
			}
		}
		literal.WriteByte(s[i])
		i++
	}
	flush()

	return spans
}

// closingDelimiter はfrom以降で改行より前にある最初の終了区切りの位置を返す。
func closingDelimiter(s string, from int) (int, bool) {
	rest := s[from:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	j := strings.Index(rest, emphasisDelimiter)
	if j < 0 {
		return 0, false
	}
	return from + j, true
}
