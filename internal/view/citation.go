package view

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hitoshi/scholarpage/internal/model"
)

// OwnerKey は所有者名の姓（空白区切りの最後の語）を小文字化した引用キーの接頭辞を返す。
func OwnerKey(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return cases.Lower(language.Und).String(fields[len(fields)-1])
}

// Citation はクリップボードにコピーするBibTeX形式の引用文字列を生成する。
// 例: @article{zeng2025, title={Foo}}
func Citation(ownerKey string, p model.Publication) string {
	return "@article{" + ownerKey + p.Year + ", title={" + p.Title + "}}"
}
