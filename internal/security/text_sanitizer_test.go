package security

import "testing"

func TestPlainText(t *testing.T) {
	sanitizer := NewTextSanitizer(0)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "プレーンテキストはそのまま", input: "New paper accepted", want: "New paper accepted"},
		{name: "タグを除去する", input: "<p>Talk at <strong>NUS</strong></p>", want: "Talk at NUS"},
		{name: "scriptタグは中身ごと除去する", input: "Hello<script>alert(1)</script>", want: "Hello"},
		{name: "エンティティを復元する", input: "Q&amp;A &lt;session&gt;", want: "Q&A <session>"},
		{name: "改行と連続空白を畳む", input: "  line1\n\n\tline2  ", want: "line1 line2"},
		{name: "空文字列", input: "", want: ""},
		{name: "on属性付きタグ", input: `<img src="x" onerror="alert(1)">caption`, want: "caption"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizer.PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestPlainText_Truncates は最大文字数を超えた場合に切り詰めることを検証する。
func TestPlainText_Truncates(t *testing.T) {
	sanitizer := NewTextSanitizer(5)

	if got := sanitizer.PlainText("abcdefgh"); got != "abcde…" {
		t.Errorf("PlainText = %q, want %q", got, "abcde…")
	}
	if got := sanitizer.PlainText("曾浩の研究室"); got != "曾浩の研究…" {
		t.Errorf("PlainText(multibyte) = %q, want %q", got, "曾浩の研究…")
	}
	if got := sanitizer.PlainText("abc"); got != "abc" {
		t.Errorf("PlainText(short) = %q, want %q", got, "abc")
	}
}

// TestPlainText_Idempotent は同じ入力に対して結果が変わらないことを検証する。
func TestPlainText_Idempotent(t *testing.T) {
	sanitizer := NewTextSanitizer(0)
	input := "<em>Keynote</em> at <a href=\"https://example.com\">ICML</a>"

	first := sanitizer.PlainText(input)
	if second := sanitizer.PlainText(first); second != first {
		t.Errorf("PlainText not idempotent: %q -> %q", first, second)
	}
}
