package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/hitoshi/scholarpage/internal/model"
)

func renderPage(t *testing.T, c model.Content, sel *Selection) (string, *html.Node) {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, Build(c, sel, Options{Year: 2025, CSRFToken: "csrf-abc"})); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	doc, err := html.Parse(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("rendered HTML does not parse: %v", err)
	}
	return buf.String(), doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == tag }
}

func TestRender_NewsEmphasisIsStrong(t *testing.T) {
	_, doc := renderPage(t, sampleContent(), NewSelection(testRegistry(t)))

	var texts []string
	for _, n := range findAll(doc, isElement("strong")) {
		texts = append(texts, textOf(n))
	}
	if len(texts) != 1 || texts[0] != "ICML 2025" {
		t.Errorf("strong texts = %v, want [ICML 2025]", texts)
	}
}

func TestRender_EscapesContentMarkup(t *testing.T) {
	c := sampleContent()
	c.News = []model.NewsItem{{Date: "Now", Content: "**<script>alert(1)</script>** <img src=x>"}}
	c.Profile.Bio = "<b>bold</b>"

	out, doc := renderPage(t, c, NewSelection(testRegistry(t)))

	for _, s := range findAll(doc, isElement("script")) {
		if strings.Contains(textOf(s), "alert(1)") {
			t.Fatal("content markup was rendered as a script element")
		}
	}
	if len(findAll(doc, isElement("img"))) != 0 {
		t.Error("content markup was rendered as an img element")
	}
	if !strings.Contains(out, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Error("expected escaped script text in output")
	}
	if len(findAll(doc, isElement("b"))) != 0 {
		t.Error("bio markup was rendered as an element")
	}
}

func TestRender_BodyUsesActiveThemeTokens(t *testing.T) {
	r := testRegistry(t)
	sel := NewSelection(r)
	sel.SelectTheme("night")

	_, doc := renderPage(t, sampleContent(), sel)
	body := findAll(doc, isElement("body"))
	if len(body) != 1 {
		t.Fatalf("found %d body elements", len(body))
	}
	class := attr(body[0], "class")
	night, _ := r.Lookup("night")
	for _, tok := range []string{night.Tokens["bg"], night.Tokens["text"], night.Tokens["font"]} {
		if !strings.Contains(class, tok) {
			t.Errorf("body class %q does not contain night token %q", class, tok)
		}
	}
	paper, _ := r.Lookup("paper")
	if strings.Contains(class, paper.Tokens["bg"]) {
		t.Errorf("body class %q contains paper token", class)
	}
}

func TestRender_PublicationsAndResources(t *testing.T) {
	_, doc := renderPage(t, sampleContent(), NewSelection(testRegistry(t)))

	articles := findAll(doc, isElement("article"))
	if len(articles) != 2 {
		t.Fatalf("found %d articles, want 2", len(articles))
	}
	if attr(articles[0], "id") != "publication-1" {
		t.Errorf("first article id = %q", attr(articles[0], "id"))
	}

	var labels []string
	for _, a := range findAll(articles[0], isElement("a")) {
		labels = append(labels, textOf(a))
	}
	joined := strings.Join(labels, ",")
	if strings.Contains(joined, "PDF") {
		t.Errorf("publication without pdf rendered a PDF link: %v", labels)
	}
	if !strings.Contains(joined, "Code") || !strings.Contains(joined, "BibTeX") {
		t.Errorf("links = %v, want Code and BibTeX", labels)
	}

	var citations []string
	for _, a := range findAll(articles[0], func(n *html.Node) bool { return attr(n, "data-citation") != "" }) {
		citations = append(citations, attr(a, "data-citation"))
	}
	if len(citations) == 0 || citations[0] != "@article{zeng2025, title={Scaling Law}}" {
		t.Errorf("data-citation = %v", citations)
	}
}

func TestRender_EmptyFilterShowsMessage(t *testing.T) {
	sel := NewSelection(testRegistry(t))
	sel.SelectFilter("Software")

	out, doc := renderPage(t, sampleContent(), sel)
	if n := len(findAll(doc, isElement("article"))); n != 0 {
		t.Errorf("found %d articles, want 0", n)
	}
	if !strings.Contains(out, "No publications in this category yet.") {
		t.Error("expected empty-list message")
	}
}

func TestRender_ThemeFormsCarryStateAndToken(t *testing.T) {
	sel := NewSelection(testRegistry(t))
	sel.SelectFilter("Journal")
	_, doc := renderPage(t, sampleContent(), sel)

	forms := findAll(doc, isElement("form"))
	if len(forms) != 2 {
		t.Fatalf("found %d forms, want 2", len(forms))
	}
	actions := map[string]bool{}
	for _, f := range forms {
		actions[attr(f, "action")] = true
		inputs := map[string]string{}
		for _, in := range findAll(f, isElement("input")) {
			inputs[attr(in, "name")] = attr(in, "value")
		}
		if inputs["csrf_token"] != "csrf-abc" {
			t.Errorf("form %q csrf_token = %q", attr(f, "action"), inputs["csrf_token"])
		}
		if inputs["type"] != "Journal" {
			t.Errorf("form %q type = %q", attr(f, "action"), inputs["type"])
		}
	}
	if !actions["/theme"] || !actions["/theme/next"] {
		t.Errorf("form actions = %v", actions)
	}

	var themeButtons []string
	for _, b := range findAll(doc, func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "button" && attr(n, "name") == "theme" }) {
		themeButtons = append(themeButtons, attr(b, "value"))
	}
	if strings.Join(themeButtons, ",") != "paper,lab,night" {
		t.Errorf("theme buttons = %v", themeButtons)
	}
}

func TestRender_ContactNoteComesFromProfile(t *testing.T) {
	tests := []struct {
		name      string
		note      string
		wantParas []string
	}{
		{"設定あり", "Happy to talk about <b>conformal</b> prediction.", []string{"Happy to talk about <b>conformal</b> prediction."}},
		{"未設定なら段落を出さない", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sampleContent()
			c.Profile.ContactNote = tt.note
			_, doc := renderPage(t, c, NewSelection(testRegistry(t)))

			sections := findAll(doc, func(n *html.Node) bool { return isElement("section")(n) && attr(n, "id") == "contact" })
			if len(sections) != 1 {
				t.Fatalf("found %d contact sections, want 1", len(sections))
			}
			var paras []string
			for _, p := range findAll(sections[0], isElement("p")) {
				paras = append(paras, textOf(p))
			}
			if diff := cmp.Diff(tt.wantParas, paras); diff != "" {
				t.Errorf("contact paragraphs mismatch (-want +got):\n%s", diff)
			}
			// 本文中のタグは要素にならない
			if len(findAll(sections[0], isElement("b"))) != 0 {
				t.Error("contact note markup was rendered as an element")
			}
		})
	}
}
