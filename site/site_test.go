package site

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"bms/css"
	"bms/jobs"
	"bms/layout"
	"bms/style"
)

func testSettings() Settings {
	return Settings{
		Base:          "/static",
		Company:       "BenchmArk Monument",
		Language:      "en",
		TitleTemplate: "{{ .Company }}",
		ClassPrefix:   "bm",
	}
}

func assemble(t *testing.T, s Settings, list []jobs.Spec) *Document {
	t.Helper()
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	doc, err := Assemble(s, list, log)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return doc
}

func ruleFor(sheet *css.Stylesheet, class, pseudo string) (css.Rule, bool) {
	rules := sheet.RulesBySelector(css.ClassSelector(class, pseudo).Raw)
	if len(rules) == 0 {
		return css.Rule{}, false
	}
	return rules[0], true
}

func property(t *testing.T, sheet *css.Stylesheet, class, name string) (string, bool) {
	t.Helper()
	r, ok := ruleFor(sheet, class, "")
	if !ok {
		t.Fatalf("no rule for class %q", class)
	}
	v, ok := r.GetProperty(name)
	return v.Raw, ok
}

func TestAssetURLs(t *testing.T) {
	doc := assemble(t, testSettings(), nil)
	out := doc.Stylesheet.String()

	for _, want := range []string{
		`background-image: url("/static/building.png");`,
		`background-image: url("/static/whoweare-bg.png");`,
		`background-image: url("/static/wherewework-bg.png");`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in stylesheet:\n%s", want, out)
		}
	}
}

func TestAsset(t *testing.T) {
	tests := []struct {
		base, name, want string
	}{
		{"/static", "building.png", "/static/building.png"},
		{"", "building.png", "/building.png"},
		{"https://cdn.example.com", "a.png", "https://cdn.example.com/a.png"},
		{"/static", "/abs.png", "/abs.png"},
		{"/static", "http://example.com/a.png", "http://example.com/a.png"},
		{"/static", "", ""},
	}
	for _, tt := range tests {
		if got := Asset(tt.base, tt.name); got != tt.want {
			t.Errorf("Asset(%q, %q) = %q, want %q", tt.base, tt.name, got, tt.want)
		}
	}
}

func TestEmptyJobsRenderEmptyGrid(t *testing.T) {
	doc := assemble(t, testSettings(), []jobs.Spec{})

	mains := layout.Find(doc.Body, layout.TagMain)
	if len(mains) != 1 {
		t.Fatalf("expected single main grid, got %d", len(mains))
	}
	if len(mains[0].Children) != 0 {
		t.Errorf("expected empty grid, got %d children", len(mains[0].Children))
	}

	v, _ := property(t, doc.Stylesheet, mains[0].Class, "grid-auto-flow")
	if v != "row dense" {
		t.Errorf("expected dense auto flow, got %q", v)
	}
	if v, _ := property(t, doc.Stylesheet, mains[0].Class, "grid-template-columns"); v != "repeat(auto-fill, 120px)" {
		t.Errorf("unexpected columns %q", v)
	}
}

func TestNoDanglingClasses(t *testing.T) {
	list := []jobs.Spec{
		{Title: "a", Width: 2, Height: 3, Cheap: true, HighlightedPhoto: jobs.Photo{Src: "a.jpg"}},
		{Title: "b", Width: 1, Height: 1},
	}
	doc := assemble(t, testSettings(), list)

	selectors := map[string]bool{}
	for _, r := range doc.Stylesheet.Rules() {
		selectors[strings.TrimPrefix(r.Selector.Raw, ".")] = true
	}

	classes := layout.Classes(doc.Body)
	if len(classes) == 0 {
		t.Fatal("expected compiled classes")
	}
	for _, c := range classes {
		if !selectors[c] {
			t.Errorf("class %q has no rule", c)
		}
	}
}

func TestStylesheetHasNoDuplicates(t *testing.T) {
	doc := assemble(t, testSettings(), nil)

	seen := map[string]bool{}
	for _, r := range doc.Stylesheet.Rules() {
		if seen[r.Selector.Raw] {
			t.Errorf("duplicate rule for %s", r.Selector.Raw)
		}
		seen[r.Selector.Raw] = true
	}
}

func TestJobPlacementAndFilter(t *testing.T) {
	list := []jobs.Spec{
		{Title: "cheap", Width: 2, Height: 3, Cheap: true, HighlightedPhoto: jobs.Photo{Src: "photos/cheap.jpg"}},
		{Title: "regular", Width: 1, Height: 2, HighlightedPhoto: jobs.Photo{Src: "photos/regular.jpg"}},
	}
	doc := assemble(t, testSettings(), list)

	cards := layout.Find(doc.Body, layout.TagArticle)
	if len(cards) != 2 {
		t.Fatalf("expected 2 job cards, got %d", len(cards))
	}

	tests := []struct {
		col, row, filter string
		bg               string
	}{
		{"span 2", "span 3", "grayscale(75%)", `url("/static/photos/cheap.jpg")`},
		{"span 1", "span 2", "", `url("/static/photos/regular.jpg")`},
	}
	for i, tt := range tests {
		card := cards[i]
		if card.Attrs["title"] != list[i].Title {
			t.Errorf("card %d: expected title attribute %q, got %q", i, list[i].Title, card.Attrs["title"])
		}
		if v, _ := property(t, doc.Stylesheet, card.Class, "grid-column-start"); v != tt.col {
			t.Errorf("card %d: column %q, want %q", i, v, tt.col)
		}
		if v, _ := property(t, doc.Stylesheet, card.Class, "grid-row-start"); v != tt.row {
			t.Errorf("card %d: row %q, want %q", i, v, tt.row)
		}
		if _, ok := ruleFor(doc.Stylesheet, card.Class, "hover"); !ok {
			t.Errorf("card %d: expected hover rule", i)
		}

		if len(card.Children) != 1 {
			t.Fatalf("card %d: expected featured image, got %d children", i, len(card.Children))
		}
		img := card.Children[0].(*layout.Element)
		filter, ok := property(t, doc.Stylesheet, img.Class, "filter")
		if tt.filter == "" && ok {
			t.Errorf("card %d: expected no filter, got %q", i, filter)
		}
		if tt.filter != "" && filter != tt.filter {
			t.Errorf("card %d: filter %q, want %q", i, filter, tt.filter)
		}
		if v, _ := property(t, doc.Stylesheet, img.Class, "background-image"); v != tt.bg {
			t.Errorf("card %d: background %q, want %q", i, v, tt.bg)
		}
		if v, _ := property(t, doc.Stylesheet, img.Class, "width"); v != "100%" {
			t.Errorf("card %d: featured image width %q", i, v)
		}
	}
}

func TestToolbarSharesClasses(t *testing.T) {
	k := layout.NewKit(style.NewCompiler(nil), zap.NewNop())
	bar := Toolbar(k)

	if len(bar.Children) != len(ToolbarFilters) {
		t.Fatalf("expected %d cells, got %d", len(ToolbarFilters), len(bar.Children))
	}
	first := bar.Children[0].(*layout.Element).Class
	for i := 1; i < len(ToolbarFilters)-1; i++ {
		if c := bar.Children[i].(*layout.Element).Class; c != first {
			t.Errorf("cell %d: expected shared class %q, got %q", i, first, c)
		}
	}
	last := bar.Children[len(ToolbarFilters)-1].(*layout.Element).Class
	if last == first {
		t.Error("expected last cell to have own class")
	}
	r, _ := k.Compiler().Rule(last)
	if len(r.Declarations.Pseudo("hover")) != 1 {
		t.Errorf("expected hover background on last cell, got %v", r.Declarations)
	}
}

func TestHeadingLevels(t *testing.T) {
	k := layout.NewKit(style.NewCompiler(nil), zap.NewNop())

	if h := Heading(k, 0, layout.Opts{}); h.Tag != layout.TagH1 {
		t.Errorf("expected h1, got %v", h.Tag)
	}
	if h := Heading(k, 9, layout.Opts{}); h.Tag != layout.TagH6 {
		t.Errorf("expected h6, got %v", h.Tag)
	}
	// caller style overrides component defaults
	h := Heading(k, 2, layout.Opts{Style: style.Props{"fontSize": "2.5em"}})
	r, _ := k.Compiler().Rule(h.Class)
	for _, d := range r.Declarations {
		if d.Property == "font-size" && d.Value != "2.5em" {
			t.Errorf("expected caller font size, got %q", d.Value)
		}
	}
}

func TestFeaturedImagePinsSize(t *testing.T) {
	k := layout.NewKit(style.NewCompiler(nil), zap.NewNop())

	el := FeaturedImage(k, "", layout.Opts{Style: style.Props{"width": "50%", "height": 10}})
	r, _ := k.Compiler().Rule(el.Class)

	got := map[string]string{}
	for _, d := range r.Declarations {
		got[d.Property] = d.Value
	}
	if got["width"] != "100%" || got["height"] != "100%" {
		t.Errorf("expected pinned size, got %v", got)
	}
	if _, ok := got["background-image"]; ok {
		t.Error("expected no background without source")
	}
}

func TestImage(t *testing.T) {
	k := layout.NewKit(style.NewCompiler(nil), zap.NewNop())

	fig := Image(k, ImageSource{Src: "a.jpg", Srcset: "a@2x.jpg 2x", Width: 120}, layout.Opts{})
	if fig.Tag != layout.TagFigure || len(fig.Children) != 1 {
		t.Fatalf("unexpected figure %+v", fig)
	}
	img := fig.Children[0].(*layout.Element)
	if img.Tag != layout.TagImg || img.Attrs["role"] != "presentation" || img.Attrs["srcset"] != "a@2x.jpg 2x" {
		t.Errorf("unexpected img %+v", img)
	}

	r, _ := k.Compiler().Rule(img.Class)
	got := map[string]string{}
	for _, d := range r.Declarations {
		got[d.Property] = d.Value
	}
	if got["-moz-object-fit"] != "cover" || got["object-fit"] != "cover" || got["width"] != "120px" {
		t.Errorf("unexpected image style %v", got)
	}
	if _, ok := got["height"]; ok {
		t.Error("expected unset height to be dropped")
	}
}

func TestLogoSplitsCompany(t *testing.T) {
	k := layout.NewKit(style.NewCompiler(nil), zap.NewNop())

	logo := Logo(k, "", "BenchmArk Monument", layout.Opts{})
	var buf bytes.Buffer
	doc := &Document{Body: logo}
	if err := doc.WriteHTML(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, ">BenchmArk</span><br/><span") || !strings.Contains(out, ">Monument</span>") {
		t.Errorf("unexpected logo markup %s", out)
	}

	single := Logo(k, "", "Acme", layout.Opts{})
	if len(layout.Find(single, layout.TagBr)) != 0 {
		t.Error("expected no line break for single word name")
	}
}

func TestWriteHTML_Inline(t *testing.T) {
	doc := assemble(t, testSettings(), nil)

	var buf bytes.Buffer
	if err := doc.WriteHTML(&buf); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		`<meta charset="utf-8"/>`,
		"<title>BenchmArk Monument</title>",
		"<style>",
		`url("/static/building.png")`,
		`class="` + layout.Find(doc.Body, layout.TagMain)[0].Class + `"`,
		`<abbr title="Oklahoma">OK</abbr>`,
		"4<sup>th</sup>-generation",
		"One block east of 11th &amp; Utica",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if strings.Count(out, "<style>") != 1 {
		t.Error("expected stylesheet mounted once")
	}
	if strings.Contains(out, "<link") {
		t.Error("unexpected link element for inline stylesheet")
	}
}

func TestWriteHTML_External(t *testing.T) {
	s := testSettings()
	s.External = true
	s.Minify = true
	doc := assemble(t, s, nil)

	var page, styles bytes.Buffer
	if err := doc.WriteHTML(&page); err != nil {
		t.Fatal(err)
	}
	if err := doc.WriteCSS(&styles); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(page.String(), `<link rel="stylesheet" href="styles.css"/>`) {
		t.Errorf("expected stylesheet link in:\n%s", page.String())
	}
	if strings.Contains(page.String(), "<style>") {
		t.Error("unexpected inline styles")
	}
	if strings.Contains(styles.String(), "\n") {
		t.Error("expected minified stylesheet")
	}
	if !strings.Contains(styles.String(), `background-image:url("/static/building.png");`) {
		t.Errorf("unexpected stylesheet %s", styles.String())
	}
}

func TestAssembleDeterministic(t *testing.T) {
	list := []jobs.Spec{{Title: "x", Width: 2, Height: 2, Cheap: true}}

	render := func() string {
		var buf bytes.Buffer
		if err := assemble(t, testSettings(), list).WriteHTML(&buf); err != nil {
			t.Fatal(err)
		}
		return buf.String()
	}
	if a, b := render(), render(); a != b {
		t.Error("expected identical output for identical input")
	}
}

func TestExpandTitle(t *testing.T) {
	values := TitleValues{Company: "BenchmArk Monument", Base: "/static", Language: "en", Jobs: make([]jobs.Spec, 3)}

	tests := []struct {
		tmpl string
		want string
	}{
		{"", "BenchmArk Monument"},
		{"{{ .Company }}", "BenchmArk Monument"},
		{"{{ .Company | upper }} ({{ len .Jobs }} jobs)", "BENCHMARK MONUMENT (3 jobs)"},
		{"  {{ .Language }}  ", "en"},
	}
	for _, tt := range tests {
		got, err := ExpandTitle(tt.tmpl, values)
		if err != nil {
			t.Errorf("ExpandTitle(%q): %v", tt.tmpl, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExpandTitle(%q) = %q, want %q", tt.tmpl, got, tt.want)
		}
	}

	if _, err := ExpandTitle("{{ .Company", values); err == nil {
		t.Error("expected parse error")
	}
	if _, err := ExpandTitle("{{ .Missing }}", values); err == nil {
		t.Error("expected execution error")
	}
}

func TestParseLanguage(t *testing.T) {
	log := zap.NewNop()

	if got := ParseLanguage("ru-RU", log).String(); got != "ru-RU" {
		t.Errorf("unexpected tag %s", got)
	}
	if got := ParseLanguage("", log).String(); got != "en" {
		t.Errorf("expected en for empty, got %s", got)
	}
	if got := ParseLanguage("not a language!", log).String(); got != "en" {
		t.Errorf("expected en fallback, got %s", got)
	}
}

func TestSupplementaryStylesheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fonts.css")
	content := `@font-face { font-family: "Bosnia Thin"; src: url(fonts/bosnia-thin.woff2); }
.container { min-height: 100vh; }
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s := testSettings()
	s.StylesheetPath = path
	doc := assemble(t, s, nil)

	if doc.Stylesheet.Items[0].FontFace == nil {
		t.Fatalf("expected supplementary font-face first, got %+v", doc.Stylesheet.Items[0])
	}
	if src := doc.Stylesheet.Items[0].FontFace.Src(); src != `url("/static/fonts/bosnia-thin.woff2")` {
		t.Errorf("expected rewritten font url, got %s", src)
	}
	if doc.Stylesheet.Items[1].Rule == nil || doc.Stylesheet.Items[1].Rule.Selector.Raw != ".container" {
		t.Errorf("expected supplementary rule second, got %+v", doc.Stylesheet.Items[1])
	}

	s.StylesheetPath = filepath.Join(dir, "missing.css")
	if _, err := Assemble(s, nil, zap.NewNop()); err == nil {
		t.Error("expected error for missing stylesheet")
	}
}

func TestSupplementaryStylesheetPassThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.css")
	content := `* { box-sizing: border-box; }
:root { --accent: #444; }
.container > section { margin: 0; }
a[href] { color: var(--accent); }
@keyframes fade { from { opacity: 0; } to { opacity: 1; } }
@supports (display: grid) { .grid { display: grid; } }
@font-face { font-family: "Bosnia Thin"; src: url(fonts/bosnia-thin.woff2); font-display: swap; unicode-range: U+0000-00FF; }
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sheet, err := LoadStylesheet(path, "/static", zap.NewNop())
	if err != nil {
		t.Fatalf("LoadStylesheet: %v", err)
	}
	if len(sheet.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", sheet.Warnings)
	}
	if len(sheet.Items) != 7 {
		t.Fatalf("expected 7 items, got %d:\n%s", len(sheet.Items), sheet.String())
	}

	s := testSettings()
	s.StylesheetPath = path
	doc := assemble(t, s, nil)
	var buf bytes.Buffer
	if err := doc.WriteHTML(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"* {\n  box-sizing: border-box;\n}",
		":root {\n  --accent: #444;\n}",
		".container>section {\n  margin: 0;\n}",
		"a[href] {\n  color: var(--accent);\n}",
		"@keyframes fade { from { opacity: 0; } to { opacity: 1; } }",
		"@supports (display: grid) { .grid { display: grid; } }",
		"font-display: swap;",
		"unicode-range: U+0000-00FF;",
		`src: url("/static/fonts/bosnia-thin.woff2");`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteHTML_HostileImageSource(t *testing.T) {
	hostile := `x.png)}</style><script>alert(1)</script><style>`
	list := []jobs.Spec{{Title: "a", Width: 1, Height: 1, HighlightedPhoto: jobs.Photo{Src: hostile}}}

	for _, minify := range []bool{false, true} {
		s := testSettings()
		s.Minify = minify
		doc := assemble(t, s, list)

		img := layout.Find(doc.Body, layout.TagArticle)[0].Children[0].(*layout.Element)
		if v, _ := property(t, doc.Stylesheet, img.Class, "background-image"); v != css.URL("/static/"+hostile) {
			t.Errorf("background not quoted: %s", v)
		}

		var buf bytes.Buffer
		if err := doc.WriteHTML(&buf); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if strings.Count(out, "</style>") != 1 {
			t.Errorf("style element closed early:\n%s", out)
		}

		root, err := html.Parse(strings.NewReader(out))
		if err != nil {
			t.Fatal(err)
		}
		for n := range root.Descendants() {
			if n.Type == html.ElementNode && n.DataAtom == atom.Script {
				t.Fatalf("script element injected:\n%s", out)
			}
		}
	}
}
