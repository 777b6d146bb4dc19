package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"bms/css"
)

func TestClassSelector(t *testing.T) {
	if sel := css.ClassSelector("bm1", ""); sel.Raw != ".bm1" {
		t.Errorf("unexpected selector %+v", sel)
	}
	if sel := css.ClassSelector("bm1", "hover"); sel.Raw != ".bm1:hover" {
		t.Errorf("unexpected selector %+v", sel)
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/static/a.png", `url("/static/a.png")`},
		{`x.png)}</style><script>`, `url("x.png)}</style><script>")`},
		{`a"b\c`, `url("a\"b\\c")`},
		{"a\nb", `url("a\a b")`},
	}
	for _, tt := range tests {
		if got := css.URL(tt.in); got != tt.want {
			t.Errorf("URL(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestStylesheet_String_SimpleRule(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`p { text-indent: 1em; margin: 0; }`))
	output := sheet.String()

	want := "p {\n  margin: 0;\n  text-indent: 1em;\n}\n"
	if output != want {
		t.Errorf("unexpected output:\n%q\nwant:\n%q", output, want)
	}
}

func TestStylesheet_WriteCompact(t *testing.T) {
	var sheet css.Stylesheet
	sheet.AddRule(css.Rule{
		Selector:   css.ClassSelector("bma", ""),
		Properties: map[string]css.Value{"display": css.RawValue("block"), "color": css.RawValue("red")},
	})
	sheet.AddRule(css.Rule{
		Selector:   css.ClassSelector("bma", "hover"),
		Properties: map[string]css.Value{"color": css.RawValue("blue")},
	})

	var sb strings.Builder
	if _, err := sheet.WriteCompact(&sb); err != nil {
		t.Fatalf("WriteCompact: %v", err)
	}

	want := ".bma{color:red;display:block;}.bma:hover{color:blue;}"
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestStylesheet_WriteTo_Counts(t *testing.T) {
	p := css.NewParser(zap.NewNop())
	sheet := p.Parse([]byte(`@import "a.css"; .a { color: red; } @media print { .a { color: black; } }`))

	var sb strings.Builder
	n, err := sheet.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if int(n) != sb.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, sb.Len())
	}
	if !strings.Contains(sb.String(), "@media print {\n  .a {\n    color: black;\n  }\n}") {
		t.Errorf("unexpected media block output:\n%s", sb.String())
	}
}

func TestStylesheet_String_FontFaceEscapesQuotes(t *testing.T) {
	sheet := css.Stylesheet{Items: []css.StylesheetItem{
		{FontFace: &css.FontFace{Family: `My "Font"`, Descriptors: map[string]css.Value{"src": css.RawValue(`url("f.woff")`)}}},
	}}

	output := sheet.String()
	if !strings.Contains(output, `font-family: "My \"Font\"";`) {
		t.Errorf("expected escaped family, got:\n%s", output)
	}
}

func TestStylesheet_Append_HoistsImports(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	compiled := &css.Stylesheet{}
	compiled.AddRule(css.Rule{Selector: css.ClassSelector("bm1", ""), Properties: map[string]css.Value{"display": css.RawValue("block")}})

	extra := p.Parse([]byte(`.x { color: red; } @import "fonts.css";`))

	compiled.Append(extra)

	if len(compiled.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(compiled.Items))
	}
	if compiled.Items[0].Import == nil || *compiled.Items[0].Import != "fonts.css" {
		t.Errorf("expected import first, got %+v", compiled.Items[0])
	}
	if compiled.Items[1].Rule.Selector.Raw != ".bm1" || compiled.Items[2].Rule.Selector.Raw != ".x" {
		t.Error("expected remaining items in original order")
	}

	compiled.Append(nil)
	if len(compiled.Items) != 3 {
		t.Error("appending nil must not change stylesheet")
	}
}

func TestStylesheet_RewriteURLs(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`
		@import "fonts.css";
		@font-face { font-family: "Bosnia Thin"; src: url(fonts/bosnia.woff2); }
		.bg { background: url('images/bg.png') no-repeat; }
		@media print { .bg { background-image: url(print.png); } }
		.abs { background-image: url(http://example.com/a.png); }
		@supports (display: grid) { .g { background: url(grid.png); } }
	`))

	sheet.RewriteURLs(func(u string) string {
		if strings.Contains(u, "://") {
			return u
		}
		return "/static/" + u
	})

	if got := sheet.Imports(); len(got) != 1 || got[0] != "/static/fonts.css" {
		t.Errorf("unexpected imports %v", got)
	}
	if got := sheet.FontFaces()[0].Src(); got != `url("/static/fonts/bosnia.woff2")` {
		t.Errorf("unexpected font src %s", got)
	}

	output := sheet.String()
	for _, want := range []string{
		`background: url("/static/images/bg.png") no-repeat;`,
		`background-image: url("/static/print.png");`,
		`background-image: url("http://example.com/a.png");`,
		`@supports (display: grid) { .g { background: url("/static/grid.png"); } }`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestStylesheet_RoundTrip(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(`.a:hover { color: red; } .b { margin: 0 auto; width: calc(100% - 20px); }`)
	first := p.Parse(input)
	second := p.Parse([]byte(first.String()))

	if first.String() != second.String() {
		t.Errorf("round trip changed output:\n%s\n---\n%s", first.String(), second.String())
	}
}
