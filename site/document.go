package site

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"

	"bms/css"
	"bms/layout"
)

// StylesheetName is the file external stylesheet is written to.
const StylesheetName = "styles.css"

// Document is a complete page ready to be written.
type Document struct {
	Title      string
	Language   language.Tag
	Stylesheet *css.Stylesheet
	External   bool // link StylesheetName instead of embedding styles
	Minify     bool // write styles without optional whitespace
	Body       layout.Node
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// Node builds html tree of the document.
func (d *Document) Node() *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "lang", d.Language.String())
	doc.AppendChild(root)

	head := element(atom.Head)
	root.AppendChild(head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(element(atom.Meta, "name", "viewport", "content", "width=device-width, initial-scale=1"))

	title := element(atom.Title)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: d.Title})
	head.AppendChild(title)

	if d.External {
		head.AppendChild(element(atom.Link, "rel", "stylesheet", "href", StylesheetName))
	} else if d.Stylesheet != nil && len(d.Stylesheet.Items) > 0 {
		styleEl := element(atom.Style)
		// style is raw text element, "</" would end it early
		styleEl.AppendChild(&html.Node{Type: html.TextNode, Data: strings.ReplaceAll(d.css(), "</", `<\/`)})
		head.AppendChild(styleEl)
	}

	body := element(atom.Body)
	root.AppendChild(body)
	if d.Body != nil {
		if n := layout.Render(d.Body); n != nil {
			body.AppendChild(n)
		}
	}
	return doc
}

func (d *Document) css() string {
	var sb strings.Builder
	if d.Minify {
		d.Stylesheet.WriteCompact(&sb) //nolint:errcheck
	} else {
		d.Stylesheet.WriteTo(&sb) //nolint:errcheck
	}
	return sb.String()
}

// WriteHTML writes the document as HTML5.
func (d *Document) WriteHTML(w io.Writer) error {
	if err := html.Render(w, d.Node()); err != nil {
		return fmt.Errorf("unable to render document: %w", err)
	}
	return nil
}

// WriteCSS writes stylesheet of the document.
func (d *Document) WriteCSS(w io.Writer) error {
	if d.Stylesheet == nil {
		return nil
	}
	if _, err := io.WriteString(w, d.css()); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	return nil
}
