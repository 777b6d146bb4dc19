package layout

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Attrs are pass-through element attributes.
type Attrs map[string]string

// Node is an element of the rendered tree.
type Node interface {
	node()
}

// Element is a tagged element. Class is the compiled class name, Static are
// extra classes which have no compiled rule behind them.
type Element struct {
	Tag      Tag
	Class    string
	Static   []string
	Attrs    Attrs
	Children []Node
}

// Text is a text node.
type Text string

func (*Element) node() {}
func (Text) node()     {}

// Raw creates unstyled element.
func Raw(tag Tag, attrs Attrs, children ...Node) *Element {
	if tag.Void() {
		children = nil
	}
	return &Element{Tag: tag, Attrs: attrs, Children: children}
}

// ClassAttr returns value of class attribute.
func (e *Element) ClassAttr() string {
	parts := make([]string, 0, 1+len(e.Static))
	if e.Class != "" {
		parts = append(parts, e.Class)
	}
	for _, s := range e.Static {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Render converts tree to html nodes.
func Render(n Node) *html.Node {
	switch v := n.(type) {
	case Text:
		return &html.Node{Type: html.TextNode, Data: string(v)}
	case *Element:
		if v == nil {
			return nil
		}
		a := v.Tag.Atom()
		el := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
		if class := v.ClassAttr(); class != "" {
			el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: class})
		}
		keys := make([]string, 0, len(v.Attrs))
		for k := range v.Attrs {
			if k != "class" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			el.Attr = append(el.Attr, html.Attribute{Key: k, Val: v.Attrs[k]})
		}
		for _, child := range v.Children {
			if c := Render(child); c != nil {
				el.AppendChild(c)
			}
		}
		return el
	}
	return nil
}

// Classes returns compiled class names in document order.
func Classes(n Node) []string {
	var out []string
	var walk func(Node)
	walk = func(n Node) {
		e, ok := n.(*Element)
		if !ok || e == nil {
			return
		}
		if e.Class != "" {
			out = append(out, e.Class)
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Find returns elements with given tag in document order.
func Find(n Node, tag Tag) []*Element {
	var out []*Element
	var walk func(Node)
	walk = func(n Node) {
		e, ok := n.(*Element)
		if !ok || e == nil {
			return
		}
		if e.Tag == tag {
			out = append(out, e)
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}
