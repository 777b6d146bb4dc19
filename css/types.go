package css

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\,
// line breaks become hex escapes since strings cannot span lines.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, "\"\\\n\r\f") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\a `)
		case '\r':
			b.WriteString(`\d `)
		case '\f':
			b.WriteString(`\c `)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// URL returns url() reference to u with u quoted, so it cannot terminate
// the declaration or the enclosing block.
func URL(u string) string {
	return `url("` + cssEscapeDoubleQuoted(u) + `")`
}

// MediaQuery keeps tokenized @media condition, queries are never evaluated,
// blocks are carried to the output unchanged.
type MediaQuery struct {
	Raw string
}

// Value is a property value as normalized by the tokenizer.
type Value struct {
	Raw string
}

// RawValue wraps already formatted value text.
func RawValue(s string) Value {
	return Value{Raw: s}
}

// Selector is a single complex selector of a rule, combinators and
// attribute parts are kept as written.
type Selector struct {
	Raw string
}

// ClassSelector builds selector for a single class with optional state.
func ClassSelector(class, pseudoClass string) Selector {
	raw := "." + class
	if pseudoClass != "" {
		raw += ":" + pseudoClass
	}
	return Selector{Raw: raw}
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   Selector         // Parsed selector
	Properties map[string]Value // Property name -> value
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// FontFace represents an @font-face declaration. Every descriptor is kept
// in Descriptors (font-display, unicode-range and so on), Family is the
// unquoted font-family for lookups.
type FontFace struct {
	Family      string
	Descriptors map[string]Value
}

// Src returns src descriptor of the font-face.
func (ff FontFace) Src() string {
	return ff.Descriptors["src"].Raw
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule, MediaBlock, FontFace, Import or Verbatim is non-nil.
type StylesheetItem struct {
	Rule       *Rule       // A plain rule (selector + properties)
	MediaBlock *MediaBlock // A @media block containing nested rules
	FontFace   *FontFace   // A @font-face declaration
	Import     *string     // An @import URL
	Verbatim   *string     // Any other at-rule (@keyframes, @supports, @page...) as written
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query MediaQuery
	Rules []Rule
}

// Stylesheet represents a CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Parse problems, the offending input is dropped
}

// AddRule appends plain rule to the stylesheet.
func (s *Stylesheet) AddRule(r Rule) {
	s.Items = append(s.Items, StylesheetItem{Rule: &r})
}

// Append adds all items of other stylesheet after own items. @import
// declarations are hoisted in front as CSS requires.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other == nil {
		return
	}
	var imports, rest []StylesheetItem
	for _, item := range append(s.Items, other.Items...) {
		if item.Import != nil {
			imports = append(imports, item)
			continue
		}
		rest = append(rest, item)
	}
	s.Items = append(imports, rest...)
	s.Warnings = append(s.Warnings, other.Warnings...)
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// FontFaces returns all @font-face declarations from the stylesheet in source order.
// Only font-faces with a non-empty Family are included.
func (s *Stylesheet) FontFaces() []FontFace {
	var faces []FontFace
	for _, item := range s.Items {
		if item.FontFace != nil && item.FontFace.Family != "" {
			faces = append(faces, *item.FontFace)
		}
	}
	return faces
}

// Rules returns all top-level rules, @media blocks are not flattened.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector.Raw == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// urlRewritePattern matches url() references in CSS values for RewriteURLs.
// Handles: url("path"), url('path'), url(path)
var urlRewritePattern = regexp.MustCompile(`url\s*\(\s*(?:["']([^"']*)["']|([^)"]*))\s*\)`)

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	return s.write(w, pretty)
}

// WriteCompact writes the stylesheet without any optional whitespace.
func (s *Stylesheet) WriteCompact(w io.Writer) (int64, error) {
	return s.write(w, compact)
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// layout controls whitespace produced by the writer.
type layout struct {
	open     string // after selector
	decl     string // "%s%s: %s;\n" style format for a declaration
	close    string
	indent   string
	separate string // between top-level items
	eol      string // after statements without block
}

var (
	pretty  = layout{open: " {\n", decl: "%s  %s: %s;\n", close: "}\n", indent: "  ", separate: "\n", eol: "\n"}
	compact = layout{open: "{", decl: "%s%s:%s;", close: "}", indent: "", separate: ""}
)

func (s *Stylesheet) write(w io.Writer, l layout) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Import != nil:
			n, err = fmt.Fprintf(w, "@import url(\"%s\");%s", cssEscapeDoubleQuoted(*item.Import), l.eol)
		case item.FontFace != nil:
			n, err = writeFontFace(w, item.FontFace, l)
		case item.Verbatim != nil:
			n, err = fmt.Fprintf(w, "%s%s", *item.Verbatim, l.eol)
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock, l)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "", l)
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		if i < len(s.Items)-1 && l.separate != "" {
			n, err = io.WriteString(w, l.separate)
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule, indent string, l layout) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s%s", indent, rule.Selector.Raw, l.open)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties, indent, l)
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprintf(w, "%s%s", indent, l.close)
	total += n
	return total, err
}

// writeProperties writes property declarations sorted alphabetically.
func writeProperties(w io.Writer, props map[string]Value, indent string, l layout) (int, error) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int
	for _, name := range names {
		n, err := fmt.Fprintf(w, l.decl, indent, name, props[name].Raw)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// writeFontFace writes an @font-face block to w.
func writeFontFace(w io.Writer, ff *FontFace, l layout) (int, error) {
	props := make(map[string]Value, len(ff.Descriptors)+1)
	for name, v := range ff.Descriptors {
		props[name] = v
	}
	if _, ok := props["font-family"]; !ok && ff.Family != "" {
		props["font-family"] = RawValue(`"` + cssEscapeDoubleQuoted(ff.Family) + `"`)
	}
	return writeRule(w, &Rule{Selector: Selector{Raw: "@font-face"}, Properties: props}, "", l)
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock, l layout) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s%s", mb.Query.Raw, l.open)
	total += n
	if err != nil {
		return total, err
	}

	for i := range mb.Rules {
		n, err = writeRule(w, &mb.Rules[i], l.indent, l)
		total += n
		if err != nil {
			return total, err
		}
		if i < len(mb.Rules)-1 && l.separate != "" {
			n, err = io.WriteString(w, l.separate)
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = io.WriteString(w, l.close)
	total += n
	return total, err
}

// RewriteURLs walks all URL references in the stylesheet and applies fn to each.
// This covers @import URLs, @font-face descriptors, url() references in rule
// properties and in verbatim at-rules.
func (s *Stylesheet) RewriteURLs(fn func(originalURL string) string) {
	for i := range s.Items {
		item := &s.Items[i]

		switch {
		case item.Import != nil:
			newURL := fn(*item.Import)
			item.Import = &newURL

		case item.FontFace != nil:
			rewriteURLsInProperties(item.FontFace.Descriptors, fn)

		case item.Verbatim != nil:
			text := rewriteURLsInValue(*item.Verbatim, fn)
			item.Verbatim = &text

		case item.Rule != nil:
			rewriteURLsInProperties(item.Rule.Properties, fn)

		case item.MediaBlock != nil:
			for j := range item.MediaBlock.Rules {
				rewriteURLsInProperties(item.MediaBlock.Rules[j].Properties, fn)
			}
		}
	}
}

// rewriteURLsInProperties rewrites url() references in property values.
func rewriteURLsInProperties(props map[string]Value, fn func(string) string) {
	for name, val := range props {
		if strings.Contains(val.Raw, "url(") {
			val.Raw = rewriteURLsInValue(val.Raw, fn)
			props[name] = val
		}
	}
}

// rewriteURLsInValue replaces url() references in a CSS value string.
func rewriteURLsInValue(value string, fn func(string) string) string {
	return urlRewritePattern.ReplaceAllStringFunc(value, func(match string) string {
		sub := urlRewritePattern.FindStringSubmatch(match)
		if len(sub) < 3 {
			return match
		}
		// Group 1 is quoted URL, group 2 is unquoted URL
		originalURL := sub[1]
		if originalURL == "" {
			originalURL = sub[2]
		}
		originalURL = strings.TrimSpace(originalURL)
		return URL(fn(originalURL))
	})
}
