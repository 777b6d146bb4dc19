package layout

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/atom"
)

// Tag is an element kind a primitive may render as. Zero value means
// primitive default.
type Tag int

const (
	TagDefault Tag = iota
	TagDiv
	TagSpan
	TagSection
	TagArticle
	TagMain
	TagHeader
	TagFooter
	TagNav
	TagAside
	TagFigure
	TagImg
	TagP
	TagH1
	TagH2
	TagH3
	TagH4
	TagH5
	TagH6
	TagAddress
	TagUl
	TagLi
	TagA
	TagButton
	TagLabel
	TagEm
	TagStrong
	TagSmall
	TagAbbr
	TagSup
	TagBr
)

var tagAtoms = [...]atom.Atom{
	TagDefault: 0,
	TagDiv:     atom.Div,
	TagSpan:    atom.Span,
	TagSection: atom.Section,
	TagArticle: atom.Article,
	TagMain:    atom.Main,
	TagHeader:  atom.Header,
	TagFooter:  atom.Footer,
	TagNav:     atom.Nav,
	TagAside:   atom.Aside,
	TagFigure:  atom.Figure,
	TagImg:     atom.Img,
	TagP:       atom.P,
	TagH1:      atom.H1,
	TagH2:      atom.H2,
	TagH3:      atom.H3,
	TagH4:      atom.H4,
	TagH5:      atom.H5,
	TagH6:      atom.H6,
	TagAddress: atom.Address,
	TagUl:      atom.Ul,
	TagLi:      atom.Li,
	TagA:       atom.A,
	TagButton:  atom.Button,
	TagLabel:   atom.Label,
	TagEm:      atom.Em,
	TagStrong:  atom.Strong,
	TagSmall:   atom.Small,
	TagAbbr:    atom.Abbr,
	TagSup:     atom.Sup,
	TagBr:      atom.Br,
}

// ErrInvalidTag is returned by ParseTag for unknown element names.
var ErrInvalidTag = fmt.Errorf("not a valid Tag, try [%s]", strings.Join(TagNames(), ", "))

// TagNames lists names of all tags.
func TagNames() []string {
	names := make([]string, 0, len(tagAtoms)-1)
	for _, a := range tagAtoms[1:] {
		names = append(names, a.String())
	}
	return names
}

// String implements the Stringer interface.
func (t Tag) String() string {
	if !t.IsValid() || t == TagDefault {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return tagAtoms[t].String()
}

// IsValid reports whether t is one of the known tags (TagDefault included).
func (t Tag) IsValid() bool {
	return t >= TagDefault && int(t) < len(tagAtoms)
}

// Atom returns html atom of the tag.
func (t Tag) Atom() atom.Atom {
	if !t.IsValid() {
		return 0
	}
	return tagAtoms[t]
}

// Void reports whether element cannot have children.
func (t Tag) Void() bool {
	return t == TagImg || t == TagBr
}

// ParseTag converts element name to Tag.
func ParseTag(name string) (Tag, error) {
	a := atom.Lookup([]byte(strings.ToLower(strings.TrimSpace(name))))
	if a != 0 {
		for i, ta := range tagAtoms {
			if i > 0 && ta == a {
				return Tag(i), nil
			}
		}
	}
	return TagDefault, fmt.Errorf("%s is %w", name, ErrInvalidTag)
}

// Heading returns heading tag for level, clamped to 1..6.
func Heading(level int) Tag {
	level = max(1, min(6, level))
	return TagH1 + Tag(level-1)
}

type tagSet map[Tag]bool

func tags(list ...Tag) tagSet {
	s := make(tagSet, len(list))
	for _, t := range list {
		s[t] = true
	}
	return s
}
