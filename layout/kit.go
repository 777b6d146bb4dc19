// Package layout provides styled primitive elements. Every primitive compiles
// its style props into a single class name at construction.
package layout

import (
	"strings"

	"go.uber.org/zap"

	"bms/style"
)

// Opts configure a primitive.
type Opts struct {
	Component Tag         // element kind, TagDefault selects primitive default
	Style     style.Props // style props, merged over primitive defaults
	Class     string      // extra static classes, space separated
	Attrs     Attrs       // pass-through attributes
}

type primitive struct {
	name    string
	tag     Tag
	display string
	allowed tagSet
}

var (
	blockTags = tags(TagDiv, TagSection, TagArticle, TagMain, TagHeader, TagFooter, TagNav, TagAside,
		TagFigure, TagP, TagH1, TagH2, TagH3, TagH4, TagH5, TagH6, TagAddress, TagUl, TagLi, TagA, TagButton, TagLabel)

	blockPrim       = primitive{name: "Block", tag: TagDiv, display: "block", allowed: blockTags}
	inlineBlockPrim = primitive{name: "InlineBlock", tag: TagDiv, display: "inline-block",
		allowed: tags(TagDiv, TagSpan, TagImg, TagA, TagButton, TagLabel, TagFigure)}
	inlinePrim = primitive{name: "Inline", tag: TagSpan, display: "inline",
		allowed: tags(TagSpan, TagA, TagEm, TagStrong, TagSmall, TagAbbr, TagSup, TagLabel)}
	flexPrim = primitive{name: "Flex", tag: TagDiv, display: "flex",
		allowed: tags(TagDiv, TagSection, TagArticle, TagMain, TagHeader, TagFooter, TagNav, TagAside, TagFigure, TagUl, TagAddress)}
	gridPrim = primitive{name: "Grid", tag: TagDiv, display: "grid",
		allowed: tags(TagDiv, TagSection, TagArticle, TagMain, TagHeader, TagFooter, TagUl)}
)

// Kit builds primitives compiling their styles with a single compiler.
type Kit struct {
	compiler *style.Compiler
	log      *zap.Logger
}

// NewKit creates kit.
func NewKit(compiler *style.Compiler, log *zap.Logger) *Kit {
	if log == nil {
		log = zap.NewNop()
	}
	return &Kit{compiler: compiler, log: log.Named("layout")}
}

// Compiler returns compiler used by the kit.
func (k *Kit) Compiler() *style.Compiler {
	return k.compiler
}

// Block is a display:block element, div by default.
func (k *Kit) Block(o Opts, children ...Node) *Element {
	return k.build(blockPrim, o, children)
}

// InlineBlock is a display:inline-block element, div by default.
func (k *Kit) InlineBlock(o Opts, children ...Node) *Element {
	return k.build(inlineBlockPrim, o, children)
}

// Inline is a display:inline element, span by default.
func (k *Kit) Inline(o Opts, children ...Node) *Element {
	return k.build(inlinePrim, o, children)
}

// Flex is a display:flex container, div by default.
func (k *Kit) Flex(o Opts, children ...Node) *Element {
	return k.build(flexPrim, o, children)
}

// Grid is a display:grid container, div by default.
func (k *Kit) Grid(o Opts, children ...Node) *Element {
	return k.build(gridPrim, o, children)
}

func (k *Kit) build(p primitive, o Opts, children []Node) *Element {
	tag := o.Component
	switch {
	case tag == TagDefault:
		tag = p.tag
	case !p.allowed[tag]:
		k.log.Warn("Unsupported element for primitive, using default",
			zap.String("primitive", p.name), zap.Stringer("tag", tag), zap.Stringer("default", p.tag))
		tag = p.tag
	}

	if tag.Void() && len(children) > 0 {
		k.log.Debug("Dropping children of void element", zap.Stringer("tag", tag), zap.Int("children", len(children)))
		children = nil
	}

	props := style.Merge(style.Props{"display": p.display}, o.Style)
	return &Element{
		Tag:      tag,
		Class:    k.compiler.Compile(props),
		Static:   strings.Fields(o.Class),
		Attrs:    o.Attrs,
		Children: children,
	}
}
