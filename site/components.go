package site

import (
	"maps"
	"strings"

	"bms/css"
	"bms/jobs"
	"bms/layout"
	"bms/style"
)

const systemFonts = "-apple-system, BlinkMacSystemFont, Calibri, Ubuntu, sans-serif"

// with returns opts whose style is defaults overridden by caller style.
func with(o layout.Opts, defaults style.Props) layout.Opts {
	o.Style = style.Merge(defaults, o.Style)
	return o
}

// pinned returns opts whose style is caller style overridden by values.
func pinned(o layout.Opts, values style.Props) layout.Opts {
	o.Style = style.Merge(o.Style, values)
	return o
}

// Heading renders h1..h6, level is clamped to that range.
func Heading(k *layout.Kit, level int, o layout.Opts, children ...layout.Node) *layout.Element {
	o = with(o, style.Props{"margin": "0", "fontSize": "1em"})
	o.Component = layout.Heading(level)
	return k.Block(o, children...)
}

// Paragraph renders p with system font stack.
func Paragraph(k *layout.Kit, o layout.Opts, children ...layout.Node) *layout.Element {
	o = with(o, style.Props{"margin": "0", "fontFamily": systemFonts})
	o.Component = layout.TagP
	return k.Block(o, children...)
}

// ImageSource describes picture shown by Image.
type ImageSource struct {
	Src    string
	Srcset string
	Alt    string
	Width  any
	Height any
}

// Image renders figure filled with a covering img.
func Image(k *layout.Kit, img ImageSource, o layout.Opts) *layout.Element {
	o = with(o, style.Props{"flex": "1", "margin": "0"})
	o.Component = layout.TagFigure

	attrs := layout.Attrs{"src": img.Src, "role": "presentation"}
	if img.Srcset != "" {
		attrs["srcset"] = img.Srcset
	}
	if img.Alt != "" {
		attrs["alt"] = img.Alt
	}
	return k.Flex(o,
		k.InlineBlock(layout.Opts{
			Component: layout.TagImg,
			Style: style.Props{
				"flex":         "1",
				"width":        img.Width,
				"height":       img.Height,
				"objectFit":    "cover",
				"mozObjectFit": "cover",
				"maxWidth":     "100%",
			},
			Attrs: attrs,
		}),
	)
}

// FeaturedImage fills its container with src as a covering background.
// Width and height are always 100%.
func FeaturedImage(k *layout.Kit, src string, o layout.Opts) *layout.Element {
	defaults := style.Props{}
	if src != "" {
		defaults = style.Props{
			"backgroundImage":    css.URL(src),
			"backgroundSize":     "cover",
			"backgroundPosition": "center center",
		}
	}
	o = pinned(with(o, defaults), style.Props{"width": "100%", "height": "100%"})
	return k.Block(o)
}

// JobBlock renders a single job card.
func JobBlock(k *layout.Kit, base string, job jobs.Spec, o layout.Opts) *layout.Element {
	o = with(o, style.Props{
		"overflow":        "hidden",
		"height":          "100%",
		"flexDirection":   "column",
		"backgroundColor": "#fafafa",
		"borderRadius":    "5px",
		"boxShadow":       "0 1px 5px #ccc",
		"hoverBoxShadow":  "0 5px 50px rgba(0, 0, 0, 0.25)",
		"transition":      "box-shadow 0.1s, transform 0.1s",
		"cursor":          "pointer",
	})
	o.Component = layout.TagArticle
	if job.Title != "" {
		attrs := layout.Attrs{"title": job.Title}
		maps.Copy(attrs, o.Attrs)
		o.Attrs = attrs
	}

	return k.Flex(o,
		FeaturedImage(k, Asset(base, job.HighlightedPhoto.Src), layout.Opts{
			Style: style.Props{"flex": "1", "filter": jobs.ImageFilter(job)},
		}),
	)
}

// Jobs renders grid of job cards, each spanning its width and height in
// grid tracks.
func Jobs(k *layout.Kit, base string, list []jobs.Spec) *layout.Element {
	cards := make([]layout.Node, 0, len(list))
	for _, job := range list {
		column, row := jobs.Placement(job)
		cards = append(cards, JobBlock(k, base, job, layout.Opts{
			Style: style.Props{
				"gridColumnStart": column,
				"gridRowStart":    row,
				"hoverTransform":  "scale(1.01)",
				"transformOrigin": "center center",
			},
		}))
	}

	return k.Grid(layout.Opts{
		Component: layout.TagMain,
		Style: style.Props{
			"padding":             "20px",
			"gridAutoFlow":        "row dense",
			"gridTemplateColumns": "repeat(auto-fill, 120px)",
			"gridAutoRows":        "120px",
			"gridGap":             "30px",
		},
	}, cards...)
}

// Logo renders company name over the building picture. First word of the
// name and the rest are shown on separate lines.
func Logo(k *layout.Kit, base, company string, o layout.Opts) *layout.Element {
	o = with(o, style.Props{
		"padding":             "2em 1em",
		"position":            "relative",
		"flexDirection":       "column",
		"justifyContent":      "center",
		"backgroundImage":     css.URL(Asset(base, "building.png")),
		"backgroundPositionX": "center",
		"backgroundPositionY": "15%",
		"backgroundSize":      "cover",
	})
	o.Component = layout.TagSection

	var lines []layout.Node
	if words := strings.Fields(company); len(words) > 0 {
		lines = append(lines, k.Inline(layout.Opts{Style: style.Props{"color": "hsla(255, 0%, 100%, 0.85)"}}, layout.Text(words[0])))
		if len(words) > 1 {
			lines = append(lines,
				layout.Raw(layout.TagBr, nil),
				k.Inline(layout.Opts{Style: style.Props{"color": "hsla(255, 0%, 100%, 0.60)"}}, layout.Text(strings.Join(words[1:], " "))),
			)
		}
	}

	return k.Flex(o,
		Heading(k, 2, layout.Opts{Style: style.Props{
			"fontFamily": "Bosnia Thin",
			"fontSize":   "2.5em",
			"lineHeight": "0.95em",
		}}, lines...),
	)
}

func section(k *layout.Kit, o layout.Opts, children ...layout.Node) *layout.Element {
	o = with(o, style.Props{
		"padding":        "1em 1em",
		"position":       "relative",
		"flexDirection":  "column",
		"justifyContent": "center",
	})
	o.Component = layout.TagSection
	return k.Flex(o, children...)
}

func sectionHeading(k *layout.Kit, first, second string) *layout.Element {
	return Heading(k, 3, layout.Opts{Style: style.Props{
		"fontSize":      "1.85em",
		"textTransform": "uppercase",
		"fontFamily":    "Bosnia Thin",
		"marginBottom":  "1.15em",
		"color":         "hsla(255, 0%, 100%, 0.85)",
	}},
		layout.Text(first+" "),
		k.Inline(layout.Opts{Style: style.Props{"color": "hsla(255, 0%, 100%, 0.70)"}}, layout.Text(second)),
	)
}

// WhoWeAre renders company introduction.
func WhoWeAre(k *layout.Kit, o layout.Opts) *layout.Element {
	return section(k, o,
		sectionHeading(k, "Who", "We Are"),
		Paragraph(k, layout.Opts{},
			layout.Text("We are a 4"),
			layout.Raw(layout.TagSup, nil, layout.Text("th")),
			layout.Text("-generation monument company, with a combined 100+ years of experience."),
		),
	)
}

// WhereWeWork renders address and service area.
func WhereWeWork(k *layout.Kit, o layout.Opts) *layout.Element {
	return section(k, o,
		sectionHeading(k, "Where", "We Work"),
		k.Grid(layout.Opts{Style: style.Props{
			"gridTemplateAreas":   `"address work-area" "location work-area"`,
			"gridTemplateColumns": "1fr 1fr",
			"gridTemplateRows":    "1fr 1fr",
			"gridColumnGap":       "1em",
		}},
			k.Block(layout.Opts{Component: layout.TagAddress, Style: style.Props{"gridArea": "address"}},
				layout.Text("1735 E. 11th St."),
				layout.Raw(layout.TagBr, nil),
				layout.Text("Tulsa, "),
				layout.Raw(layout.TagAbbr, layout.Attrs{"title": "Oklahoma"}, layout.Text("OK")),
				layout.Text(" 74104"),
			),
			Paragraph(k, layout.Opts{Style: style.Props{"gridArea": "location"}},
				layout.Text("One block east of 11th & Utica"),
			),
			Paragraph(k, layout.Opts{Style: style.Props{"gridArea": "work-area"}},
				layout.Text("We go anywhere in Oklahoma, although mostly on the eastern side of the state. "+
					"We also service parts of KS, MO, AR, and TX."),
			),
		),
	)
}

// ToolbarFilters are captions of toolbar cells.
var ToolbarFilters = []string{"Material", "Size", "Shape", "Finish", "Color"}

// Toolbar renders row of filter cells, the last one highlights on hover.
func Toolbar(k *layout.Kit) *layout.Element {
	cells := make([]layout.Node, 0, len(ToolbarFilters))
	for i, name := range ToolbarFilters {
		props := style.Props{
			"flex":            "1",
			"padding":         "0.5em",
			"backgroundColor": "white",
			"marginBottom":    "2px",
			"marginRight":     "2px",
		}
		if i == len(ToolbarFilters)-1 {
			props["hoverBackgroundColor"] = "rgba(255,255,255,0.5)"
		}
		cells = append(cells, k.Block(layout.Opts{Style: props}, layout.Text(name)))
	}

	return k.Flex(layout.Opts{Style: style.Props{
		"display":         "flex",
		"flexFlow":        "row wrap",
		"justifyContent":  "stretch",
		"border":          "solid 2px #444",
		"borderRight":     "0",
		"borderBottom":    "0",
		"fontSize":        "1em",
		"backgroundColor": "#444",
		"textTransform":   "uppercase",
	}}, cells...)
}

// WhatWeveDone renders toolbar followed by jobs grid.
func WhatWeveDone(k *layout.Kit, base string, list []jobs.Spec, o layout.Opts) *layout.Element {
	return k.Block(o, Toolbar(k), Jobs(k, base, list))
}
