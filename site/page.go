// Package site composes the company page from layout primitives and
// assembles it into an HTML document.
package site

import (
	"strings"

	"bms/css"
	"bms/jobs"
	"bms/layout"
	"bms/style"
)

// Asset resolves name against base by plain concatenation. Absolute paths,
// URLs with scheme and empty names are returned unchanged.
func Asset(base, name string) string {
	if name == "" || strings.HasPrefix(name, "/") || strings.HasPrefix(name, "data:") || strings.Contains(name, "://") {
		return name
	}
	return base + "/" + name
}

// Page is the whole company page.
type Page struct {
	Base    string // prefix for asset URLs
	Company string
	Jobs    []jobs.Spec
}

// Build creates page tree compiling all styles with kit.
func (p Page) Build(k *layout.Kit) layout.Node {
	return k.Block(layout.Opts{Style: style.Props{
		"textAlign":       "center",
		"backgroundColor": "hsl(0, 0%, 95%)",
		"fontSize":        "calc( 16px + (32 - 16) * ( (100vw - 320px) / ( 1200 - 320) ))",
	}},
		k.Grid(layout.Opts{
			Class: "container",
			Style: style.Props{
				"gridTemplateAreas":   `"logo" "who-we-are" "where-we-work"`,
				"gridTemplateColumns": "100vw",
				"minHeight":           "80vh",
				"backgroundColor":     "hsl(212, 35%, 50%)",
			},
		},
			Logo(k, p.Base, p.Company, layout.Opts{Style: style.Props{
				"gridArea": "logo",
				"padding":  "2em",
			}}),
			WhoWeAre(k, layout.Opts{
				Class: "who-we-are",
				Style: style.Props{
					"gridArea":           "who-we-are",
					"width":              "100%",
					"backgroundColor":    "hsl(123, 41%, 45%)",
					"backgroundImage":    css.URL(Asset(p.Base, "whoweare-bg.png")),
					"backgroundPosition": "center center",
					"backgroundSize":     "cover",
					"color":              "hsla(255, 0%, 100%, 0.95)",
				},
			}),
			WhereWeWork(k, layout.Opts{
				Class: "where-we-work",
				Style: style.Props{
					"gridArea":           "where-we-work",
					"width":              "100%",
					"backgroundColor":    "hsl(262, 47%, 63%)",
					"backgroundImage":    css.URL(Asset(p.Base, "wherewework-bg.png")),
					"backgroundPosition": "center center",
					"backgroundSize":     "cover",
					"color":              "hsla(255, 0%, 100%, 0.95)",
				},
			}),
		),
		WhatWeveDone(k, p.Base, p.Jobs, layout.Opts{Style: style.Props{
			"gridArea":        "what-weve-done",
			"backgroundColor": "white",
			"padding":         "2em",
			"width":           "100%",
			"color":           "#333",
		}}),
	)
}
