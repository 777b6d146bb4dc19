package style

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Props maps style property names to values. Names are camel-cased CSS
// properties (backgroundColor), optionally prefixed with a pseudo state
// (hoverBoxShadow), or already canonical CSS names (background-color,
// --custom). Values are strings, numbers, booleans, fmt.Stringer or nil.
type Props map[string]any

// Keys which carry element wiring rather than style.
var reserved = map[string]bool{
	"component": true,
	"className": true,
	"props":     true,
}

// Pseudo states recognized as key prefixes.
var pseudoStates = []string{"hover", "focus", "active"}

var vendorPrefixes = []string{"webkit", "moz", "ms"}

// lengthProperties take an implicit px unit when given a non zero number.
var lengthProperties = map[string]bool{
	"width": true, "height": true,
	"min-width": true, "min-height": true, "max-width": true, "max-height": true,
	"inline-size": true, "block-size": true,
	"min-inline-size": true, "min-block-size": true, "max-inline-size": true, "max-block-size": true,
	"top": true, "right": true, "bottom": true, "left": true,
	"inset": true, "inset-block": true, "inset-block-start": true, "inset-block-end": true,
	"inset-inline": true, "inset-inline-start": true, "inset-inline-end": true,
	"margin": true, "margin-top": true, "margin-right": true, "margin-bottom": true, "margin-left": true,
	"margin-block": true, "margin-block-start": true, "margin-block-end": true,
	"margin-inline": true, "margin-inline-start": true, "margin-inline-end": true,
	"padding": true, "padding-top": true, "padding-right": true, "padding-bottom": true, "padding-left": true,
	"padding-block": true, "padding-block-start": true, "padding-block-end": true,
	"padding-inline": true, "padding-inline-start": true, "padding-inline-end": true,
	"border-width": true, "border-top-width": true, "border-right-width": true, "border-bottom-width": true, "border-left-width": true,
	"border-radius": true, "border-top-left-radius": true, "border-top-right-radius": true,
	"border-bottom-left-radius": true, "border-bottom-right-radius": true,
	"outline-width": true, "outline-offset": true,
	"font-size": true, "letter-spacing": true, "word-spacing": true, "text-indent": true,
	"flex-basis": true, "background-size": true, "perspective": true, "column-width": true,
	"gap": true, "row-gap": true, "column-gap": true,
	"grid-gap": true, "grid-row-gap": true, "grid-column-gap": true,
	"grid-auto-rows": true, "grid-auto-columns": true,
}

// Declaration is a single normalized property assignment.
type Declaration struct {
	Pseudo   string // pseudo-class without colon, empty for base rule
	Property string
	Value    string
}

// Declarations is a canonical set: sorted by pseudo then property, no
// duplicates. Base declarations come first.
type Declarations []Declaration

// Base returns declarations without pseudo state.
func (d Declarations) Base() Declarations {
	return d.Pseudo("")
}

// Pseudo returns declarations for the given pseudo state.
func (d Declarations) Pseudo(state string) Declarations {
	var out Declarations
	for _, decl := range d {
		if decl.Pseudo == state {
			out = append(out, decl)
		}
	}
	return out
}

// States lists distinct pseudo states in canonical order.
func (d Declarations) States() []string {
	var states []string
	for _, decl := range d {
		if decl.Pseudo == "" {
			continue
		}
		if len(states) == 0 || states[len(states)-1] != decl.Pseudo {
			states = append(states, decl.Pseudo)
		}
	}
	return states
}

// PropertyName splits key into pseudo state and canonical CSS property name.
func PropertyName(key string) (pseudo, property string) {
	if strings.HasPrefix(key, "--") || strings.Contains(key, "-") {
		return "", key
	}

	name := key
	for _, state := range pseudoStates {
		if len(name) > len(state) && strings.HasPrefix(name, state) && isUpper(name[len(state)]) {
			pseudo = state
			name = name[len(state):]
			break
		}
	}

	for _, vendor := range vendorPrefixes {
		for _, p := range []string{vendor, strings.ToUpper(vendor[:1]) + vendor[1:]} {
			if len(name) > len(p) && strings.HasPrefix(name, p) && isUpper(name[len(p)]) {
				return pseudo, "-" + vendor + kebab(name[len(p):])
			}
		}
	}
	return pseudo, strings.TrimPrefix(kebab(name), "-")
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// kebab converts camelCase to kebab-case, every upper-case letter starts a
// new dash separated word.
func kebab(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUpper(c) {
			sb.WriteByte('-')
			sb.WriteByte(c + ('a' - 'A'))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// FormatValue renders value for property. Second result is false when value
// means "unset" (nil, empty string, false).
func FormatValue(property string, v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case bool:
		if !val {
			return "", false
		}
		return "true", true
	case fmt.Stringer:
		s := val.String()
		return s, s != ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if !rv.Bool() {
			return "", false
		}
		return "true", true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return formatNumber(property, strconv.FormatInt(rv.Int(), 10), rv.Int() == 0), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return formatNumber(property, strconv.FormatUint(rv.Uint(), 10), rv.Uint() == 0), true
	case reflect.Float32, reflect.Float64:
		return formatNumber(property, strconv.FormatFloat(rv.Float(), 'f', -1, 64), rv.Float() == 0), true
	case reflect.String:
		s := rv.String()
		return s, s != ""
	}
	return fmt.Sprint(v), true
}

func formatNumber(property, num string, zero bool) string {
	if zero {
		return "0"
	}
	if lengthProperties[property] {
		return num + "px"
	}
	return num
}

// Normalize converts props into canonical declarations. When several keys
// resolve to the same property the one sorting last wins.
func Normalize(p Props) Declarations {
	keys := make([]string, 0, len(p))
	for k := range p {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	type slot struct{ pseudo, property string }
	values := make(map[slot]string, len(keys))
	for _, k := range keys {
		pseudo, property := PropertyName(k)
		s := slot{pseudo, property}
		value, ok := FormatValue(property, p[k])
		if !ok {
			// later key may unset earlier one
			delete(values, s)
			continue
		}
		values[s] = value
	}

	out := make(Declarations, 0, len(values))
	for s, v := range values {
		out = append(out, Declaration{Pseudo: s.pseudo, Property: s.property, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pseudo != out[j].Pseudo {
			return out[i].Pseudo < out[j].Pseudo
		}
		return out[i].Property < out[j].Property
	})
	return out
}

// Serialize produces canonical text of declarations, used as cache key.
func Serialize(d Declarations) string {
	var sb strings.Builder
	for _, decl := range d {
		if decl.Pseudo != "" {
			sb.WriteByte(':')
			sb.WriteString(decl.Pseudo)
			sb.WriteByte(' ')
		}
		sb.WriteString(decl.Property)
		sb.WriteByte(':')
		sb.WriteString(decl.Value)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Merge combines layers, later layers win. Keys are compared after
// normalization so backgroundColor and background-color override each
// other. A nil value in a later layer unsets the property.
func Merge(layers ...Props) Props {
	type slot struct{ pseudo, property string }
	owner := make(map[slot]string)

	out := make(Props)
	for _, layer := range layers {
		keys := make([]string, 0, len(layer))
		for k := range layer {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if reserved[k] {
				out[k] = layer[k]
				continue
			}
			pseudo, property := PropertyName(k)
			s := slot{pseudo, property}
			if prev, ok := owner[s]; ok && prev != k {
				delete(out, prev)
			}
			owner[s] = k
			out[k] = layer[k]
		}
	}
	return out
}
