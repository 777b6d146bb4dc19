package css

import (
	"bytes"
	"maps"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Rules, @media blocks, @font-face
// and @import are modelled, every other at-rule is carried as written.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	for {
		// everything between previous top-level item and the end of this one
		// belongs to it
		start := parser.Offset()
		gt, _, tok := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error, bad input is dropped up to the next
			// item
			if parser.HasParseError() && parser.Offset() > start {
				sheet.Warnings = append(sheet.Warnings, parser.Err().Error())
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
				continue
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := string(tok)
			switch atRule {
			case "@media":
				mq := MediaQuery{Raw: joinTokens(parser.Values())}
				rules, nested := p.parseMediaBlockRules(parser, sheet)
				if nested {
					// rules list with at-rules inside cannot be modelled
					p.addVerbatim(sheet, data, start, parser.Offset())
					continue
				}
				p.log.Debug("Parsed @media block", zap.String("query", mq.Raw), zap.Int("rules", len(rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{
					MediaBlock: &MediaBlock{Query: mq, Rules: rules},
				})
			case "@font-face":
				ff := p.parseFontFace(parser)
				sheet.Items = append(sheet.Items, StylesheetItem{FontFace: &ff})
			default:
				skipAtRuleBlock(parser)
				p.addVerbatim(sheet, data, start, parser.Offset())
				p.log.Debug("Keeping @-rule as is", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			if string(tok) == "@import" {
				if url := extractImportURL(parser.Values()); url != "" {
					sheet.Items = append(sheet.Items, StylesheetItem{Import: &url})
					p.log.Debug("Parsed @import", zap.String("url", url))
					continue
				}
			}
			p.addVerbatim(sheet, data, start, parser.Offset())

		case css.BeginRulesetGrammar:
			rules := p.parseRuleset(parser, sheet)
			for i := range rules {
				sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rules[i]})
			}

		case css.CustomPropertyGrammar, css.DeclarationGrammar:
			sheet.Warnings = append(sheet.Warnings, "declaration outside of rule: "+string(tok))
		}
	}
}

// addVerbatim stores source text of an at-rule unchanged.
func (p *Parser) addVerbatim(sheet *Stylesheet, data []byte, start, end int) {
	if start < 0 || end > len(data) || start >= end {
		return
	}
	text := strings.TrimSpace(string(data[start:end]))
	if text == "" {
		return
	}
	sheet.Items = append(sheet.Items, StylesheetItem{Verbatim: &text})
}

// parseRuleset reads selector list and declarations up to the end of the
// ruleset and produces one rule per selector.
func (p *Parser) parseRuleset(parser *css.Parser, sheet *Stylesheet) []Rule {
	selectors := splitSelectors(parser.Values())
	props := p.parseDeclarations(parser, sheet)

	rules := make([]Rule, 0, len(selectors))
	for _, sel := range selectors {
		// Clone properties for each rule
		propsCopy := make(map[string]Value, len(props))
		maps.Copy(propsCopy, props)
		rules = append(rules, Rule{Selector: Selector{Raw: sel}, Properties: propsCopy})
	}
	return rules
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// splitSelectors rebuilds selector list text and splits it on commas which
// are not nested in parentheses or brackets, as in :is(a, b) or [title=","].
func splitSelectors(tokens []css.Token) []string {
	var (
		selectors []string
		sb        strings.Builder
		level     int
	)
	flush := func() {
		if s := strings.TrimSpace(sb.String()); s != "" {
			selectors = append(selectors, s)
		}
		sb.Reset()
	}
	for _, t := range tokens {
		switch t.TokenType {
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			level++
		case css.RightParenthesisToken, css.RightBracketToken:
			level--
		case css.CommaToken:
			if level == 0 {
				flush()
				continue
			}
		}
		sb.Write(t.Data)
	}
	flush()
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
// Later declarations of the same property win.
func (p *Parser) parseDeclarations(parser *css.Parser, sheet *Stylesheet) map[string]Value {
	props := make(map[string]Value)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.EndRulesetGrammar:
			return props

		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return props
			}
			sheet.Warnings = append(sheet.Warnings, parser.Err().Error())

		case css.DeclarationGrammar:
			if values := parser.Values(); len(values) > 0 {
				props[string(data)] = Value{Raw: joinTokens(values)}
			}

		case css.CustomPropertyGrammar:
			// custom property value is kept verbatim, names are case sensitive
			props[string(data)] = Value{Raw: strings.TrimSpace(joinTokens(parser.Values()))}

		case css.BeginRulesetGrammar, css.BeginAtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "nested rule dropped: "+joinTokens(parser.Values()))
			skipAtRuleBlock(parser)
		}
	}
}

// joinTokens rebuilds value text collapsing whitespace runs to single space.
func joinTokens(tokens []css.Token) string {
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(rawParts, ""))
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return
			}
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseFontFace parses an @font-face block keeping all descriptors.
func (p *Parser) parseFontFace(parser *css.Parser) FontFace {
	ff := FontFace{Descriptors: make(map[string]Value)}

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return ff
			}
		case css.EndAtRuleGrammar:
			return ff

		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			name, val := string(data), joinTokens(values)
			ff.Descriptors[name] = Value{Raw: val}
			if name == "font-family" {
				ff.Family = unquote(val)
			}
		}
	}
}

// parseMediaBlockRules parses rules inside an @media block and returns them.
// nested reports at-rules inside of the block, which leaves rules incomplete.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, sheet *Stylesheet) (rules []Rule, nested bool) {
	for {
		gt, _, _ := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				return rules, nested
			}
		case css.EndAtRuleGrammar:
			return rules, nested

		case css.BeginAtRuleGrammar:
			nested = true
			skipAtRuleBlock(parser)

		case css.AtRuleGrammar:
			nested = true

		case css.BeginRulesetGrammar:
			rules = append(rules, p.parseRuleset(parser, sheet)...)
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
