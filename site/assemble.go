package site

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"bms/css"
	"bms/jobs"
	"bms/layout"
	"bms/style"
)

// Settings control document assembly.
type Settings struct {
	Base           string
	Company        string
	Language       string
	TitleTemplate  string
	ClassPrefix    string
	StylesheetPath string // supplementary stylesheet, optional
	External       bool
	Minify         bool
}

// TitleValues are available to title template.
type TitleValues struct {
	Company  string
	Base     string
	Language string
	Jobs     []jobs.Spec
}

// ExpandTitle executes title template. Empty template yields company name.
func ExpandTitle(tmplText string, values TitleValues) (string, error) {
	if tmplText == "" {
		return values.Company, nil
	}
	tmpl, err := template.New("title").Funcs(sprig.FuncMap()).Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("unable to parse title template: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand title template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// ParseLanguage returns language tag, invalid or empty value falls back to
// English.
func ParseLanguage(s string, log *zap.Logger) language.Tag {
	if s == "" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		log.Warn("Invalid language, using default", zap.String("language", s), zap.Stringer("default", language.English), zap.Error(err))
		return language.English
	}
	return tag
}

func isRelativeURL(u string) bool {
	return u != "" && !strings.HasPrefix(u, "/") && !strings.HasPrefix(u, "#") &&
		!strings.HasPrefix(u, "data:") && !strings.Contains(u, "://")
}

// LoadStylesheet parses supplementary stylesheet at path. Relative URLs in it
// are resolved against base.
func LoadStylesheet(path, base string, log *zap.Logger) (*css.Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read stylesheet: %w", err)
	}

	sheet := css.NewParser(log).Parse(data, path)
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet input dropped", zap.String("path", path), zap.String("reason", w))
	}

	if base != "" {
		sheet.RewriteURLs(func(u string) string {
			if isRelativeURL(u) {
				return Asset(base, u)
			}
			return u
		})
	}
	return sheet, nil
}

// Assemble builds page for list of jobs and wraps it into document. All
// styles are compiled with a fresh cache so documents do not share rules.
func Assemble(s Settings, list []jobs.Spec, log *zap.Logger) (*Document, error) {
	if log == nil {
		log = zap.NewNop()
	}

	compiler := style.NewCompiler(style.NewCache(), style.WithPrefix(s.ClassPrefix), style.WithLogger(log))
	kit := layout.NewKit(compiler, log)

	body := Page{Base: s.Base, Company: s.Company, Jobs: list}.Build(kit)

	sheet := &css.Stylesheet{}
	if s.StylesheetPath != "" {
		extra, err := LoadStylesheet(s.StylesheetPath, s.Base, log)
		if err != nil {
			return nil, err
		}
		sheet.Append(extra)
	}
	sheet.Append(compiler.Stylesheet())

	lang := ParseLanguage(s.Language, log)
	title, err := ExpandTitle(s.TitleTemplate, TitleValues{
		Company:  s.Company,
		Base:     s.Base,
		Language: lang.String(),
		Jobs:     list,
	})
	if err != nil {
		return nil, err
	}

	log.Debug("Document assembled",
		zap.Int("jobs", len(list)),
		zap.Int("rules", compiler.Cache().Len()),
		zap.String("title", title),
	)

	return &Document{
		Title:      title,
		Language:   lang,
		Stylesheet: sheet,
		External:   s.External,
		Minify:     s.Minify,
		Body:       body,
	}, nil
}
