// Package style compiles style props into deduplicated CSS class rules.
//
// Every distinct set of normalized props is registered once in a Cache and
// receives a class name derived from the content hash of its canonical
// serialization, so the same props produce the same class in every run.
package style

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"bms/css"
)

// DefaultPrefix starts every generated class name unless WithPrefix is used.
const DefaultPrefix = "bm"

// Compiler turns props into class names registering rules in its cache.
type Compiler struct {
	cache  *Cache
	prefix string
	log    *zap.Logger
}

// Option configures Compiler.
type Option func(*Compiler)

// WithPrefix sets class name prefix. Prefix is cleaned to be usable in a
// selector, empty result falls back to DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(c *Compiler) {
		c.prefix = cleanPrefix(prefix)
	}
}

// WithLogger sets logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Compiler) {
		if log != nil {
			c.log = log.Named("style")
		}
	}
}

func cleanPrefix(prefix string) string {
	s := slug.Make(prefix)
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return DefaultPrefix
	}
	return s
}

// NewCompiler creates compiler registering rules in cache. When cache is nil
// compiler gets its own.
func NewCompiler(cache *Cache, opts ...Option) *Compiler {
	if cache == nil {
		cache = NewCache()
	}
	c := &Compiler{
		cache:  cache,
		prefix: DefaultPrefix,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cache returns cache compiler registers rules in.
func (c *Compiler) Cache() *Cache {
	return c.cache
}

// Compile returns class name for props registering rule on first use. Props
// without any declarations produce empty class name.
func (c *Compiler) Compile(p Props) string {
	decls := Normalize(p)
	if len(decls) == 0 {
		return ""
	}

	key := Serialize(decls)
	if r, ok := c.cache.Lookup(key); ok {
		return r.Class
	}

	class := c.className(key)
	r, created := c.cache.Intern(key, class, decls)
	if created {
		if r.Class != class {
			c.log.Warn("Class name collision, using suffixed name",
				zap.String("class", class), zap.String("resolved", r.Class))
		}
		c.log.Debug("Registered style rule", zap.String("class", r.Class), zap.Int("declarations", len(decls)))
	}
	return r.Class
}

func (c *Compiler) className(key string) string {
	return c.prefix + strconv.FormatUint(xxhash.Sum64String(key), 36)
}

// Rule returns registered rule for class name.
func (c *Compiler) Rule(class string) (Rule, bool) {
	return c.cache.ByClass(class)
}

// Stylesheet converts registered rules to stylesheet. Each rule produces base
// class rule followed by rules for its pseudo states.
func (c *Compiler) Stylesheet() *css.Stylesheet {
	sheet := &css.Stylesheet{}
	for _, r := range c.cache.Rules() {
		if base := r.Declarations.Base(); len(base) > 0 {
			sheet.AddRule(toRule(r.Class, "", base))
		}
		for _, state := range r.Declarations.States() {
			sheet.AddRule(toRule(r.Class, state, r.Declarations.Pseudo(state)))
		}
	}
	return sheet
}

func toRule(class, state string, decls Declarations) css.Rule {
	props := make(map[string]css.Value, len(decls))
	for _, d := range decls {
		props[d.Property] = css.RawValue(d.Value)
	}
	return css.Rule{Selector: css.ClassSelector(class, state), Properties: props}
}
