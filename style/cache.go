package style

import (
	"strconv"
	"sync"
)

// Rule is a compiled prop set registered in the cache.
type Rule struct {
	Class        string
	Key          string // canonical serialization
	Declarations Declarations
}

// Cache holds compiled rules keyed by canonical serialization. It is append
// only, rules are never changed once registered. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	byKey   map[string]int
	byClass map[string]int
	rules   []Rule
}

// NewCache returns empty cache.
func NewCache() *Cache {
	return &Cache{
		byKey:   make(map[string]int),
		byClass: make(map[string]int),
	}
}

// Intern returns rule registered for key. If there is none, a rule with the
// given class is registered. When class is already taken by a different key
// a numeric suffix is appended until the name is free. The second result
// reports whether a new rule was registered.
func (c *Cache) Intern(key, class string, decls Declarations) (Rule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.byKey[key]; ok {
		return c.rules[i], false
	}

	name := class
	for n := 1; ; n++ {
		if _, taken := c.byClass[name]; !taken {
			break
		}
		name = class + "-" + strconv.Itoa(n)
	}

	r := Rule{Class: name, Key: key, Declarations: decls}
	c.byKey[key] = len(c.rules)
	c.byClass[name] = len(c.rules)
	c.rules = append(c.rules, r)
	return r, true
}

// Lookup returns rule registered for key.
func (c *Cache) Lookup(key string) (Rule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.byKey[key]
	if !ok {
		return Rule{}, false
	}
	return c.rules[i], true
}

// ByClass returns rule registered under class name.
func (c *Cache) ByClass(class string) (Rule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.byClass[class]
	if !ok {
		return Rule{}, false
	}
	return c.rules[i], true
}

// Len returns number of registered rules.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rules)
}

// Rules returns copy of registered rules in registration order.
func (c *Cache) Rules() []Rule {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Rule(nil), c.rules...)
}

// Reset drops all registered rules.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.byKey)
	clear(c.byClass)
	c.rules = nil
}
