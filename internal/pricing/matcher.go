package pricing

import (
	"regexp"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xrash/smetrics"
)

// matchCacheCapacity is the spec's default capacity for the model-match
// memoization cache, kept separate from the parse cache.
const matchCacheCapacity = 200

const fuzzyThreshold = 0.70

// Match is a resolved (entry, matched key) pair. MatchedKey differs from
// the input model string whenever resolution fell through to the
// normalized, substring or fuzzy strategies; it is empty on a miss.
type Match struct {
	Entry      Entry
	MatchedKey string
	Found      bool
	Fuzzy      bool
}

var providerPrefixes = []string{"bedrock/", "openai/", "anthropic/", "vertex_ai/", "azure/", "together_ai/", "groq/"}

var (
	dateSuffixPattern    = regexp.MustCompile(`-\d{8}$`)
	versionSuffixPattern = regexp.MustCompile(`-v\d+(\.\d+)*$`)
)

// Matcher resolves a raw model string to a pricing Entry, memoizing
// results in a bounded LRU keyed by the raw string.
type Matcher struct {
	catalog *Catalog
	mu      sync.RWMutex
	cache   *lru.Cache[string, Match]
}

// NewMatcher builds a Matcher bound to catalog.
func NewMatcher(catalog *Catalog) *Matcher {
	c, _ := lru.New[string, Match](matchCacheCapacity)
	return &Matcher{catalog: catalog, cache: c}
}

// Resolve returns the best-matching pricing entry for model.
func (m *Matcher) Resolve(model string) Match {
	m.mu.RLock()
	if cached, ok := m.cache.Peek(model); ok {
		m.mu.RUnlock()
		m.mu.Lock()
		m.cache.Get(model) // promote
		m.mu.Unlock()
		return cached
	}
	m.mu.RUnlock()

	result := resolve(m.catalog, model)

	m.mu.Lock()
	m.cache.Add(model, result)
	m.mu.Unlock()
	return result
}

func resolve(catalog *Catalog, model string) Match {
	if e, ok := catalog.Lookup(model); ok {
		return Match{Entry: e, MatchedKey: model, Found: true}
	}

	normModel := normalize(model)
	for _, k := range catalog.Keys() {
		if normalize(k) == normModel {
			e, _ := catalog.Lookup(k)
			return Match{Entry: e, MatchedKey: k, Found: true}
		}
	}

	if key, ok := substringMatch(catalog, model); ok {
		e, _ := catalog.Lookup(key)
		return Match{Entry: e, MatchedKey: key, Found: true, Fuzzy: true}
	}

	if key, ok := fuzzyMatch(catalog, normModel); ok {
		e, _ := catalog.Lookup(key)
		return Match{Entry: e, MatchedKey: key, Found: true, Fuzzy: true}
	}

	return Match{Found: false}
}

// normalize strips a trailing date-like suffix, a trailing version
// pattern, and a leading provider-prefix segment.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = dateSuffixPattern.ReplaceAllString(s, "")
	s = versionSuffixPattern.ReplaceAllString(s, "")
	for _, p := range providerPrefixes {
		s = strings.TrimPrefix(s, p)
	}
	return s
}

func substringMatch(catalog *Catalog, model string) (string, bool) {
	lowerModel := strings.ToLower(model)
	best := ""
	bestAffix := -1

	for _, k := range catalog.Keys() {
		lowerKey := strings.ToLower(k)
		if !strings.Contains(lowerModel, lowerKey) && !strings.Contains(lowerKey, lowerModel) {
			continue
		}
		affix := commonAffixLen(lowerModel, lowerKey)
		switch {
		case affix > bestAffix:
			bestAffix, best = affix, k
		case affix == bestAffix && best != "" && len(k) < len(best):
			best = k
		}
	}
	return best, best != ""
}

func commonAffixLen(a, b string) int {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a) && suffix < len(b) && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}
	if prefix > suffix {
		return prefix
	}
	return suffix
}

func fuzzyMatch(catalog *Catalog, normModel string) (string, bool) {
	best := ""
	bestScore := 0.0

	for _, k := range catalog.Keys() {
		score := smetrics.JaroWinkler(normModel, normalize(k), 0.7, 4)
		switch {
		case score > bestScore:
			bestScore, best = score, k
		case score == bestScore && best != "" && k < best:
			best = k
		}
	}
	if bestScore >= fuzzyThreshold {
		return best, true
	}
	return "", false
}
