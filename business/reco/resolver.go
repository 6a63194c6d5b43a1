package reco

import (
	"strings"

	"telcoReco/domain"
)

// Matcher is one tier of the offer-to-product mapping policy. Tiers are tried
// in resolver order and the first hit wins.
type Matcher interface {
	Name() string
	Match(offer string, catalog []domain.Product) (uint64, bool)
}

// Resolver maps free-text offer labels from the scorer onto real catalog
// entries. It is total for any non-empty catalog: when no tier matches it
// falls back to the first catalog product, so the pipeline never stalls on an
// unrecognized label.
type Resolver struct {
	matchers []Matcher
}

func NewResolver() *Resolver {
	return &Resolver{
		matchers: []Matcher{
			exactMatcher{},
			containmentMatcher{},
			keywordMatcher{},
			categoryMatcher{},
		},
	}
}

const TierFallback = "fallback"

// Resolve returns the matched product id and the name of the tier that
// produced it. The caller is expected to log TierFallback hits as
// low-confidence. Catalog must be non-empty.
func (r *Resolver) Resolve(offer string, catalog []domain.Product) (uint64, string) {
	for _, m := range r.matchers {
		if id, ok := m.Match(offer, catalog); ok {
			return id, m.Name()
		}
	}

	return catalog[0].ID, TierFallback
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Tier 1: case-insensitive, whitespace-trimmed name equality.
type exactMatcher struct{}

func (exactMatcher) Name() string { return "exact" }

func (exactMatcher) Match(offer string, catalog []domain.Product) (uint64, bool) {
	o := norm(offer)
	for _, p := range catalog {
		if o == norm(p.Name) {
			return p.ID, true
		}
	}
	return 0, false
}

// Tier 2: the offer contains the full product name or vice versa.
type containmentMatcher struct{}

func (containmentMatcher) Name() string { return "partial" }

func (containmentMatcher) Match(offer string, catalog []domain.Product) (uint64, bool) {
	o := norm(offer)
	for _, p := range catalog {
		name := norm(p.Name)
		if name == "" {
			continue
		}
		if strings.Contains(o, name) || strings.Contains(name, o) {
			return p.ID, true
		}
	}
	return 0, false
}

// Fixed semantic-group table for tier 3. Groups are checked in declared
// order; the first product that qualifies for a group wins.
var keywordGroups = []struct {
	group    string
	keywords []string
}{
	{"data", []string{"data", "internet", "kuota", "gb", "streaming", "video"}},
	{"voice", []string{"nelpon", "voice", "call", "talktime", "telpon", "menit"}},
	{"roaming", []string{"roaming", "travel", "international"}},
	{"device", []string{"device", "phone", "bundling", "hp"}},
	{"family", []string{"family", "keluarga", "combo", "mix"}},
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Tier 3: the offer label and a product share a semantic keyword group. The
// group must be evidenced by the offer text itself; matching on the product
// side alone would claim keyword confidence for labels the table knows
// nothing about.
type keywordMatcher struct{}

func (keywordMatcher) Name() string { return "keyword" }

func (keywordMatcher) Match(offer string, catalog []domain.Product) (uint64, bool) {
	o := norm(offer)
	for _, g := range keywordGroups {
		if !containsAny(o, g.keywords) {
			continue
		}
		for _, p := range catalog {
			if containsAny(norm(p.Name), g.keywords) || containsAny(norm(p.Category), g.keywords) {
				return p.ID, true
			}
		}
	}
	return 0, false
}

// Tier 4: the offer contains the product's category string or vice versa.
type categoryMatcher struct{}

func (categoryMatcher) Name() string { return "category" }

func (categoryMatcher) Match(offer string, catalog []domain.Product) (uint64, bool) {
	o := norm(offer)
	for _, p := range catalog {
		cat := norm(p.Category)
		if cat == "" {
			continue
		}
		if strings.Contains(o, cat) || strings.Contains(cat, o) {
			return p.ID, true
		}
	}
	return 0, false
}
