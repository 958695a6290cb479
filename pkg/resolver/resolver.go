// Package resolver turns a free-text author location such as
// "Bankstown, New South Wales" into a region code.
package resolver

import (
	"strings"

	"pkg.jsn.cam/geotally/pkg/region"
)

// Catalog is the read-only lookup the resolver consults. Keys are
// lowercase; see catalog.Catalog.
type Catalog interface {
	Lookup(name string) (region.Code, bool)
}

// Rule names the layer that produced a match.
type Rule uint8

const (
	RuleNone Rule = iota
	RuleTerritory
	RuleCity
	RuleComposite
	RuleSuburb
)

func (r Rule) String() string {
	switch r {
	case RuleTerritory:
		return "territory"
	case RuleCity:
		return "city"
	case RuleComposite:
		return "composite"
	case RuleSuburb:
		return "suburb"
	default:
		return "none"
	}
}

// territories always resolve to region.OtherTerritories.
var territories = map[string]struct{}{
	"christmas island": {},
	"home island":      {},
	"jervis bay":       {},
	"norfolk island":   {},
	"west island":      {},
}

var cities = map[string]struct{}{
	"sydney":    {},
	"melbourne": {},
	"brisbane":  {},
	"adelaide":  {},
	"perth":     {},
	"hobart":    {},
	"darwin":    {},
	"canberra":  {},
}

// states is ordered; composite keys are tried in this order.
var states = []struct {
	name string
	abbr string
}{
	{"new south wales", "nsw"},
	{"victoria", "vic."},
	{"queensland", "qld"},
	{"south australia", "sa"},
	{"western australia", "wa"},
	{"tasmania", "tas."},
	{"northern territory", "nt"},
	{"australian capital territory", "act"},
}

// Resolver resolves locations against a catalog. It holds no mutable state
// and may be shared between goroutines.
type Resolver struct {
	catalog Catalog
}

// New creates a resolver over cat.
func New(cat Catalog) *Resolver {
	return &Resolver{catalog: cat}
}

// Resolve returns the region for location, or false when no layer matches.
// An unresolved location is an ordinary outcome, not an error.
func (r *Resolver) Resolve(location string) (region.Code, bool) {
	code, rule := r.Explain(location)
	return code, rule != RuleNone
}

// Explain is Resolve that also reports which layer matched.
//
// Territories are checked across all tokens first. Then, for each token
// from left to right, the city, city+state composite and raw suburb
// lookups are tried in turn; the first catalog hit wins.
func (r *Resolver) Explain(location string) (region.Code, Rule) {
	tokens := tokenize(location)
	if len(tokens) == 0 {
		return 0, RuleNone
	}

	for _, tok := range tokens {
		if _, ok := territories[tok]; ok {
			return region.OtherTerritories, RuleTerritory
		}
	}

	// Abbreviations of every state named anywhere in the location.
	var abbrs []string
	for _, s := range states {
		if contains(tokens, s.name) {
			abbrs = append(abbrs, s.abbr)
		}
	}

	for _, tok := range tokens {
		if _, ok := cities[tok]; ok {
			if code, ok := r.catalog.Lookup(tok); ok {
				return code, RuleCity
			}
		}

		for _, abbr := range abbrs {
			if code, ok := r.catalog.Lookup(tok + " (" + abbr + ")"); ok {
				return code, RuleComposite
			}
		}

		if code, ok := r.catalog.Lookup(tok); ok {
			return code, RuleSuburb
		}
	}

	return 0, RuleNone
}

func tokenize(location string) []string {
	parts := strings.Split(location, ",")
	tokens := parts[:0]
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

func contains(tokens []string, s string) bool {
	for _, t := range tokens {
		if t == s {
			return true
		}
	}
	return false
}
