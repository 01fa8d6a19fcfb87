package policies

import (
	"sort"
	"strings"

	"devkit-builder/internal/ports"
	"devkit-builder/internal/types"
)

// SymbolPolicy classifies symbol names by the prefix lists of a family.
// Own prefixes take precedence over public prefixes.
type SymbolPolicy struct {
	OwnPrefixes    []string
	PublicPrefixes []string
	own            []string
	public         []string
}

func NewSymbolPolicy(ownPrefixes []string, publicPrefixes []string) SymbolPolicy {
	policy := SymbolPolicy{
		OwnPrefixes:    ownPrefixes,
		PublicPrefixes: publicPrefixes,
	}
	policy.compile()
	return policy
}

// NewFamilySymbolPolicy builds the policy for a family's curated lists.
func NewFamilySymbolPolicy(family types.Family) SymbolPolicy {
	return NewSymbolPolicy(family.OwnPrefixes, family.PublicPrefixes)
}

func (p SymbolPolicy) Classify(name string) types.SymbolClass {
	if matchesPrefix(name, p.own) {
		return types.SymbolClassOwn
	}
	if matchesPrefix(name, p.public) {
		return types.SymbolClassPublicThirdParty
	}
	return types.SymbolClassPrivateThirdParty
}

func (p *SymbolPolicy) compile() {
	p.own = compilePrefixes(p.OwnPrefixes)
	p.public = compilePrefixes(p.PublicPrefixes)
}

// compilePrefixes trims, drops empties and sorts so that a shorter prefix is
// checked before any longer prefix it covers.
func compilePrefixes(prefixes []string) []string {
	unique := map[string]struct{}{}
	for _, prefix := range prefixes {
		trimmed := strings.TrimSpace(prefix)
		if trimmed == "" {
			continue
		}
		unique[trimmed] = struct{}{}
	}
	compiled := make([]string, 0, len(unique))
	for prefix := range unique {
		compiled = append(compiled, prefix)
	}
	sort.Strings(compiled)
	return compiled
}

func matchesPrefix(name string, sorted []string) bool {
	// Any prefix of name sorts at or before name, so the search can stop
	// at the insertion point.
	limit := sort.SearchStrings(sorted, name)
	if limit < len(sorted) && sorted[limit] == name {
		return true
	}
	for i := limit - 1; i >= 0; i-- {
		if strings.HasPrefix(name, sorted[i]) {
			return true
		}
		if sorted[i] == "" || sorted[i][0] != name[0] {
			break
		}
	}
	return false
}

var _ ports.SymbolPolicyPort = SymbolPolicy{}
