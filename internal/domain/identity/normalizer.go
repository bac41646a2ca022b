package identity

import "strings"

// Replacement is a case-sensitive substring rewrite applied before
// punctuation stripping. Order matters, so replacements are a slice,
// not a map.
type Replacement struct {
	Old string
	New string
}

// Normalizer canonicalizes player display names so the same athlete
// joins across sources that spell names differently. Matching downstream
// is exact string equality on the normalized form; there is no fuzzy or
// locale-aware matching, and a name that fails to join is a silent miss.
type Normalizer struct {
	replacements []Replacement
}

func NewNormalizer(replacements []Replacement) *Normalizer {
	return &Normalizer{replacements: replacements}
}

// Normalize applies each replacement in order, then strips periods.
func (n *Normalizer) Normalize(name string) string {
	for _, r := range n.replacements {
		name = strings.ReplaceAll(name, r.Old, r.New)
	}
	return strings.ReplaceAll(name, ".", "")
}
