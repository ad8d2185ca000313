package plugin

// Matcher scores how well an instrument identity string fits a plugin
type Matcher interface {
	Score(identity string, d Descriptor) int
}

// RegexpMatcher counts how many of a descriptor's patterns match the identity.
// Each pattern is an independent unanchored search; malformed patterns never match.
type RegexpMatcher struct{}

// NewRegexpMatcher creates the default identity matcher
func NewRegexpMatcher() *RegexpMatcher {
	return &RegexpMatcher{}
}

// Score implements Matcher
func (m *RegexpMatcher) Score(identity string, d Descriptor) int {
	score := 0
	for _, p := range d.patterns {
		if p.re == nil {
			continue
		}
		if p.re.MatchString(identity) {
			score++
		}
	}
	return score
}

var _ Matcher = (*RegexpMatcher)(nil)
