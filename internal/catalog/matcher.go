package catalog

import "scentlog/internal/textutil"

// DefaultMatchThreshold is the exclusive minimum similarity a candidate must
// exceed to count as a match. Calibrated against nothing in particular; it is
// exposed through config for that reason.
const DefaultMatchThreshold = 0.5

// Match is a resolved catalog candidate with its similarity score.
type Match struct {
	Entry      Entry
	Confidence float64
}

// Matcher scores free-text fragrance names against a catalog.
type Matcher struct {
	threshold float64
}

// NewMatcher builds a matcher with the given confidence threshold. A
// non-positive threshold falls back to DefaultMatchThreshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Matcher{threshold: threshold}
}

// Threshold reports the exclusive minimum confidence in use.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match returns the single best candidate scoring strictly above the
// threshold, or nil when nothing qualifies. Each candidate is scored against
// both its "house name" and bare name forms, taking the higher. Ties keep the
// first candidate in catalog order, so results are deterministic for a given
// (input, catalog) pair.
func (m *Matcher) Match(input string, entries []Entry) *Match {
	normalized := textutil.NormalizeMatchKey(input)
	if normalized == "" {
		return nil
	}

	var best *Match
	bestScore := m.threshold
	for _, entry := range entries {
		score := textutil.Similarity(normalized, textutil.NormalizeMatchKey(entry.FullName()))
		if nameOnly := textutil.Similarity(normalized, textutil.NormalizeMatchKey(entry.Name)); nameOnly > score {
			score = nameOnly
		}
		if score > bestScore {
			bestScore = score
			best = &Match{Entry: entry, Confidence: score}
		}
	}
	return best
}
