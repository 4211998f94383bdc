package textnorm

// DefaultThreshold is the minimum Jaccard index at which two titles are
// considered near-duplicates.
const DefaultThreshold = 0.5

// Matcher decides whether two titles refer to nearly the same listing.
type Matcher struct {
	norm      *Normalizer
	threshold float64
}

// NewMatcher builds a matcher over the given normalizer. A non-positive
// threshold falls back to DefaultThreshold.
func NewMatcher(norm *Normalizer, threshold float64) *Matcher {
	if norm == nil {
		norm = NewNormalizer(nil)
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{norm: norm, threshold: threshold}
}

// Normalizer exposes the underlying keyword normalizer.
func (m *Matcher) Normalizer() *Normalizer {
	return m.norm
}

// Similar reports whether the Jaccard index of the two normalized keyword
// sets reaches the threshold. Titles that normalize to an empty set are
// never similar, not even to themselves.
func (m *Matcher) Similar(a, b string) bool {
	setA := m.norm.Keywords(a)
	setB := m.norm.Keywords(b)
	if len(setA) == 0 || len(setB) == 0 {
		return false
	}

	common := 0
	for word := range setA {
		if _, ok := setB[word]; ok {
			common++
		}
	}
	union := len(setA) + len(setB) - common
	if union == 0 {
		return false
	}

	return float64(common)/float64(union) >= m.threshold
}

// SimilarToAny reports whether the title is similar to any of the recent
// titles.
func (m *Matcher) SimilarToAny(title string, recent []string) bool {
	for _, r := range recent {
		if m.Similar(title, r) {
			return true
		}
	}
	return false
}
