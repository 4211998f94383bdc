package history

import "time"

// recentLimit bounds the anti-repetition lists.
const recentLimit = 4

// GlobalKey is the cooldown key touched after every successful publication
// and read by the global gate.
const GlobalKey = "global-last-publish"

// ClassKey returns the cooldown key for a category class ("accessory" ->
// "accessory-class-last-publish"). The cooldown map is an open namespace:
// per-category weekly keys use the bare category name, class keys use this
// suffix, and the global key is GlobalKey.
func ClassKey(class string) string {
	return class + "-class-last-publish"
}

// State is one run's in-memory snapshot of the persisted decision history.
// It is loaded once at the start of a run, mutated only after a successful
// publication and written back in full at the end.
type State struct {
	// Published maps an ASIN to the moment it was published. Entries older
	// than the recency window never survive a load.
	Published map[string]time.Time

	// RecentCategories holds the categories of the last publications,
	// most recent first, at most four.
	RecentCategories []string

	// RecentTitles holds the titles of the last publications from
	// title-checked categories, most recent first, at most four.
	RecentTitles []string

	// Cooldowns maps a purpose key to the last publication that counts
	// against it.
	Cooldowns map[string]time.Time
}

// NewState returns an empty snapshot.
func NewState() *State {
	return &State{
		Published: make(map[string]time.Time),
		Cooldowns: make(map[string]time.Time),
	}
}

// IsPublished reports whether the ASIN is inside the recency window.
func (s *State) IsPublished(asin string) bool {
	_, ok := s.Published[asin]
	return ok
}

// MarkPublished records a publication for the ASIN.
func (s *State) MarkPublished(asin string, at time.Time) {
	if s.Published == nil {
		s.Published = make(map[string]time.Time)
	}
	s.Published[asin] = at
}

// PushCategory prepends a category name, dropping the oldest beyond the
// bound.
func (s *State) PushCategory(name string) {
	s.RecentCategories = pushBounded(s.RecentCategories, name)
}

// PushTitle prepends a title, dropping the oldest beyond the bound.
func (s *State) PushTitle(title string) {
	s.RecentTitles = pushBounded(s.RecentTitles, title)
}

// HasRecentCategory reports whether the category was among the last
// publications.
func (s *State) HasRecentCategory(name string) bool {
	for _, c := range s.RecentCategories {
		if c == name {
			return true
		}
	}
	return false
}

// Cooldown returns the timestamp stored under the purpose key.
func (s *State) Cooldown(key string) (time.Time, bool) {
	t, ok := s.Cooldowns[key]
	return t, ok
}

// Touch records a publication against the purpose key.
func (s *State) Touch(key string, at time.Time) {
	if s.Cooldowns == nil {
		s.Cooldowns = make(map[string]time.Time)
	}
	s.Cooldowns[key] = at
}

func pushBounded(list []string, value string) []string {
	out := make([]string, 0, recentLimit)
	out = append(out, value)
	for _, v := range list {
		if len(out) == recentLimit {
			break
		}
		out = append(out, v)
	}
	return out
}
