package textnorm

import "testing"

func TestSimilarReflexive(t *testing.T) {
	t.Parallel()

	m := NewMatcher(nil, 0)

	if !m.Similar("Chupetes de silicona Suavinex", "Chupetes de silicona Suavinex") {
		t.Fatalf("a title must be similar to itself")
	}
}

func TestSimilarEmptyNeverMatches(t *testing.T) {
	t.Parallel()

	m := NewMatcher(nil, 0)

	if m.Similar("", "") {
		t.Fatalf("empty titles must not be similar, even to each other")
	}
	if m.Similar("", "Chupetes de silicona") {
		t.Fatalf("empty title must not be similar to anything")
	}
	if m.Similar("Chupetes de silicona", "") {
		t.Fatalf("nothing must be similar to an empty title")
	}
	// A title of pure stop words normalizes to the empty set.
	if m.Similar("de la para", "de la para") {
		t.Fatalf("all-stopword titles must not be similar")
	}
}

func TestSimilarSymmetric(t *testing.T) {
	t.Parallel()

	m := NewMatcher(nil, 0)

	a := "Biberon anticolico Suavinex 270ml"
	b := "Biberon anticolico Philips Avent"
	if m.Similar(a, b) != m.Similar(b, a) {
		t.Fatalf("similarity must be symmetric for %q / %q", a, b)
	}
}

func TestSimilarThreshold(t *testing.T) {
	t.Parallel()

	m := NewMatcher(nil, 0)

	// {chupetes, silicona, nocturnos} vs {chupetes, silicona, diurnos}:
	// 2 shared of 4 unique = 0.5, right at the default threshold.
	if !m.Similar("Chupetes silicona nocturnos", "Chupetes silicona diurnos") {
		t.Fatalf("jaccard 0.5 must count as similar at the default threshold")
	}
	// 1 shared of 5 unique = 0.2.
	if m.Similar("Chupetes silicona nocturnos", "Chupetes fisiologicos latex") {
		t.Fatalf("jaccard 0.2 must not count as similar")
	}
}

func TestSimilarToAny(t *testing.T) {
	t.Parallel()

	m := NewMatcher(nil, 0)

	recent := []string{
		"Trona evolutiva madera natural",
		"Chupetes silicona nocturnos",
	}
	if !m.SimilarToAny("Chupetes silicona diurnos", recent) {
		t.Fatalf("expected a match against the recent titles")
	}
	if m.SimilarToAny("Vigilabebes con camara", recent) {
		t.Fatalf("unexpected match against the recent titles")
	}
	if m.SimilarToAny("Vigilabebes con camara", nil) {
		t.Fatalf("no recent titles must mean no match")
	}
}
