package history

import (
	"testing"
	"time"
)

func TestPushCategoryBounded(t *testing.T) {
	t.Parallel()

	s := NewState()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		s.PushCategory(name)
	}

	if len(s.RecentCategories) != 4 {
		t.Fatalf("expected 4 recent categories, got %d", len(s.RecentCategories))
	}
	if s.RecentCategories[0] != "e" {
		t.Fatalf("most recent category must come first, got %q", s.RecentCategories[0])
	}
	for _, name := range s.RecentCategories {
		if name == "a" {
			t.Fatalf("oldest category must have been dropped: %v", s.RecentCategories)
		}
	}
}

func TestPushTitleBounded(t *testing.T) {
	t.Parallel()

	s := NewState()
	for _, title := range []string{"t1", "t2", "t3", "t4", "t5"} {
		s.PushTitle(title)
	}

	if len(s.RecentTitles) != 4 {
		t.Fatalf("expected 4 recent titles, got %d", len(s.RecentTitles))
	}
	if s.RecentTitles[0] != "t5" || s.RecentTitles[3] != "t2" {
		t.Fatalf("unexpected title order: %v", s.RecentTitles)
	}
}

func TestMarkPublished(t *testing.T) {
	t.Parallel()

	s := NewState()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	if s.IsPublished("B0TEST") {
		t.Fatalf("fresh state must not report published ASINs")
	}
	s.MarkPublished("B0TEST", now)
	if !s.IsPublished("B0TEST") {
		t.Fatalf("ASIN must be reported after marking")
	}
}

func TestClassKey(t *testing.T) {
	t.Parallel()

	if got := ClassKey("accessory"); got != "accessory-class-last-publish" {
		t.Fatalf("unexpected class key: %q", got)
	}
}
