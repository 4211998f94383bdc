package cooldown

import (
	"testing"
	"time"

	"github.com/Migueldelg/RadarOfertas/internal/catalog"
	"github.com/Migueldelg/RadarOfertas/internal/history"
)

func TestCategoryRemainingWeekly(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	gate := New(nil, 0)
	cat := catalog.Category{Name: "Chupetes", WeeklyLimit: true}

	state := history.NewState()
	state.Touch("Chupetes", now.Add(-2*24*time.Hour))

	left, blocked := gate.CategoryRemaining(state, cat, now)
	if !blocked {
		t.Fatalf("category published 2d ago must stay blocked for a week")
	}
	if left != 5*24*time.Hour {
		t.Fatalf("remaining = %v, want 120h", left)
	}

	state.Touch("Chupetes", now.Add(-8*24*time.Hour))
	if _, blocked := gate.CategoryRemaining(state, cat, now); blocked {
		t.Fatalf("category published 8d ago must be eligible again")
	}
}

func TestCategoryRemainingIgnoresUnlimitedCategories(t *testing.T) {
	t.Parallel()

	now := time.Now()
	gate := New(nil, 0)
	cat := catalog.Category{Name: "Biberones"}

	state := history.NewState()
	state.Touch("Biberones", now.Add(-time.Hour))

	if _, blocked := gate.CategoryRemaining(state, cat, now); blocked {
		t.Fatalf("categories without a weekly limit never block on their own key")
	}
}

func TestCategoryRemainingClassCooldown(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	gate := New(map[string]time.Duration{"higiene": 6 * time.Hour}, 0)
	cat := catalog.Category{Name: "Toallitas", Class: "higiene"}

	state := history.NewState()
	state.Touch(history.ClassKey("higiene"), now.Add(-2*time.Hour))

	left, blocked := gate.CategoryRemaining(state, cat, now)
	if !blocked || left != 4*time.Hour {
		t.Fatalf("class cooldown: blocked=%v left=%v, want true 4h", blocked, left)
	}

	other := catalog.Category{Name: "Tronas", Class: "mobiliario"}
	if _, blocked := gate.CategoryRemaining(state, other, now); blocked {
		t.Fatalf("cooldown of one class must not block another class")
	}
}

func TestGlobalRemaining(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	gate := New(nil, 3*time.Hour)

	state := history.NewState()
	if _, blocked := gate.GlobalRemaining(state, now); blocked {
		t.Fatalf("fresh state must not be globally blocked")
	}

	state.Touch(history.GlobalKey, now.Add(-time.Hour))
	left, blocked := gate.GlobalRemaining(state, now)
	if !blocked || left != 2*time.Hour {
		t.Fatalf("global cooldown: blocked=%v left=%v, want true 2h", blocked, left)
	}
}

func TestZeroCooldownDisablesRule(t *testing.T) {
	t.Parallel()

	now := time.Now()
	gate := Gate{}

	state := history.NewState()
	state.Touch(history.GlobalKey, now)
	state.Touch("Chupetes", now)

	if _, blocked := gate.GlobalRemaining(state, now); blocked {
		t.Fatalf("zero global cooldown must disable the rule")
	}
	cat := catalog.Category{Name: "Chupetes", WeeklyLimit: true}
	if _, blocked := gate.CategoryRemaining(state, cat, now); blocked {
		t.Fatalf("zero weekly cooldown must disable the rule")
	}
}
