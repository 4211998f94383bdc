package cooldown

import (
	"time"

	"github.com/Migueldelg/RadarOfertas/internal/catalog"
	"github.com/Migueldelg/RadarOfertas/internal/history"
)

// DefaultWeekly is the per-category cooldown for weekly-limited categories.
const DefaultWeekly = 7 * 24 * time.Hour

// Gate evaluates the three cooldown rules against a history snapshot. Zero
// durations disable the corresponding rule.
type Gate struct {
	// Weekly applies to categories flagged WeeklyLimit.
	Weekly time.Duration
	// Class applies to every category of the keyed class.
	Class map[string]time.Duration
	// Global blocks the whole run regardless of category.
	Global time.Duration
}

// New returns a gate with the standard weekly cooldown and the given class
// and global cooldowns.
func New(class map[string]time.Duration, global time.Duration) Gate {
	return Gate{Weekly: DefaultWeekly, Class: class, Global: global}
}

// GlobalRemaining reports how long the global cooldown still blocks the run.
// A true result short-circuits the whole cycle.
func (g Gate) GlobalRemaining(state *history.State, now time.Time) (time.Duration, bool) {
	return remaining(state, history.GlobalKey, g.Global, now)
}

// CategoryRemaining reports how long the category is still blocked by its
// weekly or class cooldown.
func (g Gate) CategoryRemaining(state *history.State, cat catalog.Category, now time.Time) (time.Duration, bool) {
	if cat.WeeklyLimit {
		if left, blocked := remaining(state, cat.Name, g.Weekly, now); blocked {
			return left, true
		}
	}
	if cat.Class != "" {
		if left, blocked := remaining(state, history.ClassKey(cat.Class), g.Class[cat.Class], now); blocked {
			return left, true
		}
	}
	return 0, false
}

func remaining(state *history.State, key string, cooldown time.Duration, now time.Time) (time.Duration, bool) {
	if cooldown <= 0 {
		return 0, false
	}
	last, ok := state.Cooldown(key)
	if !ok {
		return 0, false
	}
	elapsed := now.Sub(last)
	if elapsed >= cooldown {
		return 0, false
	}
	return cooldown - elapsed, true
}
