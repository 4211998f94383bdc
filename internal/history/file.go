package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Reserved keys of the history document. Every other top-level key is an
// ASIN mapped to an ISO-8601 publication timestamp.
const (
	keyRecentCategories     = "_recent_categories"
	keyLegacyRecentCategory = "_recent_category"
	keyRecentTitles         = "_recent_titles"
	keyCooldowns            = "_cooldowns"
)

// Store abstracts the persisted decision history. Load never fails: a
// missing or malformed document yields an empty snapshot.
type Store interface {
	Load(now time.Time) *State
	Save(state *State) error
}

// FileStore keeps the history in a single JSON document, rewritten in full
// on every save. Single writer per run; concurrent runs are not supported.
type FileStore struct {
	path   string
	window time.Duration
	logger zerolog.Logger
}

// NewFileStore builds a store over the given path. The window bounds how
// long a published ASIN blocks re-publication (typically 48h or 96h).
func NewFileStore(path string, window time.Duration, logger zerolog.Logger) *FileStore {
	return &FileStore{path: path, window: window, logger: logger}
}

// Load reads and prunes the history document. A missing file means a fresh
// deployment, malformed content is discarded with a warning; neither is an
// error.
func (s *FileStore) Load(now time.Time) *State {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info().Str("path", s.path).Msg("no previous history, starting fresh")
		} else {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("history unreadable, starting fresh")
		}
		return NewState()
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("history document corrupt, starting fresh")
		return NewState()
	}

	state := NewState()

	if rawList, ok := doc[keyRecentCategories]; ok {
		_ = json.Unmarshal(rawList, &state.RecentCategories)
		delete(doc, keyRecentCategories)
	}
	if legacy, ok := doc[keyLegacyRecentCategory]; ok {
		// Pre-list documents stored a single category name.
		if len(state.RecentCategories) == 0 {
			var name string
			if err := json.Unmarshal(legacy, &name); err == nil && name != "" {
				state.RecentCategories = []string{name}
			}
		}
		delete(doc, keyLegacyRecentCategory)
	}
	if rawList, ok := doc[keyRecentTitles]; ok {
		_ = json.Unmarshal(rawList, &state.RecentTitles)
		delete(doc, keyRecentTitles)
	}
	if rawMap, ok := doc[keyCooldowns]; ok {
		var cooldowns map[string]string
		if err := json.Unmarshal(rawMap, &cooldowns); err == nil {
			for key, value := range cooldowns {
				if t, ok := parseTimestamp(value); ok {
					state.Cooldowns[key] = t
				}
			}
		}
		delete(doc, keyCooldowns)
	}

	if len(state.RecentCategories) > recentLimit {
		state.RecentCategories = state.RecentCategories[:recentLimit]
	}
	if len(state.RecentTitles) > recentLimit {
		state.RecentTitles = state.RecentTitles[:recentLimit]
	}

	cutoff := now.Add(-s.window)
	expired := 0
	for asin, rawValue := range doc {
		var value string
		if err := json.Unmarshal(rawValue, &value); err != nil {
			continue
		}
		t, ok := parseTimestamp(value)
		if !ok {
			continue
		}
		if t.After(cutoff) {
			state.Published[asin] = t
		} else {
			expired++
		}
	}

	s.logger.Info().
		Int("in_window", len(state.Published)).
		Int("expired", expired).
		Dur("window", s.window).
		Msg("history loaded")

	return state
}

// Save serializes the snapshot back into one document, replacing the file
// atomically.
func (s *FileStore) Save(state *State) error {
	doc := make(map[string]any, len(state.Published)+4)
	for asin, t := range state.Published {
		doc[asin] = t.Format(time.RFC3339)
	}
	if len(state.RecentCategories) > 0 {
		doc[keyRecentCategories] = state.RecentCategories
	}
	if len(state.RecentTitles) > 0 {
		doc[keyRecentTitles] = state.RecentTitles
	}
	if len(state.Cooldowns) > 0 {
		cooldowns := make(map[string]string, len(state.Cooldowns))
		for key, t := range state.Cooldowns {
			cooldowns[key] = t.Format(time.RFC3339)
		}
		doc[keyCooldowns] = cooldowns
	}

	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode history document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write history document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close history document: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace history document: %w", err)
	}
	return nil
}

// Discard is the dev-mode store: it neither reads nor writes the history
// document, so test publications cannot contaminate production state.
type Discard struct{}

func (Discard) Load(time.Time) *State { return NewState() }
func (Discard) Save(*State) error     { return nil }

// parseTimestamp accepts RFC3339 as written by Save plus the zone-less
// variant older documents carry.
func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
