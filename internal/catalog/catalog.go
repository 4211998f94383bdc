package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	configschema "github.com/Migueldelg/RadarOfertas/schema"
)

// Category is one static search vertical supplied at startup.
type Category struct {
	// Name is the unique key, also used as the weekly cooldown key.
	Name string `json:"name"`
	// Emoji decorates the published message.
	Emoji string `json:"emoji"`
	// Query is the search path fragment, opaque to the selection core.
	Query string `json:"query"`
	// CheckTitles enables near-duplicate-title filtering for the category.
	CheckTitles bool `json:"check_titles,omitempty"`
	// WeeklyLimit restricts the category to one publication per week.
	WeeklyLimit bool `json:"weekly_limit,omitempty"`
	// Class optionally tags the category for class-level cooldowns
	// (for example "accessory" next to a "game" class).
	Class string `json:"class,omitempty"`
}

// Config is the per-deployment selection configuration: the category list
// plus the knobs the orchestrator needs. It replaces what earlier
// deployments kept as module-level globals.
type Config struct {
	Categories          []Category     `json:"categories"`
	PriorityBrands      []string       `json:"priority_brands,omitempty"`
	RepeatExempt        []string       `json:"repeat_exempt,omitempty"`
	ClassCooldownHours  map[string]int `json:"class_cooldown_hours,omitempty"`
	GlobalCooldownHours int            `json:"global_cooldown_hours,omitempty"`
	StopWords           []string       `json:"stop_words,omitempty"`
	VariantVocabulary   []string       `json:"variant_vocabulary,omitempty"`
}

// ClassCooldowns returns the class cooldowns as durations.
func (c *Config) ClassCooldowns() map[string]time.Duration {
	if len(c.ClassCooldownHours) == 0 {
		return nil
	}
	out := make(map[string]time.Duration, len(c.ClassCooldownHours))
	for class, hours := range c.ClassCooldownHours {
		out[class] = time.Duration(hours) * time.Hour
	}
	return out
}

// GlobalCooldown returns the global cooldown, zero when disabled.
func (c *Config) GlobalCooldown() time.Duration {
	return time.Duration(c.GlobalCooldownHours) * time.Hour
}

// Default returns the built-in baby-vertical configuration used when no
// catalog file is supplied.
func Default() *Config {
	return &Config{
		Categories: []Category{
			{Name: "Panales", Emoji: "🧷", Query: "/s?k=pañales+bebe&rh=n%3A1703495031"},
			{Name: "Toallitas", Emoji: "🧻", Query: "/s?k=toallitas+bebe&rh=n%3A1703495031"},
			{Name: "Cremas bebe", Emoji: "🧴", Query: "/s?k=crema+bebe+culete"},
			{Name: "Leche en polvo", Emoji: "🥛", Query: "/s?k=leche+en+polvo+bebe"},
			{Name: "Chupetes", Emoji: "🍼", Query: "/s?k=chupetes+bebe&rh=n%3A1703495031", CheckTitles: true, WeeklyLimit: true},
			{Name: "Biberones", Emoji: "🫗", Query: "/s?k=biberones+bebe&rh=n%3A1703495031"},
			{Name: "Juguetes", Emoji: "🧸", Query: "/s?k=juguetes+bebe&rh=n%3A1703495031", CheckTitles: true},
			{Name: "Baneras", Emoji: "🛁", Query: "/s?k=bañera+bebe&rh=n%3A1703495031"},
			{Name: "Camaras seguridad", Emoji: "📹", Query: "/s?k=camara+vigilancia+bebe", WeeklyLimit: true},
			{Name: "Alimentacion", Emoji: "🥣", Query: "/s?k=potitos+bebe+papilla"},
			{Name: "Tronas", Emoji: "🪑", Query: "/s?k=trona+bebe", WeeklyLimit: true},
			{Name: "Vajilla bebe", Emoji: "🍽️", Query: "/s?k=platos+cubiertos+vasos+bebe", WeeklyLimit: true},
		},
		PriorityBrands: []string{"dodot", "suavinex", "baby sebamed", "mustela", "waterwipes"},
		// Recurring-purchase staples may repeat back to back.
		RepeatExempt: []string{"Panales", "Toallitas"},
	}
}

// Load reads a catalog config file, validating it against the embedded
// schema before decoding.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}

	if err := configschema.ValidateCatalogPayload(raw); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", path, err)
	}

	return &cfg, nil
}
