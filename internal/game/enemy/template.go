// Package enemy provides enemy archetype templates, live instances, and the
// per-archetype behavior functions that drive enemy turns.
package enemy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category buckets archetypes by encounter weight and gold reward.
type Category int

const (
	Minion Category = iota
	Elite
	Boss
)

// String returns the lowercase catalog identifier for the category.
func (c Category) String() string {
	switch c {
	case Minion:
		return "minion"
	case Elite:
		return "elite"
	case Boss:
		return "boss"
	default:
		return "unknown"
	}
}

// ParseCategory converts a catalog identifier to a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(s) {
	case "minion":
		return Minion, nil
	case "elite":
		return Elite, nil
	case "boss":
		return Boss, nil
	default:
		return 0, fmt.Errorf("unknown enemy category %q", s)
	}
}

// GoldReward returns the base gold awarded for defeating this category,
// before any player multiplier.
func (c Category) GoldReward() int {
	switch c {
	case Minion:
		return 10
	case Elite:
		return 25
	case Boss:
		return 50
	default:
		return 0
	}
}

// Behavior kinds. Each archetype's decision function is one of these,
// parameterised by the BehaviorDef fields it reads.
const (
	BehaviorFlat    = "flat"    // attack every turn, no modifier
	BehaviorSpike   = "spike"   // every Period-th turn, attack is multiplied
	BehaviorCharge  = "charge"  // build for Turns turns, then release multiplied
	BehaviorRage    = "rage"    // attack bonus below an HP fraction
	BehaviorMender  = "mender"  // heals itself every Period-th turn
	BehaviorPhoenix = "phoenix" // flat attacker with a one-time revive at 0 HP
	BehaviorPhase   = "phase"   // boss-only one-way phase 2 with a burst attack
)

// BehaviorDef parameterises an archetype's decision function.
type BehaviorDef struct {
	Kind string `yaml:"kind"`
	// Period applies to spike and mender.
	Period int `yaml:"period"`
	// Multiplier applies to spike and charge.
	Multiplier float64 `yaml:"multiplier"`
	// Turns is the charge build-up length.
	Turns int `yaml:"turns"`
	// HPThreshold applies to rage and phase, as a fraction of max HP.
	HPThreshold float64 `yaml:"hp_threshold"`
	// Bonus is the rage flat attack bonus.
	Bonus int `yaml:"bonus"`
	// Heal is the mender self-heal amount.
	Heal int `yaml:"heal"`
	// Burst is the phase-transition immediate attack value.
	Burst int `yaml:"burst"`
	// AttackBonus is the permanent phase-2 attack increase.
	AttackBonus int `yaml:"attack_bonus"`
	// Message is the flavor line logged when the pattern fires.
	Message string `yaml:"message"`
}

// PayloadDef attaches damage-over-time or life-steal riders to an
// archetype's attack actions.
type PayloadDef struct {
	Poison    int     `yaml:"poison"`
	Burn      int     `yaml:"burn"`
	LifeSteal float64 `yaml:"life_steal"`
}

// Template defines a reusable enemy archetype loaded from YAML.
type Template struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Category    string      `yaml:"category"`
	BaseHP      int         `yaml:"base_hp"`
	BaseAttack  int         `yaml:"base_attack"`
	Defense     int         `yaml:"defense"`
	Behavior    BehaviorDef `yaml:"behavior"`
	Payload     PayloadDef  `yaml:"payload"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff identity, stats, category, and behavior
// parameters are all consistent; returns an error on the first violation.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("enemy template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("enemy template %q: name must not be empty", t.ID)
	}
	cat, err := ParseCategory(t.Category)
	if err != nil {
		return fmt.Errorf("enemy template %q: %w", t.ID, err)
	}
	if t.BaseHP < 1 {
		return fmt.Errorf("enemy template %q: base_hp must be >= 1", t.ID)
	}
	if t.BaseAttack < 0 {
		return fmt.Errorf("enemy template %q: base_attack must be >= 0", t.ID)
	}
	if t.Defense < 0 {
		return fmt.Errorf("enemy template %q: defense must be >= 0", t.ID)
	}
	b := t.Behavior
	switch b.Kind {
	case BehaviorFlat:
	case BehaviorSpike:
		if b.Period < 2 || b.Multiplier <= 1 {
			return fmt.Errorf("enemy template %q: spike needs period >= 2 and multiplier > 1", t.ID)
		}
	case BehaviorCharge:
		if b.Turns < 2 || b.Multiplier <= 1 {
			return fmt.Errorf("enemy template %q: charge needs turns >= 2 and multiplier > 1", t.ID)
		}
	case BehaviorRage:
		if b.HPThreshold <= 0 || b.HPThreshold >= 1 || b.Bonus < 1 {
			return fmt.Errorf("enemy template %q: rage needs hp_threshold in (0,1) and bonus >= 1", t.ID)
		}
	case BehaviorMender:
		if b.Period < 2 || b.Heal < 1 {
			return fmt.Errorf("enemy template %q: mender needs period >= 2 and heal >= 1", t.ID)
		}
	case BehaviorPhoenix:
		if cat != Boss {
			return fmt.Errorf("enemy template %q: phoenix behavior is boss-only", t.ID)
		}
	case BehaviorPhase:
		if cat != Boss {
			return fmt.Errorf("enemy template %q: phase behavior is boss-only", t.ID)
		}
		if b.HPThreshold <= 0 || b.HPThreshold >= 1 || b.Burst < 1 {
			return fmt.Errorf("enemy template %q: phase needs hp_threshold in (0,1) and burst >= 1", t.ID)
		}
	default:
		return fmt.Errorf("enemy template %q: unknown behavior kind %q", t.ID, b.Kind)
	}
	if t.Payload.Poison < 0 || t.Payload.Burn < 0 {
		return fmt.Errorf("enemy template %q: payload amounts must be >= 0", t.ID)
	}
	if t.Payload.LifeSteal < 0 || t.Payload.LifeSteal > 1 {
		return fmt.Errorf("enemy template %q: life_steal must be in [0,1]", t.ID)
	}
	return nil
}

// CategoryValue returns the parsed Category.
//
// Precondition: t must have passed Validate().
func (t *Template) CategoryValue() Category {
	cat, _ := ParseCategory(t.Category)
	return cat
}

// LoadTemplateFromBytes parses a single enemy template from raw YAML bytes.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing enemy template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed
// templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading enemy dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// Registry indexes templates by id and category.
type Registry struct {
	byID       map[string]*Template
	byCategory map[Category][]*Template
}

// NewRegistry builds a Registry from validated templates.
//
// Precondition: every template must have passed Validate().
// Postcondition: Returns an error on duplicate ids.
func NewRegistry(templates []*Template) (*Registry, error) {
	r := &Registry{
		byID:       make(map[string]*Template),
		byCategory: make(map[Category][]*Template),
	}
	for _, t := range templates {
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate enemy template id %q", t.ID)
		}
		r.byID[t.ID] = t
		cat := t.CategoryValue()
		r.byCategory[cat] = append(r.byCategory[cat], t)
	}
	return r, nil
}

// Get returns the template for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Template, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Roster returns the templates registered under the given category.
func (r *Registry) Roster(cat Category) []*Template {
	return r.byCategory[cat]
}
