// Package item provides the purchasable item catalog and the merchant that
// sells from it between combats.
package item

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/soverby/diceforge/internal/game/actor"
	"github.com/soverby/diceforge/internal/game/player"
	"github.com/soverby/diceforge/internal/scripting"
)

// Rarity tiers for catalog items.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// validRarity reports whether r is a recognised rarity tier.
func validRarity(r string) bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// EffectSpec is the declarative effect block of an item definition. Zero
// fields do nothing, so an item states only what it changes.
type EffectSpec struct {
	// Heal is a one-shot immediate heal (consumables).
	Heal int `yaml:"heal"`
	// MaxHP permanently raises max (and current) HP.
	MaxHP int `yaml:"max_hp"`
	// AttackBonus and DefenseBonus permanently raise the base bonuses.
	AttackBonus  int `yaml:"attack_bonus"`
	DefenseBonus int `yaml:"defense_bonus"`
	// CritChance adds percentage points; CritMultiplier adds to the
	// multiplier (e.g. 0.5 turns 2.0x into 2.5x).
	CritChance     float64 `yaml:"crit_chance"`
	CritMultiplier float64 `yaml:"crit_multiplier"`
	// RerollBonus permanently raises the per-round reroll allowance.
	RerollBonus int `yaml:"reroll_bonus"`
	// DodgeChance attaches a permanent dodge effect (0,1].
	DodgeChance float64 `yaml:"dodge_chance"`
	// ShieldBlock attaches a permanent flat per-hit block effect.
	ShieldBlock int `yaml:"shield_block"`
	// Thorns attaches a permanent reflection effect (0,1].
	Thorns float64 `yaml:"thorns"`
	// GoldMultiplier attaches a permanent gold reward multiplier (>1).
	GoldMultiplier float64 `yaml:"gold_multiplier"`
	// PriceDiscount attaches a permanent merchant price multiplier (0,1).
	PriceDiscount float64 `yaml:"price_discount"`
	// RegenPerTurn attaches a permanent heal-over-time effect.
	RegenPerTurn int `yaml:"regen_per_turn"`
}

// Def is one purchasable item definition loaded from YAML.
type Def struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Cost        int        `yaml:"cost"`
	Rarity      string     `yaml:"rarity"`
	Effect      EffectSpec `yaml:"effect"`
	// OnApply is an optional Lua hook run once at purchase time, for items
	// whose effect the declarative block cannot express.
	OnApply string `yaml:"on_apply"`
}

// Validate checks the item definition invariants.
//
// Precondition: d must not be nil.
func (d *Def) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("item: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("item %q: name must not be empty", d.ID)
	}
	if d.Cost < 1 {
		return fmt.Errorf("item %q: cost must be >= 1", d.ID)
	}
	if !validRarity(d.Rarity) {
		return fmt.Errorf("item %q: unknown rarity %q", d.ID, d.Rarity)
	}
	e := d.Effect
	if e.DodgeChance < 0 || e.DodgeChance > 1 {
		return fmt.Errorf("item %q: dodge_chance must be in [0,1]", d.ID)
	}
	if e.Thorns < 0 || e.Thorns > 1 {
		return fmt.Errorf("item %q: thorns must be in [0,1]", d.ID)
	}
	if e.GoldMultiplier < 0 {
		return fmt.Errorf("item %q: gold_multiplier must be >= 0", d.ID)
	}
	if e.PriceDiscount < 0 || e.PriceDiscount > 1 {
		return fmt.Errorf("item %q: price_discount must be in [0,1]", d.ID)
	}
	return nil
}

// Apply mutates the player with this item's effects. The engine calls this
// exactly once, at purchase resolution; permanent pieces attach run-long
// effects named after the item.
//
// Precondition: p must be non-nil; d must have passed Validate().
// Postcondition: Returns a non-nil error only when the Lua hook fails;
// declarative mutations applied before the failure stand.
func (d *Def) Apply(p *player.Player) error {
	e := d.Effect
	if e.MaxHP > 0 {
		p.MaxHP += e.MaxHP
		p.CurrentHP += e.MaxHP
	}
	if e.Heal > 0 {
		p.Heal(e.Heal)
	}
	p.BaseAttackBonus += e.AttackBonus
	p.BaseDefenseBonus += e.DefenseBonus
	p.CritChance += e.CritChance
	p.CritMultiplier += e.CritMultiplier
	p.RerollAllowance += e.RerollBonus
	if e.DodgeChance > 0 {
		p.AddEffect(actor.NewDodge(d.Name, e.DodgeChance))
	}
	if e.ShieldBlock > 0 {
		p.AddEffect(actor.NewShield(d.Name, e.ShieldBlock))
	}
	if e.Thorns > 0 {
		p.AddEffect(actor.NewThorns(d.Name, e.Thorns))
	}
	if e.GoldMultiplier > 1 {
		p.AddEffect(actor.NewGoldMagnet(d.Name, e.GoldMultiplier))
	}
	if e.PriceDiscount > 0 && e.PriceDiscount < 1 {
		p.AddEffect(actor.NewDiscount(d.Name, 1-e.PriceDiscount))
	}
	if e.RegenPerTurn > 0 {
		p.AddEffect(actor.NewRegen(d.Name, e.RegenPerTurn, actor.PermanentDuration))
	}

	if d.OnApply != "" {
		hooks := scripting.PlayerHooks{
			Heal:          p.Heal,
			Damage:        p.TakeDamage,
			AddGold:       p.AddGold,
			AddAttack:     func(n int) { p.BaseAttackBonus += n },
			AddDefense:    func(n int) { p.BaseDefenseBonus += n },
			AddCritChance: func(pts float64) { p.CritChance += pts },
			RaiseMaxHP: func(n int) {
				p.MaxHP += n
				p.CurrentHP += n
			},
			AddCounter: p.AddCounter,
		}
		if err := scripting.RunItemHook(d.OnApply, hooks, 0); err != nil {
			return fmt.Errorf("item %q: %w", d.ID, err)
		}
	}

	p.Items = append(p.Items, d.Name)
	return nil
}

// Catalog indexes item definitions by id and rarity.
type Catalog struct {
	byID     map[string]*Def
	byRarity map[string][]*Def
	ordered  []*Def
}

// NewCatalog builds a Catalog from validated definitions.
//
// Postcondition: Returns an error on duplicate ids.
func NewCatalog(defs []*Def) (*Catalog, error) {
	c := &Catalog{
		byID:     make(map[string]*Def),
		byRarity: make(map[string][]*Def),
	}
	for _, d := range defs {
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %q", d.ID)
		}
		c.byID[d.ID] = d
		c.byRarity[d.Rarity] = append(c.byRarity[d.Rarity], d)
		c.ordered = append(c.ordered, d)
	}
	return c, nil
}

// Get returns the item definition for id, or (nil, false).
func (c *Catalog) Get(id string) (*Def, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// ByRarity returns the definitions registered under the given rarity.
func (c *Catalog) ByRarity(rarity string) []*Def {
	return c.byRarity[rarity]
}

// All returns every definition in load order.
func (c *Catalog) All() []*Def {
	return c.ordered
}

// Len returns the number of definitions in the catalog.
func (c *Catalog) Len() int { return len(c.ordered) }

// LoadCatalog reads all *.yaml files in dir, parses each as a Def, and
// returns a populated Catalog.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Catalog, or an error naming the first
// file that fails to parse or validate.
func LoadCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading item dir %q: %w", dir, err)
	}
	var defs []*Def
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Def
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		defs = append(defs, &def)
	}
	return NewCatalog(defs)
}
