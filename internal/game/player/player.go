// Package player provides the player aggregate: class identity, dice set,
// gold, crit stats, and the per-class special counters.
package player

import (
	"fmt"

	"github.com/soverby/diceforge/internal/game/actor"
	"github.com/soverby/diceforge/internal/game/dice"
)

// Class is the enumerated player class tag. Ability resolution switches on
// this tag, so a missing class is a compile-time-visible gap rather than a
// failed map lookup.
type Class int

const (
	BladeDancer Class = iota
	Geomancer
	ShadowPriest
	Pyromantic
	FrostWeaver
	StormCaller
	NatureShaman
	BloodKnight
	HolyPaladin
	ChaosMage
	TimeWeaver
	SpiritSummoner
)

// classIDs maps each class to its catalog identifier.
var classIDs = map[Class]string{
	BladeDancer:    "blade-dancer",
	Geomancer:      "geomancer",
	ShadowPriest:   "shadow-priest",
	Pyromantic:     "pyromantic",
	FrostWeaver:    "frost-weaver",
	StormCaller:    "storm-caller",
	NatureShaman:   "nature-shaman",
	BloodKnight:    "blood-knight",
	HolyPaladin:    "holy-paladin",
	ChaosMage:      "chaos-mage",
	TimeWeaver:     "time-weaver",
	SpiritSummoner: "spirit-summoner",
}

// classNames maps each class to its display name.
var classNames = map[Class]string{
	BladeDancer:    "Blade Dancer",
	Geomancer:      "Geomancer",
	ShadowPriest:   "Shadow Priest",
	Pyromantic:     "Pyromantic",
	FrostWeaver:    "Frost Weaver",
	StormCaller:    "Storm Caller",
	NatureShaman:   "Nature Shaman",
	BloodKnight:    "Blood Knight",
	HolyPaladin:    "Holy Paladin",
	ChaosMage:      "Chaos Mage",
	TimeWeaver:     "Time Weaver",
	SpiritSummoner: "Spirit Summoner",
}

// ID returns the catalog identifier, e.g. "frost-weaver".
func (c Class) ID() string { return classIDs[c] }

// String returns the display name, e.g. "Frost Weaver".
func (c Class) String() string { return classNames[c] }

// ParseClass converts a catalog identifier to a Class.
//
// Postcondition: Returns a valid Class, or an error for unrecognised input.
func ParseClass(id string) (Class, error) {
	for c, cid := range classIDs {
		if cid == id {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown class %q", id)
}

// Classes returns all playable classes in declaration order.
func Classes() []Class {
	return []Class{
		BladeDancer, Geomancer, ShadowPriest, Pyromantic, FrostWeaver,
		StormCaller, NatureShaman, BloodKnight, HolyPaladin, ChaosMage,
		TimeWeaver, SpiritSummoner,
	}
}

// Counter names for the classes that store power between turns.
const (
	CounterMomentum = "momentum"
	CounterDarkness = "darkness"
	CounterHoly     = "holy"
	CounterTime     = "time"
	CounterSpirit   = "spirit"
)

// DefaultCritMultiplier is the crit damage multiplier before item bonuses.
const DefaultCritMultiplier = 2.0

// Player is a combat actor plus run-scoped progression state.
type Player struct {
	actor.Actor

	Class   Class
	Gold    int
	DiceSet *dice.Set

	// Counters holds per-class stored power (momentum, darkness, ...).
	Counters map[string]int

	// CritChance is in percentage points; CritMultiplier scales a critical
	// hit's attack value.
	CritChance     float64
	CritMultiplier float64

	// RerollAllowance and RerollsUsed bound free rerolls within one round.
	RerollAllowance int
	RerollsUsed     int

	// Items lists the names of items applied this run, in purchase order.
	Items []string
}

// New creates a Player of the given class at full health with its class
// counters initialised to zero.
//
// Precondition: set must be non-nil; maxHP >= 1.
func New(class Class, set *dice.Set, maxHP, rerollAllowance int) *Player {
	counters := make(map[string]int)
	switch class {
	case BladeDancer:
		counters[CounterMomentum] = 0
	case ShadowPriest:
		counters[CounterDarkness] = 0
	case HolyPaladin:
		counters[CounterHoly] = 0
	case TimeWeaver:
		counters[CounterTime] = 0
	case SpiritSummoner:
		counters[CounterSpirit] = 0
	}
	return &Player{
		Actor:           actor.New(class.String(), maxHP),
		Class:           class,
		DiceSet:         set,
		Counters:        counters,
		CritMultiplier:  DefaultCritMultiplier,
		RerollAllowance: rerollAllowance,
	}
}

// AddGold credits amount to the player's purse. Negative amounts are ignored.
//
// Postcondition: Gold >= 0.
func (p *Player) AddGold(amount int) {
	if amount > 0 {
		p.Gold += amount
	}
}

// SpendGold debits cost if affordable.
//
// Postcondition: Returns true and reduces Gold iff Gold >= cost; Gold >= 0.
func (p *Player) SpendGold(cost int) bool {
	if cost < 0 || cost > p.Gold {
		return false
	}
	p.Gold -= cost
	return true
}

// Counter returns the named counter's value, or 0 when absent.
func (p *Player) Counter(name string) int { return p.Counters[name] }

// AddCounter adds delta to the named counter.
func (p *Player) AddCounter(name string, delta int) {
	p.Counters[name] += delta
}

// ResetCounter zeroes the named counter.
func (p *Player) ResetCounter(name string) {
	p.Counters[name] = 0
}
