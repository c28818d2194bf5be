// Package actor provides the shared mutable combat state for players and
// enemies: hit points, timed status effects, and damage/heal primitives.
package actor

// EffectKind is the closed set of status effect variants the engine knows how
// to tick and aggregate. Adding a kind requires extending the switches in
// TickEffects and the bonus aggregators; they are written to be exhaustive.
type EffectKind int

const (
	// EffectBurn deals damage each tick.
	EffectBurn EffectKind = iota
	// EffectPoison deals damage each tick.
	EffectPoison
	// EffectRegen heals each tick.
	EffectRegen
	// EffectStatMod adds flat attack/defense bonuses while active.
	EffectStatMod
	// EffectShield blocks a flat amount from every incoming hit.
	EffectShield
	// EffectAbsorb is a consumable pool that soaks incoming damage.
	EffectAbsorb
	// EffectDodge grants a chance to avoid an incoming hit entirely.
	EffectDodge
	// EffectSlow reduces the bearer's outgoing attack by a fraction.
	EffectSlow
	// EffectGoldMagnet multiplies gold rewards.
	EffectGoldMagnet
	// EffectDiscount multiplies merchant prices in the player's favor.
	EffectDiscount
	// EffectThorns reflects a fraction of damage dealt, reported in the log.
	EffectThorns
)

// PermanentDuration marks an effect that lasts for the rest of the run.
const PermanentDuration = -1

// Effect is one active status entry on an Actor. Name is the identity key
// used by removal and lookup; the list permits duplicates, but at most one
// entry of a given name is semantically "the" active instance.
//
// Duration is a remaining-rounds counter decremented once per tick pass;
// PermanentDuration means the effect never expires on its own.
type Effect struct {
	Name string
	Kind EffectKind

	Duration int

	// DamagePerTick applies for Burn and Poison.
	DamagePerTick int
	// HealPerTick applies for Regen.
	HealPerTick int
	// AttackBonus and DefenseBonus apply for StatMod.
	AttackBonus  int
	DefenseBonus int
	// BlockAmount applies for Shield (per-hit) and Absorb (remaining pool).
	BlockAmount int
	// Fraction applies for Dodge (chance), Slow (attack reduction), and
	// Thorns (reflected share).
	Fraction float64
	// Multiplier applies for GoldMagnet and Discount.
	Multiplier float64
}

// Permanent reports whether the effect lasts for the rest of the run.
func (e *Effect) Permanent() bool { return e.Duration < 0 }

// NewBurn creates a damage-over-time effect.
//
// Precondition: dmgPerTick >= 0.
func NewBurn(name string, dmgPerTick, duration int) *Effect {
	return &Effect{Name: name, Kind: EffectBurn, DamagePerTick: dmgPerTick, Duration: duration}
}

// NewPoison creates a damage-over-time effect.
//
// Precondition: dmgPerTick >= 0.
func NewPoison(name string, dmgPerTick, duration int) *Effect {
	return &Effect{Name: name, Kind: EffectPoison, DamagePerTick: dmgPerTick, Duration: duration}
}

// NewRegen creates a heal-over-time effect.
//
// Precondition: healPerTick >= 0.
func NewRegen(name string, healPerTick, duration int) *Effect {
	return &Effect{Name: name, Kind: EffectRegen, HealPerTick: healPerTick, Duration: duration}
}

// NewStatMod creates a flat attack/defense bonus effect. Use
// PermanentDuration for run-long bonuses such as item effects.
func NewStatMod(name string, attackBonus, defenseBonus, duration int) *Effect {
	return &Effect{Name: name, Kind: EffectStatMod, AttackBonus: attackBonus, DefenseBonus: defenseBonus, Duration: duration}
}

// NewShield creates a permanent flat per-hit block effect.
//
// Precondition: block > 0.
func NewShield(name string, block int) *Effect {
	return &Effect{Name: name, Kind: EffectShield, BlockAmount: block, Duration: PermanentDuration}
}

// NewAbsorb creates a consumable damage-absorb pool. The pool shrinks as it
// soaks damage; the engine removes the effect when the pool empties.
//
// Precondition: pool > 0.
func NewAbsorb(name string, pool int) *Effect {
	return &Effect{Name: name, Kind: EffectAbsorb, BlockAmount: pool, Duration: PermanentDuration}
}

// NewDodge creates a permanent dodge-chance effect.
//
// Precondition: chance in (0, 1].
func NewDodge(name string, chance float64) *Effect {
	return &Effect{Name: name, Kind: EffectDodge, Fraction: chance, Duration: PermanentDuration}
}

// NewSlow creates an outgoing-attack reduction effect (e.g. Frozen).
//
// Precondition: reduction in (0, 1].
func NewSlow(name string, reduction float64, duration int) *Effect {
	return &Effect{Name: name, Kind: EffectSlow, Fraction: reduction, Duration: duration}
}

// NewGoldMagnet creates a permanent gold reward multiplier effect.
//
// Precondition: multiplier >= 1.
func NewGoldMagnet(name string, multiplier float64) *Effect {
	return &Effect{Name: name, Kind: EffectGoldMagnet, Multiplier: multiplier, Duration: PermanentDuration}
}

// NewDiscount creates a permanent merchant price multiplier effect.
//
// Precondition: multiplier in (0, 1].
func NewDiscount(name string, multiplier float64) *Effect {
	return &Effect{Name: name, Kind: EffectDiscount, Multiplier: multiplier, Duration: PermanentDuration}
}

// NewThorns creates a permanent damage-reflection effect. The reflected
// amount is reported in the turn log but not applied as extra damage.
//
// Precondition: fraction in (0, 1].
func NewThorns(name string, fraction float64) *Effect {
	return &Effect{Name: name, Kind: EffectThorns, Fraction: fraction, Duration: PermanentDuration}
}
