package actor

// Actor is the shared mutable state of a combat participant.
//
// Invariant: 0 <= CurrentHP <= MaxHP at all times.
type Actor struct {
	Name      string
	CurrentHP int
	MaxHP     int

	// BaseAttackBonus and BaseDefenseBonus are flat bonuses independent of
	// active effects (items mutate these for the rest of the run).
	BaseAttackBonus  int
	BaseDefenseBonus int

	// Effects is the insertion-ordered list of active status effects.
	Effects []*Effect
}

// New creates an Actor at full health.
//
// Precondition: maxHP >= 1.
func New(name string, maxHP int) Actor {
	return Actor{Name: name, CurrentHP: maxHP, MaxHP: maxHP}
}

// IsAlive reports whether the actor has hit points remaining.
func (a *Actor) IsAlive() bool { return a.CurrentHP > 0 }

// HPFraction returns CurrentHP/MaxHP in [0, 1].
func (a *Actor) HPFraction() float64 {
	if a.MaxHP <= 0 {
		return 0
	}
	return float64(a.CurrentHP) / float64(a.MaxHP)
}

// TakeDamage subtracts amount from CurrentHP, flooring at zero. Negative
// amounts are clamped to zero, so damage can never heal.
//
// Postcondition: CurrentHP >= 0; returns the damage actually applied.
func (a *Actor) TakeDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	applied := amount
	if applied > a.CurrentHP {
		applied = a.CurrentHP
	}
	a.CurrentHP -= applied
	return applied
}

// Heal adds amount to CurrentHP, capped at MaxHP. Negative amounts are
// clamped to zero.
//
// Postcondition: CurrentHP <= MaxHP; returns the amount actually healed.
func (a *Actor) Heal(amount int) int {
	if amount < 0 {
		amount = 0
	}
	healed := amount
	if a.CurrentHP+healed > a.MaxHP {
		healed = a.MaxHP - a.CurrentHP
	}
	a.CurrentHP += healed
	return healed
}

// AddEffect appends e to the active effect list.
//
// Precondition: e must not be nil.
func (a *Actor) AddEffect(e *Effect) {
	a.Effects = append(a.Effects, e)
}

// RemoveEffect removes ALL entries whose Name matches name, preserving the
// order of the remaining effects.
//
// Postcondition: HasEffect(name) is false.
func (a *Actor) RemoveEffect(name string) {
	kept := a.Effects[:0]
	for _, e := range a.Effects {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	a.Effects = kept
}

// HasEffect reports whether any active effect has the given name.
func (a *Actor) HasEffect(name string) bool {
	return a.FindEffect(name) != nil
}

// FindEffect returns the first active effect with the given name, or nil.
func (a *Actor) FindEffect(name string) *Effect {
	for _, e := range a.Effects {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// TickEvent records what one effect did during a tick pass.
type TickEvent struct {
	Name    string
	Damage  int
	Heal    int
	Expired bool
}

// TickEffects applies one resolution pass over the active effects, in
// insertion order: each effect's per-tick damage and heal are applied first,
// then finite durations are decremented and expired effects dropped.
//
// Postcondition: CurrentHP stays within [0, MaxHP]; expired effects are
// removed; returned events preserve effect order.
func (a *Actor) TickEffects() []TickEvent {
	var events []TickEvent
	kept := a.Effects[:0]
	for _, e := range a.Effects {
		ev := TickEvent{Name: e.Name}
		switch e.Kind {
		case EffectBurn, EffectPoison:
			ev.Damage = a.TakeDamage(e.DamagePerTick)
		case EffectRegen:
			ev.Heal = a.Heal(e.HealPerTick)
		case EffectStatMod, EffectShield, EffectAbsorb, EffectDodge,
			EffectSlow, EffectGoldMagnet, EffectDiscount, EffectThorns:
			// no per-tick magnitude
		}
		if !e.Permanent() {
			e.Duration--
			if e.Duration <= 0 {
				ev.Expired = true
			}
		}
		if !ev.Expired {
			kept = append(kept, e)
		}
		events = append(events, ev)
	}
	a.Effects = kept
	return events
}

// AttackBonus returns the base attack bonus plus all StatMod contributions.
func (a *Actor) AttackBonus() int {
	total := a.BaseAttackBonus
	for _, e := range a.Effects {
		if e.Kind == EffectStatMod {
			total += e.AttackBonus
		}
	}
	return total
}

// DefenseBonus returns the base defense bonus plus all StatMod contributions.
func (a *Actor) DefenseBonus() int {
	total := a.BaseDefenseBonus
	for _, e := range a.Effects {
		if e.Kind == EffectStatMod {
			total += e.DefenseBonus
		}
	}
	return total
}

// AttackReduction returns the strongest active Slow fraction, or 0.
//
// Postcondition: Returns a value in [0, 1].
func (a *Actor) AttackReduction() float64 {
	var worst float64
	for _, e := range a.Effects {
		if e.Kind == EffectSlow && e.Fraction > worst {
			worst = e.Fraction
		}
	}
	if worst > 1 {
		worst = 1
	}
	return worst
}

// FlatBlock returns the summed per-hit block from active Shield effects.
func (a *Actor) FlatBlock() int {
	total := 0
	for _, e := range a.Effects {
		if e.Kind == EffectShield {
			total += e.BlockAmount
		}
	}
	return total
}

// AbsorbEffect returns the first active Absorb pool, or nil.
func (a *Actor) AbsorbEffect() *Effect {
	for _, e := range a.Effects {
		if e.Kind == EffectAbsorb && e.BlockAmount > 0 {
			return e
		}
	}
	return nil
}

// DodgeChance returns the highest active dodge chance, or 0.
func (a *Actor) DodgeChance() float64 {
	var best float64
	for _, e := range a.Effects {
		if e.Kind == EffectDodge && e.Fraction > best {
			best = e.Fraction
		}
	}
	return best
}

// GoldMultiplier returns the product of active GoldMagnet multipliers, or 1.
func (a *Actor) GoldMultiplier() float64 {
	mult := 1.0
	for _, e := range a.Effects {
		if e.Kind == EffectGoldMagnet && e.Multiplier > 0 {
			mult *= e.Multiplier
		}
	}
	return mult
}

// DiscountMultiplier returns the product of active Discount multipliers,
// or 1 when none apply.
func (a *Actor) DiscountMultiplier() float64 {
	mult := 1.0
	for _, e := range a.Effects {
		if e.Kind == EffectDiscount && e.Multiplier > 0 {
			mult *= e.Multiplier
		}
	}
	return mult
}

// ThornsFraction returns the summed reflection fraction from Thorns effects.
func (a *Actor) ThornsFraction() float64 {
	var total float64
	for _, e := range a.Effects {
		if e.Kind == EffectThorns {
			total += e.Fraction
		}
	}
	return total
}
