// Package ability implements the per-class passive and special resolution
// for the Diceforge combat engine. Each class's logic inspects the assigned
// special-die faces (and for momentum-style classes, whether an attack was
// made) and produces an Outcome the turn engine folds into its running
// attack/defense totals.
package ability

import (
	"github.com/soverby/diceforge/internal/game/actor"
	"github.com/soverby/diceforge/internal/game/dice"
)

// Context carries the turn values ability logic inspects. AttackValue and
// DefenseValue are the post-bonus totals at the time the context is built.
type Context struct {
	AttackValue  int
	DefenseValue int
	SpecialFaces []dice.Face
	Round        int
}

// SymbolCount returns how many special faces carry the given symbol.
func (c Context) SymbolCount(symbol string) int {
	n := 0
	for _, f := range c.SpecialFaces {
		if f.Kind == dice.FaceSpecial && f.Symbol == symbol {
			n++
		}
	}
	return n
}

// CritFaceCount returns how many special faces are crit markers.
func (c Context) CritFaceCount() int {
	n := 0
	for _, f := range c.SpecialFaces {
		if f.Kind == dice.FaceCrit {
			n++
		}
	}
	return n
}

// Outcome is the sparse result of one passive or special evaluation.
// Class-specific side effects (self-damage, self-heal, counter changes,
// self-applied effects) happen inside the resolver call itself; the fields
// here are the parts the turn engine must fold into its totals.
type Outcome struct {
	// BonusDamage adds to the turn's attack value.
	BonusDamage int
	// SetDamage, when non-nil, overrides the attack value instead of adding.
	SetDamage *int
	// BonusDefense adds to the turn's defense value.
	BonusDefense int
	// GuaranteedCrit forces the crit multiplier regardless of the crit roll.
	GuaranteedCrit bool
	// Success is meaningful for specials only: false means the activation
	// condition was unmet and nothing happened.
	Success bool
	// Message is narration for the turn log; empty means nothing to report.
	Message string
	// EnemyEffect, when non-nil, is applied to the enemy by the engine.
	EnemyEffect *actor.Effect
	// SkipEnemyTurn suppresses the enemy action this turn (Time Weaver).
	SkipEnemyTurn bool
}

func setDamage(v int) *int { return &v }
