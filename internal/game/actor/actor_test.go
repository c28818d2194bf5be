package actor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/soverby/diceforge/internal/game/actor"
)

// TestTakeDamage_Bounds verifies damage floors HP at zero and negative
// amounts are ignored.
func TestTakeDamage_Bounds(t *testing.T) {
	a := actor.New("target", 50)

	assert.Equal(t, 0, a.TakeDamage(-10), "negative damage must apply nothing")
	assert.Equal(t, 50, a.CurrentHP)

	assert.Equal(t, 30, a.TakeDamage(30))
	assert.Equal(t, 20, a.CurrentHP)

	assert.Equal(t, 20, a.TakeDamage(100), "overkill applies only the remaining HP")
	assert.Equal(t, 0, a.CurrentHP)
	assert.False(t, a.IsAlive())
}

// TestHeal_CapsAtMax verifies healing never exceeds MaxHP and reports the
// applied amount.
func TestHeal_CapsAtMax(t *testing.T) {
	a := actor.New("target", 50)
	a.TakeDamage(10)

	assert.Equal(t, 10, a.Heal(25), "healing past max applies only the missing HP")
	assert.Equal(t, 50, a.CurrentHP)
	assert.Equal(t, 0, a.Heal(5), "healing at full applies nothing")
}

// TestHP_Property verifies CurrentHP stays within [0, MaxHP] under any
// interleaving of damage and healing.
func TestHP_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := actor.New("subject", rapid.IntRange(1, 500).Draw(rt, "maxHP"))
		ops := rapid.SliceOfN(rapid.IntRange(-200, 200), 0, 50).Draw(rt, "ops")

		for _, op := range ops {
			if op >= 0 {
				a.TakeDamage(op)
			} else {
				a.Heal(-op)
			}
			assert.GreaterOrEqual(rt, a.CurrentHP, 0)
			assert.LessOrEqual(rt, a.CurrentHP, a.MaxHP)
		}
	})
}

// TestRemoveEffect_RemovesAllByName verifies removal drops every effect
// sharing the name and preserves the order of the rest.
func TestRemoveEffect_RemovesAllByName(t *testing.T) {
	a := actor.New("subject", 50)
	a.AddEffect(actor.NewBurn("Burn", 3, 2))
	a.AddEffect(actor.NewRegen("Regen", 2, 3))
	a.AddEffect(actor.NewBurn("Burn", 5, 1))

	a.RemoveEffect("Burn")
	require.Len(t, a.Effects, 1)
	assert.Equal(t, "Regen", a.Effects[0].Name)
	assert.False(t, a.HasEffect("Burn"))
}

// TestTickEffects_OrderAndExpiry verifies ticks apply magnitudes in
// insertion order, decrement durations, and drop expired effects.
func TestTickEffects_OrderAndExpiry(t *testing.T) {
	a := actor.New("subject", 50)
	a.AddEffect(actor.NewBurn("Burn", 4, 1))
	a.AddEffect(actor.NewRegen("Regen", 2, 2))

	events := a.TickEffects()
	require.Len(t, events, 2)
	assert.Equal(t, "Burn", events[0].Name)
	assert.Equal(t, 4, events[0].Damage)
	assert.True(t, events[0].Expired)
	assert.Equal(t, "Regen", events[1].Name)
	assert.Equal(t, 2, events[1].Heal)
	assert.False(t, events[1].Expired)

	assert.Equal(t, 48, a.CurrentHP, "burn 4 then regen 2 from full caps at 48")
	require.Len(t, a.Effects, 1)
	assert.Equal(t, "Regen", a.Effects[0].Name)
	assert.Equal(t, 1, a.Effects[0].Duration)
}

// TestTickEffects_PermanentNeverExpires verifies duration -1 effects
// survive any number of ticks.
func TestTickEffects_PermanentNeverExpires(t *testing.T) {
	a := actor.New("subject", 50)
	a.AddEffect(actor.NewRegen("Troll Blood", 1, actor.PermanentDuration))

	for i := 0; i < 25; i++ {
		a.TickEffects()
	}
	assert.True(t, a.HasEffect("Troll Blood"))
	assert.Equal(t, actor.PermanentDuration, a.FindEffect("Troll Blood").Duration)
}

// TestStatAggregation verifies bonus getters combine base values with
// every active StatMod.
func TestStatAggregation(t *testing.T) {
	a := actor.New("subject", 50)
	a.BaseAttackBonus = 2
	a.BaseDefenseBonus = 1
	a.AddEffect(actor.NewStatMod("Haste", 10, 10, 2))
	a.AddEffect(actor.NewStatMod("Spirit Guardian", 8, 15, 2))

	assert.Equal(t, 20, a.AttackBonus())
	assert.Equal(t, 26, a.DefenseBonus())
}

// TestAttackReduction_TakesMax verifies overlapping Slow effects use the
// strongest reduction, capped at 1.
func TestAttackReduction_TakesMax(t *testing.T) {
	a := actor.New("subject", 50)
	assert.Zero(t, a.AttackReduction())

	a.AddEffect(actor.NewSlow("Chill", 0.25, 2))
	a.AddEffect(actor.NewSlow("Frozen", 0.5, 2))
	assert.Equal(t, 0.5, a.AttackReduction())

	a.AddEffect(actor.NewSlow("Stasis", 1.8, 1))
	assert.Equal(t, 1.0, a.AttackReduction(), "reduction must cap at 1")
}

// TestBlockAndAbsorb verifies flat block sums across shields and the
// absorb getter returns the first non-empty pool.
func TestBlockAndAbsorb(t *testing.T) {
	a := actor.New("subject", 50)
	a.AddEffect(actor.NewShield("Buckler", 3))
	a.AddEffect(actor.NewShield("Shield of Faith", 5))
	assert.Equal(t, 8, a.FlatBlock())

	assert.Nil(t, a.AbsorbEffect())
	a.AddEffect(actor.NewAbsorb("Divine Shield", 30))
	require.NotNil(t, a.AbsorbEffect())
	assert.Equal(t, 30, a.AbsorbEffect().BlockAmount)
}

// TestMultiplierAggregation verifies gold and discount multipliers compose
// multiplicatively and thorns fractions add.
func TestMultiplierAggregation(t *testing.T) {
	a := actor.New("subject", 50)
	assert.Equal(t, 1.0, a.GoldMultiplier())
	assert.Equal(t, 1.0, a.DiscountMultiplier())

	a.AddEffect(actor.NewGoldMagnet("Seal", 1.5))
	a.AddEffect(actor.NewGoldMagnet("Idol", 2))
	assert.InDelta(t, 3.0, a.GoldMultiplier(), 1e-9)

	a.AddEffect(actor.NewDiscount("Seal", 0.8))
	assert.InDelta(t, 0.8, a.DiscountMultiplier(), 1e-9)

	a.AddEffect(actor.NewThorns("Mail", 0.3))
	a.AddEffect(actor.NewThorns("Barbs", 0.2))
	assert.InDelta(t, 0.5, a.ThornsFraction(), 1e-9)
}

// TestDodgeChance_TakesMax verifies overlapping dodge sources use the best
// single chance rather than stacking.
func TestDodgeChance_TakesMax(t *testing.T) {
	a := actor.New("subject", 50)
	a.AddEffect(actor.NewDodge("Cloak", 0.2))
	a.AddEffect(actor.NewDodge("Boots", 0.15))
	assert.Equal(t, 0.2, a.DodgeChance())
}
