package enemy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/soverby/diceforge/internal/game/dice"
	"github.com/soverby/diceforge/internal/game/enemy"
)

// TestScale verifies the per-round stat inflation formula.
func TestScale(t *testing.T) {
	assert.Equal(t, 100, enemy.Scale(100, 0))
	assert.Equal(t, 115, enemy.Scale(100, 1))
	assert.Equal(t, 250, enemy.Scale(100, 10))
	assert.Equal(t, 11, enemy.Scale(10, 1), "fractional growth floors")
}

// TestScale_Monotonic verifies scaling never shrinks a stat as rounds grow.
func TestScale_Monotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.IntRange(1, 200).Draw(rt, "base")
		round := rapid.IntRange(0, 100).Draw(rt, "round")
		assert.GreaterOrEqual(rt, enemy.Scale(base, round+1), enemy.Scale(base, round))
		assert.GreaterOrEqual(rt, enemy.Scale(base, round), base)
	})
}

// TestCategoryForRound verifies the boss/elite/minion cadence.
func TestCategoryForRound(t *testing.T) {
	assert.Equal(t, enemy.Minion, enemy.CategoryForRound(1))
	assert.Equal(t, enemy.Minion, enemy.CategoryForRound(4))
	assert.Equal(t, enemy.Elite, enemy.CategoryForRound(5))
	assert.Equal(t, enemy.Minion, enemy.CategoryForRound(7))
	assert.Equal(t, enemy.Boss, enemy.CategoryForRound(10))
	assert.Equal(t, enemy.Elite, enemy.CategoryForRound(15))
	assert.Equal(t, enemy.Boss, enemy.CategoryForRound(20))
}

// TestNewInstance_ScalesAndRewards verifies instance creation scales HP and
// attack and fixes the gold reward by category.
func TestNewInstance_ScalesAndRewards(t *testing.T) {
	tmpl := mustTemplate(t, `
id: ogre
name: Ogre Brute
category: elite
base_hp: 70
base_attack: 10
defense: 2
behavior:
  kind: charge
  turns: 3
  multiplier: 2.5
`)
	inst := enemy.NewInstance(tmpl, 5)

	assert.Equal(t, enemy.Scale(70, 5), inst.MaxHP)
	assert.Equal(t, inst.MaxHP, inst.CurrentHP)
	assert.Equal(t, enemy.Scale(10, 5), inst.Attack)
	assert.Equal(t, inst.Attack, inst.BaseAttack)
	assert.Equal(t, 2, inst.Defense)
	assert.Equal(t, 25, inst.GoldReward, "elites pay 25 gold")
	assert.NotEmpty(t, inst.ID)
}

// TestTakeHit_DefenseMitigation verifies flat defense subtracts from every
// hit and never heals.
func TestTakeHit_DefenseMitigation(t *testing.T) {
	tmpl := mustTemplate(t, `
id: raider
name: Goblin Raider
category: minion
base_hp: 30
base_attack: 8
defense: 3
behavior:
  kind: flat
`)
	inst := enemy.NewInstance(tmpl, 0)

	assert.Equal(t, 7, inst.TakeHit(10))
	assert.Equal(t, 23, inst.CurrentHP)
	assert.Zero(t, inst.TakeHit(2), "a hit below defense is shrugged off")
	assert.Equal(t, 23, inst.CurrentHP)
}

// TestSpawnForRound verifies the spawner draws from the round's category.
func TestSpawnForRound(t *testing.T) {
	minion := mustTemplate(t, `
id: raider
name: Goblin Raider
category: minion
base_hp: 30
base_attack: 8
behavior:
  kind: flat
`)
	boss := mustTemplate(t, `
id: phoenix
name: Phoenix Lord
category: boss
base_hp: 100
base_attack: 13
behavior:
  kind: phoenix
`)
	reg, err := enemy.NewRegistry([]*enemy.Template{minion, boss})
	require.NoError(t, err)

	src := dice.NewSeededSource(3)
	assert.Equal(t, enemy.Minion, enemy.SpawnForRound(reg, 1, src).Category)
	assert.Equal(t, enemy.Boss, enemy.SpawnForRound(reg, 10, src).Category)
}

// TestHealthDescription_Bands verifies a few representative bands.
func TestHealthDescription_Bands(t *testing.T) {
	tmpl := mustTemplate(t, `
id: raider
name: Goblin Raider
category: minion
base_hp: 100
base_attack: 8
behavior:
  kind: flat
`)
	inst := enemy.NewInstance(tmpl, 0)

	assert.Equal(t, "unharmed", inst.HealthDescription())
	inst.TakeDamage(50)
	assert.Equal(t, "moderately wounded", inst.HealthDescription())
	inst.TakeDamage(45)
	assert.Equal(t, "critically wounded", inst.HealthDescription())
	inst.TakeDamage(5)
	assert.Equal(t, "dead", inst.HealthDescription())
}
