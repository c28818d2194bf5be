package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soverby/diceforge/internal/game/dice"
	"github.com/soverby/diceforge/internal/game/player"
)

func testSet(t *testing.T) *dice.Set {
	t.Helper()
	faces := []dice.Face{
		{Kind: dice.FaceAttack, Value: 4},
		{Kind: dice.FaceAttack, Value: 5},
		{Kind: dice.FaceDefense, Value: 3},
		{Kind: dice.FaceSpecial, Symbol: "frost"},
	}
	mk := func() *dice.Die {
		d, err := dice.NewDie(faces)
		require.NoError(t, err)
		return d
	}
	return dice.NewSet(mk(), mk(), mk())
}

// TestNew_InitialState verifies a fresh player carries full HP, the
// default crit multiplier, and a zeroed class counter.
func TestNew_InitialState(t *testing.T) {
	p := player.New(player.FrostWeaver, testSet(t), 100, 1)

	assert.Equal(t, 100, p.CurrentHP)
	assert.Equal(t, 100, p.MaxHP)
	assert.Equal(t, player.DefaultCritMultiplier, p.CritMultiplier)
	assert.Equal(t, 1, p.RerollAllowance)
	assert.Zero(t, p.Gold)
	assert.Empty(t, p.Items)
}

// TestCounters verifies counter bookkeeping: add, read, reset.
func TestCounters(t *testing.T) {
	p := player.New(player.BladeDancer, testSet(t), 100, 1)

	assert.Zero(t, p.Counter(player.CounterMomentum))
	p.AddCounter(player.CounterMomentum, 3)
	p.AddCounter(player.CounterMomentum, 2)
	assert.Equal(t, 5, p.Counter(player.CounterMomentum))

	p.ResetCounter(player.CounterMomentum)
	assert.Zero(t, p.Counter(player.CounterMomentum))
}

// TestGold verifies credits, affordable debits, and rejected overdrafts.
func TestGold(t *testing.T) {
	p := player.New(player.Geomancer, testSet(t), 100, 1)

	p.AddGold(30)
	p.AddGold(-5)
	assert.Equal(t, 30, p.Gold, "negative credits are ignored")

	assert.True(t, p.SpendGold(20))
	assert.Equal(t, 10, p.Gold)
	assert.False(t, p.SpendGold(11), "overdraft must be rejected")
	assert.Equal(t, 10, p.Gold)
}

// TestParseClass_RoundTrip verifies every class id parses back to its
// enum value.
func TestParseClass_RoundTrip(t *testing.T) {
	classes := player.Classes()
	require.Len(t, classes, 12)
	for _, c := range classes {
		parsed, err := player.ParseClass(c.ID())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	_, err := player.ParseClass("bard")
	assert.Error(t, err)
}
