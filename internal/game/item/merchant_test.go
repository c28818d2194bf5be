package item_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soverby/diceforge/internal/game/actor"
	"github.com/soverby/diceforge/internal/game/dice"
	"github.com/soverby/diceforge/internal/game/item"
	"github.com/soverby/diceforge/internal/game/player"
)

func testPlayer(t *testing.T) *player.Player {
	t.Helper()
	faces := []dice.Face{
		{Kind: dice.FaceAttack, Value: 4},
		{Kind: dice.FaceAttack, Value: 5},
		{Kind: dice.FaceDefense, Value: 3},
		{Kind: dice.FaceCrit},
	}
	mk := func() *dice.Die {
		d, err := dice.NewDie(faces)
		require.NoError(t, err)
		return d
	}
	return player.New(player.Geomancer, dice.NewSet(mk(), mk(), mk()), 100, 1)
}

func testCatalog(t *testing.T, n int) *item.Catalog {
	t.Helper()
	rarities := []string{item.RarityCommon, item.RarityRare, item.RarityEpic, item.RarityLegendary}
	var defs []*item.Def
	for i := 0; i < n; i++ {
		defs = append(defs, &item.Def{
			ID:     fmt.Sprintf("item-%d", i),
			Name:   fmt.Sprintf("Item %d", i),
			Cost:   10 + i,
			Rarity: rarities[i%len(rarities)],
			Effect: item.EffectSpec{AttackBonus: 1},
		})
	}
	cat, err := item.NewCatalog(defs)
	require.NoError(t, err)
	return cat
}

// TestVariantForEncounter_Cadence verifies the 6/9/12 moduli with the
// rarest cadence taking precedence on overlap.
func TestVariantForEncounter_Cadence(t *testing.T) {
	assert.Equal(t, item.VariantNormal, item.VariantForEncounter(1))
	assert.Equal(t, item.VariantNormal, item.VariantForEncounter(5))
	assert.Equal(t, item.VariantDiscount, item.VariantForEncounter(6))
	assert.Equal(t, item.VariantBlackMarket, item.VariantForEncounter(9))
	assert.Equal(t, item.VariantMysterious, item.VariantForEncounter(12),
		"12 outranks its divisor 6")
	assert.Equal(t, item.VariantBlackMarket, item.VariantForEncounter(18),
		"18 is divisible by 9 but not 12")
	assert.Equal(t, item.VariantBlackMarket, item.VariantForEncounter(27))
	assert.Equal(t, item.VariantMysterious, item.VariantForEncounter(36),
		"36 is divisible by 9 and 12; 12 wins")
	assert.Equal(t, item.VariantDiscount, item.VariantForEncounter(30))
}

// TestNewMerchant_StocksDistinctItems verifies inventory sizes per variant
// and that no slot repeats an item.
func TestNewMerchant_StocksDistinctItems(t *testing.T) {
	cat := testCatalog(t, 12)
	for variant, want := range map[item.Variant]int{
		item.VariantNormal:      4,
		item.VariantDiscount:    4,
		item.VariantBlackMarket: 5,
		item.VariantMysterious:  3,
	} {
		m := item.NewMerchant(variant, cat, dice.NewSeededSource(11))
		assert.Len(t, m.Inventory, want, "variant %v", variant)

		seen := map[string]bool{}
		for _, d := range m.Inventory {
			assert.False(t, seen[d.ID], "duplicate %s in inventory", d.ID)
			seen[d.ID] = true
		}
	}
}

// TestNewMerchant_SmallCatalog verifies stocking caps at the catalog size.
func TestNewMerchant_SmallCatalog(t *testing.T) {
	cat := testCatalog(t, 2)
	m := item.NewMerchant(item.VariantBlackMarket, cat, dice.NewSeededSource(5))
	assert.Len(t, m.Inventory, 2)
}

// TestPrice_ModifiersAndFloor verifies stall modifier and player discount
// multiply into a floored integer price.
func TestPrice_ModifiersAndFloor(t *testing.T) {
	cat := testCatalog(t, 8)
	p := testPlayer(t)

	normal := item.NewMerchant(item.VariantNormal, cat, dice.NewSeededSource(1))
	base := normal.Inventory[0].Cost
	assert.Equal(t, base, normal.Price(0, p))

	discount := item.NewMerchant(item.VariantDiscount, cat, dice.NewSeededSource(1))
	cost := discount.Inventory[0].Cost
	assert.Equal(t, int(float64(cost)*0.7), discount.Price(0, p))

	p.AddEffect(actor.NewDiscount("Merchant's Seal", 0.8))
	assert.Equal(t, int(float64(cost)*0.7*0.8), discount.Price(0, p))
}

// TestPurchase_Lifecycle verifies affordability checks, single-sale slots,
// and the applied item mutating the player.
func TestPurchase_Lifecycle(t *testing.T) {
	cat := testCatalog(t, 8)
	m := item.NewMerchant(item.VariantNormal, cat, dice.NewSeededSource(9))
	p := testPlayer(t)

	_, err := m.Purchase(0, p)
	require.Error(t, err, "a pauper cannot buy")

	price := m.Price(0, p)
	p.AddGold(price + 5)
	msg, err := m.Purchase(0, p)
	require.NoError(t, err)
	assert.Contains(t, msg, m.Inventory[0].Name)
	assert.Equal(t, 5, p.Gold)
	assert.Equal(t, 1, p.BaseAttackBonus, "the item's effect must apply")
	assert.Len(t, p.Items, 1)
	assert.True(t, m.Sold(0))

	_, err = m.Purchase(0, p)
	assert.Error(t, err, "a slot sells exactly once")

	_, err = m.Purchase(99, p)
	assert.Error(t, err, "out-of-range slots are rejected")
}
