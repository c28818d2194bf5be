package item

import (
	"fmt"
	"math"

	"github.com/soverby/diceforge/internal/game/dice"
	"github.com/soverby/diceforge/internal/game/player"
)

// Variant is the merchant flavor for one visit. Variants change inventory
// size, rarity skew, and a stall-wide price modifier.
type Variant int

const (
	VariantNormal Variant = iota
	VariantDiscount
	VariantBlackMarket
	VariantMysterious
)

// String returns a display name for the variant.
func (v Variant) String() string {
	switch v {
	case VariantNormal:
		return "Travelling Merchant"
	case VariantDiscount:
		return "Discount Merchant"
	case VariantBlackMarket:
		return "Black Market Dealer"
	case VariantMysterious:
		return "Mysterious Stranger"
	default:
		return "Merchant"
	}
}

// VariantForEncounter selects the variant from the running visit count.
// The moduli overlap; the rarest cadence wins, so checks run 12, 9, 6 and a
// count divisible by several resolves to the first match.
func VariantForEncounter(count int) Variant {
	switch {
	case count > 0 && count%12 == 0:
		return VariantMysterious
	case count > 0 && count%9 == 0:
		return VariantBlackMarket
	case count > 0 && count%6 == 0:
		return VariantDiscount
	default:
		return VariantNormal
	}
}

// Merchant is one stocked stall. Purchased items become unavailable but stay
// listed so the presentation layer can strike them through.
type Merchant struct {
	Variant   Variant
	Inventory []*Def
	sold      map[int]bool
	// priceMod is the stall-wide multiplier applied before the player's
	// personal discount.
	priceMod float64
}

// rarityWeights is the cumulative draw table per variant: common, rare,
// epic, legendary (weights out of 100).
func rarityWeights(v Variant) [4]int {
	switch v {
	case VariantBlackMarket:
		return [4]int{20, 60, 90, 100}
	case VariantMysterious:
		return [4]int{10, 40, 75, 100}
	default:
		return [4]int{55, 85, 97, 100}
	}
}

// inventorySize returns the number of slots the variant stocks.
func inventorySize(v Variant) int {
	switch v {
	case VariantBlackMarket:
		return 5
	case VariantMysterious:
		return 3
	default:
		return 4
	}
}

// NewMerchant stocks a merchant of the given variant from the catalog.
// Slots are drawn by rarity weight, avoiding duplicates while the catalog
// has enough distinct entries.
//
// Precondition: catalog must be non-empty; src must be non-nil.
// Postcondition: The merchant has at least one inventory item.
func NewMerchant(variant Variant, catalog *Catalog, src dice.Source) *Merchant {
	m := &Merchant{
		Variant:  variant,
		sold:     make(map[int]bool),
		priceMod: 1.0,
	}
	if variant == VariantDiscount {
		m.priceMod = 0.7
	}
	if variant == VariantBlackMarket {
		m.priceMod = 1.2
	}

	size := inventorySize(variant)
	if size > catalog.Len() {
		size = catalog.Len()
	}
	weights := rarityWeights(variant)
	rarities := []string{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

	seen := make(map[string]bool)
	for len(m.Inventory) < size {
		roll := src.Intn(100)
		tier := rarities[0]
		for i, cap := range weights {
			if roll < cap {
				tier = rarities[i]
				break
			}
		}
		pool := catalog.ByRarity(tier)
		if len(pool) == 0 {
			pool = catalog.All()
		}
		pick := pool[src.Intn(len(pool))]
		if seen[pick.ID] {
			// Re-draw from the full catalog when the tier is exhausted.
			remaining := 0
			for _, d := range catalog.All() {
				if !seen[d.ID] {
					remaining++
					pick = d
				}
			}
			if remaining == 0 {
				break
			}
		}
		seen[pick.ID] = true
		m.Inventory = append(m.Inventory, pick)
	}
	return m
}

// Sold reports whether the inventory slot at index has been purchased.
func (m *Merchant) Sold(index int) bool { return m.sold[index] }

// Price returns what the player would pay for the slot at index: item cost
// times the stall modifier times the player's discount, floored to an
// integer.
//
// Precondition: index must be a valid inventory slot.
func (m *Merchant) Price(index int, p *player.Player) int {
	cost := float64(m.Inventory[index].Cost) * m.priceMod * p.DiscountMultiplier()
	return int(math.Floor(cost))
}

// Purchase resolves buying the slot at index: precondition checks, gold
// debit, a single Apply call, and marking the slot sold.
//
// Postcondition: On success the item's Apply has run exactly once and the
// slot is sold; on failure the player and the slot are unchanged (a Lua hook
// failure after the declarative mutations is reported but not rolled back).
func (m *Merchant) Purchase(index int, p *player.Player) (string, error) {
	if index < 0 || index >= len(m.Inventory) {
		return "", fmt.Errorf("no item at slot %d", index)
	}
	if m.sold[index] {
		return "", fmt.Errorf("%s is already sold", m.Inventory[index].Name)
	}
	def := m.Inventory[index]
	price := m.Price(index, p)
	if !p.SpendGold(price) {
		return "", fmt.Errorf("cannot afford %s (%d gold)", def.Name, price)
	}
	m.sold[index] = true
	if err := def.Apply(p); err != nil {
		return "", err
	}
	return fmt.Sprintf("Bought %s for %d gold", def.Name, price), nil
}
