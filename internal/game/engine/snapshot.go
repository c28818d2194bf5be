package engine

// Snapshot is a read-only view of the session for presentation. Taking one
// never mutates state; two consecutive calls return equal values.
type Snapshot struct {
	State State
	Round int
	Stats Stats

	Player   *PlayerView
	Enemy    *EnemyView
	Merchant *MerchantView
}

// PlayerView is the player's presentable state.
type PlayerView struct {
	Class       string
	CurrentHP   int
	MaxHP       int
	Gold        int
	CritChance  float64
	RerollsLeft int
	Effects     []EffectView
	Items       []string
	Counters    map[string]int
	Dice        []DieView
}

// EnemyView is the current enemy's presentable state.
type EnemyView struct {
	Name      string
	Category  string
	CurrentHP int
	MaxHP     int
	Condition string
	Effects   []EffectView
}

// EffectView is one active status effect.
type EffectView struct {
	Name string
	// Duration is -1 for permanent effects.
	Duration int
}

// DieView is one die's rolled face and assignment.
type DieView struct {
	ID     string
	Rolled bool
	Face   string
	// Slot is empty when the die is unassigned.
	Slot string
}

// MerchantView is the open shop's presentable state.
type MerchantView struct {
	Variant string
	Wares   []WareView
}

// WareView is one inventory slot.
type WareView struct {
	Name        string
	Description string
	Rarity      string
	// Price reflects the variant's modifier and the player's discounts.
	Price int
	Sold  bool
}

// Snapshot captures the current session state for display.
//
// Precondition: StartRun must have been called.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State: s.state,
		Round: s.round,
		Stats: s.stats,
	}
	if s.player == nil {
		return snap
	}

	pv := &PlayerView{
		Class:       s.player.Class.String(),
		CurrentHP:   s.player.CurrentHP,
		MaxHP:       s.player.MaxHP,
		Gold:        s.player.Gold,
		CritChance:  s.player.CritChance,
		RerollsLeft: s.player.RerollAllowance - s.player.RerollsUsed,
		Items:       append([]string(nil), s.player.Items...),
		Counters:    make(map[string]int, len(s.player.Counters)),
	}
	for name, v := range s.player.Counters {
		pv.Counters[name] = v
	}
	for _, e := range s.player.Effects {
		pv.Effects = append(pv.Effects, EffectView{Name: e.Name, Duration: e.Duration})
	}
	for _, d := range s.player.DiceSet.Dice {
		dv := DieView{ID: d.ID, Rolled: d.Rolled}
		if d.Current != nil {
			dv.Face = d.Current.String()
		}
		if slot := s.slotOf(d.ID); slot != nil {
			dv.Slot = slot.String()
		}
		pv.Dice = append(pv.Dice, dv)
	}
	snap.Player = pv

	if s.enemy != nil && s.state == StateCombat {
		ev := &EnemyView{
			Name:      s.enemy.Name,
			Category:  s.enemy.Category.String(),
			CurrentHP: s.enemy.CurrentHP,
			MaxHP:     s.enemy.MaxHP,
			Condition: s.enemy.HealthDescription(),
		}
		for _, e := range s.enemy.Effects {
			ev.Effects = append(ev.Effects, EffectView{Name: e.Name, Duration: e.Duration})
		}
		snap.Enemy = ev
	}

	if s.merchant != nil && s.state == StateMerchant {
		mv := &MerchantView{Variant: s.merchant.Variant.String()}
		for i, def := range s.merchant.Inventory {
			mv.Wares = append(mv.Wares, WareView{
				Name:        def.Name,
				Description: def.Description,
				Rarity:      def.Rarity,
				Price:       s.merchant.Price(i, s.player),
				Sold:        s.merchant.Sold(i),
			})
		}
		snap.Merchant = mv
	}
	return snap
}
