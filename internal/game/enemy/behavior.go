package enemy

import (
	"fmt"
	"math"

	"github.com/soverby/diceforge/internal/game/dice"
)

// ActionType is what an enemy chose to do with its turn.
type ActionType int

const (
	ActionAttack ActionType = iota
	ActionHeal
	ActionDefend
	ActionRevive
)

// String returns a human-readable action label.
func (t ActionType) String() string {
	switch t {
	case ActionAttack:
		return "attack"
	case ActionHeal:
		return "heal"
	case ActionDefend:
		return "defend"
	case ActionRevive:
		return "revive"
	default:
		return "unknown"
	}
}

// Action is one enemy decision: what to do, how hard, and any riders the
// attack carries.
type Action struct {
	Type    ActionType
	Value   int
	Message string

	// Poison and Burn, when > 0, apply a 3-round effect of that per-turn
	// amount to the player on an attack action.
	Poison int
	Burn   int
	// LifeSteal, when > 0, heals the enemy by Value*LifeSteal after an
	// attack action.
	LifeSteal float64
}

// NextAction advances the enemy's decision function by one turn and returns
// what it does. TurnCounter increments by exactly one per call regardless of
// the action chosen. A Slow effect on the enemy (Frozen) multiplies an
// attack's value by (1 - reduction), floored, after the decision function
// returns.
//
// Precondition: src must be non-nil.
func (i *Instance) NextAction(src dice.Source) Action {
	i.TurnCounter++
	act := i.decide(src)
	if act.Type == ActionAttack {
		if red := i.AttackReduction(); red > 0 {
			act.Value = int(math.Floor(float64(act.Value) * (1 - red)))
		}
	}
	return act
}

// decide runs the archetype's decision function for the current counters.
func (i *Instance) decide(src dice.Source) Action {
	b := i.behavior
	switch b.Kind {
	case BehaviorSpike:
		if i.TurnCounter%b.Period == 0 {
			return i.attack(int(math.Floor(float64(i.Attack)*b.Multiplier)), b.Message)
		}
		return i.attack(i.Attack, "")

	case BehaviorCharge:
		i.Charge++
		if i.Charge >= b.Turns {
			i.Charge = 0
			return i.attack(int(math.Floor(float64(i.Attack)*b.Multiplier)), b.Message)
		}
		return Action{
			Type:    ActionDefend,
			Message: fmt.Sprintf("%s gathers power (%d/%d)", i.Name, i.Charge, b.Turns),
		}

	case BehaviorRage:
		if i.HPFraction() < b.HPThreshold {
			return i.attack(i.Attack+b.Bonus, b.Message)
		}
		return i.attack(i.Attack, "")

	case BehaviorMender:
		if i.TurnCounter%b.Period == 0 {
			msg := b.Message
			if msg == "" {
				msg = fmt.Sprintf("%s knits its wounds closed", i.Name)
			}
			return Action{Type: ActionHeal, Value: b.Heal, Message: msg}
		}
		return i.attack(i.Attack, "")

	case BehaviorPhase:
		if i.Phase == 0 && i.HPFraction() < b.HPThreshold {
			i.Phase = 1
			i.Attack = i.BaseAttack + b.AttackBonus
			return i.attack(b.Burst, b.Message)
		}
		return i.attack(i.Attack, "")

	case BehaviorFlat, BehaviorPhoenix:
		return i.attack(i.Attack, "")

	default:
		return i.attack(i.Attack, "")
	}
}

// attack builds an attack action carrying the archetype's payload riders.
func (i *Instance) attack(value int, message string) Action {
	return Action{
		Type:      ActionAttack,
		Value:     value,
		Message:   message,
		Poison:    i.payload.Poison,
		Burn:      i.payload.Burn,
		LifeSteal: i.payload.LifeSteal,
	}
}

// ReviveAction consumes a phoenix's one-time revive: if this enemy is at
// zero HP, has phoenix behavior, and has not revived yet, it returns to half
// its max HP and the revive action is reported. Any other archetype, or a
// spent phoenix, returns nil and stays dead. The revive does not advance
// TurnCounter; only NextAction does.
//
// Postcondition: On a non-nil return, CurrentHP == MaxHP/2 and ReviveUsed is
// true; a second call returns nil.
func (i *Instance) ReviveAction() *Action {
	if i.behavior.Kind != BehaviorPhoenix || i.ReviveUsed || i.IsAlive() {
		return nil
	}
	i.ReviveUsed = true
	i.Heal(i.MaxHP / 2)
	msg := i.behavior.Message
	if msg == "" {
		msg = fmt.Sprintf("%s bursts into flame and rises again!", i.Name)
	}
	return &Action{Type: ActionRevive, Value: i.MaxHP / 2, Message: msg}
}
