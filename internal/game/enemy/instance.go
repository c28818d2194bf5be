package enemy

import (
	"math"

	"github.com/google/uuid"

	"github.com/soverby/diceforge/internal/game/actor"
	"github.com/soverby/diceforge/internal/game/dice"
)

// ScalingPerRound is the per-round growth factor applied to base stats.
const ScalingPerRound = 0.15

// Scale inflates a base stat for the given round.
//
// Postcondition: Returns floor(base * (1 + round*ScalingPerRound)).
func Scale(base, round int) int {
	return int(math.Floor(float64(base) * (1 + float64(round)*ScalingPerRound)))
}

// CategoryForRound selects the enemy category for a round: every 10th round
// is a boss, every 5th an elite, otherwise a minion.
func CategoryForRound(round int) Category {
	switch {
	case round > 0 && round%10 == 0:
		return Boss
	case round > 0 && round%5 == 0:
		return Elite
	default:
		return Minion
	}
}

// Instance is a live enemy scaled to a specific round.
type Instance struct {
	actor.Actor

	// ID uniquely identifies this runtime instance.
	ID string
	// TemplateID is the source archetype's id.
	TemplateID string
	Category   Category

	// Attack is the current attack value; BaseAttack is the scaled value it
	// started the encounter with (phase transitions raise Attack above it).
	Attack     int
	BaseAttack int
	// Defense is subtracted from every incoming hit, floored at zero.
	Defense int

	// TurnCounter increments by exactly one every NextAction call.
	TurnCounter int
	// Charge counts build-up turns for charge archetypes.
	Charge int
	// Phase is 0 until a phase archetype crosses its HP threshold, then 1.
	Phase int
	// ReviveUsed marks that a phoenix has already burned its revive.
	ReviveUsed bool

	// GoldReward is fixed by category at creation, before any multiplier.
	GoldReward int

	behavior BehaviorDef
	payload  PayloadDef
}

// NewInstance creates a live enemy from tmpl with stats scaled to round.
//
// Precondition: tmpl must have passed Validate(); round >= 0 (0 leaves the
// base stats unscaled).
// Postcondition: CurrentHP equals the scaled max HP; GoldReward is set by
// category.
func NewInstance(tmpl *Template, round int) *Instance {
	cat := tmpl.CategoryValue()
	hp := Scale(tmpl.BaseHP, round)
	atk := Scale(tmpl.BaseAttack, round)
	return &Instance{
		Actor:      actor.New(tmpl.Name, hp),
		ID:         uuid.New().String(),
		TemplateID: tmpl.ID,
		Category:   cat,
		Attack:     atk,
		BaseAttack: atk,
		Defense:    tmpl.Defense,
		GoldReward: cat.GoldReward(),
		behavior:   tmpl.Behavior,
		payload:    tmpl.Payload,
	}
}

// SpawnForRound picks an archetype for the round's category uniformly at
// random and instantiates it scaled to round.
//
// Precondition: reg must have at least one template in the round's category;
// src must be non-nil.
func SpawnForRound(reg *Registry, round int, src dice.Source) *Instance {
	roster := reg.Roster(CategoryForRound(round))
	tmpl := roster[src.Intn(len(roster))]
	return NewInstance(tmpl, round)
}

// TakeHit applies raw damage after subtracting this enemy's flat defense,
// floored at zero. Enemy mitigation lives here, in the primitive, unlike the
// player's, which the turn engine computes so shields and dodges can
// intercept first.
//
// Postcondition: Returns the damage actually applied to HP.
func (i *Instance) TakeHit(raw int) int {
	dmg := raw - i.Defense
	if dmg < 0 {
		dmg = 0
	}
	return i.TakeDamage(dmg)
}

// HealthDescription returns a visible health-state string for presentation.
//
// Postcondition: Returns a non-empty string.
func (i *Instance) HealthDescription() string {
	if i.CurrentHP <= 0 {
		return "dead"
	}
	pct := i.HPFraction()
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.85:
		return "barely scratched"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.40:
		return "moderately wounded"
	case pct >= 0.20:
		return "heavily wounded"
	default:
		return "critically wounded"
	}
}
