// Package engine implements the turn-resolution state machine: dice rolling
// and slot assignment, full turn execution against the current enemy,
// merchant interludes, and run-over handling.
package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/soverby/diceforge/internal/game/dice"
	"github.com/soverby/diceforge/internal/game/enemy"
	"github.com/soverby/diceforge/internal/game/item"
	"github.com/soverby/diceforge/internal/game/player"
	"github.com/soverby/diceforge/internal/storage"
)

// State is the run-level game state.
type State int

const (
	StateCombat State = iota
	StateMerchant
	StateGameOver
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateCombat:
		return "combat"
	case StateMerchant:
		return "merchant"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Slot is a dice-assignment bucket. At most one die may sit in the attack
// and defense slots; any number of dice may sit in the special slot.
type Slot int

const (
	SlotAttack Slot = iota
	SlotDefense
	SlotSpecial
)

// String returns the slot's lowercase label.
func (s Slot) String() string {
	switch s {
	case SlotAttack:
		return "attack"
	case SlotDefense:
		return "defense"
	case SlotSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// ParseSlot converts a label to a Slot.
func ParseSlot(s string) (Slot, error) {
	switch s {
	case "attack":
		return SlotAttack, nil
	case "defense":
		return SlotDefense, nil
	case "special":
		return SlotSpecial, nil
	default:
		return 0, fmt.Errorf("unknown slot %q", s)
	}
}

// Result reports one engine operation's outcome. Invalid play (no dice
// assigned, buying a sold item, acting in the wrong state) is a recoverable
// no-op: OK is false, Message says why, and state is untouched.
type Result struct {
	OK      bool
	Message string
	Log     []string
}

// reject builds a failed Result with the given message.
func reject(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// Stats accumulates run statistics.
type Stats struct {
	DamageDealt     int
	DamageTaken     int
	EnemiesDefeated int
	GoldEarned      int
	HighestRound    int
}

// Tuning holds the engine knobs a Session is constructed with.
type Tuning struct {
	PlayerMaxHP     int
	StartingGold    int
	RerollAllowance int
	// MerchantCadence opens a merchant every Nth round.
	MerchantCadence int
	// BestRunLimit is how many runs the best-runs list retains.
	BestRunLimit int
}

// Params wires a Session's collaborators.
type Params struct {
	Tuning  Tuning
	Logger  *zap.Logger
	Source  dice.Source
	Classes map[string]*dice.ClassDef
	Enemies *enemy.Registry
	Items   *item.Catalog
	Runs    storage.Store
}

// Session is one run of the game: a player, the current enemy, the round
// counter, and the assignment slots. All methods are synchronous and must
// be serialized by the caller; a Session is not safe for concurrent use.
type Session struct {
	tuning  Tuning
	log     *zap.Logger
	src     dice.Source
	classes map[string]*dice.ClassDef
	enemies *enemy.Registry
	items   *item.Catalog
	runs    storage.Store

	player *player.Player
	enemy  *enemy.Instance

	round    int
	state    State
	stats    Stats
	merchant *item.Merchant
	// merchantVisits counts merchant encounters for variant cadence.
	merchantVisits int

	attackDieID  string
	defenseDieID string
	specialDice  []string

	// now is swappable for tests.
	now func() time.Time
}

// New creates a Session ready for StartRun.
//
// Precondition: every Params field must be non-nil and Tuning values
// positive where required.
func New(p Params) (*Session, error) {
	if p.Logger == nil || p.Source == nil || p.Runs == nil {
		return nil, fmt.Errorf("engine: logger, source, and run store are required")
	}
	if p.Classes == nil || p.Enemies == nil || p.Items == nil {
		return nil, fmt.Errorf("engine: class, enemy, and item catalogs are required")
	}
	if p.Tuning.PlayerMaxHP < 1 || p.Tuning.MerchantCadence < 1 || p.Tuning.BestRunLimit < 1 {
		return nil, fmt.Errorf("engine: invalid tuning %+v", p.Tuning)
	}
	return &Session{
		tuning:  p.Tuning,
		log:     p.Logger,
		src:     p.Source,
		classes: p.Classes,
		enemies: p.Enemies,
		items:   p.Items,
		runs:    p.Runs,
		now:     time.Now,
	}, nil
}

// StartRun begins a fresh run with the given class. Any previous run state
// is discarded.
//
// Postcondition: On success the session is in combat at round 1 with a
// scaled enemy and an unrolled dice set.
func (s *Session) StartRun(class player.Class) Result {
	def, ok := s.classes[class.ID()]
	if !ok {
		return reject("no dice catalog for class %s", class)
	}
	set, err := def.Build()
	if err != nil {
		return reject("building dice for class %s: %v", class, err)
	}

	s.player = player.New(class, set, s.tuning.PlayerMaxHP, s.tuning.RerollAllowance)
	s.player.Gold = s.tuning.StartingGold
	s.round = 1
	s.state = StateCombat
	s.stats = Stats{HighestRound: 1}
	s.merchant = nil
	s.merchantVisits = 0
	s.clearAssignments()
	s.enemy = enemy.SpawnForRound(s.enemies, s.round, s.src)

	s.log.Info("run started",
		zap.String("class", class.ID()),
		zap.String("enemy", s.enemy.Name),
		zap.Int("round", s.round))
	return Result{OK: true, Message: fmt.Sprintf("A %s steps into the arena against %s", class, s.enemy.Name)}
}

// Reset restarts the run with the same class.
//
// Precondition: StartRun must have been called at least once.
func (s *Session) Reset() Result {
	if s.player == nil {
		return reject("no run to reset; start a run first")
	}
	return s.StartRun(s.player.Class)
}

// RollDice rolls all three dice, clearing any previous assignments. It
// begins a fresh roll cycle but does not touch the reroll count; that
// resets when a turn resolves.
func (s *Session) RollDice() Result {
	if s.player == nil {
		return reject("no active run; start a run first")
	}
	if s.state != StateCombat {
		return reject("can only roll dice in combat (currently %s)", s.state)
	}
	s.clearAssignments()
	s.player.DiceSet.RollAll(s.src)

	var log []string
	for i, d := range s.player.DiceSet.Dice {
		log = append(log, fmt.Sprintf("Die %d shows %s", i+1, d.Current.String()))
	}
	return Result{OK: true, Message: "dice rolled", Log: log}
}

// Reroll rolls a single die again, consuming one of the round's reroll
// allowance. Assigned dice must be unassigned before rerolling.
func (s *Session) Reroll(dieID string) Result {
	if s.player == nil {
		return reject("no active run; start a run first")
	}
	if s.state != StateCombat {
		return reject("can only reroll in combat (currently %s)", s.state)
	}
	die := s.player.DiceSet.Find(dieID)
	if die == nil {
		return reject("no die with id %s in the current set", dieID)
	}
	if !die.Rolled {
		return reject("die has not been rolled yet")
	}
	if s.slotOf(dieID) != nil {
		return reject("unassign the die before rerolling it")
	}
	if s.player.RerollsUsed >= s.player.RerollAllowance {
		return reject("no rerolls left this round")
	}
	s.player.RerollsUsed++
	face := die.Roll(s.src)
	return Result{OK: true, Message: fmt.Sprintf("rerolled: now shows %s", face.String())}
}

// AssignDie places a rolled die into a slot. The attack and defense slots
// hold at most one die each.
func (s *Session) AssignDie(dieID string, slot Slot) Result {
	if s.player == nil {
		return reject("no active run; start a run first")
	}
	if s.state != StateCombat {
		return reject("can only assign dice in combat (currently %s)", s.state)
	}
	die := s.player.DiceSet.Find(dieID)
	if die == nil {
		return reject("no die with id %s in the current set", dieID)
	}
	if !die.Rolled || die.Current == nil {
		return reject("die must be rolled before assigning")
	}
	if cur := s.slotOf(dieID); cur != nil {
		return reject("die is already assigned to the %s slot", *cur)
	}

	switch slot {
	case SlotAttack:
		if s.attackDieID != "" {
			return reject("the attack slot is already occupied")
		}
		s.attackDieID = dieID
	case SlotDefense:
		if s.defenseDieID != "" {
			return reject("the defense slot is already occupied")
		}
		s.defenseDieID = dieID
	case SlotSpecial:
		s.specialDice = append(s.specialDice, dieID)
	default:
		return reject("unknown slot")
	}
	return Result{OK: true, Message: fmt.Sprintf("%s assigned to %s", die.Current.String(), slot)}
}

// UnassignDie removes a die from whichever slot holds it.
func (s *Session) UnassignDie(dieID string) Result {
	if s.player == nil {
		return reject("no active run; start a run first")
	}
	if s.state != StateCombat {
		return reject("can only manage dice in combat (currently %s)", s.state)
	}
	slot := s.slotOf(dieID)
	if slot == nil {
		return reject("die %s is not assigned to any slot", dieID)
	}
	switch *slot {
	case SlotAttack:
		s.attackDieID = ""
	case SlotDefense:
		s.defenseDieID = ""
	case SlotSpecial:
		kept := s.specialDice[:0]
		for _, id := range s.specialDice {
			if id != dieID {
				kept = append(kept, id)
			}
		}
		s.specialDice = kept
	}
	return Result{OK: true, Message: fmt.Sprintf("die removed from the %s slot", *slot)}
}

// slotOf returns the slot currently holding dieID, or nil.
func (s *Session) slotOf(dieID string) *Slot {
	if s.attackDieID == dieID {
		sl := SlotAttack
		return &sl
	}
	if s.defenseDieID == dieID {
		sl := SlotDefense
		return &sl
	}
	for _, id := range s.specialDice {
		if id == dieID {
			sl := SlotSpecial
			return &sl
		}
	}
	return nil
}

// anyAssigned reports whether any slot holds a die.
func (s *Session) anyAssigned() bool {
	return s.attackDieID != "" || s.defenseDieID != "" || len(s.specialDice) > 0
}

// clearAssignments empties all slots and resets the dice set's rolled state.
func (s *Session) clearAssignments() {
	s.attackDieID = ""
	s.defenseDieID = ""
	s.specialDice = nil
	if s.player != nil && s.player.DiceSet != nil {
		s.player.DiceSet.ResetAll()
	}
}
