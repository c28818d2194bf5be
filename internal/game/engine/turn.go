package engine

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/soverby/diceforge/internal/game/ability"
	"github.com/soverby/diceforge/internal/game/actor"
	"github.com/soverby/diceforge/internal/game/dice"
	"github.com/soverby/diceforge/internal/game/enemy"
	"github.com/soverby/diceforge/internal/game/item"
	"github.com/soverby/diceforge/internal/storage"
)

// payloadDuration is how many rounds an enemy poison or burn payload lasts
// on the player.
const payloadDuration = 3

// ExecuteTurn resolves one full combat turn: player ability resolution and
// attack, enemy status ticks, the enemy's action, then the player's status
// ticks. The resolution order is fixed; reordering steps changes balance.
//
// Precondition: at least one die must be assigned to a slot.
// Postcondition: on success, assignments and the reroll counter are cleared.
func (s *Session) ExecuteTurn(ctx context.Context) Result {
	if s.player == nil {
		return reject("no active run; start a run first")
	}
	if s.state != StateCombat {
		return reject("can only fight in combat (currently %s)", s.state)
	}
	if !s.anyAssigned() {
		return reject("assign at least one die before ending the turn")
	}

	var log []string

	// Slot values. A die only contributes if its rolled face matches the
	// slot it sits in.
	attackValue := s.slotValue(s.attackDieID, dice.FaceAttack)
	defenseValue := s.slotValue(s.defenseDieID, dice.FaceDefense)
	attackValue += s.player.AttackBonus()
	defenseValue += s.player.DefenseBonus()

	abilityCtx := ability.Context{
		AttackValue:  attackValue,
		DefenseValue: defenseValue,
		SpecialFaces: s.specialFaces(),
		Round:        s.round,
	}

	passive := ability.ApplyPassive(s.player, abilityCtx, s.src)
	attackValue += passive.BonusDamage
	defenseValue += passive.BonusDefense
	if passive.Message != "" {
		log = append(log, passive.Message)
	}

	guaranteedCrit := false
	skipEnemyTurn := false
	if len(s.specialDice) > 0 {
		special := ability.TryActivateSpecial(s.player, abilityCtx, s.src)
		if special.Success {
			if special.SetDamage != nil {
				attackValue = *special.SetDamage
			} else {
				attackValue += special.BonusDamage
			}
			defenseValue += special.BonusDefense
			guaranteedCrit = special.GuaranteedCrit
			skipEnemyTurn = special.SkipEnemyTurn
			if special.EnemyEffect != nil {
				s.enemy.AddEffect(special.EnemyEffect)
				log = append(log, fmt.Sprintf("%s is afflicted by %s", s.enemy.Name, special.EnemyEffect.Name))
			}
			if special.Message != "" {
				log = append(log, special.Message)
			}
		}
	}

	// Independent crit draw; a guaranteed crit forces the multiplier even
	// when the draw misses. CritChance is in percentage points and may be
	// fractional, so the draw goes through the quantised Chance helper.
	if attackValue > 0 {
		rolled := dice.Chance(s.src, s.player.CritChance/100)
		if rolled || guaranteedCrit {
			attackValue = int(float64(attackValue) * s.player.CritMultiplier)
			log = append(log, "Critical strike!")
		}
	}

	if attackValue > 0 {
		dealt := s.enemy.TakeHit(attackValue)
		s.stats.DamageDealt += dealt
		log = append(log, fmt.Sprintf("You hit %s for %d damage (%s)", s.enemy.Name, dealt, s.enemy.HealthDescription()))
		if frac := s.player.ThornsFraction(); frac > 0 {
			reflected := int(math.Floor(float64(attackValue) * frac))
			if reflected > 0 {
				log = append(log, fmt.Sprintf("Thorns flare for %d", reflected))
			}
		}
	} else {
		log = append(log, "You brace behind your defenses")
	}

	if !s.enemy.IsAlive() {
		if revive := s.tryRevive(&log); !revive {
			return s.handleEnemyDefeat(log)
		}
	}

	// Enemy status ticks happen before it acts.
	log = append(log, describeTicks(s.enemy.Name, s.enemy.TickEffects())...)
	if !s.enemy.IsAlive() {
		if revive := s.tryRevive(&log); !revive {
			return s.handleEnemyDefeat(log)
		}
	}

	if skipEnemyTurn {
		log = append(log, fmt.Sprintf("Time fractures; %s is locked out of the moment", s.enemy.Name))
	} else {
		action := s.enemy.NextAction(s.src)
		log = append(log, s.applyEnemyAction(action, defenseValue)...)
	}

	log = append(log, describeTicks("You", s.player.TickEffects())...)

	if !s.player.IsAlive() {
		return s.handlePlayerDefeat(ctx, log)
	}

	s.clearAssignments()
	s.player.RerollsUsed = 0
	log = append(log, fmt.Sprintf("You stand at %d/%d HP; %s is %s",
		s.player.CurrentHP, s.player.MaxHP, s.enemy.Name, s.enemy.HealthDescription()))
	return Result{OK: true, Message: "turn resolved", Log: log}
}

// slotValue reads the face value of the die in a slot, or 0 when the slot
// is empty or the rolled face kind does not match the slot.
func (s *Session) slotValue(dieID string, want dice.FaceKind) int {
	if dieID == "" {
		return 0
	}
	die := s.player.DiceSet.Find(dieID)
	if die == nil || die.Current == nil || die.Current.Kind != want {
		return 0
	}
	return die.Current.Value
}

// specialFaces collects the rolled faces of every special-slot die.
func (s *Session) specialFaces() []dice.Face {
	var faces []dice.Face
	for _, id := range s.specialDice {
		if die := s.player.DiceSet.Find(id); die != nil && die.Current != nil {
			faces = append(faces, *die.Current)
		}
	}
	return faces
}

// tryRevive gives a downed phoenix its one return. Reports whether the
// enemy came back.
func (s *Session) tryRevive(log *[]string) bool {
	action := s.enemy.ReviveAction()
	if action == nil {
		return false
	}
	*log = append(*log, action.Message)
	s.log.Info("enemy revived", zap.String("enemy", s.enemy.Name), zap.Int("hp", s.enemy.CurrentHP))
	return true
}

// applyEnemyAction resolves one enemy action against the player.
// defenseValue is the player's total defense for this turn.
func (s *Session) applyEnemyAction(action enemy.Action, defenseValue int) []string {
	var log []string
	if action.Message != "" {
		log = append(log, action.Message)
	}

	switch action.Type {
	case enemy.ActionAttack:
		incoming := action.Value - defenseValue
		if incoming < 0 {
			incoming = 0
		}
		incoming -= s.player.FlatBlock()
		if incoming < 0 {
			incoming = 0
		}

		dodged := incoming > 0 && dice.Chance(s.src, s.player.DodgeChance())
		if dodged {
			incoming = 0
			log = append(log, "You slip aside untouched")
		} else if absorb := s.player.AbsorbEffect(); absorb != nil && incoming > 0 {
			soaked := incoming
			if soaked > absorb.BlockAmount {
				soaked = absorb.BlockAmount
			}
			absorb.BlockAmount -= soaked
			incoming -= soaked
			if absorb.BlockAmount <= 0 {
				s.player.RemoveEffect(absorb.Name)
			}
			log = append(log, fmt.Sprintf("%s absorbs %d damage", absorb.Name, soaked))
		}

		if incoming > 0 {
			taken := s.player.TakeDamage(incoming)
			s.stats.DamageTaken += taken
			log = append(log, fmt.Sprintf("%s hits you for %d damage", s.enemy.Name, taken))
		} else if !dodged {
			log = append(log, fmt.Sprintf("%s's attack glances off you", s.enemy.Name))
		}

		// Payloads land independently of mitigation.
		if action.Poison > 0 {
			s.player.AddEffect(actor.NewPoison("Poison", action.Poison, payloadDuration))
			log = append(log, fmt.Sprintf("Venom seeps into your veins (%d per turn)", action.Poison))
		}
		if action.Burn > 0 {
			s.player.AddEffect(actor.NewBurn("Burn", action.Burn, payloadDuration))
			log = append(log, fmt.Sprintf("Flames cling to you (%d per turn)", action.Burn))
		}
		if action.LifeSteal > 0 {
			healed := s.enemy.Heal(int(math.Floor(float64(action.Value) * action.LifeSteal)))
			if healed > 0 {
				log = append(log, fmt.Sprintf("%s drains %d health from the wound", s.enemy.Name, healed))
			}
		}
	case enemy.ActionHeal:
		healed := s.enemy.Heal(action.Value)
		log = append(log, fmt.Sprintf("%s recovers %d health", s.enemy.Name, healed))
	case enemy.ActionDefend:
		// narration only
	}
	return log
}

// describeTicks renders tick events into log lines, skipping silent ones.
func describeTicks(who string, events []actor.TickEvent) []string {
	var log []string
	for _, ev := range events {
		switch {
		case ev.Damage > 0:
			log = append(log, fmt.Sprintf("%s: %s deals %d damage", who, ev.Name, ev.Damage))
		case ev.Heal > 0:
			log = append(log, fmt.Sprintf("%s: %s restores %d health", who, ev.Name, ev.Heal))
		}
		if ev.Expired {
			log = append(log, fmt.Sprintf("%s: %s fades", who, ev.Name))
		}
	}
	return log
}

// handleEnemyDefeat awards gold, advances the round, and either opens a
// merchant or spawns the next enemy. Enemy defeat ends the turn before the
// player death check, so a player emptied to 0 HP by a self-damaging
// special still advances; the next resolved turn ends the run.
func (s *Session) handleEnemyDefeat(log []string) Result {
	gold := int(math.Floor(float64(s.enemy.GoldReward) * s.player.GoldMultiplier()))
	s.player.AddGold(gold)
	s.stats.GoldEarned += gold
	s.stats.EnemiesDefeated++
	log = append(log, fmt.Sprintf("%s falls! You loot %d gold", s.enemy.Name, gold))

	s.round++
	if s.round > s.stats.HighestRound {
		s.stats.HighestRound = s.round
	}
	s.clearAssignments()
	s.player.RerollsUsed = 0

	if s.round%s.tuning.MerchantCadence == 0 {
		s.merchantVisits++
		variant := item.VariantForEncounter(s.merchantVisits)
		s.merchant = item.NewMerchant(variant, s.items, s.src)
		s.state = StateMerchant
		s.log.Info("merchant encounter",
			zap.Int("round", s.round),
			zap.Int("visit", s.merchantVisits),
			zap.String("variant", variant.String()))
		log = append(log, fmt.Sprintf("A %s merchant beckons you over", variant))
		return Result{OK: true, Message: "enemy defeated; a merchant appears", Log: log}
	}

	s.enemy = enemy.SpawnForRound(s.enemies, s.round, s.src)
	s.log.Info("next round",
		zap.Int("round", s.round),
		zap.String("enemy", s.enemy.Name),
		zap.String("category", s.enemy.Category.String()))
	log = append(log, fmt.Sprintf("Round %d: %s approaches", s.round, s.enemy.Name))
	return Result{OK: true, Message: "enemy defeated", Log: log}
}

// handlePlayerDefeat ends the run and records it in the best-runs store.
func (s *Session) handlePlayerDefeat(ctx context.Context, log []string) Result {
	s.state = StateGameOver
	summary := storage.RunSummary{
		Class:           s.player.Class.ID(),
		RoundsSurvived:  s.round - 1,
		EnemiesDefeated: s.stats.EnemiesDefeated,
		DamageDealt:     s.stats.DamageDealt,
		GoldEarned:      s.stats.GoldEarned,
		RecordedAt:      s.now(),
	}
	if err := s.recordRun(ctx, summary); err != nil {
		s.log.Warn("recording best run", zap.Error(err))
	}
	s.log.Info("run over",
		zap.String("class", summary.Class),
		zap.Int("rounds", summary.RoundsSurvived),
		zap.Int("enemies", summary.EnemiesDefeated))
	log = append(log, fmt.Sprintf("You fall on round %d. %d enemies defeated, %d damage dealt, %d gold earned.",
		s.round, s.stats.EnemiesDefeated, s.stats.DamageDealt, s.stats.GoldEarned))
	return Result{OK: true, Message: "you have been defeated", Log: log}
}

// recordRun merges summary into the persisted top-N list.
func (s *Session) recordRun(ctx context.Context, summary storage.RunSummary) error {
	runs, err := s.runs.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading best runs: %w", err)
	}
	runs = storage.SortAndTruncate(append(runs, summary), s.tuning.BestRunLimit)
	if err := s.runs.Save(ctx, runs); err != nil {
		return fmt.Errorf("saving best runs: %w", err)
	}
	return nil
}

// BestRuns returns the persisted best-run list, most rounds first.
func (s *Session) BestRuns(ctx context.Context) ([]storage.RunSummary, error) {
	return s.runs.Load(ctx)
}
