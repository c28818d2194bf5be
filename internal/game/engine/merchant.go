package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/soverby/diceforge/internal/game/enemy"
)

// PurchaseItem buys the merchant inventory slot at index.
func (s *Session) PurchaseItem(index int) Result {
	if s.state != StateMerchant {
		return reject("there is no merchant here (currently %s)", s.state)
	}
	message, err := s.merchant.Purchase(index, s.player)
	if err != nil {
		return reject("%v", err)
	}
	s.log.Info("item purchased",
		zap.Int("slot", index),
		zap.String("item", s.merchant.Inventory[index].Name),
		zap.Int("gold_left", s.player.Gold))
	return Result{OK: true, Message: message}
}

// LeaveMerchant closes the shop and resumes combat with an enemy scaled to
// the current round.
func (s *Session) LeaveMerchant() Result {
	if s.state != StateMerchant {
		return reject("there is no merchant to leave (currently %s)", s.state)
	}
	s.merchant = nil
	s.state = StateCombat
	s.clearAssignments()
	s.player.RerollsUsed = 0
	s.enemy = enemy.SpawnForRound(s.enemies, s.round, s.src)
	s.log.Info("merchant left",
		zap.Int("round", s.round),
		zap.String("enemy", s.enemy.Name))
	return Result{OK: true, Message: fmt.Sprintf("Round %d: %s approaches", s.round, s.enemy.Name)}
}
