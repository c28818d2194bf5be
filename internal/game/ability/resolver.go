package ability

import (
	"fmt"

	"github.com/soverby/diceforge/internal/game/actor"
	"github.com/soverby/diceforge/internal/game/dice"
	"github.com/soverby/diceforge/internal/game/player"
)

// ApplyPassive evaluates the class passive for this turn. Passives have no
// activation threshold; they fire from whatever symbols (or attack state)
// the turn presents, and may mutate the player directly.
//
// Precondition: p and src must be non-nil.
// Postcondition: Returns an Outcome with Success unset (passives cannot fail).
func ApplyPassive(p *player.Player, ctx Context, src dice.Source) Outcome {
	switch p.Class {
	case player.BladeDancer:
		return passiveBladeDancer(p, ctx)
	case player.Geomancer:
		return passiveGeomancer(ctx)
	case player.ShadowPriest:
		return passiveShadowPriest(p, ctx)
	case player.Pyromantic:
		return passivePyromantic(ctx)
	case player.FrostWeaver:
		return passiveFrostWeaver(ctx)
	case player.StormCaller:
		return passiveStormCaller(p, ctx)
	case player.NatureShaman:
		return passiveNatureShaman(p, ctx)
	case player.BloodKnight:
		return passiveBloodKnight(p, ctx)
	case player.HolyPaladin:
		return passiveHolyPaladin(p, ctx)
	case player.ChaosMage:
		return passiveChaosMage(p, ctx, src)
	case player.TimeWeaver:
		return passiveTimeWeaver(p, ctx)
	case player.SpiritSummoner:
		return passiveSpiritSummoner(p, ctx)
	default:
		return Outcome{}
	}
}

// TryActivateSpecial attempts the class special. Specials are threshold
// gated: when the symbol count or stored counter is below the bar, the
// attempt fails silently (Success=false, no side effects) and the assigned
// special dice are wasted for the turn.
//
// Precondition: p and src must be non-nil; the caller only invokes this when
// at least one die is assigned to the special slot.
func TryActivateSpecial(p *player.Player, ctx Context, src dice.Source) Outcome {
	switch p.Class {
	case player.BladeDancer:
		return specialBladeDancer(ctx)
	case player.Geomancer:
		return specialGeomancer(p, ctx)
	case player.ShadowPriest:
		return specialShadowPriest(p)
	case player.Pyromantic:
		return specialPyromantic(ctx)
	case player.FrostWeaver:
		return specialFrostWeaver(ctx)
	case player.StormCaller:
		return specialStormCaller(ctx)
	case player.NatureShaman:
		return specialNatureShaman(p, ctx)
	case player.BloodKnight:
		return specialBloodKnight(p, ctx)
	case player.HolyPaladin:
		return specialHolyPaladin(p, ctx)
	case player.ChaosMage:
		return specialChaosMage(ctx, src)
	case player.TimeWeaver:
		return specialTimeWeaver(p, ctx)
	case player.SpiritSummoner:
		return specialSpiritSummoner(p, ctx)
	default:
		return Outcome{}
	}
}

// --- Blade Dancer ---

// Momentum builds while the player keeps attacking and collapses to zero the
// moment a turn passes without an attack.
func passiveBladeDancer(p *player.Player, ctx Context) Outcome {
	if ctx.AttackValue <= 0 {
		p.ResetCounter(player.CounterMomentum)
		return Outcome{}
	}
	p.AddCounter(player.CounterMomentum, 1)
	momentum := p.Counter(player.CounterMomentum)
	return Outcome{
		BonusDamage: momentum,
		Message:     fmt.Sprintf("Momentum builds! +%d damage", momentum),
	}
}

func specialBladeDancer(ctx Context) Outcome {
	if ctx.CritFaceCount() < 2 {
		return Outcome{}
	}
	return Outcome{
		Success:   true,
		SetDamage: setDamage(ctx.AttackValue * 3),
		Message:   "Death Blossom! The blades become a whirlwind",
	}
}

// --- Geomancer ---

func passiveGeomancer(ctx Context) Outcome {
	if ctx.SymbolCount("earth") >= 1 && ctx.SymbolCount("stone") >= 1 && ctx.SymbolCount("crystal") >= 1 {
		return Outcome{
			BonusDamage:  10,
			BonusDefense: 10,
			Message:      "Earthen Harmony: earth, stone and crystal align (+10/+10)",
		}
	}
	return Outcome{}
}

func specialGeomancer(p *player.Player, ctx Context) Outcome {
	if ctx.SymbolCount("stone") < 1 {
		return Outcome{}
	}
	return Outcome{
		Success:      true,
		BonusDefense: 25,
		Message:      "Stone Bulwark rises (+25 defense this round)",
	}
}

// --- Shadow Priest ---

func passiveShadowPriest(p *player.Player, ctx Context) Outcome {
	symbols := ctx.SymbolCount("darkness") + ctx.SymbolCount("void") + ctx.SymbolCount("shadow")
	if symbols == 0 {
		return Outcome{}
	}
	p.AddCounter(player.CounterDarkness, symbols*2)
	return Outcome{
		Message: fmt.Sprintf("Darkness gathers (stored power %d)", p.Counter(player.CounterDarkness)),
	}
}

func specialShadowPriest(p *player.Player) Outcome {
	stored := p.Counter(player.CounterDarkness)
	if stored < 5 {
		return Outcome{}
	}
	p.TakeDamage(5)
	p.ResetCounter(player.CounterDarkness)
	return Outcome{
		Success:     true,
		BonusDamage: 20 + stored,
		Message:     fmt.Sprintf("Void Eruption! Sacrifices 5 HP to unleash %d bonus damage", 20+stored),
	}
}

// --- Pyromantic ---

func passivePyromantic(ctx Context) Outcome {
	flames := ctx.SymbolCount("flame")
	if flames == 0 {
		return Outcome{}
	}
	return Outcome{
		BonusDamage: flames * 2,
		Message:     fmt.Sprintf("Inner Fire: %d flame(s) add %d damage", flames, flames*2),
	}
}

func specialPyromantic(ctx Context) Outcome {
	if ctx.SymbolCount("flame") < 3 {
		return Outcome{}
	}
	return Outcome{
		Success:     true,
		BonusDamage: 40,
		EnemyEffect: actor.NewBurn("Burn", 3, 3),
		Message:     "Infernal Blast! 40 damage and the enemy catches fire",
	}
}

// --- Frost Weaver ---

func passiveFrostWeaver(ctx Context) Outcome {
	frost := ctx.SymbolCount("frost")
	if frost == 0 {
		return Outcome{}
	}
	return Outcome{
		BonusDefense: frost * 3,
		Message:      fmt.Sprintf("Rime Ward: %d frost add %d defense", frost, frost*3),
	}
}

func specialFrostWeaver(ctx Context) Outcome {
	if ctx.SymbolCount("frost") < 2 {
		return Outcome{}
	}
	return Outcome{
		Success:     true,
		EnemyEffect: actor.NewSlow("Frozen", 0.5, 2),
		Message:     "Deep Freeze! The enemy's attacks are halved for 2 rounds",
	}
}

// --- Storm Caller ---

func passiveStormCaller(p *player.Player, ctx Context) Outcome {
	bolts := ctx.SymbolCount("lightning")
	if bolts == 0 {
		return Outcome{}
	}
	p.CritChance += float64(bolts * 10)
	return Outcome{
		Message: fmt.Sprintf("Static Charge: crit chance rises to %.0f%%", p.CritChance),
	}
}

func specialStormCaller(ctx Context) Outcome {
	if ctx.SymbolCount("lightning") < 2 {
		return Outcome{}
	}
	return Outcome{
		Success:        true,
		BonusDamage:    35,
		GuaranteedCrit: true,
		Message:        "Thunderstrike! 35 damage, guaranteed critical",
	}
}

// --- Nature Shaman ---

func passiveNatureShaman(p *player.Player, ctx Context) Outcome {
	leaves := ctx.SymbolCount("nature")
	if leaves == 0 {
		return Outcome{}
	}
	healed := p.Heal(leaves * 3)
	return Outcome{
		Message: fmt.Sprintf("Verdant Touch heals %d HP", healed),
	}
}

func specialNatureShaman(p *player.Player, ctx Context) Outcome {
	if ctx.SymbolCount("nature") < 3 {
		return Outcome{}
	}
	healed := p.Heal(25)
	p.AddEffect(actor.NewRegen("Regeneration", 5, 3))
	return Outcome{
		Success: true,
		Message: fmt.Sprintf("Wild Growth heals %d HP and grants regeneration", healed),
	}
}

// --- Blood Knight ---

func passiveBloodKnight(p *player.Player, ctx Context) Outcome {
	blood := ctx.SymbolCount("blood")
	if blood == 0 || ctx.AttackValue <= 0 {
		return Outcome{}
	}
	healed := p.Heal(int(float64(ctx.AttackValue) * 0.3 * float64(blood)))
	return Outcome{
		Message: fmt.Sprintf("Bloodthirst siphons %d HP", healed),
	}
}

func specialBloodKnight(p *player.Player, ctx Context) Outcome {
	if ctx.SymbolCount("blood") < 2 {
		return Outcome{}
	}
	p.TakeDamage(15)
	return Outcome{
		Success:     true,
		BonusDamage: 50,
		Message:     "Crimson Pact! Pays 15 HP for 50 bonus damage",
	}
}

// --- Holy Paladin ---

func passiveHolyPaladin(p *player.Player, ctx Context) Outcome {
	holy := ctx.SymbolCount("holy")
	if holy == 0 {
		return Outcome{}
	}
	p.AddCounter(player.CounterHoly, holy)
	return Outcome{
		BonusDefense: holy * 4,
		Message:      fmt.Sprintf("Sacred Light (+%d defense, holy power %d)", holy*4, p.Counter(player.CounterHoly)),
	}
}

func specialHolyPaladin(p *player.Player, ctx Context) Outcome {
	if ctx.SymbolCount("holy") < 2 || p.Counter(player.CounterHoly) < 5 {
		return Outcome{}
	}
	healed := p.Heal(20)
	p.RemoveEffect("Divine Shield")
	p.AddEffect(actor.NewAbsorb("Divine Shield", 30))
	p.ResetCounter(player.CounterHoly)
	return Outcome{
		Success: true,
		Message: fmt.Sprintf("Divine Intervention heals %d HP and raises a 30-point shield", healed),
	}
}

// --- Chaos Mage ---

// The chaos passive rolls one of four outcomes whenever any chaos symbol is
// present; one of them backfires.
func passiveChaosMage(p *player.Player, ctx Context, src dice.Source) Outcome {
	if ctx.SymbolCount("chaos") == 0 {
		return Outcome{}
	}
	switch src.Intn(4) {
	case 0:
		return Outcome{BonusDamage: 10, Message: "Chaos surges outward (+10 damage)"}
	case 1:
		return Outcome{BonusDefense: 10, Message: "Chaos coils protectively (+10 defense)"}
	case 2:
		return Outcome{BonusDamage: 5, BonusDefense: 5, Message: "Chaos splits both ways (+5/+5)"}
	default:
		p.TakeDamage(5)
		return Outcome{BonusDamage: 15, Message: "Chaos backfires for 5 HP but fuels +15 damage"}
	}
}

func specialChaosMage(ctx Context, src dice.Source) Outcome {
	if ctx.SymbolCount("chaos") < 2 {
		return Outcome{}
	}
	dmg := 20 + src.Intn(61)
	return Outcome{
		Success:     true,
		BonusDamage: dmg,
		Message:     fmt.Sprintf("Entropy Bolt tears reality for %d bonus damage", dmg),
	}
}

// --- Time Weaver ---

func passiveTimeWeaver(p *player.Player, ctx Context) Outcome {
	stacks := ctx.SymbolCount("time")
	if stacks == 0 {
		return Outcome{}
	}
	p.AddCounter(player.CounterTime, stacks)
	return Outcome{
		Message: fmt.Sprintf("Time fragments accumulate (%d stacks)", p.Counter(player.CounterTime)),
	}
}

func specialTimeWeaver(p *player.Player, ctx Context) Outcome {
	if ctx.SymbolCount("time") < 3 || p.Counter(player.CounterTime) < 6 {
		return Outcome{}
	}
	p.ResetCounter(player.CounterTime)
	p.AddEffect(actor.NewStatMod("Haste", 10, 10, 2))
	return Outcome{
		Success:       true,
		SkipEnemyTurn: true,
		Message:       "Temporal Rift! The enemy is frozen outside of time",
	}
}

// --- Spirit Summoner ---

func passiveSpiritSummoner(p *player.Player, ctx Context) Outcome {
	spirits := ctx.SymbolCount("spirit")
	if spirits == 0 {
		return Outcome{}
	}
	p.AddCounter(player.CounterSpirit, spirits)
	bound := p.Counter(player.CounterSpirit)
	return Outcome{
		BonusDamage: bound * 2,
		Message:     fmt.Sprintf("Spirit Host: %d bound spirits add %d damage", bound, bound*2),
	}
}

func specialSpiritSummoner(p *player.Player, ctx Context) Outcome {
	if ctx.SymbolCount("spirit") < 3 {
		return Outcome{}
	}
	p.RemoveEffect("Spirit Guardian")
	p.AddEffect(actor.NewStatMod("Spirit Guardian", 8, 15, 2))
	return Outcome{
		Success:     true,
		BonusDamage: 30,
		Message:     "Ancestral Avatar! 30 bonus damage and a guardian joins the fight",
	}
}
