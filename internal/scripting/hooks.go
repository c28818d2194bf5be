package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// PlayerHooks is the callback surface an item hook script may touch,
// exposed to Lua as the `player` module. Nil callbacks become no-ops, so a
// caller only wires what the context supports.
type PlayerHooks struct {
	Heal          func(amount int) int
	Damage        func(amount int) int
	AddGold       func(amount int)
	AddAttack     func(amount int)
	AddDefense    func(amount int)
	AddCritChance func(points float64)
	RaiseMaxHP    func(amount int)
	AddCounter    func(name string, delta int)
}

// RunItemHook executes one item's on_apply script in a fresh sandboxed VM.
// The script sees a `player` table with the hook functions registered.
//
// Precondition: script must be non-empty.
// Postcondition: Returns a non-nil error if the script fails to run or
// exceeds the instruction limit; player mutations made before the failure
// are not rolled back.
func RunItemHook(script string, hooks PlayerHooks, instLimit int) error {
	L := NewSandboxedState(instLimit)
	defer L.Close()

	mod := L.NewTable()
	registerIntFn(L, mod, "heal", func(n int) {
		if hooks.Heal != nil {
			hooks.Heal(n)
		}
	})
	registerIntFn(L, mod, "damage", func(n int) {
		if hooks.Damage != nil {
			hooks.Damage(n)
		}
	})
	registerIntFn(L, mod, "add_gold", func(n int) {
		if hooks.AddGold != nil {
			hooks.AddGold(n)
		}
	})
	registerIntFn(L, mod, "add_attack", func(n int) {
		if hooks.AddAttack != nil {
			hooks.AddAttack(n)
		}
	})
	registerIntFn(L, mod, "add_defense", func(n int) {
		if hooks.AddDefense != nil {
			hooks.AddDefense(n)
		}
	})
	registerIntFn(L, mod, "raise_max_hp", func(n int) {
		if hooks.RaiseMaxHP != nil {
			hooks.RaiseMaxHP(n)
		}
	})
	L.SetField(mod, "add_crit_chance", L.NewFunction(func(L *lua.LState) int {
		pts := float64(L.CheckNumber(1))
		if hooks.AddCritChance != nil {
			hooks.AddCritChance(pts)
		}
		return 0
	}))
	L.SetField(mod, "add_counter", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		delta := int(L.CheckNumber(2))
		if hooks.AddCounter != nil {
			hooks.AddCounter(name, delta)
		}
		return 0
	}))
	L.SetGlobal("player", mod)

	if err := L.DoString(script); err != nil {
		return fmt.Errorf("scripting: item hook failed: %w", err)
	}
	return nil
}

// registerIntFn binds a single-int-argument Lua function into mod.
func registerIntFn(L *lua.LState, mod *lua.LTable, name string, fn func(int)) {
	L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
		fn(int(L.CheckNumber(1)))
		return 0
	}))
}
