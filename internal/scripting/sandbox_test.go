package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/soverby/diceforge/internal/scripting"
)

// TestSandbox_SafeLibsAvailable verifies table/string/math are callable.
func TestSandbox_SafeLibsAvailable(t *testing.T) {
	L := scripting.NewSandboxedState(0)
	defer L.Close()

	err := L.DoString(`
		local t = {3, 1, 2}
		table.sort(t)
		assert(t[1] == 1)
		assert(string.upper("ok") == "OK")
		assert(math.floor(3.7) == 3)
	`)
	assert.NoError(t, err)
}

// TestSandbox_DangerousGlobalsStripped verifies filesystem and loader
// entry points are gone.
func TestSandbox_DangerousGlobalsStripped(t *testing.T) {
	L := scripting.NewSandboxedState(0)
	defer L.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "%s must not be reachable", name)
	}
}

// TestSandbox_InstructionLimit verifies a runaway loop is aborted.
func TestSandbox_InstructionLimit(t *testing.T) {
	L := scripting.NewSandboxedState(1000)
	defer L.Close()

	err := L.DoString(`while true do end`)
	assert.Error(t, err, "an unbounded loop must hit the instruction limit")
}

// TestRunItemHook_CallsRegisteredFunctions verifies the player module
// dispatches into the Go callbacks.
func TestRunItemHook_CallsRegisteredFunctions(t *testing.T) {
	var healed, dmg, gold, atk, def, maxHP int
	var crit float64
	counters := map[string]int{}

	hooks := scripting.PlayerHooks{
		Heal:          func(n int) int { healed += n; return n },
		Damage:        func(n int) int { dmg += n; return n },
		AddGold:       func(n int) { gold += n },
		AddAttack:     func(n int) { atk += n },
		AddDefense:    func(n int) { def += n },
		AddCritChance: func(p float64) { crit += p },
		RaiseMaxHP:    func(n int) { maxHP += n },
		AddCounter:    func(name string, d int) { counters[name] += d },
	}

	err := scripting.RunItemHook(`
		player.heal(10)
		player.damage(4)
		player.add_gold(25)
		player.add_attack(3)
		player.add_defense(2)
		player.add_crit_chance(7.5)
		player.raise_max_hp(15)
		player.add_counter("momentum", 2)
	`, hooks, 0)
	require.NoError(t, err)

	assert.Equal(t, 10, healed)
	assert.Equal(t, 4, dmg)
	assert.Equal(t, 25, gold)
	assert.Equal(t, 3, atk)
	assert.Equal(t, 2, def)
	assert.Equal(t, 7.5, crit)
	assert.Equal(t, 15, maxHP)
	assert.Equal(t, 2, counters["momentum"])
}

// TestRunItemHook_NilCallbacksAreNoOps verifies an empty hook surface does
// not panic.
func TestRunItemHook_NilCallbacksAreNoOps(t *testing.T) {
	err := scripting.RunItemHook(`player.heal(10)`, scripting.PlayerHooks{}, 0)
	assert.NoError(t, err)
}

// TestRunItemHook_SyntaxError verifies broken scripts surface an error.
func TestRunItemHook_SyntaxError(t *testing.T) {
	err := scripting.RunItemHook(`this is not lua`, scripting.PlayerHooks{}, 0)
	assert.Error(t, err)
}
