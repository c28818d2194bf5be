package enemy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soverby/diceforge/internal/game/enemy"
)

// TestLoadTemplateFromBytes_Valid verifies a well-formed template parses.
func TestLoadTemplateFromBytes_Valid(t *testing.T) {
	tmpl := mustTemplate(t, spikeYAML)
	assert.Equal(t, "bone-archer", tmpl.ID)
	assert.Equal(t, enemy.Minion, tmpl.CategoryValue())
}

// TestTemplate_Validate_Rejections covers the per-kind parameter checks.
func TestTemplate_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown category",
			yaml: `
id: x
name: X
category: demigod
base_hp: 10
base_attack: 1
behavior: { kind: flat }
`,
		},
		{
			name: "spike without period",
			yaml: `
id: x
name: X
category: minion
base_hp: 10
base_attack: 1
behavior: { kind: spike, multiplier: 2.0 }
`,
		},
		{
			name: "charge multiplier at one",
			yaml: `
id: x
name: X
category: elite
base_hp: 10
base_attack: 1
behavior: { kind: charge, turns: 3, multiplier: 1.0 }
`,
		},
		{
			name: "rage threshold out of range",
			yaml: `
id: x
name: X
category: minion
base_hp: 10
base_attack: 1
behavior: { kind: rage, hp_threshold: 1.5, bonus: 5 }
`,
		},
		{
			name: "phoenix on a minion",
			yaml: `
id: x
name: X
category: minion
base_hp: 10
base_attack: 1
behavior: { kind: phoenix }
`,
		},
		{
			name: "phase on an elite",
			yaml: `
id: x
name: X
category: elite
base_hp: 10
base_attack: 1
behavior: { kind: phase, hp_threshold: 0.5, burst: 20 }
`,
		},
		{
			name: "life steal above one",
			yaml: `
id: x
name: X
category: minion
base_hp: 10
base_attack: 1
behavior: { kind: flat }
payload: { life_steal: 1.5 }
`,
		},
		{
			name: "unknown behavior kind",
			yaml: `
id: x
name: X
category: minion
base_hp: 10
base_attack: 1
behavior: { kind: tapdance }
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enemy.LoadTemplateFromBytes([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

// TestRegistry verifies id lookup, category rosters, and duplicate
// rejection.
func TestRegistry(t *testing.T) {
	a := mustTemplate(t, spikeYAML)
	b := mustTemplate(t, `
id: wolf
name: Feral Wolf
category: minion
base_hp: 32
base_attack: 7
behavior: { kind: rage, hp_threshold: 0.4, bonus: 5 }
`)

	reg, err := enemy.NewRegistry([]*enemy.Template{a, b})
	require.NoError(t, err)

	got, ok := reg.Get("wolf")
	require.True(t, ok)
	assert.Equal(t, "Feral Wolf", got.Name)
	_, ok = reg.Get("dragon")
	assert.False(t, ok)

	assert.Len(t, reg.Roster(enemy.Minion), 2)
	assert.Empty(t, reg.Roster(enemy.Boss))

	_, err = enemy.NewRegistry([]*enemy.Template{a, a})
	assert.Error(t, err, "duplicate ids must be rejected")
}

// TestParseCategory_GoldRewards verifies category parsing and the fixed
// gold table.
func TestParseCategory_GoldRewards(t *testing.T) {
	for label, want := range map[string]int{"minion": 10, "elite": 25, "boss": 50} {
		cat, err := enemy.ParseCategory(label)
		require.NoError(t, err)
		assert.Equal(t, want, cat.GoldReward())
	}
}
