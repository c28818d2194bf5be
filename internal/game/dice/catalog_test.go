package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soverby/diceforge/internal/game/dice"
)

const validClassYAML = `
id: frost-weaver
name: Frost Weaver
dice:
  - faces:
      - { kind: attack, value: 4 }
      - { kind: attack, value: 5 }
      - { kind: defense, value: 3 }
      - { kind: special, value: 0, symbol: frost }
  - faces:
      - { kind: defense, value: 4 }
      - { kind: defense, value: 5 }
      - { kind: attack, value: 4 }
      - { kind: special, value: 0, symbol: frost }
  - faces:
      - { kind: special, value: 0, symbol: frost }
      - { kind: special, value: 0, symbol: frost }
      - { kind: crit, value: 0 }
      - { kind: attack, value: 5 }
`

// TestLoadClassDefFromBytes verifies a well-formed class catalog parses and
// builds a playable set.
func TestLoadClassDefFromBytes(t *testing.T) {
	def, err := dice.LoadClassDefFromBytes([]byte(validClassYAML))
	require.NoError(t, err)
	assert.Equal(t, "frost-weaver", def.ID)

	set, err := def.Build()
	require.NoError(t, err)
	require.Len(t, set.Dice, 3)
	for _, d := range set.Dice {
		assert.Len(t, d.Faces, 4)
		assert.False(t, d.Rolled)
	}
}

// TestClassDef_Build_FreshIdentities verifies each build mints new die ids.
func TestClassDef_Build_FreshIdentities(t *testing.T) {
	def, err := dice.LoadClassDefFromBytes([]byte(validClassYAML))
	require.NoError(t, err)

	a, err := def.Build()
	require.NoError(t, err)
	b, err := def.Build()
	require.NoError(t, err)
	for i := range a.Dice {
		assert.NotEqual(t, a.Dice[i].ID, b.Dice[i].ID,
			"two builds of the same catalog must not share die identities")
	}
}

// TestClassDef_Validate_Rejections covers the catalog invariants.
func TestClassDef_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing id",
			yaml: `
name: Nameless
dice:
  - faces: [{ kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }]
  - faces: [{ kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }]
  - faces: [{ kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }]
`,
		},
		{
			name: "wrong dice count",
			yaml: `
id: short-set
dice:
  - faces: [{ kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }]
`,
		},
		{
			name: "unknown face kind",
			yaml: `
id: bad-kind
dice:
  - faces: [{ kind: smash, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }]
  - faces: [{ kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }]
  - faces: [{ kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }]
`,
		},
		{
			name: "special face without symbol",
			yaml: `
id: bare-special
dice:
  - faces: [{ kind: special, value: 0 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }]
  - faces: [{ kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }]
  - faces: [{ kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }, { kind: attack, value: 1 }]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dice.LoadClassDefFromBytes([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
