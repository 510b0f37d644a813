package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDecks = `
cards:
  - id: cinder
    name: Cinder
    element: 불
    grade: Common
    single_effects:
      - type: 공격
        target: Front
        value: 6
      - type: debuff
        subtype: Burn
        target: LastTarget
        value: 1
    bingo_effects:
      - type: conditional
        condition: {stat: EnemyCount, op: ">=", value: 2}
        effect:
          type: attack
          target: AllEnemies
          value: 4
  - id: tide-turner
    element: water
    single_effects:
      - type: grid_manipulation
        action: Transform
        target_selector: Near4
        to_type: Origin
        condition: DiffType
      - type: teleport
decks:
  - name: Fire Starter
    cards:
      - name: cinder
        count: 4
      - name: Fireball
        count: 2
      - name: earth
        count: 10
  - name: Tides
    cards:
      - name: tide-turner
        count: 16
`

func writeDeckFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParseDeckData_CustomCards(t *testing.T) {
	df, err := ParseDeckData([]byte(sampleDecks))
	require.NoError(t, err)
	require.Len(t, df.Cards, 2)

	cinder := df.Cards[0]
	assert.Equal(t, "Cinder", cinder.Name)
	assert.Equal(t, ElementFire, cinder.Element)
	assert.Equal(t, []Effect{
		Attack{Target: TargetFront, Value: 6},
		Debuff{Target: TargetLast, Subtype: "Burn", Value: 1},
	}, cinder.SingleEffects)
	assert.Equal(t, []Effect{
		Conditional{
			Condition: Condition{Stat: StatEnemyCount, Op: ">=", Value: 2},
			Effect:    Attack{Target: TargetAllEnemies, Value: 4},
		},
	}, cinder.BingoEffects)

	tide := df.Cards[1]
	assert.Equal(t, "tide-turner", tide.Name, "name defaults to the id")
	assert.Equal(t, ElementWater, tide.Element)
	require.Len(t, tide.SingleEffects, 2)
	assert.Equal(t, GridManipulation{
		Action: GridTransform, Target: SelectNear4, ToType: OriginElement, Filter: FilterDiffType,
	}, tide.SingleEffects[0])
	assert.Equal(t, UnknownEffect{Type: "teleport"}, tide.SingleEffects[1])
}

func TestDeckFile_Composition(t *testing.T) {
	df, err := ParseDeckData([]byte(sampleDecks))
	require.NoError(t, err)

	defs, err := df.Composition(df.Decks[0])
	require.NoError(t, err)
	require.Len(t, defs, 16)
	assert.Equal(t, "cinder", defs[0].ID)
	assert.Equal(t, "fireball", defs[4].ID)
	assert.Equal(t, "basic-Earth", defs[15].ID)

	_, err = df.Composition(DeckEntry{Name: "empty"})
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = df.Composition(DeckEntry{Name: "bad", Cards: []CardEntry{{Name: "no-such-card", Count: 1}}})
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestParseDeckData_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "cards:\n  - element: fire\n"},
		{"missing element", "cards:\n  - id: x\n"},
		{"unknown element", "cards:\n  - id: x\n    element: lightning\n"},
		{"conditional without effect", "cards:\n  - id: x\n    element: fire\n    single_effects:\n      - type: conditional\n        condition: {stat: EnemyCount, op: '>', value: 1}\n"},
		{"grid filter mapping", "cards:\n  - id: x\n    element: fire\n    single_effects:\n      - type: grid\n        condition: {stat: x}\n"},
		{"not yaml", "cards: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDeckData([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseEffects_Aliases(t *testing.T) {
	effects, err := ParseEffects([]byte(`
- {type: damage, value: 3, ignore_block: true}
- {type: 방어, scale: 2}
- {type: 회복, max_hp_divisor: 8}
- {type: 버프, subtype: Sword, value: 2}
- {type: 특수, subtype: Gust, value: 2}
- {type: 그리드, action: Upgrade, target_selector: All, condition: Corner}
`))
	require.NoError(t, err)
	assert.Equal(t, []Effect{
		Attack{Value: 3, IgnoreBlock: true},
		Block{Scale: 2},
		Heal{MaxHPDivisor: 8},
		Buff{Subtype: BuffSword, Value: 2},
		Special{Subtype: SpecialGust, Value: 2},
		GridManipulation{Action: GridUpgrade, Target: SelectAll, Filter: FilterCorner},
	}, effects)
}

func TestParseDeckFile(t *testing.T) {
	path := writeDeckFile(t, sampleDecks)

	decks, err := ParseDeckFile(path)
	require.NoError(t, err)
	assert.Len(t, decks, 2)
	assert.Len(t, decks["Tides"], 16)

	name, defs, err := DeckByNumber(path, 1)
	require.NoError(t, err)
	assert.Equal(t, "Fire Starter", name)
	assert.Len(t, defs, 16)

	_, _, err = DeckByNumber(path, 3)
	assert.Error(t, err)

	defs, err = DeckByName(path, "Tides")
	require.NoError(t, err)
	assert.Equal(t, "tide-turner", defs[0].ID)

	_, err = DeckByName(path, "Nope")
	assert.Error(t, err)

	_, err = ParseDeckFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDeckFromFile_RunsABattle(t *testing.T) {
	path := writeDeckFile(t, sampleDecks)
	defs, err := DeckByName(path, "Fire Starter")
	require.NoError(t, err)

	b, _ := newTestBattle(t, defs, DefaultRoster())
	for i := 0; i < 3 && !b.GameOver; i++ {
		_, err := b.RunTurn()
		require.NoError(t, err)
		assert.Equal(t, 16, b.Pool.Total())
	}
}
