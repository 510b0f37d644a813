package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/bingox/internal/log"
)

// fixedRNG always returns the same choice (clamped into range). Useful for
// pinning intents and random targets.
type fixedRNG struct {
	n int
	f float64
}

func (r fixedRNG) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func (r fixedRNG) Float64() float64 { return r.f }

// strike is a Fire card that hits a random enemy for dmg.
func strike(dmg int) *CardDef {
	return &CardDef{
		ID:            "strike",
		Name:          "Strike",
		Element:       ElementFire,
		SingleEffects: []Effect{Attack{Target: TargetRandomEnemy, Value: dmg}},
	}
}

func repeat(def *CardDef, n int) []*CardDef {
	defs := make([]*CardDef, n)
	for i := range defs {
		defs[i] = def
	}
	return defs
}

// gridDefs builds 16 basic card definitions from four row strings using
// F(ire), E(arth), W(ater) and N (wind).
func gridDefs(t *testing.T, rows ...string) []*CardDef {
	t.Helper()
	byLetter := map[rune]Element{'F': ElementFire, 'E': ElementEarth, 'W': ElementWater, 'N': ElementWind}
	var defs []*CardDef
	for _, row := range rows {
		for _, ch := range row {
			e, ok := byLetter[ch]
			require.True(t, ok, "bad grid letter %q", ch)
			defs = append(defs, BasicCard(e))
		}
	}
	return defs
}

// fixedPool returns a pool whose grid holds fresh instances of defs.
func fixedPool(t *testing.T, defs ...*CardDef) *Pool {
	t.Helper()
	p, err := NewPool(DefaultComposition(), NewRNG(1))
	require.NoError(t, err)
	p.SetGrid(defs...)
	return p
}

func unitWith(name string, hp int) *Unit {
	return NewUnit(name, hp)
}

// newTestBattle starts a seeded battle over comp with the given roster.
func newTestBattle(t *testing.T, comp []*CardDef, roster Roster, mod ...func(*BattleConfig)) (*Battle, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg := BattleConfig{Composition: comp, Seed: 42, Logger: logger}
	for _, m := range mod {
		m(&cfg)
	}
	b, err := NewBattle(cfg)
	require.NoError(t, err)
	require.NoError(t, b.StartBattle(roster))
	return b, logger
}

func oneEnemy(playerHP, enemyHP int) Roster {
	return Roster{
		Player:  UnitSpec{Name: "Golem", MaxHP: playerHP},
		Enemies: []UnitSpec{{Name: "Minion", MaxHP: enemyHP, BaseAttack: 8}},
	}
}

func alwaysAttack(cfg *BattleConfig) {
	cfg.IntentWeights = IntentWeights{Attack: 1}
}

func dumpLog(t *testing.T, logger *log.MemoryLogger) {
	t.Helper()
	t.Logf("\n%s", log.FormatAll(logger.Events()))
}

func testContext(actor *Unit, enemies ...*Unit) *EffectContext {
	return &EffectContext{Actor: actor, Enemies: enemies, Origin: NoOrigin}
}
