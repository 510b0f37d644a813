package game

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/bingox/internal/log"
)

func eventTypes(events []log.GameEvent) []log.EventType {
	var types []log.EventType
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	return types
}

// pausedEdit pauses, applies one stat edit and resumes.
func pausedEdit(t *testing.T, b *Battle, ref, field string, value int) {
	t.Helper()
	require.NoError(t, b.Pause())
	require.NoError(t, b.UpdateUnitStat(ref, field, value))
	require.NoError(t, b.Resume())
}

func TestNewBattle_Errors(t *testing.T) {
	_, err := NewBattle(BattleConfig{Composition: []*CardDef{}})
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = NewBattle(BattleConfig{Relics: []string{"cursed_ring"}})
	assert.Error(t, err)

	b, err := NewBattle(BattleConfig{Seed: 1})
	require.NoError(t, err)
	_, err = b.RunTurn()
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.ErrorIs(t, b.Pause(), ErrNotStarted)
	assert.ErrorIs(t, b.UpdateUnitStat("player", "hp", 1), ErrNotStarted)

	assert.ErrorIs(t, b.StartBattle(Roster{Player: UnitSpec{MaxHP: 10}}), ErrNoEnemies)
	assert.Error(t, b.StartBattle(Roster{Player: UnitSpec{MaxHP: 0}, Enemies: []UnitSpec{{MaxHP: 1}}}))
}

func TestStartBattle_DefaultRoster(t *testing.T) {
	b, logger := newTestBattle(t, nil, DefaultRoster())

	assert.Equal(t, "Golem", b.Player.Name)
	assert.Equal(t, 300, b.Player.HP)
	require.Len(t, b.Enemies, 3)
	assert.Equal(t, "Minion 2", b.Enemies[1].Name)
	assert.Equal(t, 32, b.Pool.DeckCount())
	assert.Equal(t, PhaseIdle, b.Phase())
	assert.True(t, b.Started())
	assert.NotEmpty(t, logger.EventsOfType(log.EventShuffle))
}

// Sixteen identical 5-damage fire cards against one 100 HP enemy: every
// card lands, all ten lines are fire bingos and the enemy is left on 20.
func TestRunTurn_SixteenStrikes(t *testing.T) {
	b, logger := newTestBattle(t, repeat(strike(5), 16), oneEnemy(300, 100), alwaysAttack)

	res, err := b.RunTurn()
	require.NoError(t, err)
	dumpLog(t, logger)

	assert.Equal(t, 1, res.Turn)
	assert.Equal(t, 20, b.Enemies[0].HP)
	assert.Equal(t, 80, b.Player.TotalDamageThisTurn)
	assert.Len(t, res.Bingos, 10)
	assert.Equal(t, 10, b.TotalBingos)
	assert.Equal(t, 0, b.HarmonyBingos)
	assert.Equal(t, 292, b.Player.HP, "surviving minion attacks for 8")
	assert.False(t, res.GameOver)
	assert.Equal(t, PhaseGameOverCheck, b.Phase())
	assert.Len(t, logger.EventsOfType(log.EventActivate), 16)
	assert.Equal(t, 0, b.Pool.GridCount())
	assert.Equal(t, 16, b.Pool.DiscardCount())
}

func TestRunTurn_KillEndsInVictory(t *testing.T) {
	b, logger := newTestBattle(t, repeat(strike(7), 16), oneEnemy(300, 100), alwaysAttack)

	res, err := b.RunTurn()
	require.NoError(t, err)

	assert.True(t, res.GameOver)
	assert.True(t, res.Victory)
	assert.False(t, b.Enemies[0].IsAlive)
	assert.Equal(t, 300, b.Player.HP, "dead enemies do not act")
	assert.Equal(t, PhaseBattleEnded, b.Phase())
	assert.Len(t, logger.EventsOfType(log.EventDeath), 1)
	assert.Len(t, logger.EventsOfType(log.EventVictory), 1)
	assert.NotEmpty(t, logger.EventsOfType(log.EventNoTarget), "cards after the kill find no target")

	_, err = b.RunTurn()
	assert.ErrorIs(t, err, ErrBattleOver)
	assert.ErrorIs(t, b.Pause(), ErrBattleOver)
}

func TestRunTurn_PhaseOrder(t *testing.T) {
	b, _ := newTestBattle(t, repeat(BasicCard(ElementEarth), 16), oneEnemy(300, 100), alwaysAttack)

	res, err := b.RunTurn()
	require.NoError(t, err)

	order := []log.EventType{
		log.EventNewTurn, log.EventIntent, log.EventGridDraw, log.EventActivate,
		log.EventBingo, log.EventBingoBonus, log.EventDiscard, log.EventEnemyAction,
	}
	types := eventTypes(res.Events)
	pos := 0
	for _, typ := range types {
		if pos < len(order) && typ == order[pos] {
			pos++
		}
	}
	assert.Equal(t, len(order), pos, "events out of order: %v", types)
	assert.Len(t, res.Logs, len(res.Events))
	for i := 1; i < len(res.Events); i++ {
		assert.Greater(t, res.Events[i].Seq, res.Events[i-1].Seq)
	}
}

func TestActivateCards_SwapForwardStillFiresEveryCard(t *testing.T) {
	b, logger := newTestBattle(t, repeat(BasicCard(ElementEarth), 16), oneEnemy(300, 100))
	swapper := &CardDef{ID: "swapper", Name: "Swapper", Element: ElementWind,
		SingleEffects: []Effect{GridManipulation{Action: GridSwap, Target: SelectRight}}}
	marker := &CardDef{ID: "marker", Name: "Marker", Element: ElementEarth,
		SingleEffects: []Effect{Block{Value: 7}}}
	b.Pool.SetGrid(append([]*CardDef{swapper, marker}, repeat(BasicCard(ElementEarth), 14)...)...)

	require.NoError(t, b.activateCards())

	assert.Equal(t, "Marker", b.Pool.Grid[0].Name())
	assert.Equal(t, "Swapper", b.Pool.Grid[1].Name())
	assert.Equal(t, 7, b.Player.Block, "the swapped-in card fires in its new slot")

	activations := logger.EventsOfType(log.EventActivate)
	require.Len(t, activations, 16)
	assert.Equal(t, "Swapper", activations[0].Card)
	assert.Equal(t, "Marker", activations[1].Card)
}

func TestActivateCards_ReplacedCardFiresOnce(t *testing.T) {
	b, logger := newTestBattle(t, repeat(BasicCard(ElementEarth), 32), oneEnemy(300, 100))
	replacer := &CardDef{ID: "replacer", Name: "Replacer", Element: ElementWind,
		SingleEffects: []Effect{GridManipulation{Action: GridReplace, Target: SelectRight}}}
	b.Pool.SetGrid(append([]*CardDef{replacer}, repeat(BasicCard(ElementEarth), 15)...)...)

	require.NoError(t, b.activateCards())

	assert.Len(t, logger.EventsOfType(log.EventActivate), 16)
}

func TestRunTurn_DefendIntentBlocksImmediately(t *testing.T) {
	b, _ := newTestBattle(t, repeat(BasicCard(ElementEarth), 16), oneEnemy(300, 100), func(c *BattleConfig) {
		c.IntentWeights = IntentWeights{Defend: 1}
	})
	b.Enemies[0].BaseDefense = 8

	_, err := b.RunTurn()
	require.NoError(t, err)
	e := b.Snapshot().Enemies[0]
	assert.Equal(t, IntentDefend, e.Intent)
	assert.Equal(t, 8, e.Block)
	assert.Equal(t, 300, b.Player.HP)
}

func TestRunTurn_BuffIntent(t *testing.T) {
	b, _ := newTestBattle(t, repeat(BasicCard(ElementEarth), 16), oneEnemy(300, 100), func(c *BattleConfig) {
		c.IntentWeights = IntentWeights{Buff: 1}
	})

	_, err := b.RunTurn()
	require.NoError(t, err)
	assert.Equal(t, 10, b.Enemies[0].BaseAttack)
	assert.Equal(t, 2, b.Enemies[0].BaseDefense)
}

func TestRunTurn_WeakEnemyAttack(t *testing.T) {
	b, logger := newTestBattle(t, repeat(BasicCard(ElementEarth), 16), oneEnemy(300, 100), alwaysAttack)
	pausedEdit(t, b, "enemy:1", "status:weak", 1)

	_, err := b.RunTurn()
	require.NoError(t, err)
	assert.Equal(t, 294, b.Player.HP)
	assert.Equal(t, 0, b.Enemies[0].Status(StatusWeak))
	assert.Len(t, logger.EventsOfType(log.EventStatusExpired), 1)
}

func TestRunTurn_PoisonTicks(t *testing.T) {
	b, logger := newTestBattle(t, repeat(BasicCard(ElementEarth), 16), oneEnemy(300, 100), alwaysAttack)
	pausedEdit(t, b, "Minion", "status:poison", 5)

	_, err := b.RunTurn()
	require.NoError(t, err)
	assert.Equal(t, 95, b.Enemies[0].HP)
	assert.Equal(t, 4, b.Enemies[0].Status(StatusPoison))
	require.Len(t, logger.EventsOfType(log.EventStatusTick), 1)

	_, err = b.RunTurn()
	require.NoError(t, err)
	assert.Equal(t, 91, b.Enemies[0].HP)
	assert.Equal(t, 3, b.Enemies[0].Status(StatusPoison))
}

func TestRunTurn_BingoEffectsOfMembers(t *testing.T) {
	spark := &CardDef{
		ID: "spark", Name: "Spark", Element: ElementFire,
		SingleEffects: []Effect{Block{Value: 1}},
		BingoEffects:  []Effect{Attack{Target: TargetFront, Value: 3}},
	}
	b, _ := newTestBattle(t, repeat(spark, 16), oneEnemy(300, 1000), alwaysAttack)

	_, err := b.RunTurn()
	require.NoError(t, err)
	// Ten lines, four members each.
	assert.Equal(t, 1000-10*4*3, b.Enemies[0].HP)
}

func TestRunTurn_HarmonyBingos(t *testing.T) {
	b, _ := newTestBattle(t, nil, oneEnemy(300, 1000), alwaysAttack)
	b.Pool.Stack(gridDefs(t, "FEWN", "FEWN", "FEWN", "FEWN")...)

	res, err := b.RunTurn()
	require.NoError(t, err)
	assert.Len(t, res.Bingos, 10)
	assert.Equal(t, 6, b.HarmonyBingos)
	assert.LessOrEqual(t, b.Enemies[0].HP, 1000-6*harmonyDamage)
	assert.Equal(t, 48, b.Pool.Total())
}

func TestRunTurn_Defeat(t *testing.T) {
	b, logger := newTestBattle(t, repeat(BasicCard(ElementEarth), 16), oneEnemy(10, 100), alwaysAttack)

	res, err := b.RunTurn()
	require.NoError(t, err)
	assert.False(t, res.GameOver)
	assert.Equal(t, 2, b.Player.HP)

	res, err = b.RunTurn()
	require.NoError(t, err)
	assert.True(t, res.GameOver)
	assert.False(t, res.Victory)
	assert.False(t, b.Player.IsAlive)
	assert.Len(t, logger.EventsOfType(log.EventDefeat), 1)
	assert.Equal(t, PhaseBattleEnded, b.Phase())
}

func TestRunTurn_TurnLimit(t *testing.T) {
	b, logger := newTestBattle(t, repeat(BasicCard(ElementEarth), 16), oneEnemy(300, 100), func(c *BattleConfig) {
		c.IntentWeights = IntentWeights{Defend: 1}
		c.MaxTurns = 2
	})

	res, err := b.RunTurn()
	require.NoError(t, err)
	require.False(t, res.GameOver)
	res, err = b.RunTurn()
	require.NoError(t, err)
	assert.True(t, res.GameOver)
	assert.False(t, res.Victory)
	assert.NotEmpty(t, logger.EventsOfType(log.EventWarning))
}

func TestRunTurn_PoolExhaustedEndsBattle(t *testing.T) {
	diag, hook := logtest.NewNullLogger()
	b, _ := newTestBattle(t, repeat(BasicCard(ElementEarth), 2), oneEnemy(300, 100), func(c *BattleConfig) {
		c.Diag = diag
	})
	for _, c := range append([]*CardInstance(nil), b.Pool.Deck...) {
		require.True(t, b.Pool.RemoveCard(c.InstanceID))
	}

	res, err := b.RunTurn()
	assert.ErrorIs(t, err, ErrPoolExhausted)
	require.NotNil(t, res)
	assert.True(t, res.GameOver)
	assert.Equal(t, PhaseBattleEnded, b.Phase())
	assert.Contains(t, eventTypes(res.Events), log.EventWarning)

	var messages []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			messages = append(messages, e.Message)
		}
	}
	assert.Equal(t, []string{"battle aborted"}, messages, "the state machine reached its end state cleanly")
}

func TestPauseResume(t *testing.T) {
	b, _ := newTestBattle(t, nil, DefaultRoster())

	assert.ErrorIs(t, b.Resume(), ErrNotPaused)
	assert.ErrorIs(t, b.UpdateUnitStat("player", "hp", 1), ErrNotPaused)

	require.NoError(t, b.Pause())
	require.NoError(t, b.Pause(), "pausing twice is harmless")
	_, err := b.RunTurn()
	assert.ErrorIs(t, err, ErrPaused)

	assert.ErrorIs(t, b.UpdateUnitStat("enemy:9", "hp", 1), ErrUnknownUnit)
	assert.ErrorIs(t, b.UpdateUnitStat("player", "luck", 1), ErrUnknownStat)
	assert.ErrorIs(t, b.UpdateUnitStat("player", "status:sleepy", 1), ErrUnknownStat)

	require.NoError(t, b.UpdateUnitStat("player", "base_attack", 7))
	require.NoError(t, b.UpdateUnitStat("enemy 2", "SwordBonus", 3))
	assert.Equal(t, 7, b.Player.BaseAttack)
	assert.Equal(t, 3, b.Enemies[1].SwordBonus)

	require.NoError(t, b.Resume())
	_, err = b.RunTurn()
	assert.NoError(t, err)
}

func TestUpdateUnitStat_HPClampsAndKills(t *testing.T) {
	b, logger := newTestBattle(t, repeat(BasicCard(ElementEarth), 16), oneEnemy(300, 100), alwaysAttack)
	require.NoError(t, b.Pause())

	require.NoError(t, b.UpdateUnitStat("player", "hp", 999))
	assert.Equal(t, 300, b.Player.HP)
	require.NoError(t, b.UpdateUnitStat("enemy1", "hp", 0))
	assert.False(t, b.Enemies[0].IsAlive)
	assert.Len(t, logger.EventsOfType(log.EventStatEdit), 2)

	require.NoError(t, b.Resume())
	res, err := b.RunTurn()
	require.NoError(t, err)
	assert.True(t, res.Victory)
}

func TestRestartResetsEverything(t *testing.T) {
	b, _ := newTestBattle(t, repeat(strike(7), 16), oneEnemy(300, 100), alwaysAttack)
	_, err := b.RunTurn()
	require.NoError(t, err)
	require.True(t, b.GameOver)

	require.NoError(t, b.StartBattle(oneEnemy(300, 100)))
	assert.False(t, b.GameOver)
	assert.False(t, b.Victory)
	assert.Equal(t, 0, b.Turn)
	assert.Equal(t, 0, b.TotalBingos)
	assert.Equal(t, 16, b.Pool.DeckCount())
	assert.Equal(t, 0, b.Pool.DiscardCount())

	res, err := b.RunTurn()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Turn)
}

func TestConservationOverBattle(t *testing.T) {
	b, _ := newTestBattle(t, nil, DefaultRoster())
	for i := 0; i < 10 && !b.GameOver; i++ {
		_, err := b.RunTurn()
		require.NoError(t, err)
		assert.Equal(t, 32, b.Pool.Total())
		assert.Equal(t, 0, b.Pool.GridCount())
	}
}

func TestSameSeedSameBattle(t *testing.T) {
	run := func() string {
		b, logger := newTestBattle(t, nil, DefaultRoster())
		for i := 0; i < 6 && !b.GameOver; i++ {
			_, err := b.RunTurn()
			require.NoError(t, err)
		}
		return log.FormatAll(logger.Events())
	}
	assert.Equal(t, run(), run())
}

func TestRelics(t *testing.T) {
	b, _ := newTestBattle(t, nil, DefaultRoster(), func(c *BattleConfig) {
		c.Relics = []string{RelicOldSword}
	})
	assert.Equal(t, oldSwordBonus, b.Player.SwordBonus)
	assert.Equal(t, []string{RelicOldSword}, b.Relics())

	on, err := b.ToggleRelic(RelicFireBoost)
	require.NoError(t, err)
	assert.True(t, on)
	_, err = b.ToggleRelic("cursed_ring")
	assert.Error(t, err)
}

func TestFireBoostAddsBonusHits(t *testing.T) {
	b, _ := newTestBattle(t, repeat(strike(0), 16), oneEnemy(300, 100), alwaysAttack, func(c *BattleConfig) {
		c.Relics = []string{RelicFireBoost}
	})

	_, err := b.RunTurn()
	require.NoError(t, err)
	assert.Equal(t, 100-10*fireBoostDamage, b.Enemies[0].HP)
}

func TestSnapshotBeforeFirstTurn(t *testing.T) {
	b, _ := newTestBattle(t, nil, DefaultRoster())
	s := b.Snapshot()
	assert.True(t, s.Started)
	assert.Equal(t, 0, s.Turn)
	assert.Empty(t, s.Grid)
	assert.Len(t, s.Enemies, 3)
	assert.Equal(t, 32, s.DeckCount)

	b.Player.AddStatus(StatusThorns, 2)
	b.Player.Statuses[StatusWeak] = 0
	assert.Equal(t, map[StatusKind]int{StatusThorns: 2}, b.Snapshot().Player.Statuses)
}
