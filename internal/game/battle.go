package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/bingox/internal/log"
)

// IntentWeights are the relative odds of each enemy intent.
type IntentWeights struct {
	Attack int
	Defend int
	Buff   int
}

var DefaultIntentWeights = IntentWeights{Attack: 60, Defend: 20, Buff: 20}

// UnitSpec describes a unit at battle start.
type UnitSpec struct {
	Name        string
	MaxHP       int
	BaseAttack  int
	BaseDefense int
	BaseShield  int
}

// Roster is the set of units a battle starts with.
type Roster struct {
	Player  UnitSpec
	Enemies []UnitSpec
}

// DefaultRoster is the golem against three minions.
func DefaultRoster() Roster {
	r := Roster{Player: UnitSpec{Name: "Golem", MaxHP: 300, BaseAttack: 2, BaseShield: 2}}
	for i := 1; i <= 3; i++ {
		r.Enemies = append(r.Enemies, UnitSpec{Name: fmt.Sprintf("Minion %d", i), MaxHP: 100, BaseAttack: 8, BaseDefense: 8})
	}
	return r
}

// BattleConfig configures a Battle. Zero values pick defaults.
type BattleConfig struct {
	// Composition lists one definition per physical card. Nil selects the
	// default 32-card pool; an empty non-nil slice is rejected.
	Composition   []*CardDef
	Seed          int64
	RNG           RNG // overrides Seed
	Logger        log.EventLogger
	Diag          logrus.FieldLogger
	IntentWeights IntentWeights
	Relics        []string
	MaxTurns      int // 0 = unlimited
}

// TurnResult is everything one RunTurn produced.
type TurnResult struct {
	Turn     int
	Events   []log.GameEvent
	Logs     []string
	Bingos   []BingoResult
	GameOver bool
	Victory  bool
}

// Battle sequences turns. It is not safe for concurrent use; callers that
// share a battle hold their own lock.
type Battle struct {
	Player  *Unit
	Enemies []*Unit
	Pool    *Pool

	Turn          int
	Paused        bool
	GameOver      bool
	Victory       bool
	TotalBingos   int
	HarmonyBingos int
	LastBingos    []BingoResult

	cfg     BattleConfig
	rng     RNG
	logger  log.EventLogger
	diag    logrus.FieldLogger
	interp  *Interpreter
	relics  RelicSet
	machine *fsm.FSM
	started bool
	phase   Phase
	seq     int
	events  []log.GameEvent
}

// FSM events.
const (
	evStart    = "start"
	evIntents  = "intents"
	evDraw     = "draw"
	evActivate = "activate"
	evCheck    = "check"
	evResolve  = "resolve"
	evDiscard  = "discard"
	evEnemy    = "enemy"
	evTick     = "tick"
	evJudge    = "judge"
	evEnd      = "end"
)

var phaseByName = func() map[string]Phase {
	m := make(map[string]Phase)
	for p := PhaseIdle; p <= PhaseBattleEnded; p++ {
		m[p.String()] = p
	}
	return m
}()

// NewBattle validates the configuration and builds the card pool. Units are
// created by StartBattle.
func NewBattle(cfg BattleConfig) (*Battle, error) {
	comp := cfg.Composition
	if comp == nil {
		comp = DefaultComposition()
	}
	if len(comp) == 0 {
		return nil, ErrEmptyPool
	}
	if cfg.IntentWeights.Attack+cfg.IntentWeights.Defend+cfg.IntentWeights.Buff <= 0 {
		cfg.IntentWeights = DefaultIntentWeights
	}
	relics, err := NewRelicSet(cfg.Relics)
	if err != nil {
		return nil, err
	}

	b := &Battle{
		cfg:    cfg,
		rng:    cfg.RNG,
		logger: cfg.Logger,
		diag:   cfg.Diag,
		relics: relics,
	}
	if b.rng == nil {
		b.rng = NewRNG(cfg.Seed)
	}
	if b.logger == nil {
		b.logger = log.NewMemoryLogger()
	}
	if b.diag == nil {
		b.diag = log.Discard()
	}
	b.interp = NewInterpreter(b.rng, b.diag)

	pool, err := NewPool(comp, b.rng)
	if err != nil {
		return nil, err
	}
	pool.DrainNotices()
	b.Pool = pool

	b.machine = fsm.NewFSM(
		PhaseIdle.String(),
		fsm.Events{
			{Name: evStart, Src: []string{PhaseIdle.String(), PhaseGameOverCheck.String()}, Dst: PhaseTurnStart.String()},
			{Name: evIntents, Src: []string{PhaseTurnStart.String()}, Dst: PhaseIntent.String()},
			{Name: evDraw, Src: []string{PhaseIntent.String()}, Dst: PhaseGridDraw.String()},
			{Name: evActivate, Src: []string{PhaseGridDraw.String()}, Dst: PhaseCardActivation.String()},
			{Name: evCheck, Src: []string{PhaseCardActivation.String()}, Dst: PhaseBingoCheck.String()},
			{Name: evResolve, Src: []string{PhaseBingoCheck.String()}, Dst: PhaseBingoResolution.String()},
			{Name: evDiscard, Src: []string{PhaseBingoResolution.String()}, Dst: PhaseDiscard.String()},
			{Name: evEnemy, Src: []string{PhaseDiscard.String()}, Dst: PhaseEnemyAction.String()},
			{Name: evTick, Src: []string{PhaseEnemyAction.String()}, Dst: PhaseStatusTick.String()},
			{Name: evJudge, Src: []string{PhaseStatusTick.String()}, Dst: PhaseGameOverCheck.String()},
			{Name: evEnd, Src: []string{PhaseGridDraw.String(), PhaseGameOverCheck.String()}, Dst: PhaseBattleEnded.String()},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				b.phase = phaseByName[e.Dst]
				b.diag.WithFields(logrus.Fields{"turn": b.Turn, "from": e.Src}).Debugf("phase %s", e.Dst)
			},
		},
	)
	return b, nil
}

// Phase returns the current turn phase.
func (b *Battle) Phase() Phase {
	return b.phase
}

func (b *Battle) Started() bool {
	return b.started
}

// Relics returns the active relic ids.
func (b *Battle) Relics() []string {
	return b.relics.ActiveIDs()
}

// ToggleRelic flips a relic. It takes effect from the next StartBattle for
// start-of-battle relics and immediately for the rest.
func (b *Battle) ToggleRelic(id string) (bool, error) {
	on, ok := b.relics.Toggle(id)
	if !ok {
		return false, fmt.Errorf("unknown relic %q", id)
	}
	return on, nil
}

// StartBattle creates the units, rebuilds the pool and resets all counters.
// Calling it again restarts the battle.
func (b *Battle) StartBattle(roster Roster) error {
	if len(roster.Enemies) == 0 {
		return ErrNoEnemies
	}
	if roster.Player.MaxHP <= 0 {
		return fmt.Errorf("player %q needs positive max HP", roster.Player.Name)
	}

	b.Player = newUnitFromSpec(roster.Player, "Player")
	if b.relics.Active(RelicOldSword) {
		b.Player.SwordBonus += oldSwordBonus
	}
	b.Enemies = nil
	for i, spec := range roster.Enemies {
		if spec.MaxHP <= 0 {
			return fmt.Errorf("enemy %d needs positive max HP", i+1)
		}
		b.Enemies = append(b.Enemies, newUnitFromSpec(spec, fmt.Sprintf("Enemy %d", i+1)))
	}

	b.Pool.Initialize()
	b.Turn = 0
	b.Paused = false
	b.GameOver = false
	b.Victory = false
	b.TotalBingos = 0
	b.HarmonyBingos = 0
	b.LastBingos = nil
	b.machine.SetState(PhaseIdle.String())
	b.phase = PhaseIdle
	b.started = true

	b.events = nil
	b.logNotices()
	b.diag.WithFields(logrus.Fields{
		"player":  b.Player.Name,
		"enemies": len(b.Enemies),
		"cards":   b.Pool.Total(),
		"relics":  strings.Join(b.relics.ActiveIDs(), ","),
	}).Info("battle started")
	return nil
}

func newUnitFromSpec(spec UnitSpec, fallback string) *Unit {
	name := spec.Name
	if name == "" {
		name = fallback
	}
	u := NewUnit(name, spec.MaxHP)
	u.BaseAttack = spec.BaseAttack
	u.BaseDefense = spec.BaseDefense
	u.BaseShield = spec.BaseShield
	return u
}

// Pause stops RunTurn until Resume. Stat edits are allowed while paused.
func (b *Battle) Pause() error {
	if !b.started {
		return ErrNotStarted
	}
	if b.GameOver {
		return ErrBattleOver
	}
	if !b.Paused {
		b.Paused = true
		b.emit(log.NewPauseEvent(b.Turn))
	}
	return nil
}

func (b *Battle) Resume() error {
	if !b.started {
		return ErrNotStarted
	}
	if !b.Paused {
		return ErrNotPaused
	}
	b.Paused = false
	b.emit(log.NewResumeEvent(b.Turn))
	return nil
}

// --- Event plumbing ---

func (b *Battle) emit(ev log.GameEvent) {
	b.seq++
	ev.Seq = b.seq
	b.logger.Log(ev)
	b.events = append(b.events, ev)
}

func (b *Battle) emitOutcomes(outs []Outcome, cardName string) {
	for _, o := range outs {
		b.emit(log.NewEffectEvent(b.Turn, b.phase.String(), o.Type, o.Actor, cardName, o.Text))
	}
	b.logDeaths()
}

func (b *Battle) logDeaths() {
	for _, u := range append([]*Unit{b.Player}, b.Enemies...) {
		if !u.IsAlive && !u.deathLogged {
			u.deathLogged = true
			b.emit(log.NewDeathEvent(b.Turn, b.phase.String(), u.Name))
		}
	}
}

func (b *Battle) logNotices() {
	for _, n := range b.Pool.DrainNotices() {
		switch n.Type {
		case log.EventShuffle:
			b.emit(log.NewShuffleEvent(b.Turn, b.phase.String(), n.Count))
		case log.EventReshuffle:
			b.emit(log.NewReshuffleEvent(b.Turn, b.phase.String(), n.Count))
		case log.EventRegenerate:
			b.emit(log.NewRegenerateEvent(b.Turn, b.phase.String(), n.Count))
			b.emit(log.NewWarningEvent(b.Turn, b.phase.String(), "card pool regenerated from its composition"))
			b.diag.WithField("cards", n.Count).Warn("deck and discard empty, pool regenerated")
		}
	}
}

func (b *Battle) advance(event string) error {
	if err := b.machine.Event(context.Background(), event); err != nil {
		return fmt.Errorf("turn %d: %s from %s: %w", b.Turn, event, b.machine.Current(), err)
	}
	return nil
}

// --- Turn ---

// RunTurn resolves exactly one turn.
func (b *Battle) RunTurn() (*TurnResult, error) {
	switch {
	case !b.started:
		return nil, ErrNotStarted
	case b.GameOver:
		return nil, ErrBattleOver
	case b.Paused:
		return nil, ErrPaused
	}

	b.events = nil
	b.Turn++
	b.LastBingos = nil

	steps := []struct {
		event string
		run   func() error
	}{
		{evStart, b.turnStart},
		{evIntents, b.assignIntents},
		{evDraw, b.drawGrid},
		{evActivate, b.activateCards},
		{evCheck, b.checkBingos},
		{evResolve, b.resolveBingos},
		{evDiscard, b.discardGrid},
		{evEnemy, b.enemyActions},
		{evTick, b.tickStatuses},
		{evJudge, b.judge},
	}
	for _, s := range steps {
		if err := b.advance(s.event); err != nil {
			return nil, err
		}
		if err := s.run(); err != nil {
			b.GameOver = true
			b.Victory = false
			if endErr := b.advance(evEnd); endErr != nil {
				b.diag.WithError(endErr).Error("could not end aborted battle")
			}
			b.diag.WithError(err).Error("battle aborted")
			return b.result(), err
		}
	}
	if b.GameOver {
		if err := b.advance(evEnd); err != nil {
			return nil, err
		}
	}
	return b.result(), nil
}

func (b *Battle) result() *TurnResult {
	res := &TurnResult{
		Turn:     b.Turn,
		Events:   b.events,
		Bingos:   b.LastBingos,
		GameOver: b.GameOver,
		Victory:  b.Victory,
	}
	for _, ev := range b.events {
		res.Logs = append(res.Logs, ev.Details)
	}
	return res
}

func (b *Battle) turnStart() error {
	b.emit(log.NewTurnEvent(b.Turn, b.phase.String()))
	b.Player.ResetTurnStats()
	for _, e := range b.Enemies {
		e.ResetTurnStats()
	}
	return nil
}

func (b *Battle) rollIntent() Intent {
	w := b.cfg.IntentWeights
	r := b.rng.Intn(w.Attack + w.Defend + w.Buff)
	switch {
	case r < w.Attack:
		return IntentAttack
	case r < w.Attack+w.Defend:
		return IntentDefend
	default:
		return IntentBuff
	}
}

func (b *Battle) assignIntents() error {
	for _, e := range b.Enemies {
		if !e.IsAlive {
			e.Intent = IntentNone
			continue
		}
		e.Intent = b.rollIntent()
		block := 0
		if e.Intent == IntentDefend {
			block = e.AddBlock(e.BaseDefense)
		}
		b.emit(log.NewIntentEvent(b.Turn, b.phase.String(), e.Name, e.Intent.String(), block))
	}
	return nil
}

func (b *Battle) drawGrid() error {
	grid, err := b.Pool.DrawGrid()
	b.logNotices()
	if err != nil {
		b.emit(log.NewWarningEvent(b.Turn, b.phase.String(), err.Error()))
		return fmt.Errorf("draw grid: %w", err)
	}
	b.emit(log.NewGridDrawEvent(b.Turn, b.phase.String(), len(grid), b.Pool.DeckCount()))
	return nil
}

// activateCards resolves single effects in slot order. A card is activated
// at most once per turn even if grid manipulation moves it. A card swapped
// into the current slot from further on fires in that slot; a card drawn
// into it by Replace does not fire this turn.
func (b *Battle) activateCards() error {
	activated := make(map[*CardInstance]bool)
	var prev *CardInstance
	for i := 0; i < len(b.Pool.Grid); i++ {
		if !b.Player.IsAlive {
			break
		}
		card := b.Pool.Grid[i]
		if activated[card] {
			continue
		}
		activated[card] = true
		before := make(map[*CardInstance]bool, len(b.Pool.Grid))
		for _, c := range b.Pool.Grid {
			before[c] = true
		}

		b.emit(log.NewActivateEvent(b.Turn, b.phase.String(), i, card.Name(), card.Element.String()))
		ec := &EffectContext{
			Actor:    b.Player,
			Enemies:  b.Enemies,
			Pool:     b.Pool,
			Card:     card,
			Origin:   i,
			Previous: prev,
		}
		b.emitOutcomes(b.interp.ResolveAll(card.singleEffects(), ec), card.Name())
		b.logNotices()
		prev = card

		switch now := b.Pool.Grid[i]; {
		case !before[now]:
			activated[now] = true
		case !activated[now]:
			i--
		}
	}
	return nil
}

func (b *Battle) checkBingos() error {
	b.LastBingos = CheckBingos(b.Pool.Grid)
	for _, res := range b.LastBingos {
		b.TotalBingos++
		if res.Kind == BingoHarmony {
			b.HarmonyBingos++
		}
		b.emit(log.NewBingoEvent(b.Turn, b.phase.String(), res.Label(), res.Line))
	}
	return nil
}

// resolveBingos applies each line's generic bonus, then the bingo effects
// of member cards whose element matches the line (any member for Harmony).
func (b *Battle) resolveBingos() error {
	for i := range b.LastBingos {
		res := b.LastBingos[i]
		b.emitOutcomes(b.bingoBonus(res), "")

		for n, idx := range res.Indices {
			if idx >= len(b.Pool.Grid) {
				continue
			}
			card := b.Pool.Grid[idx]
			if card.InstanceID != res.Members[n] {
				continue
			}
			if res.Kind != BingoHarmony && card.Element != res.Element {
				continue
			}
			effects := card.bingoEffects()
			if len(effects) == 0 {
				continue
			}
			ec := &EffectContext{
				Actor:   b.Player,
				Enemies: b.Enemies,
				Pool:    b.Pool,
				Card:    card,
				Origin:  idx,
				Bingo:   &res,
			}
			b.emitOutcomes(b.interp.ResolveAll(effects, ec), card.Name())
			b.logNotices()
		}
	}
	return nil
}

func (b *Battle) discardGrid() error {
	n := b.Pool.DiscardGrid()
	b.emit(log.NewDiscardEvent(b.Turn, b.phase.String(), n))
	return nil
}

const (
	enemyBuffAttack  = 2
	enemyBuffDefense = 2
)

func (b *Battle) enemyActions() error {
	for _, e := range b.Enemies {
		if !e.IsAlive || !b.Player.IsAlive {
			continue
		}
		switch e.Intent {
		case IntentAttack:
			dmg := e.EnemyAttack()
			taken := b.Player.TakeDamage(dmg, e, false)
			e.Block = 0
			b.emit(log.NewEnemyActionEvent(b.Turn, b.phase.String(), e.Name,
				fmt.Sprintf("%s attacks %s for %d (%d HP lost)", e.Name, b.Player.Name, dmg, taken)))
		case IntentBuff:
			e.BaseAttack += enemyBuffAttack
			e.BaseDefense += enemyBuffDefense
			b.emit(log.NewEnemyActionEvent(b.Turn, b.phase.String(), e.Name,
				fmt.Sprintf("%s grows stronger (+%d/+%d)", e.Name, enemyBuffAttack, enemyBuffDefense)))
		case IntentDefend:
			b.emit(log.NewEnemyActionEvent(b.Turn, b.phase.String(), e.Name,
				fmt.Sprintf("%s holds with %d block", e.Name, e.Block)))
		}
		b.logDeaths()
	}
	return nil
}

// tickStatuses runs damage-over-time and duration decay for living units.
// Poison and Burn lose HP equal to their stacks, ignoring block. Thorns
// does not decay.
func (b *Battle) tickStatuses() error {
	for _, u := range append([]*Unit{b.Player}, b.Enemies...) {
		for _, kind := range StatusKinds {
			if !u.IsAlive {
				break
			}
			stacks := u.Statuses[kind]
			if stacks <= 0 || kind == StatusThorns {
				continue
			}
			u.Statuses[kind] = stacks - 1
			if kind == StatusPoison || kind == StatusBurn {
				lost := u.LoseHP(stacks)
				b.emit(log.NewStatusTickEvent(b.Turn, b.phase.String(), u.Name, kind.String(), lost, stacks-1))
			}
			if stacks-1 == 0 {
				b.emit(log.NewStatusExpiredEvent(b.Turn, b.phase.String(), u.Name, kind.String()))
			}
		}
		b.logDeaths()
	}
	return nil
}

func (b *Battle) judge() error {
	switch {
	case !b.Player.IsAlive:
		b.GameOver = true
		b.emit(log.NewDefeatEvent(b.Turn, b.phase.String(), b.Player.Name))
	case len(aliveUnits(b.Enemies)) == 0:
		b.GameOver = true
		b.Victory = true
		b.emit(log.NewVictoryEvent(b.Turn, b.phase.String()))
	case b.cfg.MaxTurns > 0 && b.Turn >= b.cfg.MaxTurns:
		b.GameOver = true
		b.emit(log.NewWarningEvent(b.Turn, b.phase.String(), fmt.Sprintf("turn limit %d reached", b.cfg.MaxTurns)))
		b.emit(log.NewDefeatEvent(b.Turn, b.phase.String(), b.Player.Name))
	}
	if b.GameOver {
		b.diag.WithFields(logrus.Fields{"turn": b.Turn, "victory": b.Victory}).Info("battle over")
	}
	return nil
}
