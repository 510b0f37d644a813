package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peterkuimelis/bingox/internal/log"
)

// UnitState is a read-only copy of a unit.
type UnitState struct {
	Name                string
	HP                  int
	MaxHP               int
	Block               int
	BaseAttack          int
	BaseDefense         int
	BaseShield          int
	AttackBuffs         int
	AttackDebuffs       int
	SwordBonus          int
	ShieldBonus         int
	TotalDamageThisTurn int
	Intent              Intent
	IsAlive             bool
	Statuses            map[StatusKind]int
}

// CardState is a read-only copy of a grid card.
type CardState struct {
	Index      int
	InstanceID string
	DefID      string
	Name       string
	Element    Element
	Upgraded   bool
}

// Snapshot is a read-only view of a battle for rendering.
type Snapshot struct {
	Turn          int
	Phase         Phase
	Started       bool
	Paused        bool
	GameOver      bool
	Victory       bool
	Player        UnitState
	Enemies       []UnitState
	Grid          []CardState
	DeckCount     int
	DiscardCount  int
	TotalBingos   int
	HarmonyBingos int
	LastBingos    []BingoResult
	Relics        []string
}

func (u *Unit) State() UnitState {
	st := UnitState{
		Name:                u.Name,
		HP:                  u.HP,
		MaxHP:               u.MaxHP,
		Block:               u.Block,
		BaseAttack:          u.BaseAttack,
		BaseDefense:         u.BaseDefense,
		BaseShield:          u.BaseShield,
		AttackBuffs:         u.AttackBuffs,
		AttackDebuffs:       u.AttackDebuffs,
		SwordBonus:          u.SwordBonus,
		ShieldBonus:         u.ShieldBonus,
		TotalDamageThisTurn: u.TotalDamageThisTurn,
		Intent:              u.Intent,
		IsAlive:             u.IsAlive,
		Statuses:            make(map[StatusKind]int),
	}
	for k, v := range u.Statuses {
		if v > 0 {
			st.Statuses[k] = v
		}
	}
	return st
}

// Snapshot copies the battle state. The grid is the live grid during a
// turn and the last discarded grid is not retained.
func (b *Battle) Snapshot() Snapshot {
	s := Snapshot{
		Turn:          b.Turn,
		Phase:         b.phase,
		Started:       b.started,
		Paused:        b.Paused,
		GameOver:      b.GameOver,
		Victory:       b.Victory,
		DeckCount:     b.Pool.DeckCount(),
		DiscardCount:  b.Pool.DiscardCount(),
		TotalBingos:   b.TotalBingos,
		HarmonyBingos: b.HarmonyBingos,
		LastBingos:    append([]BingoResult(nil), b.LastBingos...),
		Relics:        b.relics.ActiveIDs(),
	}
	if b.Player != nil {
		s.Player = b.Player.State()
	}
	for _, e := range b.Enemies {
		s.Enemies = append(s.Enemies, e.State())
	}
	for i, c := range b.Pool.Grid {
		cs := CardState{Index: i, InstanceID: c.InstanceID, Name: c.Name(), Element: c.Element, Upgraded: c.Upgraded}
		if c.Def != nil {
			cs.DefID = c.Def.ID
		}
		s.Grid = append(s.Grid, cs)
	}
	return s
}

// LookupUnit resolves "player", "enemy:N" / "enemyN" (1-based) or a unit
// name, case-insensitively.
func (b *Battle) LookupUnit(ref string) (*Unit, error) {
	if b.Player == nil {
		return nil, ErrNotStarted
	}
	r := strings.ToLower(strings.TrimSpace(ref))
	if r == "player" || strings.EqualFold(ref, b.Player.Name) {
		return b.Player, nil
	}
	if rest, ok := strings.CutPrefix(r, "enemy"); ok {
		rest = strings.TrimLeft(rest, ": #")
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= len(b.Enemies) {
			return b.Enemies[n-1], nil
		}
	}
	for _, e := range b.Enemies {
		if strings.EqualFold(ref, e.Name) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, ref)
}

// StatFields lists the fields UpdateUnitStat accepts besides status:<kind>.
var StatFields = []string{
	"hp", "max_hp", "block", "base_attack", "base_defense", "base_shield",
	"attack_buffs", "attack_debuffs", "sword_bonus", "shield_bonus",
}

// UpdateUnitStat overrides one field of a unit. It is refused while a
// battle is running unpaused.
func (b *Battle) UpdateUnitStat(ref string, field string, value int) error {
	if b.started && !b.Paused && !b.GameOver {
		return ErrNotPaused
	}
	u, err := b.LookupUnit(ref)
	if err != nil {
		return err
	}

	f := strings.ToLower(strings.TrimSpace(field))
	switch f {
	case "hp":
		u.HP = value
	case "max_hp", "maxhp":
		u.MaxHP = value
	case "block":
		u.Block = value
	case "base_attack", "baseattack":
		u.BaseAttack = value
	case "base_defense", "basedefense":
		u.BaseDefense = value
	case "base_shield", "baseshield":
		u.BaseShield = value
	case "attack_buffs", "attackbuffs":
		u.AttackBuffs = value
	case "attack_debuffs", "attackdebuffs":
		u.AttackDebuffs = value
	case "sword_bonus", "swordbonus":
		u.SwordBonus = value
	case "shield_bonus", "shieldbonus":
		u.ShieldBonus = value
	default:
		name, ok := strings.CutPrefix(f, "status:")
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownStat, field)
		}
		kind, ok := ParseStatus(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownStat, field)
		}
		if value < 0 {
			value = 0
		}
		u.Statuses[kind] = value
	}
	u.syncAlive()
	b.emit(log.NewStatEditEvent(b.Turn, u.Name, f, value))
	return nil
}
