package net

import (
	"github.com/peterkuimelis/bingox/internal/game"
	"github.com/peterkuimelis/bingox/internal/log"
)

// BuildSnapshotView converts a battle snapshot to its wire form.
func BuildSnapshotView(s game.Snapshot) *SnapshotView {
	sv := &SnapshotView{
		Turn:          s.Turn,
		Phase:         s.Phase.String(),
		Paused:        s.Paused,
		GameOver:      s.GameOver,
		Victory:       s.Victory,
		Player:        UnitStateView(s.Player),
		DeckCount:     s.DeckCount,
		DiscardCount:  s.DiscardCount,
		TotalBingos:   s.TotalBingos,
		HarmonyBingos: s.HarmonyBingos,
		LastBingos:    BingoViews(s.LastBingos),
		Relics:        s.Relics,
	}
	for _, e := range s.Enemies {
		sv.Enemies = append(sv.Enemies, UnitStateView(e))
	}
	for _, c := range s.Grid {
		sv.Grid = append(sv.Grid, CardView{
			Index:      c.Index,
			InstanceID: c.InstanceID,
			ID:         c.DefID,
			Name:       c.Name,
			Element:    c.Element.String(),
			Upgraded:   c.Upgraded,
		})
	}
	return sv
}

// UnitStateView converts one unit.
func UnitStateView(u game.UnitState) UnitView {
	uv := UnitView{
		Name:          u.Name,
		HP:            u.HP,
		MaxHP:         u.MaxHP,
		Block:         u.Block,
		BaseAttack:    u.BaseAttack,
		BaseDefense:   u.BaseDefense,
		BaseShield:    u.BaseShield,
		AttackBuffs:   u.AttackBuffs,
		AttackDebuffs: u.AttackDebuffs,
		SwordBonus:    u.SwordBonus,
		ShieldBonus:   u.ShieldBonus,
		Alive:         u.IsAlive,
	}
	if u.Intent != game.IntentNone {
		uv.Intent = u.Intent.String()
	}
	if len(u.Statuses) > 0 {
		uv.Statuses = make(map[string]int, len(u.Statuses))
		for k, v := range u.Statuses {
			uv.Statuses[k.String()] = v
		}
	}
	return uv
}

func BingoViews(results []game.BingoResult) []BingoView {
	var out []BingoView
	for _, r := range results {
		bv := BingoView{
			Kind:    r.Kind.String(),
			Line:    r.Line,
			Indices: append([]int(nil), r.Indices...),
			Members: append([]string(nil), r.Members...),
		}
		if r.Kind == game.BingoElement {
			bv.Element = r.Element.String()
		}
		out = append(out, bv)
	}
	return out
}

func EventViewOf(ev log.GameEvent) EventView {
	return EventView{
		Seq:     ev.Seq,
		Turn:    ev.Turn,
		Phase:   ev.Phase,
		Actor:   ev.Actor,
		Type:    ev.Type.String(),
		Card:    ev.Card,
		Details: ev.Details,
	}
}

// BuildTurnView converts a turn result.
func BuildTurnView(res *game.TurnResult) *TurnView {
	tv := &TurnView{
		Turn:     res.Turn,
		Events:   make([]EventView, 0, len(res.Events)),
		Bingos:   BingoViews(res.Bingos),
		GameOver: res.GameOver,
		Victory:  res.Victory,
	}
	for _, ev := range res.Events {
		tv.Events = append(tv.Events, EventViewOf(ev))
	}
	return tv
}
