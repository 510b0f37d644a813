package game

import (
	"fmt"

	"github.com/peterkuimelis/bingox/internal/log"
)

const (
	harmonyDamage = 10
	harmonyBlock  = 10
)

// bingoBonus applies the fixed per-kind reward for a completed line.
// Harmony: damage to every enemy plus block. Fire: base attack ×2 to a
// random enemy. Earth: base shield ×2 block. Water: heal MaxHP/10.
// Wind: one attack buff.
func (b *Battle) bingoBonus(res BingoResult) []Outcome {
	player := b.Player
	bonus := func(format string, args ...interface{}) Outcome {
		return Outcome{Type: log.EventBingoBonus, Actor: player.Name, Text: fmt.Sprintf(format, args...)}
	}
	ec := &EffectContext{Actor: player, Enemies: b.Enemies, Pool: b.Pool, Origin: NoOrigin, Bingo: &res}

	if res.Kind == BingoHarmony {
		for _, e := range aliveUnits(b.Enemies) {
			player.TotalDamageThisTurn += e.TakeDamage(harmonyDamage, nil, false)
		}
		player.AddBlock(harmonyBlock)
		return []Outcome{bonus("Harmony: %d damage to every enemy, +%d block", harmonyDamage, harmonyBlock)}
	}

	switch res.Element {
	case ElementFire:
		dmg := player.BaseAttack * 2
		out := b.interp.resolveBonusHit(ec, dmg)
		if b.relics.Active(RelicFireBoost) {
			out = append(out, b.interp.resolveBonusHit(ec, fireBoostDamage)...)
		}
		return out
	case ElementEarth:
		blk := player.AddBlock(player.BaseShield * 2)
		return []Outcome{bonus("Earth: +%d block", blk)}
	case ElementWater:
		healed := player.Heal(player.MaxHP / 10)
		return []Outcome{bonus("Water: +%d HP", healed)}
	case ElementWind:
		player.AttackBuffs++
		return []Outcome{bonus("Wind: attack buff (%d)", player.AttackBuffs)}
	}
	return nil
}

// resolveBonusHit deals a fixed bonus hit to a random enemy.
func (in *Interpreter) resolveBonusHit(ec *EffectContext, dmg int) []Outcome {
	target := in.randomAlive(ec.Enemies)
	if target == nil {
		return noTarget(ec, "bingo bonus")
	}
	taken := target.TakeDamage(dmg, nil, false)
	ec.Actor.TotalDamageThisTurn += taken
	return []Outcome{{
		Type:  log.EventBingoBonus,
		Actor: ec.Actor.Name,
		Text:  fmt.Sprintf("bonus hit on %s for %d (%d HP lost)", target.Name, dmg, taken),
	}}
}
