package game

import (
	"fmt"
	"sort"
	"strings"
)

// Relic is a passive battle modifier that can be toggled per battle.
type Relic struct {
	ID          string
	Name        string
	Description string
}

const (
	RelicFireBoost = "fire_boost"
	RelicOldSword  = "old_sword"
)

// Relics lists every known relic by id.
var Relics = map[string]Relic{
	RelicFireBoost: {
		ID:          RelicFireBoost,
		Name:        "Essence of Flame",
		Description: "Fire bingos deal 5 extra damage to a random enemy",
	},
	RelicOldSword: {
		ID:          RelicOldSword,
		Name:        "Old Sword",
		Description: "Start each battle with +10 sword bonus",
	},
}

const (
	fireBoostDamage = 5
	oldSwordBonus   = 10
)

// RelicSet tracks which relics are active.
type RelicSet map[string]bool

// NewRelicSet activates the given relic ids. Unknown ids are reported.
func NewRelicSet(ids []string) (RelicSet, error) {
	rs := make(RelicSet)
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if _, ok := Relics[id]; !ok {
			return nil, fmt.Errorf("unknown relic %q", id)
		}
		rs[id] = true
	}
	return rs, nil
}

func (rs RelicSet) Active(id string) bool {
	return rs[id]
}

// Toggle flips a relic and reports the new state. Unknown ids are ignored.
func (rs RelicSet) Toggle(id string) (bool, bool) {
	if _, ok := Relics[id]; !ok {
		return false, false
	}
	rs[id] = !rs[id]
	return rs[id], true
}

// ActiveIDs returns the active relic ids, sorted.
func (rs RelicSet) ActiveIDs() []string {
	var ids []string
	for id, on := range rs {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
