package game

import (
	"fmt"
	"sort"
	"strings"
)

// CardRegistry maps card ids to their constructor functions.
var CardRegistry = map[string]func() *CardDef{
	"basic-Fire":  func() *CardDef { return BasicCard(ElementFire) },
	"basic-Earth": func() *CardDef { return BasicCard(ElementEarth) },
	"basic-Water": func() *CardDef { return BasicCard(ElementWater) },
	"basic-Wind":  func() *CardDef { return BasicCard(ElementWind) },
	"ember":       Ember,
	"oil-barrel":  OilBarrel,
	"fireball":    Fireball,
	"chain-blast": ChainBlast,
	"lava-armor":  LavaArmor,
	"phoenix":     Phoenix,
	"supernova":   Supernova,
	"pyromaniac":  Pyromaniac,
	"flame-whip":  FlameWhip,
	"magma":       Magma,
}

// LookupCard finds a registered card by id, name or element and returns a
// fresh definition.
func LookupCard(ref string) (*CardDef, error) {
	if ctor, ok := CardRegistry[ref]; ok {
		return ctor(), nil
	}
	if e, ok := ParseElement(ref); ok {
		return BasicCard(e), nil
	}
	for _, id := range RegistryIDs() {
		def := CardRegistry[id]()
		if strings.EqualFold(def.Name, ref) || strings.EqualFold(id, ref) {
			return def, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCard, ref)
}

// RegistryIDs returns the registered ids in sorted order.
func RegistryIDs() []string {
	ids := make([]string, 0, len(CardRegistry))
	for id := range CardRegistry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// --- Fire set ---

func Ember() *CardDef {
	return &CardDef{
		ID: "ember", Name: "Ember", Element: ElementFire, Grade: "Common",
		Description:      "Deal 5 damage and apply 2 burn",
		BingoDescription: "Ignite: 5 extra damage to a burning enemy",
		SingleEffects: []Effect{
			Attack{Target: TargetRandomEnemy, Value: 5},
			Debuff{Target: TargetLast, Subtype: "Burn", Value: 2},
		},
		BingoEffects: []Effect{
			Attack{Target: TargetBurned, Value: 5},
		},
	}
}

func OilBarrel() *CardDef {
	return &CardDef{
		ID: "oil-barrel", Name: "Oil Barrel", Element: ElementFire, Grade: "Common",
		Description:      "Oil an enemy for 2 turns (fire damage ×2)",
		BingoDescription: "Spread: 5 damage to every enemy",
		SingleEffects: []Effect{
			Debuff{Target: TargetRandomEnemy, Subtype: "Oil", Value: 2},
		},
		BingoEffects: []Effect{
			Attack{Target: TargetAllEnemies, Value: 5},
		},
	}
}

func Fireball() *CardDef {
	return &CardDef{
		ID: "fireball", Name: "Fireball", Element: ElementFire, Grade: "Common",
		Description:      "Deal 12 damage",
		BingoDescription: "Explode: 6 splash damage",
		SingleEffects: []Effect{
			Attack{Target: TargetRandomEnemy, Value: 12},
		},
		BingoEffects: []Effect{
			Attack{Target: TargetRandomEnemy, Value: 6},
		},
	}
}

func ChainBlast() *CardDef {
	return &CardDef{
		ID: "chain-blast", Name: "Chain Blast", Element: ElementFire, Grade: "Uncommon",
		Description:      "Deal 8 damage, twice if the previous card was Fire",
		BingoDescription: "Detonate: trigger this card again",
		SingleEffects: []Effect{
			Attack{Target: TargetRandomEnemy, Value: 8},
			Conditional{
				Condition: Condition{Stat: StatPreviousSameElement, Op: ">=", Value: 1},
				Effect:    Attack{Target: TargetRandomEnemy, Value: 8},
			},
		},
		BingoEffects: []Effect{
			Special{Subtype: SpecialRetrigger},
		},
	}
}

func LavaArmor() *CardDef {
	return &CardDef{
		ID: "lava-armor", Name: "Lava Armor", Element: ElementFire, Grade: "Uncommon",
		Description:      "Gain 5 thorns",
		BingoDescription: "Melt: shatter an enemy's block and make it vulnerable",
		SingleEffects: []Effect{
			Buff{Target: TargetSelf, Subtype: BuffThorns, Value: 5},
		},
		BingoEffects: []Effect{
			Special{Subtype: SpecialBreakBlock, Target: TargetRandomEnemy},
			Debuff{Target: TargetLast, Subtype: "Vulnerable", Value: 1},
		},
	}
}

func Phoenix() *CardDef {
	return &CardDef{
		ID: "phoenix", Name: "Phoenix", Element: ElementFire, Grade: "Rare",
		Description:      "Pay 10% max HP, deal 500% attack power",
		BingoDescription: "Rebirth: heal 20",
		SingleEffects: []Effect{
			Special{Subtype: SpecialSelfDamage, Value: 10},
			Attack{Target: TargetRandomEnemy, Scale: 5},
		},
		BingoEffects: []Effect{
			Heal{Value: 20},
		},
	}
}

func Supernova() *CardDef {
	return &CardDef{
		ID: "supernova", Name: "Supernova", Element: ElementFire, Grade: "Legendary",
		Description:      "Deal 30 damage to every enemy",
		BingoDescription: "Big bang: 20 extra damage",
		SingleEffects: []Effect{
			Attack{Target: TargetAllEnemies, Value: 30},
		},
		BingoEffects: []Effect{
			Attack{Target: TargetRandomEnemy, Value: 20},
		},
	}
}

func Pyromaniac() *CardDef {
	return &CardDef{
		ID: "pyromaniac", Name: "Pyromaniac", Element: ElementFire, Grade: "Uncommon",
		Description:      "Apply 2 burn to a random enemy",
		BingoDescription: "Frenzy: execute enemies with 10 or more burn",
		SingleEffects: []Effect{
			Debuff{Target: TargetRandomEnemy, Subtype: "Burn", Value: 2},
		},
		BingoEffects: []Effect{
			Special{Subtype: SpecialExecute, Value: 10, Target: TargetAllEnemies},
		},
	}
}

func FlameWhip() *CardDef {
	return &CardDef{
		ID: "flame-whip", Name: "Flame Whip", Element: ElementFire, Grade: "Common",
		Description:      "Deal 10 damage to the front enemy",
		BingoDescription: "Lash: hit the front enemy again",
		SingleEffects: []Effect{
			Attack{Target: TargetFront, Value: 10},
		},
		BingoEffects: []Effect{
			Attack{Target: TargetFront, Value: 10},
		},
	}
}

func Magma() *CardDef {
	return &CardDef{
		ID: "magma", Name: "Magma", Element: ElementFire, Grade: "Rare",
		Description:      "Turn 2 random grid cards into Fire",
		BingoDescription: "Eruption: 10 damage",
		SingleEffects: []Effect{
			GridManipulation{Action: GridTransform, Target: SelectRandom, Count: 2, ToType: "Fire", Filter: FilterDiffType},
		},
		BingoEffects: []Effect{
			Attack{Target: TargetRandomEnemy, Value: 10},
		},
	}
}
