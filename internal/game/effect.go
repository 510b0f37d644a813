package game

import "fmt"

// EffectKind identifies an effect descriptor variant.
type EffectKind int

const (
	EffectUnknown EffectKind = iota
	EffectAttack
	EffectBlock
	EffectHeal
	EffectBuff
	EffectDebuff
	EffectSpecial
	EffectConditional
	EffectGrid
)

func (k EffectKind) String() string {
	switch k {
	case EffectAttack:
		return "Attack"
	case EffectBlock:
		return "Block"
	case EffectHeal:
		return "Heal"
	case EffectBuff:
		return "Buff"
	case EffectDebuff:
		return "Debuff"
	case EffectSpecial:
		return "Special"
	case EffectConditional:
		return "Conditional"
	case EffectGrid:
		return "GridManipulation"
	default:
		return "Unknown"
	}
}

// Effect is a card effect descriptor. The set of implementations is closed:
// the interpreter switches on the concrete type and treats anything else as
// unknown.
type Effect interface {
	Kind() EffectKind
}

// Target selects units for an effect.
type Target string

const (
	TargetDefault     Target = ""
	TargetSelf        Target = "Self"
	TargetRandomEnemy Target = "RandomEnemy"
	TargetFront       Target = "Front"
	TargetAllEnemies  Target = "AllEnemies"
	TargetLast        Target = "LastTarget"
	TargetBurned      Target = "BurnedEnemy"
)

// Attack deals Value plus Scale times the actor's attack power.
type Attack struct {
	Target      Target
	Value       int
	Scale       int
	IgnoreBlock bool
}

// Block grants Value plus Scale times the actor's shield power.
type Block struct {
	Value int
	Scale int
}

// Heal restores Value plus MaxHP/MaxHPDivisor when the divisor is set.
type Heal struct {
	Value        int
	MaxHPDivisor int
}

// Buff subtypes.
const (
	BuffAttack = "Attack"
	BuffThorns = "Thorns"
	BuffShield = "Shield"
	BuffSword  = "Sword"
)

type Buff struct {
	Target  Target
	Subtype string
	Value   int
}

// Debuff subtypes are status names, plus "Attack" for attack debuffs.
const DebuffAttack = "Attack"

type Debuff struct {
	Target  Target
	Subtype string
	Value   int
}

// Special subtypes.
const (
	SpecialLifesteal  = "Lifesteal"
	SpecialCatalyst   = "Catalyst"
	SpecialBreakBlock = "BreakBlock"
	SpecialExecute    = "Execute"
	SpecialSelfDamage = "SelfDamage"
	SpecialRetrigger  = "Retrigger"
	SpecialGust       = "Gust"
)

type Special struct {
	Subtype string
	Value   int
	Target  Target
}

// Condition stats.
const (
	StatSameElementCount    = "SameElementCount"
	StatEnemyCount          = "EnemyCount"
	StatDebuffCount         = "DebuffCount"
	StatMissingHP           = "MissingHp"
	StatPreviousSameElement = "PreviousSameElement"
)

// Condition compares a named stat against Value. Ref names the unit
// inspected by DebuffCount ("Self" or "Front").
type Condition struct {
	Stat  string
	Op    string
	Value int
	Ref   Target
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %d", c.Stat, c.Op, c.Value)
}

type Conditional struct {
	Condition Condition
	Effect    Effect
}

// Grid actions.
const (
	GridTransform = "Transform"
	GridSwap      = "Swap"
	GridReplace   = "Replace"
	GridUpgrade   = "Upgrade"
)

// OriginElement as ToType copies the triggering card's element.
const OriginElement = "Origin"

type GridManipulation struct {
	Action string
	Target Selector
	Count  int
	ToType string
	Filter GridFilter
}

// UnknownEffect preserves a descriptor whose type was not recognised.
type UnknownEffect struct {
	Type string
}

func (Attack) Kind() EffectKind           { return EffectAttack }
func (Block) Kind() EffectKind            { return EffectBlock }
func (Heal) Kind() EffectKind             { return EffectHeal }
func (Buff) Kind() EffectKind             { return EffectBuff }
func (Debuff) Kind() EffectKind           { return EffectDebuff }
func (Special) Kind() EffectKind          { return EffectSpecial }
func (Conditional) Kind() EffectKind      { return EffectConditional }
func (GridManipulation) Kind() EffectKind { return EffectGrid }
func (UnknownEffect) Kind() EffectKind    { return EffectUnknown }

// basicEffects is what a card without its own single effects does,
// keyed by its current element.
func basicEffects(e Element) []Effect {
	switch e {
	case ElementFire:
		return []Effect{Attack{Target: TargetRandomEnemy, Scale: 1}}
	case ElementEarth:
		return []Effect{Block{Scale: 1}}
	case ElementWater:
		return []Effect{Heal{MaxHPDivisor: 8}}
	case ElementWind:
		return []Effect{Special{Subtype: SpecialGust, Value: 2}}
	default:
		return nil
	}
}
