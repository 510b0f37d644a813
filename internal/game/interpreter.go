package game

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/bingox/internal/log"
)

// Outcome is one observable result of resolving an effect.
type Outcome struct {
	Type  log.EventType
	Actor string
	Text  string
}

// EffectContext is everything an effect can read or mutate.
type EffectContext struct {
	Actor    *Unit
	Enemies  []*Unit
	Pool     *Pool
	Card     *CardInstance // triggering card, may be nil
	Origin   int           // triggering card's grid slot, or NoOrigin
	Previous *CardInstance // card activated just before this one
	Bingo    *BingoResult  // set while resolving bingo effects

	lastTarget *Unit
	retriggers int
}

// Interpreter resolves effect descriptors against a context. It never
// fails: missing targets and unknown keys become outcomes.
type Interpreter struct {
	rng  RNG
	diag logrus.FieldLogger
}

func NewInterpreter(rng RNG, diag logrus.FieldLogger) *Interpreter {
	if diag == nil {
		diag = log.Discard()
	}
	return &Interpreter{rng: rng, diag: diag}
}

// ResolveAll resolves effects in order.
func (in *Interpreter) ResolveAll(effects []Effect, ec *EffectContext) []Outcome {
	var out []Outcome
	for _, e := range effects {
		out = append(out, in.Resolve(e, ec)...)
	}
	return out
}

// Resolve applies one effect.
func (in *Interpreter) Resolve(e Effect, ec *EffectContext) []Outcome {
	if ec.Actor == nil || !ec.Actor.IsAlive {
		return nil
	}
	switch eff := e.(type) {
	case Attack:
		return in.resolveAttack(eff, ec)
	case Block:
		return in.resolveBlock(eff, ec)
	case Heal:
		return in.resolveHeal(eff, ec)
	case Buff:
		return in.resolveBuff(eff, ec)
	case Debuff:
		return in.resolveDebuff(eff, ec)
	case Special:
		return in.resolveSpecial(eff, ec)
	case Conditional:
		return in.resolveConditional(eff, ec)
	case GridManipulation:
		return in.resolveGrid(eff, ec)
	case UnknownEffect:
		return in.warn(ec, "unknown effect type %q", eff.Type)
	case nil:
		return in.warn(ec, "empty effect")
	default:
		return in.warn(ec, "unsupported effect %T", e)
	}
}

func (in *Interpreter) warn(ec *EffectContext, format string, args ...interface{}) []Outcome {
	msg := fmt.Sprintf(format, args...)
	fields := logrus.Fields{}
	if ec.Card != nil {
		fields["card"] = ec.Card.Name()
		fields["instance"] = ec.Card.InstanceID
	}
	in.diag.WithFields(fields).Warn(msg)
	return []Outcome{{Type: log.EventWarning, Actor: ec.Actor.Name, Text: msg}}
}

func noTarget(ec *EffectContext, what string) []Outcome {
	return []Outcome{{Type: log.EventNoTarget, Actor: ec.Actor.Name, Text: fmt.Sprintf("%s: no target", what)}}
}

// upgraded scales Attack, Block and Heal values of upgraded cards by 1.5.
func upgraded(ec *EffectContext, v int) int {
	if ec.Card != nil && ec.Card.Upgraded {
		return v * 3 / 2
	}
	return v
}

// --- Targeting ---

func (in *Interpreter) randomAlive(units []*Unit) *Unit {
	alive := aliveUnits(units)
	if len(alive) == 0 {
		return nil
	}
	return alive[in.rng.Intn(len(alive))]
}

// resolveTargets returns the units an effect applies to. known is false for
// an unrecognised selector.
func (in *Interpreter) resolveTargets(t Target, def Target, ec *EffectContext) (units []*Unit, known bool) {
	if t == TargetDefault {
		t = def
	}
	switch Target(strings.ToLower(string(t))) {
	case "self":
		return []*Unit{ec.Actor}, true
	case "randomenemy", "random":
		if u := in.randomAlive(ec.Enemies); u != nil {
			return []*Unit{u}, true
		}
		return nil, true
	case "front":
		for _, u := range ec.Enemies {
			if u.IsAlive {
				return []*Unit{u}, true
			}
		}
		return nil, true
	case "allenemies", "all":
		return aliveUnits(ec.Enemies), true
	case "lasttarget":
		if ec.lastTarget != nil && ec.lastTarget.IsAlive {
			return []*Unit{ec.lastTarget}, true
		}
		return in.resolveTargets(TargetRandomEnemy, def, ec)
	case "burnedenemy":
		var burned []*Unit
		for _, u := range aliveUnits(ec.Enemies) {
			if u.Status(StatusBurn) > 0 {
				burned = append(burned, u)
			}
		}
		if len(burned) == 0 {
			return nil, true
		}
		return []*Unit{burned[in.rng.Intn(len(burned))]}, true
	}
	return nil, false
}

// --- Attack / Block / Heal ---

func (in *Interpreter) resolveAttack(eff Attack, ec *EffectContext) []Outcome {
	targets, known := in.resolveTargets(eff.Target, TargetRandomEnemy, ec)
	if !known {
		return in.warn(ec, "unknown attack target %q", eff.Target)
	}
	if len(targets) == 0 {
		return noTarget(ec, "attack")
	}

	base := upgraded(ec, eff.Value+eff.Scale*ec.Actor.AttackPower())
	var out []Outcome
	for _, t := range targets {
		out = append(out, in.hit(ec, t, base, eff.IgnoreBlock)...)
	}
	return out
}

// hit is the single-target attack primitive: Weak on the attacker, Oil
// against Fire cards, then the target's own damage pipeline.
func (in *Interpreter) hit(ec *EffectContext, target *Unit, amount int, ignoreBlock bool) []Outcome {
	dmg := applyWeak(ec.Actor, amount)
	if target.Status(StatusOil) > 0 && ec.Card != nil && ec.Card.Element == ElementFire {
		dmg *= 2
	}
	taken := target.TakeDamage(dmg, ec.Actor, ignoreBlock)
	ec.Actor.TotalDamageThisTurn += taken
	ec.lastTarget = target

	return []Outcome{{
		Type:  log.EventDamage,
		Actor: ec.Actor.Name,
		Text:  fmt.Sprintf("%s hits %s for %d (%d HP lost)", ec.Actor.Name, target.Name, dmg, taken),
	}}
}

func (in *Interpreter) resolveBlock(eff Block, ec *EffectContext) []Outcome {
	amount := upgraded(ec, eff.Value+eff.Scale*ec.Actor.ShieldPower())
	added := ec.Actor.AddBlock(amount)
	return []Outcome{{
		Type:  log.EventBlock,
		Actor: ec.Actor.Name,
		Text:  fmt.Sprintf("%s gains %d block (%d total)", ec.Actor.Name, added, ec.Actor.Block),
	}}
}

func (in *Interpreter) resolveHeal(eff Heal, ec *EffectContext) []Outcome {
	amount := eff.Value
	if eff.MaxHPDivisor > 0 {
		amount += ec.Actor.MaxHP / eff.MaxHPDivisor
	}
	healed := ec.Actor.Heal(upgraded(ec, amount))
	return []Outcome{{
		Type:  log.EventHeal,
		Actor: ec.Actor.Name,
		Text:  fmt.Sprintf("%s heals %d (%d/%d)", ec.Actor.Name, healed, ec.Actor.HP, ec.Actor.MaxHP),
	}}
}

// --- Buff / Debuff ---

func (in *Interpreter) resolveBuff(eff Buff, ec *EffectContext) []Outcome {
	targets, known := in.resolveTargets(eff.Target, TargetSelf, ec)
	if !known {
		return in.warn(ec, "unknown buff target %q", eff.Target)
	}
	if len(targets) == 0 {
		return noTarget(ec, "buff")
	}

	var out []Outcome
	for _, t := range targets {
		var text string
		switch strings.ToLower(eff.Subtype) {
		case "", "attack":
			t.AttackBuffs++
			text = fmt.Sprintf("%s gains an attack buff (%d)", t.Name, t.AttackBuffs)
		case "thorns":
			n := t.AddStatus(StatusThorns, eff.Value)
			text = fmt.Sprintf("%s gains %d thorns (%d)", t.Name, eff.Value, n)
		case "shield":
			t.ShieldBonus += eff.Value
			text = fmt.Sprintf("%s gains %d shield bonus (%d)", t.Name, eff.Value, t.ShieldBonus)
		case "sword":
			t.SwordBonus += eff.Value
			text = fmt.Sprintf("%s gains %d sword bonus (%d)", t.Name, eff.Value, t.SwordBonus)
		default:
			return in.warn(ec, "unknown buff subtype %q", eff.Subtype)
		}
		out = append(out, Outcome{Type: log.EventBuff, Actor: ec.Actor.Name, Text: text})
	}
	return out
}

func (in *Interpreter) resolveDebuff(eff Debuff, ec *EffectContext) []Outcome {
	targets, known := in.resolveTargets(eff.Target, TargetRandomEnemy, ec)
	if !known {
		return in.warn(ec, "unknown debuff target %q", eff.Target)
	}

	var kind StatusKind
	isStatus := false
	if !strings.EqualFold(eff.Subtype, DebuffAttack) {
		k, ok := ParseStatus(eff.Subtype)
		if !ok || k == StatusThorns {
			return in.warn(ec, "unknown debuff subtype %q", eff.Subtype)
		}
		kind, isStatus = k, true
	}
	if len(targets) == 0 {
		return noTarget(ec, "debuff")
	}

	var out []Outcome
	for _, t := range targets {
		ec.lastTarget = t
		var text string
		if isStatus {
			n := t.AddStatus(kind, eff.Value)
			text = fmt.Sprintf("%s gains %d %s (%d)", t.Name, eff.Value, strings.ToLower(kind.String()), n)
		} else {
			v := eff.Value
			if v <= 0 {
				v = 1
			}
			t.AttackDebuffs += v
			text = fmt.Sprintf("%s attack debuffed (%d)", t.Name, t.AttackDebuffs)
		}
		out = append(out, Outcome{Type: log.EventDebuff, Actor: ec.Actor.Name, Text: text})
	}
	return out
}

// --- Special ---

func (in *Interpreter) resolveSpecial(eff Special, ec *EffectContext) []Outcome {
	special := func(format string, args ...interface{}) []Outcome {
		return []Outcome{{Type: log.EventSpecial, Actor: ec.Actor.Name, Text: fmt.Sprintf(format, args...)}}
	}

	switch strings.ToLower(eff.Subtype) {
	case "lifesteal":
		healed := ec.Actor.Heal(ec.Actor.TotalDamageThisTurn * eff.Value / 100)
		return special("%s drains %d HP", ec.Actor.Name, healed)

	case "catalyst":
		targets, known := in.resolveTargets(eff.Target, TargetRandomEnemy, ec)
		if !known {
			return in.warn(ec, "unknown catalyst target %q", eff.Target)
		}
		if len(targets) == 0 {
			return noTarget(ec, "catalyst")
		}
		var out []Outcome
		for _, t := range targets {
			for _, k := range []StatusKind{StatusPoison, StatusBurn} {
				if n := t.Status(k); n > 0 {
					t.Statuses[k] = n * eff.Value
				}
			}
			out = append(out, special("catalyst on %s: poison %d, burn %d", t.Name, t.Status(StatusPoison), t.Status(StatusBurn))...)
		}
		return out

	case "breakblock":
		targets, known := in.resolveTargets(eff.Target, TargetRandomEnemy, ec)
		if !known {
			return in.warn(ec, "unknown break target %q", eff.Target)
		}
		if len(targets) == 0 {
			return noTarget(ec, "break block")
		}
		var out []Outcome
		for _, t := range targets {
			t.Block = 0
			ec.lastTarget = t
			out = append(out, special("%s's block is shattered", t.Name)...)
		}
		return out

	case "execute":
		targets, known := in.resolveTargets(eff.Target, TargetAllEnemies, ec)
		if !known {
			return in.warn(ec, "unknown execute target %q", eff.Target)
		}
		var out []Outcome
		for _, t := range targets {
			if t.Status(StatusBurn) >= eff.Value {
				t.Kill()
				out = append(out, special("%s is executed (burn %d)", t.Name, t.Status(StatusBurn))...)
			}
		}
		if len(out) == 0 {
			return noTarget(ec, "execute")
		}
		return out

	case "selfdamage":
		lost := ec.Actor.LoseHP(ec.Actor.MaxHP * eff.Value / 100)
		return special("%s pays %d HP", ec.Actor.Name, lost)

	case "retrigger":
		if ec.Card == nil || ec.retriggers > 0 {
			return special("retrigger fizzles")
		}
		ec.retriggers++
		out := special("%s triggers again", ec.Card.Name())
		out = append(out, in.ResolveAll(ec.Card.singleEffects(), ec)...)
		ec.retriggers--
		return out

	case "gust":
		limit := eff.Value
		if limit <= 0 {
			limit = 2
		}
		if in.rng.Intn(2) == 0 {
			if ec.Actor.AttackBuffs < limit {
				ec.Actor.AttackBuffs++
			}
			return []Outcome{{Type: log.EventBuff, Actor: ec.Actor.Name, Text: fmt.Sprintf("%s gains an attack buff (%d)", ec.Actor.Name, ec.Actor.AttackBuffs)}}
		}
		t := in.randomAlive(ec.Enemies)
		if t == nil {
			return noTarget(ec, "gust")
		}
		if t.AttackDebuffs < limit {
			t.AttackDebuffs++
		}
		return []Outcome{{Type: log.EventDebuff, Actor: ec.Actor.Name, Text: fmt.Sprintf("%s attack debuffed (%d)", t.Name, t.AttackDebuffs)}}
	}
	return in.warn(ec, "unknown special subtype %q", eff.Subtype)
}

// --- Conditional ---

func (in *Interpreter) resolveConditional(eff Conditional, ec *EffectContext) []Outcome {
	actual, ok := in.conditionStat(eff.Condition, ec)
	if !ok {
		return in.warn(ec, "unknown condition stat %q", eff.Condition.Stat)
	}
	pass, ok := compare(actual, eff.Condition.Op, eff.Condition.Value)
	if !ok {
		return in.warn(ec, "unknown condition operator %q", eff.Condition.Op)
	}
	if !pass {
		return nil
	}
	return in.Resolve(eff.Effect, ec)
}

func (in *Interpreter) conditionStat(c Condition, ec *EffectContext) (int, bool) {
	switch strings.ToLower(c.Stat) {
	case "sameelementcount":
		if ec.Card == nil || ec.Pool == nil {
			return 0, true
		}
		n := 0
		for _, g := range ec.Pool.Grid {
			if g != ec.Card && g.Element == ec.Card.Element {
				n++
			}
		}
		return n, true
	case "enemycount":
		return len(aliveUnits(ec.Enemies)), true
	case "debuffcount":
		ref := ec.Actor
		if strings.EqualFold(string(c.Ref), string(TargetFront)) {
			ref = nil
			for _, u := range ec.Enemies {
				if u.IsAlive {
					ref = u
					break
				}
			}
		}
		if ref == nil {
			return 0, true
		}
		return ref.DebuffCount(), true
	case "missinghp":
		return ec.Actor.MissingHP(), true
	case "previoussameelement":
		if ec.Card != nil && ec.Previous != nil && ec.Previous.Element == ec.Card.Element {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func compare(a int, op string, b int) (bool, bool) {
	switch strings.TrimSpace(op) {
	case ">=":
		return a >= b, true
	case "<=":
		return a <= b, true
	case ">":
		return a > b, true
	case "<":
		return a < b, true
	case "==", "=":
		return a == b, true
	}
	return false, false
}

// --- Grid manipulation ---

func (in *Interpreter) resolveGrid(eff GridManipulation, ec *EffectContext) []Outcome {
	if ec.Pool == nil {
		return in.warn(ec, "grid effect without a grid")
	}

	var out []Outcome
	indices, err := ec.Pool.SelectTargets(eff.Target, eff.Count, eff.Filter, ec.Origin)
	if err != nil {
		out = append(out, in.warn(ec, "%v", err)...)
		if len(indices) == 0 {
			return out
		}
	}
	if len(indices) == 0 {
		return append(out, noTarget(ec, strings.ToLower(eff.Action))...)
	}

	change := func(format string, args ...interface{}) {
		out = append(out, Outcome{Type: log.EventGridChange, Actor: ec.Actor.Name, Text: fmt.Sprintf(format, args...)})
	}

	switch strings.ToLower(eff.Action) {
	case "transform":
		var to Element
		if strings.EqualFold(eff.ToType, OriginElement) {
			if ec.Card == nil || !ec.Pool.validIndex(ec.Origin) {
				return append(out, noTarget(ec, "transform to origin")...)
			}
			to = ec.Card.Element
		} else {
			e, ok := ParseElement(eff.ToType)
			if !ok {
				return append(out, in.warn(ec, "unknown transform element %q", eff.ToType)...)
			}
			to = e
		}
		var changed []int
		for _, i := range indices {
			if ec.Pool.TransformCard(i, to) {
				changed = append(changed, i+1)
			}
		}
		change("slots %v become %s", changed, to)

	case "swap":
		if !ec.Pool.validIndex(ec.Origin) {
			return append(out, noTarget(ec, "swap without origin")...)
		}
		if ec.Pool.Swap(ec.Origin, indices[0]) {
			change("slot %d swaps with slot %d", ec.Origin+1, indices[0]+1)
		}

	case "replace":
		for _, i := range indices {
			c, err := ec.Pool.ReplaceCard(i)
			if err != nil {
				out = append(out, in.warn(ec, "replace slot %d: %v", i+1, err)...)
				continue
			}
			if c != nil {
				change("slot %d replaced by %s", i+1, c)
			}
		}

	case "upgrade":
		var changed []int
		for _, i := range indices {
			if ec.Pool.UpgradeCard(i) {
				changed = append(changed, i+1)
			}
		}
		change("slots %v upgraded", changed)

	default:
		return append(out, in.warn(ec, "unknown grid action %q", eff.Action)...)
	}
	return out
}
