package game

// Unit is a combatant: the player's golem or one of the enemies.
type Unit struct {
	Name  string
	MaxHP int
	HP    int
	Block int

	BaseAttack  int
	BaseDefense int
	BaseShield  int

	AttackBuffs   int
	AttackDebuffs int
	SwordBonus    int
	ShieldBonus   int

	TotalDamageThisTurn int
	Intent              Intent
	IsAlive             bool

	Statuses map[StatusKind]int

	deathLogged bool
}

// NewUnit creates a living unit at full HP.
func NewUnit(name string, maxHP int) *Unit {
	return &Unit{
		Name:     name,
		MaxHP:    maxHP,
		HP:       maxHP,
		IsAlive:  maxHP > 0,
		Statuses: make(map[StatusKind]int),
	}
}

// Status returns the current stack count of a status.
func (u *Unit) Status(kind StatusKind) int {
	return u.Statuses[kind]
}

// TakeDamage applies a hit and returns the HP actually lost.
//
// Order: Vulnerable (×1.5, floored), Thorns reflection onto source, block,
// then HP. The reflected hit carries no source, so reflection never bounces
// more than once.
func (u *Unit) TakeDamage(amount int, source *Unit, ignoreBlock bool) int {
	if !u.IsAlive || amount <= 0 {
		return 0
	}

	if u.Statuses[StatusVulnerable] > 0 {
		amount = amount * 3 / 2
	}

	if thorns := u.Statuses[StatusThorns]; thorns > 0 && source != nil && source != u && source.IsAlive {
		source.TakeDamage(thorns, nil, false)
	}

	remaining := amount
	if !ignoreBlock && u.Block > 0 {
		if u.Block >= remaining {
			u.Block -= remaining
			remaining = 0
		} else {
			remaining -= u.Block
			u.Block = 0
		}
	}

	return u.LoseHP(remaining)
}

// LoseHP removes HP directly, bypassing block and Vulnerable. Used by
// damage-over-time statuses and self-inflicted costs.
func (u *Unit) LoseHP(amount int) int {
	if !u.IsAlive || amount <= 0 {
		return 0
	}
	if amount > u.HP {
		amount = u.HP
	}
	u.HP -= amount
	if u.HP == 0 {
		u.IsAlive = false
	}
	return amount
}

// Heal restores HP up to MaxHP and returns the amount restored.
func (u *Unit) Heal(amount int) int {
	if !u.IsAlive || amount <= 0 {
		return 0
	}
	old := u.HP
	u.HP += amount
	if u.HP > u.MaxHP {
		u.HP = u.MaxHP
	}
	return u.HP - old
}

// AddBlock adds block with no upper cap and returns the amount added.
func (u *Unit) AddBlock(amount int) int {
	if !u.IsAlive || amount <= 0 {
		return 0
	}
	u.Block += amount
	return amount
}

// AddStatus accumulates stacks. Returns the new stack count.
func (u *Unit) AddStatus(kind StatusKind, value int) int {
	if !u.IsAlive {
		return 0
	}
	if u.Statuses == nil {
		u.Statuses = make(map[StatusKind]int)
	}
	u.Statuses[kind] += value
	if u.Statuses[kind] < 0 {
		u.Statuses[kind] = 0
	}
	return u.Statuses[kind]
}

// ResetTurnStats clears block and the per-turn damage counter.
func (u *Unit) ResetTurnStats() {
	u.Block = 0
	u.TotalDamageThisTurn = 0
}

// Kill sets HP to zero.
func (u *Unit) Kill() {
	if !u.IsAlive {
		return
	}
	u.HP = 0
	u.IsAlive = false
}

// AttackPower is the player's outgoing damage for basic attacks.
func (u *Unit) AttackPower() int {
	return u.BaseAttack + u.SwordBonus + u.AttackBuffs
}

// ShieldPower is the player's block for basic defence.
func (u *Unit) ShieldPower() int {
	return u.BaseShield + u.ShieldBonus
}

// EnemyAttack is the damage an enemy deals on an Attack intent:
// base attack minus debuffs (floor 0), then the Weak penalty.
func (u *Unit) EnemyAttack() int {
	dmg := u.BaseAttack - u.AttackDebuffs
	if dmg < 0 {
		dmg = 0
	}
	return applyWeak(u, dmg)
}

func (u *Unit) MissingHP() int {
	return u.MaxHP - u.HP
}

// DebuffCount is the number of distinct debuff kinds currently applied.
func (u *Unit) DebuffCount() int {
	n := 0
	for kind, stacks := range u.Statuses {
		if stacks > 0 && kind.IsDebuff() {
			n++
		}
	}
	return n
}

// syncAlive re-derives IsAlive after a direct stat edit.
func (u *Unit) syncAlive() {
	if u.HP < 0 {
		u.HP = 0
	}
	if u.HP > u.MaxHP {
		u.HP = u.MaxHP
	}
	if u.Block < 0 {
		u.Block = 0
	}
	u.IsAlive = u.HP > 0
	if u.IsAlive {
		u.deathLogged = false
	}
}

// applyWeak reduces outgoing damage by 25% (floored) while the attacker is Weak.
func applyWeak(attacker *Unit, amount int) int {
	if attacker != nil && attacker.Statuses[StatusWeak] > 0 {
		return amount * 3 / 4
	}
	return amount
}

func aliveUnits(units []*Unit) []*Unit {
	var out []*Unit
	for _, u := range units {
		if u.IsAlive {
			out = append(out, u)
		}
	}
	return out
}
