package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTakeDamage_Block(t *testing.T) {
	tests := []struct {
		name      string
		amount    int
		wantHP    int
		wantBlock int
		wantLost  int
	}{
		{"fully absorbed", 6, 50, 4, 0},
		{"exactly absorbed", 10, 50, 0, 0},
		{"overflow", 15, 45, 0, 5},
		{"lethal", 100, 0, 0, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := unitWith("Golem", 50)
			u.Block = 10
			lost := u.TakeDamage(tt.amount, nil, false)
			assert.Equal(t, tt.wantLost, lost)
			assert.Equal(t, tt.wantHP, u.HP)
			assert.Equal(t, tt.wantBlock, u.Block)
			assert.Equal(t, tt.wantHP > 0, u.IsAlive)
		})
	}
}

func TestTakeDamage_IgnoreBlock(t *testing.T) {
	u := unitWith("Golem", 50)
	u.Block = 10
	assert.Equal(t, 7, u.TakeDamage(7, nil, true))
	assert.Equal(t, 43, u.HP)
	assert.Equal(t, 10, u.Block)
}

func TestTakeDamage_Vulnerable(t *testing.T) {
	u := unitWith("Minion", 100)
	u.AddStatus(StatusVulnerable, 1)
	assert.Equal(t, 15, u.TakeDamage(10, nil, false))
	assert.Equal(t, 85, u.HP)

	// 7 * 1.5 = 10.5, floored
	assert.Equal(t, 10, u.TakeDamage(7, nil, false))
}

func TestTakeDamage_ThornsReflectsStackCount(t *testing.T) {
	target := unitWith("Golem", 100)
	target.AddStatus(StatusThorns, 5)
	source := unitWith("Minion", 50)

	lost := target.TakeDamage(10, source, false)

	assert.Equal(t, 10, lost)
	assert.Equal(t, 90, target.HP)
	assert.Equal(t, 45, source.HP, "reflection is the thorns stack count")
}

func TestTakeDamage_ThornsReflectsBeforeBlock(t *testing.T) {
	target := unitWith("Golem", 100)
	target.AddStatus(StatusThorns, 3)
	target.Block = 20
	source := unitWith("Minion", 50)

	assert.Equal(t, 0, target.TakeDamage(10, source, false))
	assert.Equal(t, 10, target.Block)
	assert.Equal(t, 47, source.HP)
}

func TestTakeDamage_ThornsBouncesOnce(t *testing.T) {
	a := unitWith("A", 100)
	a.AddStatus(StatusThorns, 4)
	b := unitWith("B", 100)
	b.AddStatus(StatusThorns, 3)

	b.TakeDamage(10, a, false)

	assert.Equal(t, 90, b.HP)
	assert.Equal(t, 97, a.HP, "reflected hit must not reflect again")
}

func TestTakeDamage_NoReflectOntoDeadSource(t *testing.T) {
	target := unitWith("Golem", 100)
	target.AddStatus(StatusThorns, 5)
	source := unitWith("Minion", 50)
	source.Kill()

	target.TakeDamage(10, source, false)
	assert.Equal(t, 0, source.HP)
	assert.Equal(t, 90, target.HP)
}

func TestDeadUnitIsInert(t *testing.T) {
	u := unitWith("Minion", 10)
	u.TakeDamage(10, nil, false)
	assert.False(t, u.IsAlive)

	assert.Equal(t, 0, u.TakeDamage(5, nil, false))
	assert.Equal(t, 0, u.Heal(5))
	assert.Equal(t, 0, u.AddBlock(5))
	assert.Equal(t, 0, u.AddStatus(StatusPoison, 2))
	assert.Equal(t, 0, u.HP)
	assert.Equal(t, 0, u.Block)
}

func TestHealClampsToMax(t *testing.T) {
	u := unitWith("Golem", 100)
	u.HP = 95
	assert.Equal(t, 5, u.Heal(20))
	assert.Equal(t, 100, u.HP)
	assert.Equal(t, 0, u.Heal(20))
}

func TestAddStatusAccumulates(t *testing.T) {
	u := unitWith("Minion", 100)
	u.AddStatus(StatusPoison, 2)
	u.AddStatus(StatusPoison, 3)
	assert.Equal(t, 5, u.Status(StatusPoison))
	assert.Equal(t, 1, u.DebuffCount())

	u.AddStatus(StatusThorns, 1)
	u.AddStatus(StatusWeak, 1)
	assert.Equal(t, 2, u.DebuffCount(), "thorns is not a debuff")
}

func TestResetTurnStats(t *testing.T) {
	u := unitWith("Golem", 100)
	u.Block = 12
	u.TotalDamageThisTurn = 40
	u.AttackBuffs = 2
	u.ResetTurnStats()
	assert.Equal(t, 0, u.Block)
	assert.Equal(t, 0, u.TotalDamageThisTurn)
	assert.Equal(t, 2, u.AttackBuffs, "buffs persist across turns")
}

func TestPowers(t *testing.T) {
	g := unitWith("Golem", 300)
	g.BaseAttack, g.SwordBonus, g.AttackBuffs = 2, 10, 1
	g.BaseShield, g.ShieldBonus = 2, 3
	assert.Equal(t, 13, g.AttackPower())
	assert.Equal(t, 5, g.ShieldPower())

	m := unitWith("Minion", 100)
	m.BaseAttack = 8
	m.AttackDebuffs = 2
	assert.Equal(t, 6, m.EnemyAttack())
	m.AddStatus(StatusWeak, 1)
	assert.Equal(t, 4, m.EnemyAttack())
	m.AttackDebuffs = 20
	assert.Equal(t, 0, m.EnemyAttack())
}
