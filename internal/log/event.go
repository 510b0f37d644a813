package log

// EventType enumerates all observable battle events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventIntent
	EventShuffle
	EventReshuffle
	EventRegenerate
	EventGridDraw
	EventActivate
	EventDamage
	EventBlock
	EventHeal
	EventBuff
	EventDebuff
	EventSpecial
	EventGridChange
	EventNoTarget
	EventWarning
	EventBingo
	EventBingoBonus
	EventDiscard
	EventEnemyAction
	EventStatusTick
	EventStatusExpired
	EventDeath
	EventVictory
	EventDefeat
	EventPause
	EventResume
	EventStatEdit
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventIntent:
		return "Intent"
	case EventShuffle:
		return "Shuffle"
	case EventReshuffle:
		return "Reshuffle"
	case EventRegenerate:
		return "Regenerate"
	case EventGridDraw:
		return "GridDraw"
	case EventActivate:
		return "Activate"
	case EventDamage:
		return "Damage"
	case EventBlock:
		return "Block"
	case EventHeal:
		return "Heal"
	case EventBuff:
		return "Buff"
	case EventDebuff:
		return "Debuff"
	case EventSpecial:
		return "Special"
	case EventGridChange:
		return "GridChange"
	case EventNoTarget:
		return "NoTarget"
	case EventWarning:
		return "Warning"
	case EventBingo:
		return "Bingo"
	case EventBingoBonus:
		return "BingoBonus"
	case EventDiscard:
		return "Discard"
	case EventEnemyAction:
		return "EnemyAction"
	case EventStatusTick:
		return "StatusTick"
	case EventStatusExpired:
		return "StatusExpired"
	case EventDeath:
		return "Death"
	case EventVictory:
		return "Victory"
	case EventDefeat:
		return "Defeat"
	case EventPause:
		return "Pause"
	case EventResume:
		return "Resume"
	case EventStatEdit:
		return "StatEdit"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a battle.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based, 0 before the first turn)
	Phase   string    // current phase name (e.g. "Card Activation")
	Actor   string    // acting unit name (if applicable)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
