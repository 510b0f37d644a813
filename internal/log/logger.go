package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging battle events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 18 chars for alignment
	for len(phase) < 18 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d ===", turn),
	}
}

func NewIntentEvent(turn int, phase string, actor string, intent string, block int) GameEvent {
	details := fmt.Sprintf("%s intends to %s", actor, strings.ToLower(intent))
	if block > 0 {
		details += fmt.Sprintf(" (+%d block)", block)
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventIntent,
		Details: details,
	}
}

func NewShuffleEvent(turn int, phase string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventShuffle,
		Details: fmt.Sprintf("Deck shuffled (%d cards)", count),
	}
}

func NewReshuffleEvent(turn int, phase string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventReshuffle,
		Details: fmt.Sprintf("Deck empty: %d discarded cards shuffled back into the deck", count),
	}
}

func NewRegenerateEvent(turn int, phase string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventRegenerate,
		Details: fmt.Sprintf("Deck and discard empty: card pool regenerated (%d cards)", count),
	}
}

func NewGridDrawEvent(turn int, phase string, drawn int, deckLeft int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventGridDraw,
		Details: fmt.Sprintf("Drew %d cards onto the grid (%d left in deck)", drawn, deckLeft),
	}
}

func NewActivateEvent(turn int, phase string, index int, cardName string, element string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventActivate,
		Card:    cardName,
		Details: fmt.Sprintf("Slot %d activates %s (%s)", index+1, cardName, element),
	}
}

// NewEffectEvent records the outcome of one resolved effect.
func NewEffectEvent(turn int, phase string, t EventType, actor string, cardName string, details string) GameEvent {
	if cardName != "" {
		details = fmt.Sprintf("[%s] %s", cardName, details)
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    t,
		Card:    cardName,
		Details: details,
	}
}

func NewBingoEvent(turn int, phase string, kind string, line string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventBingo,
		Details: fmt.Sprintf("%s bingo on %s!", kind, line),
	}
}

func NewDiscardEvent(turn int, phase string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventDiscard,
		Details: fmt.Sprintf("%d grid cards moved to the discard pile", count),
	}
}

func NewEnemyActionEvent(turn int, phase string, actor string, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventEnemyAction,
		Details: details,
	}
}

func NewStatusTickEvent(turn int, phase string, actor string, status string, damage int, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventStatusTick,
		Details: fmt.Sprintf("%s suffers %d %s damage (%d stacks left)", actor, damage, strings.ToLower(status), remaining),
	}
}

func NewStatusExpiredEvent(turn int, phase string, actor string, status string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventStatusExpired,
		Details: fmt.Sprintf("%s is no longer %s", actor, strings.ToLower(status)),
	}
}

func NewDeathEvent(turn int, phase string, actor string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventDeath,
		Details: fmt.Sprintf("%s has died", actor),
	}
}

func NewVictoryEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventVictory,
		Details: "Victory! All enemies defeated",
	}
}

func NewDefeatEvent(turn int, phase string, actor string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   actor,
		Type:    EventDefeat,
		Details: fmt.Sprintf("Defeat! %s has fallen", actor),
	}
}

func NewWarningEvent(turn int, phase string, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventWarning,
		Details: "warning: " + details,
	}
}

func NewPauseEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventPause,
		Details: "Battle paused",
	}
}

func NewResumeEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventResume,
		Details: "Battle resumed",
	}
}

func NewStatEditEvent(turn int, actor string, field string, value int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Actor:   actor,
		Type:    EventStatEdit,
		Details: fmt.Sprintf("%s.%s set to %d", actor, field, value),
	}
}
