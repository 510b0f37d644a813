package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- Enums ---

type Element int

const (
	ElementNone Element = iota
	ElementFire
	ElementEarth
	ElementWater
	ElementWind
)

// Elements lists the four playable elements in canonical order.
var Elements = []Element{ElementFire, ElementEarth, ElementWater, ElementWind}

func (e Element) String() string {
	switch e {
	case ElementFire:
		return "Fire"
	case ElementEarth:
		return "Earth"
	case ElementWater:
		return "Water"
	case ElementWind:
		return "Wind"
	default:
		return "None"
	}
}

var elementAliases = map[string]Element{
	"fire":  ElementFire,
	"earth": ElementEarth,
	"water": ElementWater,
	"wind":  ElementWind,
	"불":     ElementFire,
	"대지":    ElementEarth,
	"땅":     ElementEarth,
	"물":     ElementWater,
	"바람":    ElementWind,
}

// ParseElement accepts element names in any case, plus the Korean names
// used by the card sheets.
func ParseElement(s string) (Element, bool) {
	e, ok := elementAliases[strings.ToLower(strings.TrimSpace(s))]
	return e, ok
}

func (e *Element) UnmarshalYAML(node *yaml.Node) error {
	parsed, ok := ParseElement(node.Value)
	if !ok {
		return fmt.Errorf("line %d: unknown element %q", node.Line, node.Value)
	}
	*e = parsed
	return nil
}

func (e Element) MarshalYAML() (interface{}, error) {
	return e.String(), nil
}

func (e Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

type StatusKind int

const (
	StatusThorns StatusKind = iota
	StatusVulnerable
	StatusWeak
	StatusPoison
	StatusBurn
	StatusOil
)

// StatusKinds lists every status in display order.
var StatusKinds = []StatusKind{StatusThorns, StatusVulnerable, StatusWeak, StatusPoison, StatusBurn, StatusOil}

func (s StatusKind) String() string {
	switch s {
	case StatusThorns:
		return "Thorns"
	case StatusVulnerable:
		return "Vulnerable"
	case StatusWeak:
		return "Weak"
	case StatusPoison:
		return "Poison"
	case StatusBurn:
		return "Burn"
	case StatusOil:
		return "Oil"
	default:
		return "Unknown"
	}
}

// IsDebuff reports whether the status counts toward DebuffCount.
func (s StatusKind) IsDebuff() bool {
	return s != StatusThorns
}

// ParseStatus looks a status up by name, case-insensitively.
func ParseStatus(s string) (StatusKind, bool) {
	for _, k := range StatusKinds {
		if strings.EqualFold(k.String(), s) {
			return k, true
		}
	}
	return 0, false
}

type Intent int

const (
	IntentNone Intent = iota
	IntentAttack
	IntentDefend
	IntentBuff
)

func (i Intent) String() string {
	switch i {
	case IntentAttack:
		return "Attack"
	case IntentDefend:
		return "Defend"
	case IntentBuff:
		return "Buff"
	default:
		return "None"
	}
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTurnStart
	PhaseIntent
	PhaseGridDraw
	PhaseCardActivation
	PhaseBingoCheck
	PhaseBingoResolution
	PhaseDiscard
	PhaseEnemyAction
	PhaseStatusTick
	PhaseGameOverCheck
	PhaseBattleEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseTurnStart:
		return "Turn Start"
	case PhaseIntent:
		return "Intent"
	case PhaseGridDraw:
		return "Grid Draw"
	case PhaseCardActivation:
		return "Card Activation"
	case PhaseBingoCheck:
		return "Bingo Check"
	case PhaseBingoResolution:
		return "Bingo Resolution"
	case PhaseDiscard:
		return "Discard"
	case PhaseEnemyAction:
		return "Enemy Action"
	case PhaseStatusTick:
		return "Status Tick"
	case PhaseGameOverCheck:
		return "Game Over Check"
	case PhaseBattleEnded:
		return "Battle Ended"
	default:
		return "Idle"
	}
}

type BingoKind int

const (
	BingoElement BingoKind = iota
	BingoHarmony
)

func (k BingoKind) String() string {
	if k == BingoHarmony {
		return "Harmony"
	}
	return "Element"
}

// --- Grid geometry ---

const (
	GridSide = 4
	GridSize = GridSide * GridSide
)

// NoOrigin marks an effect that was not triggered from a grid slot.
const NoOrigin = -1

func gridRow(i int) int { return i / GridSide }
func gridCol(i int) int { return i % GridSide }

func gridIndex(row, col int) (int, bool) {
	if row < 0 || row >= GridSide || col < 0 || col >= GridSide {
		return 0, false
	}
	return row*GridSide + col, true
}
