package net

// Message types for the JSON protocol over TCP. The web server carries the
// same messages in websocket text frames.

// Client → server message types.
const (
	MsgRunTurn  = "run_turn"
	MsgSnapshot = "snapshot"
	MsgSetStat  = "set_stat"
	MsgPause    = "pause"
	MsgResume   = "resume"
	MsgRestart  = "restart"
	MsgRelic    = "relic"
)

// Server → client message types.
const (
	MsgWelcome  = "welcome"
	MsgTurn     = "turn"
	MsgState    = "state"
	MsgError    = "error"
	MsgGameOver = "game_over"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type     string `json:"type"`
	BattleID string `json:"battle_id,omitempty"`

	// For "turn"
	Turn *TurnView `json:"turn,omitempty"`

	// For "welcome", "state", "turn" and "game_over"
	State *SnapshotView `json:"state,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`

	// For "game_over"
	Victory bool   `json:"victory,omitempty"`
	Result  string `json:"result,omitempty"`
}

// EventView is a game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Actor   string `json:"actor,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// UnitView is one unit's visible state.
type UnitView struct {
	Name          string         `json:"name"`
	HP            int            `json:"hp"`
	MaxHP         int            `json:"max_hp"`
	Block         int            `json:"block"`
	BaseAttack    int            `json:"base_attack"`
	BaseDefense   int            `json:"base_defense"`
	BaseShield    int            `json:"base_shield"`
	AttackBuffs   int            `json:"attack_buffs"`
	AttackDebuffs int            `json:"attack_debuffs"`
	SwordBonus    int            `json:"sword_bonus"`
	ShieldBonus   int            `json:"shield_bonus"`
	Intent        string         `json:"intent,omitempty"`
	Alive         bool           `json:"alive"`
	Statuses      map[string]int `json:"statuses,omitempty"`
}

// CardView describes a grid card.
type CardView struct {
	Index      int    `json:"index"`
	InstanceID string `json:"instance_id"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	Element    string `json:"element"`
	Upgraded   bool   `json:"upgraded,omitempty"`
}

// BingoView is one completed line.
type BingoView struct {
	Kind    string   `json:"kind"`
	Element string   `json:"element,omitempty"`
	Line    string   `json:"line"`
	Indices []int    `json:"indices"`
	Members []string `json:"members"`
}

// SnapshotView is the whole battle as the client sees it.
type SnapshotView struct {
	Turn          int         `json:"turn"`
	Phase         string      `json:"phase"`
	Paused        bool        `json:"paused"`
	GameOver      bool        `json:"game_over"`
	Victory       bool        `json:"victory"`
	Player        UnitView    `json:"player"`
	Enemies       []UnitView  `json:"enemies"`
	Grid          []CardView  `json:"grid,omitempty"`
	DeckCount     int         `json:"deck_count"`
	DiscardCount  int         `json:"discard_count"`
	TotalBingos   int         `json:"total_bingos"`
	HarmonyBingos int         `json:"harmony_bingos"`
	LastBingos    []BingoView `json:"last_bingos,omitempty"`
	Relics        []string    `json:"relics,omitempty"`
}

// TurnView is the outcome of one RunTurn.
type TurnView struct {
	Turn     int         `json:"turn"`
	Events   []EventView `json:"events"`
	Bingos   []BingoView `json:"bingos,omitempty"`
	GameOver bool        `json:"game_over"`
	Victory  bool        `json:"victory"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "set_stat"
	Unit  string `json:"unit,omitempty"`
	Field string `json:"field,omitempty"`
	Value int    `json:"value,omitempty"`

	// For "relic"
	Relic string `json:"relic,omitempty"`
}
