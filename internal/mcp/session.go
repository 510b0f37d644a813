package mcp

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/bingox/internal/config"
	"github.com/peterkuimelis/bingox/internal/log"
	bxnet "github.com/peterkuimelis/bingox/internal/net"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	BattleID string              `json:"battle_id"`
	Events   []bxnet.EventView   `json:"events"`
	Bingos   []bxnet.BingoView   `json:"bingos,omitempty"`
	State    *bxnet.SnapshotView `json:"state,omitempty"`
	GameOver bool                `json:"game_over"`
	Victory  bool                `json:"victory,omitempty"`
	Result   string              `json:"result,omitempty"`
}

// BattleSession is the single battle driven by one stdio MCP process.
// Commands go through the same controller the TCP and websocket servers use.
type BattleSession struct {
	ctrl *bxnet.Controller
}

// StartOptions override the base configuration for one battle.
type StartOptions struct {
	Seed   *int64
	Deck   string
	Relics []string
}

// NewBattleSession builds and starts a battle from base plus opts.
func NewBattleSession(base *config.Config, opts StartOptions, diag logrus.FieldLogger) (*BattleSession, error) {
	cfg := *base
	cfg.Relics = append([]string(nil), base.Relics...)
	cfg.Enemies = append([]config.UnitConfig(nil), base.Enemies...)
	if opts.Seed != nil {
		cfg.Seed = *opts.Seed
	}
	if opts.Deck != "" {
		cfg.Deck = opts.Deck
	}
	if opts.Relics != nil {
		cfg.Relics = opts.Relics
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b, err := cfg.NewBattle(log.NewMemoryLogger(), diag)
	if err != nil {
		return nil, fmt.Errorf("start battle: %w", err)
	}
	return &BattleSession{
		ctrl: bxnet.NewController(b, cfg.Roster(), diag),
	}, nil
}

func (s *BattleSession) ID() string {
	return s.ctrl.ID
}

// Start returns the opening state.
func (s *BattleSession) Start() *ToolResponse {
	return s.respond(s.ctrl.Welcome())
}

// Do runs one controller command. A server-side error reply comes back as
// a Go error so the tool can report it.
func (s *BattleSession) Do(msg bxnet.ClientMessage) (*ToolResponse, error) {
	reply := s.ctrl.Handle(msg)
	if reply.Type == bxnet.MsgError {
		return nil, fmt.Errorf("%s", reply.Error)
	}
	return s.respond(reply), nil
}

// RunTurns runs up to n turns, stopping early when the battle ends. Events
// from every turn are concatenated.
func (s *BattleSession) RunTurns(n int) (*ToolResponse, error) {
	var resp *ToolResponse
	var events []bxnet.EventView
	var bingos []bxnet.BingoView
	for i := 0; i < n; i++ {
		r, err := s.Do(bxnet.ClientMessage{Type: bxnet.MsgRunTurn})
		if err != nil {
			if resp == nil {
				return nil, err
			}
			break
		}
		resp = r
		events = append(events, r.Events...)
		bingos = append(bingos, r.Bingos...)
		if r.GameOver {
			break
		}
	}
	resp.Events = events
	resp.Bingos = bingos
	return resp, nil
}

func (s *BattleSession) respond(reply bxnet.ServerMessage) *ToolResponse {
	resp := &ToolResponse{
		BattleID: reply.BattleID,
		Events:   []bxnet.EventView{},
		State:    reply.State,
		Result:   reply.Result,
	}
	if reply.Turn != nil {
		resp.Events = reply.Turn.Events
		resp.Bingos = reply.Turn.Bingos
	}
	if reply.State != nil {
		resp.GameOver = reply.State.GameOver
		resp.Victory = reply.State.Victory
	}
	return resp
}

// parseRelics splits a comma separated relic list. An empty string clears
// the relics; it is distinct from the parameter being absent.
func parseRelics(s string) []string {
	relics := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			relics = append(relics, p)
		}
	}
	return relics
}

// respondJSON marshals v to indented JSON.
func respondJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

var (
	sessionMu     sync.Mutex
	activeSession *BattleSession
)

func currentSession() *BattleSession {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	return activeSession
}

func setSession(s *BattleSession) {
	sessionMu.Lock()
	activeSession = s
	sessionMu.Unlock()
}
