package net

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/bingox/internal/game"
)

// Controller executes client commands against one battle. It is shared by
// the TCP server and the websocket handler and is safe for concurrent use.
type Controller struct {
	ID string

	mu     sync.Mutex
	battle *game.Battle
	roster game.Roster
	diag   logrus.FieldLogger
}

// NewController wraps a started battle. roster is what "restart" starts
// again with.
func NewController(b *game.Battle, roster game.Roster, diag logrus.FieldLogger) *Controller {
	id := uuid.NewString()
	if diag == nil {
		diag = logrus.New()
	}
	return &Controller{
		ID:     id,
		battle: b,
		roster: roster,
		diag:   diag.WithField("battle", id),
	}
}

// Welcome is the first message a new client receives.
func (c *Controller) Welcome() ServerMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ServerMessage{Type: MsgWelcome, BattleID: c.ID, State: BuildSnapshotView(c.battle.Snapshot())}
}

// Handle runs one command and returns the reply. Engine errors become
// "error" messages; they never close the connection.
func (c *Controller) Handle(msg ClientMessage) ServerMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	reply, err := c.handle(msg)
	if err != nil {
		c.diag.WithFields(logrus.Fields{"command": msg.Type}).WithError(err).Debug("command rejected")
		return ServerMessage{Type: MsgError, BattleID: c.ID, Error: err.Error()}
	}
	reply.BattleID = c.ID
	return reply
}

func (c *Controller) handle(msg ClientMessage) (ServerMessage, error) {
	b := c.battle
	switch msg.Type {
	case MsgRunTurn:
		res, err := b.RunTurn()
		if res == nil {
			return ServerMessage{}, err
		}
		reply := ServerMessage{Type: MsgTurn, Turn: BuildTurnView(res), State: c.state()}
		if res.GameOver {
			reply.Type = MsgGameOver
			reply.Victory = res.Victory
			reply.Result = resultText(b)
		}
		if err != nil {
			// The turn aborted but still produced events worth showing.
			c.diag.WithError(err).Warn("turn aborted")
			reply.Result = fmt.Sprintf("battle aborted: %v", err)
		}
		return reply, nil

	case MsgSnapshot:
		return ServerMessage{Type: MsgState, State: c.state()}, nil

	case MsgSetStat:
		if err := b.UpdateUnitStat(msg.Unit, msg.Field, msg.Value); err != nil {
			return ServerMessage{}, err
		}
		return ServerMessage{Type: MsgState, State: c.state()}, nil

	case MsgPause:
		if err := b.Pause(); err != nil {
			return ServerMessage{}, err
		}
		return ServerMessage{Type: MsgState, State: c.state()}, nil

	case MsgResume:
		if err := b.Resume(); err != nil {
			return ServerMessage{}, err
		}
		return ServerMessage{Type: MsgState, State: c.state()}, nil

	case MsgRestart:
		if err := b.StartBattle(c.roster); err != nil {
			return ServerMessage{}, err
		}
		c.diag.Info("battle restarted")
		return ServerMessage{Type: MsgState, State: c.state()}, nil

	case MsgRelic:
		if _, err := b.ToggleRelic(msg.Relic); err != nil {
			return ServerMessage{}, err
		}
		return ServerMessage{Type: MsgState, State: c.state()}, nil
	}
	return ServerMessage{}, fmt.Errorf("unknown command %q", msg.Type)
}

func (c *Controller) state() *SnapshotView {
	return BuildSnapshotView(c.battle.Snapshot())
}

func resultText(b *game.Battle) string {
	if b.Victory {
		return fmt.Sprintf("Victory on turn %d (%d bingos, %d harmony)", b.Turn, b.TotalBingos, b.HarmonyBingos)
	}
	return fmt.Sprintf("Defeat on turn %d (%d bingos, %d harmony)", b.Turn, b.TotalBingos, b.HarmonyBingos)
}
