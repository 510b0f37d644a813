package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/bingox/internal/config"
	"github.com/peterkuimelis/bingox/internal/log"
	bxnet "github.com/peterkuimelis/bingox/internal/net"
)

const maxTurnsPerCall = 50

// baseConfig is the configuration every start_battle call starts from, set by main.
var baseConfig = config.Default()

// diag receives engine and session diagnostics, set by main.
var diag logrus.FieldLogger = log.Discard()

// SetConfig sets the base battle configuration.
func SetConfig(cfg *config.Config) {
	baseConfig = cfg
}

// SetDiagnostics sets the diagnostics logger.
func SetDiagnostics(l logrus.FieldLogger) {
	diag = l
}

// RegisterTools adds all battle tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startBattleTool(), handleStartBattle)
	s.AddTool(runTurnTool(), handleRunTurn)
	s.AddTool(getSnapshotTool(), handleGetSnapshot)
	s.AddTool(updateUnitStatTool(), handleUpdateUnitStat)
	s.AddTool(pauseBattleTool(), handlePauseBattle)
	s.AddTool(resumeBattleTool(), handleResumeBattle)
	s.AddTool(toggleRelicTool(), handleToggleRelic)
}

// --- Tool definitions ---

func startBattleTool() mcp.Tool {
	return mcp.NewTool("start_battle",
		mcp.WithDescription("Start a new bingo battle, replacing any running one. The player golem fights the configured enemies; "+
			"each turn 16 cards are drawn into a 4x4 grid, activated in order, and completed lines trigger bingo bonuses. "+
			"Returns the battle id and the opening state."),
		mcp.WithNumber("seed", mcp.Description("Random seed; the same seed replays the same battle. Omit to use the configured seed.")),
		mcp.WithString("deck", mcp.Description("Deck name from the decks file. Omit for the configured deck.")),
		mcp.WithString("relics", mcp.Description("Comma separated relic ids to activate (fire_boost, old_sword). Omit for the configured relics.")),
	)
}

func runTurnTool() mcp.Tool {
	return mcp.NewTool("run_turn",
		mcp.WithDescription("Run one or more full turns. Returns every event logged during those turns and the state afterwards. "+
			"Stops early when the battle ends."),
		mcp.WithNumber("turns", mcp.Description("Number of turns to run (default 1, max 50)")),
	)
}

func getSnapshotTool() mcp.Tool {
	return mcp.NewTool("get_snapshot",
		mcp.WithDescription("Get the current battle state without changing it. Read-only."),
	)
}

func updateUnitStatTool() mcp.Tool {
	return mcp.NewTool("update_unit_stat",
		mcp.WithDescription("Edit a unit stat. Only allowed while the battle is paused or after it has ended."),
		mcp.WithString("unit", mcp.Required(), mcp.Description("'player' or 'enemy:N' (1-based)")),
		mcp.WithString("field", mcp.Required(), mcp.Description("hp, max_hp, block, base_attack, base_defense, base_shield, attack_buffs, attack_debuffs, sword_bonus, shield_bonus, or status:<kind>")),
		mcp.WithNumber("value", mcp.Required(), mcp.Description("New value")),
	)
}

func pauseBattleTool() mcp.Tool {
	return mcp.NewTool("pause_battle",
		mcp.WithDescription("Pause the battle. run_turn is refused until resume_battle."),
	)
}

func resumeBattleTool() mcp.Tool {
	return mcp.NewTool("resume_battle",
		mcp.WithDescription("Resume a paused battle."),
	)
}

func toggleRelicTool() mcp.Tool {
	return mcp.NewTool("toggle_relic",
		mcp.WithDescription("Switch a relic on or off for the running battle."),
		mcp.WithString("relic", mcp.Required(), mcp.Description("Relic id: fire_boost or old_sword")),
	)
}

// --- Tool handlers ---

func handleStartBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var opts StartOptions
	args := request.GetArguments()
	if _, ok := args["seed"]; ok {
		seed := int64(request.GetInt("seed", 0))
		opts.Seed = &seed
	}
	opts.Deck = request.GetString("deck", "")
	if _, ok := args["relics"]; ok {
		opts.Relics = parseRelics(request.GetString("relics", ""))
	}

	sess, err := NewBattleSession(baseConfig, opts, diag)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start battle: %v", err), nil
	}
	setSession(sess)
	diag.WithField("battle", sess.ID()).Info("battle started")

	return mcp.NewToolResultText(respondJSON(sess.Start())), nil
}

func handleRunTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := currentSession()
	if sess == nil {
		return noBattle(), nil
	}

	turns := request.GetInt("turns", 1)
	if turns < 1 || turns > maxTurnsPerCall {
		return mcp.NewToolResultErrorf("turns must be between 1 and %d, got %d.", maxTurnsPerCall, turns), nil
	}

	resp, err := sess.RunTurns(turns)
	if err != nil {
		return mcp.NewToolResultErrorf("Cannot run turn: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return doCommand(bxnet.ClientMessage{Type: bxnet.MsgSnapshot})
}

func handleUpdateUnitStat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	unit := request.GetString("unit", "")
	field := request.GetString("field", "")
	if unit == "" || field == "" {
		return mcp.NewToolResultError("unit and field are required."), nil
	}
	return doCommand(bxnet.ClientMessage{
		Type:  bxnet.MsgSetStat,
		Unit:  unit,
		Field: field,
		Value: request.GetInt("value", 0),
	})
}

func handlePauseBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return doCommand(bxnet.ClientMessage{Type: bxnet.MsgPause})
}

func handleResumeBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return doCommand(bxnet.ClientMessage{Type: bxnet.MsgResume})
}

func handleToggleRelic(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return doCommand(bxnet.ClientMessage{Type: bxnet.MsgRelic, Relic: request.GetString("relic", "")})
}

func doCommand(msg bxnet.ClientMessage) (*mcp.CallToolResult, error) {
	sess := currentSession()
	if sess == nil {
		return noBattle(), nil
	}
	resp, err := sess.Do(msg)
	if err != nil {
		return mcp.NewToolResultErrorf("%s failed: %v", msg.Type, err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func noBattle() *mcp.CallToolResult {
	return mcp.NewToolResultError("No battle is running. Use start_battle first.")
}
