package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Client connects to a battle server and provides a terminal REPL.
type Client struct {
	conn io.ReadWriter
	in   io.Reader
	out  io.Writer
}

// Connect dials a server and runs the REPL on stdin/stdout.
func Connect(ctx context.Context, addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	client := NewClient(conn, os.Stdin, os.Stdout)
	return client.RunREPL(ctx)
}

func NewClient(conn io.ReadWriter, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: in, out: out}
}

const helpText = `Commands:
  t, turn                   run one turn
  s, state                  show the battle
  p, pause / r, resume      pause or resume
  set <unit> <field> <n>    edit a stat while paused (e.g. set enemy:1 hp 10)
  relic <id>                toggle a relic
  restart                   start the battle again
  q, quit                   leave`

// RunREPL reads commands from the terminal, sends them and renders replies.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(c.in)

	var welcome ServerMessage
	if err := dec.Decode(&welcome); err != nil {
		return fmt.Errorf("read welcome: %w", err)
	}
	fmt.Fprintf(c.out, "Connected to battle %s\n", welcome.BattleID)
	c.renderState(welcome.State)
	fmt.Fprintln(c.out, helpText)

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(c.out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return nil
		}
		msg, quit, ok := c.parseCommand(strings.TrimSpace(line))
		if quit {
			return nil
		}
		if !ok {
			continue
		}
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("send %s: %w", msg.Type, err)
		}
		var reply ServerMessage
		if err := dec.Decode(&reply); err != nil {
			return fmt.Errorf("read reply: %w", err)
		}
		c.render(reply)
	}
}

// parseCommand maps a REPL line to a message. ok is false for lines that
// send nothing.
func (c *Client) parseCommand(line string) (msg ClientMessage, quit bool, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return msg, false, false
	}
	switch strings.ToLower(fields[0]) {
	case "t", "turn":
		return ClientMessage{Type: MsgRunTurn}, false, true
	case "s", "state":
		return ClientMessage{Type: MsgSnapshot}, false, true
	case "p", "pause":
		return ClientMessage{Type: MsgPause}, false, true
	case "r", "resume":
		return ClientMessage{Type: MsgResume}, false, true
	case "restart":
		return ClientMessage{Type: MsgRestart}, false, true
	case "relic":
		if len(fields) != 2 {
			fmt.Fprintln(c.out, "usage: relic <id>")
			return msg, false, false
		}
		return ClientMessage{Type: MsgRelic, Relic: fields[1]}, false, true
	case "set":
		if len(fields) != 4 {
			fmt.Fprintln(c.out, "usage: set <unit> <field> <value>")
			return msg, false, false
		}
		n, err := strconv.Atoi(fields[3])
		if err != nil {
			fmt.Fprintf(c.out, "value must be a number, got %q\n", fields[3])
			return msg, false, false
		}
		return ClientMessage{Type: MsgSetStat, Unit: fields[1], Field: fields[2], Value: n}, false, true
	case "q", "quit", "exit":
		return msg, true, false
	case "h", "help", "?":
		fmt.Fprintln(c.out, helpText)
		return msg, false, false
	}
	fmt.Fprintf(c.out, "unknown command %q (h for help)\n", fields[0])
	return msg, false, false
}

func (c *Client) render(msg ServerMessage) {
	switch msg.Type {
	case MsgError:
		fmt.Fprintf(c.out, "error: %s\n", msg.Error)
	case MsgTurn:
		c.renderTurn(msg.Turn)
		c.renderState(msg.State)
	case MsgState, MsgWelcome:
		c.renderState(msg.State)
	case MsgGameOver:
		c.renderTurn(msg.Turn)
		c.renderState(msg.State)
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "═══════════════════════════════════")
		fmt.Fprintln(c.out, "          GAME OVER")
		fmt.Fprintln(c.out, "═══════════════════════════════════")
		fmt.Fprintln(c.out, msg.Result)
		fmt.Fprintln(c.out, "═══════════════════════════════════")
	}
}

func (c *Client) renderTurn(tv *TurnView) {
	if tv == nil {
		return
	}
	for _, ev := range tv.Events {
		c.renderEvent(ev)
	}
}

func (c *Client) renderEvent(ev EventView) {
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 18 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(sv *SnapshotView) {
	if sv == nil {
		return
	}
	out := c.out

	fmt.Fprintln(out)
	fmt.Fprintln(out, "╔══════════════════════════════════════════════════════╗")
	for i, e := range sv.Enemies {
		fmt.Fprintf(out, "║  [%d] %s\n", i+1, formatUnit(e))
	}
	fmt.Fprintln(out, "║──────────────────────────────────────────────────────")
	if len(sv.Grid) > 0 {
		for row := 0; row*4 < len(sv.Grid); row++ {
			fmt.Fprint(out, "║  ")
			for col := 0; col < 4 && row*4+col < len(sv.Grid); col++ {
				fmt.Fprintf(out, "%s ", formatCard(sv.Grid[row*4+col]))
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, "║──────────────────────────────────────────────────────")
	}
	fmt.Fprintf(out, "║  YOU %s\n", formatUnit(sv.Player))
	fmt.Fprintf(out, "║  Deck: %d  Discard: %d  Bingos: %d (harmony %d)\n",
		sv.DeckCount, sv.DiscardCount, sv.TotalBingos, sv.HarmonyBingos)
	fmt.Fprintln(out, "╚══════════════════════════════════════════════════════╝")

	info := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Phase)
	if sv.Paused {
		info += " | PAUSED"
	}
	if len(sv.Relics) > 0 {
		info += " | Relics: " + strings.Join(sv.Relics, ", ")
	}
	fmt.Fprintln(out, info)
}

func formatUnit(u UnitView) string {
	if !u.Alive {
		return fmt.Sprintf("%s (dead)", u.Name)
	}
	s := fmt.Sprintf("%s HP %d/%d", u.Name, u.HP, u.MaxHP)
	if u.Block > 0 {
		s += fmt.Sprintf(" Block %d", u.Block)
	}
	if u.Intent != "" {
		s += " Intent " + u.Intent
	}
	if len(u.Statuses) > 0 {
		names := make([]string, 0, len(u.Statuses))
		for k := range u.Statuses {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			s += fmt.Sprintf(" %s:%d", k, u.Statuses[k])
		}
	}
	return s
}

func formatCard(cv CardView) string {
	name := cv.Name
	if cv.Upgraded {
		name += "+"
	}
	return fmt.Sprintf("[%-14s]", fmt.Sprintf("%s %s", cv.Element[:1], name))
}
