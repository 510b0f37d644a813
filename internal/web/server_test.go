package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/bingox/internal/game"
	"github.com/peterkuimelis/bingox/internal/log"
	bxnet "github.com/peterkuimelis/bingox/internal/net"
)

const repoDecks = "../../decks.yaml"

func testFactory() (*game.Battle, game.Roster, error) {
	b, err := game.NewBattle(game.BattleConfig{Seed: 9, Diag: log.Discard()})
	if err != nil {
		return nil, game.Roster{}, err
	}
	roster := game.DefaultRoster()
	return b, roster, b.StartBattle(roster)
}

func getJSON(t *testing.T, h http.Handler, path string, v any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
	}
	return rec
}

func TestHandleCards(t *testing.T) {
	srv := NewServer(repoDecks, testFactory, log.Discard())

	var cards []CardInfo
	rec := getJSON(t, srv.Handler(), "/api/cards", &cards)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	byID := make(map[string]CardInfo)
	for _, c := range cards {
		byID[c.ID] = c
	}
	assert.Len(t, cards, len(game.RegistryIDs())+5)

	ember := byID["ember"]
	assert.Equal(t, "registry", ember.Source)
	assert.Equal(t, "Fire", ember.Element)

	fang := byID["venom-fang"]
	assert.Equal(t, "decks", fang.Source)
	assert.Equal(t, "독니", fang.Name)
	assert.Equal(t, "Wind", fang.Element)
	assert.Equal(t, []string{"Debuff"}, fang.Effects)
	assert.Equal(t, []string{"Special"}, fang.BingoEffects)
}

func TestHandleCardsWithoutDecksFile(t *testing.T) {
	srv := NewServer("missing.yaml", testFactory, log.Discard())

	var cards []CardInfo
	rec := getJSON(t, srv.Handler(), "/api/cards", &cards)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, cards, len(game.RegistryIDs()))
}

func TestHandleDecks(t *testing.T) {
	srv := NewServer(repoDecks, testFactory, log.Discard())

	var decks []DeckInfo
	rec := getJSON(t, srv.Handler(), "/api/decks", &decks)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decks, 3)
	assert.Equal(t, DeckInfo{
		Number: 1,
		Name:   "Starter",
		Size:   32,
		Cards: []DeckCardInfo{
			{Name: "fire", Count: 8},
			{Name: "earth", Count: 8},
			{Name: "water", Count: 8},
			{Name: "wind", Count: 8},
		},
	}, decks[0])
	for _, d := range decks {
		assert.Equal(t, 32, d.Size, d.Name)
	}

	srv = NewServer("missing.yaml", testFactory, log.Discard())
	rec = getJSON(t, srv.Handler(), "/api/decks", &decks)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDeckInfosMergesRepeats(t *testing.T) {
	df := &game.DeckFile{Decks: []game.DeckEntry{{
		Name:  "Twice",
		Cards: []game.CardEntry{{Name: "fire", Count: 2}, {Name: "earth", Count: 1}, {Name: "fire", Count: 3}},
	}}}
	decks := deckInfos(df)
	require.Len(t, decks, 1)
	assert.Equal(t, 6, decks[0].Size)
	assert.Equal(t, []DeckCardInfo{{Name: "fire", Count: 5}, {Name: "earth", Count: 1}}, decks[0].Cards)
}

func TestWebSocketBattle(t *testing.T) {
	srv := NewServer(repoDecks, testFactory, log.Discard())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	var welcome bxnet.ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &welcome))
	assert.Equal(t, bxnet.MsgWelcome, welcome.Type)
	require.NotNil(t, welcome.State)
	assert.Equal(t, 0, welcome.State.Turn)

	require.NoError(t, wsjson.Write(ctx, conn, bxnet.ClientMessage{Type: bxnet.MsgRunTurn}))
	var reply bxnet.ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &reply))
	assert.Equal(t, bxnet.MsgTurn, reply.Type)
	assert.Equal(t, welcome.BattleID, reply.BattleID)
	require.NotNil(t, reply.Turn)
	assert.NotEmpty(t, reply.Turn.Events)
	assert.Equal(t, 1, reply.State.Turn)

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("{not json")))
	reply = bxnet.ServerMessage{}
	require.NoError(t, wsjson.Read(ctx, conn, &reply))
	assert.Equal(t, bxnet.MsgError, reply.Type)
	assert.Contains(t, reply.Error, "malformed command")

	require.NoError(t, wsjson.Write(ctx, conn, bxnet.ClientMessage{Type: bxnet.MsgPause}))
	reply = bxnet.ServerMessage{}
	require.NoError(t, wsjson.Read(ctx, conn, &reply))
	assert.Equal(t, bxnet.MsgState, reply.Type)
	assert.True(t, reply.State.Paused)

	conn.Close(websocket.StatusNormalClosure, "")
}
