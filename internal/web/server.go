package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/bingox/internal/game"
	bxnet "github.com/peterkuimelis/bingox/internal/net"
)

// Server is the bingox HTTP API and websocket battle server.
type Server struct {
	decksFile string
	newBattle bxnet.BattleFactory
	diag      logrus.FieldLogger
	mux       *http.ServeMux
}

// NewServer creates a new web server. Every websocket connection gets its
// own battle from newBattle.
func NewServer(decksFile string, newBattle bxnet.BattleFactory, diag logrus.FieldLogger) *Server {
	if diag == nil {
		diag = logrus.New()
	}
	s := &Server{
		decksFile: decksFile,
		newBattle: newBattle,
		diag:      diag,
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler exposes the routes, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := registryCards()
	df, err := game.LoadDeckFile(s.decksFile)
	if err != nil {
		s.diag.WithError(err).WithField("file", s.decksFile).Warn("decks file unavailable, listing built-in cards only")
	} else {
		for _, def := range df.Cards {
			cards = append(cards, cardInfo(def, "decks"))
		}
	}
	writeJSON(w, cards)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	df, err := game.LoadDeckFile(s.decksFile)
	if err != nil {
		s.diag.WithError(err).WithField("file", s.decksFile).Error("could not load decks file")
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}
	writeJSON(w, deckInfos(df))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// handleWebSocket runs one battle per connection. Each text frame is a
// command in the TCP protocol's JSON form and gets exactly one reply frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.diag.WithError(err).Warn("websocket accept")
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	b, roster, err := s.newBattle()
	if err != nil {
		s.diag.WithError(err).Error("new battle")
		wsConn.Close(websocket.StatusInternalError, "could not start battle")
		return
	}
	ctrl := bxnet.NewController(b, roster, s.diag)
	diag := s.diag.WithField("battle", ctrl.ID)
	diag.Info("websocket player connected")

	if err := wsjson.Write(ctx, wsConn, ctrl.Welcome()); err != nil {
		diag.WithError(err).Warn("websocket write welcome")
		return
	}

	for {
		reply, err := s.readCommand(ctx, wsConn, ctrl)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				diag.WithError(err).Debug("websocket read")
			}
			return
		}
		if err := wsjson.Write(ctx, wsConn, reply); err != nil {
			diag.WithError(err).Warn("websocket write")
			return
		}
	}
}

func (s *Server) readCommand(ctx context.Context, conn *websocket.Conn, ctrl *bxnet.Controller) (bxnet.ServerMessage, error) {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return bxnet.ServerMessage{}, err
	}
	var msg bxnet.ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return bxnet.ServerMessage{Type: bxnet.MsgError, BattleID: ctrl.ID, Error: "malformed command: " + err.Error()}, nil
	}
	return ctrl.Handle(msg), nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
