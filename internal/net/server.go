package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/bingox/internal/game"
)

// BattleFactory builds a fresh, started battle for a new connection.
type BattleFactory func() (*game.Battle, game.Roster, error)

// Server hosts battles for TCP clients, one battle per connection.
type Server struct {
	Port      string
	NewBattle BattleFactory
	Diag      logrus.FieldLogger
}

// Run listens until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	diag := s.diag()
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	diag.WithField("addr", ln.Addr().String()).Info("waiting for players")
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		diag.WithField("remote", conn.RemoteAddr().String()).Info("player connected")
		go func() {
			defer conn.Close()
			if err := s.ServeConn(ctx, conn); err != nil {
				diag.WithError(err).Warn("connection closed")
			}
		}()
	}
}

func (s *Server) diag() logrus.FieldLogger {
	if s.Diag == nil {
		return logrus.New()
	}
	return s.Diag
}

// ServeConn runs one battle over conn until the client disconnects.
func (s *Server) ServeConn(ctx context.Context, conn io.ReadWriter) error {
	b, roster, err := s.NewBattle()
	if err != nil {
		return fmt.Errorf("new battle: %w", err)
	}
	ctrl := NewController(b, roster, s.diag())

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)
	if err := enc.Encode(ctrl.Welcome()); err != nil {
		return fmt.Errorf("send welcome: %w", err)
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		if err := enc.Encode(ctrl.Handle(msg)); err != nil {
			return fmt.Errorf("send reply: %w", err)
		}
	}
}
