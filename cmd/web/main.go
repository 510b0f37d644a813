package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/peterkuimelis/bingox/internal/config"
	"github.com/peterkuimelis/bingox/internal/game"
	"github.com/peterkuimelis/bingox/internal/log"
	"github.com/peterkuimelis/bingox/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	cfgFile := flag.String("config", "", "path to battle config YAML (defaults if empty)")
	decksFile := flag.String("decks", "", "path to decks YAML file (overrides the config)")
	flag.Parse()

	cfg, err := config.Resolve(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *decksFile != "" {
		cfg.DecksFile = *decksFile
	}
	diag := cfg.Diagnostics()

	srv := web.NewServer(cfg.DecksFile, func() (*game.Battle, game.Roster, error) {
		b, err := cfg.NewBattle(log.NewMemoryLogger(), diag)
		return b, cfg.Roster(), err
	}, diag)

	addr := fmt.Sprintf(":%d", *port)
	diag.Infof("bingox web server listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
