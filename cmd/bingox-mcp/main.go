package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/bingox/internal/config"
	bxmcp "github.com/peterkuimelis/bingox/internal/mcp"
)

func main() {
	cfgFile := flag.String("config", "", "path to battle config YAML (defaults if empty)")
	decks := flag.String("decks", "", "path to decks YAML file (overrides the config)")
	flag.Parse()

	cfg, err := config.Resolve(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *decks != "" {
		cfg.DecksFile = *decks
	}

	// stdout carries the MCP stream; diagnostics go to stderr.
	bxmcp.SetConfig(cfg)
	bxmcp.SetDiagnostics(cfg.Diagnostics())

	s := server.NewMCPServer("bingox", "1.0.0")
	bxmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
