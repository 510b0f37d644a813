package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/bingox/internal/config"
	"github.com/peterkuimelis/bingox/internal/game"
	"github.com/peterkuimelis/bingox/internal/log"
	bxnet "github.com/peterkuimelis/bingox/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "host":
		runHost(os.Args[2:])
	case "join":
		runJoin(os.Args[2:])
	case "sim":
		runSim(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  bingox host [--config FILE] [--port P] [--deck NAME] [--seed N]")
	fmt.Println("  bingox join [--addr ADDR]")
	fmt.Println("  bingox sim  [--config FILE] [--deck NAME] [--seed N] [--turns N]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a battle server; every connection gets its own battle")
	fmt.Println("  join    Connect to a battle server and drive the battle from the terminal")
	fmt.Println("  sim     Run a battle to the end and print the event log")
}

// loadConfig resolves the config file and applies the command-line overrides.
func loadConfig(path, deck string, seed int64) (*config.Config, *logrus.Logger) {
	cfg, err := config.Resolve(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if deck != "" {
		cfg.Deck = deck
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, cfg.Diagnostics()
}

func runHost(args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	cfgFile := fs.String("config", "", "path to battle config YAML (defaults if empty)")
	port := fs.String("port", "9000", "TCP port to listen on")
	deck := fs.String("deck", "", "deck name from the decks file")
	seed := fs.Int64("seed", 0, "random seed (0 = configured)")
	fs.Parse(args)

	cfg, diag := loadConfig(*cfgFile, *deck, *seed)

	srv := &bxnet.Server{
		Port: *port,
		Diag: diag,
		NewBattle: func() (*game.Battle, game.Roster, error) {
			b, err := cfg.NewBattle(log.NewMemoryLogger(), diag)
			return b, cfg.Roster(), err
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	if err := bxnet.Connect(context.Background(), *addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSim(args []string) {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	cfgFile := fs.String("config", "", "path to battle config YAML (defaults if empty)")
	deck := fs.String("deck", "", "deck name from the decks file")
	seed := fs.Int64("seed", 0, "random seed (0 = configured)")
	turns := fs.Int("turns", 0, "stop after this many turns (0 = until the battle ends)")
	fs.Parse(args)

	cfg, diag := loadConfig(*cfgFile, *deck, *seed)
	b, err := cfg.NewBattle(log.NewTextLogger(os.Stdout), diag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for !b.GameOver && (*turns == 0 || b.Turn < *turns) {
		if _, err := b.RunTurn(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	outcome := "in progress"
	switch {
	case b.GameOver && b.Victory:
		outcome = "victory"
	case b.GameOver:
		outcome = "defeat"
	}
	fmt.Printf("\n%s after %d turns: %d bingos (%d harmony), player HP %d/%d\n",
		outcome, b.Turn, b.TotalBingos, b.HarmonyBingos, b.Player.HP, b.Player.MaxHP)
}
