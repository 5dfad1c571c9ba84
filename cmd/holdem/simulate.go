package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/gameid"
	"github.com/lox/holdem/internal/simulator"
)

// SimulateCmd runs bot-only matches.
type SimulateCmd struct {
	Matches    int      `short:"m" default:"10" help:"Number of independent matches"`
	Hands      int      `short:"n" default:"1000" help:"Hands per match"`
	Strategies []string `short:"s" default:"random,random" help:"Bot strategy for each seat (random, call, fold, maniac)"`
	Seed       *int64   `help:"Deterministic RNG seed (optional)"`
	Workers    int      `short:"w" help:"Concurrent matches (default GOMAXPROCS)"`
	History    string   `help:"Write every hand as PHH to this directory" type:"path"`
	Debug      bool     `help:"Log engine activity to stderr"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	level := log.WarnLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger, closeLog, err := openLogger("", os.Stderr, level)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	history := c.History
	if history != "" {
		history = filepath.Join(history, gameid.Generate())
	}

	sim, err := simulator.New(simulator.Config{
		Matches:       c.Matches,
		HandsPerMatch: c.Hands,
		Strategies:    c.Strategies,
		Stake:         cfg.Table.DefaultStake,
		NumDecks:      cfg.Table.NumDecks,
		Overbet:       cfg.Overbet(),
		Seed:          seed,
		Workers:       c.Workers,
		HistoryDir:    history,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Simulating %d matches of %d hands (seed %d)\n", c.Matches, c.Hands, seed)
	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	report.PrintSummary(os.Stdout)
	if history != "" {
		fmt.Printf("\nHand histories written to %s\n", history)
	}
	return nil
}
