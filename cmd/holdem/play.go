package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/gameid"
	"github.com/lox/holdem/internal/phh"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/tui"
)

// PlayCmd runs the interactive game.
type PlayCmd struct {
	Seed    *int64 `help:"Deterministic RNG seed for the deck (optional)"`
	History string `help:"Directory for PHH hand histories (overrides config)" type:"path"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if c.History != "" {
		cfg.History.Dir = c.History
	}

	logger, closeLog, err := openLogger(cfg.Logging.File, os.Stderr, cfg.Level())
	if err != nil {
		return err
	}
	defer closeLog()

	rng := randutil.NewFromTime()
	if c.Seed != nil {
		rng = randutil.New(*c.Seed)
	}

	clock := quartz.NewReal()
	seats := make([]*game.Player, len(cfg.Seats))
	var human *game.Player
	for i, s := range cfg.Seats {
		seats[i] = game.NewPlayer(s.Name, s.Balance)
		if s.Human {
			human = seats[i]
		}
	}

	session := gameid.NewGenerator(clock, nil).Generate()
	feed := tui.NewFeed(human, clock)
	handlers := []game.EventHandler{feed.Handle}
	if cfg.History.Dir != "" {
		rec := phh.NewRecorder(session, func(h *phh.HandHistory) {
			path, err := phh.WriteFile(cfg.History.Dir, h)
			if err != nil {
				logger.Error("Failed to write hand history", "hand", h.HandID, "error", err)
				return
			}
			logger.Debug("Wrote hand history", "path", path)
		})
		handlers = append(handlers, rec.Handle)
	}

	table := game.NewTable(
		game.WithRNG(rng),
		game.WithNumDecks(cfg.Table.NumDecks),
		game.WithDefaultStake(cfg.Table.DefaultStake),
		game.WithOverbetPolicy(cfg.Overbet()),
		game.WithLogger(logger),
		game.WithEventHandler(fanOut(handlers)),
	)
	st := game.NewSyncTable(table)

	var agents []*bot.Agent
	for i, s := range cfg.Seats {
		if err := st.AddPlayer(seats[i]); err != nil {
			return err
		}
		if s.Human {
			continue
		}
		agent, err := newAgent(seats[i], s, clock, logger)
		if err != nil {
			return err
		}
		agents = append(agents, agent)
	}

	logger.Info("Starting game", "session", session, "seats", len(seats), "config", cli.Config)
	model := tui.New(tui.Options{
		Table:  st,
		Human:  human,
		Agents: agents,
		Feed:   feed,
		Logger: logger,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newAgent(p *game.Player, s config.SeatConfig, clock quartz.Clock, logger *log.Logger) (*bot.Agent, error) {
	rng := randutil.NewFromTime()
	if s.Seed != 0 {
		rng = randutil.New(s.Seed)
	}
	policy, err := bot.New(s.Strategy, rng)
	if err != nil {
		return nil, fmt.Errorf("seat %s: %w", s.Name, err)
	}
	return bot.NewAgent(p, policy,
		bot.WithClock(clock),
		bot.WithThinkDelay(s.Delay()),
		bot.WithLogger(logger),
	), nil
}

func fanOut(handlers []game.EventHandler) game.EventHandler {
	return func(e game.Event) {
		for _, h := range handlers {
			h(e)
		}
	}
}
