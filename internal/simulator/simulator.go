// Package simulator plays many independent bot-only matches concurrently and
// checks the engine's accounting after every action.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/phh"
	"github.com/lox/holdem/internal/randutil"
)

// maxActionsPerHand guards against a hand that never finishes.
const maxActionsPerHand = 10000

// Config holds configuration for a simulation run.
type Config struct {
	Matches       int
	HandsPerMatch int
	// Strategies assigns a bot strategy to each seat; its length is the
	// number of seats.
	Strategies []string
	Stake      int
	NumDecks   int
	Overbet    game.OverbetPolicy
	Seed       int64
	Workers    int
	HistoryDir string // write every hand as PHH when set
	Logger     *log.Logger
}

// Simulator runs matches.
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a simulator, filling in defaults for unset fields.
func New(config Config) (*Simulator, error) {
	if config.Matches <= 0 {
		config.Matches = 1
	}
	if config.HandsPerMatch <= 0 {
		config.HandsPerMatch = 100
	}
	if len(config.Strategies) == 0 {
		config.Strategies = []string{"random", "random"}
	}
	if len(config.Strategies) < 2 || len(config.Strategies) > game.MaxSeats {
		return nil, fmt.Errorf("need between 2 and %d seats, got %d", game.MaxSeats, len(config.Strategies))
	}
	for _, s := range config.Strategies {
		if _, err := bot.New(s, nil); err != nil {
			return nil, err
		}
	}
	if config.Stake <= 0 {
		config.Stake = game.DefaultStake
	}
	if config.NumDecks <= 0 {
		config.NumDecks = game.DefaultNumDecks
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: config.Logger.WithPrefix("simulator")}, nil
}

// Run plays every match and merges their reports. The first failing match
// cancels the rest.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	reports := make([]*Report, s.config.Matches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Matches {
		g.Go(func() error {
			r, err := s.playMatch(ctx, i)
			if err != nil {
				return fmt.Errorf("match %d (seed %d): %w", i, randutil.Child(s.config.Seed, i), err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newReport()
	for _, r := range reports {
		total.merge(r)
	}
	total.Elapsed = time.Since(start)

	for name, st := range total.Strategies {
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("statistics for %s: %w", name, err)
		}
	}

	s.logger.Info("Simulation complete",
		"matches", total.Matches,
		"hands", total.Hands,
		"elapsed", total.Elapsed.Round(time.Millisecond))
	return total, nil
}

type seat struct {
	player   *game.Player
	policy   bot.Policy
	strategy string
}

func (s *Simulator) playMatch(ctx context.Context, match int) (*Report, error) {
	seed := randutil.Child(s.config.Seed, match)
	report := newReport()
	report.Matches = 1

	opts := []game.TableOption{
		game.WithRNG(randutil.New(seed)),
		game.WithNumDecks(s.config.NumDecks),
		game.WithDefaultStake(s.config.Stake),
		game.WithOverbetPolicy(s.config.Overbet),
		game.WithLogger(s.logger.With("match", match)),
	}

	var historyErr error
	if s.config.HistoryDir != "" {
		rec := phh.NewRecorder(fmt.Sprintf("sim%03d", match), func(h *phh.HandHistory) {
			if _, err := phh.WriteFile(s.config.HistoryDir, h); err != nil && historyErr == nil {
				historyErr = err
			}
		})
		opts = append(opts, game.WithEventHandler(rec.Handle))
	}

	tbl := game.NewTable(opts...)
	seats := make([]seat, len(s.config.Strategies))
	for i, strategy := range s.config.Strategies {
		policy, err := bot.New(strategy, randutil.New(randutil.Child(seed, i)))
		if err != nil {
			return nil, err
		}
		p := game.NewPlayer(fmt.Sprintf("%s-%d", strategy, i+1), s.config.Stake)
		if err := tbl.AddPlayer(p); err != nil {
			return nil, err
		}
		seats[i] = seat{player: p, policy: policy, strategy: strategy}
	}
	initial := tbl.ChipsInPlay()

	for hand := 1; hand <= s.config.HandsPerMatch; hand++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := tbl.Shuffle(); err != nil {
			return nil, fmt.Errorf("hand %d: %w", hand, err)
		}
		dealer := seatIndex(seats, tbl.Dealer())

		street, err := playHand(tbl, seats)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", hand, err)
		}
		if historyErr != nil {
			return nil, historyErr
		}
		if got, want := tbl.ChipsInPlay(), initial+tbl.Refills(); got != want {
			return nil, fmt.Errorf("hand %d: chips in play %d, want %d", hand, got, want)
		}

		if err := report.record(tbl, seats, dealer, street, seed); err != nil {
			return nil, fmt.Errorf("hand %d: %w", hand, err)
		}
	}
	report.Refills = tbl.Refills()
	return report, nil
}

// playHand lets the bots act until the hand resolves. It returns the last
// street on which anyone acted.
func playHand(tbl *game.Table, seats []seat) (game.Street, error) {
	street := tbl.Street()
	for steps := 0; !tbl.Finished(); steps++ {
		if steps >= maxActionsPerHand {
			return street, errors.New("hand did not finish")
		}
		street = tbl.Street()

		p := tbl.Current()
		idx := seatIndex(seats, p)
		if idx < 0 {
			return street, fmt.Errorf("unknown player %s to act", p.Name)
		}
		if _, err := bot.Play(tbl, p, seats[idx].policy); err != nil {
			return street, err
		}
		if err := tbl.CheckInvariants(); err != nil {
			return street, fmt.Errorf("after %s acted: %w", p.Name, err)
		}
	}
	return street, nil
}

func seatIndex(seats []seat, p *game.Player) int {
	for i, s := range seats {
		if s.player == p {
			return i
		}
	}
	return -1
}
