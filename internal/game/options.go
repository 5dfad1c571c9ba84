package game

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/poker"
)

const (
	// DefaultStake is the balance an empty stack is refilled to at the start of a hand.
	DefaultStake = 10000
	// DefaultNumDecks is the number of 52-card sets in the shoe.
	DefaultNumDecks = 1
	// MaxSeats bounds the table so a single deck always covers a full hand.
	MaxSeats = 10
)

// OverbetPolicy decides what MakeBid does when a player bids more than they hold.
type OverbetPolicy int

const (
	// ClampToBalance puts the player all-in for their remaining balance.
	ClampToBalance OverbetPolicy = iota
	// RejectOverbet rejects the bid with ErrInsufficientFunds.
	RejectOverbet
)

func (p OverbetPolicy) String() string {
	switch p {
	case ClampToBalance:
		return "clamp"
	case RejectOverbet:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseOverbetPolicy parses "clamp" or "reject".
func ParseOverbetPolicy(s string) (OverbetPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp":
		return ClampToBalance, nil
	case "reject":
		return RejectOverbet, nil
	default:
		return 0, fmt.Errorf("unknown overbet policy %q", s)
	}
}

// TableOption configures a Table during creation.
type TableOption func(*tableConfig)

type tableConfig struct {
	rng          *rand.Rand
	numDecks     int
	deck         *poker.Deck
	defaultStake int
	overbet      OverbetPolicy
	logger       *log.Logger
	onEvent      EventHandler
}

// WithRNG sets the random source used to build the deck.
func WithRNG(rng *rand.Rand) TableOption {
	return func(c *tableConfig) { c.rng = rng }
}

// WithNumDecks sets how many 52-card sets make up the deck. Default is 1.
func WithNumDecks(n int) TableOption {
	return func(c *tableConfig) { c.numDecks = n }
}

// WithDeck uses a prebuilt deck, such as a stacked deck for tests.
// It overrides WithRNG and WithNumDecks.
func WithDeck(deck *poker.Deck) TableOption {
	return func(c *tableConfig) { c.deck = deck }
}

// WithDefaultStake sets the refill balance for bankrupt seats.
func WithDefaultStake(stake int) TableOption {
	return func(c *tableConfig) { c.defaultStake = stake }
}

// WithOverbetPolicy sets how over-large bids are handled.
func WithOverbetPolicy(p OverbetPolicy) TableOption {
	return func(c *tableConfig) { c.overbet = p }
}

// WithLogger sets the logger. Default discards output.
func WithLogger(logger *log.Logger) TableOption {
	return func(c *tableConfig) { c.logger = logger }
}

// WithEventHandler registers a callback invoked synchronously for every table event.
func WithEventHandler(h EventHandler) TableOption {
	return func(c *tableConfig) { c.onEvent = h }
}

func buildConfig(opts []TableOption) *tableConfig {
	cfg := &tableConfig{
		numDecks:     DefaultNumDecks,
		defaultStake: DefaultStake,
		overbet:      ClampToBalance,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.deck == nil {
		if cfg.rng == nil {
			cfg.rng = randutil.NewFromTime()
		}
		cfg.deck = poker.NewDeck(cfg.rng, cfg.numDecks)
	}
	if cfg.defaultStake <= 0 {
		cfg.defaultStake = DefaultStake
	}
	return cfg
}
