package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/poker"
)

// Table is the hand engine for a single table. It is not safe for concurrent
// use; see SyncTable.
type Table struct {
	deck  *poker.Deck
	board [5]poker.Card

	pot       int
	bid       int // highest round commitment every active player must match
	lastRaise int // size of the largest raise this round

	// seats is fixed seat order. Turn order is a ring over it: front is the
	// seat to act next and rotation skips folded and all-in seats.
	seats  []*Player
	front  int
	dealer int

	moveCounter int // actions still needed to close the round without a new raise
	playersLeft int // seats neither folded nor all-in

	handNumber     int
	holeDealt      bool
	finished       bool
	everyoneFolded bool
	abrupt         bool

	winners         []*Player
	tiebreaker      bool
	tiebreakerIndex int
	tiebreakerValue poker.Rank

	defaultStake int
	refills      int
	overbet      OverbetPolicy
	logger       *log.Logger
	onEvent      EventHandler
}

// NewTable creates an empty table. Seats are added with AddPlayer and each hand
// begins with Shuffle.
func NewTable(opts ...TableOption) *Table {
	cfg := buildConfig(opts)
	return &Table{
		deck:         cfg.deck,
		seats:        make([]*Player, 0, MaxSeats),
		finished:     true,
		defaultStake: cfg.defaultStake,
		overbet:      cfg.overbet,
		logger:       cfg.logger.WithPrefix("table"),
		onEvent:      cfg.onEvent,
	}
}

// AddPlayer seats a player. Players cannot join while a hand is in progress.
func (t *Table) AddPlayer(p *Player) error {
	if p == nil {
		return errors.New("add player: nil player")
	}
	if !t.finished {
		return fmt.Errorf("add player %s: %w", p.Name, ErrHandInProgress)
	}
	if p.Balance < 0 {
		return fmt.Errorf("add player %s: %w", p.Name, ErrNegativeBalance)
	}
	if len(t.seats) >= MaxSeats {
		return fmt.Errorf("add player %s: %w", p.Name, ErrTableFull)
	}
	for _, s := range t.seats {
		if s == p || s.Name == p.Name {
			return fmt.Errorf("add player %s: %w", p.Name, ErrDuplicatePlayer)
		}
	}

	t.seats = append(t.seats, p)
	t.logger.Debug("Player seated", "player", p.Name, "seat", len(t.seats)-1, "balance", p.Balance)
	return nil
}

// Shuffle resets the deck and every seat and starts a new hand. The seat at the
// front of the turn order becomes dealer and the first eligible seat after it
// acts first. Seats with an empty stack are refilled to the default stake.
func (t *Table) Shuffle() error {
	if len(t.seats) < 2 {
		return ErrNotEnoughPlayers
	}
	if !t.finished {
		return fmt.Errorf("shuffle: %w", ErrHandInProgress)
	}

	t.deck.Reset()
	for _, p := range t.seats {
		if p.resetForHand(t.defaultStake) {
			t.refills += t.defaultStake
			t.logger.Info("Refilled empty stack", "player", p.Name, "balance", p.Balance)
		}
	}

	t.board = [5]poker.Card{}
	t.pot = 0
	t.bid = 0
	t.lastRaise = 0
	t.moveCounter = len(t.seats)
	t.playersLeft = len(t.seats)
	t.holeDealt = false
	t.finished = false
	t.everyoneFolded = false
	t.abrupt = false
	t.winners = nil
	t.tiebreaker = false
	t.tiebreakerIndex = 0
	t.tiebreakerValue = 0
	t.handNumber++

	t.dealer = t.front
	t.advance()

	t.logger.Info("Hand started", "hand", t.handNumber, "dealer", t.seats[t.dealer].Name, "first", t.seats[t.front].Name)
	t.emit(Event{Type: EventHandStarted, Players: t.seats, Dealer: t.seats[t.dealer]})
	return nil
}

// advance rotates the turn order to the next seat able to act. It reports
// false, leaving the order unchanged, if no seat can act.
func (t *Table) advance() bool {
	n := len(t.seats)
	for i := 1; i <= n; i++ {
		idx := (t.front + i) % n
		if t.seats[idx].CanAct() {
			t.front = idx
			return true
		}
	}
	return false
}

// IsNext reports whether p is the player to act.
func (t *Table) IsNext(p *Player) bool {
	return !t.finished && p != nil && t.seats[t.front] == p
}

// Current returns the player to act, or nil when no hand is in progress.
func (t *Table) Current() *Player {
	if t.finished || len(t.seats) == 0 {
		return nil
	}
	return t.seats[t.front]
}

// Players returns the seats in seat order.
func (t *Table) Players() []*Player {
	return slices.Clone(t.seats)
}

// Dealer returns the player holding the button for the current or last hand.
func (t *Table) Dealer() *Player {
	if t.handNumber == 0 {
		return nil
	}
	return t.seats[t.dealer]
}

// Board returns the five community card slots; unrevealed slots are zero cards.
func (t *Table) Board() [5]poker.Card {
	return t.board
}

// BoardCards returns only the revealed community cards.
func (t *Table) BoardCards() []poker.Card {
	cards := make([]poker.Card, 0, 5)
	for _, c := range t.board {
		if !c.IsZero() {
			cards = append(cards, c)
		}
	}
	return cards
}

// Street returns the phase of the current hand.
func (t *Table) Street() Street {
	switch {
	case t.finished:
		return Showdown
	case !t.holeDealt:
		return PreDeal
	case t.board[0].IsZero():
		return PreFlop
	case t.board[3].IsZero():
		return Flop
	case t.board[4].IsZero():
		return Turn
	default:
		return River
	}
}

func (t *Table) Pot() int { return t.pot }
func (t *Table) Bid() int { return t.bid }
func (t *Table) LastRaise() int { return t.lastRaise }
func (t *Table) MoveCounter() int { return t.moveCounter }
func (t *Table) PlayersLeft() int { return t.playersLeft }
func (t *Table) Finished() bool { return t.finished }
func (t *Table) EveryoneFolded() bool { return t.everyoneFolded }
func (t *Table) HandNumber() int { return t.handNumber }

// Abrupt reports whether the last hand was run out without further betting
// because no more than one player could act.
func (t *Table) Abrupt() bool { return t.abrupt }

// Winners returns the winners of the last resolved hand. More than one winner
// means an exact tie.
func (t *Table) Winners() []*Player {
	return slices.Clone(t.winners)
}

// Tiebreaker reports whether a kicker decided the last showdown, along with the
// kicker position and the winning rank at that position.
func (t *Table) Tiebreaker() (used bool, index int, value poker.Rank) {
	return t.tiebreaker, t.tiebreakerIndex, t.tiebreakerValue
}

// Refills returns the total chips injected by bankrupt recovery.
func (t *Table) Refills() int {
	return t.refills
}

// ChipsInPlay returns balances plus any chips still at stake in an unresolved hand.
func (t *Table) ChipsInPlay() int {
	total := 0
	for _, p := range t.seats {
		total += p.Balance
	}
	if !t.finished {
		total += t.pot
	}
	return total
}

// CheckInvariants verifies pot accounting and turn order. It returns nil when
// the table is consistent.
func (t *Table) CheckInvariants() error {
	var errs []error

	inPot, canAct := 0, 0
	for _, p := range t.seats {
		inPot += p.InPot
		if p.Balance < 0 {
			errs = append(errs, fmt.Errorf("player %s has negative balance %d", p.Name, p.Balance))
		}
		if p.CanAct() {
			canAct++
		}
	}
	if inPot != t.pot {
		errs = append(errs, fmt.Errorf("pot %d does not match committed chips %d", t.pot, inPot))
	}

	if !t.finished && len(t.seats) > 0 {
		if !t.seats[t.front].CanAct() {
			errs = append(errs, fmt.Errorf("player to act %s cannot act", t.seats[t.front].Name))
		}
		if canAct != t.playersLeft {
			errs = append(errs, fmt.Errorf("players left %d does not match %d active seats", t.playersLeft, canAct))
		}
		for _, p := range t.seats {
			if p.CanAct() && p.Bid > t.bid {
				errs = append(errs, fmt.Errorf("player %s bid %d exceeds table bid %d", p.Name, p.Bid, t.bid))
			}
		}
	}

	return errors.Join(errs...)
}

func (t *Table) seatOf(p *Player) int {
	return slices.Index(t.seats, p)
}

// contenders returns the players who have not folded, in seat order.
func (t *Table) contenders() []*Player {
	var out []*Player
	for _, p := range t.seats {
		if !p.Folded {
			out = append(out, p)
		}
	}
	return out
}
