package game

import (
	"fmt"
	"slices"

	"github.com/lox/holdem/poker"
)

// closeRound ends a betting round and moves the hand to its next phase.
func (t *Table) closeRound() error {
	t.moveCounter = t.playersLeft
	for _, p := range t.seats {
		p.Bid = 0
	}
	t.bid = 0
	t.lastRaise = 0

	if t.playersLeft <= 1 {
		return t.resolveAbrupt()
	}

	var err error
	switch t.Street() {
	case PreDeal:
		err = t.dealHoleCards()
	case PreFlop:
		err = t.reveal(0, 3)
	case Flop:
		err = t.reveal(3, 1)
	case Turn:
		err = t.reveal(4, 1)
	default:
		return t.resolve()
	}
	if err != nil {
		return err
	}

	t.front = t.dealer
	t.advance()
	return nil
}

// dealHoleCards gives two cards to every seat still in the hand, one at a time
// starting left of the dealer.
func (t *Table) dealHoleCards() error {
	n := len(t.seats)
	for pass := range 2 {
		for i := 1; i <= n; i++ {
			p := t.seats[(t.dealer+i)%n]
			if p.Folded {
				continue
			}
			card, err := t.deck.DrawCard()
			if err != nil {
				return fmt.Errorf("deal hole cards: %w", err)
			}
			p.Hole[pass] = card
		}
	}
	t.holeDealt = true

	t.logger.Debug("Hole cards dealt", "hand", t.handNumber)
	for _, p := range t.seats {
		if p.HasCards() {
			t.emit(Event{Type: EventHoleCardsDealt, Player: p, Cards: slices.Clone(p.Hole[:])})
		}
	}
	return nil
}

// reveal burns one card and then turns n community cards face up from slot from.
func (t *Table) reveal(from, n int) error {
	if err := t.deck.Burn(); err != nil {
		return fmt.Errorf("burn: %w", err)
	}
	for i := from; i < from+n; i++ {
		card, err := t.deck.DrawCard()
		if err != nil {
			return fmt.Errorf("deal board: %w", err)
		}
		t.board[i] = card
	}

	cards := slices.Clone(t.board[from : from+n])
	t.logger.Info("Board dealt", "street", t.Street(), "cards", poker.FormatCards(cards))
	t.emit(Event{Type: EventBoardDealt, Cards: cards})
	return nil
}

// resolveAbrupt runs out the rest of the hand when no more betting is possible
// and resolves it.
func (t *Table) resolveAbrupt() error {
	t.abrupt = true
	t.logger.Debug("Running out the board", "hand", t.handNumber, "street", t.Street())

	if !t.holeDealt {
		if err := t.dealHoleCards(); err != nil {
			return err
		}
	}
	for t.board[4].IsZero() {
		var err error
		switch t.Street() {
		case PreFlop:
			err = t.reveal(0, 3)
		case Flop:
			err = t.reveal(3, 1)
		default:
			err = t.reveal(4, 1)
		}
		if err != nil {
			return err
		}
	}

	return t.resolve()
}
