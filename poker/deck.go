package poker

import (
	"errors"
	"math/rand/v2"
)

// ErrDeckExhausted is returned when drawing from a deck with no cards left.
var ErrDeckExhausted = errors.New("deck exhausted")

// CardsPerDeck is the size of one standard set of cards.
const CardsPerDeck = NumRanks * NumSuits

// Deck is a multiset of cards built from one or more standard 52-card sets.
// Cards are drawn without replacement; Reset restores the full multiset.
type Deck struct {
	full     []Card
	cards    []Card
	rng      *rand.Rand
	numDecks int
}

// NewDeck creates a deck of numDecks standard sets that draws uniformly at random
// using rng. A numDecks below one is treated as one.
func NewDeck(rng *rand.Rand, numDecks int) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	if numDecks < 1 {
		numDecks = 1
	}

	full := make([]Card, 0, numDecks*CardsPerDeck)
	for range numDecks {
		for rank := Two; rank <= Ace; rank++ {
			for suit := Clubs; suit <= Spades; suit++ {
				full = append(full, NewCard(rank, suit))
			}
		}
	}

	d := &Deck{full: full, rng: rng, numDecks: numDecks}
	d.Reset()
	return d
}

// NewStackedDeck creates a deck that deals the given cards in order. Useful for
// deterministic tests and replaying recorded hands.
func NewStackedDeck(cards ...Card) *Deck {
	full := make([]Card, len(cards))
	copy(full, cards)
	d := &Deck{full: full, numDecks: 1}
	d.Reset()
	return d
}

// Reset restores every card to the deck.
func (d *Deck) Reset() {
	d.cards = append(d.cards[:0], d.full...)
}

// DrawCard removes and returns one card. Random decks pick uniformly among the
// remaining cards; stacked decks return the next card in order.
func (d *Deck) DrawCard() (Card, error) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, ErrDeckExhausted
	}

	if d.rng == nil {
		card := d.cards[0]
		d.cards = d.cards[1:]
		return card, nil
	}

	i := d.rng.IntN(n)
	card := d.cards[i]
	d.cards[i] = d.cards[n-1]
	d.cards = d.cards[:n-1]
	return card, nil
}

// Burn discards one card.
func (d *Deck) Burn() error {
	_, err := d.DrawCard()
	return err
}

// Remaining returns the number of cards left to draw.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// NumDecks returns how many 52-card sets the deck was built from.
func (d *Deck) NumDecks() int {
	return d.numDecks
}
