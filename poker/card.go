package poker

import (
	"fmt"
	"strings"
)

// Suit is a card suit. The zero value is Clubs.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of distinct suits.
const NumSuits = 4

func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return [...]string{"c", "d", "h", "s"}[s]
}

// Symbol returns the unicode suit glyph.
func (s Suit) Symbol() string {
	if s > Spades {
		return "?"
	}
	return [...]string{"♣", "♦", "♥", "♠"}[s]
}

// IsRed reports whether the suit is hearts or diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is a card rank. Ranks order by their numeric value, Two=2 through Ace=14.
// The zero Rank is not a valid rank and marks an absent card.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct ranks.
const NumRanks = 13

const rankChars = "23456789TJQKA"

func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rankChars[r-Two])
}

// Valid reports whether r is one of Two..Ace.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card is an immutable playing card. The zero Card is face-down: it has no
// rank and represents an undealt slot.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from a rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// IsZero reports whether the card is the face-down placeholder.
func (c Card) IsZero() bool {
	return c.Rank == 0
}

// String returns the two character form, e.g. "As" or "Td". Face-down cards render as "??".
func (c Card) String() string {
	if c.IsZero() {
		return "??"
	}
	return c.Rank.String() + c.Suit.String()
}

// ParseCard parses a card such as "As", "td" or "10h".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	rankPart := strings.ToUpper(s[:len(s)-1])
	if rankPart == "10" {
		rankPart = "T"
	}
	if len(rankPart) != 1 {
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}
	idx := strings.IndexByte(rankChars, rankPart[0])
	if idx < 0 {
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}

	var suit Suit
	switch s[len(s)-1] {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 'h', 'H':
		suit = Hearts
	case 's', 'S':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	return NewCard(Two+Rank(idx), suit), nil
}

// ParseCards parses a whitespace or comma separated list of cards.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests and fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with single spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
