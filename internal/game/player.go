package game

import (
	"github.com/lox/holdem/poker"
)

// Player is the per-seat state of someone at the table. Players are created
// once and persist across hands; the table resets the per-hand fields on Shuffle.
// Callers read these fields but must only change them through Table methods.
type Player struct {
	Name string

	// Hole holds the two private cards. Both are zero until dealt.
	Hole [2]poker.Card

	Balance int // chips behind
	Bid     int // chips committed in the current betting round
	InPot   int // chips committed across the whole hand

	Folded bool
	// Bankrupt marks an all-in player: they cannot act again this hand but
	// stay eligible at showdown.
	Bankrupt bool

	// Hand and Kickers are valid after a showdown only.
	Hand    poker.HandCategory
	Kickers []poker.Rank

	// Won is the number of chips awarded to the player by the last resolved hand.
	Won int
}

// NewPlayer creates a player with the given starting balance.
func NewPlayer(name string, balance int) *Player {
	return &Player{Name: name, Balance: balance}
}

// CanAct reports whether the player can still make voluntary actions this hand.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.Bankrupt
}

// HasCards reports whether hole cards have been dealt to the player.
func (p *Player) HasCards() bool {
	return !p.Hole[0].IsZero() && !p.Hole[1].IsZero()
}

// resetForHand clears per-hand state and refills an empty stack. It reports
// whether the balance was refilled.
func (p *Player) resetForHand(stake int) bool {
	p.Hole = [2]poker.Card{}
	p.Bid = 0
	p.InPot = 0
	p.Folded = false
	p.Bankrupt = false
	p.Hand = poker.HighCard
	p.Kickers = nil
	p.Won = 0

	if p.Balance == 0 {
		p.Balance = stake
		return true
	}
	return false
}

// commit moves chips from the player's stack into the current round.
func (p *Player) commit(amount int) {
	p.Balance -= amount
	p.Bid += amount
	p.InPot += amount
}
