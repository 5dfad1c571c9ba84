package game

import (
	"github.com/lox/holdem/poker"
)

// Action is one of the four betting actions.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bid
)

func (a Action) String() string {
	if a < Fold || a > Bid {
		return "unknown"
	}
	return [...]string{"fold", "check", "call", "bid"}[a]
}

// Street is the phase of the hand.
type Street int

const (
	// PreDeal is the first betting round, before hole cards are dealt.
	PreDeal Street = iota
	PreFlop
	Flop
	Turn
	River
	// Showdown means the hand is resolved.
	Showdown
)

func (s Street) String() string {
	if s < PreDeal || s > Showdown {
		return "unknown"
	}
	return [...]string{"predeal", "preflop", "flop", "turn", "river", "showdown"}[s]
}

// EventType identifies what happened at the table.
type EventType int

const (
	EventHandStarted EventType = iota
	EventHoleCardsDealt
	EventBoardDealt
	EventPlayerAction
	EventHandFinished
)

func (e EventType) String() string {
	if e < EventHandStarted || e > EventHandFinished {
		return "unknown"
	}
	return [...]string{"hand_started", "hole_cards_dealt", "board_dealt", "player_action", "hand_finished"}[e]
}

// Event is emitted synchronously to the table's EventHandler. Fields are filled
// according to Type; Players and Winners alias live table state and must not
// be retained past the handler call without copying.
type Event struct {
	Type   EventType
	Hand   int
	Street Street
	Pot    int

	// EventHandStarted
	Players []*Player
	Dealer  *Player

	// EventPlayerAction
	Player *Player
	Action Action
	Amount int  // chips moved by this action
	Total  int  // player's round commitment after the action
	AllIn  bool // the action emptied the player's stack

	// EventHoleCardsDealt and EventBoardDealt
	Cards []poker.Card

	// EventHandFinished
	Winners        []*Player
	EveryoneFolded bool
	Abrupt         bool
}

// EventHandler receives table events.
type EventHandler func(Event)

func (t *Table) emit(e Event) {
	if t.onEvent == nil {
		return
	}
	e.Hand = t.handNumber
	e.Street = t.Street()
	e.Pot = t.pot
	t.onEvent(e)
}
