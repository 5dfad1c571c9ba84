package phh

import (
	"fmt"
	"slices"
	"time"

	"github.com/lox/holdem/internal/game"
)

// Recorder builds a HandHistory from table events. Pass its Handle method to
// game.WithEventHandler. It is not safe for concurrent use; the table calls it
// synchronously.
type Recorder struct {
	table  string
	onHand func(*HandHistory)
	now    func() time.Time

	seats   []*game.Player
	current *HandHistory
	last    *HandHistory
}

// NewRecorder creates a recorder for the named table. onHand, if not nil, is
// called with every finished hand.
func NewRecorder(table string, onHand func(*HandHistory)) *Recorder {
	return &Recorder{table: table, onHand: onHand, now: time.Now}
}

// Last returns the most recently finished hand, or nil.
func (r *Recorder) Last() *HandHistory {
	return r.last
}

// Handle consumes one table event.
func (r *Recorder) Handle(e game.Event) {
	if e.Type == game.EventHandStarted {
		r.start(e)
		return
	}
	if r.current == nil {
		return
	}

	h := r.current
	switch e.Type {
	case game.EventHoleCardsDealt:
		h.Actions = append(h.Actions, fmt.Sprintf("d dh %s %s", playerRef(r.seat(e.Player)), FormatCards(e.Cards)))
	case game.EventBoardDealt:
		h.Actions = append(h.Actions, "d db "+FormatCards(e.Cards))
	case game.EventPlayerAction:
		h.Actions = append(h.Actions, FormatAction(r.seat(e.Player), e.Action, e.Total))
	case game.EventHandFinished:
		r.finish(e)
	}
}

func (r *Recorder) start(e game.Event) {
	r.seats = slices.Clone(e.Players)
	n := len(r.seats)

	h := &HandHistory{
		Variant:           "NT",
		Table:             r.table,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            1,
		StartingStacks:    make([]int, n),
		Players:           make([]string, n),
		HandID:            fmt.Sprintf("%s-%05d", r.table, e.Hand),
		Metadata: map[string]any{
			"dealer": playerRef(r.seat(e.Dealer)),
		},
	}
	for i, p := range r.seats {
		h.Seats[i] = i + 1
		h.StartingStacks[i] = p.Balance
		h.Players[i] = p.Name
	}
	h.SetTimestamp(r.now())
	r.current = h
}

func (r *Recorder) finish(e game.Event) {
	h := r.current
	n := len(r.seats)
	h.FinishingStacks = make([]int, n)
	h.Winnings = make([]int, n)
	for i, p := range r.seats {
		h.FinishingStacks[i] = p.Balance
		h.Winnings[i] = p.Won
		if !e.EveryoneFolded && !p.Folded && p.HasCards() {
			h.Actions = append(h.Actions, fmt.Sprintf("%s sm %s", playerRef(i), FormatCards(p.Hole[:])))
		}
	}

	h.Metadata["pot"] = e.Pot
	h.Metadata["everyone_folded"] = e.EveryoneFolded
	h.Metadata["abrupt"] = e.Abrupt
	if !e.EveryoneFolded && len(e.Winners) > 0 {
		h.Metadata["winning_hand"] = e.Winners[0].Hand.String()
	}

	r.last = h
	r.current = nil
	if r.onHand != nil {
		r.onHand(h)
	}
}

func (r *Recorder) seat(p *game.Player) int {
	return slices.Index(r.seats, p)
}
