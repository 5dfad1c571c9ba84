package game

import (
	"fmt"
	"slices"

	"github.com/lox/holdem/poker"
)

// resolve picks the winners, pays out the pot and ends the hand. A fold-out
// awards the pot to the last player standing without evaluating hands.
func (t *Table) resolve() error {
	contenders := t.contenders()

	if t.everyoneFolded {
		t.winners = contenders[:1]
	} else {
		hands := make([]poker.HandValue, len(contenders))
		for i, p := range contenders {
			cards := make([]poker.Card, 0, 7)
			cards = append(cards, p.Hole[:]...)
			cards = append(cards, t.BoardCards()...)
			hv, err := poker.Evaluate(cards...)
			if err != nil {
				return fmt.Errorf("showdown for %s: %w", p.Name, err)
			}
			p.Hand = hv.Category
			p.Kickers = hv.Kickers
			hands[i] = hv
		}

		result := poker.SelectWinners(hands)
		t.winners = make([]*Player, len(result.Winners))
		for i, idx := range result.Winners {
			t.winners[i] = contenders[idx]
		}
		t.tiebreaker = result.Tiebreaker
		t.tiebreakerIndex = result.TiebreakerIndex
		t.tiebreakerValue = result.TiebreakerValue
	}

	t.payout()
	t.finished = true
	t.front = (t.dealer + 1) % len(t.seats)

	t.logWinners()
	t.emit(Event{
		Type:           EventHandFinished,
		Players:        t.seats,
		Winners:        t.winners,
		EveryoneFolded: t.everyoneFolded,
		Abrupt:         t.abrupt,
	})
	return nil
}

// payout splits the pot evenly between the winners. Chips left over from the
// division go one at a time to winners in seat order starting left of the dealer.
func (t *Table) payout() {
	share := t.pot / len(t.winners)
	for _, w := range t.winners {
		w.Balance += share
		w.Won = share
	}

	remainder := t.pot % len(t.winners)
	n := len(t.seats)
	for i := 1; remainder > 0 && i <= n; i++ {
		p := t.seats[(t.dealer+i)%n]
		if slices.Contains(t.winners, p) {
			p.Balance++
			p.Won++
			remainder--
		}
	}
}

func (t *Table) logWinners() {
	names := make([]string, len(t.winners))
	for i, w := range t.winners {
		names[i] = w.Name
	}

	if t.everyoneFolded {
		t.logger.Info("Hand won uncontested", "hand", t.handNumber, "winner", names[0], "pot", t.pot)
		return
	}
	w := t.winners[0]
	t.logger.Info("Showdown",
		"hand", t.handNumber,
		"winners", names,
		"category", w.Hand,
		"pot", t.pot,
		"tiebreaker", t.tiebreaker)
	if t.tiebreaker {
		t.logger.Debug("Kicker decided showdown", "position", t.tiebreakerIndex, "rank", t.tiebreakerValue)
	}
}
