package tui

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/coder/quartz"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/poker"
)

// Feed turns table events into log lines for the model. Handle runs inside
// the table lock, possibly on a bot goroutine, so lines are buffered until
// the model drains them.
type Feed struct {
	viewer *game.Player
	clock  quartz.Clock

	mu    sync.Mutex
	lines []string
}

// NewFeed creates a feed that shows hole cards only for viewer.
func NewFeed(viewer *game.Player, clock quartz.Clock) *Feed {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Feed{viewer: viewer, clock: clock}
}

// Handle is a game.EventHandler.
func (f *Feed) Handle(e game.Event) {
	line := f.format(e)
	if line == "" {
		return
	}
	line = InfoStyle.Render(f.clock.Now().Format("15:04:05")) + " " + line

	f.mu.Lock()
	f.lines = append(f.lines, line)
	f.mu.Unlock()
}

func (f *Feed) drain() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := f.lines
	f.lines = nil
	return lines
}

func (f *Feed) format(e game.Event) string {
	switch e.Type {
	case game.EventHandStarted:
		return HandInfoStyle.Render(fmt.Sprintf("*** HAND %d *** %s deals", e.Hand, e.Dealer.Name))
	case game.EventHoleCardsDealt:
		if e.Player != f.viewer {
			return ""
		}
		return fmt.Sprintf("Dealt to %s %s", e.Player.Name, renderCards(e.Cards))
	case game.EventBoardDealt:
		return HandInfoStyle.Render(fmt.Sprintf("*** %s ***", strings.ToUpper(e.Street.String()))) + " " + renderCards(e.Cards)
	case game.EventPlayerAction:
		return formatAction(e)
	case game.EventHandFinished:
		return formatResult(e)
	}
	return ""
}

func formatAction(e game.Event) string {
	var s string
	switch e.Action {
	case game.Fold:
		s = fmt.Sprintf("%s folds", e.Player.Name)
	case game.Check:
		s = fmt.Sprintf("%s checks", e.Player.Name)
	case game.Call:
		s = fmt.Sprintf("%s calls %d", e.Player.Name, e.Amount)
	case game.Bid:
		s = fmt.Sprintf("%s bids to %d", e.Player.Name, e.Total)
	default:
		s = fmt.Sprintf("%s %s %d", e.Player.Name, e.Action, e.Amount)
	}
	if e.AllIn {
		s += " " + WarningStyle.Render("(all-in)")
	}
	return s
}

func formatResult(e game.Event) string {
	var b strings.Builder
	if !e.EveryoneFolded {
		for _, p := range e.Players {
			if p.Folded {
				continue
			}
			fmt.Fprintf(&b, "%s shows %s %s\n", p.Name, renderCards(p.Hole[:]), formatHand(p))
		}
	}
	for i, w := range e.Winners {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("%s wins %d", w.Name, w.Won)))
		if !e.EveryoneFolded {
			b.WriteString(" with " + w.Hand.String())
		}
	}
	return b.String()
}

func formatHand(p *game.Player) string {
	return poker.HandValue{Category: p.Hand, Kickers: p.Kickers}.String()
}

// madeHand names the best hand p holds with the cards on board so far.
func madeHand(p *game.Player, board []poker.Card) string {
	if !p.HasCards() || len(board) < 3 {
		return ""
	}
	v, err := poker.Evaluate(slices.Concat(p.Hole[:], board)...)
	if err != nil {
		return ""
	}
	return v.Category.String()
}
