package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/poker"
)

// seatView is a copy of one seat taken under the table lock.
type seatView struct {
	name     string
	hole     [2]poker.Card
	dealt    bool
	balance  int
	bid      int
	inPot    int
	won      int
	folded   bool
	allIn    bool
	dealer   bool
	acting   bool
	winner   bool
	handName string
}

type tableView struct {
	hand     int
	street   game.Street
	board    []poker.Card
	pot      int
	bid      int
	finished bool
	seats    []seatView
}

func (m *Model) snapshot() tableView {
	var v tableView
	m.table.Read(func(t *game.Table) {
		v = tableView{
			hand:     t.HandNumber(),
			street:   t.Street(),
			board:    t.BoardCards(),
			pot:      t.Pot(),
			bid:      t.Bid(),
			finished: t.Finished(),
		}
		winners := t.Winners()
		showdown := t.HandNumber() > 0 && t.Finished() && !t.EveryoneFolded()
		for _, p := range t.Players() {
			s := seatView{
				name:    p.Name,
				dealt:   p.HasCards(),
				balance: p.Balance,
				bid:     p.Bid,
				inPot:   p.InPot,
				won:     p.Won,
				folded:  p.Folded,
				allIn:   p.Bankrupt,
				dealer:  p == t.Dealer(),
				acting:  t.IsNext(p),
			}
			for _, w := range winners {
				s.winner = s.winner || w == p
			}
			// Opponents' cards stay face down unless they reached a showdown.
			if p == m.human || (showdown && !p.Folded) {
				s.hole = p.Hole
			}
			if p == m.human {
				s.handName = madeHand(p, v.board)
			}
			v.seats = append(v.seats, s)
		}
	})
	return v
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	v := m.snapshot()

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.title(v)))
	b.WriteString("\n")
	b.WriteString(BoardStyle.Render(m.renderTable(v)))
	b.WriteString("\n")
	b.WriteString(LogStyle.Render(m.log.View()))
	b.WriteString("\n")

	switch {
	case m.bidding:
		b.WriteString(m.bidInput.View())
	case m.status != "":
		b.WriteString(m.status)
	case m.thinking:
		b.WriteString(InfoStyle.Render("Waiting for the bots..."))
	case v.finished:
		b.WriteString(InfoStyle.Render("Press n to deal the next hand"))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) title(v tableView) string {
	if v.hand == 0 {
		return "Hold'em"
	}
	return fmt.Sprintf("Hold'em | Hand %d | %s", v.hand, v.street)
}

func (m *Model) renderTable(v tableView) string {
	board := make([]poker.Card, 5)
	copy(board, v.board)

	var b strings.Builder
	fmt.Fprintf(&b, "Board %s   ", renderCards(board))
	b.WriteString(WarningStyle.Render(fmt.Sprintf("Pot: %d  Bid: %d", v.pot, v.bid)))
	b.WriteString("\n")

	rows := make([]string, len(v.seats))
	for i, s := range v.seats {
		rows[i] = renderSeat(s)
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return b.String()
}

func renderSeat(s seatView) string {
	marker := "  "
	if s.acting {
		marker = ActingStyle.Render("> ")
	}

	cards := ""
	if s.dealt {
		cards = renderCards(s.hole[:])
	}

	var flags []string
	if s.dealer {
		flags = append(flags, "dealer")
	}
	if s.folded {
		flags = append(flags, "folded")
	}
	if s.allIn {
		flags = append(flags, "all-in")
	}
	if s.handName != "" {
		flags = append(flags, s.handName)
	}

	line := fmt.Sprintf("%s%-12s %-9s balance %6d  bid %5d  in pot %6d", marker, s.name, cards, s.balance, s.bid, s.inPot)
	if len(flags) > 0 {
		line += "  " + InfoStyle.Render(strings.Join(flags, ", "))
	}
	if s.winner {
		line += "  " + SuccessStyle.Render(fmt.Sprintf("won %d", s.won))
	}
	return line
}
