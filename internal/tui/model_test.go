package tui

import (
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/poker"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// You hold Qh 3d, Computer holds Ah 3c, the board runs Kh Kd 9c 9d 2s.
const kickerDeck = "Ah Qh 3c 3d 5h Kh Kd 9c 6h 9d 7h 2s"

func newModel(t *testing.T, policy bot.Policy) (*Model, *game.SyncTable) {
	t.Helper()
	you := game.NewPlayer("You", 1000)
	computer := game.NewPlayer("Computer", 1000)

	mClock := quartz.NewMock(t)
	feed := NewFeed(you, mClock)
	tbl := game.NewTable(
		game.WithDeck(poker.NewStackedDeck(poker.MustParseCards(kickerDeck)...)),
		game.WithEventHandler(feed.Handle),
	)
	st := game.NewSyncTable(tbl)
	require.NoError(t, st.AddPlayer(you))
	require.NoError(t, st.AddPlayer(computer))

	m := New(Options{
		Table:  st,
		Human:  you,
		Agents: []*bot.Agent{bot.NewAgent(computer, policy)},
		Feed:   feed,
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, st
}

// drive runs cmd and feeds the game messages it produces back into the model
// until no more work is scheduled.
func drive(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drive(t, m, c)
		}
	case handStartedMsg, botActedMsg:
		_, next := m.Update(msg)
		drive(t, m, next)
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		drive(t, m, cmd)
	}
}

func finished(st *game.SyncTable) bool {
	var done bool
	st.Read(func(t *game.Table) { done = t.Finished() })
	return done
}

func TestModelPlaysHandToShowdown(t *testing.T) {
	t.Parallel()
	m, st := newModel(t, bot.CallBot{})

	drive(t, m, m.Init())
	require.False(t, finished(st))
	assert.Contains(t, m.View(), "Hand 1 | predeal")
	assert.Contains(t, m.View(), "> You")

	press(t, m, "k")
	view := m.View()
	assert.Contains(t, view, "[Qh 3d]")
	assert.Contains(t, view, "[?? ??]", "opponent cards are hidden")
	assert.NotContains(t, view, "Ah 3c")
	assert.Contains(t, view, "Dealt to You")
	assert.NotContains(t, view, "Dealt to Computer")

	for i := 0; i < 10 && !finished(st); i++ {
		press(t, m, "k")
	}
	require.True(t, finished(st))

	view = m.View()
	assert.Contains(t, view, "[Ah 3c]", "cards are revealed at showdown")
	assert.Contains(t, view, "Computer wins 0 with Two Pair")
	assert.Contains(t, view, "*** RIVER *** [2s]")
	assert.Contains(t, view, "Press n to deal the next hand")
	assert.Empty(t, m.Status())
}

func TestModelBidFoldOutAndNextHand(t *testing.T) {
	t.Parallel()
	m, st := newModel(t, bot.FoldBot{})
	drive(t, m, m.Init())

	press(t, m, "b")
	require.True(t, m.bidding)
	assert.Contains(t, m.View(), "bid>")

	press(t, m, "5", "0", "enter")
	assert.False(t, m.bidding)
	require.True(t, finished(st))

	view := m.View()
	assert.Contains(t, view, "You bids to 50")
	assert.Contains(t, view, "Computer folds")
	assert.Contains(t, view, "You wins 50")
	assert.NotContains(t, view, "shows")

	press(t, m, "n")
	require.False(t, finished(st))
	assert.Contains(t, m.View(), "Hand 2")
	st.Read(func(tbl *game.Table) {
		assert.Equal(t, "Computer", tbl.Dealer().Name)
		assert.Equal(t, "You", tbl.Current().Name)
	})
}

func TestModelRejectedActions(t *testing.T) {
	t.Parallel()

	t.Run("invalid bid amount", func(t *testing.T) {
		t.Parallel()
		m, _ := newModel(t, bot.CallBot{})
		drive(t, m, m.Init())

		press(t, m, "b", "x", "enter")
		assert.Contains(t, m.Status(), `invalid bid amount "x"`)

		press(t, m, "b", "esc")
		assert.False(t, m.bidding)
	})

	t.Run("out of turn", func(t *testing.T) {
		t.Parallel()
		m, _ := newModel(t, bot.CallBot{})

		// Deal, but leave the bot's command unrun so it stays the bot's turn.
		_, pending := m.Update(m.Init()())
		require.NotNil(t, pending)

		press(t, m, "k")
		assert.Contains(t, m.Status(), "check by You rejected: not the player's turn (Computer is to act)")
		assert.Contains(t, m.View(), "rejected")

		press(t, m, "n")
		assert.Contains(t, m.Status(), "hand in progress")
	})

	t.Run("cannot check a bet", func(t *testing.T) {
		t.Parallel()
		bettor := bot.PolicyFunc(func(tbl *game.Table, p *game.Player) bot.Decision {
			if tbl.Bid() > p.Bid {
				return bot.Decision{Action: game.Call}
			}
			return bot.Decision{Action: game.Bid, Amount: 40}
		})
		m, st := newModel(t, bettor)
		drive(t, m, m.Init())

		press(t, m, "k")
		assert.Contains(t, m.Status(), "cannot check")

		press(t, m, "c")
		assert.Empty(t, m.Status())
		st.Read(func(tbl *game.Table) {
			assert.Equal(t, game.PreFlop, tbl.Street())
			assert.Equal(t, "You", tbl.Current().Name)
			assert.Equal(t, 40, tbl.Bid())
		})
	})
}

func TestModelQuit(t *testing.T) {
	t.Parallel()
	m, _ := newModel(t, bot.CallBot{})

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
	assert.Error(t, m.ctx.Err(), "pending bot moves are cancelled")
}

func TestFeed(t *testing.T) {
	t.Parallel()
	you := game.NewPlayer("You", 100)
	other := game.NewPlayer("Other", 100)

	mClock := quartz.NewMock(t)
	mClock.Set(time.Date(2026, time.March, 3, 9, 30, 0, 0, time.UTC))
	f := NewFeed(you, mClock)

	cards := poker.MustParseCards("Ah Kd")
	f.Handle(game.Event{Type: game.EventHoleCardsDealt, Player: other, Cards: cards})
	assert.Empty(t, f.drain(), "opponent hole cards are not logged")

	f.Handle(game.Event{Type: game.EventHoleCardsDealt, Player: you, Cards: cards})
	f.Handle(game.Event{Type: game.EventPlayerAction, Player: other, Action: game.Call, Amount: 20, Total: 20, AllIn: true})
	lines := f.drain()
	require.Len(t, lines, 2)
	assert.Equal(t, "09:30:00 Dealt to You [Ah Kd]", lines[0])
	assert.Equal(t, "09:30:00 Other calls 20 (all-in)", lines[1])
	assert.Empty(t, f.drain())
}
