package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/poker"
)

// seat describes a test player.
type seat struct {
	name    string
	balance int
}

// newTestTable seats the players in order and starts the first hand. The first
// seat deals, so the second seat acts first.
func newTestTable(t *testing.T, seats []seat, opts ...TableOption) (*Table, []*Player) {
	t.Helper()

	opts = append([]TableOption{WithRNG(randutil.New(42))}, opts...)
	tbl := NewTable(opts...)
	players := make([]*Player, len(seats))
	for i, s := range seats {
		players[i] = NewPlayer(s.name, s.balance)
		require.NoError(t, tbl.AddPlayer(players[i]))
	}
	require.NoError(t, tbl.Shuffle())
	return tbl, players
}

func headsUp(t *testing.T, a, b int, opts ...TableOption) (*Table, *Player, *Player) {
	t.Helper()
	tbl, ps := newTestTable(t, []seat{{"Alice", a}, {"Bob", b}}, opts...)
	return tbl, ps[0], ps[1]
}

func stacked(s string) TableOption {
	return WithDeck(poker.NewStackedDeck(poker.MustParseCards(s)...))
}

// checkDown checks every remaining round until the hand resolves.
func checkDown(t *testing.T, tbl *Table) {
	t.Helper()
	for i := 0; !tbl.Finished(); i++ {
		require.Less(t, i, 100, "hand did not finish")
		require.NoError(t, tbl.Check(tbl.Current()))
	}
}

// snapshot captures the table state a rejected action must not touch.
type snapshot struct {
	pot, bid, lastRaise, moveCounter, playersLeft int
	current                                       *Player
	street                                        Street
	balances, bids                                []int
}

func takeSnapshot(tbl *Table) snapshot {
	s := snapshot{
		pot:         tbl.Pot(),
		bid:         tbl.Bid(),
		lastRaise:   tbl.LastRaise(),
		moveCounter: tbl.MoveCounter(),
		playersLeft: tbl.PlayersLeft(),
		current:     tbl.Current(),
		street:      tbl.Street(),
	}
	for _, p := range tbl.Players() {
		s.balances = append(s.balances, p.Balance)
		s.bids = append(s.bids, p.Bid)
	}
	return s
}
