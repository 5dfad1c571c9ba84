package poker

import (
	"testing"

	oracle "github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"
)

// toOracle converts a card to the paulhankin/poker representation, where aces
// are rank 1.
func toOracle(t *testing.T, c Card) oracle.Card {
	t.Helper()
	rank := oracle.Rank(c.Rank)
	if c.Rank == Ace {
		rank = 1
	}
	oc, err := oracle.MakeCard(oracle.Suit(c.Suit), rank)
	require.NoError(t, err)
	return oc
}

func oracleEval(t *testing.T, cards []Card) int16 {
	t.Helper()
	var hand [7]oracle.Card
	for i, c := range cards {
		hand[i] = toOracle(t, c)
	}
	return oracle.Eval7(&hand)
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// TestCompareAgreesWithOracle deals random heads-up showdowns and checks that
// category/kicker comparison orders hands exactly like an independent evaluator.
func TestCompareAgreesWithOracle(t *testing.T) {
	t.Parallel()

	rng := newTestRNG(99)
	for i := range 5000 {
		d := NewDeck(rng, 1)
		draw := func(n int) []Card {
			out := make([]Card, n)
			for j := range out {
				c, err := d.DrawCard()
				require.NoError(t, err)
				out[j] = c
			}
			return out
		}
		board := draw(5)
		a := append(draw(2), board...)
		b := append(draw(2), board...)

		va, err := Evaluate(a...)
		require.NoError(t, err)
		vb, err := Evaluate(b...)
		require.NoError(t, err)

		want := sign(int(oracleEval(t, a)) - int(oracleEval(t, b)))
		got := Compare(va, vb)
		require.Equal(t, want, got, "deal %d: %s (%s) vs %s (%s)",
			i, FormatCards(a), va, FormatCards(b), vb)
	}
}
