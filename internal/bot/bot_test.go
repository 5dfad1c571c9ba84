package bot

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
)

func newHeadsUp(t *testing.T, seed int64) (*game.Table, *game.Player, *game.Player) {
	t.Helper()
	tbl := game.NewTable(game.WithRNG(randutil.New(seed)), game.WithDefaultStake(500))
	alice := game.NewPlayer("Alice", 500)
	bob := game.NewPlayer("Bob", 500)
	require.NoError(t, tbl.AddPlayer(alice))
	require.NoError(t, tbl.AddPlayer(bob))
	require.NoError(t, tbl.Shuffle())
	return tbl, alice, bob
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, name := range Strategies() {
		p, err := New(name, randutil.New(1))
		require.NoError(t, err, name)
		assert.NotNil(t, p, name)
	}

	_, err := New("shark", randutil.New(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "random")
}

func TestPoliciesPlayLegalHands(t *testing.T) {
	t.Parallel()

	for _, name := range Strategies() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rng := randutil.New(7)
			tbl, alice, bob := newHeadsUp(t, 7)
			policies := map[*game.Player]Policy{}
			for _, p := range []*game.Player{alice, bob} {
				policy, err := New(name, rng)
				require.NoError(t, err)
				policies[p] = policy
			}

			for hand := range 30 {
				if hand > 0 {
					require.NoError(t, tbl.Shuffle())
				}
				for steps := 0; !tbl.Finished(); steps++ {
					require.Less(t, steps, 500)
					p := tbl.Current()
					_, err := Play(tbl, p, policies[p])
					require.NoError(t, err)
					require.NoError(t, tbl.CheckInvariants())
				}
				assert.Equal(t, 1000+tbl.Refills(), tbl.ChipsInPlay())
			}
		})
	}
}

func TestFoldBot(t *testing.T) {
	t.Parallel()
	tbl, alice, bob := newHeadsUp(t, 1)

	assert.Equal(t, game.Check, FoldBot{}.Decide(tbl, bob).Action)
	require.NoError(t, tbl.MakeBid(bob, 50))
	assert.Equal(t, game.Fold, FoldBot{}.Decide(tbl, alice).Action)
}

func TestCallBot(t *testing.T) {
	t.Parallel()
	tbl, alice, bob := newHeadsUp(t, 1)

	assert.Equal(t, game.Check, CallBot{}.Decide(tbl, bob).Action)
	require.NoError(t, tbl.MakeBid(bob, 50))
	assert.Equal(t, game.Call, CallBot{}.Decide(tbl, alice).Action)
}

func TestPlayFallsBackToCall(t *testing.T) {
	t.Parallel()
	tbl, alice, bob := newHeadsUp(t, 1)
	require.NoError(t, tbl.MakeBid(bob, 100))

	tooSmall := PolicyFunc(func(*game.Table, *game.Player) Decision {
		return Decision{Action: game.Bid, Amount: 10, Reasoning: "min-raiser"}
	})
	d, err := Play(tbl, alice, tooSmall)
	require.NoError(t, err)
	assert.Equal(t, game.Call, d.Action)
	assert.Contains(t, d.Reasoning, "raise below minimum")
	assert.Equal(t, 100, alice.InPot)
}

func TestAgentWaitsForThinkDelay(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	tbl, alice, bob := newHeadsUp(t, 3)
	st := game.NewSyncTable(tbl)
	agent := NewAgent(bob, CallBot{}, WithClock(mClock), WithThinkDelay(2*time.Second))

	type result struct {
		d   Decision
		err error
	}
	done := make(chan result, 1)
	go func() {
		d, err := agent.Act(ctx, st)
		done <- result{d, err}
	}()

	require.Eventually(t, func() bool {
		_, ok := mClock.Peek()
		return ok
	}, time.Second, time.Millisecond)

	select {
	case <-done:
		t.Fatal("agent acted before the think delay elapsed")
	default:
	}
	assert.True(t, st.IsNext(bob))

	mClock.Advance(2 * time.Second).MustWait(ctx)

	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, game.Check, r.d.Action)
	assert.True(t, st.IsNext(alice))
}

func TestAgentCancelledDuringDelay(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())

	mClock := quartz.NewMock(t)
	tbl, _, bob := newHeadsUp(t, 3)
	st := game.NewSyncTable(tbl)
	agent := NewAgent(bob, CallBot{}, WithClock(mClock), WithThinkDelay(time.Minute))

	done := make(chan error, 1)
	go func() {
		_, err := agent.Act(ctx, st)
		done <- err
	}()

	require.Eventually(t, func() bool {
		_, ok := mClock.Peek()
		return ok
	}, time.Second, time.Millisecond)
	cancel()

	require.ErrorIs(t, <-done, context.Canceled)
	assert.True(t, st.IsNext(bob), "cancelled agent does not act")
}

func TestAgentNotTurn(t *testing.T) {
	t.Parallel()
	tbl, alice, _ := newHeadsUp(t, 3)
	agent := NewAgent(alice, CallBot{})

	_, err := agent.Act(context.Background(), game.NewSyncTable(tbl))
	require.ErrorIs(t, err, ErrNotTurn)
}
