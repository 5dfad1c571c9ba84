package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem/internal/game"
)

// ErrNotTurn is returned by Agent.Act when the agent's player is not to act.
var ErrNotTurn = errors.New("not the bot's turn")

// Agent plays one seat with a policy, pausing for a think delay before each action.
type Agent struct {
	player *game.Player
	policy Policy
	clock  quartz.Clock
	delay  time.Duration
	logger *log.Logger
}

// AgentOption configures an Agent.
type AgentOption func(*Agent)

// WithClock sets the clock used for the think delay. Tests use quartz.NewMock.
func WithClock(clock quartz.Clock) AgentOption {
	return func(a *Agent) { a.clock = clock }
}

// WithThinkDelay sets how long the agent waits before acting.
func WithThinkDelay(d time.Duration) AgentOption {
	return func(a *Agent) { a.delay = d }
}

func WithLogger(logger *log.Logger) AgentOption {
	return func(a *Agent) { a.logger = logger }
}

// NewAgent creates an agent playing p with policy.
func NewAgent(p *game.Player, policy Policy, opts ...AgentOption) *Agent {
	a := &Agent{
		player: p,
		policy: policy,
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.WithPrefix("bot")
	return a
}

// Player returns the seat the agent plays.
func (a *Agent) Player() *game.Player {
	return a.player
}

// Act waits out the think delay and then plays one action. It returns
// ErrNotTurn without waiting when the agent's player is not to act, and the
// context error if ctx ends during the delay.
func (a *Agent) Act(ctx context.Context, st *game.SyncTable) (Decision, error) {
	if !st.IsNext(a.player) {
		return Decision{}, ErrNotTurn
	}

	if a.delay > 0 {
		timer := a.clock.NewTimer(a.delay, "bot", "think")
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Decision{}, ctx.Err()
		case <-timer.C:
		}
	}

	var d Decision
	err := st.Do(func(t *game.Table) error {
		if !t.IsNext(a.player) {
			return ErrNotTurn
		}
		var err error
		d, err = Play(t, a.player, a.policy)
		return err
	})
	if err != nil {
		return d, err
	}

	a.logger.Info("Bot acted",
		"player", a.player.Name,
		"action", d.Action,
		"amount", d.Amount,
		"reasoning", d.Reasoning)
	return d, nil
}

// Play asks policy for a decision and applies it to t. A decision the table
// rejects is replaced by a call, which is always legal for the player to act.
func Play(t *game.Table, p *game.Player, policy Policy) (Decision, error) {
	d := policy.Decide(t, p)
	err := apply(t, p, d)

	var ae *game.ActionError
	if errors.As(err, &ae) && !errors.Is(err, game.ErrOutOfTurn) && !errors.Is(err, game.ErrGameFinished) {
		d = Decision{Action: game.Call, Reasoning: fmt.Sprintf("%s (fallback after %v)", d.Reasoning, ae.Err)}
		err = t.Call(p)
	}
	return d, err
}

func apply(t *game.Table, p *game.Player, d Decision) error {
	switch d.Action {
	case game.Fold:
		return t.Fold(p)
	case game.Check:
		return t.Check(p)
	case game.Call:
		return t.Call(p)
	case game.Bid:
		return t.MakeBid(p, d.Amount)
	default:
		return fmt.Errorf("unknown action %v", d.Action)
	}
}
