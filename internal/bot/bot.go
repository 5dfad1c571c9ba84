// Package bot provides computer opponents. A bot only reads table state and
// calls the same action methods a human player uses.
package bot

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/lox/holdem/internal/game"
)

// Decision is the action a policy chose for its player.
type Decision struct {
	Action    game.Action
	Amount    int // raise size for game.Bid
	Reasoning string
}

// Policy chooses an action for p. It is called with the table locked and must
// not act on the table itself.
type Policy interface {
	Decide(t *game.Table, p *game.Player) Decision
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(t *game.Table, p *game.Player) Decision

func (f PolicyFunc) Decide(t *game.Table, p *game.Player) Decision { return f(t, p) }

var strategies = map[string]func(rng *rand.Rand) Policy{
	"random": func(rng *rand.Rand) Policy { return NewRandBot(rng) },
	"call":   func(*rand.Rand) Policy { return CallBot{} },
	"fold":   func(*rand.Rand) Policy { return FoldBot{} },
	"maniac": func(rng *rand.Rand) Policy { return NewManiacBot(rng) },
}

// Strategies lists the names accepted by New.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the named policy.
func New(strategy string, rng *rand.Rand) (Policy, error) {
	mk, ok := strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("unknown bot strategy %q (want one of %v)", strategy, Strategies())
	}
	return mk(rng), nil
}

// owed returns how much p must add to match the table bid.
func owed(t *game.Table, p *game.Player) int {
	return max(t.Bid()-p.Bid, 0)
}

// passive checks when nothing is owed and calls otherwise.
func passive(t *game.Table, p *game.Player, reason string) Decision {
	if owed(t, p) == 0 {
		return Decision{Action: game.Check, Reasoning: reason + " checking"}
	}
	return Decision{Action: game.Call, Reasoning: reason + " calling"}
}

// minRaise is the smallest raise the table accepts, at least one chip.
func minRaise(t *game.Table) int {
	return max(t.LastRaise(), 1)
}
