package bot

import (
	"math/rand/v2"

	"github.com/lox/holdem/internal/game"
)

// RandBot picks a random action. It never folds when it could check for free.
type RandBot struct {
	rng *rand.Rand
}

func NewRandBot(rng *rand.Rand) *RandBot {
	return &RandBot{rng: rng}
}

func (r *RandBot) Decide(t *game.Table, p *game.Player) Decision {
	roll := r.rng.Float64()
	switch {
	case roll < 0.1 && owed(t, p) > 0:
		return Decision{Action: game.Fold, Reasoning: "rand-bot folding"}
	case roll < 0.75:
		return passive(t, p, "rand-bot")
	}

	// Raise between one and three minimum raises, staying inside the stack.
	room := p.Balance - owed(t, p)
	if room <= 0 {
		return passive(t, p, "rand-bot")
	}
	step := minRaise(t)
	amount := min(step*(1+r.rng.IntN(3)), room)
	return Decision{Action: game.Bid, Amount: amount, Reasoning: "rand-bot raising"}
}

// CallBot checks or calls every street.
type CallBot struct{}

func (CallBot) Decide(t *game.Table, p *game.Player) Decision {
	return passive(t, p, "call-bot")
}

// FoldBot checks when it can and folds to any bet.
type FoldBot struct{}

func (FoldBot) Decide(t *game.Table, p *game.Player) Decision {
	if owed(t, p) == 0 {
		return Decision{Action: game.Check, Reasoning: "fold-bot checking"}
	}
	return Decision{Action: game.Fold, Reasoning: "fold-bot folding"}
}

// ManiacBot bets most of the time and shoves often.
type ManiacBot struct {
	rng *rand.Rand
}

func NewManiacBot(rng *rand.Rand) *ManiacBot {
	return &ManiacBot{rng: rng}
}

func (m *ManiacBot) Decide(t *game.Table, p *game.Player) Decision {
	roll := m.rng.Float64()
	room := p.Balance - owed(t, p)

	if owed(t, p) == 0 {
		if roll >= 0.85 || room <= 0 {
			return Decision{Action: game.Check, Reasoning: "maniac checking"}
		}
		if roll < 0.25 {
			return Decision{Action: game.Bid, Amount: room, Reasoning: "maniac shove"}
		}
		return Decision{Action: game.Bid, Amount: min(max(room*3/4, minRaise(t)), room), Reasoning: "maniac big raise"}
	}

	switch {
	case roll < 0.4 && room > 0:
		return Decision{Action: game.Bid, Amount: room, Reasoning: "maniac shove over bet"}
	case roll < 0.8:
		return Decision{Action: game.Call, Reasoning: "maniac call"}
	default:
		return Decision{Action: game.Fold, Reasoning: "maniac fold"}
	}
}
