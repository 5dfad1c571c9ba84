package game

// validate checks that a hand is in progress and that p is next to act.
func (t *Table) validate(action Action, p *Player) error {
	if t.finished {
		return reject(action, p, ErrGameFinished, "")
	}
	if !t.IsNext(p) {
		return reject(action, p, ErrOutOfTurn, "%s is to act", t.seats[t.front].Name)
	}
	return nil
}

func (t *Table) rejected(err error) error {
	t.logger.Debug("Rejected action", "error", err)
	return err
}

// Check passes the action when the player owes nothing.
func (t *Table) Check(p *Player) error {
	if err := t.validate(Check, p); err != nil {
		return t.rejected(err)
	}
	if p.Bid < t.bid {
		return t.rejected(reject(Check, p, ErrCannotCheck, "owes %d", t.bid-p.Bid))
	}

	t.moveCounter--
	t.acted(p, Check, 0)
	return t.endMove()
}

// Call matches the table bid. A player who already matches it checks instead.
// A player who cannot cover the shortfall goes all-in for their balance.
func (t *Table) Call(p *Player) error {
	if err := t.validate(Call, p); err != nil {
		return t.rejected(err)
	}
	if p.Bid == t.bid {
		return t.Check(p)
	}

	owed := t.bid - p.Bid
	amount := owed
	if p.Balance <= owed {
		amount = p.Balance
	}
	t.commit(p, amount)

	t.moveCounter--
	t.acted(p, Call, amount)
	return t.endMove()
}

// MakeBid raises the table bid by amount, on top of whatever the player owes.
// An amount of zero is a call. Bids above the balance are handled according to
// the table's OverbetPolicy. A raise smaller than the last raise is rejected
// unless it puts the player all-in. A successful raise reopens the round for
// every other active player.
func (t *Table) MakeBid(p *Player, amount int) error {
	if err := t.validate(Bid, p); err != nil {
		return t.rejected(err)
	}
	if amount < 0 {
		return t.rejected(reject(Bid, p, ErrInvalidAmount, "negative amount %d", amount))
	}
	if amount == 0 {
		return t.Call(p)
	}

	// Compare against what is left after the call so huge amounts cannot overflow.
	owed := t.bid - p.Bid
	raise := amount
	if amount > p.Balance-owed {
		if t.overbet == RejectOverbet {
			return t.rejected(reject(Bid, p, ErrInsufficientFunds, "raise %d, can cover %d", amount, max(p.Balance-owed, 0)))
		}
		raise = p.Balance - owed
	}
	total := owed + raise
	allIn := total == p.Balance

	if raise <= 0 {
		// The stack does not even cover the call.
		return t.Call(p)
	}
	if raise < t.lastRaise && !allIn {
		return t.rejected(reject(Bid, p, ErrBelowMinimumRaise, "raise %d, minimum %d", raise, t.lastRaise))
	}

	t.moveCounter = t.playersLeft - 1
	t.lastRaise = max(t.lastRaise, raise)
	t.bid += raise
	t.commit(p, total)

	t.acted(p, Bid, total)
	return t.endMove()
}

// Fold gives up the hand. If only one player has not folded, they win the pot
// immediately without a showdown.
func (t *Table) Fold(p *Player) error {
	if err := t.validate(Fold, p); err != nil {
		return t.rejected(err)
	}

	p.Folded = true
	t.moveCounter--
	t.playersLeft--
	t.acted(p, Fold, 0)

	if len(t.contenders()) == 1 {
		t.everyoneFolded = true
		return t.resolve()
	}
	return t.endMove()
}

// commit moves chips into the pot and marks the player all-in when the stack empties.
func (t *Table) commit(p *Player, amount int) {
	p.commit(amount)
	t.pot += amount
	if p.Balance == 0 && !p.Bankrupt {
		p.Bankrupt = true
		t.playersLeft--
	}
}

func (t *Table) acted(p *Player, action Action, amount int) {
	t.logger.Debug("Player action",
		"player", p.Name,
		"action", action,
		"amount", amount,
		"bid", p.Bid,
		"pot", t.pot,
		"allin", p.Bankrupt)
	t.emit(Event{
		Type:   EventPlayerAction,
		Player: p,
		Action: action,
		Amount: amount,
		Total:  p.Bid,
		AllIn:  p.Bankrupt && amount > 0,
	})
}

// endMove finishes an accepted action: the hand is run out when nobody can act,
// the round closes when no actions remain, and otherwise the turn passes on.
func (t *Table) endMove() error {
	if t.playersLeft == 0 {
		if err := t.resolveAbrupt(); err != nil {
			return err
		}
		// Nobody is left to act, so all-in flags are cleared once the hand is paid.
		for _, p := range t.seats {
			p.Bankrupt = false
		}
		return nil
	}
	if t.moveCounter <= 0 {
		return t.closeRound()
	}
	t.advance()
	return nil
}
