package game

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfTurn is returned when the acting player is not at the front of the turn order.
	ErrOutOfTurn = errors.New("not the player's turn")
	// ErrBelowMinimumRaise is returned for a raise smaller than the last raise that is not all-in.
	ErrBelowMinimumRaise = errors.New("raise below minimum")
	// ErrInsufficientFunds is returned by MakeBid under RejectOverbet when the player cannot cover the bid.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrCannotCheck is returned when a player who owes chips tries to check.
	ErrCannotCheck = errors.New("cannot check while owing chips")
	// ErrGameFinished is returned for actions when no hand is in progress.
	ErrGameFinished = errors.New("no hand in progress")
	// ErrInvalidAmount is returned for negative bid amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	ErrNotEnoughPlayers = errors.New("at least two players required")
	ErrHandInProgress   = errors.New("hand in progress")
	ErrTableFull        = errors.New("table is full")
	ErrDuplicatePlayer  = errors.New("player already seated")
	ErrNegativeBalance  = errors.New("negative balance")
)

// ActionError describes a rejected action. The table is left untouched when
// an action is rejected. Use errors.Is with the Err* values to test the kind.
type ActionError struct {
	Action Action
	Player string
	Err    error
	Detail string
}

func (e *ActionError) Error() string {
	msg := fmt.Sprintf("%s by %s rejected: %v", e.Action, e.Player, e.Err)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func reject(action Action, p *Player, err error, detail string, args ...any) *ActionError {
	name := "<nil>"
	if p != nil {
		name = p.Name
	}
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &ActionError{Action: action, Player: name, Err: err, Detail: detail}
}
