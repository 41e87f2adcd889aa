package texasholdem

import (
	"errors"
	"fmt"

	"holdem-server/pkg/playable/poker/action"
)

// ErrNotYourTurn is returned when a seat acts out of turn
var ErrNotYourTurn = errors.New("not seat's turn")

// ErrWrongStage is returned when an action is not permitted in the current stage
var ErrWrongStage = errors.New("action not permitted in this stage")

// ErrInvalidSeat is returned for a seat outside the table
var ErrInvalidSeat = errors.New("invalid seat")

// ErrSeatTaken is returned when joining a seat that is already joined
var ErrSeatTaken = errors.New("seat is already taken")

// ErrSeatLeft is returned when a seat that left the table tries to act
var ErrSeatLeft = errors.New("seat has left the table")

// ErrSeatNotActive is returned when a folded or all-in seat tries to bet
var ErrSeatNotActive = errors.New("seat is not active in the hand")

// ErrEmptyStack is returned when a seat with no chips tries to play a hand
var ErrEmptyStack = errors.New("seat has no chips left")

// ErrInvalidAmount is returned when a raise is not a positive amount
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrInsufficientStack is returned when a seat cannot cover the amount
var ErrInsufficientStack = errors.New("amount exceeds seat's stack")

// ErrRaiseTooSmall is returned when a raise does not exceed the highest bet
var ErrRaiseTooSmall = errors.New("raise must exceed the highest bet")

// ErrNothingToCall is returned when a call is attempted with no bet to match
var ErrNothingToCall = errors.New("there is no bet to call")

// ErrCannotCheck is returned when a check is attempted facing a bet
var ErrCannotCheck = errors.New("cannot check facing a bet")

// ErrNotEnoughPlayers is returned when there aren't enough seats to deal a hand
var ErrNotEnoughPlayers = errors.New("need at least two active seats")

// ActionError describes a rejected action
type ActionError struct {
	Seat   int
	Action action.Action
	Amount int
	Err    error
}

func (a *ActionError) Error() string {
	if a.Action == action.Raise {
		return fmt.Sprintf("seat %d cannot %s %d: %v", a.Seat, a.Action.ID(), a.Amount, a.Err)
	}

	return fmt.Sprintf("seat %d cannot %s: %v", a.Seat, a.Action.ID(), a.Err)
}

// Unwrap returns the reason for the rejection
func (a *ActionError) Unwrap() error {
	return a.Err
}

// SeatCountError is an error on the number of configured seats
type SeatCountError int

func (s SeatCountError) Error() string {
	return fmt.Sprintf("expected 2–%d seats, got %d", MaxPlayers, int(s))
}
