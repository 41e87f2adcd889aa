package texasholdem

import (
	"holdem-server/pkg/playable/poker/action"
)

// BettingRound schedules the turns of one betting round.
// Every active seat gets one turn. A raise reopens the action so every
// other active seat must respond to it.
type BettingRound struct {
	table  *Table
	budget int
	slot   int
}

// Step describes what happened after an action in a betting round
type Step struct {
	Outcome Outcome
	// Broadcast is true when the seats should be sent a fresh snapshot
	Broadcast bool
	// RoundOver is true when the betting round is complete
	RoundOver bool
	// HandOver is true when fewer than two seats are left contesting the pot
	HandOver bool
}

// NewBettingRound resets the round bets and starts a betting round
// with the first active seat after the dealer
func (t *Table) NewBettingRound() *BettingRound {
	t.highestBet = 0
	for _, s := range t.seats {
		s.newRound()
	}

	if next := t.NextActiveSeat(t.dealer); next >= 0 {
		t.turn = next
	}

	return &BettingRound{
		table:  t,
		budget: t.CountStatus(StatusActive),
	}
}

// Done returns true once every scheduled turn has been taken
func (r *BettingRound) Done() bool {
	return r.slot >= r.budget
}

// Turn returns the seat whose action the round is waiting for
func (r *BettingRound) Turn() int {
	return r.table.turn
}

// Remaining returns the number of turns left in the round
func (r *BettingRound) Remaining() int {
	return r.budget - r.slot
}

// Act applies an action from the seat on turn and advances the round.
// A rejected action does not use up the seat's turn.
func (r *BettingRound) Act(id int, act action.Action, amount int) (Step, error) {
	t := r.table
	outcome, err := t.Apply(id, act, amount)
	if outcome == Rejected {
		return Step{Outcome: Rejected}, err
	}

	if act == action.Fold && t.countLive() < 2 {
		r.slot = r.budget
		return Step{Outcome: Accepted, RoundOver: true, HandOver: true}, nil
	}

	if act == action.Raise {
		// the raiser holds slot zero, every other active seat responds
		r.slot = 0
		r.budget = 1
		for _, s := range t.seats {
			if s.ID != id && s.Status == StatusActive {
				r.budget++
			}
		}
	}

	r.slot++
	if r.slot < r.budget {
		if next := t.NextActiveSeat(id); next >= 0 {
			t.turn = next
		}

		return Step{Outcome: Accepted, Broadcast: true}, nil
	}

	// prepare the next stage
	if next := t.NextActiveSeat(t.dealer); next >= 0 {
		t.turn = next
	}

	return Step{Outcome: Accepted, RoundOver: true}, nil
}

// ForceFold folds the seat on turn, used when the seat does not answer in time
func (r *BettingRound) ForceFold() (Step, error) {
	return r.Act(r.table.turn, action.Fold, 0)
}
