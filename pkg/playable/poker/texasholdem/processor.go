package texasholdem

import (
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/action"
)

// Outcome is the result of applying an action
type Outcome int

// constants for Outcome
const (
	Rejected Outcome = iota
	Accepted
)

func (o Outcome) String() string {
	if o == Accepted {
		return "accepted"
	}

	return "rejected"
}

// Apply validates an action from a seat and applies it.
// A rejected action never changes the table, with one exception: READY from
// a seat without chips removes the seat from the table.
// The returned error is an *ActionError describing why the action was rejected.
func (t *Table) Apply(id int, act action.Action, amount int) (Outcome, error) {
	reject := func(err error) (Outcome, error) {
		return Rejected, &ActionError{Seat: id, Action: act, Amount: amount, Err: err}
	}

	if id < 0 || id >= MaxPlayers {
		return reject(ErrInvalidSeat)
	}

	s := t.seats[id]
	if s.Status == StatusLeft {
		return reject(ErrSeatLeft)
	}

	switch act {
	case action.Ready, action.Leave:
		if t.stage != StageInit {
			return reject(ErrWrongStage)
		}
	case action.Raise, action.Call, action.Check, action.Fold:
		if !t.stage.IsBetting() {
			return reject(ErrWrongStage)
		}

		if t.turn != id {
			return reject(ErrNotYourTurn)
		}

		if s.Status != StatusActive {
			return reject(ErrSeatNotActive)
		}
	default:
		// JOIN is consumed when the seat is taken
		return reject(ErrWrongStage)
	}

	switch act {
	case action.Ready:
		if s.Stack <= 0 {
			s.Status = StatusLeft
			t.sendLogMessages(playable.SimpleLogMessage(id, "{} is out of chips"))
			return reject(ErrEmptyStack)
		}

		s.Status = StatusActive
	case action.Leave:
		s.Status = StatusLeft
		s.Stack = 0
	case action.Raise:
		if amount <= 0 {
			return reject(ErrInvalidAmount)
		}

		if amount > s.Stack {
			return reject(ErrInsufficientStack)
		}

		if s.Bet+amount <= t.highestBet {
			return reject(ErrRaiseTooSmall)
		}

		t.pot += s.pay(amount)
		t.highestBet = s.Bet
		if s.Stack == 0 {
			s.Status = StatusAllIn
		}
	case action.Call:
		if t.highestBet == 0 {
			return reject(ErrNothingToCall)
		}

		shortfall := t.highestBet - s.Bet
		if shortfall <= 0 {
			return reject(ErrNothingToCall)
		}

		if shortfall > s.Stack {
			return reject(ErrInsufficientStack)
		}

		amount = shortfall
		t.pot += s.pay(shortfall)
		if s.Stack == 0 {
			s.Status = StatusAllIn
		}
	case action.Check:
		if t.highestBet != 0 {
			return reject(ErrCannotCheck)
		}
	case action.Fold:
		s.Status = StatusFolded
	}

	t.sendLogMessages(playable.SimpleLogMessage(id, "{} %s", act.LogMessage(amount)))
	return Accepted, nil
}
