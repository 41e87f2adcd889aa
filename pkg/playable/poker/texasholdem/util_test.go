package texasholdem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker/action"
)

// setupTable joins one seat per stack, readies them and starts a hand.
// The seat after dealerBefore gets the button.
func setupTable(t *testing.T, dealerBefore int, stacks ...int) *Table {
	t.Helper()

	opts := DefaultOptions()
	opts.Seed = 1
	table, err := NewTable(opts)
	assert.NoError(t, err)

	for i, stack := range stacks {
		assert.NoError(t, table.Join(i))
		table.seats[i].Stack = stack
	}

	table.BeginIntake()
	for i := range stacks {
		assertApply(t, table, i, action.Ready, 0)
	}

	table.dealer = dealerBefore
	assert.NoError(t, table.StartHand())
	return table
}

func assertApply(t *testing.T, table *Table, seat int, act action.Action, amount int, msgAndArgs ...interface{}) {
	t.Helper()
	outcome, err := table.Apply(seat, act, amount)
	assert.NoError(t, err, msgAndArgs...)
	assert.Equal(t, Accepted, outcome, msgAndArgs...)
}

func assertRejected(t *testing.T, table *Table, seat int, act action.Action, amount int, expectedErr error, msgAndArgs ...interface{}) {
	t.Helper()
	before := table.State()

	outcome, err := table.Apply(seat, act, amount)
	assert.Equal(t, Rejected, outcome, msgAndArgs...)
	assert.ErrorIs(t, err, expectedErr, msgAndArgs...)
	assert.Equal(t, before, table.State(), msgAndArgs...)
}

func assertStep(t *testing.T, round *BettingRound, act action.Action, amount int, expected Step, msgAndArgs ...interface{}) {
	t.Helper()
	step, err := round.Act(round.Turn(), act, amount)
	assert.NoError(t, err, msgAndArgs...)
	assert.Equal(t, expected, step, msgAndArgs...)
}

func setCards(table *Table, seat int, cards string) {
	hand := deck.CardsFromString(cards)
	table.seats[seat].Cards = [2]deck.Card{hand[0], hand[1]}
}

func setCommunity(table *Table, cards string) {
	hand := deck.CardsFromString(cards)
	copy(table.community[:], hand)
}

var (
	stepNext  = Step{Outcome: Accepted, Broadcast: true}
	stepRound = Step{Outcome: Accepted, RoundOver: true}
	stepHand  = Step{Outcome: Accepted, RoundOver: true, HandOver: true}
)
