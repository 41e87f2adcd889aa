package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/texasholdem"
	"holdem-server/pkg/snapshot"
)

func cards(s string) [2]deck.Card {
	hand := deck.CardsFromString(s)
	return [2]deck.Card{hand[0], hand[1]}
}

func community(s string) [5]deck.Card {
	c := [5]deck.Card{deck.NoCard, deck.NoCard, deck.NoCard, deck.NoCard, deck.NoCard}
	copy(c[:], deck.CardsFromString(s))
	return c
}

// testState is a hand on the river, seat 1 folded and seat 2 left the table
func testState() texasholdem.State {
	st := texasholdem.State{
		Stage:      texasholdem.StageRiver,
		Pot:        40,
		HighestBet: 10,
		Dealer:     1,
		Turn:       0,
		Community:  community("10s,11s,12s,3h,4d"),
	}

	for i := range st.Seats {
		st.Seats[i] = texasholdem.Seat{
			ID:     i,
			Cards:  [2]deck.Card{deck.NoCard, deck.NoCard},
			Status: texasholdem.StatusLeft,
		}
	}

	st.Seats[0].Stack = 80
	st.Seats[0].Bet = 10
	st.Seats[0].Cards = cards("14s,13s")
	st.Seats[0].Status = texasholdem.StatusActive

	st.Seats[1].Stack = 80
	st.Seats[1].Cards = cards("2c,7d")
	st.Seats[1].Status = texasholdem.StatusFolded

	st.Seats[2].Cards = cards("14c,14d")

	return st
}

func TestBuildInfo(t *testing.T) {
	a := assert.New(t)

	st := testState()
	msg := BuildInfo(st, 1)
	a.Equal(Info, msg.Type)
	a.Nil(msg.End)

	info := msg.Info
	a.Equal(40, info.PotSize)
	a.Equal(1, info.Dealer)
	a.Equal(0, info.PlayerTurn)
	a.Equal(10, info.BetSize)
	a.Equal([MaxPlayers]int{80, 80, 0, 0, 0, 0}, info.PlayerStacks)
	a.Equal([MaxPlayers]int{10, 0, 0, 0, 0, 0}, info.PlayerBets)
	a.Equal(cards("2c,7d"), info.PlayerCards)
	a.Equal(st.Community, info.CommunityCards)
	a.Equal([MaxPlayers]Status{StatusPlayable, StatusFolded, StatusLeft, StatusLeft, StatusLeft, StatusLeft}, info.PlayerStatus)
}

func TestBuildInfo_neverLeaksHoleCards(t *testing.T) {
	a := assert.New(t)

	st := testState()
	for seat := 0; seat < MaxPlayers; seat++ {
		b, err := json.Marshal(BuildInfo(st, seat))
		a.NoError(err)

		var decoded ServerMessage
		a.NoError(json.Unmarshal(b, &decoded))
		a.Equal(st.Seats[seat].Cards, decoded.Info.PlayerCards)

		for other := 0; other < MaxPlayers; other++ {
			if other == seat {
				continue
			}

			for _, c := range st.Seats[other].Cards {
				if c.IsValid() {
					a.NotContains(decoded.Info.PlayerCards, c, "seat %d sees seat %d", seat, other)
				}
			}
		}
	}

	spectator := BuildInfo(st, Spectator)
	a.Equal([2]deck.Card{deck.NoCard, deck.NoCard}, spectator.Info.PlayerCards)
}

func TestBuildEnd(t *testing.T) {
	a := assert.New(t)

	st := testState()
	st.Seats[0].Stack = 120
	result := texasholdem.Result{Winners: []int{0}, Pot: 40}

	msg := BuildEnd(st, result)
	a.Equal(End, msg.Type)
	a.Equal(0, msg.End.Winner)
	a.Equal([2]deck.Card{deck.NoCard, deck.NoCard}, msg.End.PlayerCards[2], "left seats are withheld")
	a.Equal(cards("2c,7d"), msg.End.PlayerCards[1])

	snapshot.ValidateSnapshot(t, msg, 0)
}

func TestBuildEnd_noWinner(t *testing.T) {
	msg := BuildEnd(testState(), texasholdem.Result{})
	assert.Equal(t, -1, msg.End.Winner)
	assert.Equal(t, []int{}, msg.End.Winners)
}

func TestSimpleMessages(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(NewAck())
	a.NoError(err)
	a.JSONEq(`{"type":"ack"}`, string(b))

	a.Equal(Nack, NewNack().Type)
	a.Equal(Halt, NewHalt().Type)
	a.Equal("MessageType(9)", MessageType(9).String())

	var m MessageType
	a.Error(json.Unmarshal([]byte(`"bogus"`), &m))
}

func TestStatusOf(t *testing.T) {
	a := assert.New(t)
	a.Equal(StatusPlayable, StatusOf(texasholdem.StatusActive))
	a.Equal(StatusPlayable, StatusOf(texasholdem.StatusAllIn))
	a.Equal(StatusFolded, StatusOf(texasholdem.StatusFolded))
	a.Equal(StatusLeft, StatusOf(texasholdem.StatusLeft))
}

func TestClientAction_JSON(t *testing.T) {
	a := assert.New(t)

	var ca ClientAction
	a.NoError(json.Unmarshal([]byte(`{"type":"raise","params":[25]}`), &ca))
	a.Equal(25, ca.Amount())

	var check ClientAction
	a.NoError(json.Unmarshal([]byte(`{"type":5}`), &check))
	a.Equal(action.Check, check.Type)
	a.Equal(0, check.Amount())
}
