package protocol

import (
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker/texasholdem"
)

// Spectator builds a message for a viewer that does not hold a seat
const Spectator = -1

// NewAck returns an ACK message
func NewAck() ServerMessage {
	return ServerMessage{Type: Ack}
}

// NewNack returns a NACK message
func NewNack() ServerMessage {
	return ServerMessage{Type: Nack}
}

// NewHalt returns a HALT message
func NewHalt() ServerMessage {
	return ServerMessage{Type: Halt}
}

// BuildInfo builds the INFO snapshot for a seat.
// The recipient only ever sees its own hole cards.
func BuildInfo(st texasholdem.State, seat int) ServerMessage {
	info := &InfoMessage{
		PotSize:        st.Pot,
		Dealer:         st.Dealer,
		PlayerTurn:     st.Turn,
		BetSize:        st.HighestBet,
		PlayerCards:    [2]deck.Card{deck.NoCard, deck.NoCard},
		CommunityCards: st.Community,
	}

	for i, s := range st.Seats {
		info.PlayerStacks[i] = s.Stack
		info.PlayerBets[i] = s.Bet
		info.PlayerStatus[i] = StatusOf(s.Status)
	}

	if seat >= 0 && seat < MaxPlayers {
		info.PlayerCards = st.Seats[seat].Cards
	}

	return ServerMessage{Type: Info, Info: info}
}

// BuildEnd builds the END message. Seats that left have their cards withheld.
func BuildEnd(st texasholdem.State, result texasholdem.Result) ServerMessage {
	end := &EndMessage{
		CommunityCards: st.Community,
		PotSize:        result.Pot,
		Dealer:         st.Dealer,
		Winner:         result.Winner(),
		Winners:        append([]int{}, result.Winners...),
	}

	for i, s := range st.Seats {
		end.PlayerStacks[i] = s.Stack
		end.PlayerStatus[i] = StatusOf(s.Status)
		if s.Status == texasholdem.StatusLeft {
			end.PlayerCards[i] = [2]deck.Card{deck.NoCard, deck.NoCard}
		} else {
			end.PlayerCards[i] = s.Cards
		}
	}

	return ServerMessage{Type: End, End: end}
}
