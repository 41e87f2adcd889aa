package texasholdem

import (
	"encoding/json"

	"holdem-server/pkg/deck"
)

// SeatStatus is the status of a seat within the hand
type SeatStatus int

// constants for SeatStatus
const (
	// StatusLeft seats are out of the current and future hands
	StatusLeft SeatStatus = iota
	StatusActive
	StatusAllIn
	StatusFolded
)

func (s SeatStatus) String() string {
	switch s {
	case StatusLeft:
		return "left"
	case StatusActive:
		return "active"
	case StatusAllIn:
		return "all-in"
	case StatusFolded:
		return "folded"
	}

	return ""
}

// MarshalJSON encodes the status as its name
func (s SeatStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// IsLive returns true if the seat is still contesting the pot
func (s SeatStatus) IsLive() bool {
	return s == StatusActive || s == StatusAllIn
}

// Seat is a player slot at the table
type Seat struct {
	ID     int          `json:"id"`
	Stack  int          `json:"stack"`
	Bet    int          `json:"bet"`
	Cards  [2]deck.Card `json:"cards"`
	Status SeatStatus   `json:"status"`

	// Joined is true once a connection has taken the seat
	Joined bool `json:"joined"`
}

func newSeat(id int) *Seat {
	return &Seat{
		ID:     id,
		Cards:  [2]deck.Card{deck.NoCard, deck.NoCard},
		Status: StatusLeft,
	}
}

// newHand clears everything but the stack and status
func (s *Seat) newHand() {
	s.Bet = 0
	s.Cards = [2]deck.Card{deck.NoCard, deck.NoCard}
}

// newRound resets the seat for a new betting round
func (s *Seat) newRound() {
	s.Bet = 0
}

// pay moves chips from the stack into the seat's bet and returns the amount moved
func (s *Seat) pay(amount int) int {
	s.Stack -= amount
	s.Bet += amount

	return amount
}

// Hand returns the seat's dealt hole cards
func (s Seat) Hand() deck.Hand {
	return deck.Hand(s.Cards[:]).Dealt()
}
