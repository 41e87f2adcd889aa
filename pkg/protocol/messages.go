package protocol

import (
	"encoding/json"
	"fmt"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/texasholdem"
)

// MaxPlayers is the number of seats described by every message
const MaxPlayers = texasholdem.MaxPlayers

// MessageType is the type of a server message
type MessageType uint8

// message types, the values are the wire values
const (
	Ack MessageType = iota
	Nack
	Info
	End
	Halt
)

var messageTypeNames = map[MessageType]string{
	Ack:  "ack",
	Nack: "nack",
	Info: "info",
	End:  "end",
	Halt: "halt",
}

func (m MessageType) String() string {
	if name, ok := messageTypeNames[m]; ok {
		return name
	}

	return fmt.Sprintf("MessageType(%d)", uint8(m))
}

// MarshalJSON encodes the type as its name
func (m MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes the type from its name
func (m *MessageType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	for t, name := range messageTypeNames {
		if name == s {
			*m = t
			return nil
		}
	}

	return fmt.Errorf("unknown message type: %s", s)
}

// Status is the status of a seat as seen by the clients
type Status uint8

// seat statuses on the wire
const (
	StatusFolded   Status = 0
	StatusPlayable Status = 1
	StatusLeft     Status = 2
)

// StatusOf collapses a seat status into its wire status
func StatusOf(s texasholdem.SeatStatus) Status {
	switch s {
	case texasholdem.StatusActive, texasholdem.StatusAllIn:
		return StatusPlayable
	case texasholdem.StatusFolded:
		return StatusFolded
	}

	return StatusLeft
}

// ClientAction is a message from a seat
type ClientAction struct {
	Type   action.Action `json:"type"`
	Params []int         `json:"params,omitempty"`
}

// Amount returns the raise amount
func (c ClientAction) Amount() int {
	if len(c.Params) == 0 {
		return 0
	}

	return c.Params[0]
}

// InfoMessage is a snapshot of the table for one seat
// PlayerCards only ever holds the recipient's own hole cards.
type InfoMessage struct {
	PotSize        int                `json:"potSize"`
	Dealer         int                `json:"dealer"`
	PlayerTurn     int                `json:"playerTurn"`
	BetSize        int                `json:"betSize"`
	PlayerStacks   [MaxPlayers]int    `json:"playerStacks"`
	PlayerBets     [MaxPlayers]int    `json:"playerBets"`
	PlayerCards    [2]deck.Card       `json:"playerCards"`
	CommunityCards [5]deck.Card       `json:"communityCards"`
	PlayerStatus   [MaxPlayers]Status `json:"playerStatus"`
}

// EndMessage is the result of a hand, identical for every seat
type EndMessage struct {
	PlayerCards    [MaxPlayers][2]deck.Card `json:"playerCards"`
	CommunityCards [5]deck.Card             `json:"communityCards"`
	PlayerStacks   [MaxPlayers]int          `json:"playerStacks"`
	PotSize        int                      `json:"potSize"`
	Dealer         int                      `json:"dealer"`
	Winner         int                      `json:"winner"`
	Winners        []int                    `json:"winners"`
	PlayerStatus   [MaxPlayers]Status       `json:"playerStatus"`
}

// ServerMessage is a message to a seat
type ServerMessage struct {
	Type MessageType  `json:"type"`
	Info *InfoMessage `json:"info,omitempty"`
	End  *EndMessage  `json:"end,omitempty"`
}
