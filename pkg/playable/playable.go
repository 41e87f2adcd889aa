package playable

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"holdem-server/pkg/deck"
)

// LogMessage is the format a table sends hand log messages in
// If Seats is empty, assume it's a general statement, otherwise the message will be sent like "{seat} did X, Y, Z"
type LogMessage struct {
	UUID    string    `json:"uuid"`
	Seats   []int     `json:"seats"`
	Cards   deck.Hand `json:"cards"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// NoSeat is used for log messages that are not about a seat
const NoSeat = -1

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(seat int, format string, a ...interface{}) *LogMessage {
	var seats []int
	if seat >= 0 {
		seats = []int{seat}
	}

	return &LogMessage{
		UUID:    uuid.New().String(),
		Seats:   seats,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// SimpleLogMessageSlice returns a single log message
func SimpleLogMessageSlice(seat int, format string, a ...interface{}) []*LogMessage {
	return []*LogMessage{SimpleLogMessage(seat, format, a...)}
}

// CardsLogMessage returns a log message that reveals cards
func CardsLogMessage(seat int, cards deck.Hand, format string, a ...interface{}) *LogMessage {
	msg := SimpleLogMessage(seat, format, a...)
	msg.Cards = cards.Dealt()

	return msg
}
