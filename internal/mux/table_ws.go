package mux

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/protocol"
	"holdem-server/pkg/room"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

var errExpectedJoin = errors.New("the first message must be join")

// wireFormat is the encoding a connection chose with its first message
type wireFormat int

const (
	formatJSON wireFormat = iota
	formatBinary
)

func decodeAction(messageType int, data []byte) (protocol.ClientAction, wireFormat, error) {
	var msg protocol.ClientAction
	switch messageType {
	case websocket.TextMessage:
		err := json.Unmarshal(data, &msg)
		return msg, formatJSON, err
	case websocket.BinaryMessage:
		err := msg.UnmarshalBinary(data)
		return msg, formatBinary, err
	}

	return msg, formatJSON, fmt.Errorf("unexpected websocket message type %d", messageType)
}

func writeMessage(conn *websocket.Conn, format wireFormat, msg protocol.ServerMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if format == formatBinary {
		b, err := msg.MarshalBinary()
		if err != nil {
			return err
		}

		return conn.WriteMessage(websocket.BinaryMessage, b)
	}

	return conn.WriteJSON(msg)
}

func (m *Mux) getTableSeatWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		seat := r.Context().Value(ctxSeatKey).(int)
		if !m.validTicket(r, seat) {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connected")
			return
		}
		defer conn.Close()

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		client := room.NewClient(seat)
		log := logrus.WithField("client", client.String())

		format, err := awaitJoin(conn)
		if err != nil {
			log.WithError(err).Warn("rejecting connection")
			_ = writeMessage(conn, format, protocol.NewNack())
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
			return
		}

		m.pitBoss.ClientConnected(client)

		waitForCloseFrame := make(chan bool)
		defer func() {
			m.pitBoss.ClientDisconnected(client)
			close(waitForCloseFrame)
		}()

		go m.webSocketWriteLoop(conn, format, client, waitForCloseFrame)
		m.webSocketReadLoop(conn, client)
	}
}

// awaitJoin reads the first message of a connection, which must be JOIN
func awaitJoin(conn *websocket.Conn) (wireFormat, error) {
	messageType, data, err := conn.ReadMessage()
	if err != nil {
		return formatJSON, err
	}

	msg, format, err := decodeAction(messageType, data)
	if err != nil {
		return format, err
	}

	if msg.Type != action.Join {
		return format, errExpectedJoin
	}

	return format, nil
}

func (m *Mux) webSocketWriteLoop(conn *websocket.Conn, format wireFormat, client *room.Client, waitForCloseFrame chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
		client.WriterStopped()
	}()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-client.Gone():
			return
		case <-client.CloseChan():
			// flush what the dealer queued before hanging up
			for len(client.SendChan()) > 0 {
				_ = writeMessage(conn, format, <-client.SendChan())
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, client.CloseReason))

			// wait for the close frame
			select {
			case <-waitForCloseFrame:
			case <-time.After(time.Second):
			}
			return
		case msg := <-client.SendChan():
			logrus.WithField("type", msg.Type.String()).WithField("client", client.String()).Trace("sending message to client")

			if err := writeMessage(conn, format, msg); err != nil {
				logrus.WithError(err).WithField("client", client.String()).Error("could not write message")
				return
			}
		}
	}
}

func (m *Mux) webSocketReadLoop(conn *websocket.Conn, client *room.Client) {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsUnexpectedCloseError(err) {
				logrus.WithError(err).Debug("connection closed")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure) {
				logrus.WithError(err).Error("could not read message")
			}

			return
		}

		msg, _, err := decodeAction(messageType, data)
		if err != nil {
			logrus.WithError(err).WithField("client", client.String()).Warn("could not decode message")
			client.Send(protocol.NewNack())
			continue
		}

		client.ReceivedMessage(msg)
	}
}
