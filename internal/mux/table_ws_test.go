package mux

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/protocol"
	"holdem-server/pkg/room"
)

func TestTableSeatWS_PlaysHand(t *testing.T) {
	a := assert.New(t)
	ts, pitBoss := newTestServer(t, false)

	conn0 := dial(t, ts, "/table/seat/0/ws")
	conn1 := dial(t, ts, "/table/seat/1/ws")

	// seat 1 has the button, seat 0 folds and both seats leave afterwards
	sendJSON(t, conn0,
		protocol.ClientAction{Type: action.Join},
		protocol.ClientAction{Type: action.Ready},
		protocol.ClientAction{Type: action.Fold},
		protocol.ClientAction{Type: action.Leave},
	)
	sendBinary(t, conn1,
		protocol.ClientAction{Type: action.Join},
		protocol.ClientAction{Type: action.Ready},
		protocol.ClientAction{Type: action.Leave},
	)

	var wg sync.WaitGroup
	var msgs0, msgs1 []protocol.ServerMessage
	var err0, err1 error

	wg.Add(2)
	go func() {
		defer wg.Done()
		msgs0, err0 = readUntilClosed(t, conn0)
	}()
	go func() {
		defer wg.Done()
		msgs1, err1 = readUntilClosed(t, conn1)
	}()
	wg.Wait()

	a.True(websocket.IsCloseError(err0, websocket.CloseNormalClosure), "%v", err0)
	a.True(websocket.IsCloseError(err1, websocket.CloseNormalClosure), "%v", err1)

	a.Equal([]protocol.MessageType{
		protocol.Ack,
		protocol.Ack,
		protocol.Info,
		protocol.Ack, // fold
		protocol.End,
		protocol.Ack, // leave
	}, messageTypes(msgs0))
	a.Equal([]protocol.MessageType{
		protocol.Ack,
		protocol.Ack,
		protocol.Info,
		protocol.End,
		protocol.Ack,
	}, messageTypes(msgs1))

	if len(msgs1) == 5 && a.NotNil(msgs1[2].Info) && a.NotNil(msgs1[3].End) {
		// binary frames carry the same snapshot as JSON
		a.Equal(*msgs0[4].End, *msgs1[3].End)
		a.Equal(msgs0[2].Info.PlayerStacks, msgs1[2].Info.PlayerStacks)
		a.Equal(1, msgs1[3].End.Winner)
	}

	select {
	case <-pitBoss.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("dealer did not finish")
	}
	a.ErrorIs(pitBoss.Err(), room.ErrTableHalted)

	// both write loops have sent their last frame
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.NoError(pitBoss.WaitForClients(ctx))
}

func TestTableSeatWS_FirstMessageMustBeJoin(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t, false)

	conn := dial(t, ts, "/table/seat/0/ws")
	sendJSON(t, conn, protocol.ClientAction{Type: action.Ready})

	msgs, err := readUntilClosed(t, conn)
	a.Equal([]protocol.MessageType{protocol.Nack}, messageTypes(msgs))
	a.True(websocket.IsCloseError(err, websocket.ClosePolicyViolation), "%v", err)
}

func TestTableSeatWS_MalformedMessage(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t, false)

	conn := dial(t, ts, "/table/seat/0/ws")
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg protocol.ServerMessage
	sendJSON(t, conn, protocol.ClientAction{Type: action.Join})
	a.NoError(conn.ReadJSON(&msg))
	a.Equal(protocol.Ack, msg.Type)

	// the connection chose JSON, so the NACK for a bad frame is JSON too
	a.NoError(conn.WriteMessage(websocket.BinaryMessage, []byte{1, 2, 3}))
	a.NoError(conn.ReadJSON(&msg))
	a.Equal(protocol.Nack, msg.Type)
}
