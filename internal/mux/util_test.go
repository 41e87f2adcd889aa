package mux

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-server/pkg/playable/poker/texasholdem"
	"holdem-server/pkg/protocol"
	"holdem-server/pkg/room"
)

// newTestServer starts a two seat table behind a test server
func newTestServer(t *testing.T, ticketsEnabled bool) (*httptest.Server, *room.PitBoss) {
	t.Helper()

	opts := texasholdem.DefaultOptions()
	opts.Seats = 2
	opts.Seed = 1
	table, err := texasholdem.NewTable(opts)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	dealer := room.NewDealer(table, room.Options{TurnTimeout: 5 * time.Second}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	pitBoss := room.NewPitBoss(dealer)
	pitBoss.StartShift(ctx)

	ts := httptest.NewServer(NewMux("v1.2.3", pitBoss, ticketsEnabled, opts.Seats))
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})

	return ts, pitBoss
}

func wsURL(ts *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + path
}

func dial(t *testing.T, ts *httptest.Server, path string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, path), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

func sendJSON(t *testing.T, conn *websocket.Conn, msgs ...protocol.ClientAction) {
	t.Helper()
	for _, msg := range msgs {
		require.NoError(t, conn.WriteJSON(msg))
	}
}

func sendBinary(t *testing.T, conn *websocket.Conn, msgs ...protocol.ClientAction) {
	t.Helper()
	for _, msg := range msgs {
		b, err := msg.MarshalBinary()
		require.NoError(t, err)
		require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, b))
	}
}

// readUntilClosed reads server messages until the connection closes
func readUntilClosed(t *testing.T, conn *websocket.Conn) ([]protocol.ServerMessage, error) {
	t.Helper()

	msgs := make([]protocol.ServerMessage, 0)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return msgs, err
		}

		var msg protocol.ServerMessage
		if messageType == websocket.BinaryMessage {
			err = msg.UnmarshalBinary(data)
		} else {
			err = json.Unmarshal(data, &msg)
		}

		if !assert.NoError(t, err) {
			return msgs, err
		}

		msgs = append(msgs, msg)
	}
}

func messageTypes(msgs []protocol.ServerMessage) []protocol.MessageType {
	types := make([]protocol.MessageType, len(msgs))
	for i, msg := range msgs {
		types[i] = msg.Type
	}

	return types
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	assertDo(t, req, respObj, statusCode)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	assertDo(t, req, respObj, statusCode)
}
