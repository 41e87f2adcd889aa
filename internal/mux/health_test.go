package mux

import (
	"testing"
	"time"

	"github.com/bmizerany/assert"

	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/protocol"
)

func TestHealthHandler(t *testing.T) {
	ts, _ := newTestServer(t, false)

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
	assert.Equal(t, "join", expects.Stage)
	assert.Equal(t, 0, expects.Hands)
	assert.Equal(t, 0, expects.Connected)
}

func TestHealthHandler_Closed(t *testing.T) {
	ts, pitBoss := newTestServer(t, false)

	conn0 := dial(t, ts, "/table/seat/0/ws")
	conn1 := dial(t, ts, "/table/seat/1/ws")
	sendJSON(t, conn0, protocol.ClientAction{Type: action.Join}, protocol.ClientAction{Type: action.Leave})
	sendJSON(t, conn1, protocol.ClientAction{Type: action.Join}, protocol.ClientAction{Type: action.Leave})

	select {
	case <-pitBoss.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("dealer did not finish")
	}

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "CLOSED", expects.Status)
	assert.Equal(t, "init", expects.Stage)
	assert.Equal(t, 0, expects.Hands)
}
