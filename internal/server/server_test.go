package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjacktrainer/internal/config"
	"github.com/lox/blackjacktrainer/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := NewServer(logger, config.Default(), 42)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until one of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, want MessageType) *Message {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))

	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == want {
			return &msg
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, messageType MessageType, data any) {
	t.Helper()
	msg, err := NewMessage(messageType, data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

func TestHealthz(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConnectionReceivesOpeningState(t *testing.T) {
	ts := testServer(t)
	conn := dialWS(t, ts)

	msg := readUntil(t, conn, MessageTypeState)

	var state StateData
	require.NoError(t, json.Unmarshal(msg.Data, &state))
	assert.Equal(t, game.Betting, state.Phase)
	assert.Equal(t, 1000.0, state.Bank)
	assert.Equal(t, 52*6, state.CardsInShoe)
}

func TestPlaceBetDealsAndReturnsState(t *testing.T) {
	ts := testServer(t)
	conn := dialWS(t, ts)
	readUntil(t, conn, MessageTypeState)

	send(t, conn, MessageTypePlaceBet, PlaceBetData{Amount: 100})

	for {
		msg := readUntil(t, conn, MessageTypeState)
		var state StateData
		require.NoError(t, json.Unmarshal(msg.Data, &state))
		if state.Phase == game.Betting {
			continue
		}
		assert.Equal(t, game.PlayerTurn, state.Phase)
		assert.Equal(t, 100, state.CurrentBet)
		assert.Equal(t, 900.0, state.Bank)
		require.Len(t, state.PlayerHands, 1)
		assert.Len(t, state.PlayerHands[0].Cards, 2)
		assert.Len(t, state.DealerHand.Cards, 2)
		assert.True(t, state.CanHit)
		return
	}
}

func TestBetOutsideTableLimitsIsRejected(t *testing.T) {
	ts := testServer(t)
	conn := dialWS(t, ts)
	readUntil(t, conn, MessageTypeState)

	// Default table limits are $5 to $500.
	send(t, conn, MessageTypePlaceBet, PlaceBetData{Amount: 1})

	msg := readUntil(t, conn, MessageTypeError)
	var errData ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &errData))
	assert.Equal(t, "action_not_allowed", errData.Code)
}

func TestActionInWrongPhaseReturnsError(t *testing.T) {
	ts := testServer(t)
	conn := dialWS(t, ts)
	readUntil(t, conn, MessageTypeState)

	send(t, conn, MessageTypeHit, nil)

	msg := readUntil(t, conn, MessageTypeError)
	var errData ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &errData))
	assert.Equal(t, "invalid_transition", errData.Code)
}

func TestUnknownMessageTypeReturnsError(t *testing.T) {
	ts := testServer(t)
	conn := dialWS(t, ts)
	readUntil(t, conn, MessageTypeState)

	send(t, conn, MessageType("juggle"), nil)

	msg := readUntil(t, conn, MessageTypeError)
	var errData ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &errData))
	assert.Equal(t, "unknown_message", errData.Code)
}

func TestErrorCodeMapping(t *testing.T) {
	assert.Equal(t, "invalid_transition", errorCode(game.ErrInvalidTransition))
	assert.Equal(t, "insufficient_bank", errorCode(game.ErrInsufficientBank))
	assert.Equal(t, "action_not_allowed", errorCode(game.ErrActionNotAllowed))
	assert.Equal(t, "internal", errorCode(io.EOF))
}

func TestStateDataStripsDeck(t *testing.T) {
	round := game.Round{
		Bank:  1000,
		Phase: game.Betting,
	}
	round.Deck = nil

	data := StateDataFromRound(round)
	encoded, err := json.Marshal(data)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), `"deck"`)
	assert.Contains(t, string(encoded), `"cardsInShoe"`)
}
