package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/game"
	"github.com/lox/blackjacktrainer/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testRound() game.Round {
	return game.Round{
		Deck:        deck.MustParseCards("2c5dAh"),
		PlayerHands: []game.Hand{game.Score(deck.MustParseCards("Ts5h"))},
		DealerHand:  game.Score(deck.MustParseCards("9c7d")),
		CurrentBet:  100,
		Bank:        900,
		Phase:       game.PlayerTurn,
		Legality:    game.Legality{CanHit: true, CanStand: true},
	}
}

func TestRoundRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir(), testLogger())
	require.NoError(t, err)

	_, ok := store.LoadRound()
	assert.False(t, ok, "empty store has no round")

	saved := testRound()
	require.NoError(t, store.SaveRound(saved))

	loaded, ok := store.LoadRound()
	require.True(t, ok)
	assert.Equal(t, saved, loaded)
}

func TestLoadRoundRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, testLogger())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "round.json"), []byte("{not json"), 0o644))

	_, ok := store.LoadRound()
	assert.False(t, ok)
}

func TestLoadRoundRejectsMissingPhase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, testLogger())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "round.json"), []byte(`{"bank": 500}`), 0o644))

	_, ok := store.LoadRound()
	assert.False(t, ok)
}

func TestStatsRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir(), testLogger())
	require.NoError(t, err)

	_, ok := store.LoadStats()
	assert.False(t, ok)

	session := statistics.NewSession()
	session.Add(statistics.RoundResult{
		Hands:   []game.Hand{game.Score(deck.MustParseCards("TsKh"))},
		Bet:     10,
		Payouts: []float64{20},
	})
	require.NoError(t, store.SaveStats(session))

	loaded, ok := store.LoadStats()
	require.True(t, ok)
	assert.Equal(t, 1, loaded.HandsPlayed)
	assert.Equal(t, 10.0, loaded.ProfitLoss)
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	_, err := NewStore(dir, testLogger())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
