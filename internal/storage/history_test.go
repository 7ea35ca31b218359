package storage

import (
	"path/filepath"
	"testing"

	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryAppendAndRecent(t *testing.T) {
	h := openTestHistory(t)

	first, err := h.Append(RoundRecord{
		Bet:    10,
		Payout: 20,
		NetWin: 10,
		Hands:  []game.Hand{game.Score(deck.MustParseCards("TsKh"))},
		Dealer: game.Score(deck.MustParseCards("Ts9h")),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := h.Append(RoundRecord{
		Bet:    25,
		Payout: 0,
		NetWin: -25,
		Hands:  []game.Hand{game.Score(deck.MustParseCards("Ts6h8c"))},
		Dealer: game.Score(deck.MustParseCards("TsKh")),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	records, err := h.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Hands survive the JSON columns intact.
	for _, rec := range records {
		require.NotEmpty(t, rec.Hands)
		assert.NotZero(t, rec.Dealer.Score)
	}
}

func TestHistoryRecentLimit(t *testing.T) {
	h := openTestHistory(t)

	for i := 0; i < 5; i++ {
		_, err := h.Append(RoundRecord{
			Bet:    10,
			Payout: 20,
			NetWin: 10,
			Hands:  []game.Hand{game.Score(deck.MustParseCards("TsKh"))},
			Dealer: game.Score(deck.MustParseCards("Ts7h")),
		})
		require.NoError(t, err)
	}

	records, err := h.Recent(3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestHistoryTotals(t *testing.T) {
	h := openTestHistory(t)

	totals, err := h.Totals()
	require.NoError(t, err)
	assert.Zero(t, totals.Rounds)

	hands := []game.Hand{game.Score(deck.MustParseCards("TsKh"))}
	dealer := game.Score(deck.MustParseCards("Ts9h"))

	_, err = h.Append(RoundRecord{Bet: 10, Payout: 20, NetWin: 10, Hands: hands, Dealer: dealer})
	require.NoError(t, err)
	_, err = h.Append(RoundRecord{Bet: 50, Payout: 0, NetWin: -50, Hands: hands, Dealer: dealer})
	require.NoError(t, err)

	totals, err = h.Totals()
	require.NoError(t, err)
	assert.Equal(t, 2, totals.Rounds)
	assert.Equal(t, 60, totals.TotalBet)
	assert.Equal(t, 20.0, totals.TotalPaid)
	assert.Equal(t, -40.0, totals.NetWin)
}
