// Package statistics accumulates per-session results of completed rounds.
// The engine feeds it settlement output; it never reaches back into round
// state.
package statistics

import (
	"time"

	"github.com/lox/blackjacktrainer/internal/game"
)

// RoundResult is the settlement output of one completed round: the hands
// played, the bet they were played for and the per-hand payouts.
type RoundResult struct {
	Hands   []game.Hand
	Bet     int
	Payouts []float64
}

// Session tracks completed hands across a play session. Appended to per
// settled round, never rewritten.
type Session struct {
	Hands       []game.Hand `json:"hands"`
	Bets        []int       `json:"bets"`
	Payouts     []float64   `json:"payouts"`
	LastUpdated time.Time   `json:"lastUpdated"`

	// Running aggregates, derived from the appends above.
	HandsPlayed int     `json:"handsPlayed"`
	HandsWon    int     `json:"handsWon"`
	HandsLost   int     `json:"handsLost"`
	HandsPushed int     `json:"handsPushed"`
	ProfitLoss  float64 `json:"profitLoss"`
	MaxProfit   float64 `json:"maxProfit"`
	MaxLoss     float64 `json:"maxLoss"`
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{LastUpdated: time.Now()}
}

// Add incorporates one settled round. Each hand in the round counts as a
// played hand; the bet is recorded once per round, matching the reference
// bookkeeping.
func (s *Session) Add(result RoundResult) {
	s.Hands = append(s.Hands, result.Hands...)
	s.Bets = append(s.Bets, result.Bet)
	s.Payouts = append(s.Payouts, result.Payouts...)
	s.LastUpdated = time.Now()

	for i := range result.Hands {
		s.HandsPlayed++

		payout := 0.0
		if i < len(result.Payouts) {
			payout = result.Payouts[i]
		}
		net := payout - float64(result.Bet)

		switch {
		case net > 0:
			s.HandsWon++
		case net < 0:
			s.HandsLost++
		default:
			s.HandsPushed++
		}

		s.ProfitLoss += net
		if s.ProfitLoss > s.MaxProfit {
			s.MaxProfit = s.ProfitLoss
		}
		if s.ProfitLoss < s.MaxLoss {
			s.MaxLoss = s.ProfitLoss
		}
	}
}

// WinRate returns the fraction of played hands that won, 0 for an empty
// session.
func (s *Session) WinRate() float64 {
	if s.HandsPlayed == 0 {
		return 0
	}
	return float64(s.HandsWon) / float64(s.HandsPlayed)
}

// BlackjackCount returns how many recorded hands were blackjacks.
func (s *Session) BlackjackCount() int {
	n := 0
	for _, h := range s.Hands {
		if h.Blackjack {
			n++
		}
	}
	return n
}

// BustCount returns how many recorded hands busted.
func (s *Session) BustCount() int {
	n := 0
	for _, h := range s.Hands {
		if h.Bust {
			n++
		}
	}
	return n
}
