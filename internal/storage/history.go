package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lox/blackjacktrainer/internal/game"
	_ "modernc.org/sqlite"
)

// RoundRecord is one settled round as stored in history.
type RoundRecord struct {
	ID        string
	Bet       int
	Payout    float64
	NetWin    float64
	Hands     []game.Hand
	Dealer    game.Hand
	CreatedAt time.Time
}

// History is a sqlite-backed append-only log of settled rounds. It backs
// the long-term stats views that outlive a single session file.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// WAL keeps writers from blocking the stats readers.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			bet INTEGER NOT NULL,
			payout REAL NOT NULL,
			net_win REAL NOT NULL,
			hands_json TEXT NOT NULL,
			dealer_json TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_created_at ON rounds(created_at DESC)`,
	}

	for _, migration := range migrations {
		if _, err := h.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Append records one settled round and returns its assigned ID.
func (h *History) Append(rec RoundRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	handsJSON, err := json.Marshal(rec.Hands)
	if err != nil {
		return "", fmt.Errorf("failed to encode hands: %w", err)
	}
	dealerJSON, err := json.Marshal(rec.Dealer)
	if err != nil {
		return "", fmt.Errorf("failed to encode dealer hand: %w", err)
	}

	_, err = h.db.Exec(
		`INSERT INTO rounds (id, bet, payout, net_win, hands_json, dealer_json) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Bet, rec.Payout, rec.NetWin, string(handsJSON), string(dealerJSON),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert round: %w", err)
	}
	return rec.ID, nil
}

// Recent returns the n most recently settled rounds, newest first.
func (h *History) Recent(n int) ([]RoundRecord, error) {
	rows, err := h.db.Query(
		`SELECT id, bet, payout, net_win, hands_json, dealer_json, created_at
		 FROM rounds ORDER BY created_at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var rec RoundRecord
		var handsJSON, dealerJSON string
		if err := rows.Scan(&rec.ID, &rec.Bet, &rec.Payout, &rec.NetWin, &handsJSON, &dealerJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		if err := json.Unmarshal([]byte(handsJSON), &rec.Hands); err != nil {
			return nil, fmt.Errorf("failed to decode hands for round %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(dealerJSON), &rec.Dealer); err != nil {
			return nil, fmt.Errorf("failed to decode dealer hand for round %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Totals summarises the whole history.
type Totals struct {
	Rounds    int
	TotalBet  int
	TotalPaid float64
	NetWin    float64
}

// Totals returns aggregate results across all recorded rounds.
func (h *History) Totals() (Totals, error) {
	var t Totals
	row := h.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(bet), 0), COALESCE(SUM(payout), 0), COALESCE(SUM(net_win), 0) FROM rounds`)
	if err := row.Scan(&t.Rounds, &t.TotalBet, &t.TotalPaid, &t.NetWin); err != nil {
		return Totals{}, fmt.Errorf("failed to aggregate history: %w", err)
	}
	return t, nil
}
