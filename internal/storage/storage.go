// Package storage is the persistence collaborator: opaque JSON snapshots
// of round state and session statistics, plus a sqlite round-history
// store. Decode failures are logged and treated as "nothing saved"; a
// corrupt file never blocks play.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjacktrainer/internal/fileutil"
	"github.com/lox/blackjacktrainer/internal/game"
	"github.com/lox/blackjacktrainer/internal/statistics"
)

const (
	roundFile = "round.json"
	statsFile = "stats.json"
)

// Store reads and writes engine snapshots under a state directory.
type Store struct {
	dir    string
	logger *log.Logger
}

// NewStore creates the state directory if needed and returns a store.
func NewStore(dir string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, logger: logger.WithPrefix("storage")}, nil
}

// SaveRound persists the round snapshot.
func (s *Store) SaveRound(round game.Round) error {
	return s.save(roundFile, round)
}

// LoadRound returns the saved round snapshot, or ok=false when nothing
// usable is saved.
func (s *Store) LoadRound() (game.Round, bool) {
	var round game.Round
	if !s.load(roundFile, &round) {
		return game.Round{}, false
	}
	// An empty phase means the file predates the current format.
	if round.Phase == "" {
		s.logger.Warn("discarding saved round with no phase")
		return game.Round{}, false
	}
	return round, true
}

// SaveStats persists the session statistics.
func (s *Store) SaveStats(session *statistics.Session) error {
	return s.save(statsFile, session)
}

// LoadStats returns the saved session, or ok=false when nothing usable
// is saved.
func (s *Store) LoadStats() (*statistics.Session, bool) {
	session := statistics.NewSession()
	if !s.load(statsFile, session) {
		return nil, false
	}
	return session, true
}

func (s *Store) save(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(filepath.Join(s.dir, name), data, 0o644)
}

func (s *Store) load(name string, v any) bool {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read saved state", "file", name, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("failed to decode saved state, starting fresh", "file", name, "error", err)
		return false
	}
	return true
}
