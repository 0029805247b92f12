// Package ledger defines the score submission contract: each player keeps
// one best record per difficulty, and a submission only replaces it when
// the new score is strictly higher.
package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/shapedrop/internal/games/shapedrop/engine"
)

// Validation errors.
var (
	ErrEmptyPlayer       = errors.New("ledger: player name is empty")
	ErrNegativeValue     = errors.New("ledger: score and lines must not be negative")
	ErrUnknownDifficulty = errors.New("ledger: unknown difficulty")
)

// Result is the outcome of one finished game.
type Result struct {
	Player     string
	Score      int
	Lines      int
	Difficulty engine.Difficulty
}

// Validate checks that the result can be stored.
func (r Result) Validate() error {
	if strings.TrimSpace(r.Player) == "" {
		return ErrEmptyPlayer
	}
	if r.Score < 0 || r.Lines < 0 {
		return ErrNegativeValue
	}
	if !r.Difficulty.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(r.Difficulty))
	}
	return nil
}

// Record is a player's best result at one difficulty.
type Record struct {
	Player      string
	Score       int
	Lines       int
	Difficulty  engine.Difficulty
	SubmittedAt time.Time
}

// Improves reports whether r should replace the stored record existing.
func (r Result) Improves(existing *Record) bool {
	return existing == nil || r.Score > existing.Score
}

// Submitter accepts finished game results.
type Submitter interface {
	// Submit stores r if it beats the player's record at r.Difficulty and
	// reports whether it did.
	Submit(r Result) (improved bool, err error)
}

// Reader queries stored records.
type Reader interface {
	// UserRecord returns the player's record, or nil if there is none.
	UserRecord(player string, d engine.Difficulty) (*Record, error)
	// Leaderboard returns the best records at d, highest score first.
	// limit <= 0 returns every record.
	Leaderboard(d engine.Difficulty, limit int) ([]Record, error)
}

// Ledger is a Submitter that can also be queried.
type Ledger interface {
	Submitter
	Reader
}

type recordKey struct {
	player string
	d      engine.Difficulty
}

// Memory is an in-process Ledger. It backs sessions when no database is
// available.
type Memory struct {
	mu      sync.Mutex
	records map[recordKey]Record
	now     func() time.Time
}

// NewMemory returns an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{records: make(map[recordKey]Record), now: time.Now}
}

// Submit implements Submitter.
func (m *Memory) Submit(r Result) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := recordKey{r.Player, r.Difficulty}
	var existing *Record
	if rec, ok := m.records[key]; ok {
		existing = &rec
	}
	if !r.Improves(existing) {
		return false, nil
	}
	m.records[key] = Record{
		Player:      r.Player,
		Score:       r.Score,
		Lines:       r.Lines,
		Difficulty:  r.Difficulty,
		SubmittedAt: m.now(),
	}
	return true, nil
}

// UserRecord implements Reader.
func (m *Memory) UserRecord(player string, d engine.Difficulty) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[recordKey{player, d}]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Leaderboard implements Reader.
func (m *Memory) Leaderboard(d engine.Difficulty, limit int) ([]Record, error) {
	m.mu.Lock()
	var out []Record
	for k, rec := range m.records {
		if k.d == d {
			out = append(out, rec)
		}
	}
	m.mu.Unlock()

	SortRecords(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SortRecords orders records by score descending, then by earlier
// submission, then by player name.
func SortRecords(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.Before(b.SubmittedAt)
		}
		return a.Player < b.Player
	})
}

var _ Ledger = (*Memory)(nil)
