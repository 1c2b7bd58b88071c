package sheetsync

import (
	"sync"
	"time"

	"github.com/rengganislabs/ledger_backend/models"
)

// Store holds the current normalized ledger snapshot. Reports only ever
// see a complete LedgerSet: a refresh replaces the whole set atomically,
// never patches it in place.
type Store struct {
	mu          sync.RWMutex
	set         models.LedgerSet
	ready       bool
	lastErr     string
	lastAttempt time.Time
}

type Status struct {
	Ready         bool      `json:"ready"`
	Version       string    `json:"version"`
	FetchedAt     time.Time `json:"fetched_at"`
	RevenueRows   int       `json:"revenue_rows"`
	ExpenseRows   int       `json:"expense_rows"`
	CapitalRows   int       `json:"capital_rows"`
	LastError     string    `json:"last_error,omitempty"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
}

var defaultStore = NewStore()

func GetStore() *Store {
	return defaultStore
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Current() (models.LedgerSet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set, s.ready
}

func (s *Store) Replace(set models.LedgerSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set
	s.ready = true
	s.lastErr = ""
	s.lastAttempt = time.Now()
}

func (s *Store) recordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err.Error()
	s.lastAttempt = time.Now()
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Ready:         s.ready,
		Version:       s.set.Version,
		FetchedAt:     s.set.FetchedAt,
		RevenueRows:   len(s.set.Revenue),
		ExpenseRows:   len(s.set.Expense),
		CapitalRows:   len(s.set.Capital),
		LastError:     s.lastErr,
		LastAttemptAt: s.lastAttempt,
	}
}
