package memstore

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

type tables struct {
	books        map[uuid.UUID]core.Book
	loans        map[uuid.UUID]core.Loan
	reservations map[uuid.UUID]core.Reservation
	fines        map[uuid.UUID]core.Fine
	users        map[uuid.UUID]core.User
	sessions     map[uuid.UUID]core.Session
	reports      []core.Report
	journal      ledger.StorableEvents

	// insertion order, used for "newest first" listings
	order map[uuid.UUID]int
	next  int
}

func newTables() tables {
	return tables{
		books:        make(map[uuid.UUID]core.Book),
		loans:        make(map[uuid.UUID]core.Loan),
		reservations: make(map[uuid.UUID]core.Reservation),
		fines:        make(map[uuid.UUID]core.Fine),
		users:        make(map[uuid.UUID]core.User),
		sessions:     make(map[uuid.UUID]core.Session),
		order:        make(map[uuid.UUID]int),
	}
}

func (t tables) clone() tables {
	return tables{
		books:        maps.Clone(t.books),
		loans:        maps.Clone(t.loans),
		reservations: maps.Clone(t.reservations),
		fines:        maps.Clone(t.fines),
		users:        maps.Clone(t.users),
		sessions:     maps.Clone(t.sessions),
		reports:      slices.Clone(t.reports),
		journal:      slices.Clone(t.journal),
		order:        maps.Clone(t.order),
		next:         t.next,
	}
}

func (t *tables) touch(id uuid.UUID) {
	t.next++
	t.order[id] = t.next
}

// Store is an in-memory stand-in for postgresengine.Store.
type Store struct {
	txMu     sync.Mutex
	mu       sync.Mutex
	data     tables
	failures map[string][]error
	calls    map[string]int
}

type txKey struct{}

// New returns an empty Store.
func New() *Store {
	return &Store{
		data:     newTables(),
		failures: make(map[string][]error),
		calls:    make(map[string]int),
	}
}

// FailNext makes the next call of operation return err. Repeated calls queue up errors.
// Operation names are the method names, e.g. "DecreaseAvailability".
func (s *Store) FailNext(operation string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[operation] = append(s.failures[operation], err)
}

// Calls returns how often operation was called.
func (s *Store) Calls(operation string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls[operation]
}

// enter locks the tables, counts the call and returns an injected error, if any.
// The caller must call s.mu.Unlock.
func (s *Store) enter(operation string) error {
	s.mu.Lock()
	s.calls[operation]++

	queued := s.failures[operation]
	if len(queued) == 0 {
		return nil
	}

	s.failures[operation] = queued[1:]

	return queued[0]
}

// Ping succeeds unless a failure was injected with FailNext.
func (s *Store) Ping(context.Context) error {
	defer s.mu.Unlock()

	return s.enter("Ping")
}

// WithinTx runs fn serialized with all other transactions. When fn fails, all changes it made are undone.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := s.enter("WithinTx"); err != nil {
		s.mu.Unlock()

		return err
	}

	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()

		return err
	}

	return nil
}
