package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// FindUser returns the user or nil.
func (s *Store) FindUser(_ context.Context, userID uuid.UUID) (*core.User, error) {
	defer s.mu.Unlock()
	if err := s.enter("FindUser"); err != nil {
		return nil, err
	}

	user, ok := s.data.users[userID]
	if !ok {
		return nil, nil
	}

	return &user, nil
}

// FindUserByEmail returns the user with the normalized email or nil.
func (s *Store) FindUserByEmail(_ context.Context, email string) (*core.User, error) {
	defer s.mu.Unlock()
	if err := s.enter("FindUserByEmail"); err != nil {
		return nil, err
	}

	email = core.NormalizeEmail(email)

	for _, user := range s.data.users {
		if user.Email == email {
			return &user, nil
		}
	}

	return nil, nil
}

// ListUsers returns users ordered by name.
func (s *Store) ListUsers(_ context.Context, filter postgresengine.UserFilter) ([]core.User, error) {
	defer s.mu.Unlock()
	if err := s.enter("ListUsers"); err != nil {
		return nil, err
	}

	search := strings.ToLower(filter.Search)
	users := make([]core.User, 0)

	for _, user := range s.data.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(user.Name), search) &&
			!strings.Contains(strings.ToLower(user.Email), search) {
			continue
		}

		users = append(users, user)
	}

	slices.SortFunc(users, func(a, b core.User) int {
		return strings.Compare(a.Name, b.Name)
	})

	return users, nil
}

// InsertUser stores a user. A taken email is a conflict.
func (s *Store) InsertUser(_ context.Context, user core.User) error {
	defer s.mu.Unlock()
	if err := s.enter("InsertUser"); err != nil {
		return err
	}

	if _, exists := s.data.users[user.UserID]; exists {
		return ledger.ErrConcurrencyConflict
	}

	for _, other := range s.data.users {
		if other.Email == user.Email {
			return ledger.ErrConcurrencyConflict
		}
	}

	s.data.users[user.UserID] = user
	s.data.touch(user.UserID)

	return nil
}

// InsertSession stores a session.
func (s *Store) InsertSession(_ context.Context, session core.Session) error {
	defer s.mu.Unlock()
	if err := s.enter("InsertSession"); err != nil {
		return err
	}

	if _, ok := s.data.users[session.UserID]; !ok {
		return ledger.ErrConcurrencyConflict
	}

	s.data.sessions[session.Token] = session

	return nil
}

// FindSession returns the unexpired session with the user's current role, or nil.
func (s *Store) FindSession(_ context.Context, token uuid.UUID, now time.Time) (*core.Session, error) {
	defer s.mu.Unlock()
	if err := s.enter("FindSession"); err != nil {
		return nil, err
	}

	session, ok := s.data.sessions[token]
	if !ok || !session.ExpiresAt.After(now) {
		return nil, nil
	}

	user, ok := s.data.users[session.UserID]
	if !ok {
		return nil, nil
	}

	session.Role = user.Role

	return &session, nil
}

// DeleteSession revokes a session. Unknown tokens are ignored.
func (s *Store) DeleteSession(_ context.Context, token uuid.UUID) error {
	defer s.mu.Unlock()
	if err := s.enter("DeleteSession"); err != nil {
		return err
	}

	delete(s.data.sessions, token)

	return nil
}

// DeleteExpiredSessions removes sessions expired at now.
func (s *Store) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	defer s.mu.Unlock()
	if err := s.enter("DeleteExpiredSessions"); err != nil {
		return 0, err
	}

	var removed int64

	for token, session := range s.data.sessions {
		if !session.ExpiresAt.After(now) {
			delete(s.data.sessions, token)
			removed++
		}
	}

	return removed, nil
}
