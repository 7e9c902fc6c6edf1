package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

const (
	defaultSessionTTL = 24 * time.Hour

	logMsgLoginSucceeded  = "login succeeded"
	logMsgLoginRejected   = "login rejected"
	logMsgSessionsPurged  = "expired sessions purged"
	logAttrUserID         = "user_id"
	logAttrReason         = "reason"
	logAttrRemovedCount   = "removed"
	reasonUnknownEmail    = "unknown_email"
	reasonInvalidPassword = "invalid_password"
)

// Store defines the persistence operations needed by the Service.
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*core.User, error)
	InsertSession(ctx context.Context, session core.Session) error
	FindSession(ctx context.Context, token uuid.UUID, now time.Time) (*core.Session, error)
	DeleteSession(ctx context.Context, token uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// PasswordVerifier checks a password against a stored hash.
type PasswordVerifier interface {
	Verify(hash string, password string) error
}

// Service handles login, logout and token lookup.
type Service struct {
	store            Store
	verifier         PasswordVerifier
	clock            shell.Clock
	ttl              time.Duration
	contextualLogger ledger.ContextualLogger
}

// Option configures a Service.
type Option func(*Service)

// WithSessionTTL sets how long a session stays valid.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock sets the clock used for expiry.
func WithClock(clock shell.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithPasswordVerifier replaces the bcrypt verifier.
func WithPasswordVerifier(verifier PasswordVerifier) Option {
	return func(s *Service) {
		s.verifier = verifier
	}
}

// WithContextualLogger logs login outcomes.
func WithContextualLogger(logger ledger.ContextualLogger) Option {
	return func(s *Service) {
		s.contextualLogger = logger
	}
}

// NewService creates a Service with a 24h session TTL and bcrypt verification.
func NewService(store Store, opts ...Option) Service {
	service := Service{
		store:    store,
		verifier: shell.PasswordHasher{},
		clock:    shell.SystemClock{},
		ttl:      defaultSessionTTL,
	}

	for _, opt := range opts {
		opt(&service)
	}

	return service
}

// Login checks the credentials and opens a new session.
// Unknown emails and wrong passwords both fail with core.ErrUnauthorized.
func (s Service) Login(ctx context.Context, email string, password string) (core.Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return core.Session{}, core.Invalid("email and password are required")
	}

	user, err := s.store.FindUserByEmail(ctx, core.NormalizeEmail(email))
	if err != nil {
		return core.Session{}, err
	}

	if user == nil {
		s.logInfo(ctx, logMsgLoginRejected, logAttrReason, reasonUnknownEmail)

		return core.Session{}, invalidCredentials()
	}

	if err = s.verifier.Verify(user.PasswordHash, password); err != nil {
		s.logInfo(ctx, logMsgLoginRejected, logAttrReason, reasonInvalidPassword, logAttrUserID, user.UserID.String())

		return core.Session{}, invalidCredentials()
	}

	session := core.Session{
		Token:     uuid.New(),
		UserID:    user.UserID,
		Role:      user.Role,
		ExpiresAt: s.clock.Now().Add(s.ttl).UTC(),
	}

	if err = s.store.InsertSession(ctx, session); err != nil {
		return core.Session{}, err
	}

	s.logInfo(ctx, logMsgLoginSucceeded, logAttrUserID, user.UserID.String())

	return session, nil
}

// Logout revokes the session. Unknown tokens are ignored.
func (s Service) Logout(ctx context.Context, token uuid.UUID) error {
	return s.store.DeleteSession(ctx, token)
}

// Authenticate resolves a bearer token to the principal acting with it.
func (s Service) Authenticate(ctx context.Context, token string) (core.Principal, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(token))
	if err != nil {
		return core.Principal{}, fmt.Errorf("%w: malformed token", core.ErrUnauthorized)
	}

	session, err := s.store.FindSession(ctx, parsed, s.clock.Now())
	if err != nil {
		return core.Principal{}, err
	}

	if session == nil {
		return core.Principal{}, fmt.Errorf("%w: session expired or revoked", core.ErrUnauthorized)
	}

	return core.Principal{UserID: session.UserID, Role: session.Role}, nil
}

// PurgeExpired removes the sessions that have expired.
func (s Service) PurgeExpired(ctx context.Context) (int64, error) {
	removed, err := s.store.DeleteExpiredSessions(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.logInfo(ctx, logMsgSessionsPurged, logAttrRemovedCount, removed)
	}

	return removed, nil
}

func (s Service) logInfo(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, msg, args...)
	}
}

func invalidCredentials() error {
	return fmt.Errorf("%w: invalid email or password", core.ErrUnauthorized)
}
