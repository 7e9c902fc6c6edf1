package postgresengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine/internal/adapters"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	tableUsers    = "users"
	tableSessions = "sessions"

	opFindUser              = "find_user"
	opFindUserByEmail       = "find_user_by_email"
	opInsertUser            = "insert_user"
	opListUsers             = "list_users"
	opInsertSession         = "insert_session"
	opFindSession           = "find_session"
	opDeleteSession         = "delete_session"
	opDeleteExpiredSessions = "delete_expired_sessions"
)

var userColumns = []any{
	goqu.L("u.user_id::text"),
	goqu.I("u.name"),
	goqu.I("u.email"),
	goqu.L("COALESCE(u.phone, '')"),
	goqu.I("u.password_hash"),
	goqu.L("u.role::text"),
	goqu.I("u.created_at"),
}

func scanUser(rows adapters.DBRows) (core.User, error) {
	var (
		user core.User
		id   string
		role string
	)

	if err := rows.Scan(&id, &user.Name, &user.Email, &user.Phone, &user.PasswordHash, &role, &user.CreatedAt); err != nil {
		return core.User{}, err
	}

	var err error
	if user.UserID, err = parseUUID(id); err != nil {
		return core.User{}, err
	}

	user.Role = core.Role(role)

	return user, nil
}

func (s Store) listUsers(ctx context.Context, operation string, ds *goqu.SelectDataset) ([]core.User, error) {
	sqlQuery, err := s.toSQL(ctx, operation, ds)
	if err != nil {
		return nil, err
	}

	users := make([]core.User, 0)

	_, err = s.query(ctx, operation, sqlQuery, func(rows adapters.DBRows) error {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return scanErr
		}

		users = append(users, user)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (s Store) selectUsers() *goqu.SelectDataset {
	return s.builder().From(goqu.T(tableUsers).As("u")).Select(userColumns...)
}

// FindUser returns the user or nil when it does not exist.
func (s Store) FindUser(ctx context.Context, userID uuid.UUID) (*core.User, error) {
	users, err := s.listUsers(ctx, opFindUser, s.selectUsers().Where(goqu.I("u.user_id").Eq(userID.String())).Limit(1))
	if err != nil || len(users) == 0 {
		return nil, err
	}

	return &users[0], nil
}

// FindUserByEmail looks the user up by normalized email, or returns nil.
func (s Store) FindUserByEmail(ctx context.Context, email string) (*core.User, error) {
	users, err := s.listUsers(ctx, opFindUserByEmail,
		s.selectUsers().Where(goqu.Func("lower", goqu.I("u.email")).Eq(core.NormalizeEmail(email))).Limit(1))
	if err != nil || len(users) == 0 {
		return nil, err
	}

	return &users[0], nil
}

// ListUsers returns users ordered by name.
func (s Store) ListUsers(ctx context.Context, filter UserFilter) ([]core.User, error) {
	conditions := make([]goqu.Expression, 0, 2)

	if filter.Role != nil {
		conditions = append(conditions, goqu.I("u.role").Eq(string(*filter.Role)))
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, goqu.Or(
			goqu.I("u.name").ILike(pattern),
			goqu.I("u.email").ILike(pattern),
		))
	}

	return s.listUsers(ctx, opListUsers, s.selectUsers().Where(conditions...).Order(goqu.I("u.name").Asc()))
}

// InsertUser stores a new user. A concurrent registration of the same email surfaces as ledger.ErrConcurrencyConflict.
func (s Store) InsertUser(ctx context.Context, user core.User) error {
	sqlQuery, err := s.toSQL(ctx, opInsertUser, s.builder().Insert(tableUsers).Rows(goqu.Record{
		"user_id":       user.UserID.String(),
		"name":          user.Name,
		"email":         user.Email,
		"phone":         nullIfEmpty(user.Phone),
		"password_hash": user.PasswordHash,
		"role":          string(user.Role),
	}))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opInsertUser, sqlQuery)
}

// InsertSession stores a session.
func (s Store) InsertSession(ctx context.Context, session core.Session) error {
	sqlQuery, err := s.toSQL(ctx, opInsertSession, s.builder().Insert(tableSessions).Rows(goqu.Record{
		"token":      session.Token.String(),
		"user_id":    session.UserID.String(),
		"expires_at": session.ExpiresAt.UTC(),
	}))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opInsertSession, sqlQuery)
}

// FindSession returns the session if it exists and has not expired at now, with the user's current role.
func (s Store) FindSession(ctx context.Context, token uuid.UUID, now time.Time) (*core.Session, error) {
	sqlQuery, err := s.toSQL(ctx, opFindSession, s.builder().
		From(goqu.T(tableSessions).As("s")).
		Join(goqu.T(tableUsers).As("u"), goqu.On(goqu.I("u.user_id").Eq(goqu.I("s.user_id")))).
		Select(goqu.L("s.token::text"), goqu.L("s.user_id::text"), goqu.L("u.role::text"), goqu.I("s.expires_at")).
		Where(
			goqu.I("s.token").Eq(token.String()),
			goqu.I("s.expires_at").Gt(now.UTC()),
		).
		Limit(1))
	if err != nil {
		return nil, err
	}

	var found *core.Session

	_, err = s.query(ctx, opFindSession, sqlQuery, func(rows adapters.DBRows) error {
		var (
			session core.Session
			tok     string
			userID  string
			role    string
		)

		if scanErr := rows.Scan(&tok, &userID, &role, &session.ExpiresAt); scanErr != nil {
			return scanErr
		}

		var convErr error
		if session.Token, convErr = parseUUID(tok); convErr != nil {
			return convErr
		}

		if session.UserID, convErr = parseUUID(userID); convErr != nil {
			return convErr
		}

		session.Role = core.Role(role)
		found = &session

		return nil
	})

	return found, err
}

// DeleteSession revokes a session. Deleting an unknown token is not an error.
func (s Store) DeleteSession(ctx context.Context, token uuid.UUID) error {
	sqlQuery, err := s.toSQL(ctx, opDeleteSession,
		s.builder().Delete(tableSessions).Where(goqu.C("token").Eq(token.String())))
	if err != nil {
		return err
	}

	_, err = s.exec(ctx, opDeleteSession, sqlQuery)

	return err
}

// DeleteExpiredSessions removes sessions that expired before now and returns how many were removed.
func (s Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	sqlQuery, err := s.toSQL(ctx, opDeleteExpiredSessions,
		s.builder().Delete(tableSessions).Where(goqu.C("expires_at").Lte(now.UTC())))
	if err != nil {
		return 0, err
	}

	return s.exec(ctx, opDeleteExpiredSessions, sqlQuery)
}
