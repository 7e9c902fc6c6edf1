package listusers

import (
	"context"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// Store defines the persistence operations needed by the QueryHandler.
type Store interface {
	ListUsers(ctx context.Context, filter postgresengine.UserFilter) ([]core.User, error)
}

// QueryHandler lists users.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle returns the matching users. Password hashes never leave this handler.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Users, error) {
	filter := postgresengine.UserFilter{Search: query.Search}

	if query.Role != "" {
		role, err := core.ParseRole(query.Role)
		if err != nil {
			return Users{}, err
		}

		filter.Role = &role
	}

	users, err := h.store.ListUsers(ledger.WithEventualConsistency(ctx), filter)
	if err != nil {
		return Users{}, err
	}

	return Project(users), nil
}

// Project strips credentials from users.
func Project(users []core.User) Users {
	infos := make([]UserInfo, 0, len(users))

	for _, user := range users {
		infos = append(infos, UserInfo{
			UserID:    user.UserID,
			Name:      user.Name,
			Email:     user.Email,
			Phone:     user.Phone,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}

	return Users{Users: infos, Count: len(infos)}
}
