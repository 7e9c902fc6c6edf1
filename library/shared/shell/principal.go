package shell

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

type principalKey struct{}

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, principal core.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFrom returns the authenticated principal, or core.ErrUnauthorized when there is none.
func PrincipalFrom(ctx context.Context) (core.Principal, error) {
	principal, ok := ctx.Value(principalKey{}).(core.Principal)
	if !ok {
		return core.Principal{}, core.ErrUnauthorized
	}

	return principal, nil
}

// ScopeToUser narrows a listing for the principal. Staff get the requested user filter unchanged.
// Everybody else is limited to their own rows, and asking for another user is core.ErrForbidden.
func ScopeToUser(principal core.Principal, requested *uuid.UUID) (*uuid.UUID, error) {
	if principal.IsStaff() {
		return requested, nil
	}

	if requested != nil && *requested != principal.UserID {
		return nil, fmt.Errorf("%w: members may only list their own records", core.ErrForbidden)
	}

	own := principal.UserID

	return &own, nil
}
