package auth

import (
	"context"
	"fmt"

	"speakeradmin/internal/domain"
)

type roleAuthorizer struct {
	roles domain.RoleRepository
}

// NewRoleAuthorizer returns an Authorizer backed by the roles tables.
// Speaker management and the object-level edit/delete checks all require the
// admin role; the per-record hooks exist so finer ACLs can land later
// without touching the service.
func NewRoleAuthorizer(roles domain.RoleRepository) domain.Authorizer {
	return &roleAuthorizer{roles: roles}
}

func (a *roleAuthorizer) CanManageSpeakers(ctx context.Context, userID string) (bool, error) {
	return a.hasRole(ctx, userID, domain.RoleAdmin)
}

func (a *roleAuthorizer) CanEditRecord(ctx context.Context, userID string, recordID int64) (bool, error) {
	return a.hasRole(ctx, userID, domain.RoleAdmin)
}

func (a *roleAuthorizer) CanDeleteRecord(ctx context.Context, userID string, recordID int64) (bool, error) {
	return a.hasRole(ctx, userID, domain.RoleAdmin)
}

func (a *roleAuthorizer) hasRole(ctx context.Context, userID, code string) (bool, error) {
	roles, err := a.roles.ListByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("list roles: %w", err)
	}
	for _, r := range roles {
		if r.Code == code {
			return true, nil
		}
	}
	return false, nil
}
