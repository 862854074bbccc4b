package auth

import (
	"context"
	"errors"
	"testing"

	"speakeradmin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoleRepo struct {
	byUser map[string][]*domain.Role
	err    error
}

func (f *fakeRoleRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func TestRoleAuthorizer(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRoleRepo{byUser: map[string][]*domain.Role{
		"admin-1":  {{ID: "r1", Code: domain.RoleAdmin}},
		"editor-1": {{ID: "r2", Code: "editor"}},
	}}
	a := NewRoleAuthorizer(repo)

	ok, err := a.CanManageSpeakers(ctx, "admin-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.CanManageSpeakers(ctx, "editor-1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = a.CanEditRecord(ctx, "admin-1", 7)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.CanDeleteRecord(ctx, "nobody", 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoleAuthorizer_repoError(t *testing.T) {
	a := NewRoleAuthorizer(&fakeRoleRepo{err: errors.New("db down")})
	ok, err := a.CanManageSpeakers(context.Background(), "admin-1")
	require.Error(t, err)
	assert.False(t, ok)
}
