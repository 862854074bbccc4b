package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"speakeradmin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return "hashed:" + salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != "hashed:"+salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokenIssuer struct{ err error }

func (f *fakeTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

func newAuthFixture() (domain.AuthService, *fakeUserRepo) {
	repo := &fakeUserRepo{byEmail: map[string]*domain.User{
		"admin@example.com": {
			ID:           "u1",
			Email:        "admin@example.com",
			PasswordHash: "hashed:s1:hunter22",
			PasswordSalt: "s1",
		},
	}}
	return NewAuthService(repo, fakeHasher{}, &fakeTokenIssuer{}, time.Hour, 2*time.Second), repo
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthFixture()

	token, user, err := svc.Login(context.Background(), "admin@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "token-u1", token)
	assert.Equal(t, "u1", user.ID)
}

func TestAuthService_Login_normalizesEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, user, err := svc.Login(context.Background(), "  Admin@Example.COM ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
}

func TestAuthService_Login_badCredentials(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	// Unknown email and wrong password must be indistinguishable.
	for _, c := range []struct{ email, password string }{
		{"nobody@example.com", "hunter22"},
		{"admin@example.com", "wrong"},
	} {
		_, _, err := svc.Login(ctx, c.email, c.password)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrForbidden))
		assert.Equal(t, "Invalid email or password", err.Error())
	}
}

func TestAuthService_Login_missingFields(t *testing.T) {
	svc, _ := newAuthFixture()

	_, _, err := svc.Login(context.Background(), "", "pw")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, _, err = svc.Login(context.Background(), "admin@example.com", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
