package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/clocklab/timesheet-backend-go/internal/domain/auth"
	"github.com/clocklab/timesheet-backend-go/internal/domain/user"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  map[string]user.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailExists
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) SoftDelete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newAuthFixture() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwtSvc := jwt.NewJWTService("auth-test-secret", "1h", "24h")
	svc := NewService(repo, jwtSvc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo
}

func registerReq() auth.RegisterRequest {
	return auth.RegisterRequest{
		Email:    "dina@example.com",
		Password: "correct horse",
		FullName: "Dina Lestari",
	}
}

func TestRegister_IssuesTokenPair(t *testing.T) {
	svc, repo := newAuthFixture()

	pair, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "dina@example.com", pair.User.Email)

	stored, err := repo.GetByEmail(context.Background(), "dina@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, stored.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	pair, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "dina@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "dina@example.com",
		Password: "wrong password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Unknown users get the same error as a bad password.
	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _ := newAuthFixture()
	pair, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	// The presented refresh token is single use.
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _ := newAuthFixture()
	pair, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc, _ := newAuthFixture()
	pair, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), pair.RefreshToken))

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
