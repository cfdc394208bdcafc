package domain

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/showrunner/internal/models"
)

type fakeUserRepo struct {
	users      map[string]*models.User
	nextID     int
	active     map[int]bool
	logins     int
	closedLast int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}, nextID: 1, active: map[int]bool{}}
}

func (f *fakeUserRepo) InsertUser(_ context.Context, u *models.User) (*models.User, error) {
	u.ID = f.nextID
	f.nextID++
	f.users[u.Username] = u
	return u, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return f.users[username], nil
}

func (f *fakeUserRepo) SetUserActive(_ context.Context, userID int, active bool) error {
	f.active[userID] = active
	return nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]models.User, error) { return nil, nil }

func (f *fakeUserRepo) InsertLogin(_ context.Context, userID int) (*models.LoginRecord, error) {
	f.logins++
	return &models.LoginRecord{ID: f.logins, UserID: userID}, nil
}

func (f *fakeUserRepo) CloseLastLogin(_ context.Context, userID int) error {
	f.closedLast = userID
	return nil
}

func (f *fakeUserRepo) ListLogins(_ context.Context, _ int) ([]models.LoginRecord, error) {
	return nil, nil
}

func TestSignupAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	user, err := auth.Signup(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	token, logged, err := auth.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)
	assert.True(t, repo.active[user.ID])
	assert.Equal(t, 1, repo.logins)
}

func TestSignupRejectsBadInput(t *testing.T) {
	auth := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	for _, pair := range [][2]string{
		{"", "pass"},
		{"user", ""},
		{"string", "pass"},
		{"user", "string"},
	} {
		_, err := auth.Signup(ctx, pair[0], pair[1])
		assert.ErrorIs(t, err, ErrBadSignup, "username=%q password=%q", pair[0], pair[1])
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	auth := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	_, err := auth.Signup(ctx, "bob", "pass1")
	require.NoError(t, err)

	_, err = auth.Signup(ctx, "bob", "pass2")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginWrongPassword(t *testing.T) {
	auth := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	_, err := auth.Signup(ctx, "carol", "right")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "carol", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	_, err := auth.Signup(ctx, "dave", "pass")
	require.NoError(t, err)
	token, user, err := auth.Login(ctx, "dave", "pass")
	require.NoError(t, err)

	got, err := auth.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestValidateTokenGarbage(t *testing.T) {
	auth := NewAuthService(newFakeUserRepo(), "test-secret")

	_, err := auth.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredTokenLogsUserOut(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	user, err := auth.Signup(ctx, "erin", "pass")
	require.NoError(t, err)
	repo.active[user.ID] = true

	claims := jwt.MapClaims{
		"sub":  strconv.Itoa(user.ID),
		"name": user.Username,
		"role": user.Role,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.ValidateToken(ctx, expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.False(t, repo.active[user.ID])
	assert.Equal(t, user.ID, repo.closedLast)
}

func TestLogout(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	user, err := auth.Signup(ctx, "frank", "pass")
	require.NoError(t, err)
	_, _, err = auth.Login(ctx, "frank", "pass")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, user.ID))
	assert.False(t, repo.active[user.ID])
	assert.Equal(t, user.ID, repo.closedLast)
}
