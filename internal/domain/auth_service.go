package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 60 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username already taken")
	ErrBadSignup          = errors.New("username and password must be set")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

type AuthService struct {
	users  ports.UserRepository
	secret []byte
}

func NewAuthService(users ports.UserRepository, secret string) ports.AuthService {
	return &AuthService{users: users, secret: []byte(secret)}
}

func (a *AuthService) Signup(ctx context.Context, username, password string) (*models.User, error) {
	// "string" is what the swagger UI submits untouched
	if username == "" || password == "" || username == "string" || password == "string" {
		return nil, ErrBadSignup
	}

	existing, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := a.users.InsertUser(ctx, &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         "user",
	})
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (a *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil || user.IsDeleted {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.issueToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	if _, err := a.users.InsertLogin(ctx, user.ID); err != nil {
		return "", nil, fmt.Errorf("record login: %w", err)
	}
	if err := a.users.SetUserActive(ctx, user.ID, true); err != nil {
		return "", nil, fmt.Errorf("activate user: %w", err)
	}
	user.IsActive = true

	return token, user, nil
}

func (a *AuthService) Logout(ctx context.Context, userID int) error {
	if err := a.users.CloseLastLogin(ctx, userID); err != nil {
		return fmt.Errorf("close login: %w", err)
	}
	if err := a.users.SetUserActive(ctx, userID, false); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	return nil
}

func (a *AuthService) issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.Itoa(user.ID),
		"name": user.Username,
		"role": user.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// the session ended on its own: mark the user logged out
			if id := subjectFromExpired(token); id > 0 {
				_ = a.users.CloseLastLogin(ctx, id)
				_ = a.users.SetUserActive(ctx, id, false)
			}
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.Atoi(sub)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := a.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil || user.IsDeleted {
		return nil, ErrTokenInvalid
	}
	return user, nil
}

// subjectFromExpired reads the sub claim without verifying the (already
// rejected) signature lifetime.
func subjectFromExpired(token string) int {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return 0
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}
	sub, _ := claims["sub"].(string)
	id, _ := strconv.Atoi(sub)
	return id
}
