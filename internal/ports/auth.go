package ports

import (
	"context"

	"github.com/Vovarama1992/showrunner/internal/models"
)

type AuthService interface {
	Signup(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	Logout(ctx context.Context, userID int) error

	// ValidateToken returns the authenticated user for a bearer token.
	// An expired token marks the user inactive before failing.
	ValidateToken(ctx context.Context, token string) (*models.User, error)
}

type UserRepository interface {
	InsertUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	SetUserActive(ctx context.Context, userID int, active bool) error
	ListUsers(ctx context.Context) ([]models.User, error)

	InsertLogin(ctx context.Context, userID int) (*models.LoginRecord, error)
	CloseLastLogin(ctx context.Context, userID int) error
	ListLogins(ctx context.Context, userID int) ([]models.LoginRecord, error)
}
