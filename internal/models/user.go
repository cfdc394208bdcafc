package models

import "time"

type User struct {
	ID           int       `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"` // "user" or "admin"
	IsActive     bool      `db:"is_active"`
	IsDeleted    bool      `db:"is_deleted"`
	CreatedAt    time.Time `db:"created_at"`
}

type LoginRecord struct {
	ID         int        `db:"id"`
	UserID     int        `db:"user_id"`
	LoginTime  time.Time  `db:"login_time"`
	LogoutTime *time.Time `db:"logout_time"` // nil while the session is open
}
