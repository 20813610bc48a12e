package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	PasswordHash sql.NullString `db:"password_hash"` // Null for Google-only accounts
	Name         string         `db:"name"`
	Email        sql.NullString `db:"email"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
