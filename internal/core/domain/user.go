package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete

	RefreshTokenHash       string     `json:"-"` // SHA-256 of the current refresh token
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo is the verified identity taken from a Google ID token.
type GoogleUserInfo struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}
