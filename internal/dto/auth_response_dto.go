package dto

import "time"

// GoogleIDTokenRequest carries an ID token obtained by the client from Google Sign-In.
type GoogleIDTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// ExchangeCodeRequest carries an OAuth authorization code to exchange with Google.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// RefreshTokenRequest asks for a new access token.
type RefreshTokenRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token                 string    `json:"token"`
	ExpiresAt             time.Time `json:"expiresAt"`
	UserID                string    `json:"userID"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}
