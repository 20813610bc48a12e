package services

import (
	"context"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAndParseRefreshToken validates a refresh token string against a user's stored token details.
	// It returns the user if the token is valid and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// GoogleOAuthSvcFacade defines the interface for Google sign-in.
type GoogleOAuthSvcFacade interface {
	// ExchangeCodeForIDToken exchanges an OAuth authorization code and returns Google's ID token.
	ExchangeCodeForIDToken(ctx context.Context, code string) (string, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns the verified identity.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.GoogleUserInfo, error)
}
