package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/platform/config"
	"github.com/SscSPs/cek_senet_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService implements the TokenSvcFacade for handling JWT and refresh tokens.
type tokenService struct {
	BaseService
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade, opts ...ServiceOption) portssvc.TokenSvcFacade {
	return &tokenService{
		BaseService: newBaseService(opts...),
		cfg:         cfg,
		userService: userService,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	now := s.Now()
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTIssuer, now, s.cfg.JWTExpiryDuration)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return token, now.Add(s.cfg.JWTExpiryDuration), nil
}

// GenerateRefreshToken creates a random refresh token. Only its hash is ever stored.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return raw, s.Now().Add(s.cfg.RefreshTokenExpiryDuration), nil
}

// ValidateAndParseRefreshToken checks the token against the user's stored hash and expiry.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if s.Now().After(*user.RefreshTokenExpiryTime) {
		s.LogInfo(ctx, "Refresh token expired", slog.String("user_id", userID))
		return nil, fmt.Errorf("refresh token expired: %w", apperrors.ErrUnauthorized)
	}
	if !utils.CompareRefreshTokenHash(refreshTokenString, user.RefreshTokenHash) {
		s.LogWarn(ctx, "Refresh token mismatch", slog.String("user_id", userID))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// googleOAuthService implements GoogleOAuthSvcFacade.
type googleOAuthService struct {
	BaseService
	clientID     string
	oauth2Config *oauth2.Config
	validate     func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

// NewGoogleOAuthService creates a Google sign-in service from the OAuth client settings.
func NewGoogleOAuthService(cfg *config.Config, opts ...ServiceOption) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		BaseService: newBaseService(opts...),
		clientID:    cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
}

// ExchangeCodeForIDToken exchanges an authorization code and returns the id_token Google sends with it.
func (s *googleOAuthService) ExchangeCodeForIDToken(ctx context.Context, code string) (string, error) {
	if s.clientID == "" || s.oauth2Config.ClientSecret == "" {
		return "", fmt.Errorf("google sign-in is not configured: %w", apperrors.ErrUnavailable)
	}
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		s.LogWarn(ctx, "Google code exchange failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to exchange oauth code: %w", apperrors.ErrUnauthorized)
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", fmt.Errorf("google response did not include an id_token: %w", apperrors.ErrUnauthorized)
	}
	return idToken, nil
}

// ValidateGoogleIDToken validates an ID token received from Google against the configured client ID.
func (s *googleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.GoogleUserInfo, error) {
	if s.clientID == "" {
		return nil, fmt.Errorf("google sign-in is not configured: %w", apperrors.ErrUnavailable)
	}

	payload, err := s.validate(ctx, idTokenString, s.clientID)
	if err != nil {
		s.LogWarn(ctx, "Google ID token rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("google ID token validation failed: %w", apperrors.ErrUnauthorized)
	}

	info := &domain.GoogleUserInfo{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		info.EmailVerified = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	return info, nil
}
