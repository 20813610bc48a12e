package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/SscSPs/cek_senet_app/internal/utils"
	"github.com/google/uuid"
)

// usernameUnsafe matches characters dropped when deriving a username from an email address.
var usernameUnsafe = regexp.MustCompile(`[^a-z0-9._-]`)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service
func NewUserService(userRepo portsrepo.UserRepositoryFacade, opts ...ServiceOption) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBaseService(opts...),
		userRepo:    userRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, apperrors.NewValidationError("username is required")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Username:     username,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", userID))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if userID != requestingUserID {
		return nil, fmt.Errorf("user %s cannot update user %s: %w", requestingUserID, userID, apperrors.ErrForbidden)
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	user.LastUpdatedAt = s.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	user.RefreshTokenHash = refreshTokenHash
	user.RefreshTokenExpiryTime = &refreshTokenExpiryTime
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	user.RefreshTokenHash = ""
	user.RefreshTokenExpiryTime = nil
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

// AuthenticateUser never tells the caller whether the username or the password was wrong.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load user for login")
		return nil, err
	}
	if user.DeletedAt != nil || user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(info.Email))
	if email == "" || !info.EmailVerified {
		return nil, fmt.Errorf("google account has no verified email: %w", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if user.DeletedAt != nil {
			return nil, apperrors.ErrUnauthorized
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up user by email")
		return nil, err
	}

	userID := uuid.NewString()
	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = email
	}
	newUser := domain.User{
		UserID:      userID,
		Username:    googleUsername(email, info.Subject),
		Name:        name,
		Email:       email,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to create user from Google sign-in")
		return nil, err
	}
	s.LogInfo(ctx, "User created from Google sign-in", slog.String("user_id", userID))
	return &newUser, nil
}

// googleUsername derives a username from the email's local part, suffixed with the
// start of the Google subject so two accounts never collide.
func googleUsername(email, subject string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}
	local = usernameUnsafe.ReplaceAllString(local, "")
	if len(subject) > 6 {
		subject = subject[:6]
	}
	if subject == "" {
		return local
	}
	return local + "-" + subject
}
