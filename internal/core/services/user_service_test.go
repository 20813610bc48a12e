package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/core/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/SscSPs/cek_senet_app/internal/platform/config"
	"github.com/SscSPs/cek_senet_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	tokens   portssvc.TokenSvcFacade
	ctx      context.Context
	now      time.Time
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := services.WithClock(fixedClock(suite.now))
	suite.service = services.NewUserService(suite.mockRepo, clock)
	suite.tokens = services.NewTokenService(&config.Config{
		JWTSecret:                  "test-secret",
		JWTIssuer:                  "test",
		JWTExpiryDuration:          time.Hour,
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}, suite.service, clock)
	suite.ctx = context.Background()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	var saved domain.User
	suite.mockRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
		Return(nil).Once()

	user, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{Username: " Ayse ", Password: "s3cret-pass", Name: "Ayşe"})

	suite.Require().NoError(err)
	suite.Equal("ayse", user.Username)
	suite.NotEqual("s3cret-pass", saved.PasswordHash)
	suite.True(utils.CheckPasswordHash("s3cret-pass", saved.PasswordHash))
	suite.Equal(user.UserID, saved.CreatedBy)
}

func (suite *UserServiceTestSuite) TestCreateUser_Duplicate() {
	suite.mockRepo.On("SaveUser", suite.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{Username: "ayse", Password: "s3cret-pass", Name: "A"})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: uuid.NewString(), Username: "ayse", PasswordHash: hash}
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "ayse").Return(stored, nil)
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	user, err := suite.service.AuthenticateUser(suite.ctx, "Ayse", "correct-horse")
	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)

	_, err = suite.service.AuthenticateUser(suite.ctx, "ayse", "wrong")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(suite.ctx, "ghost", "whatever")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestUpdateUser_OnlySelf() {
	_, err := suite.service.UpdateUser(suite.ctx, "someone", dto.UpdateUserRequest{}, "other")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_Existing() {
	existing := &domain.User{UserID: "u1", Email: "ayse@example.com"}
	suite.mockRepo.On("FindUserByEmail", suite.ctx, "ayse@example.com").Return(existing, nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(suite.ctx, domain.GoogleUserInfo{Subject: "1234567890", Email: "Ayse@Example.com", EmailVerified: true})

	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_Creates() {
	suite.mockRepo.On("FindUserByEmail", suite.ctx, "new.user@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "new.user-123456" && u.PasswordHash == "" && u.Name == "New User"
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(suite.ctx, domain.GoogleUserInfo{
		Subject: "1234567890", Email: "new.user@example.com", EmailVerified: true, Name: "New User",
	})

	suite.Require().NoError(err)
	suite.Equal("new.user@example.com", user.Email)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_UnverifiedEmail() {
	_, err := suite.service.FindOrCreateGoogleUser(suite.ctx, domain.GoogleUserInfo{Email: "x@example.com"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestRefreshTokenLifecycle() {
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Username: "ayse"}

	raw, expiry, err := suite.tokens.GenerateRefreshToken(suite.ctx, user)
	suite.Require().NoError(err)
	suite.Equal(suite.now.Add(24*time.Hour), expiry)

	stored := &domain.User{UserID: userID, RefreshTokenHash: utils.HashRefreshToken(raw), RefreshTokenExpiryTime: &expiry}
	suite.mockRepo.On("FindUserByID", suite.ctx, userID).Return(stored, nil)

	got, err := suite.tokens.ValidateAndParseRefreshToken(suite.ctx, userID, raw)
	suite.Require().NoError(err)
	suite.Equal(userID, got.UserID)

	_, err = suite.tokens.ValidateAndParseRefreshToken(suite.ctx, userID, raw+"x")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestRefreshToken_Expired() {
	userID := uuid.NewString()
	past := suite.now.Add(-time.Minute)
	stored := &domain.User{UserID: userID, RefreshTokenHash: utils.HashRefreshToken("tok"), RefreshTokenExpiryTime: &past}
	suite.mockRepo.On("FindUserByID", suite.ctx, userID).Return(stored, nil).Once()

	_, err := suite.tokens.ValidateAndParseRefreshToken(suite.ctx, userID, "tok")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestGenerateAccessToken() {
	userID := uuid.NewString()

	token, expiresAt, err := suite.tokens.GenerateAccessToken(suite.ctx, &domain.User{UserID: userID})

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.Equal(suite.now.Add(time.Hour), expiresAt)
}
