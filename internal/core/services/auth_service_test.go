package services_test

import (
	"context"
	"testing"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/core/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAuthService(suite.mockUserRepo)
}

func (suite *AuthServiceTestSuite) TestRegister_NormalizesEmailAndHashesPassword() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "jane@clienthub.test").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "jane@clienthub.test" &&
			u.Role == domain.RoleEmployee &&
			u.IsActive &&
			u.PasswordHash != "hunter22" &&
			utils.CheckPasswordHash("hunter22", u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "  Jane@ClientHub.test ",
		Password: "hunter22",
		Role:     "employee",
	})

	suite.Require().NoError(err)
	suite.Equal("jane@clienthub.test", user.Email)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "jane@clienthub.test"}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "jane@clienthub.test").Return(existing, nil).Once()

	_, err := suite.service.Register(ctx, dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@clienthub.test",
		Password: "hunter22",
		Role:     "employee",
	})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) activeUser(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:       uuid.NewString(),
		Name:         "Jane Doe",
		Email:        "jane@clienthub.test",
		PasswordHash: hash,
		Role:         domain.RoleEmployee,
		IsActive:     true,
	}
}

func (suite *AuthServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	user := suite.activeUser("hunter22")
	suite.mockUserRepo.On("FindUserByEmail", ctx, "jane@clienthub.test").Return(user, nil).Once()

	got, err := suite.service.Authenticate(ctx, " Jane@ClientHub.test ", "hunter22")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	user := suite.activeUser("hunter22")
	suite.mockUserRepo.On("FindUserByEmail", ctx, "jane@clienthub.test").Return(user, nil).Once()

	_, err := suite.service.Authenticate(ctx, "jane@clienthub.test", "wrong-password")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_UnknownEmail() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@clienthub.test").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Authenticate(ctx, "ghost@clienthub.test", "hunter22")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_InactiveUser() {
	ctx := context.Background()
	user := suite.activeUser("hunter22")
	user.IsActive = false
	suite.mockUserRepo.On("FindUserByEmail", ctx, "jane@clienthub.test").Return(user, nil).Once()

	_, err := suite.service.Authenticate(ctx, "jane@clienthub.test", "hunter22")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
