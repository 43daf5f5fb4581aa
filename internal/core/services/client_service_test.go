package services_test

import (
	"context"
	"testing"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/core/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ClientServiceTestSuite struct {
	suite.Suite
	mockClientRepo *MockClientRepository
	mockUserRepo   *MockUserRepository
	service        portssvc.ClientSvcFacade

	manager  domain.Actor
	employee domain.Actor
}

func (suite *ClientServiceTestSuite) SetupTest() {
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewClientService(suite.mockClientRepo, suite.mockUserRepo)

	suite.manager = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleManager}
	suite.employee = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}
}

func (suite *ClientServiceTestSuite) clientAssignedTo(userID string) *domain.Client {
	return &domain.Client{
		ClientID:   uuid.NewString(),
		Name:       "Acme Corp",
		Email:      "contact@acme.test",
		Phone:      "+1-555-0100",
		Company:    "Acme",
		Status:     domain.ClientNew,
		AssignedTo: userID,
	}
}

func (suite *ClientServiceTestSuite) TestGetClientByID_EmployeeOwnClient() {
	ctx := context.Background()
	client := suite.clientAssignedTo(suite.employee.UserID)
	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()

	got, err := suite.service.GetClientByID(ctx, client.ClientID, suite.employee)

	suite.Require().NoError(err)
	suite.Equal(client.ClientID, got.ClientID)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestGetClientByID_EmployeeForeignClientForbidden() {
	ctx := context.Background()
	client := suite.clientAssignedTo(uuid.NewString())
	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()

	got, err := suite.service.GetClientByID(ctx, client.ClientID, suite.employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(got)
}

func (suite *ClientServiceTestSuite) TestGetClientByID_ManagerSeesAnyClient() {
	ctx := context.Background()
	client := suite.clientAssignedTo(uuid.NewString())
	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()

	got, err := suite.service.GetClientByID(ctx, client.ClientID, suite.manager)

	suite.Require().NoError(err)
	suite.Equal(client.ClientID, got.ClientID)
}

func (suite *ClientServiceTestSuite) TestListClients_EmployeeScopeForced() {
	ctx := context.Background()
	// Asking for someone else's clients must still scope to the employee.
	params := dto.ListClientsParams{AssignedTo: uuid.NewString()}

	suite.mockClientRepo.On("ListClients", ctx, mock.MatchedBy(func(f portsrepo.ClientListFilter) bool {
		return f.AssignedTo != nil && *f.AssignedTo == suite.employee.UserID
	})).Return([]domain.Client{}, nil).Once()

	_, err := suite.service.ListClients(ctx, params, suite.employee)

	suite.Require().NoError(err)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestListClients_InvalidStatusFilter() {
	ctx := context.Background()

	_, err := suite.service.ListClients(ctx, dto.ListClientsParams{Status: "sideways"}, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ClientServiceTestSuite) TestCreateClient_EmployeeAlwaysSelfAssigned() {
	ctx := context.Background()
	req := dto.CreateClientRequest{
		Name:       "Acme Corp",
		Email:      "contact@acme.test",
		Phone:      "+1-555-0100",
		Company:    "Acme",
		AssignedTo: uuid.NewString(), // ignored for employees
	}

	suite.mockClientRepo.On("SaveClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.AssignedTo == suite.employee.UserID && c.Status == domain.ClientNew
	})).Return(nil).Once()

	created, err := suite.service.CreateClient(ctx, req, suite.employee)

	suite.Require().NoError(err)
	suite.Equal(suite.employee.UserID, created.AssignedTo)
	suite.Equal(domain.ClientNew, created.Status)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestCreateClient_ManagerAssignsExistingEmployee() {
	ctx := context.Background()
	assignee := uuid.NewString()
	req := dto.CreateClientRequest{
		Name:       "Acme Corp",
		Email:      "contact@acme.test",
		Phone:      "+1-555-0100",
		Company:    "Acme",
		AssignedTo: assignee,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, assignee).Return(&domain.User{UserID: assignee}, nil).Once()
	suite.mockClientRepo.On("SaveClient", ctx, mock.AnythingOfType("domain.Client")).Return(nil).Once()

	created, err := suite.service.CreateClient(ctx, req, suite.manager)

	suite.Require().NoError(err)
	suite.Equal(assignee, created.AssignedTo)
}

func (suite *ClientServiceTestSuite) TestCreateClient_UnknownAssigneeRejected() {
	ctx := context.Background()
	assignee := uuid.NewString()
	req := dto.CreateClientRequest{
		Name:       "Acme Corp",
		Email:      "contact@acme.test",
		Phone:      "+1-555-0100",
		Company:    "Acme",
		AssignedTo: assignee,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, assignee).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateClient(ctx, req, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "SaveClient", mock.Anything, mock.Anything)
}

func (suite *ClientServiceTestSuite) TestUpdateClient_EmployeeCannotReassign() {
	ctx := context.Background()
	client := suite.clientAssignedTo(suite.employee.UserID)
	other := uuid.NewString()
	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()

	_, err := suite.service.UpdateClient(ctx, client.ClientID, dto.UpdateClientRequest{AssignedTo: &other}, suite.employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ClientServiceTestSuite) TestAssignClient_EmployeeForbidden() {
	ctx := context.Background()

	_, err := suite.service.AssignClient(ctx, uuid.NewString(), uuid.NewString(), suite.employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "UpdateClient", mock.Anything, mock.Anything)
}

func (suite *ClientServiceTestSuite) TestDeleteClient_EmployeeForbidden() {
	ctx := context.Background()

	err := suite.service.DeleteClient(ctx, uuid.NewString(), suite.employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ClientServiceTestSuite) TestRequestFeedback_RequiresWonClient() {
	ctx := context.Background()
	client := suite.clientAssignedTo(suite.employee.UserID)
	client.Status = domain.ClientQualified
	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()

	_, err := suite.service.RequestFeedback(ctx, client.ClientID, suite.employee)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *ClientServiceTestSuite) TestRequestFeedback_MarksWonClient() {
	ctx := context.Background()
	client := suite.clientAssignedTo(suite.employee.UserID)
	client.Status = domain.ClientWon
	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()
	suite.mockClientRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.FeedbackRequested && c.FeedbackRequestedAt != nil
	})).Return(nil).Once()

	updated, err := suite.service.RequestFeedback(ctx, client.ClientID, suite.employee)

	suite.Require().NoError(err)
	suite.True(updated.FeedbackRequested)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func TestClientServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}
