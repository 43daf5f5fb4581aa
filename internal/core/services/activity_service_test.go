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

type ActivityServiceTestSuite struct {
	suite.Suite
	mockActivityRepo *MockActivityRepository
	mockClientRepo   *MockClientRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.ActivitySvcFacade

	manager  domain.Actor
	employee domain.Actor
	clientID string
}

func (suite *ActivityServiceTestSuite) SetupTest() {
	suite.mockActivityRepo = new(MockActivityRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockUserRepo = new(MockUserRepository)

	clientAuth := services.NewClientService(suite.mockClientRepo, suite.mockUserRepo)
	suite.service = services.NewActivityService(suite.mockActivityRepo, suite.mockClientRepo, clientAuth)

	suite.manager = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleManager}
	suite.employee = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}
	suite.clientID = uuid.NewString()
}

func (suite *ActivityServiceTestSuite) stubClient(assignedTo string) {
	client := &domain.Client{
		ClientID:   suite.clientID,
		Name:       "Acme Corp",
		Status:     domain.ClientQualified,
		AssignedTo: assignedTo,
	}
	suite.mockClientRepo.On("FindClientByID", mock.Anything, suite.clientID).Return(client, nil)
}

func (suite *ActivityServiceTestSuite) TestLogActivity_RefreshesLastContactDate() {
	ctx := context.Background()
	suite.stubClient(suite.employee.UserID)
	suite.mockActivityRepo.On("SaveActivity", ctx, mock.MatchedBy(func(a domain.Activity) bool {
		return a.ClientID == suite.clientID && a.Type == domain.ActivityCall && !a.Done
	})).Return(nil).Once()
	suite.mockClientRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return !c.LastContactDate.IsZero() && c.LastUpdatedBy == suite.employee.UserID
	})).Return(nil).Once()

	activity, err := suite.service.LogActivity(ctx, suite.clientID, dto.CreateActivityRequest{
		Type:        "call",
		Description: "Intro call with procurement",
	}, suite.employee)

	suite.Require().NoError(err)
	suite.Equal(domain.PriorityMedium, activity.Priority)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestLogActivity_ForeignClientForbidden() {
	ctx := context.Background()
	suite.stubClient(uuid.NewString())

	_, err := suite.service.LogActivity(ctx, suite.clientID, dto.CreateActivityRequest{
		Type:        "call",
		Description: "Intro call",
	}, suite.employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockActivityRepo.AssertNotCalled(suite.T(), "SaveActivity", mock.Anything, mock.Anything)
}

func (suite *ActivityServiceTestSuite) TestLogActivity_RejectsUnknownType() {
	ctx := context.Background()
	suite.stubClient(suite.employee.UserID)

	_, err := suite.service.LogActivity(ctx, suite.clientID, dto.CreateActivityRequest{
		Type:        "carrier-pigeon",
		Description: "Message sent",
	}, suite.employee)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ActivityServiceTestSuite) TestListRecentActivities_EmployeeScopedToAssignedClients() {
	ctx := context.Background()
	assigned := []string{uuid.NewString(), uuid.NewString()}
	suite.mockClientRepo.On("ListClientIDsByAssignee", ctx, suite.employee.UserID).Return(assigned, nil).Once()
	suite.mockActivityRepo.On("ListActivities", ctx, mock.MatchedBy(func(filter portsrepo.ActivityListFilter) bool {
		return len(filter.ClientIDs) == 2
	})).Return([]domain.Activity{}, 0, nil).Once()

	_, _, err := suite.service.ListRecentActivities(ctx, dto.ListActivitiesParams{}, suite.employee)

	suite.Require().NoError(err)
	suite.mockActivityRepo.AssertExpectations(suite.T())
}

func (suite *ActivityServiceTestSuite) TestListRecentActivities_EmployeeWithoutClientsGetsEmptyPage() {
	ctx := context.Background()
	suite.mockClientRepo.On("ListClientIDsByAssignee", ctx, suite.employee.UserID).Return([]string{}, nil).Once()

	activities, total, err := suite.service.ListRecentActivities(ctx, dto.ListActivitiesParams{}, suite.employee)

	suite.Require().NoError(err)
	suite.Empty(activities)
	suite.Zero(total)
	suite.mockActivityRepo.AssertNotCalled(suite.T(), "ListActivities", mock.Anything, mock.Anything)
}

func (suite *ActivityServiceTestSuite) TestUpdateActivity_MarksDone() {
	ctx := context.Background()
	suite.stubClient(suite.employee.UserID)
	activityID := uuid.NewString()
	suite.mockActivityRepo.On("FindActivityByID", ctx, activityID).Return(&domain.Activity{
		ActivityID: activityID,
		ClientID:   suite.clientID,
		Type:       domain.ActivityFollowUp,
	}, nil).Once()
	suite.mockActivityRepo.On("UpdateActivity", ctx, mock.MatchedBy(func(a domain.Activity) bool {
		return a.Done
	})).Return(nil).Once()

	done := true
	activity, err := suite.service.UpdateActivity(ctx, activityID, dto.UpdateActivityRequest{Done: &done}, suite.employee)

	suite.Require().NoError(err)
	suite.True(activity.Done)
}

func TestActivityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ActivityServiceTestSuite))
}
