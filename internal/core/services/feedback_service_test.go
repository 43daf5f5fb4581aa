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

type FeedbackServiceTestSuite struct {
	suite.Suite
	mockFeedbackRepo *MockFeedbackRepository
	mockClientRepo   *MockClientRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.FeedbackSvcFacade

	manager  domain.Actor
	clientID string
}

func (suite *FeedbackServiceTestSuite) SetupTest() {
	suite.mockFeedbackRepo = new(MockFeedbackRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockUserRepo = new(MockUserRepository)

	clientAuth := services.NewClientService(suite.mockClientRepo, suite.mockUserRepo)
	suite.service = services.NewFeedbackService(suite.mockFeedbackRepo, suite.mockClientRepo, clientAuth)

	suite.manager = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleManager}
	suite.clientID = uuid.NewString()
}

func (suite *FeedbackServiceTestSuite) stubClient(status domain.ClientStatus) {
	client := &domain.Client{
		ClientID:   suite.clientID,
		Name:       "Acme Corp",
		Status:     status,
		AssignedTo: uuid.NewString(),
	}
	suite.mockClientRepo.On("FindClientByID", mock.Anything, suite.clientID).Return(client, nil)
}

func (suite *FeedbackServiceTestSuite) submitRequest() dto.SubmitFeedbackRequest {
	return dto.SubmitFeedbackRequest{
		ClientID:       suite.clientID,
		Rating:         5,
		Comment:        "Great work",
		ServiceQuality: 5,
		Communication:  4,
		WouldRecommend: true,
		SubmittedBy:    "jane@acme.test",
	}
}

func (suite *FeedbackServiceTestSuite) TestSubmitFeedback_WonClientStartsPending() {
	ctx := context.Background()
	suite.stubClient(domain.ClientWon)
	suite.mockFeedbackRepo.On("SaveFeedback", ctx, mock.MatchedBy(func(f domain.Feedback) bool {
		return f.ClientID == suite.clientID && f.Status == domain.FeedbackPending
	})).Return(nil).Once()

	feedback, err := suite.service.SubmitFeedback(ctx, suite.submitRequest())

	suite.Require().NoError(err)
	suite.Equal(domain.FeedbackPending, feedback.Status)
	suite.mockFeedbackRepo.AssertExpectations(suite.T())
}

func (suite *FeedbackServiceTestSuite) TestSubmitFeedback_RejectsNonWonClient() {
	ctx := context.Background()
	suite.stubClient(domain.ClientQualified)

	_, err := suite.service.SubmitFeedback(ctx, suite.submitRequest())

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockFeedbackRepo.AssertNotCalled(suite.T(), "SaveFeedback", mock.Anything, mock.Anything)
}

func (suite *FeedbackServiceTestSuite) TestModerateFeedback_EmployeeForbidden() {
	ctx := context.Background()
	employee := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}

	_, err := suite.service.ModerateFeedback(ctx, uuid.NewString(), domain.FeedbackApproved, employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *FeedbackServiceTestSuite) TestModerateFeedback_RejectsPendingAsTarget() {
	ctx := context.Background()

	_, err := suite.service.ModerateFeedback(ctx, uuid.NewString(), domain.FeedbackPending, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockFeedbackRepo.AssertNotCalled(suite.T(), "UpdateFeedbackStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FeedbackServiceTestSuite) TestModerateFeedback_ApprovalRecomputesAggregates() {
	ctx := context.Background()
	feedbackID := uuid.NewString()
	suite.mockFeedbackRepo.On("FindFeedbackByID", ctx, feedbackID).Return(&domain.Feedback{
		FeedbackID: feedbackID,
		ClientID:   suite.clientID,
		Rating:     4,
		Status:     domain.FeedbackPending,
	}, nil).Once()
	suite.mockFeedbackRepo.On("UpdateFeedbackStatus", ctx, feedbackID, domain.FeedbackApproved, suite.manager.UserID).Return(nil).Once()
	suite.mockFeedbackRepo.On("GetApprovedRating", ctx, suite.clientID).Return(4.25, 2, nil).Once()
	// 4.25 rounds to one decimal place before it is denormalized.
	suite.mockClientRepo.On("UpdateFeedbackAggregates", ctx, suite.clientID, 4.3, 2, mock.AnythingOfType("time.Time")).Return(nil).Once()

	feedback, err := suite.service.ModerateFeedback(ctx, feedbackID, domain.FeedbackApproved, suite.manager)

	suite.Require().NoError(err)
	suite.Equal(domain.FeedbackApproved, feedback.Status)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *FeedbackServiceTestSuite) TestListClientFeedback_EmployeeSeesOnlyApproved() {
	ctx := context.Background()
	assignee := uuid.NewString()
	employee := domain.Actor{UserID: assignee, Role: domain.RoleEmployee}
	client := &domain.Client{ClientID: suite.clientID, Status: domain.ClientWon, AssignedTo: assignee}
	suite.mockClientRepo.On("FindClientByID", mock.Anything, suite.clientID).Return(client, nil)
	suite.mockFeedbackRepo.On("ListFeedbackByClient", ctx, suite.clientID).Return([]domain.Feedback{
		{FeedbackID: uuid.NewString(), ClientID: suite.clientID, Status: domain.FeedbackApproved},
		{FeedbackID: uuid.NewString(), ClientID: suite.clientID, Status: domain.FeedbackPending},
		{FeedbackID: uuid.NewString(), ClientID: suite.clientID, Status: domain.FeedbackRejected},
	}, nil).Once()

	items, err := suite.service.ListClientFeedback(ctx, suite.clientID, employee)

	suite.Require().NoError(err)
	suite.Len(items, 1)
	suite.Equal(domain.FeedbackApproved, items[0].Status)
}

func (suite *FeedbackServiceTestSuite) TestGetFeedbackStats_ComputesRecommendationRate() {
	ctx := context.Background()
	suite.mockFeedbackRepo.On("GetFeedbackStats", ctx).Return(&portsrepo.FeedbackGlobalStats{
		TotalFeedback:         4,
		AverageRating:         4.45,
		AverageServiceQuality: 4.0,
		AverageCommunication:  3.96,
		WouldRecommendCount:   3,
		RatingDistribution:    map[int]int{5: 2, 4: 2},
	}, nil).Once()

	stats, err := suite.service.GetFeedbackStats(ctx, suite.manager)

	suite.Require().NoError(err)
	suite.Equal(75, stats.RecommendationRate)
	suite.InDelta(4.5, stats.AverageRating, 0.001)
	suite.InDelta(4.0, stats.AverageCommunication, 0.001)
}

func (suite *FeedbackServiceTestSuite) TestGetFeedbackStats_EmployeeForbidden() {
	ctx := context.Background()
	employee := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}

	_, err := suite.service.GetFeedbackStats(ctx, employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func TestFeedbackServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeedbackServiceTestSuite))
}
