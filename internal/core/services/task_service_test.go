package services_test

import (
	"context"
	"testing"
	"time"

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

type TaskServiceTestSuite struct {
	suite.Suite
	mockTaskRepo   *MockTaskRepository
	mockUserRepo   *MockUserRepository
	mockClientRepo *MockClientRepository
	service        portssvc.TaskSvcFacade

	manager  domain.Actor
	employee domain.Actor
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.mockTaskRepo = new(MockTaskRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.service = services.NewTaskService(suite.mockTaskRepo, suite.mockUserRepo, suite.mockClientRepo)

	suite.manager = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleManager}
	suite.employee = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleEmployee}
}

func (suite *TaskServiceTestSuite) TestCreateTask_EmployeeForbidden() {
	ctx := context.Background()

	_, err := suite.service.CreateTask(ctx, dto.CreateTaskRequest{
		Title:      "Follow up call",
		AssignedTo: suite.employee.UserID,
	}, suite.employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTaskRepo.AssertNotCalled(suite.T(), "SaveTask", mock.Anything, mock.Anything)
}

func (suite *TaskServiceTestSuite) TestCreateTask_UnknownAssignee() {
	ctx := context.Background()
	assignee := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", ctx, assignee).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTask(ctx, dto.CreateTaskRequest{
		Title:      "Follow up call",
		AssignedTo: assignee,
	}, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockTaskRepo.AssertNotCalled(suite.T(), "SaveTask", mock.Anything, mock.Anything)
}

func (suite *TaskServiceTestSuite) TestCreateTask_DefaultsToMediumPriority() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.employee.UserID).Return(&domain.User{
		UserID: suite.employee.UserID,
		Role:   domain.RoleEmployee,
	}, nil).Once()
	suite.mockTaskRepo.On("SaveTask", ctx, mock.MatchedBy(func(task domain.Task) bool {
		return task.Priority == domain.TaskPriorityMedium &&
			task.Status == domain.TaskPending &&
			task.AssignedBy == suite.manager.UserID
	})).Return(nil).Once()

	task, err := suite.service.CreateTask(ctx, dto.CreateTaskRequest{
		Title:      "Follow up call",
		AssignedTo: suite.employee.UserID,
	}, suite.manager)

	suite.Require().NoError(err)
	suite.Equal(domain.TaskPriorityMedium, task.Priority)
	suite.mockTaskRepo.AssertExpectations(suite.T())
}

func (suite *TaskServiceTestSuite) TestCreateTask_RejectsInvalidPriority() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.employee.UserID).Return(&domain.User{
		UserID: suite.employee.UserID,
	}, nil).Once()

	_, err := suite.service.CreateTask(ctx, dto.CreateTaskRequest{
		Title:      "Follow up call",
		AssignedTo: suite.employee.UserID,
		Priority:   "critical",
	}, suite.manager)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TaskServiceTestSuite) TestListTasks_EmployeeScopedToOwnTasks() {
	ctx := context.Background()
	suite.mockTaskRepo.On("ListTasks", ctx, mock.MatchedBy(func(filter portsrepo.TaskListFilter) bool {
		return filter.AssignedTo != nil && *filter.AssignedTo == suite.employee.UserID
	})).Return([]domain.Task{}, 0, nil).Once()

	_, _, err := suite.service.ListTasks(ctx, dto.ListTasksParams{}, suite.employee)

	suite.Require().NoError(err)
	suite.mockTaskRepo.AssertExpectations(suite.T())
}

func (suite *TaskServiceTestSuite) TestUpdateTaskStatus_AssigneeCompletesOwnTask() {
	ctx := context.Background()
	taskID := uuid.NewString()
	suite.mockTaskRepo.On("FindTaskByID", ctx, taskID).Return(&domain.Task{
		TaskID:     taskID,
		AssignedTo: suite.employee.UserID,
		Status:     domain.TaskInProgress,
	}, nil).Once()
	suite.mockTaskRepo.On("UpdateTask", ctx, mock.MatchedBy(func(task domain.Task) bool {
		return task.Status == domain.TaskCompleted && task.CompletedAt != nil
	})).Return(nil).Once()

	task, err := suite.service.UpdateTaskStatus(ctx, taskID, domain.TaskCompleted, suite.employee)

	suite.Require().NoError(err)
	suite.NotNil(task.CompletedAt)
	suite.mockTaskRepo.AssertExpectations(suite.T())
}

func (suite *TaskServiceTestSuite) TestUpdateTaskStatus_ForeignTaskForbidden() {
	ctx := context.Background()
	taskID := uuid.NewString()
	suite.mockTaskRepo.On("FindTaskByID", ctx, taskID).Return(&domain.Task{
		TaskID:     taskID,
		AssignedTo: uuid.NewString(),
		Status:     domain.TaskPending,
	}, nil).Once()

	_, err := suite.service.UpdateTaskStatus(ctx, taskID, domain.TaskInProgress, suite.employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTaskRepo.AssertNotCalled(suite.T(), "UpdateTask", mock.Anything, mock.Anything)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskStatus_ReopeningClearsCompletedAt() {
	ctx := context.Background()
	taskID := uuid.NewString()
	completedAt := time.Now().Add(-time.Hour)
	suite.mockTaskRepo.On("FindTaskByID", ctx, taskID).Return(&domain.Task{
		TaskID:      taskID,
		AssignedTo:  suite.employee.UserID,
		Status:      domain.TaskCompleted,
		CompletedAt: &completedAt,
	}, nil).Once()
	suite.mockTaskRepo.On("UpdateTask", ctx, mock.MatchedBy(func(task domain.Task) bool {
		return task.Status == domain.TaskInProgress && task.CompletedAt == nil
	})).Return(nil).Once()

	task, err := suite.service.UpdateTaskStatus(ctx, taskID, domain.TaskInProgress, suite.employee)

	suite.Require().NoError(err)
	suite.Nil(task.CompletedAt)
}

func (suite *TaskServiceTestSuite) TestGetTaskStats_EmployeeScopedToOwnTasks() {
	ctx := context.Background()
	suite.mockTaskRepo.On("GetTaskStats", ctx, mock.MatchedBy(func(assignedTo *string) bool {
		return assignedTo != nil && *assignedTo == suite.employee.UserID
	})).Return(&portsrepo.TaskStats{Total: 4, Completed: 3, Pending: 1, Overdue: 1}, nil).Once()

	stats, err := suite.service.GetTaskStats(ctx, suite.employee)

	suite.Require().NoError(err)
	suite.Equal(4, stats.TotalTasks)
	suite.Equal(1, stats.OverdueTasks)
	suite.InDelta(75.0, stats.CompletionRate, 0.001)
	suite.mockTaskRepo.AssertExpectations(suite.T())
}

func (suite *TaskServiceTestSuite) TestGetTaskStats_ManagerSeesWholeBoard() {
	ctx := context.Background()
	suite.mockTaskRepo.On("GetTaskStats", ctx, (*string)(nil)).
		Return(&portsrepo.TaskStats{Total: 10, Completed: 2, Pending: 5, InProgress: 3}, nil).Once()

	stats, err := suite.service.GetTaskStats(ctx, suite.manager)

	suite.Require().NoError(err)
	suite.Equal(10, stats.TotalTasks)
	suite.Equal(3, stats.InProgressTasks)
	suite.InDelta(20.0, stats.CompletionRate, 0.001)
	suite.mockTaskRepo.AssertExpectations(suite.T())
}

func (suite *TaskServiceTestSuite) TestGetTaskStats_NoTasksMeansZeroRate() {
	ctx := context.Background()
	suite.mockTaskRepo.On("GetTaskStats", ctx, mock.Anything).Return(&portsrepo.TaskStats{}, nil).Once()

	stats, err := suite.service.GetTaskStats(ctx, suite.employee)

	suite.Require().NoError(err)
	suite.Zero(stats.TotalTasks)
	suite.Zero(stats.CompletionRate)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_EmployeeForbidden() {
	ctx := context.Background()

	err := suite.service.DeleteTask(ctx, uuid.NewString(), suite.employee)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTaskRepo.AssertNotCalled(suite.T(), "DeleteTask", mock.Anything, mock.Anything)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
