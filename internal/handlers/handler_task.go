package handlers

import (
	"log/slog"
	"net/http"

	"github.com/clienthub/crm_backend/internal/core/domain"
	services "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taskHandler handles HTTP requests related to tasks.
type taskHandler struct {
	taskService services.TaskSvcFacade
}

// newTaskHandler creates a new taskHandler.
func newTaskHandler(ts services.TaskSvcFacade) *taskHandler {
	return &taskHandler{
		taskService: ts,
	}
}

// registerTaskRoutes registers routes related to tasks.
func registerTaskRoutes(rg *gin.RouterGroup, ts services.TaskSvcFacade) {
	h := newTaskHandler(ts)

	tasks := rg.Group("/tasks")
	{
		tasks.GET("", h.listTasks)
		tasks.GET("/my", h.listMyTasks)
		tasks.GET("/stats", h.getTaskStats)
		tasks.GET("/:id", h.getTask)
		tasks.PATCH("/:id/status", h.updateTaskStatus)
		tasks.POST("", middleware.RequireManager(), h.createTask)
		tasks.PUT("/:id", middleware.RequireManager(), h.updateTask)
		tasks.DELETE("/:id", middleware.RequireManager(), h.deleteTask)
	}
}

// createTask godoc
// @Summary Create a task
// @Description Assigns a new task to an employee (managers only)
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body dto.CreateTaskRequest true "Task details"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} map[string]any "Invalid input format or validation error"
// @Failure 403 {object} map[string]any "Manager role required"
// @Failure 404 {object} map[string]any "Assignee or client not found"
// @Security BearerAuth
// @Router /tasks [post]
func (h *taskHandler) createTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTask", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Task created", slog.String("task_id", task.TaskID), slog.String("assigned_to", task.AssignedTo))
	respondData(c, http.StatusCreated, dto.ToTaskResponse(task))
}

// listTasks godoc
// @Summary List tasks
// @Description Lists the tasks visible to the caller, employees only see their own
// @Tags tasks
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Success 200 {object} map[string]any "Page of tasks with pagination"
// @Failure 401 {object} map[string]any "Unauthorized"
// @Security BearerAuth
// @Router /tasks [get]
func (h *taskHandler) listTasks(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var params dto.ListTasksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}
	params.Normalize(20)

	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), params, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"tasks":      dto.ToTaskResponses(tasks),
		"pagination": dto.NewPagination(params.PageParams, total),
	})
}

// listMyTasks godoc
// @Summary List the caller's tasks
// @Description Lists the tasks assigned to the caller, regardless of role
// @Tags tasks
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Success 200 {object} map[string]any "Page of tasks with pagination"
// @Failure 401 {object} map[string]any "Unauthorized"
// @Security BearerAuth
// @Router /tasks/my [get]
func (h *taskHandler) listMyTasks(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var params dto.ListTasksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}
	params.Normalize(20)

	tasks, total, err := h.taskService.ListMyTasks(c.Request.Context(), params, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"tasks":      dto.ToTaskResponses(tasks),
		"pagination": dto.NewPagination(params.PageParams, total),
	})
}

// getTaskStats godoc
// @Summary Get task statistics
// @Description Aggregates tasks by lifecycle state; employees only see their own assignments
// @Tags tasks
// @Produce json
// @Success 200 {object} dto.TaskStatsResponse
// @Failure 401 {object} map[string]any "Unauthorized"
// @Security BearerAuth
// @Router /tasks/stats [get]
func (h *taskHandler) getTaskStats(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	stats, err := h.taskService.GetTaskStats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, stats)
}

// getTask godoc
// @Summary Get a task by ID
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} map[string]any "Task assigned to someone else"
// @Failure 404 {object} map[string]any "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *taskHandler) getTask(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToTaskResponse(task))
}

// updateTask godoc
// @Summary Update a task
// @Description Applies a partial update to a task (managers only)
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param task body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} map[string]any "Invalid input format or validation error"
// @Failure 403 {object} map[string]any "Manager role required"
// @Failure 404 {object} map[string]any "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *taskHandler) updateTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Task updated", slog.String("task_id", task.TaskID))
	respondData(c, http.StatusOK, dto.ToTaskResponse(task))
}

// updateTaskStatus godoc
// @Summary Update a task's status
// @Description Moves the task along its lifecycle; the assignee may update their own task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param status body dto.UpdateTaskStatusRequest true "New status"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} map[string]any "Unknown status"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 404 {object} map[string]any "Task not found"
// @Security BearerAuth
// @Router /tasks/{id}/status [patch]
func (h *taskHandler) updateTaskStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request.Context(), c.Param("id"), domain.TaskStatus(req.Status), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Task status updated", slog.String("task_id", task.TaskID), slog.String("status", string(task.Status)))
	respondData(c, http.StatusOK, dto.ToTaskResponse(task))
}

// deleteTask godoc
// @Summary Delete a task
// @Description Removes a task (managers only)
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]any "Deleted"
// @Failure 403 {object} map[string]any "Manager role required"
// @Failure 404 {object} map[string]any "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *taskHandler) deleteTask(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Task deleted")
}
