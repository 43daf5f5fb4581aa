package handlers

import (
	"log/slog"
	"net/http"

	services "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests related to billable expenses.
type expenseHandler struct {
	expenseService services.ExpenseSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es services.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService: es,
	}
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, es services.ExpenseSvcFacade) {
	h := newExpenseHandler(es)

	rg.POST("/clients/:id/expenses", h.addExpense)
	rg.GET("/clients/:id/expenses", h.listClientExpenses)

	expenses := rg.Group("/expenses")
	{
		expenses.GET("", middleware.RequireManager(), h.listAllExpenses)
		expenses.GET("/stats", h.getExpenseStats)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
	}
}

// addExpense godoc
// @Summary Add an expense
// @Description Records a billable expense against a client
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]any "Invalid input format or validation error"
// @Failure 403 {object} map[string]any "Client assigned to someone else"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/expenses [post]
func (h *expenseHandler) addExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addExpense", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	expense, err := h.expenseService.AddExpense(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Expense added", slog.String("expense_id", expense.ExpenseID), slog.String("client_id", expense.ClientID))
	respondData(c, http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listClientExpenses godoc
// @Summary List a client's expenses
// @Tags expenses
// @Produce json
// @Param id path string true "Client ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param category query string false "Category filter"
// @Param startDate query string false "Earliest expense date (YYYY-MM-DD)"
// @Param endDate query string false "Latest expense date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 403 {object} map[string]any "Client assigned to someone else"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/expenses [get]
func (h *expenseHandler) listClientExpenses(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}
	params.Normalize(20)

	expenses, total, totalAmount, err := h.expenseService.ListClientExpenses(c.Request.Context(), c.Param("id"), params, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ListExpensesResponse{
		Expenses:    dto.ToExpenseResponses(expenses),
		Pagination:  dto.NewPagination(params.PageParams, total),
		TotalAmount: totalAmount,
	})
}

// listAllExpenses godoc
// @Summary List expenses across all clients
// @Description Lists every client's expenses (managers only)
// @Tags expenses
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param category query string false "Category filter"
// @Param client query string false "Client filter"
// @Param startDate query string false "Earliest expense date (YYYY-MM-DD)"
// @Param endDate query string false "Latest expense date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 403 {object} map[string]any "Manager role required"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listAllExpenses(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}
	params.Normalize(20)

	expenses, total, totalAmount, err := h.expenseService.ListAllExpenses(c.Request.Context(), params, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ListExpensesResponse{
		Expenses:    dto.ToExpenseResponses(expenses),
		Pagination:  dto.NewPagination(params.PageParams, total),
		TotalAmount: totalAmount,
	})
}

// getExpenseStats godoc
// @Summary Get expense statistics
// @Description Aggregates the expenses visible to the caller by category
// @Tags expenses
// @Produce json
// @Success 200 {object} dto.ExpenseStatsResponse
// @Failure 401 {object} map[string]any "Unauthorized"
// @Security BearerAuth
// @Router /expenses/stats [get]
func (h *expenseHandler) getExpenseStats(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	stats, err := h.expenseService.GetExpenseStats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, stats)
}

// updateExpense godoc
// @Summary Update an expense
// @Description Applies a partial update to an uninvoiced expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]any "Validation error or expense already invoiced"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 404 {object} map[string]any "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Expense updated", slog.String("expense_id", expense.ExpenseID))
	respondData(c, http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Removes an uninvoiced expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} map[string]any "Deleted"
// @Failure 400 {object} map[string]any "Expense already invoiced"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 404 {object} map[string]any "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Expense deleted")
}
