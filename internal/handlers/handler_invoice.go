package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/clienthub/crm_backend/internal/core/domain"
	services "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService services.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is services.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
	}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, is services.InvoiceSvcFacade) {
	h := newInvoiceHandler(is)

	rg.POST("/clients/:id/invoices/generate", h.generateInvoice)
	rg.GET("/clients/:id/invoices", h.listClientInvoices)
	rg.POST("/clients/:id/expenses/reset", h.resetInvoicedExpenses)

	invoices := rg.Group("/invoices")
	{
		invoices.GET("/:id", h.getInvoice)
		invoices.GET("/:id/download", h.downloadInvoicePDF)
		invoices.PATCH("/:id/status", h.updateInvoiceStatus)
		invoices.DELETE("/:id", h.deleteInvoice)
	}
}

// generateInvoice godoc
// @Summary Generate an invoice
// @Description Creates a draft invoice over the client's uninvoiced expenses, or an explicit selection of them
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param invoice body dto.GenerateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]any "No billable expenses, invalid selection, or bad due date"
// @Failure 403 {object} map[string]any "Client assigned to someone else"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/invoices/generate [post]
func (h *invoiceHandler) generateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for generateInvoice", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.GenerateInvoice(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		logger.Warn("Invoice generation failed", slog.String("client_id", c.Param("id")), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Invoice generated", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	respondData(c, http.StatusCreated, invoice)
}

// listClientInvoices godoc
// @Summary List a client's invoices
// @Tags invoices
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 403 {object} map[string]any "Client assigned to someone else"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/invoices [get]
func (h *invoiceHandler) listClientInvoices(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListClientInvoices(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, invoices)
}

// getInvoice godoc
// @Summary Get an invoice by ID
// @Description Retrieves the invoice with its client and billed expenses resolved
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 404 {object} map[string]any "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, invoice)
}

// downloadInvoicePDF godoc
// @Summary Download an invoice as PDF
// @Description Renders the invoice document and returns it as application/pdf
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} file "PDF document"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 404 {object} map[string]any "Invoice not found"
// @Failure 500 {object} map[string]any "Rendering failed"
// @Security BearerAuth
// @Router /invoices/{id}/download [get]
func (h *invoiceHandler) downloadInvoicePDF(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	invoiceID := c.Param("id")
	pdf, err := h.invoiceService.RenderInvoicePDF(c.Request.Context(), invoiceID, actor)
	if err != nil {
		logger.Error("Failed to render invoice PDF", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+invoiceID+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// updateInvoiceStatus godoc
// @Summary Update an invoice's status
// @Description Moves the invoice forward along draft, sent, paid
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param status body dto.UpdateInvoiceStatusRequest true "New status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]any "Backward or unknown transition"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 404 {object} map[string]any "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/status [patch]
func (h *invoiceHandler) updateInvoiceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), c.Param("id"), domain.InvoiceStatus(req.Status), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Invoice status updated", slog.String("invoice_id", invoice.InvoiceID), slog.String("status", invoice.Status))
	respondData(c, http.StatusOK, invoice)
}

// deleteInvoice godoc
// @Summary Delete a draft invoice
// @Description Removes a draft invoice and releases its expenses back to uninvoiced
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} map[string]any "Deleted"
// @Failure 400 {object} map[string]any "Invoice is no longer a draft"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 404 {object} map[string]any "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Invoice deleted", slog.String("invoice_id", c.Param("id")))
	respondMessage(c, http.StatusOK, "Invoice deleted")
}

// resetInvoicedExpenses godoc
// @Summary Reset a client's invoiced expenses
// @Description Releases every invoiced expense of the client and deletes its invoices
// @Tags invoices
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ResetInvoicedExpensesResponse
// @Failure 403 {object} map[string]any "Client assigned to someone else"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/expenses/reset [post]
func (h *invoiceHandler) resetInvoicedExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	result, err := h.invoiceService.ResetInvoicedExpenses(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Invoiced expenses reset",
		slog.String("client_id", c.Param("id")),
		slog.Int("reset_count", result.ResetCount),
		slog.Int("deleted_invoices", result.DeletedInvoices))
	respondData(c, http.StatusOK, result)
}
