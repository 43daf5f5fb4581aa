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

// clientHandler handles HTTP requests related to clients and leads.
type clientHandler struct {
	clientService services.ClientSvcFacade
}

// newClientHandler creates a new clientHandler.
func newClientHandler(cs services.ClientSvcFacade) *clientHandler {
	return &clientHandler{
		clientService: cs,
	}
}

// registerClientRoutes registers routes related to clients.
func registerClientRoutes(rg *gin.RouterGroup, cs services.ClientSvcFacade) {
	h := newClientHandler(cs)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
		clients.PATCH("/:id/status", h.updateClientStatus)
		clients.POST("/:id/request-feedback", h.requestFeedback)
		clients.PATCH("/:id/assign", middleware.RequireManager(), h.assignClient)
		clients.DELETE("/:id", middleware.RequireManager(), h.deleteClient)
	}
}

// createClient godoc
// @Summary Create a client
// @Description Creates a new client/lead in the pipeline
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} map[string]any "Invalid input format or validation error"
// @Failure 401 {object} map[string]any "Unauthorized"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createClient", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req, actor)
	if err != nil {
		logger.Warn("Failed to create client", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID))
	respondData(c, http.StatusCreated, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Description Lists the clients visible to the caller, optionally filtered by status and assignee
// @Tags clients
// @Produce json
// @Param status query string false "Pipeline status filter"
// @Param assignedTo query string false "Assignee filter (managers only)"
// @Success 200 {array} dto.ClientResponse
// @Failure 401 {object} map[string]any "Unauthorized"
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), params, actor)
	if err != nil {
		logger.Error("Failed to list clients", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToClientResponses(clients))
}

// getClient godoc
// @Summary Get a client by ID
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 401 {object} map[string]any "Unauthorized"
// @Failure 403 {object} map[string]any "Client assigned to someone else"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToClientResponse(client))
}

// updateClient godoc
// @Summary Update a client
// @Description Applies a partial update to a client visible to the caller
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} map[string]any "Invalid input format or validation error"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateClient", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Client updated", slog.String("client_id", client.ClientID))
	respondData(c, http.StatusOK, dto.ToClientResponse(client))
}

// updateClientStatus godoc
// @Summary Update a client's pipeline status
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param status body dto.UpdateClientStatusRequest true "New status"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} map[string]any "Unknown status"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/status [patch]
func (h *clientHandler) updateClientStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.UpdateClientStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	client, err := h.clientService.UpdateClientStatus(c.Request.Context(), c.Param("id"), domain.ClientStatus(req.Status), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Client status updated", slog.String("client_id", client.ClientID), slog.String("status", string(client.Status)))
	respondData(c, http.StatusOK, dto.ToClientResponse(client))
}

// requestFeedback godoc
// @Summary Request feedback from a won client
// @Description Flags a won client as awaiting feedback
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} map[string]any "Client has not been won"
// @Failure 403 {object} map[string]any "Forbidden"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id}/request-feedback [post]
func (h *clientHandler) requestFeedback(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	client, err := h.clientService.RequestFeedback(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToClientResponse(client))
}

// assignClient godoc
// @Summary Reassign a client
// @Description Reassigns the client to another employee (managers only)
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param assignment body dto.AssignClientRequest true "New assignee"
// @Success 200 {object} dto.ClientResponse
// @Failure 403 {object} map[string]any "Manager role required"
// @Failure 404 {object} map[string]any "Client or assignee not found"
// @Security BearerAuth
// @Router /clients/{id}/assign [patch]
func (h *clientHandler) assignClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.AssignClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	client, err := h.clientService.AssignClient(c.Request.Context(), c.Param("id"), req.AssignedTo, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Client reassigned", slog.String("client_id", client.ClientID), slog.String("assigned_to", client.AssignedTo))
	respondData(c, http.StatusOK, dto.ToClientResponse(client))
}

// deleteClient godoc
// @Summary Delete a client
// @Description Removes a client and its history (managers only)
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} map[string]any "Deleted"
// @Failure 403 {object} map[string]any "Manager role required"
// @Failure 404 {object} map[string]any "Client not found"
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Client deleted", slog.String("client_id", c.Param("id")))
	respondMessage(c, http.StatusOK, "Client deleted")
}
