package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/dto"
	"github.com/trustnest/trustnest_backend/internal/middleware"
)

// poolHandler handles HTTP requests related to expense pools.
type poolHandler struct {
	poolService    portssvc.PoolSvcFacade
	balanceService portssvc.BalanceSvcFacade
}

// registerPoolRoutes registers pool lifecycle, membership and balance routes.
func registerPoolRoutes(rg *gin.RouterGroup, poolService portssvc.PoolSvcFacade, balanceService portssvc.BalanceSvcFacade) {
	h := &poolHandler{poolService: poolService, balanceService: balanceService}

	pools := rg.Group("/pools")
	{
		pools.POST("", h.createPool)
		pools.GET("", h.listPools)
		pools.GET("/:id", h.getPool)
		pools.PUT("/:id", h.updatePool)
		pools.DELETE("/:id", h.deletePool)
		pools.POST("/:id/archive", h.archivePool)
		pools.POST("/:id/invites", h.invite)
		pools.POST("/:id/invites/accept", h.acceptInvite)
		pools.POST("/:id/invites/reject", h.rejectInvite)
		pools.DELETE("/:id/members/:userID", h.removeMember)
		pools.GET("/:id/balances", h.getBalances)
		pools.GET("/:id/balances/me", h.getMyBalance)
	}
}

// respondPoolError maps service errors to HTTP responses shared by the pool
// endpoints.
func respondPoolError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Pool not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrPoolCapacity):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Pool operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// createPool godoc
// @Summary Create a pool
// @Description Creates an expense pool with the caller as its sole member.
// @Tags pools
// @Accept json
// @Produce json
// @Param pool body dto.CreatePoolRequest true "Pool details"
// @Success 201 {object} dto.PoolResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools [post]
func (h *poolHandler) createPool(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	pool, err := h.poolService.CreatePool(c.Request.Context(), req, userID)
	if err != nil {
		respondPoolError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPoolResponse(pool))
}

// listPools godoc
// @Summary List my pools
// @Description Lists every pool the caller is a member of.
// @Tags pools
// @Produce json
// @Success 200 {array} dto.PoolResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools [get]
func (h *poolHandler) listPools(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pools, err := h.poolService.ListPoolsForUser(c.Request.Context(), userID)
	if err != nil {
		respondPoolError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPoolResponses(pools))
}

// getPool godoc
// @Summary Get a pool
// @Description Retrieves a pool the caller belongs to.
// @Tags pools
// @Produce json
// @Param id path string true "Pool ID"
// @Success 200 {object} dto.PoolResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools/{id} [get]
func (h *poolHandler) getPool(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pool, err := h.poolService.GetPool(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondPoolError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPoolResponse(pool))
}

// updatePool godoc
// @Summary Update pool metadata
// @Description Updates name, description or category. Members only.
// @Tags pools
// @Accept json
// @Produce json
// @Param id path string true "Pool ID"
// @Param pool body dto.UpdatePoolRequest true "Fields to update"
// @Success 200 {object} dto.PoolResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools/{id} [put]
func (h *poolHandler) updatePool(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	pool, err := h.poolService.UpdatePool(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondPoolError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPoolResponse(pool))
}

// deletePool godoc
// @Summary Delete a pool
// @Description Deletes the pool and every bill in it. Creator only.
// @Tags pools
// @Param id path string true "Pool ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools/{id} [delete]
func (h *poolHandler) deletePool(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.poolService.DeletePool(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondPoolError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// archivePool godoc
// @Summary Archive a pool
// @Description Marks the pool archived, keeping its history. Creator only.
// @Tags pools
// @Param id path string true "Pool ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools/{id}/archive [post]
func (h *poolHandler) archivePool(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.poolService.ArchivePool(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondPoolError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// invite godoc
// @Summary Invite users to a pool
// @Description Adds users to the pool's pending invites, enforcing the occupancy cap.
// @Tags pools
// @Accept json
// @Produce json
// @Param id path string true "Pool ID"
// @Param invite body dto.InviteRequest true "Invitee user IDs"
// @Success 200 {object} dto.PoolResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Occupancy cap exceeded"
// @Security BearerAuth
// @Router /pools/{id}/invites [post]
func (h *poolHandler) invite(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	pool, err := h.poolService.Invite(c.Request.Context(), c.Param("id"), userID, req.InviteeIDs)
	if err != nil {
		respondPoolError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPoolResponse(pool))
}

// acceptInvite godoc
// @Summary Accept a pool invite
// @Description Moves the caller from pending invitees into the member set. Safe to call twice.
// @Tags pools
// @Param id path string true "Pool ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools/{id}/invites/accept [post]
func (h *poolHandler) acceptInvite(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.poolService.AcceptInvite(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondPoolError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// rejectInvite godoc
// @Summary Reject a pool invite
// @Description Drops the caller's pending invite. Safe to call twice.
// @Tags pools
// @Param id path string true "Pool ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools/{id}/invites/reject [post]
func (h *poolHandler) rejectInvite(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.poolService.RejectInvite(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondPoolError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// removeMember godoc
// @Summary Remove a pool member
// @Description The creator may remove anyone; other members may only remove themselves.
// @Tags pools
// @Param id path string true "Pool ID"
// @Param userID path string true "Member user ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Creator cannot be removed"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools/{id}/members/{userID} [delete]
func (h *poolHandler) removeMember(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.poolService.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("userID"), userID); err != nil {
		respondPoolError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getBalances godoc
// @Summary Get pool balances
// @Description Replays the pool's full bill ledger and returns every participant's balance.
// @Tags balances
// @Produce json
// @Param id path string true "Pool ID"
// @Success 200 {object} map[string]dto.BalanceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools/{id}/balances [get]
func (h *poolHandler) getBalances(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	poolID := c.Param("id")

	// Membership check before exposing the pool's financial state
	if _, err := h.poolService.GetPool(c.Request.Context(), poolID, userID); err != nil {
		respondPoolError(c, err)
		return
	}

	balances, err := h.balanceService.CalculateBalances(c.Request.Context(), poolID)
	if err != nil {
		respondPoolError(c, err)
		return
	}

	responses := make(map[string]dto.BalanceResponse, len(balances))
	for id := range balances {
		b := balances[id]
		responses[id] = dto.ToBalanceResponse(&b)
	}
	c.JSON(http.StatusOK, responses)
}

// getMyBalance godoc
// @Summary Get my balance in a pool
// @Description Returns the caller's derived balance within the pool.
// @Tags balances
// @Produce json
// @Param id path string true "Pool ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools/{id}/balances/me [get]
func (h *poolHandler) getMyBalance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	poolID := c.Param("id")

	if _, err := h.poolService.GetPool(c.Request.Context(), poolID, userID); err != nil {
		respondPoolError(c, err)
		return
	}

	balance, err := h.balanceService.GetUserPoolBalance(c.Request.Context(), poolID, userID)
	if err != nil {
		respondPoolError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}
