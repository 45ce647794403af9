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

// billHandler handles HTTP requests related to bills.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

// registerBillRoutes registers bill ledger routes. Creation and listing are
// nested under the owning pool; single-bill operations address the bill directly.
func registerBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	h := &billHandler{billService: billService}

	rg.POST("/pools/:id/bills", h.addBill)
	rg.GET("/pools/:id/bills", h.listBills)

	bills := rg.Group("/bills")
	{
		bills.GET("/:id", h.getBill)
		bills.DELETE("/:id", h.deleteBill)
		bills.POST("/:id/pay", h.paySplit)
	}
}

func respondBillError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Bill operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// addBill godoc
// @Summary Add a bill
// @Description Creates a bill in the pool with a split snapshot over the current members.
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Pool ID"
// @Param bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} ErrorResponse "Validation error, e.g. custom splits not matching the total"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools/{id}/bills [post]
func (h *billHandler) addBill(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	bill, err := h.billService.AddBill(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondBillError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

// listBills godoc
// @Summary List a pool's bills
// @Description Lists all bills of a pool, most recent date first.
// @Tags bills
// @Produce json
// @Param id path string true "Pool ID"
// @Success 200 {array} dto.BillResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /pools/{id}/bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondBillError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponses(bills))
}

// getBill godoc
// @Summary Get a bill
// @Description Retrieves one bill including its split snapshot.
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /bills/{id} [get]
func (h *billHandler) getBill(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondBillError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// deleteBill godoc
// @Summary Delete a bill
// @Description Removes the bill from the ledger and from all future balance computations.
// @Tags bills
// @Param id path string true "Bill ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /bills/{id} [delete]
func (h *billHandler) deleteBill(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondBillError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// paySplit godoc
// @Summary Mark my split paid
// @Description Flips the caller's split on the bill to paid. Idempotent.
// @Tags bills
// @Param id path string true "Bill ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Bill not found or caller has no split on it"
// @Security BearerAuth
// @Router /bills/{id}/pay [post]
func (h *billHandler) paySplit(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.billService.MarkSplitPaid(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondBillError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
