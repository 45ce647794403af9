package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/dto"
	"github.com/trustnest/trustnest_backend/internal/middleware"
)

// listingHandler handles HTTP requests related to room listings.
type listingHandler struct {
	listingService portssvc.ListingSvcFacade
}

// registerListingRoutes registers room listing routes.
func registerListingRoutes(rg *gin.RouterGroup, listingService portssvc.ListingSvcFacade) {
	h := &listingHandler{listingService: listingService}

	listings := rg.Group("/listings")
	{
		listings.POST("", h.createListing)
		listings.GET("", h.listListings)
		listings.GET("/:id", h.getListing)
		listings.PUT("/:id", h.updateListing)
		listings.DELETE("/:id", h.removeListing)
	}
}

func respondListingError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Listing not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Listing operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// createListing godoc
// @Summary Create a listing
// @Description Publishes a room listing owned by the caller.
// @Tags listings
// @Accept json
// @Produce json
// @Param listing body dto.CreateListingRequest true "Listing details"
// @Success 201 {object} dto.ListingResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /listings [post]
func (h *listingHandler) createListing(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), req, userID)
	if err != nil {
		respondListingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToListingResponse(listing))
}

// listListings godoc
// @Summary Browse listings
// @Description Lists active room listings, newest first, optionally filtered by city.
// @Tags listings
// @Produce json
// @Param city query string false "City filter (case-insensitive)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.ListingResponse
// @Security BearerAuth
// @Router /listings [get]
func (h *listingHandler) listListings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	listings, err := h.listingService.ListListings(c.Request.Context(), c.Query("city"), limit, offset)
	if err != nil {
		respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListingResponses(listings))
}

// getListing godoc
// @Summary Get a listing
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} dto.ListingResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /listings/{id} [get]
func (h *listingHandler) getListing(c *gin.Context) {
	listing, err := h.listingService.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListingResponse(listing))
}

// updateListing godoc
// @Summary Update a listing
// @Description Updates listing fields. Owner only.
// @Tags listings
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param listing body dto.UpdateListingRequest true "Fields to update"
// @Success 200 {object} dto.ListingResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /listings/{id} [put]
func (h *listingHandler) updateListing(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	listing, err := h.listingService.UpdateListing(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListingResponse(listing))
}

// removeListing godoc
// @Summary Remove a listing
// @Description Marks the listing removed. Owner only.
// @Tags listings
// @Param id path string true "Listing ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /listings/{id} [delete]
func (h *listingHandler) removeListing(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.listingService.RemoveListing(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondListingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
