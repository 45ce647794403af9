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

// ratingHandler handles HTTP requests related to peer ratings.
type ratingHandler struct {
	ratingService portssvc.RatingSvcFacade
}

// registerRatingRoutes registers rating routes.
func registerRatingRoutes(rg *gin.RouterGroup, ratingService portssvc.RatingSvcFacade) {
	h := &ratingHandler{ratingService: ratingService}

	rg.POST("/ratings", h.addRating)
}

// addRating godoc
// @Summary Rate a user
// @Description Records a 1-5 star rating of another user and refreshes their trust score.
// @Tags ratings
// @Accept json
// @Produce json
// @Param rating body dto.CreateRatingRequest true "Rating details"
// @Success 201 {object} dto.RatingResponse
// @Failure 400 {object} ErrorResponse "Self-rating or invalid value"
// @Failure 404 {object} ErrorResponse "Rated user not found"
// @Failure 409 {object} ErrorResponse "Already rated for this bill"
// @Security BearerAuth
// @Router /ratings [post]
func (h *ratingHandler) addRating(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	rating, err := h.ratingService.AddRating(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Rated user not found"})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to add rating", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add rating"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToRatingResponse(rating))
}
