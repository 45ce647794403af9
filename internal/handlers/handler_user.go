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

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService   portssvc.UserSvcFacade
	ratingService portssvc.RatingSvcFacade
}

// registerUserRoutes registers user profile and verification routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, ratingService portssvc.RatingSvcFacade) {
	h := &userHandler{userService: userService, ratingService: ratingService}

	users := rg.Group("/users")
	{
		users.GET("/search", h.searchByEmail)
		users.GET("/:id", h.getUser)
		users.GET("/:id/ratings", h.listRatings)
		users.POST("/verify", h.verifyIdentity)
	}
}

// getUser godoc
// @Summary Get a user profile
// @Description Retrieves a user's public profile including their trust score.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		logger.Error("Failed to get user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// searchByEmail godoc
// @Summary Find a user by email
// @Description Resolves an email address to a user, for invite flows. Case-insensitive.
// @Tags users
// @Produce json
// @Param email query string true "Email address"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/search [get]
func (h *userHandler) searchByEmail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email query parameter is required"})
		return
	}

	user, err := h.userService.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		logger.Error("Failed to search user by email", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to search user"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listRatings godoc
// @Summary List a user's ratings
// @Description Lists all peer ratings addressed to a user, newest first.
// @Tags ratings
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} dto.RatingResponse
// @Security BearerAuth
// @Router /users/{id}/ratings [get]
func (h *userHandler) listRatings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ratings, err := h.ratingService.ListRatingsForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("Failed to list ratings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list ratings"})
		return
	}
	c.JSON(http.StatusOK, dto.ToRatingResponses(ratings))
}

// verifyIdentity godoc
// @Summary Verify my identity
// @Description Marks the caller ID-verified and recomputes their trust score.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/verify [post]
func (h *userHandler) verifyIdentity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.VerifyIdentity(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		logger.Error("Failed to verify identity", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to verify identity"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
