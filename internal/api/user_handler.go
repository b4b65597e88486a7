package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketcoach/backend/internal/domain"
	"pocketcoach/backend/internal/platform/logger"
	"pocketcoach/backend/internal/service"
	"pocketcoach/backend/internal/validation"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
	log         *logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// Root godoc
// @Summary Liveness message
// @Produce json
// @Success 200 {object} gin.H
// @Router / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": service.RootMessage})
}

// CreateUser godoc
// @Summary Submit a user profile
// @Description Validates the profile and returns it unchanged.
// @Tags User
// @Accept json
// @Produce json
// @Param profile body domain.UserProfile true "User profile"
// @Success 200 {object} domain.UserProfile
// @Failure 422 {object} validation.Error "Validation error"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /user [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	profile, verr := validation.BindJSON[domain.UserProfile](c)
	if verr != nil {
		verr.Abort(c)
		return
	}

	saved, err := h.userService.CreateProfile(c.Request.Context(), profile)
	if err != nil {
		h.log.Error("Saving profile failed", "user_id", profile.UserID, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to save profile.")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GetUser godoc
// @Summary Get a user profile
// @Tags User
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} gin.H "Profile not found"
// @Router /user/{user_id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("user_id")

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("Loading profile failed", "user_id", userID, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to load profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}
