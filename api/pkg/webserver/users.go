package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/store"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/utils"
)

// getCurrentUser returns the acting user, creating the row on first use
func (s *Server) getCurrentUser(c *gin.Context) {
	userID := s.currentUserID(c)

	user, err := s.backend.Users().EnsureUser(c.Request.Context(), userID, userID+"@users.local", "")
	if err != nil {
		s.respondError(c, err, "User not found", "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(user, "User retrieved successfully"))
}

// updateCurrentUser updates the profile of the acting user
func (s *Server) updateCurrentUser(c *gin.Context) {
	var req store.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data")
		return
	}

	// Sanitize input
	if req.FullName != nil {
		name := s.validator.SanitizeInput(*req.FullName)
		req.FullName = &name
	}
	if req.AvatarURL != nil && *req.AvatarURL != "" && !s.validator.ValidateURL(*req.AvatarURL) {
		c.JSON(http.StatusBadRequest, utils.NewValidationErrorResponse("Validation failed", map[string]string{
			"avatar_url": "Avatar URL must be an http(s) URL",
		}))
		return
	}

	userID := s.currentUserID(c)
	if _, err := s.backend.Users().EnsureUser(c.Request.Context(), userID, userID+"@users.local", ""); err != nil {
		s.respondError(c, err, "User not found", "Failed to update user")
		return
	}

	user, err := s.backend.Users().UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		s.respondError(c, err, "User not found", "Failed to update user")
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":   user.ID,
		"full_name": user.FullName,
	}).Info("User updated")

	c.JSON(http.StatusOK, utils.NewSuccessResponse(user, "User updated successfully"))
}
