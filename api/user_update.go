package api

import (
	"net/http"

	"prepmate/interview-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserUpdate patches the mutable profile attributes of the logged in user.
// Email, auth method and password hash can't be changed here.
func (a *API) UserUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var patch service.ProfilePatch
	if err := c.ShouldBind(&patch); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.Auth.Store.PatchProfile(userID, &patch); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Profile updated successfully",
		"requestID": requestID,
	})
}
