package api

import (
	"errors"
	"net/http"

	"prepmate/interview-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type googleBody struct {
	Credential string `json:"credential"`
}

// AuthGoogle verifies the credential posted by the Google sign-in widget
// and starts a session for its account. No passcode step, the provider
// already proved control of the email.
func (a *API) AuthGoogle(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data googleBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	identity, userID, err := a.Auth.LoginWithGoogle(c.Request.Context(), data.Credential)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAssertion) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Google sign-in could not be verified",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify Google credential", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := startSession(c, userID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate JWT auth token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userID":    userID,
		"email":     identity.Email,
		"name":      identity.Name,
		"requestID": requestID,
	})
}
