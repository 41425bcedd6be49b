package api

import (
	"errors"
	"net/http"

	"prepmate/interview-api/service"
	"prepmate/interview-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type verifyOtpBody struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

// AuthVerifyOtp consumes the pending passcode for the email and starts a
// session. A wrong code can be retried while the passcode is valid, an
// expired or already consumed one requires starting over.
func (a *API) AuthVerifyOtp(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data verifyOtpBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	userID, err := a.Auth.CompleteOtp(data.Email, data.Otp)
	if err != nil {
		if errors.Is(err, service.ErrOtpExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Code expired, please request a new one",
				"requestID": requestID,
			})
			return
		}

		if errors.Is(err, service.ErrInvalidOtp) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid code",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify passcode", zap.Error(err), zap.String("requestID", requestID))
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
		"requestID": requestID,
	})
}
