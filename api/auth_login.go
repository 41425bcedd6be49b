package api

import (
	"errors"
	"net/http"
	"time"

	"prepmate/interview-api/service"
	"prepmate/interview-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthLogin runs the first password login step. On success the user is not
// authenticated yet, a passcode is on its way to their inbox and the
// session only starts once AuthVerifyOtp consumes it.
func (a *API) AuthLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
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

	if data.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	res, err := a.Auth.BeginLogin(data.Email, data.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid credentials",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to begin login", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, deliveryPending(res, requestID))
}

// deliveryPending is the shared response for both begin steps. The code
// itself only ever appears here through the development fallback.
func deliveryPending(res *service.IssueResult, requestID string) gin.H {
	body := gin.H{
		"status":    "delivery-pending",
		"requestID": requestID,
	}

	if res.DevCode != "" {
		body["warning"] = "Mail delivery unavailable"
		body["mockOtp"] = res.DevCode
	}

	return body
}

func makeToken(c *jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}

// startSession issues the session cookie for a fully authenticated user.
func startSession(c *gin.Context, userID string) error {
	const sessionTTL = 24 * time.Hour

	token, err := makeToken(&jwt.MapClaims{
		"user_id": userID,
		"type":    "auth",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(sessionTTL).Unix(),
	})
	if err != nil {
		return err
	}

	secs := int(sessionTTL.Seconds())
	ssl := viper.GetBool("host.ssl.enabled")

	c.SetCookie("auth_token", token, secs, "/", "", ssl, true)
	c.SetCookie("logged_in", "1", secs, "/", "", ssl, false)

	return nil
}
