package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Validate lets the frontend check whether its session cookie is still
// good without fetching the whole profile.
func (a *API) Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userID": c.MustGet("userID").(string),
	})
}
