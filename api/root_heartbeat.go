package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat lets deploy tooling check that the server is alive.
func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}
