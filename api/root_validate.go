package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Validate only exists for the JWT middleware in front of it. If the
// request gets here the token is good
func (a *API) Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}
