package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// A PingPongController implements the interface `Controller`. It carries the
// liveness endpoints.
type PingPongController struct {
	GroupName string
}

// GetGroupName returns the group name.
func (ppc *PingPongController) GetGroupName() string {
	return ppc.GroupName
}

// GetEndpointMap implements the interface `Controller`.
func (ppc *PingPongController) GetEndpointMap() EndpointMap {
	pingHandler := func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	}

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}

	return EndpointMap{
		urlMethodPair{"/ping", "GET"}: []gin.HandlerFunc{
			pingHandler,
		},
		urlMethodPair{"/ping", "POST"}: []gin.HandlerFunc{
			pingHandler,
		},
		urlMethodPair{"/health", "GET"}: []gin.HandlerFunc{
			healthHandler,
		},
	}
}
