package controller

import (
	"net/http"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/service"
	"github.com/rainbow-dataspace/handshake-orchestrator/pkg/errorcode"

	"github.com/gin-gonic/gin"
)

// A HandshakeController exposes the orchestration entry point. It implements
// the interface `Controller`.
type HandshakeController struct {
	GroupName    string
	HandshakeSvc service.HandshakeServiceInterface
}

// GetGroupName returns the group name.
func (c *HandshakeController) GetGroupName() string {
	return c.GroupName
}

// GetEndpointMap implements the interface `Controller`.
func (c *HandshakeController) GetEndpointMap() EndpointMap {
	return EndpointMap{
		urlMethodPair{"/init", "POST"}: []gin.HandlerFunc{c.handleInit},
	}
}

// handleInit runs the full Onboarding→Transfer sequence. All phase errors are
// reported uniformly as one run-level failure with the originating message
// preserved; the `kind` field is the only classification offered, so a caller
// can tell an unreachable participant from a protocol/shape failure.
func (hc *HandshakeController) handleInit(c *gin.Context) {
	result, err := hc.HandshakeSvc.Run()
	if err != nil {
		status := http.StatusInternalServerError
		kind := errorcode.ClassifyKind(err)
		if kind == errorcode.KindTransport {
			status = http.StatusBadGateway
		}

		c.AbortWithStatusJSON(status, gin.H{
			"error": err.Error(),
			"kind":  string(kind),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
