package controller

import (
	"net/http"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/simulator"

	"github.com/gin-gonic/gin"
)

// A DeviceController exposes the simulated device's self-description.
type DeviceController struct {
	GroupName string
	Simulator *simulator.Simulator
}

// GetGroupName returns the group name.
func (c *DeviceController) GetGroupName() string {
	return c.GroupName
}

// GetEndpointMap implements the interface `Controller`.
func (c *DeviceController) GetEndpointMap() EndpointMap {
	return EndpointMap{
		urlMethodPair{"/device", "GET"}: []gin.HandlerFunc{c.handleDescribeDevice},
	}
}

func (dc *DeviceController) handleDescribeDevice(c *gin.Context) {
	c.JSON(http.StatusOK, dc.Simulator.Describe())
}
