package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/appinit"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/gateway"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/simulator"

	"github.com/gin-gonic/gin"
)

// A TelemetryController accepts measurement bodies from the device side and
// echoes them back stamped with an ingestion timestamp. When the caller names
// a transfer process and a transfer-message endpoint is configured, the full
// device envelope is forwarded to the provider as well.
type TelemetryController struct {
	GroupName string
	Simulator *simulator.Simulator
	Gateway   *gateway.Gateway
	Config    *appinit.ServerInfo
}

// GetGroupName returns the group name.
func (c *TelemetryController) GetGroupName() string {
	return c.GroupName
}

// GetEndpointMap implements the interface `Controller`.
func (c *TelemetryController) GetEndpointMap() EndpointMap {
	return EndpointMap{
		urlMethodPair{"/telemetry", "POST"}: []gin.HandlerFunc{c.handlePushTelemetry},
	}
}

func (tc *TelemetryController) handlePushTelemetry(c *gin.Context) {
	// The measurement body is arbitrary JSON; an absent or unparseable body
	// degrades to an empty measurement, like the device it simulates.
	measurement := map[string]interface{}{}
	_ = c.ShouldBindJSON(&measurement)

	// Every accepted measurement becomes the device's last payload, whether
	// or not it is forwarded anywhere.
	envelope, err := tc.Simulator.Transmit(measurement)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"payload":      measurement,
		"received_at":  time.Now().UTC().Format(time.RFC3339),
		"ingestion_id": tc.Simulator.IngestionID(),
	}

	transferID := c.Query("transferId")
	if transferID == "" {
		if v, ok := measurement["transferId"].(string); ok {
			transferID = v
		}
	}

	if transferID != "" && tc.Config.TransferMessagePath != "" {
		forwardBody := map[string]interface{}{
			"transferId": transferID,
			"envelope":   envelope,
		}
		resp, err := tc.Gateway.Call(http.MethodPost, tc.Config.Provider.BaseURL+tc.Config.TransferMessagePath, forwardBody)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if !resp.OK() {
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
				"error": fmt.Sprintf("transfer-message forward answered status %v: %v", resp.StatusCode, resp.RawBody),
			})
			return
		}

		response["forwarded"] = true
	}

	c.JSON(http.StatusOK, response)
}
