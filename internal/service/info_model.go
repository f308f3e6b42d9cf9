package service

import (
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/appinit"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/gateway"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/protocol"
)

// Info carries what every phase service needs: the gateway all remote calls
// go through, the protocol dialect table and the loaded server config.
type Info struct {
	Gateway *gateway.Gateway
	Table   *protocol.Table
	Config  *appinit.ServerInfo
}
