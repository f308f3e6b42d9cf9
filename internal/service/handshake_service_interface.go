package service

import "github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"

// HandshakeServiceInterface runs the full bootstrap-and-exchange sequence and
// aggregates the result.
type HandshakeServiceInterface interface {
	Run() (*common.RunResult, error)
}
