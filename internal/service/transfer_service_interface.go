package service

import "github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"

// TransferServiceInterface opens the data-transfer process bound to the
// negotiated contract.
type TransferServiceInterface interface {
	OpenTransfer(negotiation *common.NegotiationProcess) (*common.TransferProcess, error)
}
