package service

import (
	"net/http"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/utils/jsonutils"
	"github.com/rainbow-dataspace/handshake-orchestrator/pkg/errorcode"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// TransferService implements `TransferServiceInterface`.
type TransferService struct {
	ServiceInfo *Info
}

// OpenTransfer opens a transfer process referencing the asset id and either
// the live negotiation id or, for generations that agree contracts out of
// band, the statically known contract id. A response without a transfer id is
// fatal: the downstream telemetry sender cannot address messages without one.
func (s *TransferService) OpenTransfer(negotiation *common.NegotiationProcess) (*common.TransferProcess, error) {
	table := s.ServiceInfo.Table
	cfg := s.ServiceInfo.Config

	contractRef := negotiation.ID
	if table.TransferStaticContract {
		contractRef = cfg.Dataspace.ContractID
	}

	body := map[string]interface{}{
		"assetId":    cfg.Dataspace.AssetID,
		"contractId": contractRef,
	}

	resp, err := s.ServiceInfo.Gateway.Call(http.MethodPost, cfg.Consumer.BaseURL+table.TransferPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open the transfer process")
	}
	if !resp.OK() {
		return nil, &errorcode.TransferError{Reason: "the connector rejected the transfer: " + resp.RawBody}
	}

	transferID, err := jsonutils.ExtractID(resp.Value, table.TransferKeys)
	if err != nil {
		return nil, &errorcode.TransferError{Reason: "the transfer response carries no process id", Err: err}
	}

	log.WithFields(log.Fields{
		"transferId": transferID,
		"contractId": contractRef,
	}).Infoln("Transfer process opened")

	return &common.TransferProcess{ID: transferID, AssetID: cfg.Dataspace.AssetID, ContractID: contractRef}, nil
}
