package service

import (
	"net/http"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/protocol"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/utils/jsonutils"
	"github.com/rainbow-dataspace/handshake-orchestrator/pkg/errorcode"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// NegotiationService implements `NegotiationServiceInterface`.
type NegotiationService struct {
	ServiceInfo *Info
}

// offerDescriptor builds the generation-appropriate encoding of what is being
// negotiated over: an offer id plus its permission set, or a bare asset-id
// reference.
func (s *NegotiationService) offerDescriptor() (common.OfferDescriptor, map[string]interface{}) {
	cfg := s.ServiceInfo.Config.Dataspace

	if s.ServiceInfo.Table.OfferForm == protocol.AssetReference {
		return common.OfferDescriptor{ID: cfg.AssetID},
			map[string]interface{}{"assetId": cfg.AssetID}
	}

	return common.OfferDescriptor{ID: cfg.OfferID, Permissions: cfg.Permissions},
		map[string]interface{}{"id": cfg.OfferID, "permissions": cfg.Permissions}
}

// OpenNegotiation opens the negotiation through the consumer connector. The
// response must carry a process identifier under one of the generation's
// candidate keys; its absence is fatal and the extracted id is the only
// negotiation state retained for the transfer phase.
func (s *NegotiationService) OpenNegotiation(provider *common.ParticipantIdentity) (*common.NegotiationProcess, error) {
	table := s.ServiceInfo.Table
	cfg := s.ServiceInfo.Config

	offer, offerBody := s.offerDescriptor()
	body := map[string]interface{}{
		table.ProviderField: provider.DID,
		"offer":             offerBody,
	}

	resp, err := s.ServiceInfo.Gateway.Call(http.MethodPost, cfg.Consumer.BaseURL+table.NegotiationPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open the contract negotiation")
	}
	if !resp.OK() {
		return nil, &errorcode.NegotiationError{Reason: "the connector rejected the negotiation: " + resp.RawBody}
	}

	processID, err := jsonutils.ExtractID(resp.Value, table.NegotiationKeys)
	if err != nil {
		return nil, &errorcode.NegotiationError{Reason: "the negotiation response carries no process id", Err: err}
	}

	log.WithFields(log.Fields{
		"processId": processID,
		"provider":  provider.DID,
	}).Infoln("Contract negotiation opened")

	return &common.NegotiationProcess{ID: processID, ProviderDID: provider.DID, Offer: offer}, nil
}
