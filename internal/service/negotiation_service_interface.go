package service

import "github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"

// NegotiationServiceInterface opens a contract negotiation between the
// consumer and the provider for the configured asset/offer.
type NegotiationServiceInterface interface {
	OpenNegotiation(provider *common.ParticipantIdentity) (*common.NegotiationProcess, error)
}
