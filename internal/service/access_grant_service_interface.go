package service

import "github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"

// AccessGrantServiceInterface exchanges a presentation URI so the consumer is
// authorized to talk to the provider.
type AccessGrantServiceInterface interface {
	GrantAccess(consumer, provider *common.ParticipantIdentity) (*common.AccessGrant, error)
}
