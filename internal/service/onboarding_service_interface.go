package service

import (
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/appinit"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"
)

// OnboardingServiceInterface provisions and collects the DID of each
// participant.
type OnboardingServiceInterface interface {
	// OnboardParticipant issues the idempotent onboard call for one
	// participant and fetches its DID.
	OnboardParticipant(role common.ParticipantRole, participant *appinit.ParticipantInfo) (*common.ParticipantIdentity, error)
	// OnboardAll onboards the Authority, Consumer and Provider in that order.
	OnboardAll() (authority, consumer, provider *common.ParticipantIdentity, err error)
}
