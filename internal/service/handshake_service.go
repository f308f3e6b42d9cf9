package service

import (
	"sync"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RunState is the position of a run in the handshake sequence. The sequence
// is strictly linear with no back-edges; any phase failure is terminal for
// the run and nothing already completed is rolled back.
type RunState string

const (
	StateStart         RunState = "Start"
	StateOnboarded     RunState = "Onboarded"
	StateCredentialed  RunState = "Credentialed"
	StateAccessGranted RunState = "AccessGranted"
	StateNegotiated    RunState = "Negotiated"
	StateTransferred   RunState = "Transferred"
	StateFailed        RunState = "Failed"
)

// HandshakeService implements `HandshakeServiceInterface` by driving the
// phase services in order: Onboarding → Credential → Access-Grant →
// Negotiation → Transfer. Each phase's output is the next phase's input.
//
// The mutex serializes runs: the credential phase's "most recent request"
// selection is only correct when no second handshake is in flight.
type HandshakeService struct {
	OnboardingSvc  OnboardingServiceInterface
	CredentialSvc  CredentialServiceInterface
	AccessGrantSvc AccessGrantServiceInterface
	NegotiationSvc NegotiationServiceInterface
	TransferSvc    TransferServiceInterface

	runMu sync.Mutex
}

// Run executes one full handshake and returns the aggregate result. Every
// identifier threaded between phases is non-empty by construction: each phase
// fails the run rather than propagate an empty id.
func (s *HandshakeService) Run() (*common.RunResult, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	runID := uuid.NewString()
	runLog := log.WithField("runId", runID)

	state := StateStart
	fail := func(err error) (*common.RunResult, error) {
		runLog.WithFields(log.Fields{
			"state": string(StateFailed),
			"from":  string(state),
		}).WithError(err).Errorln("Handshake run failed")
		return nil, err
	}
	advance := func(next RunState) {
		state = next
		runLog.WithField("state", string(state)).Infoln("Handshake phase completed")
	}

	authority, consumer, provider, err := s.OnboardingSvc.OnboardAll()
	if err != nil {
		return fail(err)
	}
	advance(StateOnboarded)

	if _, err := s.CredentialSvc.IssueCredential(authority, consumer); err != nil {
		return fail(err)
	}
	advance(StateCredentialed)

	if _, err := s.AccessGrantSvc.GrantAccess(consumer, provider); err != nil {
		return fail(err)
	}
	advance(StateAccessGranted)

	negotiation, err := s.NegotiationSvc.OpenNegotiation(provider)
	if err != nil {
		return fail(err)
	}
	advance(StateNegotiated)

	transfer, err := s.TransferSvc.OpenTransfer(negotiation)
	if err != nil {
		return fail(err)
	}
	advance(StateTransferred)

	return &common.RunResult{
		RunID:           runID,
		AuthorityDID:    authority.DID,
		ConsumerDID:     consumer.DID,
		ProviderDID:     provider.DID,
		ContractProcess: negotiation.ID,
		TransferProcess: transfer.ID,
	}, nil
}

// NewHandshakeService wires the concrete phase services around one shared
// service info.
func NewHandshakeService(info *Info) *HandshakeService {
	return &HandshakeService{
		OnboardingSvc:  &OnboardingService{ServiceInfo: info},
		CredentialSvc:  &CredentialService{ServiceInfo: info},
		AccessGrantSvc: &AccessGrantService{ServiceInfo: info},
		NegotiationSvc: &NegotiationService{ServiceInfo: info},
		TransferSvc:    &TransferService{ServiceInfo: info},
	}
}
