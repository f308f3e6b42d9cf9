package service

import (
	"net/http"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/appinit"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/utils/jsonutils"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// OnboardingService implements `OnboardingServiceInterface`. Onboarding calls
// are expected to be safely repeatable: an already-onboarded participant
// answers with success or a no-op, so there is no special-casing of "already
// onboarded" errors here. Any non-transport failure at this stage is fatal to
// the run.
type OnboardingService struct {
	ServiceInfo *Info
}

// OnboardParticipant issues the onboard call and then fetches the
// participant's identity document, extracting the DID under the generation's
// candidate keys.
func (s *OnboardingService) OnboardParticipant(role common.ParticipantRole, participant *appinit.ParticipantInfo) (*common.ParticipantIdentity, error) {
	table := s.ServiceInfo.Table

	resp, err := s.ServiceInfo.Gateway.Call(http.MethodPost, participant.BaseURL+table.OnboardPath, map[string]interface{}{})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to onboard the %v", role)
	}
	if !resp.OK() {
		return nil, errors.Errorf("onboarding the %v answered status %v: %v", role, resp.StatusCode, resp.RawBody)
	}

	docResp, err := s.ServiceInfo.Gateway.Call(http.MethodGet, participant.BaseURL+table.DIDDocumentPath, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to fetch the %v identity document", role)
	}
	if !docResp.OK() {
		return nil, errors.Errorf("fetching the %v identity document answered status %v: %v", role, docResp.StatusCode, docResp.RawBody)
	}

	did, err := jsonutils.ExtractID(docResp.Value, table.DIDKeys)
	if err != nil {
		return nil, errors.Wrapf(err, "the %v identity document carries no DID", role)
	}

	log.WithFields(log.Fields{
		"role": role.String(),
		"did":  did,
	}).Infoln("Participant onboarded")

	return &common.ParticipantIdentity{Role: role, DID: did}, nil
}

// OnboardAll onboards the three participants in order. Each must yield a
// non-empty DID before the credential phase may begin.
func (s *OnboardingService) OnboardAll() (authority, consumer, provider *common.ParticipantIdentity, err error) {
	cfg := s.ServiceInfo.Config

	authority, err = s.OnboardParticipant(common.Authority, cfg.Authority)
	if err != nil {
		return nil, nil, nil, err
	}

	consumer, err = s.OnboardParticipant(common.Consumer, cfg.Consumer)
	if err != nil {
		return nil, nil, nil, err
	}

	provider, err = s.OnboardParticipant(common.Provider, cfg.Provider)
	if err != nil {
		return nil, nil, nil, err
	}

	return authority, consumer, provider, nil
}
