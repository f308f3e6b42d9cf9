package service

import (
	"net/http"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/utils/jsonutils"
	"github.com/rainbow-dataspace/handshake-orchestrator/pkg/errorcode"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// AccessGrantService implements `AccessGrantServiceInterface`.
type AccessGrantService struct {
	ServiceInfo *Info
}

// GrantAccess asks the provider for presentation-exchange access and
// completes the exchange through the consumer's OIDC4VP endpoint.
//
// Connector implementations disagree on the response shape: some return the
// presentation-request URI as a bare string, others nest it in an object.
// Both are normalized to one trimmed string before the exchange continues; an
// empty URI never reaches the presentation endpoint.
func (s *AccessGrantService) GrantAccess(consumer, provider *common.ParticipantIdentity) (*common.AccessGrant, error) {
	table := s.ServiceInfo.Table
	cfg := s.ServiceInfo.Config

	onboardBody := map[string]interface{}{
		"did":     provider.DID,
		"url":     cfg.Dataspace.AccessGateURL,
		"role":    cfg.Dataspace.RoleSlug,
		"actions": cfg.Dataspace.Permissions,
	}
	resp, err := s.ServiceInfo.Gateway.Call(http.MethodPost, cfg.Provider.BaseURL+table.ProviderOnboardPath, onboardBody)
	if err != nil {
		return nil, errors.Wrap(err, "unable to request provider access")
	}
	if !resp.OK() {
		return nil, &errorcode.AccessGrantError{Reason: "provider onboarding was rejected: " + resp.RawBody}
	}

	presentationURI, found := jsonutils.NormalizeURI(resp.Value, table.PresentationURIKeys)
	if !found {
		return nil, &errorcode.AccessGrantError{Reason: "the provider answered without a usable presentation URI"}
	}

	vpResp, err := s.ServiceInfo.Gateway.Call(http.MethodPost, cfg.Consumer.BaseURL+table.OIDC4VPPath, map[string]interface{}{"uri": presentationURI})
	if err != nil {
		return nil, errors.Wrap(err, "unable to complete the presentation exchange")
	}
	if !vpResp.OK() {
		return nil, &errorcode.AccessGrantError{Reason: "presentation exchange was rejected: " + vpResp.RawBody}
	}

	log.WithFields(log.Fields{
		"grantee":         consumer.DID,
		"presentationUri": presentationURI,
	}).Infoln("Access granted")

	return &common.AccessGrant{GranteeDID: consumer.DID, PresentationURI: presentationURI}, nil
}
