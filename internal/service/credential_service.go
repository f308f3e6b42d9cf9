package service

import (
	"net/http"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/utils/jsonutils"
	"github.com/rainbow-dataspace/handshake-orchestrator/pkg/errorcode"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CredentialService implements `CredentialServiceInterface`.
//
// Request selection picks the most recently created entry of the listing
// (last element). That tie-break is only sound because the orchestrator runs
// one handshake at a time; concurrent runs could cross-wire requests since
// the connectors give us no correlation id to disambiguate by.
type CredentialService struct {
	ServiceInfo *Info
}

// IssueCredential walks the full exchange: the consumer begs the authority
// for a credential, the authority approves the pending request, the consumer
// re-lists its own requests until it finds the issuance URI and installs the
// credential through its wallet's OIDC4VCI endpoint.
func (s *CredentialService) IssueCredential(authority, consumer *common.ParticipantIdentity) (*common.CredentialGrant, error) {
	table := s.ServiceInfo.Table
	cfg := s.ServiceInfo.Config

	// 1. Consumer requests a credential from the authority.
	begBody := map[string]interface{}{
		"did":            authority.DID,
		"url":            cfg.Dataspace.AccessGateURL,
		"credentialType": cfg.Dataspace.CredentialType,
		"role":           cfg.Dataspace.RoleSlug,
	}
	begResp, err := s.ServiceInfo.Gateway.Call(http.MethodPost, cfg.Consumer.BaseURL+table.CredentialBegPath, begBody)
	if err != nil {
		return nil, errors.Wrap(err, "unable to request a credential")
	}
	if !begResp.OK() {
		return nil, &errorcode.CredentialIssuanceError{Reason: "credential request was rejected: " + begResp.RawBody}
	}

	// 2. Authority lists its pending requests and selects the most recent.
	pendingResp, err := s.ServiceInfo.Gateway.Call(http.MethodGet, cfg.Authority.BaseURL+table.CredentialListPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list pending credential requests")
	}

	pending, ok := pendingResp.List()
	if !ok || len(pending) == 0 {
		return nil, &errorcode.CredentialIssuanceError{Reason: "no pending credential request found on the authority"}
	}

	requestID, err := jsonutils.ExtractID(pending[len(pending)-1], table.CredentialRequestKeys)
	if err != nil {
		return nil, &errorcode.CredentialIssuanceError{Reason: "the pending credential request carries no id"}
	}

	// 3. Authority approves it.
	approveResp, err := s.ServiceInfo.Gateway.Call(http.MethodPost, cfg.Authority.BaseURL+table.ApprovePath(requestID), map[string]interface{}{"approve": true})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to approve credential request %v", requestID)
	}
	if !approveResp.OK() {
		return nil, &errorcode.CredentialIssuanceError{Reason: "approval of request " + requestID + " was rejected: " + approveResp.RawBody}
	}

	log.WithField("requestId", requestID).Infoln("Credential request approved")

	// 4. Consumer re-lists its own requests. Position alone is not trusted
	// here: the selected entry must actually carry an issuance URI, so the
	// scan runs newest-first and filters on presence of that field.
	ownResp, err := s.ServiceInfo.Gateway.Call(http.MethodGet, cfg.Consumer.BaseURL+table.CredentialListPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list the consumer's credential requests")
	}

	own, ok := ownResp.List()
	if !ok {
		return nil, &errorcode.CredentialIssuanceError{Reason: "the consumer's credential request listing is not a list"}
	}

	vcURI := ""
	for i := len(own) - 1; i >= 0; i-- {
		entry, isMap := own[i].(map[string]interface{})
		if !isMap {
			continue
		}
		for _, key := range table.VCURIKeys {
			if uri, found := jsonutils.NormalizeURI(entry[key], nil); found {
				vcURI = uri
				break
			}
		}
		if vcURI != "" {
			break
		}
	}

	if vcURI == "" {
		return nil, &errorcode.CredentialIssuanceError{Reason: "approval did not produce an issuance URI on any request"}
	}

	// 5. Consumer installs the credential.
	installResp, err := s.ServiceInfo.Gateway.Call(http.MethodPost, cfg.Consumer.BaseURL+table.OIDC4VCIPath, map[string]interface{}{"uri": vcURI})
	if err != nil {
		return nil, errors.Wrap(err, "unable to install the credential")
	}
	if !installResp.OK() {
		return nil, &errorcode.CredentialIssuanceError{Reason: "credential installation was rejected: " + installResp.RawBody}
	}

	log.WithFields(log.Fields{
		"subject": consumer.DID,
		"vcUri":   vcURI,
	}).Infoln("Credential installed")

	return &common.CredentialGrant{SubjectDID: consumer.DID, VCURI: vcURI, Approved: true}, nil
}
