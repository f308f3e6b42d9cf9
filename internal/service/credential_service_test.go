package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/protocol"
	"github.com/rainbow-dataspace/handshake-orchestrator/pkg/errorcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func credentialFixtures(t *testing.T) (authority, consumer, provider *stubParticipant, info *Info, auth, cons *common.ParticipantIdentity) {
	authority = newStubParticipant()
	consumer = newStubParticipant()
	provider = newStubParticipant()

	info = newTestInfo(t, protocol.GenerationV1, authority, consumer, provider)
	auth = &common.ParticipantIdentity{Role: common.Authority, DID: "did:example:auth"}
	cons = &common.ParticipantIdentity{Role: common.Consumer, DID: "did:example:consumer"}
	return
}

func TestIssueCredentialSelectsMostRecentEntryWithIssuanceURI(t *testing.T) {
	authority, consumer, provider, info, auth, cons := credentialFixtures(t)
	defer authority.close()
	defer consumer.close()
	defer provider.close()

	consumer.on(http.MethodPost, "/api/v1/vc-request/beg/cross-user", http.StatusOK, map[string]interface{}{})
	authority.on(http.MethodGet, "/api/v1/vc-request/all", http.StatusOK, []interface{}{
		map[string]interface{}{"id": "req-1"},
		map[string]interface{}{"id": "req-2"},
	})
	authority.on(http.MethodPost, "/api/v1/vc-request/req-2", http.StatusOK, map[string]interface{}{})
	// The newest consumer-side entry has no URI yet; the scan must fall back
	// to the most recent entry that actually carries one.
	consumer.on(http.MethodGet, "/api/v1/vc-request/all", http.StatusOK, []interface{}{
		map[string]interface{}{"id": "req-1", "vc_uri": "vc://xyz"},
		map[string]interface{}{"id": "req-3"},
	})
	consumer.on(http.MethodPost, "/api/v1/wallet/oidc4vci", http.StatusOK, map[string]interface{}{})

	svc := &CredentialService{ServiceInfo: info}

	grant, err := svc.IssueCredential(auth, cons)
	require.NoError(t, err)
	assert.Equal(t, "vc://xyz", grant.VCURI)
	assert.Equal(t, "did:example:consumer", grant.SubjectDID)
	assert.True(t, grant.Approved)

	// The authority must have approved the most recently created request.
	approved := false
	for _, req := range authority.recorded() {
		if req.Method == http.MethodPost && req.Path == "/api/v1/vc-request/req-2" {
			approved = true
			assert.Equal(t, true, req.Body["approve"])
		}
	}
	assert.True(t, approved)

	// The installation call must carry the issuance URI.
	installed := false
	for _, req := range consumer.recorded() {
		if req.Path == "/api/v1/wallet/oidc4vci" {
			installed = true
			assert.Equal(t, "vc://xyz", req.Body["uri"])
		}
	}
	assert.True(t, installed)
}

func TestIssueCredentialFailsWhenNoPendingRequestExists(t *testing.T) {
	authority, consumer, provider, info, auth, cons := credentialFixtures(t)
	defer authority.close()
	defer consumer.close()
	defer provider.close()

	consumer.on(http.MethodPost, "/api/v1/vc-request/beg/cross-user", http.StatusOK, map[string]interface{}{})
	authority.on(http.MethodGet, "/api/v1/vc-request/all", http.StatusOK, []interface{}{})

	svc := &CredentialService{ServiceInfo: info}

	_, err := svc.IssueCredential(auth, cons)
	require.Error(t, err)

	var issuanceErr *errorcode.CredentialIssuanceError
	assert.True(t, errors.As(err, &issuanceErr))
}

func TestIssueCredentialFailsWhenApprovalProducesNoURI(t *testing.T) {
	authority, consumer, provider, info, auth, cons := credentialFixtures(t)
	defer authority.close()
	defer consumer.close()
	defer provider.close()

	consumer.on(http.MethodPost, "/api/v1/vc-request/beg/cross-user", http.StatusOK, map[string]interface{}{})
	authority.on(http.MethodGet, "/api/v1/vc-request/all", http.StatusOK, []interface{}{
		map[string]interface{}{"id": "req-1"},
	})
	authority.on(http.MethodPost, "/api/v1/vc-request/req-1", http.StatusOK, map[string]interface{}{})
	consumer.on(http.MethodGet, "/api/v1/vc-request/all", http.StatusOK, []interface{}{
		map[string]interface{}{"id": "req-1"},
	})

	svc := &CredentialService{ServiceInfo: info}

	_, err := svc.IssueCredential(auth, cons)
	require.Error(t, err)

	var issuanceErr *errorcode.CredentialIssuanceError
	require.True(t, errors.As(err, &issuanceErr))
	assert.Contains(t, issuanceErr.Error(), "issuance URI")

	// The consumer must not have tried to install anything.
	for _, req := range consumer.recorded() {
		assert.NotEqual(t, "/api/v1/wallet/oidc4vci", req.Path)
	}
}
