package service

import "github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"

// CredentialServiceInterface runs the beg / approve / install exchange that
// leaves the consumer holding a verifiable credential issued by the
// authority.
type CredentialServiceInterface interface {
	IssueCredential(authority, consumer *common.ParticipantIdentity) (*common.CredentialGrant, error)
}
