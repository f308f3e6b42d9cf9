package common

// CredentialGrant records an approved credential request. It is consumed
// exactly once, when the consumer installs the credential via OIDC4VCI.
type CredentialGrant struct {
	SubjectDID string `json:"subjectDid"` // The DID the credential is issued to
	VCURI      string `json:"vcUri"`      // The issuance URI handed back by the authority
	Approved   bool   `json:"approved"`   // Whether the authority has approved the request
}

// AccessGrant records a completed presentation exchange. It is consumed once
// to authorize the negotiation calls that follow.
type AccessGrant struct {
	GranteeDID      string `json:"granteeDid"`      // The DID being granted access
	PresentationURI string `json:"presentationUri"` // The normalized presentation-request URI
}

// OfferDescriptor describes what is being negotiated over. Depending on the
// protocol generation this is either an offer id plus a permission set or a
// bare asset-id reference.
type OfferDescriptor struct {
	ID          string   `json:"id"`                    // Offer id (or asset id for reference-style generations)
	Permissions []string `json:"permissions,omitempty"` // Permitted actions, empty for reference-style offers
}

// NegotiationProcess is the outcome of the negotiation phase. Only its ID is
// threaded into the transfer phase; no other negotiation state is retained.
type NegotiationProcess struct {
	ID          string          `json:"id"`          // Negotiation process id assigned by the provider connector
	ProviderDID string          `json:"providerDid"` // The provider the negotiation was opened against
	Offer       OfferDescriptor `json:"offer"`       // The offer the negotiation was opened for
}

// TransferProcess is the terminal entity of a run. Downstream telemetry
// senders address messages with its ID.
type TransferProcess struct {
	ID         string `json:"id"`         // Transfer process id assigned by the provider connector
	AssetID    string `json:"assetId"`    // The asset the transfer moves
	ContractID string `json:"contractId"` // The agreed contract (negotiation id or static contract id)
}

// RunResult aggregates everything a completed handshake produced. It is
// constructed once per run and never mutated after return.
type RunResult struct {
	RunID           string `json:"run_id"`           // Server-assigned id for this orchestration run
	AuthorityDID    string `json:"authority_did"`    // The authority's DID
	ConsumerDID     string `json:"consumer_did"`     // The consumer's DID
	ProviderDID     string `json:"provider_did"`     // The provider's DID
	ContractProcess string `json:"contract_process"` // The negotiation process id
	TransferProcess string `json:"transfer_process"` // The transfer process id
}
