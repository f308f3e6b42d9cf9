package protocol

import "fmt"

// Generation selects which connector protocol dialect the participants speak.
// The repository this orchestrator talks to has gone through several
// incompatible revisions of endpoint paths and identifier field names; each
// revision is captured here as one lookup table so no phase carries
// per-generation branches.
type Generation string

const (
	GenerationV1 Generation = "v1"
	GenerationV2 Generation = "v2"
	GenerationV3 Generation = "v3"
)

// OfferForm tells the negotiation phase how to encode what is being
// negotiated over.
type OfferForm int

const (
	// OfferWithPermissions sends an offer id plus an explicit permission set
	OfferWithPermissions OfferForm = iota
	// AssetReference sends a bare asset-id reference
	AssetReference
)

// Table is the per-generation endpoint and field-name dialect. Paths are
// joined onto a participant base URL; key slices are candidate identifier
// keys in priority order, handed to the extractor per call site.
type Table struct {
	Generation Generation

	// Wallet / onboarding
	OnboardPath     string
	DIDDocumentPath string
	DIDKeys         []string

	// Credential exchange (stable across generations so far)
	CredentialBegPath     string
	CredentialListPath    string
	CredentialApprovePath string // takes the request id via ApprovePath()
	CredentialRequestKeys []string
	VCURIKeys             []string
	OIDC4VCIPath          string

	// Access grant (stable across generations so far)
	ProviderOnboardPath string
	OIDC4VPPath         string
	PresentationURIKeys []string

	// Contract negotiation
	NegotiationPath string
	NegotiationKeys []string
	ProviderField   string
	OfferForm       OfferForm

	// Transfer
	TransferPath           string
	TransferKeys           []string
	TransferStaticContract bool // reference a statically known contract id instead of the negotiation id
}

// ApprovePath builds the approval endpoint path for a pending credential
// request.
func (t *Table) ApprovePath(requestID string) string {
	return fmt.Sprintf("%v/%v", t.CredentialApprovePath, requestID)
}

var tables = map[Generation]*Table{
	GenerationV1: {
		Generation:            GenerationV1,
		OnboardPath:           "/api/v1/wallet/onboard",
		DIDDocumentPath:       "/api/v1/wallet/did.json",
		DIDKeys:               []string{"id", "did"},
		CredentialBegPath:     "/api/v1/vc-request/beg/cross-user",
		CredentialListPath:    "/api/v1/vc-request/all",
		CredentialApprovePath: "/api/v1/vc-request",
		CredentialRequestKeys: []string{"id", "@id"},
		VCURIKeys:             []string{"vc_uri", "vcUri", "credentialOfferUri"},
		OIDC4VCIPath:          "/api/v1/wallet/oidc4vci",
		ProviderOnboardPath:   "/api/v1/onboard/provider",
		OIDC4VPPath:           "/api/v1/wallet/oidc4vp",
		PresentationURIKeys:   []string{"uri", "presentationUri", "url"},
		NegotiationPath:       "/api/v1/contract-negotiation/processes",
		NegotiationKeys:       []string{"id", "processId"},
		ProviderField:         "providerId",
		OfferForm:             OfferWithPermissions,
		TransferPath:          "/api/v1/transfer/process",
		TransferKeys:          []string{"id", "transferId"},
	},
	GenerationV2: {
		Generation:            GenerationV2,
		OnboardPath:           "/v2/wallet/onboard",
		DIDDocumentPath:       "/v2/wallet/did.json",
		DIDKeys:               []string{"id", "did"},
		CredentialBegPath:     "/v2/vc-request/beg/cross-user",
		CredentialListPath:    "/v2/vc-request/all",
		CredentialApprovePath: "/v2/vc-request",
		CredentialRequestKeys: []string{"id", "@id"},
		VCURIKeys:             []string{"vc_uri", "vcUri", "credentialOfferUri"},
		OIDC4VCIPath:          "/v2/wallet/oidc4vci",
		ProviderOnboardPath:   "/v2/onboard/provider",
		OIDC4VPPath:           "/v2/wallet/oidc4vp",
		PresentationURIKeys:   []string{"uri", "presentationUri", "url"},
		NegotiationPath:       "/v2/contract-negotiation/processes",
		NegotiationKeys:       []string{"@id", "id", "processId"},
		ProviderField:         "providerId",
		OfferForm:             OfferWithPermissions,
		TransferPath:          "/v2/transfer/process",
		TransferKeys:          []string{"@id", "id", "transferId"},
	},
	GenerationV3: {
		Generation:             GenerationV3,
		OnboardPath:            "/v1/wallet",
		DIDDocumentPath:        "/v1/wallet",
		DIDKeys:                []string{"did", "id"},
		CredentialBegPath:      "/v1/vc-request/beg/cross-user",
		CredentialListPath:     "/v1/vc-request/all",
		CredentialApprovePath:  "/v1/vc-request",
		CredentialRequestKeys:  []string{"@id", "id"},
		VCURIKeys:              []string{"vc_uri", "vcUri", "credentialOfferUri"},
		OIDC4VCIPath:           "/v1/wallet/oidc4vci",
		ProviderOnboardPath:    "/v1/onboard/provider",
		OIDC4VPPath:            "/v1/wallet/oidc4vp",
		PresentationURIKeys:    []string{"uri", "presentationUri", "url"},
		NegotiationPath:        "/v3/contract-negotiation/processes",
		NegotiationKeys:        []string{"@id", "providerPid", "processId", "id"},
		ProviderField:          "providerPid",
		OfferForm:              AssetReference,
		TransferPath:           "/transfers/rpc/setup-request",
		TransferKeys:           []string{"@id", "providerPid", "id"},
		TransferStaticContract: true,
	},
}

// TableFor returns the dialect table for a generation.
func TableFor(gen Generation) (*Table, error) {
	table, ok := tables[gen]
	if !ok {
		return nil, fmt.Errorf("unknown protocol generation '%v'", gen)
	}

	return table, nil
}
