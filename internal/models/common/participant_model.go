package common

import "fmt"

// ParticipantRole identifies one of the three dataspace participants.
type ParticipantRole int

const (
	// Authority issues and approves verifiable credentials
	Authority ParticipantRole = iota
	// Consumer requests credentials and opens negotiations / transfers
	Consumer
	// Provider exposes the asset being negotiated over
	Provider
)

func (r ParticipantRole) String() string {
	switch r {
	case Authority:
		return "Authority"
	case Consumer:
		return "Consumer"
	case Provider:
		return "Provider"
	default:
		return fmt.Sprintf("ParticipantRole(%v)", int(r))
	}
}

// NewParticipantRoleFromString parses a participant role name (case-exact).
func NewParticipantRoleFromString(s string) (ParticipantRole, error) {
	switch s {
	case "Authority":
		return Authority, nil
	case "Consumer":
		return Consumer, nil
	case "Provider":
		return Provider, nil
	default:
		return 0, fmt.Errorf("unknown participant role '%v'", s)
	}
}

// ParticipantIdentity binds a role to the DID collected during onboarding.
// Immutable once created; identifies the participant for the rest of the run.
type ParticipantIdentity struct {
	Role ParticipantRole `json:"role"` // The participant's role in the dataspace
	DID  string          `json:"did"`  // The decentralized identifier collected from the wallet
}
