package errorcode

import "fmt"

// Kind tells a caller whether retrying a failed run can possibly help.
// Transport failures mean the destination was unreachable; protocol failures
// mean the destination answered with something we can't work with, so a retry
// without operator intervention is pointless.
type Kind string

const (
	KindTransport Kind = "transport"
	KindProtocol  Kind = "protocol"
)

// TransportError wraps a network-level failure (connection refused, timeout,
// DNS) so that callers can tell "destination unreachable" apart from
// "destination replied with an error".
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure on %v %v: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError marks a response body that was expected to be JSON
// but wasn't. The raw body is kept for the log record.
type MalformedResponseError struct {
	Method string
	URL    string
	Body   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed (non-JSON) response from %v %v", e.Method, e.URL)
}

// MissingIdentifierError is returned when none of the candidate keys for an
// identifier is present in a response object.
type MissingIdentifierError struct {
	CandidateKeys []string
}

func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("no identifier found under any of the candidate keys %v", e.CandidateKeys)
}

// CredentialIssuanceError marks a credential phase that could not complete:
// no pending request was found, or the approved request never received an
// issuance URI.
type CredentialIssuanceError struct {
	Reason string
}

func (e *CredentialIssuanceError) Error() string {
	return fmt.Sprintf("credential issuance failed: %v", e.Reason)
}

// AccessGrantError marks an access-grant exchange that produced an empty or
// unusable presentation URI.
type AccessGrantError struct {
	Reason string
}

func (e *AccessGrantError) Error() string {
	return fmt.Sprintf("access grant failed: %v", e.Reason)
}

// NegotiationError marks a contract negotiation that produced no usable
// process identifier.
type NegotiationError struct {
	Reason string
	Err    error
}

func (e *NegotiationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("contract negotiation failed: %v: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("contract negotiation failed: %v", e.Reason)
}

func (e *NegotiationError) Unwrap() error {
	return e.Err
}

// TransferError marks a transfer setup that produced no usable transfer
// process identifier. A missing transfer id is fatal here: a downstream
// telemetry sender cannot address messages without it.
type TransferError struct {
	Reason string
	Err    error
}

func (e *TransferError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transfer setup failed: %v: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("transfer setup failed: %v", e.Reason)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
