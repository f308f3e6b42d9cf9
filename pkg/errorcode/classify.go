package errorcode

import "errors"

// ClassifyKind maps an error from a handshake run to the kind reported to the
// caller of /init. Only genuine network-level failures count as transport;
// everything else (bad shapes, missing identifiers, phase failures) needs an
// operator to look at it before a retry makes sense.
func ClassifyKind(err error) Kind {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return KindTransport
	}
	return KindProtocol
}
