package service

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/appinit"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/gateway"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/protocol"

	"github.com/stretchr/testify/require"
)

// recordedRequest is one call a stub participant received.
type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

type stubRoute struct {
	status int
	body   interface{}
}

// stubParticipant plays one dataspace participant in tests: it records every
// request and answers from a fixed route table.
type stubParticipant struct {
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string]stubRoute
	requests []recordedRequest
}

func newStubParticipant() *stubParticipant {
	s := &stubParticipant{routes: map[string]stubRoute{}}
	s.server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *stubParticipant) on(method, path string, status int, body interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = stubRoute{status: status, body: body}
}

func (s *stubParticipant) serve(w http.ResponseWriter, r *http.Request) {
	bodyBytes, _ := ioutil.ReadAll(r.Body)
	var body map[string]interface{}
	json.Unmarshal(bodyBytes, &body)

	s.mu.Lock()
	s.requests = append(s.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: body})
	route, found := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !found {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no such endpoint"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(route.status)
	if route.body != nil {
		respBytes, _ := json.Marshal(route.body)
		w.Write(respBytes)
	}
}

func (s *stubParticipant) recorded() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]recordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *stubParticipant) close() {
	s.server.Close()
}

// newTestInfo wires a service Info against stub participants.
func newTestInfo(t *testing.T, gen protocol.Generation, authority, consumer, provider *stubParticipant) *Info {
	table, err := protocol.TableFor(gen)
	require.NoError(t, err)

	cfg := &appinit.ServerInfo{
		ProtocolGeneration: string(gen),
		Authority:          &appinit.ParticipantInfo{BaseURL: authority.server.URL},
		Consumer:           &appinit.ParticipantInfo{BaseURL: consumer.server.URL},
		Provider:           &appinit.ParticipantInfo{BaseURL: provider.server.URL},
		Dataspace: &appinit.DataspaceInfo{
			AssetID:        "iot-stream-001",
			OfferID:        "policy-iot",
			Permissions:    []string{"USE"},
			ContractID:     "contract-iot-001",
			CredentialType: "DataspaceParticipantCredential",
			RoleSlug:       "consumer",
			AccessGateURL:  "http://127.0.0.1:1100/gate",
		},
	}

	return &Info{
		Gateway: gateway.NewGateway(nil),
		Table:   table,
		Config:  cfg,
	}
}
