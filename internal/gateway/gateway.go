package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/rainbow-dataspace/handshake-orchestrator/pkg/errorcode"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const defaultCallTimeout = 30 * time.Second

// Bodies larger than this are cut off before decoding. Connector responses
// are small JSON documents; anything bigger is not something we want to hold.
const maxResponseBodyBytes = 1 << 20

// HTTPDoer is the slice of *http.Client the gateway needs. Tests inject a
// fake; production wiring passes a client with a bounded timeout.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ParsedResponse is the outcome of one remote call. `Value` holds the decoded
// JSON body (object, array or scalar). `Opaque` is set instead when the body
// was empty, so callers can't mistake "no body" for an empty object.
type ParsedResponse struct {
	StatusCode int
	Value      interface{}
	Opaque     bool
	RawBody    string
}

// OK reports whether the remote end answered with a 2xx status.
func (r *ParsedResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Map returns the decoded body as a JSON object, if it is one.
func (r *ParsedResponse) Map() (map[string]interface{}, bool) {
	m, ok := r.Value.(map[string]interface{})
	return m, ok
}

// List returns the decoded body as a JSON array, if it is one.
func (r *ParsedResponse) List() ([]interface{}, bool) {
	l, ok := r.Value.([]interface{})
	return l, ok
}

// Str returns the decoded body as a JSON string, if it is one.
func (r *ParsedResponse) Str() (string, bool) {
	s, ok := r.Value.(string)
	return s, ok
}

// Gateway is the uniform request/response wrapper every phase goes through.
// It owns timeout, content-type and response-parsing policy; everything above
// it only ever sees ParsedResponse or a classified error.
type Gateway struct {
	client HTTPDoer
}

// NewGateway builds a gateway around the given client. A nil client gets a
// plain http.Client with the default call timeout.
func NewGateway(client HTTPDoer) *Gateway {
	if client == nil {
		client = &http.Client{Timeout: defaultCallTimeout}
	}

	return &Gateway{client: client}
}

// Call serializes `body` as JSON (when non-nil), issues the request and
// decodes the response.
//
// Network-level failures come back as *errorcode.TransportError. A non-empty
// body that fails to decode as JSON comes back as
// *errorcode.MalformedResponseError; it is never silently substituted with an
// empty value. An empty body yields an Opaque ParsedResponse.
func (g *Gateway) Call(method string, url string, body interface{}) (*ParsedResponse, error) {
	var reqBody io.Reader
	var outbound []byte

	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "unable to serialize request body")
		}
		outbound = bodyBytes
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to build request for %v %v", method, url)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		log.WithFields(log.Fields{
			"method": method,
			"url":    url,
		}).WithError(err).Warnln("Remote call failed at transport level")

		return nil, &errorcode.TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBodyBytes, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, &errorcode.TransportError{Method: method, URL: url, Err: err}
	}

	parsed := &ParsedResponse{
		StatusCode: resp.StatusCode,
		RawBody:    string(respBodyBytes),
	}

	if strings.TrimSpace(parsed.RawBody) == "" {
		parsed.Opaque = true
	} else if err := json.Unmarshal(respBodyBytes, &parsed.Value); err != nil {
		log.WithFields(log.Fields{
			"method": method,
			"url":    url,
			"status": resp.StatusCode,
			"body":   parsed.RawBody,
		}).Warnln("Remote call returned a non-JSON body")

		return nil, &errorcode.MalformedResponseError{Method: method, URL: url, Body: parsed.RawBody}
	}

	log.WithFields(log.Fields{
		"method":   method,
		"url":      url,
		"status":   resp.StatusCode,
		"outbound": string(outbound),
		"response": parsed.RawBody,
	}).Debugln("Remote call completed")

	return parsed, nil
}
