package simulator

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync"
	"time"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/appinit"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

// Simulator mimics the lifecycle of the IoT device feeding the dataspace:
// it authenticates with a mock token, knows the catalog entry registered on
// the provider side and assembles telemetry envelopes the way the dataspace
// expects them.
type Simulator struct {
	config *appinit.ServerInfo
	specs  *SpecCache
	sfNode *snowflake.Node

	mu          sync.Mutex
	token       string
	lastPayload map[string]interface{}
}

// NewSimulator builds the device around the loaded config.
func NewSimulator(config *appinit.ServerInfo) (*Simulator, error) {
	sfNode, err := snowflake.NewNode(1)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create the ingestion id generator")
	}

	specs := NewSpecCache(map[string]string{
		"auth":    config.Device.AuthSpecPath,
		"catalog": config.Device.CatalogSpecPath,
	})

	return &Simulator{config: config, specs: specs, sfNode: sfNode}, nil
}

// Authenticate returns the device's mock token, minting it on first use. The
// token stands in for the /token operation of the auth spec and stays stable
// for the process lifetime.
func (s *Simulator) Authenticate() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return s.token
	}

	seed := fmt.Sprintf("%v:%v", s.config.Device.UserID, s.config.Device.UserToken)
	h := fnv.New32a()
	h.Write([]byte(seed))
	s.token = fmt.Sprintf("mock-token-%04d", h.Sum32()%10000)

	return s.token
}

// IngestionID assigns a server-side id to an accepted telemetry record.
func (s *Simulator) IngestionID() string {
	return s.sfNode.Generate().String()
}

// CatalogEntry returns the catalog metadata that exists on the provider for
// this device's stream. The provider URL in it is resolved for callers on the
// host network, not for this process.
func (s *Simulator) CatalogEntry() (map[string]interface{}, error) {
	catalog := s.config.Device.Catalog

	entry := map[string]interface{}{
		"catalog":      catalog.CatalogID,
		"dataset":      catalog.DatasetID,
		"distribution": catalog.DistributionID,
		"data_service": catalog.DataServiceID,
		"provider_url": s.config.Provider.ReachableFromHost(),
	}

	// The spec summary is metadata only; a missing spec file must not stop
	// telemetry from flowing.
	if title, err := s.specs.Title("catalog"); err == nil {
		entry["spec_summary"] = title
	}

	return entry, nil
}

// BuildPayload prepares one telemetry payload. Caller-supplied measurement
// fields override the randomized temperature/humidity defaults.
func (s *Simulator) BuildPayload(measurement map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"temperature": round2(18.0 + rand.Float64()*7.0),
		"humidity":    round2(40.0 + rand.Float64()*20.0),
	}
	for k, v := range measurement {
		data[k] = v
	}

	return map[string]interface{}{
		"measured_at":      time.Now().UTC().Format(time.RFC3339),
		"device_user":      s.config.Device.UserID,
		"participant_type": s.config.Device.ParticipantType,
		"api_endpoint":     s.config.Device.APIEndpoint,
		"data":             data,
	}
}

// Transmit assembles the full envelope for one measurement and remembers it
// as the device's last payload.
func (s *Simulator) Transmit(measurement map[string]interface{}) (map[string]interface{}, error) {
	token := s.Authenticate()

	catalogEntry, err := s.CatalogEntry()
	if err != nil {
		return nil, err
	}

	envelope := map[string]interface{}{
		"auth_token":    token,
		"catalog_entry": catalogEntry,
		"payload":       s.BuildPayload(measurement),
	}

	s.mu.Lock()
	s.lastPayload = envelope
	s.mu.Unlock()

	return envelope, nil
}

// Describe reports the device's configuration and state for /device. The
// participant URLs are the host-network ones: /device is read by dashboards
// and devices outside this process's network namespace.
func (s *Simulator) Describe() map[string]interface{} {
	authServer, _ := s.specs.DefaultServer("auth")
	catalogServer, _ := s.specs.DefaultServer("catalog")

	s.mu.Lock()
	lastPayload := s.lastPayload
	s.mu.Unlock()

	return map[string]interface{}{
		"config": map[string]interface{}{
			"user_id":          s.config.Device.UserID,
			"participant_type": s.config.Device.ParticipantType,
			"provider_url":     s.config.Provider.ReachableFromHost(),
			"consumer_url":     s.config.Consumer.ReachableFromHost(),
			"api_endpoint":     s.config.Device.APIEndpoint,
			"catalog":          s.config.Device.Catalog,
		},
		"auth_server":    authServer,
		"catalog_server": catalogServer,
		"last_payload":   lastPayload,
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
