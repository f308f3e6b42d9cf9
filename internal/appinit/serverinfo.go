package appinit

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/models/common"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/protocol"

	errors "github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// ParticipantInfo holds how to reach one dataspace participant. The host URL
// is the address other participants (running outside our network namespace)
// should use when they have to call the participant themselves; it defaults
// to the base URL when unset.
type ParticipantInfo struct {
	BaseURL     string `yaml:"baseUrl"`     // The URL this orchestrator reaches the participant at
	HostBaseURL string `yaml:"hostBaseUrl"` // The URL the participant is reachable at from the host network
}

// ReachableFromHost returns the host-network URL, falling back to the base URL.
func (p *ParticipantInfo) ReachableFromHost() string {
	if p.HostBaseURL != "" {
		return p.HostBaseURL
	}
	return p.BaseURL
}

// DataspaceInfo carries the static identifiers of the asset being handshaken
// over and the credential parameters used during the credential phase.
type DataspaceInfo struct {
	AssetID        string   `yaml:"assetId"`        // The provider-registered asset id
	OfferID        string   `yaml:"offerId"`        // The policy/offer id (permission-style generations)
	Permissions    []string `yaml:"permissions"`    // Permitted actions on the offer
	ContractID     string   `yaml:"contractId"`     // The statically known contract id (reference-style generations)
	CredentialType string   `yaml:"credentialType"` // The named credential type requested from the authority
	RoleSlug       string   `yaml:"roleSlug"`       // The role slug sent with credential / access-grant requests
	AccessGateURL  string   `yaml:"accessGateUrl"`  // The target access-gate URL the credential is scoped to
	// Where the provider's data plane pulls telemetry from once a transfer
	// runs; registered as the asset's data address during setup.
	TelemetryEndpoint string `yaml:"telemetryEndpoint"`
}

// ServerInfo is the Go struct for contents in serve.yaml. It is built once at
// process start and passed by reference everywhere; there are no module-level
// URL constants anywhere else in the program.
type ServerInfo struct {
	Port               int              `yaml:"port"`
	ProtocolGeneration string           `yaml:"protocolGeneration"`
	Authority          *ParticipantInfo `yaml:"authority"`
	Consumer           *ParticipantInfo `yaml:"consumer"`
	Provider           *ParticipantInfo `yaml:"provider"`
	Dataspace          *DataspaceInfo   `yaml:"dataspace"`
	Device             *DeviceInfo      `yaml:"device"`
	// Provider endpoint telemetry envelopes are forwarded to when a transfer
	// id is supplied; forwarding is skipped when empty.
	TransferMessagePath string `yaml:"transferMessagePath"`
}

// Table resolves the protocol dialect table selected by the config.
func (s *ServerInfo) Table() (*protocol.Table, error) {
	gen := protocol.Generation(strings.TrimSpace(s.ProtocolGeneration))
	if gen == "" {
		gen = protocol.GenerationV3
	}

	return protocol.TableFor(gen)
}

// Validate checks the parts of the config every run depends on.
func (s *ServerInfo) Validate() error {
	if s.Authority == nil || s.Authority.BaseURL == "" {
		return fmt.Errorf("authority base URL is not configured")
	}
	if s.Consumer == nil || s.Consumer.BaseURL == "" {
		return fmt.Errorf("consumer base URL is not configured")
	}
	if s.Provider == nil || s.Provider.BaseURL == "" {
		return fmt.Errorf("provider base URL is not configured")
	}
	if s.Dataspace == nil || s.Dataspace.AssetID == "" {
		return fmt.Errorf("dataspace asset id is not configured")
	}
	if s.Device != nil && s.Device.ParticipantType != "" {
		if _, err := common.NewParticipantRoleFromString(s.Device.ParticipantType); err != nil {
			return fmt.Errorf("invalid device participant type: %v", err)
		}
	}
	if _, err := s.Table(); err != nil {
		return err
	}

	return nil
}

// LoadServerInfo loads the server config file (in YAML) which contains info
// needed to start a server.
//
// Parameters:
//   the path to the config file
//
// Returns:
//   the `ServerInfo` struct containing the info needed to start a server
func LoadServerInfo(configFilePath string) (ret ServerInfo, err error) {
	yamlStr, err := ioutil.ReadFile(configFilePath)
	if err != nil {
		err = errors.Wrap(err, "unable to read the server config file")
		return
	}

	err = yaml.Unmarshal(yamlStr, &ret)
	if err != nil {
		err = errors.Wrap(err, "unable to parse the YAML config")
		return
	}

	ret.applyEnvOverrides()

	return
}
