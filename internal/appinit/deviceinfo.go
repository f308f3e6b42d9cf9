package appinit

import "os"

// CatalogInfo mirrors the catalog entry registered on the provider side.
type CatalogInfo struct {
	CatalogID      string `yaml:"catalogId"`
	DatasetID      string `yaml:"datasetId"`
	DistributionID string `yaml:"distributionId"`
	DataServiceID  string `yaml:"dataServiceId"`
}

// DeviceInfo is the simulated telemetry device's identity and defaults. The
// RAINBOW_* environment variables override the file values, matching how the
// device is configured in deployment.
type DeviceInfo struct {
	UserID          string       `yaml:"userId"`
	UserToken       string       `yaml:"userToken"`
	ParticipantType string       `yaml:"participantType"`
	APIEndpoint     string       `yaml:"apiEndpoint"`
	Catalog         *CatalogInfo `yaml:"catalog"`
	AuthSpecPath    string       `yaml:"authSpecPath"`
	CatalogSpecPath string       `yaml:"catalogSpecPath"`
}

func (s *ServerInfo) applyEnvOverrides() {
	if s.Device == nil {
		s.Device = &DeviceInfo{}
	}

	if v := os.Getenv("RAINBOW_USER_ID"); v != "" {
		s.Device.UserID = v
	}
	if v := os.Getenv("RAINBOW_USER_TOKEN"); v != "" {
		s.Device.UserToken = v
	}
	if v := os.Getenv("RAINBOW_PARTICIPANT_TYPE"); v != "" {
		s.Device.ParticipantType = v
	}

	if s.Device.UserID == "" {
		s.Device.UserID = "did:example:provider-user"
	}
	if s.Device.UserToken == "" {
		s.Device.UserToken = "provider-secret"
	}
	if s.Device.ParticipantType == "" {
		s.Device.ParticipantType = "Provider"
	}
	if s.Device.Catalog == nil {
		s.Device.Catalog = &CatalogInfo{
			CatalogID:      "rainbow-catalog",
			DatasetID:      "rainbow-dataset",
			DistributionID: "rainbow-distribution",
			DataServiceID:  "rainbow-data-service",
		}
	}
}
