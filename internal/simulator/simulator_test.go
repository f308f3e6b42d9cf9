package simulator

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/appinit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpecFile(t *testing.T, dir, name, title, serverURL string) string {
	path := filepath.Join(dir, name)
	content := `{"info": {"title": "` + title + `"}, "servers": [{"url": "` + serverURL + `"}]}`
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestConfig(t *testing.T) *appinit.ServerInfo {
	dir, err := ioutil.TempDir("", "specs")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	return &appinit.ServerInfo{
		Authority: &appinit.ParticipantInfo{BaseURL: "http://127.0.0.1:1000"},
		Consumer:  &appinit.ParticipantInfo{BaseURL: "http://127.0.0.1:1100"},
		Provider:  &appinit.ParticipantInfo{BaseURL: "http://127.0.0.1:1200"},
		Device: &appinit.DeviceInfo{
			UserID:          "did:example:provider-user",
			UserToken:       "provider-secret",
			ParticipantType: "Provider",
			APIEndpoint:     "https://jsonplaceholder.typicode.com/todos",
			Catalog: &appinit.CatalogInfo{
				CatalogID:      "rainbow-catalog",
				DatasetID:      "rainbow-dataset",
				DistributionID: "rainbow-distribution",
				DataServiceID:  "rainbow-data-service",
			},
			AuthSpecPath:    writeSpecFile(t, dir, "auth.json", "Auth Provider API", "http://127.0.0.1:1000"),
			CatalogSpecPath: writeSpecFile(t, dir, "catalog.json", "Catalog Provider API", "http://127.0.0.1:1200"),
		},
	}
}

func TestAuthenticateMintsAStableMockToken(t *testing.T) {
	sim, err := NewSimulator(newTestConfig(t))
	require.NoError(t, err)

	token := sim.Authenticate()
	assert.True(t, strings.HasPrefix(token, "mock-token-"))
	assert.Equal(t, token, sim.Authenticate())
}

func TestBuildPayloadMergesCallerMeasurements(t *testing.T) {
	sim, err := NewSimulator(newTestConfig(t))
	require.NoError(t, err)

	payload := sim.BuildPayload(map[string]interface{}{"temperature": 99.9, "pressure": 1013.0})

	data, ok := payload["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 99.9, data["temperature"])
	assert.Equal(t, 1013.0, data["pressure"])
	// The randomized default survives when the caller doesn't override it.
	humidity, ok := data["humidity"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, humidity, 40.0)
	assert.LessOrEqual(t, humidity, 60.0)

	assert.Equal(t, "did:example:provider-user", payload["device_user"])
	assert.Equal(t, "Provider", payload["participant_type"])
	assert.NotEmpty(t, payload["measured_at"])
}

func TestTransmitAssemblesTheEnvelopeAndRemembersIt(t *testing.T) {
	sim, err := NewSimulator(newTestConfig(t))
	require.NoError(t, err)

	envelope, err := sim.Transmit(map[string]interface{}{"temperature": 21.5})
	require.NoError(t, err)

	assert.NotEmpty(t, envelope["auth_token"])

	catalogEntry, ok := envelope["catalog_entry"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "rainbow-catalog", catalogEntry["catalog"])
	assert.Equal(t, "Catalog Provider API", catalogEntry["spec_summary"])

	described := sim.Describe()
	assert.Equal(t, envelope, described["last_payload"])
	assert.Equal(t, "http://127.0.0.1:1000", described["auth_server"])
	assert.Equal(t, "http://127.0.0.1:1200", described["catalog_server"])
}

func TestDescribeReportsHostReachableURLs(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Consumer.HostBaseURL = "http://host.docker.internal:1100"
	cfg.Provider.HostBaseURL = "http://host.docker.internal:1200"

	sim, err := NewSimulator(cfg)
	require.NoError(t, err)

	described := sim.Describe()
	config, ok := described["config"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "http://host.docker.internal:1100", config["consumer_url"])
	assert.Equal(t, "http://host.docker.internal:1200", config["provider_url"])

	entry, err := sim.CatalogEntry()
	require.NoError(t, err)
	assert.Equal(t, "http://host.docker.internal:1200", entry["provider_url"])
}

func TestIngestionIDsAreUnique(t *testing.T) {
	sim, err := NewSimulator(newTestConfig(t))
	require.NoError(t, err)

	a := sim.IngestionID()
	b := sim.IngestionID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestSpecCacheRejectsUnknownSpecs(t *testing.T) {
	cache := NewSpecCache(map[string]string{})

	_, err := cache.Title("auth")
	assert.Error(t, err)
}

func TestSpecCacheParsesEachFileOnce(t *testing.T) {
	dir, err := ioutil.TempDir("", "speccache")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := writeSpecFile(t, dir, "auth.json", "Auth Provider API", "http://127.0.0.1:1000")
	cache := NewSpecCache(map[string]string{"auth": path})

	title, err := cache.Title("auth")
	require.NoError(t, err)
	assert.Equal(t, "Auth Provider API", title)

	// Deleting the file is invisible once the document is cached.
	require.NoError(t, os.Remove(path))

	server, err := cache.DefaultServer("auth")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:1000", server)
}
