// Package setup performs the one-time provider-side registration the
// handshake depends on: the asset, the policy definition granting USE on it
// and the contract definition tying the two together. The sequence is
// strictly linear and carries no decision logic; it only needs to run once
// per provider deployment, and re-running it against an already-registered
// provider is the provider's problem to deduplicate.
package setup

import (
	"net/http"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/appinit"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/gateway"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Registrar registers the static provider-side configuration.
type Registrar struct {
	Gateway *gateway.Gateway
	Config  *appinit.ServerInfo
}

// RegisterAll creates the asset, the policy definition and the contract
// definition on the provider's management API, in that order.
func (r *Registrar) RegisterAll() error {
	if err := r.registerAsset(); err != nil {
		return err
	}
	if err := r.registerPolicy(); err != nil {
		return err
	}
	if err := r.registerContractDefinition(); err != nil {
		return err
	}

	log.Infoln("Provider setup completed")
	return nil
}

func (r *Registrar) registerAsset() error {
	ds := r.Config.Dataspace

	body := map[string]interface{}{
		"assetId": ds.AssetID,
		"properties": map[string]interface{}{
			"description": "IoT telemetry stream",
		},
		"dataAddress": map[string]interface{}{
			"type":     "HttpData",
			"endpoint": ds.TelemetryEndpoint,
		},
	}

	return r.post("/v3/assets", body, "asset")
}

func (r *Registrar) registerPolicy() error {
	ds := r.Config.Dataspace

	permissions := make([]interface{}, 0, len(ds.Permissions))
	for _, action := range ds.Permissions {
		permissions = append(permissions, map[string]interface{}{
			"edctype": "dataspaceconnector:permission",
			"target":  ds.AssetID,
			"action":  map[string]interface{}{"type": action},
		})
	}

	body := map[string]interface{}{
		"id":          ds.OfferID,
		"permissions": permissions,
	}

	return r.post("/v2/policydefinitions", body, "policy definition")
}

func (r *Registrar) registerContractDefinition() error {
	ds := r.Config.Dataspace

	body := map[string]interface{}{
		"id":               ds.ContractID,
		"accessPolicyId":   ds.OfferID,
		"contractPolicyId": ds.OfferID,
		"criteria": []interface{}{
			map[string]interface{}{
				"operandLeft":  "assetId",
				"operator":     "=",
				"operandRight": ds.AssetID,
			},
		},
	}

	return r.post("/v2/contractdefinitions", body, "contract definition")
}

func (r *Registrar) post(path string, body interface{}, what string) error {
	resp, err := r.Gateway.Call(http.MethodPost, r.Config.Provider.BaseURL+path, body)
	if err != nil {
		return errors.Wrapf(err, "unable to register the %v", what)
	}
	if !resp.OK() {
		return errors.Errorf("registering the %v answered status %v: %v", what, resp.StatusCode, resp.RawBody)
	}

	log.WithField("status", resp.StatusCode).Infof("Registered the %v", what)
	return nil
}
