package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableForKnownGenerations(t *testing.T) {
	for _, gen := range []Generation{GenerationV1, GenerationV2, GenerationV3} {
		table, err := TableFor(gen)
		require.NoError(t, err)
		assert.Equal(t, gen, table.Generation)
		assert.NotEmpty(t, table.OnboardPath)
		assert.NotEmpty(t, table.DIDKeys)
		assert.NotEmpty(t, table.NegotiationKeys)
		assert.NotEmpty(t, table.TransferKeys)
	}
}

func TestTableForUnknownGeneration(t *testing.T) {
	_, err := TableFor(Generation("v99"))
	assert.Error(t, err)
}

func TestGenerationDialectDifferences(t *testing.T) {
	v1, err := TableFor(GenerationV1)
	require.NoError(t, err)
	v3, err := TableFor(GenerationV3)
	require.NoError(t, err)

	assert.Equal(t, "providerId", v1.ProviderField)
	assert.Equal(t, "providerPid", v3.ProviderField)

	assert.Equal(t, OfferWithPermissions, v1.OfferForm)
	assert.Equal(t, AssetReference, v3.OfferForm)

	assert.False(t, v1.TransferStaticContract)
	assert.True(t, v3.TransferStaticContract)

	assert.Equal(t, "/api/v1/contract-negotiation/processes", v1.NegotiationPath)
	assert.Equal(t, "/transfers/rpc/setup-request", v3.TransferPath)
}

func TestApprovePath(t *testing.T) {
	v2, err := TableFor(GenerationV2)
	require.NoError(t, err)

	assert.Equal(t, "/v2/vc-request/req-42", v2.ApprovePath("req-42"))
}
