package jsonutils

import (
	"errors"
	"testing"

	"github.com/rainbow-dataspace/handshake-orchestrator/pkg/errorcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIDHonorsCandidateOrder(t *testing.T) {
	response := map[string]interface{}{
		"id":  "plain-id",
		"@id": "at-id",
	}

	id, err := ExtractID(response, []string{"id", "@id"})
	require.NoError(t, err)
	assert.Equal(t, "plain-id", id)

	id, err = ExtractID(response, []string{"@id", "id"})
	require.NoError(t, err)
	assert.Equal(t, "at-id", id)
}

func TestExtractIDSkipsAbsentCandidates(t *testing.T) {
	response := map[string]interface{}{"processId": "proc-7"}

	id, err := ExtractID(response, []string{"@id", "id", "processId"})
	require.NoError(t, err)
	assert.Equal(t, "proc-7", id)
}

func TestExtractIDFailsWhenNoCandidatePresent(t *testing.T) {
	response := map[string]interface{}{"name": "not an id"}

	_, err := ExtractID(response, []string{"id", "@id"})
	require.Error(t, err)

	var missingErr *errorcode.MissingIdentifierError
	assert.True(t, errors.As(err, &missingErr))
}

func TestExtractIDRejectsEmptyOrNonStringValues(t *testing.T) {
	_, err := ExtractID(map[string]interface{}{"id": "   "}, []string{"id"})
	assert.Error(t, err)

	_, err = ExtractID(map[string]interface{}{"id": 42.0}, []string{"id"})
	assert.Error(t, err)
}

func TestExtractIDRejectsNonObjectResponses(t *testing.T) {
	_, err := ExtractID([]interface{}{"id"}, []string{"id"})
	assert.Error(t, err)

	_, err = ExtractID(nil, []string{"id"})
	assert.Error(t, err)
}

func TestExtractIDTrimsWhitespace(t *testing.T) {
	id, err := ExtractID(map[string]interface{}{"did": " did:example:auth \n"}, []string{"did"})
	require.NoError(t, err)
	assert.Equal(t, "did:example:auth", id)
}

func TestNormalizeURIAcceptsBareAndWrappedShapes(t *testing.T) {
	bare, ok := NormalizeURI("  abc123 ", []string{"uri"})
	require.True(t, ok)

	wrapped, ok2 := NormalizeURI(map[string]interface{}{"uri": "abc123"}, []string{"uri"})
	require.True(t, ok2)

	assert.Equal(t, "abc123", bare)
	assert.Equal(t, bare, wrapped)
}

func TestNormalizeURIRejectsEmptyAndUnknownShapes(t *testing.T) {
	_, ok := NormalizeURI("   ", []string{"uri"})
	assert.False(t, ok)

	_, ok = NormalizeURI(map[string]interface{}{"other": "abc"}, []string{"uri"})
	assert.False(t, ok)

	_, ok = NormalizeURI(nil, []string{"uri"})
	assert.False(t, ok)

	_, ok = NormalizeURI(3.14, []string{"uri"})
	assert.False(t, ok)
}

func TestDecodeLooseToleratesWeakTypes(t *testing.T) {
	var out struct {
		ID    string `json:"id"`
		Count int    `json:"count"`
	}

	err := DecodeLoose(map[string]interface{}{"id": "req-1", "count": "3"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "req-1", out.ID)
	assert.Equal(t, 3, out.Count)
}
