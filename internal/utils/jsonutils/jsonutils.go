package jsonutils

import (
	"fmt"
	"strings"

	"github.com/rainbow-dataspace/handshake-orchestrator/pkg/errorcode"

	"github.com/mitchellh/mapstructure"
)

// ExtractID locates the identifier a connector assigned to a created
// resource. Different connector generations name the field differently
// (`id`, `@id`, `processId`, `did`, ...), so the caller supplies the
// candidate keys it accepts, in priority order. The scan is by key presence
// only, never by value type, and the first present candidate wins even when a
// later one is also present.
func ExtractID(response interface{}, candidateKeys []string) (string, error) {
	obj, ok := response.(map[string]interface{})
	if !ok {
		return "", &errorcode.MissingIdentifierError{CandidateKeys: candidateKeys}
	}

	for _, key := range candidateKeys {
		raw, present := obj[key]
		if !present {
			continue
		}

		id, ok := raw.(string)
		if !ok || strings.TrimSpace(id) == "" {
			// A present but empty/non-string candidate must never be
			// propagated into the next phase.
			return "", &errorcode.MissingIdentifierError{CandidateKeys: candidateKeys}
		}

		return strings.TrimSpace(id), nil
	}

	return "", &errorcode.MissingIdentifierError{CandidateKeys: candidateKeys}
}

// DecodeLoose decodes a loose map (as produced by the gateway's JSON
// decoding) into a typed struct, tolerating weakly typed inputs the way
// connector responses require.
func DecodeLoose(input interface{}, output interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("unable to build decoder: %v", err)
	}

	return decoder.Decode(input)
}

// NormalizeURI accepts a value that is either a bare string or an object
// wrapping the string under one of `candidateKeys`, and returns the trimmed
// string. An empty result is reported as ("", false); callers decide how
// fatal that is.
func NormalizeURI(value interface{}, candidateKeys []string) (string, bool) {
	switch v := value.(type) {
	case string:
		uri := strings.TrimSpace(v)
		return uri, uri != ""
	case map[string]interface{}:
		uri, err := ExtractID(v, candidateKeys)
		if err != nil {
			return "", false
		}
		return uri, true
	default:
		return "", false
	}
}
