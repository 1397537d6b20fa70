package localdoc

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/ben-ryder/headbase/models"
)

// Queued diffs are stored as CBOR: the keyasint struct tags produce compact
// binary rows, and decoding rejects unknown fields from future schema
// versions instead of silently dropping them.
var (
	diffEncMode cbor.EncMode
	diffDecMode cbor.DecMode
)

func init() {
	var err error
	diffEncMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("localdoc: cbor enc mode: %v", err))
	}
	diffDecMode, err = cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("localdoc: cbor dec mode: %v", err))
	}
}

func encodeDiff(diff models.DocumentDiff) ([]byte, error) {
	payload, err := diffEncMode.Marshal(diff)
	if err != nil {
		return nil, fmt.Errorf("encode diff: %w", err)
	}
	return payload, nil
}

func decodeDiff(payload []byte) (models.DocumentDiff, error) {
	var diff models.DocumentDiff
	if err := diffDecMode.Unmarshal(payload, &diff); err != nil {
		return models.DocumentDiff{}, fmt.Errorf("decode diff: %w", err)
	}
	return diff, nil
}
