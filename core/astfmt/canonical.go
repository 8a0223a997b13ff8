package astfmt

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// MarshalBinary produces the deterministic CBOR encoding of the document.
// The same document always yields the same bytes, across runs and builds.
func (d *Document) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	// Type alias so CBOR does not call MarshalBinary recursively.
	type documentAlias Document
	alias := (*documentAlias)(d)

	data, err := encMode.Marshal(alias)
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// UnmarshalBinary decodes a canonical CBOR document. The nesting limit is
// raised above the decoder default because command sequences nest one level
// per statement.
func UnmarshalBinary(data []byte) (*Document, error) {
	decMode, err := cbor.DecOptions{MaxNestedLevels: 65535}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR decoder: %w", err)
	}

	var doc Document
	if err := decMode.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("CBOR decoding failed: %w", err)
	}
	return &doc, nil
}

// Hash computes the SHA-256 hash of the canonical encoding.
func (d *Document) Hash() ([32]byte, error) {
	data, err := d.MarshalBinary()
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}

// Fingerprint renders the hash as lowercase hex, the form shown by the CLI
// and compared in tests.
func (d *Document) Fingerprint() (string, error) {
	h, err := d.Hash()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h), nil
}

// EncodeJSON renders the document as indented JSON. The output always passes
// ValidateJSON.
func (d *Document) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("JSON encoding failed: %w", err)
	}
	return data, nil
}

// DecodeJSON parses and validates a JSON document.
func DecodeJSON(data []byte) (*Document, error) {
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("JSON decoding failed: %w", err)
	}
	return &doc, nil
}
