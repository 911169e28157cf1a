package receipts

import (
	"encoding/json"
	"fmt"
)

// encodePayload serialises the payload to the stored text form.
func encodePayload(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode receipt payload: %w", err)
	}
	return string(data), nil
}

// payloadText returns the text form to persist for a record. A preserved
// undecodable payload is written back verbatim so a label-only rewrite
// never replaces it with an encoded zero-value document.
func payloadText(rec Receipt) (string, error) {
	if rec.RawPayload != "" {
		return rec.RawPayload, nil
	}
	return encodePayload(rec.Payload)
}

// decodePayload parses the stored text form. A payload that no longer
// decodes is not an error: the raw text is carried through unchanged so the
// record stays readable.
func decodePayload(text string) (Payload, string) {
	var p Payload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return Payload{}, text
	}
	return p, ""
}
