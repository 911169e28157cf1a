package invoices

import (
	"encoding/json"
	"fmt"
)

type storedPayload struct {
	Data   InvoiceData `json:"data"`
	Totals Totals      `json:"totals"`
}

// encodePayload serialises the invoice document and its totals snapshot to
// the stored text form.
func encodePayload(data InvoiceData, totals Totals) (string, error) {
	out, err := json.Marshal(storedPayload{Data: data, Totals: totals})
	if err != nil {
		return "", fmt.Errorf("encode invoice payload: %w", err)
	}
	return string(out), nil
}

// payloadText returns the text form to persist for a record. A preserved
// undecodable payload is written back verbatim so a label-only rewrite
// never replaces it with an encoded zero-value document.
func payloadText(inv Invoice) (string, error) {
	if inv.RawPayload != "" {
		return inv.RawPayload, nil
	}
	return encodePayload(inv.Payload, inv.Totals)
}

// decodePayload parses the stored text form. A payload that no longer
// decodes is not an error: the raw text is carried through unchanged so the
// record stays readable.
func decodePayload(text string) (InvoiceData, Totals, string) {
	var p storedPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return InvoiceData{}, Totals{}, text
	}
	return p.Data, p.Totals, ""
}
