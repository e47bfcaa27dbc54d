package pipeline

import (
	"encoding/json"
	"fmt"
	"log"
)

// parsePayload decodes a sanitized model answer into a generic mapping.
// The original unsanitized text is logged on failure so an operator can see
// exactly what the model produced. Never panics; malformed input yields
// ErrMalformedPayload.
func parsePayload(cleaned, original string) (map[string]interface{}, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		log.Printf("pipeline: error parsing model JSON: %v\nraw output was:\n%s", err, original)
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload == nil {
		// "null" decodes into a nil map without error.
		log.Printf("pipeline: model returned JSON null\nraw output was:\n%s", original)
		return nil, fmt.Errorf("%w: payload is null", ErrMalformedPayload)
	}
	return payload, nil
}
