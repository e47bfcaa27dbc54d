package pipeline

import "strings"

// fenceMarkers are checked in order; the longer variant first so a
// "```json" opener is not left half-stripped by the bare "```" pass.
var fenceMarkers = []string{"```json", "```"}

// Sanitize strips markdown code-fence wrappers and repairs trailing commas
// before a closing brace or bracket. It performs no validation: input that
// is not JSON passes through with only these two transformations applied.
func Sanitize(raw string) string {
	cleaned := strings.TrimSpace(raw)

	for _, marker := range fenceMarkers {
		if strings.HasPrefix(cleaned, marker) {
			cleaned = cleaned[len(marker):]
		}
		if strings.HasSuffix(cleaned, marker) {
			cleaned = cleaned[:len(cleaned)-len(marker)]
		}
	}

	cleaned = strings.TrimSpace(cleaned)

	// Trailing commas are the most common Gemini defect. This is a single
	// textual substitution, not a grammar-aware repair.
	cleaned = strings.ReplaceAll(cleaned, ",\n}", "\n}")
	cleaned = strings.ReplaceAll(cleaned, ",\n]", "\n]")

	return cleaned
}
