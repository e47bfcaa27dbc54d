// Package pipeline turns an untrusted vision-model answer into a strictly
// shaped, publish-ready post record. Stages run in a fixed order (sanitize,
// parse, project, format), each pure and called once per input.
package pipeline

import (
	"fmt"
	"strings"
)

// Pipeline normalizes raw model output into a FormattedPost.
type Pipeline struct {
	formatter *Formatter
}

// New creates a Pipeline with the given branding.
func New(branding Branding) *Pipeline {
	return &Pipeline{formatter: NewFormatter(branding)}
}

// Run executes the full normalization chain on a raw model answer.
// The outcome is tagged: a *FormattedPost on success, ErrMalformedPayload
// when the answer cannot be decoded, ErrUnexpectedFieldType when a
// recognized field has the wrong shape. A failed run is fatal for this
// input only; the caller decides whether to retry with fresh raw output.
func (p *Pipeline) Run(raw string) (*FormattedPost, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty model output", ErrMalformedPayload)
	}

	cleaned := Sanitize(raw)

	payload, err := parsePayload(cleaned, raw)
	if err != nil {
		return nil, err
	}

	return p.formatter.Format(projectFields(payload))
}
