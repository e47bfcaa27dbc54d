package pipeline

import (
	"fmt"
	"log"
	"strings"

	"versepin/internal/domain"
)

// FormattedPost is the publish-ready record produced by the pipeline.
// Title and Description are never empty; AltText may be.
type FormattedPost struct {
	Title       string
	Description string
	AltText     string
	Confidence  domain.Confidence
}

// Formatter applies per-field formatting rules and branding fallbacks to a
// projected mapping.
type Formatter struct {
	branding Branding
}

// NewFormatter creates a Formatter with the given branding.
func NewFormatter(branding Branding) *Formatter {
	return &Formatter{branding: branding}
}

// Format turns a projected mapping into a FormattedPost. Missing fields
// degrade to branded defaults with a logged warning; a recognized field
// holding a non-string, non-null value is ErrUnexpectedFieldType.
func (f *Formatter) Format(projected map[string]interface{}) (*FormattedPost, error) {
	title, err := stringField(projected, "title")
	if err != nil {
		return nil, err
	}
	verseMalayalam, err := stringField(projected, "extracted_bible_verse_malayalam")
	if err != nil {
		return nil, err
	}
	verseEnglish, err := stringField(projected, "bible_verse_english_translation")
	if err != nil {
		return nil, err
	}
	altText, err := stringField(projected, "alternative_text_for_main_content")
	if err != nil {
		return nil, err
	}
	confidence, err := stringField(projected, "confidence_level")
	if err != nil {
		return nil, err
	}

	return &FormattedPost{
		Title:       f.formatTitle(title),
		Description: f.formatDescription(verseMalayalam, verseEnglish),
		AltText:     strings.TrimSpace(altText),
		Confidence:  f.formatConfidence(confidence),
	}, nil
}

func (f *Formatter) formatTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		log.Printf("pipeline: warning: title is missing in the response")
		return f.branding.DefaultTitle
	}
	return trimmed + " | " + f.branding.BrandName
}

// formatDescription requires both the Malayalam verse and its English
// translation; either missing falls back to the branded default sentence.
func (f *Formatter) formatDescription(verseMalayalam, verseEnglish string) string {
	ml := strings.TrimSpace(verseMalayalam)
	en := strings.TrimSpace(verseEnglish)
	if ml == "" || en == "" {
		log.Printf("pipeline: warning: bible verse information is missing in the response")
		return f.branding.DefaultDescription
	}
	return ml + "\n\n" + "English: " + en + f.branding.PromoSuffix
}

func (f *Formatter) formatConfidence(raw string) domain.Confidence {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		log.Printf("pipeline: warning: confidence level is missing in the response")
		return domain.ConfidenceLow
	}
	c := domain.ParseConfidence(trimmed)
	if !strings.EqualFold(trimmed, string(c)) {
		log.Printf("pipeline: warning: unrecognized confidence level %q, using %q", trimmed, c)
	}
	return c
}

// stringField extracts a projected value as a string. Null and absent both
// yield ""; any other non-string type is a hard error rather than a
// swallowed panic.
func stringField(projected map[string]interface{}, key string) (string, error) {
	val, ok := projected[key]
	if !ok || val == nil {
		return "", nil
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is %T", ErrUnexpectedFieldType, key, val)
	}
	return s, nil
}
