package pinterest

import (
	"fmt"
	"os"
	"strings"
)

// MaxTags is the Pinterest limit on tags per pin.
const MaxTags = 20

// PinRecord holds everything needed to create one pin. It must pass
// Validate before any request is issued.
type PinRecord struct {
	BoardID     string
	ImagePath   string
	Title       string
	Description string
	AltText     string
	Tags        []string
	AccessToken string
}

// FieldViolation describes a single failed constraint on a PinRecord field.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError aggregates every violation found in one Validate pass so
// the caller sees the full picture, not just the first failure.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "pin record validation failed: " + strings.Join(parts, "; ")
}

// Validate normalizes the record (trimming string fields and tags) and
// checks every constraint the Pinterest API enforces, plus that the image
// file actually exists and is readable. It returns a *ValidationError
// enumerating all violations, or nil. This is the last gate before a
// network call that spends rate-limit budget.
func (r *PinRecord) Validate() error {
	var violations []FieldViolation
	add := func(field, msg string) {
		violations = append(violations, FieldViolation{Field: field, Message: msg})
	}

	r.BoardID = strings.TrimSpace(r.BoardID)
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.AltText = strings.TrimSpace(r.AltText)
	r.AccessToken = strings.TrimSpace(r.AccessToken)
	r.ImagePath = strings.TrimSpace(r.ImagePath)

	if r.ImagePath == "" {
		add("image_path", "field cannot be empty")
	} else if info, err := os.Stat(r.ImagePath); err != nil {
		add("image_path", fmt.Sprintf("image file not found: %s", r.ImagePath))
	} else if !info.Mode().IsRegular() {
		add("image_path", fmt.Sprintf("path is not a file: %s", r.ImagePath))
	} else if f, err := os.Open(r.ImagePath); err != nil {
		add("image_path", fmt.Sprintf("cannot read image file: %s", r.ImagePath))
	} else {
		_ = f.Close()
	}

	required := []struct {
		field string
		value string
	}{
		{"board_id", r.BoardID},
		{"title", r.Title},
		{"description", r.Description},
		{"alt_text", r.AltText},
		{"access_token", r.AccessToken},
	}
	for _, f := range required {
		if f.value == "" {
			add(f.field, "field cannot be empty")
		}
	}

	if len(r.Tags) > MaxTags {
		add("tags", fmt.Sprintf("too many tags (max %d)", MaxTags))
	}
	for i, tag := range r.Tags {
		r.Tags[i] = strings.TrimSpace(tag)
		if r.Tags[i] == "" {
			add("tags", "tags cannot be empty")
			break
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
