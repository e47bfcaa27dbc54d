package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post represents one verse image moving through the pipeline, from upload
// to published pin.
type Post struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	FileName       string     `db:"file_name" json:"file_name"`
	ContentType    string     `db:"content_type" json:"content_type"`
	SizeBytes      int64      `db:"size_bytes" json:"size_bytes"`
	S3Bucket       string     `db:"s3_bucket" json:"-"`
	S3Key          string     `db:"s3_key" json:"-"`
	Status         PostStatus `db:"status" json:"status"`
	RawModelOutput string     `db:"raw_model_output" json:"raw_model_output,omitempty"`
	ModelUsed      string     `db:"model_used" json:"model_used,omitempty"`
	Title          string     `db:"title" json:"title,omitempty"`
	Description    string     `db:"description" json:"description,omitempty"`
	AltText        string     `db:"alt_text" json:"alt_text,omitempty"`
	Confidence     Confidence `db:"confidence" json:"confidence,omitempty"`
	PinID          string     `db:"pin_id" json:"pin_id,omitempty"`
	PinURL         string     `db:"pin_url" json:"pin_url,omitempty"`
	ErrorText      string     `db:"error_text" json:"error_text,omitempty"`
	FormattedAt    *time.Time `db:"formatted_at" json:"formatted_at,omitempty"`
	PublishedAt    *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
