package domain

import "strings"

// FileType represents the allowed image types for upload.
type FileType string

const (
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg": FileTypeJPG,
	"image/png":  FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// Confidence is the model's self-reported transcription confidence.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ParseConfidence normalizes a raw confidence value. Unknown or empty
// values map to ConfidenceLow.
func ParseConfidence(s string) Confidence {
	switch Confidence(strings.ToLower(strings.TrimSpace(s))) {
	case ConfidenceMedium:
		return ConfidenceMedium
	case ConfidenceHigh:
		return ConfidenceHigh
	default:
		return ConfidenceLow
	}
}

// PostStatus represents the lifecycle of a verse post.
type PostStatus string

const (
	PostStatusQueued        PostStatus = "queued"
	PostStatusProcessing    PostStatus = "processing"
	PostStatusFormatted     PostStatus = "formatted"
	PostStatusParseFailed   PostStatus = "parse_failed"
	PostStatusPublished     PostStatus = "published"
	PostStatusPublishFailed PostStatus = "publish_failed"
)

// ValidPostStatuses lists the statuses accepted as list filters.
var ValidPostStatuses = map[PostStatus]bool{
	PostStatusQueued:        true,
	PostStatusProcessing:    true,
	PostStatusFormatted:     true,
	PostStatusParseFailed:   true,
	PostStatusPublished:     true,
	PostStatusPublishFailed: true,
}
