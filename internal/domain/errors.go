package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrPostNotFound        = errors.New("post not found")
	ErrPostNotFormatted    = errors.New("post has no formatted content yet")
	ErrAlreadyPublished    = errors.New("post has already been published")
	ErrLowConfidence       = errors.New("transcription confidence below publish threshold")
)
