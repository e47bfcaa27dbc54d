package noop

import (
	"context"
	"log"

	"versepin/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notices to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendParseFailureNotice(_ context.Context, postID, fileName, reason string) error {
	log.Printf("[NOOP EMAIL] parse failure for post %s (%s): %s", postID, fileName, reason)
	return nil
}

func (s *noopSender) SendPublishFailureNotice(_ context.Context, postID, fileName, reason string) error {
	log.Printf("[NOOP EMAIL] publish failure for post %s (%s): %s", postID, fileName, reason)
	return nil
}
