package port

import "context"

// EmailSender abstracts operator notifications for pipeline failures.
type EmailSender interface {
	SendParseFailureNotice(ctx context.Context, postID, fileName, reason string) error
	SendPublishFailureNotice(ctx context.Context, postID, fileName, reason string) error
}
