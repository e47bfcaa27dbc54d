package port

import "context"

// ExtractInput carries the image handed to the vision model.
type ExtractInput struct {
	ImageBytes  []byte
	ContentType string
}

// ExtractOutput is the model's answer, untouched. RawText may contain
// markdown fences or broken JSON; normalization happens downstream.
type ExtractOutput struct {
	RawText    string
	ModelUsed  string
	PromptUsed string
}

// VerseExtractor abstracts the vision-model call that transcribes and
// translates a verse image.
type VerseExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
