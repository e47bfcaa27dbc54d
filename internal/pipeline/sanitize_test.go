package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"versepin/internal/pipeline"
)

func TestSanitize_StripsJSONFence(t *testing.T) {
	raw := "```json\n{\"title\": \"John 3:16\"}\n```"
	assert.Equal(t, "{\"title\": \"John 3:16\"}", pipeline.Sanitize(raw))
}

func TestSanitize_StripsBareFence(t *testing.T) {
	raw := "```\n{\"title\": \"John 3:16\"}\n```"
	assert.Equal(t, "{\"title\": \"John 3:16\"}", pipeline.Sanitize(raw))
}

func TestSanitize_MismatchedFenceEnds(t *testing.T) {
	// Opening and closing markers are stripped independently; they need not
	// be the same variant.
	raw := "```json\n{\"a\": 1}\n```"
	unwrapped := "{\"a\": 1}"
	assert.Equal(t, pipeline.Sanitize(unwrapped), pipeline.Sanitize(raw))
}

func TestSanitize_RemovesTrailingCommaBeforeBrace(t *testing.T) {
	raw := "```json\n{\"title\": \"John 3:16\",\n}\n```"
	assert.Equal(t, "{\"title\": \"John 3:16\"\n}", pipeline.Sanitize(raw))
}

func TestSanitize_RemovesTrailingCommaBeforeBracket(t *testing.T) {
	raw := "[\"a\",\n]"
	assert.Equal(t, "[\"a\"\n]", pipeline.Sanitize(raw))
}

func TestSanitize_EmptyInput(t *testing.T) {
	assert.Equal(t, "", pipeline.Sanitize(""))
	assert.Equal(t, "", pipeline.Sanitize("   \n\t"))
}

func TestSanitize_PassthroughWithoutFences(t *testing.T) {
	raw := "{\"title\": \"Psalm 23\"}"
	assert.Equal(t, raw, pipeline.Sanitize(raw))
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"title\": \"John 3:16\",\n}\n```",
		"{\"title\": \"Psalm 23\"}",
		"not json at all",
		"",
	}
	for _, in := range inputs {
		once := pipeline.Sanitize(in)
		assert.Equal(t, once, pipeline.Sanitize(once))
	}
}

func TestSanitize_NonJSONPassesThrough(t *testing.T) {
	// No validation happens at this stage.
	raw := "The image contains no Malayalam text."
	assert.Equal(t, raw, pipeline.Sanitize(raw))
}
