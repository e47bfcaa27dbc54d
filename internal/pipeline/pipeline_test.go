package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versepin/internal/domain"
	"versepin/internal/pipeline"
)

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(pipeline.TrinityBranding())
}

func TestRun_FencedResponseWithTrailingComma(t *testing.T) {
	raw := "```json\n" +
		`{
  "contains_malayalam": true,
  "title": "John 3:16",
  "extracted_bible_verse_malayalam": "daivam",
  "bible_verse_english_translation": "God",
  "alternative_text_for_main_content": "verse artwork",
  "confidence_level": "high",
  "notes": "clear text",
}` + "\n```"

	post, err := newPipeline().Run(raw)
	require.NoError(t, err)

	assert.Equal(t, "John 3:16 | Trinity Catholic Media", post.Title)
	assert.Equal(t, "daivam\n\nEnglish: God"+promoSuffix, post.Description)
	assert.Equal(t, "verse artwork", post.AltText)
	assert.Equal(t, domain.ConfidenceHigh, post.Confidence)
}

func TestRun_UnrecognizedKeysAreDropped(t *testing.T) {
	raw := `{"contains_malayalam": false, "notes": "nothing readable", "unexpected": "key"}`

	post, err := newPipeline().Run(raw)
	require.NoError(t, err)

	// All recognized keys were absent; every field degrades to its default.
	assert.Equal(t, "Trinity Catholic Media", post.Title)
	assert.Equal(t, defaultDescription, post.Description)
	assert.Empty(t, post.AltText)
	assert.Equal(t, domain.ConfidenceLow, post.Confidence)
}

func TestRun_EmptyInputIsParseFailure(t *testing.T) {
	_, err := newPipeline().Run("")
	assert.ErrorIs(t, err, pipeline.ErrMalformedPayload)
}

func TestRun_NonJSONIsParseFailure(t *testing.T) {
	_, err := newPipeline().Run("The image contains no Malayalam text.")
	assert.ErrorIs(t, err, pipeline.ErrMalformedPayload)
}

func TestRun_JSONScalarIsParseFailure(t *testing.T) {
	// A decoded non-object must not collapse into an empty result.
	for _, raw := range []string{"null", "42", `"a string"`, `["an", "array"]`} {
		_, err := newPipeline().Run(raw)
		assert.ErrorIs(t, err, pipeline.ErrMalformedPayload, "input=%s", raw)
	}
}

func TestRun_BadFieldTypeIsDistinctFromParseFailure(t *testing.T) {
	_, err := newPipeline().Run(`{"title": 7}`)
	assert.ErrorIs(t, err, pipeline.ErrUnexpectedFieldType)
	assert.NotErrorIs(t, err, pipeline.ErrMalformedPayload)
}

func TestRun_BothFenceVariantsEquivalentToUnwrapped(t *testing.T) {
	body := `{"title": "Psalm 23", "extracted_bible_verse_malayalam": "karthavu", "bible_verse_english_translation": "The Lord"}`

	unwrapped, err := newPipeline().Run(body)
	require.NoError(t, err)

	for _, wrapped := range []string{
		"```json\n" + body + "\n```",
		"```\n" + body + "\n```",
	} {
		post, err := newPipeline().Run(wrapped)
		require.NoError(t, err)
		assert.Equal(t, unwrapped, post)
	}
}
