package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versepin/internal/config"
	"versepin/internal/port"
	gemini "versepin/internal/vision/gemini"
)

func newTestExtractor(serverURL string) *gemini.Extractor {
	cfg := &config.VisionConfig{
		Provider:     "gemini",
		APIKey:       "test-gemini-key",
		DefaultModel: "gemini-2.5-flash",
		TimeoutSecs:  30,
	}
	return gemini.NewExtractorWithEndpoint(cfg, serverURL)
}

func geminiSuccessResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role": "model",
					"parts": []map[string]interface{}{
						{"text": text},
					},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestExtract_Success(t *testing.T) {
	modelAnswer := "```json\n{\"title\": \"John 3:16\",\n}\n```"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		contents := reqBody["contents"].([]interface{})
		require.Len(t, contents, 1)
		msg := contents[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])

		parts := msg["parts"].([]interface{})
		require.Len(t, parts, 2)

		inlineData := parts[0].(map[string]interface{})["inline_data"].(map[string]interface{})
		assert.Equal(t, "image/jpeg", inlineData["mime_type"])
		assert.NotEmpty(t, inlineData["data"])

		textPart := parts[1].(map[string]interface{})
		assert.Contains(t, textPart["text"], "Malayalam")

		genConfig := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, "application/json", genConfig["responseMimeType"])

		_ = json.NewEncoder(w).Encode(geminiSuccessResponse(modelAnswer))
	}))
	defer server.Close()

	out, err := newTestExtractor(server.URL).Extract(context.Background(), port.ExtractInput{
		ImageBytes:  []byte("fake-jpeg-bytes"),
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)

	// The raw answer must come back verbatim; repair is the pipeline's job.
	assert.Equal(t, modelAnswer, out.RawText)
	assert.Equal(t, "gemini-2.5-flash", out.ModelUsed)
	assert.NotEmpty(t, out.PromptUsed)
}

func TestExtract_UnsupportedContentType(t *testing.T) {
	_, err := newTestExtractor("http://unused").Extract(context.Background(), port.ExtractInput{
		ImageBytes:  []byte("x"),
		ContentType: "application/pdf",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestExtract_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"message": "API key not valid"}}`))
	}))
	defer server.Close()

	_, err := newTestExtractor(server.URL).Extract(context.Background(), port.ExtractInput{
		ImageBytes:  []byte("x"),
		ContentType: "image/png",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestExtract_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	_, err := newTestExtractor(server.URL).Extract(context.Background(), port.ExtractInput{
		ImageBytes:  []byte("x"),
		ContentType: "image/jpeg",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
