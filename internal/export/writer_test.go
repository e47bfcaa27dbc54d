package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versepin/internal/domain"
	"versepin/internal/export"
)

func TestWriter_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewWriter(&buf)

	require.NoError(t, w.WriteHeader())

	published := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	post := &domain.Post{
		FileName:    "verse.jpg",
		Status:      domain.PostStatusPublished,
		Title:       "John 3:16 | Trinity Catholic Media",
		Description: "daivam",
		AltText:     "verse artwork",
		Confidence:  domain.ConfidenceHigh,
		ModelUsed:   "gemini-2.5-flash",
		PinID:       "pin-42",
		PinURL:      "https://www.pinterest.com/pin/pin-42/",
		PublishedAt: &published,
		CreatedAt:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, w.WritePost(post))
	require.NoError(t, w.Flush())

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, export.BOM), "output must start with UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(out[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "File Name", records[0][0])
	assert.Equal(t, "verse.jpg", records[1][0])
	assert.Equal(t, "published", records[1][1])
	assert.Equal(t, "pin-42", records[1][7])
	assert.Equal(t, "2025-06-01T10:30:00Z", records[1][11])
}

func TestWriter_EmptyTimestamps(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WritePost(&domain.Post{
		FileName:  "pending.jpg",
		Status:    domain.PostStatusQueued,
		CreatedAt: time.Now(),
	}))
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "", records[1][10])
	assert.Equal(t, "", records[1][11])
}
