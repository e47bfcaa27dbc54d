// Package export renders post history as CSV for download.
package export

import (
	"encoding/csv"
	"io"
	"time"

	"versepin/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first so Excel on Windows
// renders Malayalam text correctly.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"File Name",
	"Status",
	"Title",
	"Description",
	"Alt Text",
	"Confidence",
	"Model",
	"Pin ID",
	"Pin URL",
	"Error",
	"Formatted At",
	"Published At",
	"Created At",
}

// Writer wraps csv.Writer for exporting posts as CSV.
type Writer struct {
	out io.Writer
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w, csv: csv.NewWriter(w)}
}

// WriteHeader writes the BOM and the header row.
func (w *Writer) WriteHeader() error {
	if _, err := w.out.Write(BOM); err != nil {
		return err
	}
	return w.csv.Write(columns)
}

// WritePost writes one post as a CSV row.
func (w *Writer) WritePost(post *domain.Post) error {
	return w.csv.Write([]string{
		post.FileName,
		string(post.Status),
		post.Title,
		post.Description,
		post.AltText,
		string(post.Confidence),
		post.ModelUsed,
		post.PinID,
		post.PinURL,
		post.ErrorText,
		formatTime(post.FormattedAt),
		formatTime(post.PublishedAt),
		post.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Flush flushes buffered rows and reports any write error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
