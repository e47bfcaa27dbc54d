// Package pinterest implements pin creation against the Pinterest v5 API.
package pinterest

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"versepin/internal/config"
)

const defaultBaseURL = "https://api.pinterest.com/v5"

// UploadMode selects how the image is transmitted.
type UploadMode string

const (
	// UploadModeMultipart sends the image as a binary multipart part.
	UploadModeMultipart UploadMode = "multipart"
	// UploadModeBase64 sends the image base64-encoded inside the JSON body.
	UploadModeBase64 UploadMode = "base64"
)

// PinResult holds the identifiers returned by a successful pin upload.
type PinResult struct {
	ID  string
	URL string
}

// Client uploads pins to the Pinterest v5 API.
type Client struct {
	baseURL string
	mode    UploadMode
	client  *http.Client
}

// NewClient creates a Pinterest client from config.
func NewClient(cfg *config.PinterestConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithBaseURL creates a client pointing at a custom API base URL
// (for testing).
func NewClientWithBaseURL(cfg *config.PinterestConfig, baseURL string) *Client {
	return newClient(cfg, baseURL)
}

func newClient(cfg *config.PinterestConfig, baseURL string) *Client {
	mode := UploadMode(cfg.UploadMode)
	if mode != UploadModeMultipart {
		mode = UploadModeBase64
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		mode:    mode,
		client:  &http.Client{Timeout: timeout},
	}
}

// CreatePin uploads one pin. The record must already have passed Validate;
// CreatePin runs it again as a safety net so no unvalidated record ever
// reaches the wire.
func (c *Client) CreatePin(ctx context.Context, record *PinRecord) (*PinResult, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	var (
		req *http.Request
		err error
	)
	switch c.mode {
	case UploadModeMultipart:
		req, err = c.buildMultipartRequest(ctx, record)
	default:
		req, err = c.buildBase64Request(ctx, record)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+record.AccessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling pinterest API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("pinterest API error (status %d): %s", resp.StatusCode, apiErrorMessage(respBody))
	}

	return parsePinResponse(respBody)
}

func (c *Client) buildMultipartRequest(ctx context.Context, record *PinRecord) (*http.Request, error) {
	imageFile, err := os.Open(record.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer func() { _ = imageFile.Close() }()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("image", filepath.Base(record.ImagePath))
	if err != nil {
		return nil, fmt.Errorf("creating image part: %w", err)
	}
	if _, err := io.Copy(part, imageFile); err != nil {
		return nil, fmt.Errorf("writing image part: %w", err)
	}

	fields := map[string]string{
		"board_id":    record.BoardID,
		"title":       record.Title,
		"description": record.Description,
		"alt_text":    record.AltText,
	}
	if len(record.Tags) > 0 {
		tagsJSON, err := json.Marshal(record.Tags)
		if err != nil {
			return nil, fmt.Errorf("marshaling tags: %w", err)
		}
		fields["tags"] = string(tagsJSON)
	}
	for name, val := range fields {
		if err := w.WriteField(name, val); err != nil {
			return nil, fmt.Errorf("writing field %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pins", &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}

func (c *Client) buildBase64Request(ctx context.Context, record *PinRecord) (*http.Request, error) {
	imageBytes, err := os.ReadFile(record.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	reqBody := map[string]interface{}{
		"board_id":    record.BoardID,
		"title":       record.Title,
		"description": record.Description,
		"alt_text":    record.AltText,
		"media_source": map[string]interface{}{
			"source_type":  "image_base64",
			"content_type": contentTypeForPath(record.ImagePath),
			"data":         base64.StdEncoding.EncodeToString(imageBytes),
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pins", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func contentTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// pinResponse models the fields we use from the v5 pin creation response.
type pinResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func parsePinResponse(body []byte) (*PinResult, error) {
	var resp pinResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("pinterest response missing pin id: %s", string(body))
	}
	url := resp.URL
	if url == "" {
		url = "https://www.pinterest.com/pin/" + resp.ID + "/"
	}
	return &PinResult{ID: resp.ID, URL: url}, nil
}

func apiErrorMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return string(body)
}
