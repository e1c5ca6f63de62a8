// Package vision calls the Google Cloud Vision REST API for text detection.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tripwise/internal/config"
	"tripwise/internal/ocr"
)

const apiURL = "https://vision.googleapis.com/v1/images:annotate"

// Client implements port.TextDetector using the Vision images:annotate endpoint.
type Client struct {
	apiKey       string
	endpoint     string
	languageHint string
	client       *http.Client
}

// NewClient creates a Vision client from the OCR config.
func NewClient(cfg *config.OCRConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	return NewClientWithEndpoint(cfg, endpoint)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.OCRConfig, endpoint string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:       cfg.APIKey,
		endpoint:     endpoint,
		languageHint: cfg.LanguageHint,
		client:       &http.Client{Timeout: timeout},
	}
}

// APIError is a non-200 answer, or a per-image error, from Vision.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vision API error (status %d): %s", e.Status, e.Message)
}

func (c *Client) DetectText(ctx context.Context, image []byte) (string, error) {
	request := map[string]interface{}{
		"image": map[string]interface{}{
			"content": base64.StdEncoding.EncodeToString(image),
		},
		"features": []map[string]interface{}{
			{"type": "TEXT_DETECTION"},
		},
	}
	if c.languageHint != "" {
		request["imageContext"] = map[string]interface{}{
			"languageHints": []string{c.languageHint},
		}
	}

	bodyBytes, err := json.Marshal(map[string]interface{}{
		"requests": []interface{}{request},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := c.endpoint
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling vision API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Message: string(respBody)}
	}

	return parseResponse(respBody)
}

type annotateResponse struct {
	Responses []struct {
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
		FullTextAnnotation *struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

func parseResponse(body []byte) (string, error) {
	var resp annotateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", ocr.ErrNoText
	}

	r := resp.Responses[0]
	if r.Error != nil {
		return "", &APIError{Status: r.Error.Code, Message: r.Error.Message}
	}
	// The first annotation holds the whole detected block.
	if len(r.TextAnnotations) > 0 && r.TextAnnotations[0].Description != "" {
		return r.TextAnnotations[0].Description, nil
	}
	if r.FullTextAnnotation != nil && r.FullTextAnnotation.Text != "" {
		return r.FullTextAnnotation.Text, nil
	}
	return "", ocr.ErrNoText
}
