package docintel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-screener/internal/extract"
)

const (
	apiVersion   = "2024-11-30"
	layoutModel  = "prebuilt-layout"
	pollInterval = 2 * time.Second
)

// Client extracts document text through the Document Intelligence REST API.
// Analysis is a long-running operation: submit the bytes, then poll the
// returned operation URL until it reaches a terminal state. Callers see a
// single blocking call.
type Client struct {
	endpoint   string
	key        string
	httpClient *http.Client
	pollEvery  time.Duration
}

// New constructs a Client for the given service endpoint and key.
func New(endpoint, key string) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("DOCINT_ENDPOINT is required")
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("DOCINT_KEY is required")
	}
	return &Client{
		endpoint:   strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		key:        key,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		pollEvery:  pollInterval,
	}, nil
}

type analyzeLine struct {
	Content string `json:"content"`
}

type analyzePage struct {
	Lines []analyzeLine `json:"lines"`
}

type analyzeResult struct {
	Pages []analyzePage `json:"pages"`
}

type operationStatus struct {
	Status        string         `json:"status"`
	AnalyzeResult *analyzeResult `json:"analyzeResult"`
	Error         *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ExtractText submits the document with the layout model and waits for the
// result, returning recognized lines in page-then-line order joined by
// newlines. No trimming or reordering is applied.
func (c *Client) ExtractText(ctx context.Context, data []byte) (string, error) {
	opURL, err := c.submit(ctx, data)
	if err != nil {
		return "", err
	}

	result, err := c.waitForResult(ctx, opURL)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, page := range result.Pages {
		for _, line := range page.Lines {
			lines = append(lines, line.Content)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (c *Client) submit(ctx context.Context, data []byte) (string, error) {
	url := fmt.Sprintf("%s/documentintelligence/documentModels/%s:analyze?api-version=%s",
		c.endpoint, layoutModel, apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "application/pdf")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("document analysis submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("document analysis submit: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	opURL := resp.Header.Get("Operation-Location")
	if opURL == "" {
		return "", fmt.Errorf("document analysis submit: missing Operation-Location header")
	}
	return opURL, nil
}

func (c *Client) waitForResult(ctx context.Context, opURL string) (*analyzeResult, error) {
	for {
		status, err := c.pollOnce(ctx, opURL)
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(status.Status) {
		case "succeeded":
			if status.AnalyzeResult == nil {
				return nil, fmt.Errorf("document analysis succeeded without a result")
			}
			return status.AnalyzeResult, nil
		case "failed":
			if status.Error != nil {
				return nil, fmt.Errorf("document analysis failed: %s: %s", status.Error.Code, status.Error.Message)
			}
			return nil, fmt.Errorf("document analysis failed")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollEvery):
		}
	}
}

func (c *Client) pollOnce(ctx context.Context, opURL string) (*operationStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("document analysis poll: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("document analysis poll: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var status operationStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("document analysis poll: decode: %w", err)
	}
	return &status, nil
}

var _ extract.Extractor = (*Client)(nil)
