// Package figma is a minimal client for the Figma REST API, covering the
// two endpoints the exporter needs: whole-file fetches and targeted node
// fetches. It also parses file keys and node IDs out of shared Figma URLs.
package figma

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Version is the client version reported by the command line tool.
const Version = "0.1.0"

const (
	figmaAPIBase = "https://api.figma.com/v1"

	maxRetries = 3
)

// fileKeyRe is anchored so only real figma.com file and design URLs match.
var fileKeyRe = regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$)`)

// Client talks to the Figma REST API. Requests retry on rate limits and
// server errors, and the transport is tuned for large file payloads.
type Client struct {
	accessToken string
	httpClient  *http.Client
	baseURL     string
}

// NewClient returns a client authenticated with a personal access token.
// HTTP/2 is disabled to avoid stream resets on multi-megabyte file
// responses, and the timeout is generous for the same reason.
func NewClient(accessToken string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   false,
	}

	return &Client{
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
		baseURL: figmaAPIBase,
	}
}

// ExtractFileKey pulls the file key out of a shared Figma URL. Both
// /file/ and /design/ URL forms are accepted, for example
// https://www.figma.com/design/ABC123/My-Designs.
func ExtractFileKey(figmaURL string) (string, error) {
	matches := fileKeyRe.FindStringSubmatch(figmaURL)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL format: must be a valid figma.com URL with /file/ or /design/ path")
	}
	return matches[1], nil
}

// ExtractNodeIDs pulls node IDs out of a shared Figma URL. IDs can appear
// as a node-id query parameter (where the web app writes ':' as '-'), as a
// URL fragment, or on a /nodes/ path segment; all three forms accept
// comma-separated lists. The returned IDs are trimmed, normalized to the
// canonical colon form and deduplicated preserving order. A URL without
// node IDs yields an empty list, not an error.
func ExtractNodeIDs(figmaURL string) ([]string, error) {
	u, err := url.Parse(figmaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	var raw string
	switch {
	case u.Query().Get("node-id") != "":
		raw = u.Query().Get("node-id")
	case u.Fragment != "":
		raw = u.Fragment
	default:
		if i := strings.Index(u.Path, "/nodes/"); i != -1 {
			raw = u.Path[i+len("/nodes/"):]
		}
	}

	ids := []string{}
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		ids = append(ids, strings.ReplaceAll(id, "-", ":"))
	}

	return deduplicateNodeIDs(ids), nil
}

// deduplicateNodeIDs removes duplicate IDs while preserving the order of
// first occurrence.
func deduplicateNodeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// GetFile retrieves a complete file: metadata plus the whole document
// tree. Large files make this an expensive call; prefer GetFileNodes when
// the node IDs are known.
func (c *Client) GetFile(fileKey string) (*FileResponse, error) {
	endpoint := fmt.Sprintf("%s/files/%s", c.baseURL, fileKey)

	var fileResp FileResponse
	if err := c.getJSON(endpoint, &fileResp); err != nil {
		return nil, err
	}
	return &fileResp, nil
}

// GetFileNodes retrieves only the subtrees rooted at the given node IDs.
func (c *Client) GetFileNodes(fileKey string, nodeIDs []string) (*NodesResponse, error) {
	endpoint := fmt.Sprintf("%s/files/%s/nodes?ids=%s",
		c.baseURL, fileKey, url.QueryEscape(strings.Join(nodeIDs, ",")))

	var nodesResp NodesResponse
	if err := c.getJSON(endpoint, &nodesResp); err != nil {
		return nil, err
	}
	return &nodesResp, nil
}

// getJSON performs an authenticated GET and decodes the response into out.
// Network failures, 429s and 5xx statuses are retried up to maxRetries
// times with a linear backoff; other statuses and decode failures are
// returned immediately.
func (c *Client) getJSON(endpoint string, out any) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequest("GET", endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("X-Figma-Token", c.accessToken)
		// HTTP/2 stream errors on large payloads; keep connections short-lived.
		req.Header.Set("Connection", "close")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d failed to execute request: %w", attempt, err)
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
			if attempt < maxRetries && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return lastErr
		}

		if readErr != nil {
			lastErr = fmt.Errorf("attempt %d failed to read response body: %w", attempt, readErr)
			if attempt < maxRetries {
				time.Sleep(time.Duration(attempt) * 2 * time.Second)
				continue
			}
			return lastErr
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	}

	return lastErr
}
