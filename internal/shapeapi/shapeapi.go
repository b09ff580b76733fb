package shapeapi

import (
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Client talks to the silhouette-comparison backend API.
type Client struct {
	URL       string
	parsedURL *url.URL
}

// NewClient creates a client for the backend at rawURL (without the /api suffix).
func NewClient(rawURL string) (*Client, error) {
	apiURL := strings.TrimRight(rawURL, "/") + "/api"
	parsed, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	return &Client{URL: apiURL, parsedURL: parsed}, nil
}

// resolveURL builds a full URL from the base API URL and the given path segments.
func (c *Client) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return c.parsedURL.String()
	}
	return c.parsedURL.JoinPath(pathSegments...).String()
}

// readErrorBody reads the response body for error messages.
// Returns a placeholder if reading fails (we're already in an error path).
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}
