package finder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/windoze95/recipefinder/internal/models"
)

// ServerError is a non-200 response from the proxy server.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// Client calls the proxy endpoints of a running recipe finder server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the server at baseURL, e.g. http://localhost:8080.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Search calls GET /api?q=<query>. An absent or malformed results field
// yields an empty list.
func (c *Client) Search(ctx context.Context, query string) ([]models.RecipeSummary, error) {
	body, err := c.get(ctx, "/api?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	var envelope models.SearchResults
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Results == nil {
		return []models.RecipeSummary{}, nil
	}
	return envelope.Results, nil
}

// Details calls GET /api/details?id=<id>.
func (c *Client) Details(ctx context.Context, id int) (*models.RecipeDetail, error) {
	body, err := c.get(ctx, "/api/details?id="+strconv.Itoa(id))
	if err != nil {
		return nil, err
	}

	var detail models.RecipeDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode recipe %d: %w", id, err)
	}
	return &detail, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		_ = json.Unmarshal(body, &errResp)
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}
	return body, nil
}
