package recipeapi

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

	"github.com/windoze95/recipefinder/internal/config"
)

// maxBodySize caps how much of an upstream response is read.
const maxBodySize = 4 << 20

// SpoonacularProvider implements Provider against the Spoonacular API.
// The API key is supplied at construction and only ever placed in the
// upstream query string.
type SpoonacularProvider struct {
	apiKey     string
	searchURL  string
	detailURL  string
	httpClient *http.Client
	observer   Observer
}

// Option customizes a SpoonacularProvider.
type Option func(*SpoonacularProvider)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *SpoonacularProvider) { p.httpClient = client }
}

// WithObserver reports every upstream call to o.
func WithObserver(o Observer) Option {
	return func(p *SpoonacularProvider) { p.observer = o }
}

// NewSpoonacularProvider creates a provider for the given key and endpoints.
func NewSpoonacularProvider(apiKey string, upstream *config.Upstream, opts ...Option) *SpoonacularProvider {
	if upstream == nil {
		upstream = config.DefaultUpstream()
	}
	p := &SpoonacularProvider{
		apiKey:    apiKey,
		searchURL: upstream.SearchURL,
		detailURL: strings.TrimRight(upstream.DetailURL, "/"),
		httpClient: &http.Client{
			Timeout: upstream.Timeout,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Search calls GET <search-url>?query=<query>&apiKey=<key>.
func (p *SpoonacularProvider) Search(ctx context.Context, query string) ([]byte, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("apiKey", p.apiKey)

	reqURL := fmt.Sprintf("%s?%s", p.searchURL, params.Encode())
	return p.get(ctx, EndpointSearch, reqURL)
}

// Details calls GET <detail-url>/<id>/information?includeNutrition=false&apiKey=<key>.
func (p *SpoonacularProvider) Details(ctx context.Context, id uint64) ([]byte, error) {
	params := url.Values{}
	params.Set("includeNutrition", "false")
	params.Set("apiKey", p.apiKey)

	reqURL := fmt.Sprintf("%s/%s/information?%s", p.detailURL, strconv.FormatUint(id, 10), params.Encode())
	return p.get(ctx, EndpointDetails, reqURL)
}

func (p *SpoonacularProvider) get(ctx context.Context, endpoint, reqURL string) (body []byte, err error) {
	if p.observer != nil {
		start := time.Now()
		defer func() { p.observer.ObserveUpstream(endpoint, err, time.Since(start)) }()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create %s request: %v", ErrUpstream, endpoint, redact(err, p.apiKey))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s request failed: %v", ErrUpstream, endpoint, redact(err, p.apiKey))
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s response: %v", ErrUpstream, endpoint, err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("%w: %s response too large (over %d bytes)", ErrUpstream, endpoint, maxBodySize)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUpstream, endpoint, resp.StatusCode)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s returned a non-JSON body", ErrUpstream, endpoint)
	}

	return body, nil
}

// redact strips the API key from errors that embed the request URL.
func redact(err error, apiKey string) string {
	msg := err.Error()
	if apiKey == "" {
		return msg
	}
	return strings.ReplaceAll(msg, apiKey, "REDACTED")
}
