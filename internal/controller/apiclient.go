package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// Result codes of the wire envelope
const (
	ResultSuccess = 1
	ResultFailure = 0
	ResultLocked  = -2
)

// Envelope is the uniform response wrapper every endpoint answers with.
// Data may be a single object or an array; Records normalizes both.
type Envelope struct {
	Result       int             `json:"result"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
	TotalRecords *int64          `json:"totalRecords"`
}

// Records decodes Data into a slice, accepting both array and single-object
// payloads. A missing or null Data yields an empty slice.
func (e *Envelope) Records() ([]Record, error) {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil, nil
	}
	var many []Record
	if err := json.Unmarshal(e.Data, &many); err == nil {
		return many, nil
	}
	var one Record
	if err := json.Unmarshal(e.Data, &one); err != nil {
		return nil, fmt.Errorf("unexpected data shape: %w", err)
	}
	return []Record{one}, nil
}

// APIClient talks the master-data wire contract
type APIClient interface {
	List(ctx context.Context, entity string, filter Filter) (*Envelope, error)
	GetByCode(ctx context.Context, entity, code string) (*Envelope, error)
	Save(ctx context.Context, entity string, record Record) (*Envelope, error)
	Delete(ctx context.Context, entity string, id int64) (*Envelope, error)
}

// Filter carries the list query parameters
type Filter struct {
	Search     string
	SortBy     string
	SortOrder  string
	PageNumber int
	PageSize   int
}

// HTTPClient is the default APIClient over net/http
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
	log     *zap.Logger
}

// NewHTTPClient creates a client for the given base URL (e.g.
// "http://host:8080/api/v1/master"). The bearer token is attached to every
// request.
func NewHTTPClient(baseURL, token string, httpClient *http.Client, log *zap.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPClient{baseURL: baseURL, token: token, client: httpClient, log: log}
}

// List fetches one page of entities
func (c *HTTPClient) List(ctx context.Context, entity string, filter Filter) (*Envelope, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.SortBy != "" {
		query.Set("sortBy", filter.SortBy)
		query.Set("sortOrder", filter.SortOrder)
	}
	if filter.PageNumber > 0 {
		query.Set("pageNumber", strconv.Itoa(filter.PageNumber))
	}
	if filter.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(filter.PageSize))
	}
	endpoint := fmt.Sprintf("%s/%s.get", c.baseURL, entity)
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

// GetByCode fetches a single entity by its business code
func (c *HTTPClient) GetByCode(ctx context.Context, entity, code string) (*Envelope, error) {
	endpoint := fmt.Sprintf("%s/%s.getByCode/%s", c.baseURL, entity, url.PathEscape(code))
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

// Save creates or updates an entity through the single upsert endpoint
func (c *HTTPClient) Save(ctx context.Context, entity string, record Record) (*Envelope, error) {
	endpoint := fmt.Sprintf("%s/%s.add", c.baseURL, entity)
	return c.do(ctx, http.MethodPost, endpoint, record)
}

// Delete removes an entity by id
func (c *HTTPClient) Delete(ctx context.Context, entity string, id int64) (*Envelope, error) {
	endpoint := fmt.Sprintf("%s/%s.delete/%d", c.baseURL, entity, id)
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body interface{}) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return &env, nil
}
