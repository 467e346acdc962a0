package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lox/notecheck/internal/config"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	defaultVersion = "2025-09-03"

	// Listing endpoints accept up to 100 items per page.
	searchPageSize = 100
	queryPageSize  = 100
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	version    string
	token      string

	// Whether the API revision in use accepts an object-type filter on
	// /search. Resolved at most once, on the first rejected filter, then
	// remembered for the life of the client.
	filterSupport filterCapability
}

type filterCapability int

const (
	filterUnprobed filterCapability = iota
	filterSupported
	filterUnsupported
)

func NewClient(cfg config.NotionConfig) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, fmt.Errorf("Notion API token is required")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = defaultVersion
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		version:    version,
		token:      token,
	}, nil
}

// VerifyToken makes the cheapest possible authenticated call to prove the
// token works.
func (c *Client) VerifyToken(ctx context.Context) error {
	payload := map[string]any{"page_size": 1}
	return c.doJSON(ctx, http.MethodPost, "/search", payload, nil)
}

// SearchRequest describes one page of a workspace search. An empty Query
// lists everything shared with the integration.
type SearchRequest struct {
	Query      string
	ObjectType string // "page", "data_source", ... empty for all
	SortLatest bool   // sort by last_edited_time descending
	Cursor     string
}

// Search fetches one page of search results. If the server rejects the
// object-type filter (filter vocabularies change between API revisions) the
// client falls back to unfiltered search and applies the type check locally,
// and remembers not to send the filter again.
func (c *Client) Search(ctx context.Context, req SearchRequest) (Page[Object], error) {
	useFilter := req.ObjectType != "" && c.filterSupport != filterUnsupported

	page, err := c.searchOnce(ctx, req, useFilter)
	if err != nil {
		if useFilter && isFilterRejected(err) {
			c.filterSupport = filterUnsupported
			page, err = c.searchOnce(ctx, req, false)
		}
		if err != nil {
			return Page[Object]{}, err
		}
	} else if useFilter {
		c.filterSupport = filterSupported
	}

	if req.ObjectType != "" && c.filterSupport == filterUnsupported {
		filtered := page.Results[:0:0]
		for _, obj := range page.Results {
			if obj.Type() == req.ObjectType {
				filtered = append(filtered, obj)
			}
		}
		page.Results = filtered
	}
	return page, nil
}

func (c *Client) searchOnce(ctx context.Context, req SearchRequest, withFilter bool) (Page[Object], error) {
	payload := map[string]any{
		"page_size": searchPageSize,
	}
	if req.Query != "" {
		payload["query"] = req.Query
	}
	if req.Cursor != "" {
		payload["start_cursor"] = req.Cursor
	}
	if withFilter {
		payload["filter"] = map[string]any{
			"property": "object",
			"value":    req.ObjectType,
		}
	}
	if req.SortLatest {
		payload["sort"] = map[string]any{
			"direction": "descending",
			"timestamp": "last_edited_time",
		}
	}

	var resp listResponse
	if err := c.doJSON(ctx, http.MethodPost, "/search", payload, &resp); err != nil {
		return Page[Object]{}, err
	}
	return resp.page(), nil
}

// SearchAll drains every page of a search.
func (c *Client) SearchAll(ctx context.Context, req SearchRequest) ([]Object, error) {
	return CollectAll(ctx, func(ctx context.Context, cursor string) (Page[Object], error) {
		req.Cursor = cursor
		return c.Search(ctx, req)
	})
}

// RetrievePage fetches a full page object by normalized ID.
func (c *Client) RetrievePage(ctx context.Context, pageID string) (Object, error) {
	return c.retrieve(ctx, "/pages/", pageID)
}

// RetrieveDataSource fetches a full data source object by normalized ID. Used
// as a fallback when a search result lacks a usable title.
func (c *Client) RetrieveDataSource(ctx context.Context, dataSourceID string) (Object, error) {
	return c.retrieve(ctx, "/data_sources/", dataSourceID)
}

func (c *Client) retrieve(ctx context.Context, prefix, id string) (Object, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("object ID is required")
	}
	var obj Object
	if err := c.doJSON(ctx, http.MethodGet, prefix+id, nil, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// QueryRows fetches one page of rows from a data source.
func (c *Client) QueryRows(ctx context.Context, dataSourceID, cursor string) (Page[Object], error) {
	dataSourceID = strings.TrimSpace(dataSourceID)
	if dataSourceID == "" {
		return Page[Object]{}, fmt.Errorf("data source ID is required")
	}

	payload := map[string]any{"page_size": queryPageSize}
	if cursor != "" {
		payload["start_cursor"] = cursor
	}

	var resp listResponse
	if err := c.doJSON(ctx, http.MethodPost, "/data_sources/"+dataSourceID+"/query", payload, &resp); err != nil {
		return Page[Object]{}, err
	}
	return resp.page(), nil
}

type listResponse struct {
	Results    []Object `json:"results"`
	NextCursor *string  `json:"next_cursor"`
	HasMore    bool     `json:"has_more"`
}

func (r listResponse) page() Page[Object] {
	page := Page[Object]{Results: r.Results, HasMore: r.HasMore}
	if r.NextCursor != nil {
		page.NextCursor = *r.NextCursor
	}
	return page
}

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Notion API %s %s failed (%d): %s", e.Method, e.Path, e.Status, e.Message)
}

func isFilterRejected(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Status != http.StatusBadRequest {
		return false
	}
	return apiErr.Code == "validation_error" || strings.Contains(strings.ToLower(apiErr.Message), "filter")
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	var bodyReader io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("authorization", "Bearer "+c.token)
	req.Header.Set("notion-version", c.version)
	if contentType != "" {
		req.Header.Set("content-type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(respBody)),
		}
		var errResp struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			apiErr.Code = errResp.Code
			if msg := strings.TrimSpace(errResp.Message); msg != "" {
				apiErr.Message = msg
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse Notion API response for %s %s: %w", method, path, err)
	}
	return nil
}
