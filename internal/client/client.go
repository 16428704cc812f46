package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goto/scout/core/entity"
	"github.com/goto/scout/core/search"
	"github.com/pkg/errors"
)

const searchPath = "/v1beta1/search"

// Config represents configuration options for the catalog client.
type Config struct {
	BaseURL string        `yaml:"baseurl" mapstructure:"baseurl" default:"http://localhost:8080"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" default:"15s"`

	HeaderKeyUserUUID   string `yaml:"headerkey_uuid" mapstructure:"headerkey_uuid" default:"Catalog-User-UUID"`
	HeaderValueUserUUID string `yaml:"headervalue_uuid" mapstructure:"headervalue_uuid" default:"scout@goto.com"`
}

// Client queries a catalog service's search endpoint over HTTP. It
// satisfies search.Catalog.
type Client struct {
	config     Config
	httpClient *http.Client
}

// New constructs a client with a shared HTTP client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// searchResponse mirrors the catalog's search payload.
type searchResponse struct {
	Data []searchResult `json:"data"`
}

// searchResult represents one item in the catalog's search response.
type searchResult struct {
	ID          string            `json:"id"`
	URN         string            `json:"urn"`
	Title       string            `json:"title"`
	Type        string            `json:"type"`
	Service     string            `json:"service"`
	Description string            `json:"description"`
	Labels      map[string]string `json:"labels"`
}

type errorResponse struct {
	Reason string `json:"reason"`
}

// ServiceError is returned when the catalog answers with a non-2xx status.
type ServiceError struct {
	StatusCode int
	Reason     string
}

func (err ServiceError) Error() string {
	if err.Reason != "" {
		return fmt.Sprintf("catalog replied %d: %s", err.StatusCode, err.Reason)
	}
	return fmt.Sprintf("catalog replied %d", err.StatusCode)
}

// Search issues one search request and returns the matching entities in the
// order the catalog ranked them.
func (c *Client) Search(ctx context.Context, req search.Request) ([]entity.Entity, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(req), nil)
	if err != nil {
		return nil, errors.Wrap(err, "error building search request")
	}
	if c.config.HeaderKeyUserUUID != "" {
		httpReq.Header.Set(c.config.HeaderKeyUserUUID, c.config.HeaderValueUserUUID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "error calling catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, ServiceError{StatusCode: resp.StatusCode, Reason: body.Reason}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "error decoding search response")
	}

	entities := make([]entity.Entity, 0, len(payload.Data))
	for _, result := range payload.Data {
		entities = append(entities, entity.Entity{
			ID:          result.ID,
			URN:         result.URN,
			Name:        result.Title,
			Kind:        entity.Kind(result.Type),
			Service:     result.Service,
			Description: result.Description,
			Labels:      result.Labels,
		})
	}
	return entities, nil
}

func (c *Client) searchURL(req search.Request) string {
	params := url.Values{}
	params.Set("text", req.Text)
	if req.Size > 0 {
		params.Set("size", strconv.Itoa(req.Size))
	}
	if len(req.Fields) > 0 {
		params.Set("fields", strings.Join(req.Fields, ","))
	}
	for field, values := range req.Filters {
		for _, value := range values {
			params.Add(fmt.Sprintf("filter[%s]", field), value)
		}
	}

	return strings.TrimSuffix(c.config.BaseURL, "/") + searchPath + "?" + params.Encode()
}
