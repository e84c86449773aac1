// Package hosted stores trips, attractions and users in a hosted
// backend-as-a-service that exposes its tables over a PostgREST API.
package hosted

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/config"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/log"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/store"
)

const (
	restPrefix = "/rest/v1/"

	// noRowsCode is returned when a single object was requested and no row matched
	noRowsCode = "PGRST116"

	singleObject = "application/vnd.pgrst.object+json"
)

// APIError is the error body of the REST API
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("hosted backend error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("hosted backend error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) notFound() bool {
	return e.Code == noRowsCode || e.StatusCode == http.StatusNotAcceptable
}

// Client is the hosted storage backend
type Client struct {
	http   *resty.Client
	logger *log.Logger
}

// New creates a client for the project at cfg.URL authenticated with the
// project's API key.
func New(cfg *config.HostedConfig, l *log.Logger) *Client {
	if l == nil {
		l = log.NewNop()
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := resty.New().
		SetBaseURL(cfg.URL).
		SetHeader("apikey", cfg.APIKey).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{http: c, logger: l}
}

func (c *Client) Trips() store.TripStore             { return c }
func (c *Client) Attractions() store.AttractionStore { return c }
func (c *Client) Users() store.UserStore             { return c }
func (c *Client) Mode() string                       { return config.BackendHosted }

// HealthCheck reads a single attraction id.
func (c *Client) HealthCheck(ctx context.Context) error {
	var rows []struct {
		ID string `json:"id"`
	}
	return c.send(c.request(ctx).SetQueryParams(map[string]string{
		"select": "id",
		"limit":  "1",
	}), http.MethodGet, "attractions", &rows)
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// send executes the request against a table and decodes a successful body
// into out.
func (c *Client) send(req *resty.Request, method, table string, out interface{}) error {
	resp, err := req.Execute(method, restPrefix+table)
	if err != nil {
		return fmt.Errorf("hosted request: %w", err)
	}

	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		if err := json.Unmarshal(resp.Body(), apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
		if apiErr.notFound() {
			return store.ErrNotFound
		}
		return apiErr
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// track logs the outcome of a store call.
func (c *Client) track(operation, table string, start time.Time, err *error) {
	logged := *err
	if errors.Is(logged, store.ErrNotFound) || planner.IsValidationError(logged) {
		logged = nil
	}
	c.logger.LogStore(config.BackendHosted, operation, table, time.Since(start).Milliseconds(), logged)
}

func eq(value string) string {
	return "eq." + value
}
