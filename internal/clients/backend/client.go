package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/pkg/errors"
	"github.com/quantumstack/site/internal/entities"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNotFound = errors.New("resource not found")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %v, body: %v", e.Code, e.Body)
}

type Client struct {
	baseURL     string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	if maxRequestsPerSecond <= 0 {
		c.rateLimiter = nil
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) GetJobs(ctx context.Context) ([]entities.JobOpening, error) {
	return getList[entities.JobOpening](ctx, c, "/jobs/")
}

func (c *Client) GetStaff(ctx context.Context) ([]entities.StaffMember, error) {
	return getList[entities.StaffMember](ctx, c, "/staff/")
}

func (c *Client) GetStaffMember(ctx context.Context, slug string) (entities.StaffMember, error) {

	if strings.TrimSpace(slug) == "" {
		return entities.StaffMember{}, ErrNotFound
	}

	body, err := c.sendRequest(ctx, http.MethodGet, "/staff/"+url.PathEscape(slug)+"/", nil)
	if err != nil {
		return entities.StaffMember{}, err
	}

	var member entities.StaffMember
	if err = json.NewDecoder(bytes.NewReader(body)).Decode(&member); err != nil {
		return entities.StaffMember{}, fmt.Errorf("error decoding JSON response: %w", err)
	}

	return member, nil
}

func (c *Client) GetPortfolio(ctx context.Context) ([]entities.PortfolioProject, error) {
	return getList[entities.PortfolioProject](ctx, c, "/portfolio/")
}

func (c *Client) SubmitContact(ctx context.Context, submission entities.ContactSubmission) error {

	payload, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("error encoding contact submission: %w", err)
	}

	_, err = c.sendRequest(ctx, http.MethodPost, "/contact/", bytes.NewReader(payload))
	return err
}

func (c *Client) Health(ctx context.Context) error {
	_, err := c.sendRequest(ctx, http.MethodGet, "/health", nil)
	return err
}

// paginated covers list endpoints that wrap their items in a {"results": [...]} envelope.
type paginated[T any] struct {
	Results []T `json:"results"`
}

func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {

	body, err := c.sendRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		var page paginated[T]
		if err = json.Unmarshal(trimmed, &page); err != nil {
			return nil, fmt.Errorf("error decoding JSON response: %w", err)
		}
		return page.Results, nil
	}

	var items []T
	if err = json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %w", err)
	}
	return items, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, path string, body io.Reader) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.WithStack(ErrNotFound)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
