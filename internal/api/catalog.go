package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/thesavant42/pawsome/internal/models"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBaseURL     = "https://frontend-take-home-service.fetch.com"
	defaultTimeout     = 30 * time.Second
	maxIDsPerFetch     = 100 // POST /dogs rejects larger bodies
	defaultConcurrency = 4
	userAgent          = "pawsome/1.0"
)

var (
	// ErrUnauthorized is matched by StatusErrors carrying a 401
	ErrUnauthorized = errors.New("not signed in or session expired")
	// ErrEmptySelection is returned when a match is requested for no ids
	ErrEmptySelection = errors.New("no dog ids given")
)

// StatusError is returned for any non-2xx response
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: unexpected status code %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: unexpected status code %d", e.Op, e.StatusCode)
}

// Is lets errors.Is(err, ErrUnauthorized) match a 401
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// CatalogClient handles requests to the dog adoption API.
// The session cookie issued by Login is kept in the client's cookie jar.
type CatalogClient struct {
	baseURL     string
	httpClient  *http.Client
	logger      *log.Logger
	concurrency int
}

// ClientOption configures a CatalogClient
type ClientOption func(*CatalogClient)

// WithHTTPClient uses a copy of hc as the underlying HTTP client, keeping
// its transport. A cookie jar is attached to the copy if it has none;
// hc itself is never modified.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *CatalogClient) {
		if hc == nil {
			return
		}
		timeout := c.httpClient.Timeout
		cp := *hc
		if cp.Timeout == 0 {
			cp.Timeout = timeout
		}
		c.httpClient = &cp
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *CatalogClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithConcurrency bounds how many bulk-fetch chunks run at once
func WithConcurrency(n int) ClientOption {
	return func(c *CatalogClient) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewCatalogClient creates a client for the API at baseURL
func NewCatalogClient(baseURL string, logger *log.Logger, opts ...ClientOption) (*CatalogClient, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	c := &CatalogClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:      logger,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

// BaseURL returns the API root the client talks to
func (c *CatalogClient) BaseURL() string {
	return c.baseURL
}

// Login signs in; the API answers with an auth cookie valid for one hour
func (c *CatalogClient) Login(ctx context.Context, name, email string) error {
	body := map[string]string{"name": name, "email": email}
	return c.do(ctx, "login", http.MethodPost, "/auth/login", nil, body, nil)
}

// Logout ends the session
func (c *CatalogClient) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Breeds returns every breed name known to the catalog
func (c *CatalogClient) Breeds(ctx context.Context) ([]string, error) {
	var breeds []string
	if err := c.do(ctx, "breeds", http.MethodGet, "/dogs/breeds", nil, nil, &breeds); err != nil {
		return nil, err
	}
	return breeds, nil
}

// Search returns one page of dog ids for the query
func (c *CatalogClient) Search(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error) {
	var result models.SearchResult
	if err := c.do(ctx, "search", http.MethodGet, "/dogs/search", q.Values(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchDogs bulk-fetches records for ids. The API caps a request at 100
// ids, so larger lists are split and the chunks fetched concurrently.
// The returned order is not guaranteed to match ids.
func (c *CatalogClient) FetchDogs(ctx context.Context, ids []string) ([]models.Dog, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var chunks [][]string
	for start := 0; start < len(ids); start += maxIDsPerFetch {
		end := start + maxIDsPerFetch
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}

	results := make([][]models.Dog, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			var dogs []models.Dog
			if err := c.do(gctx, "fetch dogs", http.MethodPost, "/dogs", nil, chunk, &dogs); err != nil {
				return err
			}
			results[i] = dogs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []models.Dog
	for _, dogs := range results {
		all = append(all, dogs...)
	}
	return all, nil
}

// Hydrate fetches records for ids and returns them in the order of ids.
// Ids the catalog no longer knows are dropped and reported in missing.
func (c *CatalogClient) Hydrate(ctx context.Context, ids []string) (dogs []models.Dog, missing []string, err error) {
	fetched, err := c.FetchDogs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	dogs, missing = OrderByIDs(fetched, ids)
	if len(missing) > 0 && c.logger != nil {
		c.logger.Info("Dropped unknown dog ids", "count", len(missing))
	}
	return dogs, missing, nil
}

// Match asks the service to pick one dog id from the candidates
func (c *CatalogClient) Match(ctx context.Context, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", ErrEmptySelection
	}
	var resp struct {
		Match string `json:"match"`
	}
	if err := c.do(ctx, "match", http.MethodPost, "/dogs/match", nil, ids, &resp); err != nil {
		return "", err
	}
	if resp.Match == "" {
		return "", fmt.Errorf("match: empty match in response")
	}
	return resp.Match, nil
}

// OrderByIDs arranges dogs in the order of ids and lists the ids that
// have no record
func OrderByIDs(dogs []models.Dog, ids []string) ([]models.Dog, []string) {
	byID := make(map[string]models.Dog, len(dogs))
	for _, d := range dogs {
		byID[d.ID] = d
	}
	ordered := make([]models.Dog, 0, len(ids))
	var missing []string
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			ordered = append(ordered, d)
		} else {
			missing = append(missing, id)
		}
	}
	return ordered, missing
}

// do executes one JSON request. body and out may be nil.
func (c *CatalogClient) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Request failed", "op", op, "request_id", requestID, "error", err)
		}
		return fmt.Errorf("%s: failed to execute request: %w", op, err)
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.Debug("Request done", "op", op, "method", method, "path", path,
			"status", resp.StatusCode, "request_id", requestID, "elapsed", time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if out == nil {
		// Login answers with a plain "OK"; drain so the connection is reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}
