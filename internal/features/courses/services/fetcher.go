package services

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"learnhub/internal/core"
	"learnhub/internal/features/courses/models"

	"github.com/andybalholm/brotli"
	"github.com/go-playground/validator/v10"
)

// SummaryPath is the course-summary endpoint, relative to the API base URL
const SummaryPath = "/courses/summary"

// StatusError is returned for non-2xx responses of the course API
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("course feed returned status %d for %s", e.StatusCode, e.URL)
}

// SummaryClient fetches pages of course summaries from the external API
type SummaryClient struct {
	client   *http.Client
	logger   *core.Logger
	config   *models.FetcherConfig
	baseURL  *url.URL
	validate *validator.Validate
}

// NewSummaryClient creates a client for the course-summary endpoint.
// A nil httpClient gets a client without timeout; the transport's own
// limits apply.
func NewSummaryClient(logger *core.Logger, config *models.FetcherConfig, httpClient *http.Client) (*SummaryClient, error) {
	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, core.NewConfigurationError("invalid course API base URL", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &SummaryClient{
		client:   httpClient,
		logger:   logger,
		config:   config,
		baseURL:  baseURL,
		validate: validator.New(),
	}, nil
}

// PageURL builds the request URL for a page
func (c *SummaryClient) PageURL(page, limit int) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + SummaryPath

	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	return u.String()
}

// FetchPage fetches and decodes one page of course summaries
func (c *SummaryClient) FetchPage(ctx context.Context, page, limit int) (*models.CoursePage, error) {
	pageURL := c.PageURL(page, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch course page %d: %w", page, err)
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode, Body: snippet(body, 300)}
	}

	var envelope models.SummaryResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse course page %d: %w", page, err)
	}
	if err := c.validate.Struct(&envelope.Data); err != nil {
		return nil, fmt.Errorf("invalid course page %d: %w", page, err)
	}

	c.logger.Debug("Fetched course page",
		"page", page,
		"courses", len(envelope.Data.Courses),
		"total_pages", envelope.Data.Pagination.TotalPages,
	)
	return &envelope.Data, nil
}

// decodeBody reads the response body, undoing the content encodings we
// advertise in Accept-Encoding.
func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}

	return io.ReadAll(reader)
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
