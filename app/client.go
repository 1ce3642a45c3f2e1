package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	valid "github.com/asaskevich/govalidator"
	"golang.org/x/time/rate"
)

var (
	ErrNoURLs               = errors.New("no URLs to scan")
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrInvalidServerURL     = errors.New("server must be an absolute http(s) URL")
)

type limiter interface {
	Wait(context.Context) error
}

// Client submits URLs to a running scan endpoint.
type Client struct {
	BaseURL string
	Results *Results
	limiter limiter
}

// NewClient paces ScanAll to rateLimit requests per second; a rateLimit
// of zero or less disables pacing.
func NewClient(baseURL string, rateLimit float64) *Client {
	limit := rate.Inf
	if rateLimit > 0 {
		limit = rate.Limit(rateLimit)
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		limiter: rate.NewLimiter(limit, 1),
		Results: &Results{
			Findings: []Finding{},
		},
	}
}

func ValidateServerURL(serverURL string) error {
	if !valid.IsURL(serverURL) {
		return fmt.Errorf("%q: %w", serverURL, ErrInvalidServerURL)
	}

	parsed, err := url.Parse(serverURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%q: %w", serverURL, ErrInvalidServerURL)
	}

	return nil
}

// ScanAll scans urls in order and records one finding per URL. A failed URL
// is recorded and does not stop the run.
func (c *Client) ScanAll(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return ErrNoURLs
	}

	for _, rawURL := range urls {
		err := c.limiter.Wait(ctx)
		if err != nil {
			return fmt.Errorf("error while rate limiting: %w", err)
		}

		log.Printf("Scanning %s\n", rawURL)

		result, err := c.Scan(ctx, rawURL)
		if err != nil {
			c.addFinding(rawURL, nil, err)

			continue
		}

		c.addFinding(rawURL, &result, nil)
	}

	log.Printf(
		"Done. Scanned %d URLs, %d flagged, %d failed\n\n",
		len(urls),
		c.Results.FlaggedCount(),
		c.Results.ErrorCount(),
	)

	return nil
}

func (c *Client) Scan(ctx context.Context, rawURL string) (ScanResult, error) {
	res, err := c.makeHTTPRequest(ctx, rawURL)
	if err != nil {
		return ScanResult{}, err
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return ScanResult{}, fmt.Errorf("could not read response body: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return ScanResult{}, c.statusCodeMismatchError(res.StatusCode, body)
	}

	var result ScanResult
	err = json.Unmarshal(body, &result)
	if err != nil {
		return ScanResult{}, fmt.Errorf("cannot unmarshal scan result: %w", err)
	}

	return result, nil
}

func (c *Client) makeHTTPRequest(ctx context.Context, rawURL string) (*http.Response, error) {
	payload, err := json.Marshal(ScanRequest{URL: rawURL})
	if err != nil {
		return nil, fmt.Errorf("client: could not encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.BaseURL+"/api/scan",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("client: could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: error making http request: %w", err)
	}

	return res, nil
}

func (*Client) statusCodeMismatchError(statusCode int, body []byte) error {
	var errResponse ErrorResponse
	if json.Unmarshal(body, &errResponse) == nil && errResponse.Error != "" {
		return fmt.Errorf(
			"%w: expected %d, got %d: %s",
			ErrUnexpectedStatusCode,
			http.StatusOK,
			statusCode,
			errResponse.Error,
		)
	}

	return fmt.Errorf(
		"%w: expected %d, got %d",
		ErrUnexpectedStatusCode,
		http.StatusOK,
		statusCode,
	)
}

func (c *Client) addFinding(rawURL string, result *ScanResult, err error) {
	finding := Finding{URL: rawURL, Result: result}
	if err != nil {
		finding.Error = fmt.Sprint(err)
	}

	c.Results.Findings = append(c.Results.Findings, finding)
}
