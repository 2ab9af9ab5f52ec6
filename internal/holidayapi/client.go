package holidayapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://holidayapi.com/v1/holidays"
	defaultTimeout = 30 * time.Second
)

// ErrMissingAPIKey is returned when a client is constructed without a credential
var ErrMissingAPIKey = errors.New("a holiday API key is required (https://holidayapi.com/)")

// Client represents a holidayapi.com API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new holiday API client
func NewClient(apiKey string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}, nil
}

// SetBaseURL overrides the service endpoint (used by tests)
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// GetHolidays fetches holiday data for the given year and country.
// Country must be in ISO 3166-2 format (e.g. US) and year must be a
// four-digit year. The result maps date strings (YYYY-MM-DD) to the
// holiday entries observed that day. One network request per call;
// nothing is retried or cached.
func (c *Client) GetHolidays(year int, country string) (map[string][]Holiday, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("country", country)
	params.Set("year", strconv.Itoa(year))

	requestURL := c.baseURL + "?" + params.Encode()

	c.logger.Debug("Fetching holidays",
		zap.Int("year", year),
		zap.String("country", country))

	resp, err := c.httpClient.Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holiday data: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp holidaysResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &StatusError{Code: resp.StatusCode}
		}
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	// The service reports application-level failures inside the body
	if apiResp.Error != "" {
		return nil, &ServiceError{Status: apiResp.Status, Message: apiResp.Error}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	c.logger.Info("Holidays fetched",
		zap.Int("year", year),
		zap.String("country", country),
		zap.Int("dates", len(apiResp.Holidays)))

	return apiResp.Holidays, nil
}
