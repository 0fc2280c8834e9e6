package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"assistant/internal/domain"
)

const (
	// DefaultURL is the Yandex Weather forecast endpoint
	DefaultURL = "https://api.weather.yandex.ru/v2/forecast"
	// DefaultTimeout bounds a single forecast request
	DefaultTimeout = 10 * time.Second

	apiKeyHeader  = "X-Yandex-Weather-Key"
	forecastDays  = 3
	maxErrorBytes = 512
)

var (
	ErrUnexpectedStatus = errors.New("weather api returned unexpected status")
	ErrMalformedPayload = errors.New("weather api returned malformed payload")
)

// Fetcher returns a weather snapshot for the given coordinates
type Fetcher interface {
	Forecast(ctx context.Context, lat, lon float64) (*domain.WeatherSnapshot, error)
}

// Client talks to the weather API
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a new weather API client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Forecast fetches current conditions and a short forecast. It never retries.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*domain.WeatherSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("lang", "ru_RU")
	params.Set("limit", strconv.Itoa(forecastDays))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return nil, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, body)
	}

	var snapshot domain.WeatherSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return &snapshot, nil
}
