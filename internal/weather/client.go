// Package weather corroborates natural-calamity claims against historical
// weather for the loss date and location.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claimpilot/claimpilot/internal/cache"
	"github.com/claimpilot/claimpilot/internal/model"
)

// severeKeywords mark hourly conditions that count as a calamity on their own
var severeKeywords = []string{"storm", "rain", "flood", "hurricane", "cyclone", "gale", "thunder"}

const (
	severeWindKph   = 60.0
	severePrecipMM  = 20.0
	maxResponseSize = 1 << 20
)

// Client queries the weatherapi.com history endpoint
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewClient creates a weather client. An empty apiKey is allowed; lookups
// then degrade to an unknown result instead of failing.
func NewClient(apiKey, baseURL string, timeout time.Duration, c cache.Cache, cacheTTL time.Duration) *Client {
	if baseURL == "" {
		baseURL = "http://api.weatherapi.com/v1"
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		cache:      c,
		cacheTTL:   cacheTTL,
	}
}

// historyResponse mirrors the slice of the weatherapi.com payload we read
type historyResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Hour []hourlyObservation `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type hourlyObservation struct {
	Condition struct {
		Text string `json:"text"`
	} `json:"condition"`
	WindKph  float64 `json:"wind_kph"`
	PrecipMM float64 `json:"precip_mm"`
}

// Verify checks whether severe weather was observed at the location on the
// given date (YYYY-MM-DD). A missing API key or location yields an unknown
// result, not an error; transport and decode problems are errors so the
// caller can degrade the stage.
func (c *Client) Verify(ctx context.Context, dateISO, location string) (model.WeatherResult, error) {
	if c.apiKey == "" {
		return model.WeatherResult{Verified: nil, Summary: "Weather verification unavailable: no API key configured."}, nil
	}
	if location == "" {
		return model.WeatherResult{Verified: nil, Summary: "Weather verification unavailable: no location on policy."}, nil
	}

	body, err := c.fetchHistory(ctx, dateISO, location)
	if err != nil {
		return model.WeatherResult{}, err
	}

	var hist historyResponse
	if err := json.Unmarshal(body, &hist); err != nil {
		return model.WeatherResult{}, fmt.Errorf("decode history: %w", err)
	}
	if len(hist.Forecast.ForecastDay) == 0 {
		return model.WeatherResult{}, fmt.Errorf("no history for %s on %s", location, dateISO)
	}

	severe, detail := classifyDay(hist.Forecast.ForecastDay[0].Hour)
	return model.WeatherResult{Verified: &severe, Summary: detail}, nil
}

func (c *Client) fetchHistory(ctx context.Context, dateISO, location string) ([]byte, error) {
	key := cache.Key("weather", location, dateISO)
	if c.cache != nil {
		if body, found := c.cache.Get(key); found {
			return body, nil
		}
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", location)
	params.Set("dt", dateISO)

	reqURL := fmt.Sprintf("%s/history.json?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API status %d: %s", resp.StatusCode, string(body))
	}

	if c.cache != nil {
		_ = c.cache.Set(key, body, c.cacheTTL)
	}
	return body, nil
}

// classifyDay scans hourly observations for severe conditions: a keyword in
// the condition text, wind of at least 60 kph, or precipitation of at least
// 20 mm in any hour.
func classifyDay(hours []hourlyObservation) (bool, string) {
	for _, h := range hours {
		cond := strings.ToLower(h.Condition.Text)
		for _, kw := range severeKeywords {
			if strings.Contains(cond, kw) {
				return true, cond
			}
		}
		if h.WindKph >= severeWindKph || h.PrecipMM >= severePrecipMM {
			return true, fmt.Sprintf("wind %.0f kph / precip %.0f mm", h.WindKph, h.PrecipMM)
		}
	}
	return false, "No severe weather detected."
}
