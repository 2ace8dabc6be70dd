package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"fxconvert/internal/domain"
	"net/http"
	"net/url"
	"strings"
)

type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
	base    string
}

// apiResponse keeps only the rates field, provider metadata is ignored.
type apiResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// GetLatestRates requests <baseURL>/<base> and builds a table relative to base.
func (c *ExchangeRateClient) GetLatestRates(ctx context.Context) (*domain.RateTable, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse rates URL: %v", domain.ErrNetwork, err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + url.PathEscape(c.base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.APIError{StatusCode: resp.StatusCode}
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	return domain.NewRateTable(c.base, body.Rates)
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string, base string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL, base: base}
}
