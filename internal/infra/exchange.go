package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// fxCacheTTL bounds how stale a cached rate may be. Foreign-currency
// payments store the rate captured at payment time, so short staleness
// only shifts which rate gets captured, never recorded history.
const fxCacheTTL = 15 * time.Minute

type exchangeRateResponse struct {
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
}

// ExchangeClient resolves conversion rates to the base currency from an
// external HTTP service, with a redis cache in front and a circuit
// breaker so a flaky rate service cannot take payments down with it.
type ExchangeClient struct {
	serviceURL   string
	baseCurrency string
	httpClient   *http.Client
	rdb          *redis.Client
	cb           *CircuitBreaker
}

func NewExchangeClient(serviceURL, baseCurrency string, rdb *redis.Client) *ExchangeClient {
	return &ExchangeClient{
		serviceURL:   strings.TrimRight(serviceURL, "/"),
		baseCurrency: strings.ToUpper(baseCurrency),
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		rdb:          rdb,
		cb:           NewCircuitBreaker(DefaultCBConfig()),
	}
}

// Rate returns how many base-currency units one unit of moneda is worth.
// The base currency itself always resolves to 1.
func (c *ExchangeClient) Rate(ctx context.Context, moneda string) (decimal.Decimal, error) {
	moneda = strings.ToUpper(moneda)
	if moneda == c.baseCurrency {
		return decimal.NewFromInt(1), nil
	}
	if c.serviceURL == "" {
		return decimal.Zero, fmt.Errorf("exchange: no rate service configured, cannot accept %s", moneda)
	}

	if rate, ok := c.cachedRate(ctx, moneda); ok {
		return rate, nil
	}

	var result exchangeRateResponse
	err := c.cb.Execute(func() error {
		return c.fetchRate(ctx, moneda, &result)
	})
	if err != nil {
		return decimal.Zero, err
	}
	if result.Rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("exchange: invalid rate %s for %s", result.Rate, moneda)
	}

	c.storeRate(ctx, moneda, result.Rate)
	return result.Rate, nil
}

func (c *ExchangeClient) fetchRate(ctx context.Context, moneda string, out *exchangeRateResponse) error {
	url := fmt.Sprintf("%s/rates/%s?base=%s", c.serviceURL, moneda, c.baseCurrency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("exchange: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("exchange: service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("exchange: service returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("exchange: decode response: %w", err)
	}
	return nil
}

// cachedRate reads the cached rate. Best effort, a cache failure is a miss.
func (c *ExchangeClient) cachedRate(ctx context.Context, moneda string) (decimal.Decimal, bool) {
	if c.rdb == nil {
		return decimal.Zero, false
	}
	raw, err := c.rdb.Get(ctx, "fx:"+moneda).Result()
	if err != nil {
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}
	return rate, true
}

func (c *ExchangeClient) storeRate(ctx context.Context, moneda string, rate decimal.Decimal) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Set(ctx, "fx:"+moneda, rate.String(), fxCacheTTL).Err()
}

// BreakerState exposes the circuit breaker state for the health endpoint.
func (c *ExchangeClient) BreakerState() string {
	return c.cb.State().String()
}
