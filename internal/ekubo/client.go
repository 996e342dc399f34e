package ekubo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"swapScope/internal/model"
)

const (
	DefaultBaseURL        = "https://sepolia-api.ekubo.org"
	DefaultCacheTTL       = 5 * time.Minute
	DefaultRequestTimeout = 15 * time.Second

	poolsKey = "pools"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Config holds pools API client settings.
type Config struct {
	BaseURL        string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
}

// CacheStatus reports the state of the pool list cache.
type CacheStatus struct {
	Pools   EntryStatus `json:"pools"`
	Details int         `json:"details"`
}

// Client reads pools and pool details from the Ekubo HTTP API.
type Client struct {
	cfg     Config
	http    *http.Client
	logger  *zap.Logger
	pools   *TTLCache[[]model.Pool]
	details *TTLCache[model.PoolDetails]
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger,
		pools:   NewTTLCache[[]model.Pool](cfg.CacheTTL, nil),
		details: NewTTLCache[model.PoolDetails](cfg.CacheTTL, nil),
	}
}

// Pools returns every pool, served from cache while fresh.
func (c *Client) Pools(ctx context.Context) ([]model.Pool, error) {
	if pools, ok := c.pools.Get(poolsKey); ok {
		return pools, nil
	}

	body, err := c.get(ctx, "/pools")
	if err != nil {
		return nil, fmt.Errorf("fetch pools: %w", err)
	}

	var pools []model.Pool
	if err := json.Unmarshal(body, &pools); err != nil {
		return nil, fmt.Errorf("decode pools: %w", err)
	}

	c.pools.Set(poolsKey, pools)
	c.logger.Debug("pools fetched", zap.Int("count", len(pools)))
	return pools, nil
}

// PoolDetails returns the pool key and both tokens' metadata for one pool.
func (c *Client) PoolDetails(ctx context.Context, keyHash string) (model.PoolDetails, error) {
	keyHash = strings.TrimSpace(keyHash)
	if keyHash == "" {
		return model.PoolDetails{}, errors.New("pool key hash is required")
	}
	if details, ok := c.details.Get(keyHash); ok {
		return details, nil
	}

	body, err := c.get(ctx, "/pools/"+url.PathEscape(keyHash))
	if err != nil {
		return model.PoolDetails{}, fmt.Errorf("fetch pool details %s: %w", keyHash, err)
	}
	if !gjson.ValidBytes(body) {
		return model.PoolDetails{}, fmt.Errorf("decode pool details %s: invalid json", keyHash)
	}

	details := parseDetails(gjson.ParseBytes(body))
	c.details.Set(keyHash, details)
	return details, nil
}

// ClearCache drops cached pools and pool details.
func (c *Client) ClearCache() {
	c.pools.Clear()
	c.details.Clear()
}

func (c *Client) CacheStatus() CacheStatus {
	return CacheStatus{
		Pools:   c.pools.Status(poolsKey),
		Details: c.details.Len(),
	}
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	var body []byte
	err := withRetry(ctx, c.cfg.MaxRetries, c.cfg.RetryBackoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
		if err != nil {
			return permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			c.logger.Warn("pools api request failed", zap.String("path", path), zap.Error(err))
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			statusErr := fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return permanent(statusErr)
			}
			c.logger.Warn("pools api status", zap.String("path", path), zap.Int("status", resp.StatusCode))
			return statusErr
		}

		body = data
		return nil
	})
	return body, err
}

func parseDetails(doc gjson.Result) model.PoolDetails {
	key := doc.Get("pool_key")
	return model.PoolDetails{
		Key: model.PoolKey{
			Token0:      key.Get("token0").String(),
			Token1:      key.Get("token1").String(),
			Fee:         key.Get("fee").String(),
			TickSpacing: key.Get("tick_spacing").Int(),
			Extension:   key.Get("extension").String(),
		},
		Token0: parseToken(doc.Get("human_readable.token0"), key.Get("token0").String()),
		Token1: parseToken(doc.Get("human_readable.token1"), key.Get("token1").String()),
	}
}

func parseToken(node gjson.Result, fallbackAddress string) model.TokenMeta {
	address := node.Get("l2_token_address").String()
	if address == "" {
		address = fallbackAddress
	}
	decimals := node.Get("decimals").Uint()
	if decimals > 255 {
		decimals = 0
	}
	return model.TokenMeta{
		Address:  address,
		Symbol:   node.Get("symbol").String(),
		Name:     node.Get("name").String(),
		Decimals: uint8(decimals),
		LogoURL:  node.Get("logo_url").String(),
	}
}
