package wechat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/spec-kit/miniorder-service/internal/config"
	"github.com/spec-kit/miniorder-service/pkg/util"
)

// Identity is the normalized result of a successful code exchange.
type Identity struct {
	OpenID     string
	UnionID    string
	SessionKey string
}

// Exchanger converts a short-lived login code into a stable identity.
type Exchanger interface {
	ExchangeCode(ctx context.Context, code string) (*Identity, error)
}

// Client calls the WeChat jscode2session endpoint.
type Client struct {
	appID      string
	appSecret  string
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient validates the app credentials and builds a client with a bounded
// per-call timeout.
func NewClient(cfg config.WeChatConfig, logger *zap.Logger) (*Client, error) {
	if cfg.AppID == "" || cfg.AppSecret == "" {
		return nil, errors.New("wechat config missing appid or secret")
	}
	return &Client{
		appID:      cfg.AppID,
		appSecret:  cfg.AppSecret,
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
	}, nil
}

// code2session responses carry either an openid or an errcode, never both.
type sessionResponse struct {
	OpenID     string `json:"openid"`
	UnionID    string `json:"unionid"`
	SessionKey string `json:"session_key"`
	ErrCode    int    `json:"errcode"`
	ErrMsg     string `json:"errmsg"`
}

// ExchangeCode sends the code with the app credentials to the provider and
// normalizes the outcome. A provider-reported errcode is a rejection of the
// code itself; everything else that prevents a parseable identity is a
// transient transport failure.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Identity, error) {
	if code == "" {
		return nil, util.NewInvalidArgument("code must not be empty", nil)
	}

	query := url.Values{}
	query.Set("appid", c.appID)
	query.Set("secret", c.appSecret)
	query.Set("js_code", code)
	query.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, util.NewUpstreamUnavailable("build code2session request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, util.NewUpstreamUnavailable("code2session request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, util.NewUpstreamUnavailable("read code2session response", err)
	}

	var parsed sessionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, util.NewUpstreamUnavailable(
				fmt.Sprintf("code2session returned status %d", resp.StatusCode), nil)
		}
		return nil, util.NewUpstreamUnavailable("malformed code2session response", err)
	}

	if parsed.ErrCode != 0 {
		c.logger.Warn("code2session rejected",
			zap.Int("errcode", parsed.ErrCode),
			zap.String("errmsg", parsed.ErrMsg))
		return nil, util.NewUpstreamRejected(
			fmt.Sprintf("wechat api error: %s", parsed.ErrMsg))
	}

	if parsed.OpenID == "" {
		return nil, util.NewUpstreamUnavailable("code2session response missing openid", nil)
	}

	return &Identity{
		OpenID:     parsed.OpenID,
		UnionID:    parsed.UnionID,
		SessionKey: parsed.SessionKey,
	}, nil
}
