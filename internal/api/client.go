package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	commoncfg "reviewdesk-mobile/common/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	HeaderDeviceID     = "X-Device-Id"
	HeaderDeviceSecret = "X-Device-Secret"

	defaultTimeout = 15 * time.Second
)

// Envelope 后端统一响应格式
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// DeviceCredentials 设备级凭证（设备接口使用，不带用户 token）
type DeviceCredentials struct {
	DeviceID     string
	DeviceSecret string
}

// auth 给请求附加凭证
type auth func(r *resty.Request)

func bearer(token string) auth {
	return func(r *resty.Request) { r.SetAuthToken(token) }
}

func device(c DeviceCredentials) auth {
	return func(r *resty.Request) {
		r.SetHeader(HeaderDeviceID, c.DeviceID)
		r.SetHeader(HeaderDeviceSecret, c.DeviceSecret)
	}
}

func anonymous(*resty.Request) {}

// Client 后端 REST API 客户端
// 不做自动重试：失败直接返回给调用方，由界面提示用户
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient 创建 API 客户端
func NewClient(cfg commoncfg.APIConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "reviewdesk-mobile")

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// do 发送请求并解析 Envelope；out 为 nil 时忽略 data
func (c *Client) do(ctx context.Context, method, path string, a auth, body any, out any) error {
	req := c.httpClient.R().SetContext(ctx)
	a(req)
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return &TransportError{Op: method + " " + path, Err: err}
	}

	c.logger.Debug("API request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode()),
		zap.Duration("elapsed", time.Since(start)),
	)

	var env Envelope
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &env); err != nil {
			if resp.IsError() {
				return &Error{Status: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
			}
			return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}
	}

	if resp.IsError() || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		c.logger.Info("API returned error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("msg", msg),
		)
		return &Error{Status: resp.StatusCode(), Message: msg}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode %s %s data: %w", method, path, err)
		}
	}
	return nil
}
