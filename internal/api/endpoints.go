package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"reviewdesk-mobile/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/auth/login
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var s domain.Session
	err := c.do(ctx, http.MethodPost, "/api/auth/login", anonymous,
		loginRequest{Email: email, Password: password}, &s)
	return s, err
}

// Logout POST /api/auth/logout
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", bearer(token), nil, nil)
}

// Me GET /api/auth/me
func (c *Client) Me(ctx context.Context, token string) (domain.User, error) {
	var u domain.User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", bearer(token), nil, &u)
	return u, err
}

func (c *Client) Restaurant(ctx context.Context, token string) (domain.Restaurant, error) {
	var r domain.Restaurant
	err := c.do(ctx, http.MethodGet, "/api/restaurant", bearer(token), nil, &r)
	return r, err
}

func (c *Client) UpdateRestaurant(ctx context.Context, token string, upd domain.RestaurantUpdate) (domain.Restaurant, error) {
	var r domain.Restaurant
	err := c.do(ctx, http.MethodPut, "/api/restaurant", bearer(token), upd, &r)
	return r, err
}

func (c *Client) Stats(ctx context.Context, token string) (domain.RestaurantStats, error) {
	var s domain.RestaurantStats
	err := c.do(ctx, http.MethodGet, "/api/restaurant/stats", bearer(token), nil, &s)
	return s, err
}

// ListParams 反馈列表查询参数
type ListParams struct {
	Page   int
	Limit  int
	Status string // all | escalated | resolved | pending
}

func (p ListParams) encode() string {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Status != "" && p.Status != "all" {
		v.Set("status", p.Status)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListFeedback GET /api/feedback
func (c *Client) ListFeedback(ctx context.Context, token string, p ListParams) (domain.FeedbackPage, error) {
	var page domain.FeedbackPage
	err := c.do(ctx, http.MethodGet, "/api/feedback"+p.encode(), bearer(token), nil, &page)
	return page, err
}

// Feedback GET /api/feedback/{id}
func (c *Client) Feedback(ctx context.Context, token, id string) (domain.Feedback, error) {
	var f domain.Feedback
	err := c.do(ctx, http.MethodGet, "/api/feedback/"+url.PathEscape(id), bearer(token), nil, &f)
	return f, err
}

// ResolveFeedback PATCH /api/feedback/{id}/resolve
func (c *Client) ResolveFeedback(ctx context.Context, token, id string) (domain.Feedback, error) {
	var f domain.Feedback
	err := c.do(ctx, http.MethodPatch, "/api/feedback/"+url.PathEscape(id)+"/resolve", bearer(token), nil, &f)
	return f, err
}

// RegisterDevice POST /api/devices/register（用户会话鉴权），返回设备 id + secret
func (c *Client) RegisterDevice(ctx context.Context, token string, req domain.RegisterDeviceRequest) (domain.DeviceRegistration, error) {
	var reg domain.DeviceRegistration
	err := c.do(ctx, http.MethodPost, "/api/devices/register", bearer(token), req, &reg)
	return reg, err
}

type subscriptionRequest struct {
	Severity domain.Severity `json:"severity"`
}

// UpdateSubscription PUT /api/devices/subscription（设备凭证鉴权）
func (c *Client) UpdateSubscription(ctx context.Context, creds DeviceCredentials, severity domain.Severity) (domain.Severity, error) {
	var out subscriptionRequest
	err := c.do(ctx, http.MethodPut, "/api/devices/subscription", device(creds),
		subscriptionRequest{Severity: severity}, &out)
	if err != nil {
		return "", err
	}
	if out.Severity == "" {
		out.Severity = severity
	}
	return out.Severity, nil
}

// Heartbeat POST /api/devices/heartbeat
func (c *Client) Heartbeat(ctx context.Context, creds DeviceCredentials) error {
	return c.do(ctx, http.MethodPost, "/api/devices/heartbeat", device(creds), nil, nil)
}

// DeviceEscalations GET /api/devices/escalations，服务端已按订阅级别过滤
func (c *Client) DeviceEscalations(ctx context.Context, creds DeviceCredentials) ([]domain.Feedback, error) {
	var items []domain.Feedback
	err := c.do(ctx, http.MethodGet, "/api/devices/escalations", device(creds), nil, &items)
	return items, err
}
