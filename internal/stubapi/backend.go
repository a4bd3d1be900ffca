// Package stubapi 内存版后端，实现与真实后端一致的 REST 契约。
// 用于本地联调（cmd/reviewdesk-stub）和各包的集成测试。
package stubapi

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"reviewdesk-mobile/internal/api"
	"reviewdesk-mobile/internal/domain"
	"reviewdesk-mobile/internal/feedback"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type account struct {
	user     domain.User
	password string
}

type stubDevice struct {
	reg       domain.DeviceRegistration
	userID    string
	pushToken string
	lastSeen  time.Time
}

// Backend 内存状态
type Backend struct {
	mu         sync.Mutex
	accounts   map[string]*account // email -> account
	tokens     map[string]string   // token -> email
	restaurant domain.Restaurant
	feedback   []domain.Feedback
	devices    map[string]*stubDevice
	now        func() time.Time
	logger     *zap.Logger
}

// NewBackend 创建空后端
func NewBackend(logger *zap.Logger) *Backend {
	return &Backend{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		devices:  make(map[string]*stubDevice),
		now:      time.Now,
		logger:   logger,
	}
}

// Handler 组装路由
func (b *Backend) Handler() *Router {
	r := NewRouter(b.logger)
	r.RegisterRoutes(b)
	return r
}

// AddUser 添加可登录账号
func (b *Backend) AddUser(email, password, name string) domain.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         "manager",
		RestaurantID: b.restaurant.ID,
	}
	b.accounts[strings.ToLower(email)] = &account{user: u, password: password}
	return u
}

// SetRestaurant 设置餐厅资料
func (b *Backend) SetRestaurant(r domain.Restaurant) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.restaurant = r
}

// AddFeedback 追加反馈；缺省 ID / CreatedAt 自动补齐
func (b *Backend) AddFeedback(items ...domain.Feedback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, f := range items {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if f.CreatedAt.IsZero() {
			f.CreatedAt = b.now()
		}
		b.feedback = append(b.feedback, f)
	}
}

// Device 查看服务端保存的设备（测试用）
func (b *Backend) Device(id string) (domain.DeviceRegistration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.devices[id]
	if !ok {
		return domain.DeviceRegistration{}, false
	}
	return d.reg, true
}

// RevokeTokens 使所有会话失效（模拟后端拒绝 token）
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = make(map[string]string)
}

type userCtx struct {
	token string
	user  domain.User
}

func (b *Backend) withUser(h func(http.ResponseWriter, *http.Request, userCtx)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		token := strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		email, ok := b.tokens[token]
		var u domain.User
		if ok {
			u = b.accounts[email].user
		}
		b.mu.Unlock()
		if token == "" || !ok {
			writeFail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		h(w, req, userCtx{token: token, user: u})
	}
}

func (b *Backend) withDevice(h func(http.ResponseWriter, *http.Request, *stubDevice)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(api.HeaderDeviceID)
		secret := req.Header.Get(api.HeaderDeviceSecret)
		b.mu.Lock()
		d, ok := b.devices[id]
		b.mu.Unlock()
		if id == "" || !ok || d.reg.DeviceSecret != secret {
			writeFail(w, http.StatusUnauthorized, "Invalid device credentials")
			return
		}
		h(w, req, d)
	}
}

func decodeBody(w http.ResponseWriter, req *http.Request, v any) bool {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (b *Backend) Login(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, req, &body) {
		return
	}
	key := strings.ToLower(strings.TrimSpace(body.Email))
	b.mu.Lock()
	acc, ok := b.accounts[key]
	if !ok || acc.password != body.Password {
		b.mu.Unlock()
		writeFail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token := uuid.NewString()
	b.tokens[token] = key
	user := acc.user
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, Ok(domain.Session{Token: token, User: user}))
}

func (b *Backend) Logout(w http.ResponseWriter, req *http.Request, u userCtx) {
	b.mu.Lock()
	delete(b.tokens, u.token)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

func (b *Backend) Me(w http.ResponseWriter, req *http.Request, u userCtx) {
	writeJSON(w, http.StatusOK, Ok(u.user))
}

func (b *Backend) GetRestaurant(w http.ResponseWriter, req *http.Request, u userCtx) {
	b.mu.Lock()
	r := b.restaurant
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, Ok(r))
}

func (b *Backend) UpdateRestaurant(w http.ResponseWriter, req *http.Request, u userCtx) {
	var upd domain.RestaurantUpdate
	if !decodeBody(w, req, &upd) {
		return
	}
	if upd.EscalationThreshold != nil && (*upd.EscalationThreshold < 1 || *upd.EscalationThreshold > 5) {
		writeFail(w, http.StatusBadRequest, "escalation_threshold must be between 1 and 5")
		return
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		writeFail(w, http.StatusBadRequest, "name is required")
		return
	}

	b.mu.Lock()
	r := &b.restaurant
	if upd.Name != nil {
		r.Name = *upd.Name
	}
	if upd.Address != nil {
		r.Address = *upd.Address
	}
	if upd.Phone != nil {
		r.Phone = *upd.Phone
	}
	if upd.Email != nil {
		r.Email = *upd.Email
	}
	if upd.NotificationEmail != nil {
		r.NotificationEmail = *upd.NotificationEmail
	}
	if upd.EscalationThreshold != nil {
		r.EscalationThreshold = *upd.EscalationThreshold
	}
	out := *r
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, Ok(out))
}

func (b *Backend) Stats(w http.ResponseWriter, req *http.Request, u userCtx) {
	b.mu.Lock()
	items := append([]domain.Feedback(nil), b.feedback...)
	now := b.now()
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, Ok(computeStats(items, now)))
}

func computeStats(items []domain.Feedback, now time.Time) domain.RestaurantStats {
	var s domain.RestaurantStats
	var ratingSum float64
	var rated int
	fieldSums := map[string]float64{}
	fieldCounts := map[string]int{}
	var fieldOrder []string

	y, m, d := now.Date()
	for _, f := range items {
		s.TotalFeedback++
		if fy, fm, fd := f.CreatedAt.In(now.Location()).Date(); fy == y && fm == m && fd == d {
			s.FeedbackToday++
		}
		if f.IsEscalated {
			s.EscalatedCount++
			if !f.IsResolved {
				s.PendingCount++
			}
		}
		if f.IsResolved {
			s.ResolvedCount++
		}
		if feedback.HasRating(f) {
			ratingSum += feedback.AverageRating(f)
			rated++
		}
		for _, e := range f.Ratings.Entries() {
			v, ok := e.Value.(float64)
			if !ok || v <= 0 {
				continue
			}
			if _, seen := fieldCounts[e.Key]; !seen {
				fieldOrder = append(fieldOrder, e.Key)
			}
			fieldSums[e.Key] += v
			fieldCounts[e.Key]++
		}
	}
	if rated > 0 {
		s.AverageRating = roundTo1(ratingSum / float64(rated))
	}
	for _, k := range fieldOrder {
		s.FieldAverages.Set(k, roundTo1(fieldSums[k]/float64(fieldCounts[k])))
	}
	return s
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (b *Backend) ListFeedback(w http.ResponseWriter, req *http.Request, u userCtx) {
	q := req.URL.Query()
	page := atoiDefault(q.Get("page"), 1)
	limit := atoiDefault(q.Get("limit"), 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	b.mu.Lock()
	items := feedback.Filter(b.feedback, feedback.Query{
		Status: feedback.ParseStatus(q.Get("status")),
		Search: q.Get("search"),
	})
	b.mu.Unlock()

	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	writeJSON(w, http.StatusOK, Ok(domain.FeedbackPage{
		Items: items[start:end],
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func (b *Backend) findFeedback(id string) (int, bool) {
	for i := range b.feedback {
		if b.feedback[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (b *Backend) GetFeedback(w http.ResponseWriter, req *http.Request, u userCtx, id string) {
	b.mu.Lock()
	i, ok := b.findFeedback(id)
	var f domain.Feedback
	if ok {
		f = b.feedback[i]
	}
	b.mu.Unlock()
	if !ok {
		writeFail(w, http.StatusNotFound, "Feedback not found")
		return
	}
	writeJSON(w, http.StatusOK, Ok(f))
}

func (b *Backend) ResolveFeedback(w http.ResponseWriter, req *http.Request, u userCtx, id string) {
	b.mu.Lock()
	i, ok := b.findFeedback(id)
	var f domain.Feedback
	if ok {
		now := b.now()
		b.feedback[i].IsResolved = true
		b.feedback[i].ResolvedAt = &now
		f = b.feedback[i]
	}
	b.mu.Unlock()
	if !ok {
		writeFail(w, http.StatusNotFound, "Feedback not found")
		return
	}
	writeJSON(w, http.StatusOK, Ok(f))
}

func (b *Backend) RegisterDevice(w http.ResponseWriter, req *http.Request, u userCtx) {
	var body domain.RegisterDeviceRequest
	if !decodeBody(w, req, &body) {
		return
	}
	if !body.Severity.Valid() {
		writeFail(w, http.StatusBadRequest, "severity must be one of low, medium, high")
		return
	}
	if body.DeviceID == "" {
		body.DeviceID = uuid.NewString()
	}

	reg := domain.DeviceRegistration{
		DeviceID:     body.DeviceID,
		DeviceSecret: uuid.NewString(),
		DeviceName:   body.DeviceName,
		Severity:     body.Severity,
		RegisteredAt: b.now().UTC(),
	}
	b.mu.Lock()
	// 重新注册同一设备会轮换 secret
	b.devices[reg.DeviceID] = &stubDevice{
		reg:       reg,
		userID:    u.user.ID,
		pushToken: body.PushToken,
		lastSeen:  reg.RegisteredAt,
	}
	b.mu.Unlock()

	b.logger.Info("device registered", zap.String("device_id", reg.DeviceID), zap.String("severity", string(reg.Severity)))
	writeJSON(w, http.StatusCreated, Ok(reg))
}

func (b *Backend) UpdateSubscription(w http.ResponseWriter, req *http.Request, d *stubDevice) {
	var body struct {
		Severity domain.Severity `json:"severity"`
	}
	if !decodeBody(w, req, &body) {
		return
	}
	if !body.Severity.Valid() {
		writeFail(w, http.StatusBadRequest, "severity must be one of low, medium, high")
		return
	}
	b.mu.Lock()
	d.reg.Severity = body.Severity
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, Ok(body))
}

func (b *Backend) Heartbeat(w http.ResponseWriter, req *http.Request, d *stubDevice) {
	b.mu.Lock()
	d.lastSeen = b.now()
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

// Escalations 返回未处理、且级别不低于设备订阅级别的升级反馈
func (b *Backend) Escalations(w http.ResponseWriter, req *http.Request, d *stubDevice) {
	b.mu.Lock()
	threshold := d.reg.Severity.Rank()
	out := make([]domain.Feedback, 0)
	for _, f := range b.feedback {
		if f.IsEscalated && !f.IsResolved && f.Severity.Rank() >= threshold {
			out = append(out, f)
		}
	}
	d.lastSeen = b.now()
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, Ok(out))
}
