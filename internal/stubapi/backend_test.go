package stubapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reviewdesk-mobile/internal/api"
	"reviewdesk-mobile/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newSeeded(t *testing.T) (*Backend, *Router) {
	t.Helper()
	b := NewBackend(zap.NewNop())
	b.now = func() time.Time { return fixedNow }
	SeedDemo(b)
	return b, b.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) Result[T] {
	t.Helper()
	var res Result[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func loginToken(t *testing.T, h http.Handler) string {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/auth/login",
		`{"email":"`+DemoEmail+`","password":"`+DemoPassword+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[domain.Session](t, w)
	require.True(t, res.Success)
	return res.Data.Token
}

func TestLogin_WrongPassword(t *testing.T) {
	_, h := newSeeded(t)
	w := do(t, h, http.MethodPost, "/api/auth/login", `{"email":"`+DemoEmail+`","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	res := decode[any](t, w)
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid email or password", res.Message)
}

func TestBearerRequired(t *testing.T) {
	_, h := newSeeded(t)
	w := do(t, h, http.MethodGet, "/api/restaurant", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := loginToken(t, h)
	w = do(t, h, http.MethodGet, "/api/restaurant", "", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Demo Bistro", decode[domain.Restaurant](t, w).Data.Name)
}

func TestComputeStats_Seed(t *testing.T) {
	b, _ := newSeeded(t)
	st := computeStats(b.feedback, fixedNow)

	assert.Equal(t, 4, st.TotalFeedback)
	assert.Equal(t, 2, st.FeedbackToday)
	assert.Equal(t, 3, st.EscalatedCount)
	assert.Equal(t, 2, st.PendingCount)
	assert.Equal(t, 1, st.ResolvedCount)
	assert.InDelta(t, 2.9, st.AverageRating, 1e-9)

	assert.Equal(t, []string{"service", "food", "cleanliness"}, st.FieldAverages.Keys())
	service, _ := st.FieldAverages.Number("service")
	assert.InDelta(t, 3.0, service, 1e-9)
}

func TestListFeedback_StatusAndPaging(t *testing.T) {
	_, h := newSeeded(t)
	auth := map[string]string{"Authorization": "Bearer " + loginToken(t, h)}

	w := do(t, h, http.MethodGet, "/api/feedback?status=pending", "", auth)
	page := decode[domain.FeedbackPage](t, w).Data
	assert.Equal(t, 2, page.Total)

	w = do(t, h, http.MethodGet, "/api/feedback?page=2&limit=3", "", auth)
	page = decode[domain.FeedbackPage](t, w).Data
	assert.Equal(t, 4, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "fb-1004", page.Items[0].ID)
}

func TestResolveFeedback(t *testing.T) {
	_, h := newSeeded(t)
	auth := map[string]string{"Authorization": "Bearer " + loginToken(t, h)}

	w := do(t, h, http.MethodPatch, "/api/feedback/fb-1002/resolve", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	f := decode[domain.Feedback](t, w).Data
	assert.True(t, f.IsResolved)
	assert.NotNil(t, f.ResolvedAt)

	w = do(t, h, http.MethodPatch, "/api/feedback/missing/resolve", "", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/api/feedback/fb-1002/resolve", "", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeviceEndpoints(t *testing.T) {
	b, h := newSeeded(t)
	auth := map[string]string{"Authorization": "Bearer " + loginToken(t, h)}

	w := do(t, h, http.MethodPost, "/api/devices/register",
		`{"device_id":"tab-1","device_name":"Bar","push_token":"t","platform":"ios","severity":"urgent"}`, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/api/devices/register",
		`{"device_id":"tab-1","device_name":"Bar","push_token":"t","platform":"ios","severity":"high"}`, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	reg := decode[domain.DeviceRegistration](t, w).Data
	require.NotEmpty(t, reg.DeviceSecret)

	dev := map[string]string{api.HeaderDeviceID: "tab-1", api.HeaderDeviceSecret: "wrong"}
	w = do(t, h, http.MethodGet, "/api/devices/escalations", "", dev)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	dev[api.HeaderDeviceSecret] = reg.DeviceSecret
	w = do(t, h, http.MethodGet, "/api/devices/escalations", "", dev)
	items := decode[[]domain.Feedback](t, w).Data
	require.Len(t, items, 1)
	assert.Equal(t, "fb-1002", items[0].ID)

	w = do(t, h, http.MethodPut, "/api/devices/subscription", `{"severity":"low"}`, dev)
	require.Equal(t, http.StatusOK, w.Code)
	stored, ok := b.Device("tab-1")
	require.True(t, ok)
	assert.Equal(t, domain.SeverityLow, stored.Severity)

	// 低级别订阅仍不包含已处理的 fb-1004
	w = do(t, h, http.MethodGet, "/api/devices/escalations", "", dev)
	items = decode[[]domain.Feedback](t, w).Data
	assert.Len(t, items, 2)
}

func TestRouter_CountsRequestsAndMethods(t *testing.T) {
	_, h := newSeeded(t)
	w := do(t, h, http.MethodGet, "/api/auth/login", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, int64(1), h.Requests())
}
