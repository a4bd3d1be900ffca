package stubapi

import (
	"net/http"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux，附带请求计数
type Router struct {
	mux      *http.ServeMux
	logger   *zap.Logger
	requests atomic.Int64
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.requests.Add(1)
	r.logger.Debug("stub request", zap.String("method", req.Method), zap.String("path", req.URL.Path))
	r.mux.ServeHTTP(w, req)
}

// Requests 已处理的请求总数
func (r *Router) Requests() int64 { return r.requests.Load() }

func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			writeFail(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h(w, req)
	}
}

// RegisterRoutes 注册全部后端接口
func (r *Router) RegisterRoutes(b *Backend) {
	r.Handle("/api/auth/login", methodOnly(http.MethodPost, b.Login))
	r.Handle("/api/auth/logout", methodOnly(http.MethodPost, b.withUser(b.Logout)))
	r.Handle("/api/auth/me", methodOnly(http.MethodGet, b.withUser(b.Me)))

	r.Handle("/api/restaurant", b.withUser(func(w http.ResponseWriter, req *http.Request, u userCtx) {
		switch req.Method {
		case http.MethodGet:
			b.GetRestaurant(w, req, u)
		case http.MethodPut:
			b.UpdateRestaurant(w, req, u)
		default:
			writeFail(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}))
	r.Handle("/api/restaurant/stats", methodOnly(http.MethodGet, b.withUser(b.Stats)))

	r.Handle("/api/feedback", methodOnly(http.MethodGet, b.withUser(b.ListFeedback)))
	// /api/feedback/{id} 和 /api/feedback/{id}/resolve
	r.Handle("/api/feedback/", b.withUser(func(w http.ResponseWriter, req *http.Request, u userCtx) {
		rest := strings.TrimPrefix(req.URL.Path, "/api/feedback/")
		id, action, _ := strings.Cut(rest, "/")
		switch {
		case id == "":
			writeFail(w, http.StatusNotFound, "not found")
		case action == "" && req.Method == http.MethodGet:
			b.GetFeedback(w, req, u, id)
		case action == "resolve" && req.Method == http.MethodPatch:
			b.ResolveFeedback(w, req, u, id)
		default:
			writeFail(w, http.StatusNotFound, "not found")
		}
	}))

	r.Handle("/api/devices/register", methodOnly(http.MethodPost, b.withUser(b.RegisterDevice)))
	r.Handle("/api/devices/subscription", methodOnly(http.MethodPut, b.withDevice(b.UpdateSubscription)))
	r.Handle("/api/devices/heartbeat", methodOnly(http.MethodPost, b.withDevice(b.Heartbeat)))
	r.Handle("/api/devices/escalations", methodOnly(http.MethodGet, b.withDevice(b.Escalations)))
}
