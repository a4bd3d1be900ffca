package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized 后端拒绝凭证（HTTP 401），用 errors.Is 判断
var ErrUnauthorized = errors.New("unauthorized")

// Error 后端返回的业务失败（非 2xx 或 success=false）
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// TransportError 网络/传输层失败（请求未得到可解析的响应）
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
