package screen

import (
	"errors"

	"reviewdesk-mobile/internal/api"
	"reviewdesk-mobile/internal/service"
)

// ErrorKind 错误分类：传输失败 / 后端业务失败 / 本地前置条件
type ErrorKind string

const (
	KindTransport    ErrorKind = "transport"
	KindServer       ErrorKind = "server"
	KindPrecondition ErrorKind = "precondition"
	KindUnknown      ErrorKind = "unknown"
)

// Classify 按错误链判断类别
func Classify(err error) ErrorKind {
	var tErr *api.TransportError
	var aErr *api.Error
	switch {
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, service.ErrDeviceNotRegistered),
		errors.Is(err, service.ErrPushPermission),
		errors.Is(err, service.ErrPushTokenMissing),
		errors.Is(err, service.ErrInvalidSeverity),
		errors.Is(err, service.ErrNothingToUpdate):
		return KindPrecondition
	case errors.As(err, &tErr):
		return KindTransport
	case errors.As(err, &aErr):
		return KindServer
	default:
		return KindUnknown
	}
}

// Alert 阻塞式提示（终端下为带边框的消息 + 确认提示）
func Alert(err error) string {
	title, hint := "Error", ""
	switch Classify(err) {
	case KindTransport:
		title, hint = "Connection problem", "Check your network connection and try again."
	case KindServer:
		title = "Request failed"
	case KindPrecondition:
		title = "Action needed"
		switch {
		case errors.Is(err, service.ErrNotAuthenticated):
			hint = "Run `reviewdesk login` first."
		case errors.Is(err, service.ErrDeviceNotRegistered):
			hint = "Register this device with `reviewdesk device register`."
		}
	}
	if errors.Is(err, service.ErrEscalationsUnavailable) {
		hint = "Check this device's registration with `reviewdesk device status`, or register again with `reviewdesk device register`."
	}
	body := titleStyle.Render(title) + "\n" + err.Error()
	if hint != "" {
		body += "\n" + mutedStyle.Render(hint)
	}
	return alertStyle.Render(body) + "\n" + mutedStyle.Render("[OK]") + "\n"
}
