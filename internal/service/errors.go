package service

import "errors"

// 本地前置条件失败：在发起任何网络请求之前检测
var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrDeviceNotRegistered = errors.New("device not registered")
	ErrPushPermission      = errors.New("push notification permission not granted")
	ErrPushTokenMissing    = errors.New("push token is required")
	ErrInvalidSeverity     = errors.New("severity must be one of low, medium, high")
	ErrNothingToUpdate     = errors.New("no settings to update")
)

// ErrEscalationsUnavailable 设备升级列表请求失败（凭证被拒、服务端或网络错误），
// 与底层 api 错误一起包装
var ErrEscalationsUnavailable = errors.New("escalations unavailable")
