package domain

import "time"

// DeviceRegistration 设备注册信息（本地缓存的注册摘要）
// DeviceSecret 是设备级能力凭证，不是用户会话 token
type DeviceRegistration struct {
	DeviceID     string    `json:"device_id"`
	DeviceSecret string    `json:"device_secret,omitempty"`
	DeviceName   string    `json:"device_name,omitempty"`
	Severity     Severity  `json:"severity"`
	RegisteredAt time.Time `json:"registered_at"`
}

// RegisterDeviceRequest POST /api/devices/register 请求体
type RegisterDeviceRequest struct {
	DeviceID   string   `json:"device_id"`
	DeviceName string   `json:"device_name"`
	PushToken  string   `json:"push_token"`
	Platform   string   `json:"platform"`
	Severity   Severity `json:"severity"`
}
