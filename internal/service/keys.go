package service

// 本地 KV 键名（固定，无版本）
const (
	KeySessionToken       = "reviewdesk:session:token"
	KeySessionUser        = "reviewdesk:session:user"
	KeyDeviceID           = "reviewdesk:device:id"
	KeyDeviceSecret       = "reviewdesk:device:secret"
	KeyDeviceRegistration = "reviewdesk:device:registration"
	KeyInstallID          = "reviewdesk:device:install_id"
)
