package domain

import "strings"

// Severity 升级（escalation）严重级别，同时也是设备的通知订阅级别
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Severities 所有合法级别（由低到高）
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

// ParseSeverity 解析级别字符串（忽略大小写和首尾空白）
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow, true
	case SeverityMedium:
		return SeverityMedium, true
	case SeverityHigh:
		return SeverityHigh, true
	}
	return "", false
}

// Rank 在 Severities 中的位置（low=1），非法级别为 0
func (s Severity) Rank() int {
	for i, sev := range Severities {
		if s == sev {
			return i + 1
		}
	}
	return 0
}

// Valid 仅接受规范写法（小写、无空白）
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// PushPermission 推送通知权限状态（由设备推送子系统提供）
type PushPermission string

const (
	PushPermissionGranted      PushPermission = "granted"
	PushPermissionDenied       PushPermission = "denied"
	PushPermissionUndetermined PushPermission = "undetermined"
)
