package domain

// Restaurant 餐厅资料（设置页）
type Restaurant struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Address             string      `json:"address,omitempty"`
	Phone               string      `json:"phone,omitempty"`
	Email               string      `json:"email,omitempty"`
	NotificationEmail   string      `json:"notification_email,omitempty"`
	EscalationThreshold float64     `json:"escalation_threshold"`
	FormFields          []FormField `json:"form_fields,omitempty"`
}

// FormField 反馈表单字段配置
type FormField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"` // "rating" | "text"
}

// RestaurantUpdate PUT /api/restaurant 请求体，nil 字段不修改
type RestaurantUpdate struct {
	Name                *string  `json:"name,omitempty"`
	Address             *string  `json:"address,omitempty"`
	Phone               *string  `json:"phone,omitempty"`
	Email               *string  `json:"email,omitempty"`
	NotificationEmail   *string  `json:"notification_email,omitempty"`
	EscalationThreshold *float64 `json:"escalation_threshold,omitempty"`
}

// Empty 没有任何待修改字段
func (u RestaurantUpdate) Empty() bool {
	return u.Name == nil && u.Address == nil && u.Phone == nil && u.Email == nil &&
		u.NotificationEmail == nil && u.EscalationThreshold == nil
}

// RestaurantStats 仪表盘统计
type RestaurantStats struct {
	TotalFeedback  int     `json:"total_feedback"`
	AverageRating  float64 `json:"average_rating"`
	EscalatedCount int     `json:"escalated_count"`
	ResolvedCount  int     `json:"resolved_count"`
	PendingCount   int     `json:"pending_count"`
	FeedbackToday  int     `json:"feedback_today"`
	FieldAverages  Fields  `json:"field_averages"`
}
