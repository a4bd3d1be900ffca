package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Feedback 顾客反馈记录（后端 /api/feedback 返回的单条数据）
//
// Ratings / Comments 的键由餐厅的反馈表单配置决定，因此使用有序映射；
// Rating / Comment 是后端预先计算的主评分/主评论（兼容旧版单值字段）。
type Feedback struct {
	ID string `json:"id"`

	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	CustomerEmail *string `json:"customer_email,omitempty"`

	Ratings  Fields `json:"ratings"`
	Comments Fields `json:"comments"`

	Rating  *float64 `json:"rating,omitempty"`
	Comment *string  `json:"comment,omitempty"`

	Images []string `json:"images,omitempty"`

	IsEscalated      bool     `json:"is_escalated"`
	EscalationReason *string  `json:"escalation_reason,omitempty"`
	Severity         Severity `json:"severity,omitempty"`

	IsResolved bool       `json:"is_resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// FeedbackPage 分页列表
type FeedbackPage struct {
	Items []Feedback `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// UnmarshalJSON rating 兼容数字和数字字符串，其它值视为缺失
func (f *Feedback) UnmarshalJSON(data []byte) error {
	type plain Feedback
	aux := struct {
		*plain
		Rating json.RawMessage `json:"rating,omitempty"`
	}{plain: (*plain)(f)}
	f.Rating = nil
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.Rating = lenientNumber(aux.Rating)
	return nil
}

func lenientNumber(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var v float64
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		v = n
	default:
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
