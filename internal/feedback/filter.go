package feedback

import (
	"strings"

	"reviewdesk-mobile/internal/domain"
)

// Status 列表状态筛选
type Status string

const (
	StatusAll       Status = "all"
	StatusEscalated Status = "escalated"
	StatusResolved  Status = "resolved"
	StatusPending   Status = "pending"
)

// ParseStatus 未知值按 all 处理
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusEscalated:
		return StatusEscalated
	case StatusResolved:
		return StatusResolved
	case StatusPending:
		return StatusPending
	default:
		return StatusAll
	}
}

// Query 客户端搜索条件
type Query struct {
	Search string
	Status Status
}

// Filter 客户端过滤，保持原顺序，不修改入参
// Search 对顾客姓名/邮箱/电话及展示评论做不区分大小写的子串匹配
func Filter(items []domain.Feedback, q Query) []domain.Feedback {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.Feedback, 0, len(items))
	for _, f := range items {
		if !matchStatus(f, q.Status) {
			continue
		}
		if needle != "" && !matchSearch(f, needle) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func matchStatus(f domain.Feedback, s Status) bool {
	switch s {
	case StatusEscalated:
		return f.IsEscalated
	case StatusResolved:
		return f.IsResolved
	case StatusPending:
		// 已升级但未处理
		return f.IsEscalated && !f.IsResolved
	default:
		return true
	}
}

func matchSearch(f domain.Feedback, needle string) bool {
	candidates := []*string{f.CustomerName, f.CustomerEmail, f.CustomerPhone, DisplayComment(f)}
	for _, c := range candidates {
		if c != nil && strings.Contains(strings.ToLower(*c), needle) {
			return true
		}
	}
	return false
}
