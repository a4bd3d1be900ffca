// Package feedback 反馈记录的客户端归一化与展示分类逻辑。
//
// 所有函数都是纯函数：不做 I/O、不返回错误，任何输入都退化为确定的默认值。
package feedback

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"reviewdesk-mobile/internal/domain"
)

const (
	// DefaultMaxRatings 列表/详情中最多展示的评分项数量（展示约束，不是数据限制）
	DefaultMaxRatings = 5
	// CommentSeparator 多个评论字段拼接时使用的分隔符
	CommentSeparator = " | "
)

// RatingEntry 单个展示用评分项
type RatingEntry struct {
	Label string
	Value float64
}

// AverageRating 计算代表性评分
// 1. 后端预计算的主评分 > 0 时优先使用
// 2. 否则取 Ratings 中所有 > 0 的数值的算术平均
// 3. 否则返回 0.0
// 结果保留一位小数
func AverageRating(f domain.Feedback) float64 {
	if hasPrimaryRating(f) {
		return round1(*f.Rating)
	}
	values := positiveRatings(f.Ratings)
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, e := range values {
		sum += e.Value
	}
	return round1(sum / float64(len(values)))
}

// HasRating 是否存在任何有效评分（区分“未评分”与“评分为 0”）
func HasRating(f domain.Feedback) bool {
	return hasPrimaryRating(f) || len(positiveRatings(f.Ratings)) > 0
}

// DisplayComment 选取代表性评论
// 主评论去空白后非空则原样返回；否则拼接 Comments 中非空字符串；都没有返回 nil
func DisplayComment(f domain.Feedback) *string {
	if f.Comment != nil && strings.TrimSpace(*f.Comment) != "" {
		c := *f.Comment
		return &c
	}
	var parts []string
	for _, e := range f.Comments.Entries() {
		s, ok := e.Value.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, CommentSeparator)
	return &joined
}

// DisplayRatings 返回按插入顺序排列、值 > 0 的评分项，最多 maxCount 个
// maxCount <= 0 时使用 DefaultMaxRatings；值不做四舍五入
func DisplayRatings(f domain.Feedback, maxCount int) []RatingEntry {
	if maxCount <= 0 {
		maxCount = DefaultMaxRatings
	}
	entries := positiveRatings(f.Ratings)
	if len(entries) > maxCount {
		entries = entries[:maxCount]
	}
	for i := range entries {
		entries[i].Label = capitalize(entries[i].Label)
	}
	return entries
}

func positiveRatings(fields domain.Fields) []RatingEntry {
	var out []RatingEntry
	for _, e := range fields.Entries() {
		v, ok := e.Value.(float64)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			continue
		}
		out = append(out, RatingEntry{Label: e.Key, Value: v})
	}
	return out
}

func hasPrimaryRating(f domain.Feedback) bool {
	return f.Rating != nil && *f.Rating > 0 && !math.IsInf(*f.Rating, 0)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
