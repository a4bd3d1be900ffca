package feedback

import "reviewdesk-mobile/internal/domain"

// Presentation 严重级别的展示三元组
type Presentation struct {
	Background string
	Icon       string
	Text       string
}

var (
	highPresentation   = Presentation{Background: "#FEE2E2", Icon: "alert-circle", Text: "#DC2626"}
	mediumPresentation = Presentation{Background: "#FEF3C7", Icon: "warning", Text: "#D97706"}
	lowPresentation    = Presentation{Background: "#DBEAFE", Icon: "information-circle", Text: "#2563EB"}
	infoPresentation   = Presentation{Background: "#F3F4F6", Icon: "information-circle-outline", Text: "#6B7280"}
)

// SeverityPresentation 按级别精确匹配；未知或空级别返回中性 info 样式
func SeverityPresentation(tier domain.Severity) Presentation {
	switch tier {
	case domain.SeverityHigh:
		return highPresentation
	case domain.SeverityMedium:
		return mediumPresentation
	case domain.SeverityLow:
		return lowPresentation
	default:
		return infoPresentation
	}
}

// RatingTier 评分颜色档位
type RatingTier string

const (
	RatingGood     RatingTier = "good"
	RatingWarning  RatingTier = "warning"
	RatingCritical RatingTier = "critical"
)

// RatingColor 下界包含：>=4 good，[3,4) warning，<3 critical
func RatingColor(rating float64) RatingTier {
	switch {
	case rating >= 4:
		return RatingGood
	case rating >= 3:
		return RatingWarning
	default:
		return RatingCritical
	}
}

// Color 档位对应的颜色
func (t RatingTier) Color() string {
	switch t {
	case RatingGood:
		return "#10B981"
	case RatingWarning:
		return "#F59E0B"
	default:
		return "#EF4444"
	}
}
