package screen

import (
	"reviewdesk-mobile/internal/domain"
	"reviewdesk-mobile/internal/feedback"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#111827")).
			MarginBottom(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(22)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D1D5DB")).
			Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#DC2626")).
			Padding(0, 1)
)

// icons 终端下的图标替代
var icons = map[string]string{
	"alert-circle":               "‼",
	"warning":                    "!",
	"information-circle":         "i",
	"information-circle-outline": "·",
}

func ratingStyle(tier feedback.RatingTier) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tier.Color()))
}

// severityBadge 按严重级别三元组渲染徽标
func severityBadge(sev domain.Severity) string {
	p := feedback.SeverityPresentation(sev)
	label := string(sev)
	if label == "" {
		label = "info"
	}
	icon := icons[p.Icon]
	if icon == "" {
		icon = "·"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(p.Background)).
		Foreground(lipgloss.Color(p.Text)).
		Padding(0, 1).
		Render(icon + " " + label)
}

func ratingText(s feedback.Summary) string {
	return ratingStyle(s.Tier).Render("★ " + feedback.FormatRating(s))
}
