// Package screen 各页面的终端渲染：输入为服务层返回的数据，输出为字符串。
package screen

import (
	"fmt"
	"strings"
	"time"

	"reviewdesk-mobile/internal/domain"
	"reviewdesk-mobile/internal/feedback"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard 仪表盘：统计 + 最近反馈
func Dashboard(r domain.Restaurant, st domain.RestaurantStats, recent []domain.Feedback, now time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Name + " · Dashboard"))
	b.WriteString("\n")

	avg := feedback.Summary{Rating: st.AverageRating, Rated: st.AverageRating > 0, Tier: feedback.RatingColor(st.AverageRating)}
	tiles := []string{
		tile("Average rating", ratingText(avg)),
		tile("Total feedback", fmt.Sprintf("%d", st.TotalFeedback)),
		tile("Today", fmt.Sprintf("%d", st.FeedbackToday)),
		tile("Escalated", fmt.Sprintf("%d", st.EscalatedCount)),
		tile("Pending", fmt.Sprintf("%d", st.PendingCount)),
		tile("Resolved", fmt.Sprintf("%d", st.ResolvedCount)),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	b.WriteString("\n")

	if st.FieldAverages.Len() > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("By category"))
		b.WriteString("\n")
		for _, e := range st.FieldAverages.Entries() {
			v, ok := e.Value.(float64)
			if !ok {
				continue
			}
			line := labelStyle.Render(capitalize(e.Key)) + ratingStyle(feedback.RatingColor(v)).Render(fmt.Sprintf("%.1f", v))
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Recent feedback"))
	b.WriteString("\n")
	if len(recent) == 0 {
		b.WriteString(mutedStyle.Render("No feedback yet.") + "\n")
	}
	for _, f := range recent {
		b.WriteString(listRow(f, now) + "\n")
	}
	return b.String()
}

func tile(label, value string) string {
	return cardStyle.Render(mutedStyle.Render(label) + "\n" + value)
}

// FeedbackList 反馈列表
func FeedbackList(items []domain.Feedback, total int, now time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Feedback (%d of %d)", len(items), total)))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("Nothing matches these filters.") + "\n")
		return b.String()
	}
	for _, f := range items {
		b.WriteString(listRow(f, now) + "\n")
	}
	return b.String()
}

func listRow(f domain.Feedback, now time.Time) string {
	s := feedback.Summarize(f)
	parts := []string{
		mutedStyle.Render(f.ID),
		ratingText(s),
		customerName(f),
	}
	if f.IsEscalated {
		parts = append(parts, severityBadge(f.Severity))
	}
	if f.IsResolved {
		parts = append(parts, mutedStyle.Render("resolved"))
	}
	parts = append(parts, mutedStyle.Render(feedback.TimeAgo(f.CreatedAt, now)))
	row := strings.Join(parts, "  ")
	if s.Comment != nil {
		row += "\n    " + truncate(*s.Comment, 80)
	}
	return row
}

// FeedbackDetail 单条反馈详情
func FeedbackDetail(f domain.Feedback, now time.Time) string {
	s := feedback.Summarize(f)
	var b strings.Builder
	b.WriteString(titleStyle.Render("Feedback " + f.ID))
	b.WriteString("\n")

	if f.IsEscalated {
		p := feedback.SeverityPresentation(f.Severity)
		reason := "Escalated"
		if f.EscalationReason != nil && *f.EscalationReason != "" {
			reason = *f.EscalationReason
		}
		banner := lipgloss.NewStyle().
			Background(lipgloss.Color(p.Background)).
			Foreground(lipgloss.Color(p.Text)).
			Padding(0, 1).
			Render(reason)
		b.WriteString(severityBadge(f.Severity) + " " + banner + "\n\n")
	}

	b.WriteString(field("Customer", customerName(f)))
	if f.CustomerPhone != nil {
		b.WriteString(field("Phone", feedback.FormatPhone(*f.CustomerPhone)))
	}
	if f.CustomerEmail != nil {
		b.WriteString(field("Email", *f.CustomerEmail))
	}
	b.WriteString(field("Submitted", f.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM")+" ("+feedback.TimeAgo(f.CreatedAt, now)+")"))
	b.WriteString(field("Overall", ratingText(s)))
	for _, e := range s.Ratings {
		b.WriteString(field(e.Label, ratingStyle(feedback.RatingColor(e.Value)).Render(formatValue(e.Value))))
	}
	if s.Comment != nil {
		b.WriteString("\n" + cardStyle.Render(*s.Comment) + "\n")
	}
	if len(f.Images) > 0 {
		b.WriteString(field("Images", fmt.Sprintf("%d attached", len(f.Images))))
	}
	status := "Open"
	if f.IsResolved {
		status = "Resolved"
		if f.ResolvedAt != nil {
			status += " " + feedback.TimeAgo(*f.ResolvedAt, now)
		}
	}
	b.WriteString(field("Status", status))
	return b.String()
}

// Escalations 设备维度的升级列表
func Escalations(items []domain.Feedback, reg domain.DeviceRegistration, now time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Escalations (%s and above)", reg.Severity)))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("No open escalations.") + "\n")
		return b.String()
	}
	for _, f := range items {
		b.WriteString(listRow(f, now) + "\n")
		if f.EscalationReason != nil && *f.EscalationReason != "" {
			b.WriteString("    " + mutedStyle.Render("Reason: "+*f.EscalationReason) + "\n")
		}
	}
	return b.String()
}

// Settings 餐厅设置 + 通知设备状态
func Settings(r domain.Restaurant, reg *domain.DeviceRegistration) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(field("Name", r.Name))
	b.WriteString(field("Address", orDash(r.Address)))
	b.WriteString(field("Phone", orDash(feedback.FormatPhone(r.Phone))))
	b.WriteString(field("Email", orDash(r.Email)))
	b.WriteString(field("Notification email", orDash(r.NotificationEmail)))
	b.WriteString(field("Escalation threshold", fmt.Sprintf("%.1f", r.EscalationThreshold)))
	if len(r.FormFields) > 0 {
		labels := make([]string, 0, len(r.FormFields))
		for _, ff := range r.FormFields {
			labels = append(labels, ff.Label)
		}
		b.WriteString(field("Form fields", strings.Join(labels, ", ")))
	}
	b.WriteString("\n")
	b.WriteString(DeviceStatus(reg))
	return b.String()
}

// DeviceStatus 通知设备注册状态
func DeviceStatus(reg *domain.DeviceRegistration) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Notifications"))
	b.WriteString("\n")
	if reg == nil {
		b.WriteString(mutedStyle.Render("This device is not registered for notifications.") + "\n")
		return b.String()
	}
	b.WriteString(field("Device", orDash(reg.DeviceName)+" ("+reg.DeviceID+")"))
	b.WriteString(field("Alert level", severityBadge(reg.Severity)))
	if !reg.RegisteredAt.IsZero() {
		b.WriteString(field("Registered", reg.RegisteredAt.Local().Format("Jan 2, 2006")))
	}
	return b.String()
}

func field(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}

func customerName(f domain.Feedback) string {
	if f.CustomerName != nil && strings.TrimSpace(*f.CustomerName) != "" {
		return *f.CustomerName
	}
	if f.CustomerEmail != nil && *f.CustomerEmail != "" {
		return *f.CustomerEmail
	}
	return "Anonymous"
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
