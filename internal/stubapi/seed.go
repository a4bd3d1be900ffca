package stubapi

import (
	"time"

	"reviewdesk-mobile/internal/domain"
)

// Demo 账号（本地联调用）
const (
	DemoEmail    = "manager@demo-bistro.test"
	DemoPassword = "demo1234"
)

// SeedDemo 写入一家演示餐厅、一个账号和若干条反馈
func SeedDemo(b *Backend) {
	b.SetRestaurant(domain.Restaurant{
		ID:                  "rest-demo",
		Name:                "Demo Bistro",
		Address:             "12 Market Street",
		Phone:               "5551234567",
		Email:               "hello@demo-bistro.test",
		NotificationEmail:   "alerts@demo-bistro.test",
		EscalationThreshold: 2,
		FormFields: []domain.FormField{
			{Key: "service", Label: "Service", Type: "rating"},
			{Key: "food", Label: "Food", Type: "rating"},
			{Key: "cleanliness", Label: "Cleanliness", Type: "rating"},
			{Key: "visit", Label: "Tell us about your visit", Type: "text"},
		},
	})
	b.AddUser(DemoEmail, DemoPassword, "Dana Manager")

	now := b.now()
	name := func(s string) *string { return &s }
	rating := func(v float64) *float64 { return &v }

	b.AddFeedback(
		domain.Feedback{
			ID:           "fb-1001",
			CustomerName: name("Priya N."),
			Ratings: domain.NewFields(
				domain.Field{Key: "service", Value: 5.0},
				domain.Field{Key: "food", Value: 4.0},
				domain.Field{Key: "cleanliness", Value: 5.0},
			),
			Comments:  domain.NewFields(domain.Field{Key: "visit", Value: "Lovely evening, great staff."}),
			CreatedAt: now.Add(-25 * time.Minute),
		},
		domain.Feedback{
			ID:            "fb-1002",
			CustomerName:  name("Marco R."),
			CustomerPhone: name("5559876543"),
			Ratings: domain.NewFields(
				domain.Field{Key: "service", Value: 1.0},
				domain.Field{Key: "food", Value: 2.0},
			),
			Comments: domain.NewFields(
				domain.Field{Key: "visit", Value: "Waited 50 minutes for mains."},
				domain.Field{Key: "food", Value: "Pasta was cold."},
			),
			IsEscalated:      true,
			EscalationReason: name("Average rating below threshold"),
			Severity:         domain.SeverityHigh,
			CreatedAt:        now.Add(-3 * time.Hour),
		},
		domain.Feedback{
			ID:               "fb-1003",
			CustomerEmail:    name("lee@example.test"),
			Rating:           rating(2.5),
			Comment:          name("Table was sticky."),
			IsEscalated:      true,
			EscalationReason: name("Cleanliness complaint"),
			Severity:         domain.SeverityMedium,
			CreatedAt:        now.Add(-26 * time.Hour),
		},
		domain.Feedback{
			ID:               "fb-1004",
			CustomerName:     name("Sam K."),
			Ratings:          domain.NewFields(domain.Field{Key: "service", Value: 3.0}),
			IsEscalated:      true,
			EscalationReason: name("Customer requested callback"),
			Severity:         domain.SeverityLow,
			IsResolved:       true,
			CreatedAt:        now.Add(-72 * time.Hour),
		},
	)
}
