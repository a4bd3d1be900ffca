package export

import (
	"bytes"
	"testing"
	"time"

	"reviewdesk-mobile/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFeedbackWorkbook(t *testing.T) {
	name := "Priya"
	reason := "Low rating"
	comment := "Great staff"
	items := []domain.Feedback{
		{
			ID:           "fb-1",
			CustomerName: &name,
			Ratings:      domain.NewFields(domain.Field{Key: "service", Value: 2.0}, domain.Field{Key: "food", Value: 4.0}),
			Comment:      &comment,
			IsEscalated:  true,
			Severity:     domain.SeverityMedium,
			CreatedAt:    time.Date(2026, 10, 1, 18, 30, 0, 0, time.UTC),

			EscalationReason: &reason,
		},
		{ID: "fb-2", CreatedAt: time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC)},
	}

	data, err := FeedbackWorkbook(items)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Feedback"}, f.GetSheetList())
	rows, err := f.GetRows("Feedback")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, FeedbackHeader, rows[0])

	assert.Equal(t, "2026-10-01 18:30", rows[1][0])
	assert.Equal(t, "Priya", rows[1][1])
	assert.Equal(t, "3", rows[1][4])
	assert.Equal(t, "Great staff", rows[1][5])
	assert.Equal(t, "Yes", rows[1][6])
	assert.Equal(t, "medium", rows[1][7])
	assert.Equal(t, "Low rating", rows[1][8])
	assert.Equal(t, "No", rows[1][9])

	// 未评分：Rating 为空
	assert.Equal(t, "", rows[2][4])
}
