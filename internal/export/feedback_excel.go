package export

import (
	"bytes"
	"fmt"
	"strings"

	"reviewdesk-mobile/internal/domain"
	"reviewdesk-mobile/internal/feedback"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Feedback"

// FeedbackHeader 导出表头
var FeedbackHeader = []string{
	"Date",
	"Customer",
	"Phone",
	"Email",
	"Rating",
	"Comment",
	"Escalated",
	"Severity",
	"Reason",
	"Resolved",
}

var columnWidths = []float64{
	20, // Date
	20, // Customer
	16, // Phone
	26, // Email
	8,  // Rating
	60, // Comment
	10, // Escalated
	10, // Severity
	30, // Reason
	10, // Resolved
}

// FeedbackWorkbook 生成反馈导出 Excel（评分/评论为客户端归一化后的展示值）
// 未评分的记录 Rating 单元格留空
func FeedbackWorkbook(items []domain.Feedback) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range FeedbackHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}
	for col, width := range columnWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, fb := range items {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, rowValues(fb)); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func rowValues(fb domain.Feedback) *[]any {
	s := feedback.Summarize(fb)

	var rating any
	if s.Rated {
		rating = s.Rating
	}
	comment := ""
	if s.Comment != nil {
		comment = strings.TrimSpace(*s.Comment)
	}
	reason := ""
	if fb.EscalationReason != nil {
		reason = *fb.EscalationReason
	}

	row := []any{
		fb.CreatedAt.Format("2006-01-02 15:04"),
		deref(fb.CustomerName),
		deref(fb.CustomerPhone),
		deref(fb.CustomerEmail),
		rating,
		comment,
		yesNo(fb.IsEscalated),
		string(fb.Severity),
		reason,
		yesNo(fb.IsResolved),
	}
	return &row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
