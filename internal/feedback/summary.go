package feedback

import "reviewdesk-mobile/internal/domain"

// Summary 一条反馈归一化后的全部展示信息
type Summary struct {
	Rating       float64
	Rated        bool
	Tier         RatingTier
	Comment      *string
	Ratings      []RatingEntry
	Presentation Presentation
}

// Summarize 汇总 AverageRating / DisplayComment / DisplayRatings 及分类结果
// Rated=false 表示记录没有任何评分，此时 Rating 仍为 0.0
func Summarize(f domain.Feedback) Summary {
	rating := AverageRating(f)
	return Summary{
		Rating:       rating,
		Rated:        HasRating(f),
		Tier:         RatingColor(rating),
		Comment:      DisplayComment(f),
		Ratings:      DisplayRatings(f, DefaultMaxRatings),
		Presentation: SeverityPresentation(f.Severity),
	}
}
