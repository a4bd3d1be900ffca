package feedback

import (
	"testing"

	"reviewdesk-mobile/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRatingColor_Boundaries(t *testing.T) {
	assert.Equal(t, RatingGood, RatingColor(4.0))
	assert.Equal(t, RatingGood, RatingColor(5))
	assert.Equal(t, RatingWarning, RatingColor(3.0))
	assert.Equal(t, RatingWarning, RatingColor(3.999))
	assert.Equal(t, RatingCritical, RatingColor(2.999))
	assert.Equal(t, RatingCritical, RatingColor(0))
}

func TestSeverityPresentation_Total(t *testing.T) {
	tiers := []domain.Severity{"high", "medium", "low", "unknown-value", "", "HIGH"}
	seen := map[Presentation]bool{}
	for _, tier := range tiers {
		p := SeverityPresentation(tier)
		assert.NotEmpty(t, p.Background, "tier %q", tier)
		assert.NotEmpty(t, p.Icon, "tier %q", tier)
		assert.NotEmpty(t, p.Text, "tier %q", tier)
		seen[p] = true
	}
	// high / medium / low / 默认 四种
	assert.Len(t, seen, 4)
	assert.Equal(t, SeverityPresentation("unknown-value"), SeverityPresentation("HIGH"))
}

func TestRatingTier_Color(t *testing.T) {
	assert.Equal(t, "#10B981", RatingGood.Color())
	assert.Equal(t, "#F59E0B", RatingWarning.Color())
	assert.Equal(t, "#EF4444", RatingCritical.Color())
}
