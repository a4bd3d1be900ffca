package feedback

import (
	"encoding/json"
	"fmt"
	"testing"

	"reviewdesk-mobile/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

func ratings(pairs ...any) domain.Fields {
	var f domain.Fields
	for i := 0; i+1 < len(pairs); i += 2 {
		f.Set(pairs[i].(string), pairs[i+1])
	}
	return f
}

func TestAverageRating_NoRatingsIsZero(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(domain.Feedback{}))
	assert.Equal(t, 0.0, AverageRating(domain.Feedback{Ratings: ratings("a", 0.0, "b", "five", "c", nil)}))
	assert.Equal(t, 0.0, AverageRating(domain.Feedback{Rating: floatPtr(0)}))
}

func TestAverageRating_MeanOfPositiveValues(t *testing.T) {
	f := domain.Feedback{Ratings: ratings("a", 2.0, "b", 4.0)}
	assert.Equal(t, 3.0, AverageRating(f))

	f = domain.Feedback{Ratings: ratings("a", 4.0, "b", 4.0, "c", 5.0, "skipped", 0.0)}
	assert.Equal(t, 4.3, AverageRating(f))
}

func TestAverageRating_PrimaryTakesPrecedence(t *testing.T) {
	f := domain.Feedback{Rating: floatPtr(4.5), Ratings: ratings("a", 1.0)}
	assert.Equal(t, 4.5, AverageRating(f))

	f = domain.Feedback{Rating: floatPtr(3.66)}
	assert.Equal(t, 3.7, AverageRating(f))
}

func TestAverageRating_OnlyPositiveValuesCount(t *testing.T) {
	f := domain.Feedback{Ratings: ratings("a", 3.0, "b", 6.0, "c", -1.0, "d", 0.0)}
	assert.Equal(t, 4.5, AverageRating(f))

	got := DisplayRatings(f, 0)
	assert.Equal(t, []RatingEntry{{Label: "A", Value: 3}, {Label: "B", Value: 6}}, got)
}

func TestAverageRating_FromDecodedJSON(t *testing.T) {
	var f domain.Feedback
	require.NoError(t, json.Unmarshal([]byte(`{"ratings":{"service":5,"food":"4","ambience":3}}`), &f))
	assert.Equal(t, 4.0, AverageRating(f))
}

func TestHasRating(t *testing.T) {
	assert.False(t, HasRating(domain.Feedback{}))
	assert.True(t, HasRating(domain.Feedback{Rating: floatPtr(1)}))
	assert.True(t, HasRating(domain.Feedback{Ratings: ratings("x", 2.0)}))
}

func TestDisplayComment(t *testing.T) {
	t.Run("primary wins unchanged", func(t *testing.T) {
		f := domain.Feedback{Comment: strPtr("  Great food "), Comments: ratings("a", "ignored")}
		got := DisplayComment(f)
		require.NotNil(t, got)
		assert.Equal(t, "  Great food ", *got)
	})

	t.Run("blank primary falls through to fields", func(t *testing.T) {
		f := domain.Feedback{
			Comment:  strPtr("   "),
			Comments: ratings("food", "cold soup", "service", " ", "staff", "slow", "n", 3.0),
		}
		got := DisplayComment(f)
		require.NotNil(t, got)
		assert.Equal(t, "cold soup | slow", *got)
	})

	t.Run("nothing available", func(t *testing.T) {
		assert.Nil(t, DisplayComment(domain.Feedback{}))
		assert.Nil(t, DisplayComment(domain.Feedback{Comments: ratings("a", "", "b", "\t")}))
	})
}

func TestDisplayRatings_TruncatesInInsertionOrder(t *testing.T) {
	var f domain.Feedback
	keys := []string{"service", "food", "cleanliness", "ambience", "value", "speed", "parking"}
	for i, k := range keys {
		f.Ratings.Set(k, float64(i%5)+1)
	}

	got := DisplayRatings(f, DefaultMaxRatings)
	require.Len(t, got, 5)
	assert.Equal(t, []string{"Service", "Food", "Cleanliness", "Ambience", "Value"}, labels(got))
	assert.Equal(t, 1.0, got[0].Value)
}

func TestDisplayRatings_SkipsNonPositiveAndKeepsRawValue(t *testing.T) {
	f := domain.Feedback{Ratings: ratings("zeta", 0.0, "alpha", 3.25, "beta", "x", "gamma", 1.0)}
	got := DisplayRatings(f, 0)
	assert.Equal(t, []string{"Alpha", "Gamma"}, labels(got))
	assert.Equal(t, 3.25, got[0].Value)

	assert.Len(t, DisplayRatings(f, 1), 1)
}

func TestDisplayRatings_NeverMoreThanMax(t *testing.T) {
	var f domain.Feedback
	for i := 0; i < 40; i++ {
		f.Ratings.Set(fmt.Sprintf("k%d", i), 2.0)
	}
	assert.Len(t, DisplayRatings(f, DefaultMaxRatings), DefaultMaxRatings)
}

func TestSummarize(t *testing.T) {
	s := Summarize(domain.Feedback{})
	assert.False(t, s.Rated)
	assert.Equal(t, 0.0, s.Rating)
	assert.Equal(t, RatingCritical, s.Tier)
	assert.Equal(t, "No rating", FormatRating(s))

	s = Summarize(domain.Feedback{Ratings: ratings("a", 4.0), Severity: domain.SeverityHigh})
	assert.True(t, s.Rated)
	assert.Equal(t, RatingGood, s.Tier)
	assert.Equal(t, "4.0", FormatRating(s))
	assert.Equal(t, "alert-circle", s.Presentation.Icon)
}

func labels(entries []RatingEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}
