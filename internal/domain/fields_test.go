package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_UnmarshalPreservesDocumentOrder(t *testing.T) {
	var f Fields
	err := json.Unmarshal([]byte(`{"zeta": 1, "alpha": 2.5, "mid": "x", "none": null}`), &f)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid", "none"}, f.Keys())
	v, ok := f.Number("alpha")
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
	_, ok = f.Number("mid")
	assert.False(t, ok)
	raw, ok := f.Get("none")
	assert.True(t, ok)
	assert.Nil(t, raw)
}

func TestFields_MarshalKeepsOrder(t *testing.T) {
	f := NewFields(
		Field{Key: "service", Value: 4.0},
		Field{Key: "cleanliness", Value: 3.0},
		Field{Key: "ambience", Value: "nice"},
	)
	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `{"service":4,"cleanliness":3,"ambience":"nice"}`, string(b))
}

func TestFields_SetExistingKeyKeepsPosition(t *testing.T) {
	f := NewFields(Field{Key: "a", Value: 1.0}, Field{Key: "b", Value: 2.0})
	f.Set("a", 5.0)
	assert.Equal(t, []string{"a", "b"}, f.Keys())
	v, _ := f.Number("a")
	assert.Equal(t, 5.0, v)
}

func TestFields_NullAndInvalid(t *testing.T) {
	var f Fields
	require.NoError(t, json.Unmarshal([]byte(`null`), &f))
	assert.Equal(t, 0, f.Len())

	f.Set("stale", 1.0)
	require.NoError(t, json.Unmarshal([]byte(`[1,2]`), &f))
	assert.Equal(t, 0, f.Len())

	require.NoError(t, json.Unmarshal([]byte(`"4.5"`), &f))
	assert.Equal(t, 0, f.Len())

	assert.Error(t, json.Unmarshal([]byte(`{"a":`), &f))
}

func TestFeedback_DecodeLenientRating(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want *float64
	}{
		{"number", `4.5`, floatPtr(4.5)},
		{"numeric string", `" 3.5 "`, floatPtr(3.5)},
		{"text", `"great"`, nil},
		{"object", `{"v":1}`, nil},
		{"null", `null`, nil},
		{"nan string", `"NaN"`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var fb Feedback
			require.NoError(t, json.Unmarshal([]byte(`{"id":"fb-1","rating":`+tc.raw+`,"ratings":[],"comments":[]}`), &fb))
			assert.Equal(t, "fb-1", fb.ID)
			assert.Equal(t, tc.want, fb.Rating)
			assert.Equal(t, 0, fb.Ratings.Len())
			assert.Equal(t, 0, fb.Comments.Len())
		})
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestFeedback_DecodeHeterogeneousRecord(t *testing.T) {
	payload := `{
		"id": "fb-1",
		"customer_name": "Ann",
		"ratings": {"service": 4, "food": 2, "wait_time": "n/a"},
		"comments": {"food": "cold", "service": "  "},
		"is_escalated": true,
		"severity": "high",
		"created_at": "2026-10-01T12:00:00Z"
	}`
	var fb Feedback
	require.NoError(t, json.Unmarshal([]byte(payload), &fb))
	assert.Equal(t, "fb-1", fb.ID)
	assert.Equal(t, []string{"service", "food", "wait_time"}, fb.Ratings.Keys())
	assert.Nil(t, fb.Rating)
	assert.Equal(t, SeverityHigh, fb.Severity)
	assert.True(t, fb.IsEscalated)
}

func TestParseSeverity(t *testing.T) {
	s, ok := ParseSeverity(" HIGH ")
	assert.True(t, ok)
	assert.Equal(t, SeverityHigh, s)
	_, ok = ParseSeverity("critical")
	assert.False(t, ok)

	assert.True(t, SeverityLow.Valid())
	assert.False(t, Severity("High").Valid())
	assert.False(t, Severity("").Valid())
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 1, SeverityLow.Rank())
	assert.Equal(t, 3, SeverityHigh.Rank())
	assert.Less(t, SeverityMedium.Rank(), SeverityHigh.Rank())
	assert.Equal(t, 0, Severity("urgent").Rank())
}
