package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScoreDecodesBothShapes - Aceita número, rótulo simples e rótulo com emoji
func TestScoreDecodesBothShapes(t *testing.T) {
	cases := []struct {
		raw       string
		wantKind  ScoreKind
		wantNum   float64
		wantLabel Label
	}{
		{`0`, ScoreNumeric, 0, ""},
		{`72.5`, ScoreNumeric, 72.5, ""},
		{`null`, ScoreNumeric, 0, ""},
		{`"Hot"`, ScoreLabel, 0, LabelHot},
		{`"warm"`, ScoreLabel, 0, LabelWarm},
		{`"Hot 🔥"`, ScoreLabel, 0, LabelHot},
		{`"Cold ❄️"`, ScoreLabel, 0, LabelCold},
	}

	for _, tc := range cases {
		var s Score
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &s), tc.raw)
		assert.Equal(t, tc.wantKind, s.Kind(), tc.raw)
		if tc.wantKind == ScoreNumeric {
			v, ok := s.Numeric()
			assert.True(t, ok)
			assert.Equal(t, tc.wantNum, v)
		} else {
			l, ok := s.Label()
			assert.True(t, ok)
			assert.Equal(t, tc.wantLabel, l)
		}
	}
}

// TestScoreKeepsUnknownText - Texto desconhecido não derruba o decode e volta igual
func TestScoreKeepsUnknownText(t *testing.T) {
	var s Score
	require.NoError(t, json.Unmarshal([]byte(`"85"`), &s))
	v, ok := s.Numeric()
	assert.True(t, ok)
	assert.Equal(t, 85.0, v)

	require.NoError(t, json.Unmarshal([]byte(`"Lukewarm"`), &s))
	assert.Equal(t, ScoreText, s.Kind())
	assert.Equal(t, "Lukewarm", s.String())
	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `"Lukewarm"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`true`), &s))
}

// TestLeadScoreEncoding - Rótulo sai como string, número sai como número
func TestLeadScoreEncoding(t *testing.T) {
	hot, err := json.Marshal(Lead{ID: 1, Email: "a@x.com", Status: LeadStatusNew, Score: LabelScore(LabelHot)})
	require.NoError(t, err)
	assert.Contains(t, string(hot), `"score":"Hot"`)

	zero, err := json.Marshal(Lead{ID: 1, Email: "a@x.com", Status: LeadStatusNew})
	require.NoError(t, err)
	assert.Contains(t, string(zero), `"score":0`)
	assert.NotContains(t, string(zero), "last_contacted")
}
