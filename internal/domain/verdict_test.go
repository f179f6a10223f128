package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskRed},
		{39, RiskRed},
		{40, RiskYellow},
		{69, RiskYellow},
		{70, RiskGreen},
		{100, RiskGreen},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskFromScore(tt.score), "score=%d", tt.score)
	}
}

func TestVerdictNormalize(t *testing.T) {
	v := Verdict{Score: 120, RiskLevel: RiskRed}
	v.Normalize()

	assert.Equal(t, 100, v.Score)
	assert.Equal(t, RiskGreen, v.RiskLevel)
	assert.NotNil(t, v.RedFlags)
	assert.NotNil(t, v.PositiveSignals)

	v = Verdict{Score: 10, RiskLevel: RiskGreen, RedFlags: []string{"x"}}
	v.Normalize()
	assert.Equal(t, RiskRed, v.RiskLevel)
	assert.Equal(t, []string{"x"}, v.RedFlags)
}

func TestDegradedVerdict(t *testing.T) {
	v := DegradedVerdict("boom")
	assert.Equal(t, 50, v.Score)
	assert.Equal(t, RiskYellow, v.RiskLevel)
	assert.Equal(t, []string{"Analysis failed"}, v.RedFlags)
	assert.Equal(t, "boom", v.ErrorNote)
}

func TestJobRecordEmpty(t *testing.T) {
	assert.True(t, JobRecord{Company: "Acme", HasLogo: true}.Empty())
	assert.True(t, JobRecord{Title: "  ", Description: "\n"}.Empty())
	assert.False(t, JobRecord{Title: "Engineer"}.Empty())
}
