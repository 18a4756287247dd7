package policy

import (
	"testing"

	"github.com/gauntlet-ai/gauntlet/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	p := Default()

	tests := []struct {
		testID string
		want   models.FailureCategory
	}{
		{"hallucination-001", models.CategoryHallucination},
		{"injection_prompt_03", models.CategoryInjection},
		{"refusal.benign-request", models.CategoryRefusal},
		{"context:long-document", models.CategoryContext},
		{"consistency-rerun-7", models.CategoryConsistency},
		{"HALLUCINATION-002", models.CategoryHallucination},
		{"latency-check", models.CategoryUnknown},
		{"", models.CategoryUnknown},
		{"injection", models.CategoryInjection},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Classify(tt.testID), "testID %q", tt.testID)
	}
}

func TestMultiplier(t *testing.T) {
	p := Default()

	assert.Equal(t, 10.0, p.Multiplier(models.ImpactCritical))
	assert.Equal(t, 5.0, p.Multiplier(models.ImpactHigh))
	assert.Equal(t, 2.0, p.Multiplier(models.ImpactMedium))
	assert.Equal(t, 1.0, p.Multiplier(models.ImpactLow))
	// unknown tiers weight like low impact
	assert.Equal(t, 1.0, p.Multiplier(models.BusinessImpact("mystery")))
}
