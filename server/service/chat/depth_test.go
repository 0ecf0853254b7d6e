package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemInstructionContainsAccuracyClause(t *testing.T) {
	for _, level := range []DepthLevel{DepthExecutive, DepthStandard, DepthExpert} {
		t.Run(level.String(), func(t *testing.T) {
			instruction := SystemInstruction(level)
			assert.Contains(t, instruction, accuracyClause, "accuracy clause must appear verbatim")
			assert.Contains(t, instruction, `"I cannot verify this with available sources. Confidence: [0-30%]"`)
			assert.Contains(t, instruction, "(Author, Year, DOI)")
			assert.Contains(t, instruction, "[UNVERIFIED-SPECULATION]")
		})
	}
}

func TestSystemInstructionWordCountGuidance(t *testing.T) {
	tests := []struct {
		level    DepthLevel
		guidance string
	}{
		{DepthExecutive, "under 100 words"},
		{DepthStandard, "100-300 words"},
		{DepthExpert, "300-800 words"},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Contains(t, SystemInstruction(tt.level), tt.guidance)
		})
	}
}

func TestDepthLevelFromInt32FallsBackToStandard(t *testing.T) {
	for _, v := range []int32{0, 4, -1, 100} {
		assert.Equal(t, DepthStandard, DepthLevelFromInt32(v), "value %d should fall back to standard", v)
	}
	assert.Equal(t, DepthExecutive, DepthLevelFromInt32(1))
	assert.Equal(t, DepthStandard, DepthLevelFromInt32(2))
	assert.Equal(t, DepthExpert, DepthLevelFromInt32(3))
}

func TestUnknownDepthBehavesLikeStandard(t *testing.T) {
	standard := SystemInstruction(DepthLevelFromInt32(2))
	for _, v := range []int32{0, 4} {
		assert.Equal(t, standard, SystemInstruction(DepthLevelFromInt32(v)))
	}
}

func TestAccuracyClauseSingleSourced(t *testing.T) {
	// Tier policies must not restate any fragment of the clause; the clause
	// should appear exactly once per instruction.
	for _, level := range []DepthLevel{DepthExecutive, DepthStandard, DepthExpert} {
		instruction := SystemInstruction(level)
		assert.Equal(t, 1, strings.Count(instruction, "Never fabricate references or data"))
	}
}
