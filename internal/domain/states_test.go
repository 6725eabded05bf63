package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateName(t *testing.T) {
	tests := []struct {
		code int
		name string
	}{
		{1, "Alabama"},
		{6, "California"},
		{11, "District of Columbia"},
		{48, "Texas"},
		{56, "Wyoming"},
		{72, "Puerto Rico"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, StateName(tt.code), "code %d", tt.code)
	}

	t.Run("unassigned codes", func(t *testing.T) {
		assert.Empty(t, StateName(3))
		assert.Empty(t, StateName(0))
		assert.Empty(t, StateName(-1))
	})
}

func TestStateAbbr(t *testing.T) {
	assert.Equal(t, "AL", StateAbbr(1))
	assert.Equal(t, "WY", StateAbbr(56))
	assert.Empty(t, StateAbbr(99))
}

func TestStateCodes(t *testing.T) {
	codes := StateCodes()
	assert.Len(t, codes, 53, "50 states plus DC, PR and VI")

	// Ascending, starting at Alabama.
	assert.Equal(t, 1, codes[0])
	for i := 1; i < len(codes); i++ {
		assert.Greater(t, codes[i], codes[i-1])
	}
}
