package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimLower(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "case-differing addresses collapse",
			input: []string{"0x0Dd7d78ED27632839cD2a929EE570eAd346C19fC", "0x0dd7d78ed27632839cd2a929ee570ead346c19fc"},
			want:  []string{"0x0dd7d78ed27632839cd2a929ee570ead346c19fc"},
		},
		{
			name:  "empties and whitespace are dropped",
			input: []string{" 0xabc ", "", "   ", "0xdef"},
			want:  []string{"0xabc", "0xdef"},
		},
		{
			name:  "first appearance order is preserved",
			input: []string{"0xdef", "0xabc", "0xDEF"},
			want:  []string{"0xdef", "0xabc"},
		},
		{
			name:  "nil stays nil",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrimLower(tt.input))
		})
	}
}
