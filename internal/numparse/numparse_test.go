package numparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"comma grouped", "1,234.56", 1234.56},
		{"embedded in label", "면적 330.58㎡", 330.58},
		{"plain integer", "42대", 42},
		{"no digits", "미상", 0},
		{"empty", "", 0},
		{"dots only", "...", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseNumber(tt.in), 1e-9)
		})
	}
}

func TestParseKoreanWon(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"eok and man summed", "5억 1,300만원", 513_000_000},
		{"eok only", "2억", 200_000_000},
		{"man only", "1,300만", 13_000_000},
		{"plain digits fallback", "1,300", 1300},
		{"adjacent eok man", "12억3,450만원", 1_234_500_000},
		{"no digits", "협의", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKoreanWon(tt.in))
		})
	}
}
