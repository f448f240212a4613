package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCompactCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"122.8k", 122800},
		{"122.8K", 122800},
		{"11,6k", 11600},
		{"1.2m", 1200000},
		{"1,2M", 1200000},
		{"2m", 2000000},
		{"847", 847},
		{"9,240", 9240},
		{"  500 ", 500},
		{`"1234"`, 1234},
		{"0", 0},
		{"", 0},
		{"n/a", 0},
		{"-5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCompactCount(tt.raw))
		})
	}
}

func TestUnixToISODate(t *testing.T) {
	assert.Equal(t, "2026-08-29", unixToISODate("1787961600"))
	assert.Equal(t, "", unixToISODate("0"))
	assert.Equal(t, "", unixToISODate("not-a-number"))
	assert.Equal(t, "", unixToISODate(""))
}
