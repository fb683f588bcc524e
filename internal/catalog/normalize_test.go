package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseViewCount(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1K", 1000},
		{"10k", 10000},
		{"2.5K", 2500},
		{"3M", 3000000},
		{"1,234", 1234},
		{"847", 847},
		{" 12K ", 12000},
		{"", 0},
		{"abc", 0},
		{"-5", 0},
		{"K", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseViewCount(tt.input), "input %q", tt.input)
	}
}

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"4:05", 245},
		{"0:30", 30},
		{"1:02:03", 3723},
		{"12:00", 720},
		{"", 0},
		{"junk", 0},
		{"99", 0},
		{"1:2:3:4", 0},
		{"-1:30", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDurationSeconds(tt.input), "input %q", tt.input)
	}
}

func TestParseDate(t *testing.T) {
	assert.Equal(t,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ParseDate("2024-03-01"))

	assert.Equal(t,
		time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		ParseDate("2024-03-01T10:30:00Z"))

	assert.Equal(t,
		time.Unix(1700000000, 0).UTC(),
		ParseDate("1700000000"))

	// unparseable dates normalize to the epoch
	epoch := time.Unix(0, 0).UTC()
	assert.Equal(t, epoch, ParseDate(""))
	assert.Equal(t, epoch, ParseDate("yesterday"))
}
