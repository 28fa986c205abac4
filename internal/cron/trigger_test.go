package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCronSpec(t *testing.T) {
	tests := []struct {
		time string
		spec string
	}{
		{"09:30", "0 30 09 * * *"},
		{"9:30", "0 30 9 * * *"},
		{"00:00", "0 00 00 * * *"},
		{"23:59", "0 59 23 * * *"},
		{"19:05", "0 05 19 * * *"},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			spec, err := ToCronSpec(tt.time)
			require.NoError(t, err)
			assert.Equal(t, tt.spec, spec)
		})
	}
}

func TestToCronSpecInvalid(t *testing.T) {
	invalid := []string{
		"",
		"24:00",
		"9:60",
		"9",
		"930",
		"09:3",
		"ab:cd",
		"12:34:56",
		"-1:30",
		" 09:30",
	}

	for _, in := range invalid {
		t.Run(in, func(t *testing.T) {
			_, err := ToCronSpec(in)
			assert.ErrorIs(t, err, ErrInvalidTimeFormat)
		})
	}
}

func TestValidTime(t *testing.T) {
	assert.True(t, ValidTime("12:00"))
	assert.False(t, ValidTime("12:0"))
	assert.False(t, ValidTime(""))
}
