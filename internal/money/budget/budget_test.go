package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	assert.Equal(t, int64(7000), Total(1000, 7))
	assert.Equal(t, int64(500), Total(500, 1))
	assert.Equal(t, int64(90000), Total(3000, 30))
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{100, "$1.00"},
		{1050, "$10.50"},
		{123456, "$1234.56"},
		{-250, "-$2.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUSD(tt.cents))
	}
}

func TestWindow(t *testing.T) {
	paidAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	start, end := Window(paidAt, 7)

	assert.Equal(t, paidAt, start)
	assert.Equal(t, paidAt.Add(7*24*time.Hour), end)
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"three days out", now.Add(3 * 24 * time.Hour), 3},
		{"partial day rounds up", now.Add(2*24*time.Hour + time.Hour), 3},
		{"ends now", now, 0},
		{"already ended", now.Add(-24 * time.Hour), 0},
		{"one hour left", now.Add(time.Hour), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysRemaining(tt.end, now))
		})
	}
}
