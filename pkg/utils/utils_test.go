package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetweenCeil(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		asOf     time.Time
		expected int
	}{
		{
			name:     "same day",
			start:    date(2026, time.January, 28),
			asOf:     date(2026, time.January, 28),
			expected: 0,
		},
		{
			name:     "partial month counts full",
			start:    date(2026, time.January, 28),
			asOf:     date(2026, time.February, 10),
			expected: 1,
		},
		{
			name:     "exact one month anniversary",
			start:    date(2026, time.January, 28),
			asOf:     date(2026, time.February, 28),
			expected: 1,
		},
		{
			name:     "one day into a new month",
			start:    date(2026, time.January, 28),
			asOf:     date(2026, time.March, 1),
			expected: 2,
		},
		{
			name:     "four month anniversary",
			start:    date(2026, time.January, 28),
			asOf:     date(2026, time.May, 28),
			expected: 4,
		},
		{
			name:     "few days elapsed",
			start:    date(2026, time.January, 28),
			asOf:     date(2026, time.February, 2),
			expected: 1,
		},
		{
			name:     "year boundary",
			start:    date(2025, time.November, 15),
			asOf:     date(2026, time.February, 15),
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsBetweenCeil(tt.start, tt.asOf))
		})
	}
}

func TestDaysBetweenCeil(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		asOf     time.Time
		expected int
	}{
		{
			name:     "same instant",
			start:    date(2026, time.March, 1),
			asOf:     date(2026, time.March, 1),
			expected: 0,
		},
		{
			name:     "ten whole days",
			start:    date(2026, time.March, 1),
			asOf:     date(2026, time.March, 11),
			expected: 10,
		},
		{
			name:     "partial day rounds up",
			start:    date(2026, time.March, 1),
			asOf:     time.Date(2026, time.March, 2, 6, 0, 0, 0, time.UTC),
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysBetweenCeil(tt.start, tt.asOf))
		})
	}
}

func TestDaysInMonths(t *testing.T) {
	// 3 months from Jan 28 lands on Apr 28: 31-28 + 28 + 31 + 28 = 90 days
	assert.Equal(t, 90, DaysInMonths(date(2026, time.January, 28), 3))
	assert.Equal(t, 0, DaysInMonths(date(2026, time.January, 28), 0))
	// February handling
	assert.Equal(t, 28, DaysInMonths(date(2026, time.February, 1), 1))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5 Months", FormatDuration(5, "months"))
	assert.Equal(t, "1 Month", FormatDuration(1, "months"))
	assert.Equal(t, "47 Days", FormatDuration(47, "days"))
	assert.Equal(t, "1 Day", FormatDuration(1, "days"))
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		name     string
		in       decimal.Decimal
		expected string
	}{
		{"half rounds up", decimal.RequireFromString("199.985"), "199.99"},
		{"truncation", decimal.RequireFromString("867.9452"), "867.95"},
		{"already rounded", decimal.RequireFromString("400"), "400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, RoundMoney(tt.in).Equal(decimal.RequireFromString(tt.expected)),
				"got %s", RoundMoney(tt.in).String())
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	assert.NoError(t, err)
	assert.Equal(t, date(2026, time.February, 28), d)

	_, err = ParseDate("28/02/2026")
	assert.Error(t, err)
}
