package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// MonthsBetweenCeil counts elapsed months from start to asOf where any day
// into a new month counts as a full month. Returns 0 when asOf is not after
// start.
func MonthsBetweenCeil(start, asOf time.Time) int {
	if !asOf.After(start) {
		return 0
	}

	y1, m1, d1 := start.Date()
	y2, m2, d2 := asOf.Date()

	months := (y2-y1)*12 + int(m2-m1)
	if d2 > d1 {
		months++
	}
	if months < 1 {
		months = 1
	}

	return months
}

// DaysBetweenCeil counts elapsed days from start to asOf, rounding any
// partial day up. Returns 0 when asOf is not after start.
func DaysBetweenCeil(start, asOf time.Time) int {
	if !asOf.After(start) {
		return 0
	}

	days := int(math.Ceil(asOf.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}

	return days
}

// DaysInMonths returns the number of calendar days between start and its
// anniversary `months` months later.
func DaysInMonths(start time.Time, months int) int {
	if months <= 0 {
		return 0
	}
	end := start.AddDate(0, months, 0)
	return int(end.Sub(start).Hours() / 24)
}

// RoundMoney rounds a money amount to 2 decimal places (half away from zero).
// Applied once at the end of a computation, never mid-computation.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatDuration renders an elapsed quantity for audit display, e.g.
// "5 Months", "1 Month", "47 Days".
func FormatDuration(n int, unit string) string {
	label := "Days"
	if unit == "months" {
		label = "Months"
	}
	if n == 1 {
		label = label[:len(label)-1]
	}
	return fmt.Sprintf("%d %s", n, label)
}

// DecimalFromFloat converts float64 to decimal.Decimal
func DecimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
