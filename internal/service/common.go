package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/foodlog/foodlog-cli/internal/model"
)

const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

func isoNow(now time.Time) string {
	return now.UTC().Format(isoTimestamp)
}

// NumericValue parses an optional numeric field. Absent or non-numeric values
// report false and count as zero in totals.
func NumericValue(v *string) (float64, bool) {
	if v == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// DateKey is the calendar day an entry belongs to: the date part of its time.
func DateKey(e model.Entry) string {
	day, _, _ := strings.Cut(strings.TrimSpace(e.Time), "T")
	day, _, _ = strings.Cut(day, " ")
	return day
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func intPtr(v int) *int {
	return &v
}
