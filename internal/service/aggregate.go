package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/foodlog/foodlog-cli/internal/model"
)

type DayStats struct {
	Count          int            `json:"count"`
	TotalCalories  float64        `json:"totalCalories"`
	TotalSize      float64        `json:"totalSize"`
	MealTypeCounts map[string]int `json:"mealTypeCounts"`
}

func DailyStats(entries []model.Entry) DayStats {
	stats := DayStats{MealTypeCounts: map[string]int{}}
	for _, e := range entries {
		stats.Count++
		if v, ok := NumericValue(e.Calories); ok {
			stats.TotalCalories += v
		}
		if v, ok := NumericValue(e.Size); ok {
			stats.TotalSize += v
		}
		stats.MealTypeCounts[e.MealType]++
	}
	return stats
}

// GroupByDay partitions entries by date key, keeping input order per day.
func GroupByDay(entries []model.Entry) map[string][]model.Entry {
	groups := map[string][]model.Entry{}
	for _, e := range entries {
		day := DateKey(e)
		groups[day] = append(groups[day], e)
	}
	return groups
}

func SortedDays(groups map[string][]model.Entry, newestFirst bool) []string {
	days := make([]string, 0, len(groups))
	for day := range groups {
		days = append(days, day)
	}
	sort.Strings(days)
	if newestFirst {
		for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
			days[i], days[j] = days[j], days[i]
		}
	}
	return days
}

// SortByTime returns a sorted copy. Times that do not parse compare as text.
func SortByTime(entries []model.Entry, newestFirst bool, loc *time.Location) []model.Entry {
	out := make([]model.Entry, len(entries))
	copy(out, entries)
	less := func(a, b model.Entry) bool {
		ta, errA := model.ParseEntryTime(a.Time, loc)
		tb, errB := model.ParseEntryTime(b.Time, loc)
		if errA != nil || errB != nil {
			return a.Time < b.Time
		}
		return ta.Before(tb)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if newestFirst {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

type CellColor string

const (
	CellNoEntries  CellColor = "no-entries"
	CellNoCalories CellColor = "no-calories"
	CellHasEntries CellColor = "has-entries"
	CellGood       CellColor = "good"
	CellWarning    CellColor = "warning"
	CellBad        CellColor = "bad"
)

const (
	goodTolerance    = 10.0
	warningTolerance = 20.0
)

type CalendarCell struct {
	DateKey       string    `json:"date"`
	EntryCount    int       `json:"entryCount"`
	TotalCalories float64   `json:"totalCalories"`
	PercentDiff   *float64  `json:"percentDiff,omitempty"`
	Color         CellColor `json:"color"`
}

// CalendarCellState classifies one day against the target. Within 10% is
// good and within 20% is warning, both bounds inclusive.
func CalendarCellState(dateKey string, dayEntries []model.Entry, target *float64) CalendarCell {
	stats := DailyStats(dayEntries)
	cell := CalendarCell{DateKey: dateKey, EntryCount: stats.Count, TotalCalories: stats.TotalCalories}
	switch {
	case stats.Count == 0:
		cell.Color = CellNoEntries
	case stats.TotalCalories <= 0:
		cell.Color = CellNoCalories
	case target == nil || *target <= 0:
		cell.Color = CellHasEntries
	default:
		diff := (stats.TotalCalories - *target) * 100 / *target
		cell.PercentDiff = &diff
		abs := diff
		if abs < 0 {
			abs = -abs
		}
		switch {
		case abs <= goodTolerance:
			cell.Color = CellGood
		case abs <= warningTolerance:
			cell.Color = CellWarning
		default:
			cell.Color = CellBad
		}
	}
	return cell
}

func monthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d-", year, int(month))
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthCalendar returns one cell per day of the month, first day first.
func MonthCalendar(entries []model.Entry, year int, month time.Month, target *float64) []CalendarCell {
	groups := GroupByDay(entries)
	n := daysIn(year, month)
	cells := make([]CalendarCell, 0, n)
	for d := 1; d <= n; d++ {
		key := fmt.Sprintf("%s%02d", monthPrefix(year, month), d)
		cells = append(cells, CalendarCellState(key, groups[key], target))
	}
	return cells
}

type MonthStats struct {
	Year              int        `json:"year"`
	Month             time.Month `json:"month"`
	DaysTracked       int        `json:"daysTracked"`
	TotalEntries      int        `json:"totalEntries"`
	TotalCalories     float64    `json:"totalCalories"`
	AvgCaloriesPerDay *int       `json:"avgCaloriesPerDay,omitempty"`
	AvgVsTarget       *int       `json:"avgVsTarget,omitempty"`
}

// MonthSummary averages calories over the days of the month that have at
// least one entry.
func MonthSummary(entries []model.Entry, year int, month time.Month, target *float64) MonthStats {
	prefix := monthPrefix(year, month)
	inMonth := make([]model.Entry, 0)
	for _, e := range entries {
		if strings.HasPrefix(DateKey(e), prefix) {
			inMonth = append(inMonth, e)
		}
	}
	stats := DailyStats(inMonth)
	out := MonthStats{
		Year:          year,
		Month:         month,
		DaysTracked:   len(GroupByDay(inMonth)),
		TotalEntries:  stats.Count,
		TotalCalories: stats.TotalCalories,
	}
	if out.DaysTracked > 0 {
		avg := roundInt(stats.TotalCalories / float64(out.DaysTracked))
		out.AvgCaloriesPerDay = intPtr(avg)
		if target != nil {
			out.AvgVsTarget = intPtr(avg - roundInt(*target))
		}
	}
	return out
}

// HistoryDay is one day of a history view, entries newest first.
type HistoryDay struct {
	Date    string        `json:"date"`
	Entries []model.Entry `json:"entries"`
	Stats   DayStats      `json:"stats"`
}

// History lists the days with entries in the last n days, newest day first.
func History(s *State, days int) []HistoryDay {
	if days <= 0 {
		days = 7
	}
	start := s.Now().Add(-time.Duration(days) * 24 * time.Hour)
	groups := GroupByDay(s.Entries.ByTimeRange(start, time.Time{}))
	out := make([]HistoryDay, 0, len(groups))
	for _, day := range SortedDays(groups, true) {
		out = append(out, HistoryDay{
			Date:    day,
			Entries: SortByTime(groups[day], true, s.loc),
			Stats:   DailyStats(groups[day]),
		})
	}
	return out
}
