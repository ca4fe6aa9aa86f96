package service

import (
	"time"

	"github.com/foodlog/foodlog-cli/internal/model"
)

type TodayStatus struct {
	Date      string        `json:"date"`
	Entries   []model.Entry `json:"entries"`
	Stats     DayStats      `json:"stats"`
	Target    *float64      `json:"target,omitempty"`
	Remaining *int          `json:"remaining,omitempty"`
	Color     CellColor     `json:"color"`
}

// TodaySummary reports the day containing date, entries newest first.
func TodaySummary(s *State, date time.Time) TodayStatus {
	key := date.In(s.loc).Format(model.DateLayout)
	dayEntries := s.Entries.ByDay(key)
	target := s.Target()
	cell := CalendarCellState(key, dayEntries, target)
	status := TodayStatus{
		Date:    key,
		Entries: SortByTime(dayEntries, true, s.loc),
		Stats:   DailyStats(dayEntries),
		Target:  target,
		Color:   cell.Color,
	}
	if target != nil {
		status.Remaining = intPtr(roundInt(*target - status.Stats.TotalCalories))
	}
	return status
}
