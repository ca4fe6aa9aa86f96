package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/foodlog/foodlog-cli/internal/model"
)

type DoctorReport struct {
	TotalEntries     int     `json:"total_entries"`
	DuplicateIDs     []int64 `json:"duplicate_ids,omitempty"`
	UnparseableTimes []int64 `json:"unparseable_times,omitempty"`
	MissingFields    []int64 `json:"missing_fields,omitempty"`
	FixedIDs         int     `json:"fixed_ids,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return len(r.DuplicateIDs) == 0 && len(r.UnparseableTimes) == 0 && len(r.MissingFields) == 0
}

// RunDoctor checks the stored entries for duplicate ids, times that do not
// parse and missing required fields. With fix, duplicate ids are reassigned
// past the current maximum; the other problems are only reported.
func RunDoctor(s *State, fix bool) (DoctorReport, error) {
	entries := s.Entries.All()
	report := DoctorReport{TotalEntries: len(entries)}

	seen := map[int64]int{}
	for _, e := range entries {
		seen[e.ID]++
		if _, err := model.ParseEntryTime(e.Time, s.loc); err != nil {
			report.UnparseableTimes = append(report.UnparseableTimes, e.ID)
		}
		if strings.TrimSpace(e.FoodName) == "" || strings.TrimSpace(e.MealType) == "" {
			report.MissingFields = append(report.MissingFields, e.ID)
		}
	}
	for id, n := range seen {
		if n > 1 {
			report.DuplicateIDs = append(report.DuplicateIDs, id)
		}
	}
	sort.Slice(report.DuplicateIDs, func(i, j int) bool { return report.DuplicateIDs[i] < report.DuplicateIDs[j] })

	if !fix || len(report.DuplicateIDs) == 0 {
		return report, nil
	}

	report.FixedIDs = reassignDuplicateIDs(entries, func(old, next int64) {
		s.logger.Info("doctor reassigned duplicate id", "old", old, "new", next)
	})
	if err := s.Entries.Replace(entries); err != nil {
		return report, fmt.Errorf("doctor fix ids: %w", err)
	}
	return report, nil
}

// reassignDuplicateIDs keeps the first entry holding each id and moves every
// later holder past the highest id in the slice. It edits entries in place
// and returns how many ids changed.
func reassignDuplicateIDs(entries []model.Entry, moved func(old, next int64)) int {
	var high int64
	for _, e := range entries {
		if e.ID > high {
			high = e.ID
		}
	}
	used := map[int64]bool{}
	n := 0
	for i := range entries {
		if !used[entries[i].ID] {
			used[entries[i].ID] = true
			continue
		}
		high++
		if moved != nil {
			moved(entries[i].ID, high)
		}
		entries[i].ID = high
		used[high] = true
		n++
	}
	return n
}
