package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/foodlog/foodlog-cli/internal/model"
)

type ReportPeriod string

const (
	PeriodToday  ReportPeriod = "today"
	PeriodWeek   ReportPeriod = "week"
	PeriodMonth  ReportPeriod = "month"
	PeriodCustom ReportPeriod = "custom"
)

type ReportRequest struct {
	Period ReportPeriod
	From   string
	To     string
}

type ReportOptions struct {
	Language  Language
	Generated time.Time
	Location  *time.Location
}

// SelectReportEntries picks the entries for a report period and returns them
// with the period label. Today and custom ranges compare date keys; week and
// month compare timestamps against the last 7 or 30 days.
func SelectReportEntries(s *State, req ReportRequest, lang Language) ([]model.Entry, string, error) {
	l := labelsFor(lang)
	now := s.Now()
	switch req.Period {
	case PeriodToday:
		today := now.Format(model.DateLayout)
		return s.Entries.ByDateRange(today, today), l.periodToday, nil
	case PeriodWeek:
		return s.Entries.ByTimeRange(now.Add(-7*24*time.Hour), time.Time{}), l.periodWeek, nil
	case PeriodMonth:
		return s.Entries.ByTimeRange(now.Add(-30*24*time.Hour), time.Time{}), l.periodMonth, nil
	case PeriodCustom:
		from := strings.TrimSpace(req.From)
		to := strings.TrimSpace(req.To)
		if from == "" || to == "" {
			return nil, "", fmt.Errorf("custom report needs both a from and a to date")
		}
		for _, d := range []string{from, to} {
			if _, err := time.Parse(model.DateLayout, d); err != nil {
				return nil, "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", d)
			}
		}
		return s.Entries.ByDateRange(from, to), fmt.Sprintf(l.periodRange, from, to), nil
	default:
		return nil, "", fmt.Errorf("unknown report period %q", req.Period)
	}
}

// RenderReport builds the plain-text report for entries. Days and the entries
// within them are listed oldest first.
func RenderReport(entries []model.Entry, period string, profile *model.Profile, opts ReportOptions) (string, error) {
	if len(entries) == 0 {
		return "", ErrEmptyExportSet
	}
	l := labelsFor(opts.Language)
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	generated := opts.Generated
	if generated.IsZero() {
		generated = time.Now()
	}
	target := EffectiveTarget(profile)
	rule := strings.Repeat("=", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", l.title, period)
	fmt.Fprintf(&b, "%s: %s\n", l.generated, generated.In(loc).Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%s: %d\n", l.totalEntries, len(entries))
	fmt.Fprintf(&b, "\n%s\n\n", rule)

	if profile != nil {
		writeProfile(&b, l, profile, target)
		fmt.Fprintf(&b, "\n%s\n\n", rule)
	}

	b.WriteString(strings.Join(l.instructions, "\n"))
	fmt.Fprintf(&b, "\n\n%s\n\n", rule)

	groups := GroupByDay(SortByTime(entries, false, loc))
	days := SortedDays(groups, false)
	for _, day := range days {
		heading := day
		if t, err := time.ParseInLocation(model.DateLayout, day, loc); err == nil {
			heading = l.dateFormat(l, t)
		}
		fmt.Fprintf(&b, "%s: %s\n", l.date, heading)
		fmt.Fprintf(&b, "%s\n\n", strings.Repeat("-", 60))

		for i, e := range groups[day] {
			writeEntry(&b, l, i+1, e, loc)
		}

		stats := DailyStats(groups[day])
		fmt.Fprintf(&b, "   %s: %d %s", l.dailyTotal, stats.Count, l.entries)
		if stats.TotalCalories > 0 {
			fmt.Fprintf(&b, ", %s %s", formatAmount(stats.TotalCalories), l.caloriesWord)
			if target != nil {
				fmt.Fprintf(&b, " (%+d %s)", roundInt(stats.TotalCalories-*target), l.vsTarget)
			}
		}
		if stats.TotalSize > 0 {
			fmt.Fprintf(&b, ", %s %s", formatAmount(stats.TotalSize), l.grams)
		}
		fmt.Fprintf(&b, "\n\n%s\n\n", rule)
	}

	total := DailyStats(entries)
	avg := roundInt(total.TotalCalories / float64(len(days)))
	fmt.Fprintf(&b, "%s:\n", l.summary)
	fmt.Fprintf(&b, "- %s: %d\n", l.sumEntries, total.Count)
	fmt.Fprintf(&b, "- %s: %s kcal\n", l.sumCalories, formatAmount(total.TotalCalories))
	fmt.Fprintf(&b, "- %s: %d kcal\n", l.sumAverage, avg)
	if target != nil {
		fmt.Fprintf(&b, "- %s: %+d kcal\n", l.sumVariance, avg-roundInt(*target))
	}
	fmt.Fprintf(&b, "- %s: %s %s\n", l.sumWeight, formatAmount(total.TotalSize), l.grams)
	fmt.Fprintf(&b, "- %s: %s\n", l.sumPeriod, period)
	fmt.Fprintf(&b, "- %s: %d\n", l.sumDays, len(days))
	return b.String(), nil
}

func writeProfile(b *strings.Builder, l reportLabels, p *model.Profile, target *float64) {
	fmt.Fprintf(b, "%s:\n", l.profile)
	if p.Age != nil {
		fmt.Fprintf(b, "- %s: %s %s\n", l.age, formatAmount(*p.Age), l.years)
	}
	if p.Gender != "" {
		fmt.Fprintf(b, "- %s: %s\n", l.gender, p.Gender)
	}
	if p.Height != nil {
		fmt.Fprintf(b, "- %s: %s cm\n", l.height, formatAmount(*p.Height))
	}
	if p.Weight != nil {
		fmt.Fprintf(b, "- %s: %s kg\n", l.weight, formatAmount(*p.Weight))
	}
	if p.ActivityLevel != "" {
		fmt.Fprintf(b, "- %s: %s\n", l.activity, p.ActivityLevel)
	}
	if strings.TrimSpace(p.Goal) != "" {
		fmt.Fprintf(b, "- %s: %s\n", l.goal, strings.TrimSpace(p.Goal))
	}
	switch {
	case target == nil:
		fmt.Fprintf(b, "- %s: %s\n", l.target, l.targetMissing)
	case TargetIsUserProvided(p):
		fmt.Fprintf(b, "- %s: %s kcal %s\n", l.target, formatAmount(*target), l.targetProvided)
	default:
		fmt.Fprintf(b, "- %s: %s kcal %s\n", l.target, formatAmount(*target), l.targetEstimated)
	}
	if v := strings.TrimSpace(p.HealthConditions); v != "" {
		fmt.Fprintf(b, "- %s: %s\n", l.conditions, v)
	}
	if v := strings.TrimSpace(p.AdditionalNotes); v != "" {
		fmt.Fprintf(b, "- %s: %s\n", l.notes, v)
	}
}

func writeEntry(b *strings.Builder, l reportLabels, n int, e model.Entry, loc *time.Location) {
	clock := e.Time
	if t, err := model.ParseEntryTime(e.Time, loc); err == nil {
		clock = t.In(loc).Format(l.timeLayout)
	}
	fmt.Fprintf(b, "%d. %s\n", n, e.FoodName)
	fmt.Fprintf(b, "   %s: %s\n", l.mealType, e.MealType)
	fmt.Fprintf(b, "   %s: %s\n", l.time, clock)
	if e.Calories != nil {
		fmt.Fprintf(b, "   %s: %s kcal\n", l.calories, *e.Calories)
	}
	if e.Size != nil {
		fmt.Fprintf(b, "   %s: %s %s\n", l.size, *e.Size, l.grams)
	}
	if e.Comments != nil {
		fmt.Fprintf(b, "   %s: %s\n", l.comments, *e.Comments)
	}
	b.WriteString("\n")
}
