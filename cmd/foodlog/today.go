package foodlog

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/foodlog/foodlog-cli/internal/model"
	"github.com/foodlog/foodlog-cli/internal/service"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's entries and progress against the calorie target",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := time.Now()
		if todayDate != "" {
			parsed, err := time.ParseInLocation(model.DateLayout, todayDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", todayDate)
			}
			target = parsed
		}
		return withState(cmd, func(s *session) error {
			status := service.TodaySummary(s.state, target)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", status.Date)
			fmt.Fprintf(out, "Entries: %d\n", status.Stats.Count)
			for _, e := range status.Entries {
				fmt.Fprintf(out, "  %s  %-9s  %s  %s kcal\n", clockOf(e.Time), e.MealType, e.FoodName, textOrDash(e.Calories))
			}
			fmt.Fprintf(out, "Calories: %s kcal\n", formatFloat(status.Stats.TotalCalories))
			fmt.Fprintf(out, "Weight: %s g\n", formatFloat(status.Stats.TotalSize))
			fmt.Fprintf(out, "Target: %s\n", formatTarget(status.Target))
			if status.Remaining != nil {
				fmt.Fprintf(out, "Remaining: %d kcal\n", *status.Remaining)
			}
			fmt.Fprintf(out, "Status: %s\n", status.Color)
			return nil
		})
	},
}

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show entries of the last days grouped by day, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(s *session) error {
			days := historyDays
			if !cmd.Flags().Changed("days") {
				stored, err := service.HistoryDays(s.db)
				if err != nil {
					return err
				}
				days = stored
			}
			if days <= 0 {
				return fmt.Errorf("--days must be > 0")
			}
			history := service.History(s.state, days)
			out := cmd.OutOrStdout()
			if len(history) == 0 {
				fmt.Fprintf(out, "No entries in the last %d days\n", days)
				return nil
			}
			for _, day := range history {
				fmt.Fprintf(out, "%s (%d entries, %s cal)\n", day.Date, day.Stats.Count, formatFloat(day.Stats.TotalCalories))
				for _, e := range day.Entries {
					fmt.Fprintf(out, "  %d  %s  %-9s  %s  %s kcal\n", e.ID, clockOf(e.Time), e.MealType, e.FoodName, textOrDash(e.Calories))
				}
			}
			return nil
		})
	},
}

func clockOf(value string) string {
	if t, err := model.ParseEntryTime(value, time.Local); err == nil {
		return t.Format("15:04")
	}
	return value
}

func init() {
	rootCmd.AddCommand(todayCmd, historyCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	historyCmd.Flags().IntVar(&historyDays, "days", 7, "Number of days to show (default from config history_days)")
}
