package foodlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/foodlog/foodlog-cli/internal/service"
)

var cellMarks = map[service.CellColor]string{
	service.CellNoEntries:  " ",
	service.CellNoCalories: "?",
	service.CellHasEntries: "*",
	service.CellGood:       "+",
	service.CellWarning:    "~",
	service.CellBad:        "!",
}

var calendarMonth string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month grid colored by calories against the target",
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := parseMonth(calendarMonth)
		if err != nil {
			return err
		}
		return withState(cmd, func(s *session) error {
			cells := service.MonthCalendar(s.state.Entries.All(), year, month, s.state.Target())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n", month, year)
			fmt.Fprintln(out, " Mo  Tu  We  Th  Fr  Sa  Su")

			// Weeks start on Monday.
			offset := (int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()) + 6) % 7
			var line strings.Builder
			line.WriteString(strings.Repeat("    ", offset))
			for i, cell := range cells {
				fmt.Fprintf(&line, "%3d%s", i+1, cellMarks[cell.Color])
				if (offset+i+1)%7 == 0 {
					fmt.Fprintln(out, strings.TrimRight(line.String(), " "))
					line.Reset()
				}
			}
			if line.Len() > 0 {
				fmt.Fprintln(out, strings.TrimRight(line.String(), " "))
			}
			fmt.Fprintln(out, "Legend: + within 10%  ~ within 20%  ! over 20%  * no target  ? no calories")
			return nil
		})
	},
}

var monthFlag string

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show monthly totals and averages",
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := parseMonth(monthFlag)
		if err != nil {
			return err
		}
		return withState(cmd, func(s *session) error {
			sum := service.MonthSummary(s.state.Entries.All(), year, month, s.state.Target())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Month: %s %d\n", month, year)
			fmt.Fprintf(out, "Days tracked: %d\n", sum.DaysTracked)
			fmt.Fprintf(out, "Total entries: %d\n", sum.TotalEntries)
			fmt.Fprintf(out, "Total calories: %s kcal\n", formatFloat(sum.TotalCalories))
			if sum.AvgCaloriesPerDay != nil {
				fmt.Fprintf(out, "Average per day: %d kcal\n", *sum.AvgCaloriesPerDay)
			} else {
				fmt.Fprintf(out, "Average per day: %s\n", placeholder)
			}
			if sum.AvgVsTarget != nil {
				fmt.Fprintf(out, "Average vs target: %+d kcal\n", *sum.AvgVsTarget)
			}
			return nil
		})
	},
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func init() {
	rootCmd.AddCommand(calendarCmd, monthCmd)
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month YYYY-MM (default current month)")
	monthCmd.Flags().StringVar(&monthFlag, "month", "", "Month YYYY-MM (default current month)")
}
