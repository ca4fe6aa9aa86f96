package foodlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/foodlog/foodlog-cli/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a plain-text report to paste into an AI assistant",
}

var (
	reportLang string
	reportOut  string
	reportFrom string
	reportTo   string
)

func reportRunner(period service.ReportPeriod) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(s *session) error {
			lang, err := resolveReportLanguage(cmd, s)
			if err != nil {
				return err
			}
			req := service.ReportRequest{Period: period, From: reportFrom, To: reportTo}
			entries, label, err := service.SelectReportEntries(s.state, req, lang)
			if err != nil {
				return err
			}
			text, err := service.RenderReport(entries, label, s.state.Profile.Get(), service.ReportOptions{
				Language: lang,
				Location: s.state.Location(),
			})
			if errors.Is(err, service.ErrEmptyExportSet) {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries found for this period")
				return nil
			}
			if err != nil {
				return err
			}
			s.logger.Info("report rendered", "period", period, "entries", len(entries), "language", lang)
			if reportOut == "" {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			if dir := filepath.Dir(reportOut); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create report directory: %w", err)
				}
			}
			if err := os.WriteFile(reportOut, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote report with %d entries to %s\n", len(entries), reportOut)
			return nil
		})
	}
}

// resolveReportLanguage prefers --lang, then the bootstrap config, then the
// stored report_language preference.
func resolveReportLanguage(cmd *cobra.Command, s *session) (service.Language, error) {
	if cmd.Flags().Changed("lang") {
		return service.ParseLanguage(reportLang)
	}
	if s.cfg.Language != "" {
		return service.ParseLanguage(s.cfg.Language)
	}
	return service.ReportLanguage(s.db)
}

var reportTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Report today's entries",
	RunE:  reportRunner(service.PeriodToday),
}

var reportWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Report the last 7 days",
	RunE:  reportRunner(service.PeriodWeek),
}

var reportMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Report the last 30 days",
	RunE:  reportRunner(service.PeriodMonth),
}

var reportCustomCmd = &cobra.Command{
	Use:   "custom",
	Short: "Report a date range (inclusive)",
	RunE:  reportRunner(service.PeriodCustom),
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportTodayCmd, reportWeekCmd, reportMonthCmd, reportCustomCmd)

	reportCmd.PersistentFlags().StringVar(&reportLang, "lang", "en", "Report language: en or es")
	reportCmd.PersistentFlags().StringVar(&reportOut, "out", "", "Write the report to a file instead of stdout")
	reportCustomCmd.Flags().StringVar(&reportFrom, "from", "", "From date YYYY-MM-DD")
	reportCustomCmd.Flags().StringVar(&reportTo, "to", "", "To date YYYY-MM-DD")
	_ = reportCustomCmd.MarkFlagRequired("from")
	_ = reportCustomCmd.MarkFlagRequired("to")
}
