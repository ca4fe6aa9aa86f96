package foodlog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foodlog/foodlog-cli/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(s *session) error {
			report, err := service.RunDoctor(s.state, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Entries: %d\n", report.TotalEntries)
			fmt.Fprintf(out, "Duplicate ids: %d\n", len(report.DuplicateIDs))
			fmt.Fprintf(out, "Unparseable times: %d\n", len(report.UnparseableTimes))
			fmt.Fprintf(out, "Missing name or meal type: %d\n", len(report.MissingFields))
			if doctorFix {
				fmt.Fprintf(out, "Fixed ids: %d\n", report.FixedIDs)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(s.state, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Reassign duplicate entry ids")
}
