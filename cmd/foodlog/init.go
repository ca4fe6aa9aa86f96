package foodlog

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local foodlog database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(s *session) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized foodlog database at %s\n", s.cfg.DBPath)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
