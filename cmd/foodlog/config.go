package foodlog

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/foodlog/foodlog-cli/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored preferences",
}

var (
	cfgReportLanguage string
	cfgHistoryDays    int
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set preference values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(s *session) error {
			updates := 0
			if cmd.Flags().Changed("report-language") {
				if err := service.SetConfig(s.db, service.ConfigReportLanguage, cfgReportLanguage); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("history-days") {
				if err := service.SetConfig(s.db, service.ConfigHistoryDays, strconv.Itoa(cfgHistoryDays)); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(s *session) error {
			cfg, err := service.ListConfig(s.db)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, cfg[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgReportLanguage, "report-language", "", "Default report language: en or es")
	configSetCmd.Flags().IntVar(&cfgHistoryDays, "history-days", 7, "Default number of days in history")
}
