package foodlog

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/foodlog/foodlog-cli/internal/service"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore all entries and the profile",
}

var (
	backupOut     string
	backupFormat  string
	restoreFormat string
	restoreYes    bool
)

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup document",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := service.ParseBackupFormat(backupFormat)
		if err != nil {
			return err
		}
		return withState(cmd, func(s *session) error {
			doc := s.state.Snapshot()
			raw, err := service.EncodeBackup(doc, format)
			if err != nil {
				return err
			}
			if backupOut == "-" {
				_, err := cmd.OutOrStdout().Write(raw)
				return err
			}
			out := backupOut
			if out == "" {
				out = fmt.Sprintf("foodlog-backup-%s.%s", time.Now().Format("2006-01-02"), format)
			}
			info, err := service.WriteBackupFile(out, raw, format)
			if err != nil {
				return err
			}
			s.logger.Info("backup exported", "path", info.Path, "entries", doc.Stats.TotalEntries)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries (profile: %t) to %s\n", doc.Stats.TotalEntries, doc.Stats.HasProfile, info.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", info.Checksum)
			return nil
		})
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace all entries and the profile with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		format := service.FormatFromPath(path)
		if cmd.Flags().Changed("format") {
			f, err := service.ParseBackupFormat(restoreFormat)
			if err != nil {
				return err
			}
			format = f
		}
		raw, err := service.ReadBackupFile(path)
		if err != nil {
			return err
		}
		restored, err := service.DecodeBackup(raw, format)
		if err != nil {
			return err
		}
		return withState(cmd, func(s *session) error {
			if !restoreYes {
				question := fmt.Sprintf("Replace %d entries with %d entries from %s", s.state.Entries.Len(), len(restored.Entries), path)
				if restored.Profile == nil {
					question += " and remove the profile"
				} else {
					question += " and replace the profile"
				}
				ok, err := confirm(cmd, question+"?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Restore cancelled; nothing changed")
					return nil
				}
			}
			if err := s.state.Restore(restored); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d entries\n", len(restored.Entries))
			return nil
		})
	},
}

func confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupExportCmd, backupRestoreCmd)

	backupExportCmd.Flags().StringVar(&backupOut, "out", "", "Output path, or - for stdout (default foodlog-backup-<date>.<format>)")
	backupExportCmd.Flags().StringVar(&backupFormat, "format", "json", "Backup format: json or yaml")
	backupRestoreCmd.Flags().StringVar(&restoreFormat, "format", "", "Backup format: json or yaml (default from file extension)")
	backupRestoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "Restore without asking for confirmation")
}
