package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jon4hz/attendance/internal/config"
	"github.com/jon4hz/attendance/internal/database"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display the number of users, admins and attendance records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint: errcheck

		stats, err := db.GetStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get database stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Database Statistics:")
		fmt.Fprintf(out, "Users: %s\n", humanize.Comma(stats.Users))
		fmt.Fprintf(out, "Admins: %s\n", humanize.Comma(stats.Admins))
		fmt.Fprintf(out, "Attendance Records: %s\n", humanize.Comma(stats.Records))
		fmt.Fprintf(out, "Currently Checked In: %s\n", humanize.Comma(stats.OpenRecords))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
