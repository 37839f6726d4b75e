package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sdkgen/gendb"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded generation runs",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	db, err := gendb.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No generation runs recorded")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartTime.Before(runs[j].StartTime)
	})

	header := color.New(color.Bold)
	header.Printf("%-36s %-20s %-8s %9s %7s %10s\n", "RUN", "STARTED", "STATUS", "PACKAGES", "FILES", "SIZE")

	for _, r := range runs {
		status := r.Status
		switch status {
		case gendb.RunStatusSuccess:
			status = color.GreenString(status)
		case gendb.RunStatusFailed:
			status = color.RedString(status)
		}

		fmt.Printf("%-36s %-20s %-8s %9d %7d %10s\n",
			r.UUID,
			r.StartTime.Format(time.DateTime),
			status,
			r.Packages,
			r.Files,
			humanize.Bytes(uint64(r.BytesWritten)))
	}

	return nil
}
